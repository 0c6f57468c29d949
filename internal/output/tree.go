package output

import (
	"path/filepath"

	"github.com/disiqueira/gotree/v3"
)

// ResourceTree renders the resources directory with per-entry annotations
// (catalog titles, status markers).
type ResourceTree struct {
	tree gotree.Tree
	dirs map[string]gotree.Tree
}

func NewResourceTree(rootLabel string) ResourceTree {
	return ResourceTree{tree: gotree.New(rootLabel), dirs: make(map[string]gotree.Tree)}
}

func (t ResourceTree) getDir(dirPath string) (dir gotree.Tree) {
	if dirPath == "." {
		return t.tree
	}
	dir = t.dirs[dirPath]
	if dir == nil {
		parentPath := filepath.Dir(dirPath)
		parentDir := t.getDir(parentPath)
		dir = parentDir.Add(filepath.Base(dirPath))
		t.dirs[dirPath] = dir
	}
	return
}

// InsertPath adds a relative path to the tree, creating intermediate
// directory nodes as needed. An empty annotation adds the bare name.
func (t ResourceTree) InsertPath(relativePath string, annotation string) {
	label := filepath.Base(relativePath)
	if annotation != "" {
		label += "  " + FormatDim(annotation)
	}
	dir := t.getDir(filepath.Dir(relativePath))
	dir.Add(label)
}

func (t ResourceTree) Render() string {
	return t.tree.Print()
}
