package librarian

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"librarian/internal/hashing"
	out "librarian/internal/output"
)

// PrintTree renders the resources directory to w. Cataloged resources are
// annotated with their title, unknown files are marked as uncataloged, and
// catalog entries with no backing resource are appended as missing.
func (l *librarian) PrintTree(w io.Writer) error {
	titles := make(map[hashing.Digest]string, len(l.cat.Resources))
	for i := range l.cat.Resources {
		resource := &l.cat.Resources[i]
		titles[resource.OriginalChecksum()] = resource.Title
	}

	tree := out.NewResourceTree(filepath.Base(l.resourcesDir))
	present := make(map[hashing.Digest]bool)

	entries, err := os.ReadDir(l.resourcesDir)
	if err != nil {
		return newCommandError("tree listing error", err)
	}
	for _, entry := range entries {
		name := entry.Name()
		annotation := "(uncataloged)"
		if title, cataloged := titles[hashing.Digest(name)]; cataloged {
			annotation = title
			present[hashing.Digest(name)] = true
		}
		tree.InsertPath(name, annotation)
		if entry.IsDir() {
			if err := insertDirectoryContents(tree, l.resourcesDir, name); err != nil {
				return newCommandError("tree listing error", err)
			}
		}
	}

	for i := range l.cat.Resources {
		resource := &l.cat.Resources[i]
		if !present[resource.OriginalChecksum()] {
			label := fmt.Sprintf("%s  %s", resource.Title,
				out.FormatError("missing: "+string(resource.OriginalChecksum())))
			tree.InsertPath(label, "")
		}
	}

	fmt.Fprint(w, tree.Render())
	return nil
}

func insertDirectoryContents(tree out.ResourceTree, root string, resource string) error {
	return filepath.WalkDir(filepath.Join(root, resource), func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		relative, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if relative == resource {
			return nil
		}
		if !d.IsDir() {
			tree.InsertPath(relative, "")
		}
		return nil
	})
}
