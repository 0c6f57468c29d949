package librarian

import (
	"path/filepath"

	"go.uber.org/zap"

	"librarian/internal/catalog"
	out "librarian/internal/output"
)

// cacheFileName is resolved relative to the parent of the resources
// directory, so the cache sits next to the resources rather than inside.
const cacheFileName = ".cache"

type librarian struct {
	cat          *catalog.Catalog
	catalogFile  string //absolute, system-native path
	resourcesDir string //absolute, system-native path
	decideOrphan DecideOrphan
	printer      out.Printer
	log          *zap.Logger
}

// Open loads the catalog file and returns a handle on the library. A missing
// or empty catalog file yields a fresh empty catalog; the file itself is
// only written by Reconcile.
func Open(config Config) (Librarian, error) {
	handle := &librarian{
		catalogFile:  mustAbsFilepath(config.CatalogFile),
		resourcesDir: mustAbsFilepath(config.ResourcesDir),
		decideOrphan: config.DecideOrphan,
		printer:      makePrinter(config.Verbosity),
		log:          config.Logger,
	}
	if handle.log == nil {
		handle.log = zap.NewNop()
	}

	cat, err := catalog.Load(handle.catalogFile)
	if err != nil {
		return nil, newCommandError("catalog load error", err)
	}
	handle.cat = cat
	return handle, nil
}

func (l *librarian) cacheFile() string {
	return filepath.Join(filepath.Dir(l.resourcesDir), cacheFileName)
}

func makePrinter(verbosity VerbosityLevel) out.Printer {
	classes := []out.Class{out.Required, out.Error}
	switch verbosity {
	case VerboseMode:
		classes = append(classes, out.Normal, out.Verbose)
	case DefaultVerbosity:
		classes = append(classes, out.Normal)
	}
	return out.NewPrinter(classes)
}

func mustAbsFilepath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		panic(err)
	}
	return abs
}
