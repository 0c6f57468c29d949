package librarian

import (
	"fmt"

	"librarian/internal/catalog"
	out "librarian/internal/output"
	"librarian/internal/scan"
	"librarian/internal/vcache"
)

// Reconcile merges the current state of the resources directory into the
// catalog. Filesystem effects (duplicate deletion, renaming of new resources
// to their digest) happen during the run; the catalog and cache files are
// rewritten only after the full merge has succeeded, so a mid-run failure
// leaves the previously persisted state intact. A resource that was renamed
// by an aborted earlier run is simply picked up as new content on the next
// one.
func (l *librarian) Reconcile(useCache bool, policy OrphanPolicy) error {
	resolve, err := l.orphanResolver(policy)
	if err != nil {
		return err
	}

	l.printer.Out(out.Verbose, "Cataloging resources in %s...\n", l.resourcesDir)

	cache, err := vcache.Load(l.cacheFile(), !useCache, l.log)
	if err != nil {
		return newCommandError("cache load error", err)
	}

	snapshot, seen, err := scan.Directory(l.resourcesDir, cache, l.cat.OriginalChecksums(), l.log)
	if err != nil {
		return newCommandError("resource scan error", err)
	}

	before := len(l.cat.Resources)
	if err := l.cat.Update(snapshot, resolve, l.log); err != nil {
		return newCommandError("catalog update error", err)
	}
	cache.Prune(seen)

	if err := l.cat.Save(l.catalogFile); err != nil {
		return newCommandError("catalog save error", err)
	}
	if err := cache.Save(l.cacheFile()); err != nil {
		return newCommandError("cache save error", err)
	}

	total := len(l.cat.Resources)
	l.printer.Out(out.Normal, "Catalog contains %d %s (%+d).\n",
		total, out.Plural(total, "resource", "resources"), total-before)
	return nil
}

func (l *librarian) orphanResolver(policy OrphanPolicy) (catalog.ResolveOrphan, error) {
	switch policy {
	case KeepOrphans:
		return catalog.KeepAllOrphans, nil
	case RemoveOrphans:
		return catalog.RemoveAllOrphans, nil
	case AskPerOrphan:
		if l.decideOrphan == nil {
			return nil, newCommandError("orphan policy error", fmt.Errorf("ask policy requires a decision callback"))
		}
		return catalog.ResolveOrphan(l.decideOrphan), nil
	}
	return nil, newCommandError("orphan policy error", fmt.Errorf("unknown policy %d", policy))
}
