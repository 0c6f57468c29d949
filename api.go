package librarian

import (
	"io"

	"go.uber.org/zap"
)

// OrphanPolicy controls what happens to catalog entries whose backing
// resource has disappeared from the resources directory.
type OrphanPolicy int

const (
	// KeepOrphans retains every orphaned entry unconditionally.
	KeepOrphans OrphanPolicy = iota
	// RemoveOrphans deletes every orphaned entry unconditionally.
	RemoveOrphans
	// AskPerOrphan defers each orphaned entry to the DecideOrphan callback.
	AskPerOrphan
)

// DecideOrphan is asked, per orphaned catalog entry, whether the entry shall
// be removed. The name passed is the entry's original checksum. The callback
// owns any interaction (prompting, re-prompting on invalid input) and only
// returns an error to abort the run.
type DecideOrphan func(name string) (remove bool, err error)

// VerbosityLevel selects how much user-facing output operations produce.
// The zero value is a sensible default.
type VerbosityLevel int

const (
	DefaultVerbosity VerbosityLevel = iota
	VerboseMode
	QuietMode
)

// Config holds the already-resolved parameters for a librarian handle.
type Config struct {
	// CatalogFile is the path of the catalog JSON file. A missing or empty
	// file is initialized to an empty catalog.
	CatalogFile string
	// ResourcesDir is the flat directory whose immediate children are the
	// library's resources. The verification cache file lives next to it.
	ResourcesDir string
	// DecideOrphan is consulted under the AskPerOrphan policy. Reconcile
	// fails if the policy is requested without a decision callback.
	DecideOrphan DecideOrphan
	Verbosity    VerbosityLevel
	// Logger receives structured diagnostics; nil means none.
	Logger *zap.Logger
}

// Librarian lets you interface with a resource library whose handle was
// retrieved using Open.
type Librarian interface {

	// Reconcile catalogs the resources directory: it digests every resource
	// (consulting the verification cache if useCache is set), removes
	// duplicate-content resources from disk, renames new resources to their
	// digest, merges the observations into the catalog, resolves orphans per
	// policy, and rewrites the catalog and cache files. Both files are only
	// rewritten once the full merge has succeeded.
	Reconcile(useCache bool, policy OrphanPolicy) error

	// Search writes all resources fuzzy-matching the query to w as a pretty
	// JSON array.
	Search(w io.Writer, query string) error

	// ExportBibtex writes a BibTeX bibliography of all resources that carry
	// a content type to w.
	ExportBibtex(w io.Writer) error

	// PrintTree renders the resources directory as a tree to w, annotating
	// cataloged resources with their titles and listing catalog entries with
	// no backing resource as missing.
	PrintTree(w io.Writer) error
}
