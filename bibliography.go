package librarian

import (
	"io"

	"librarian/internal/bibtex"
)

// ExportBibtex writes a BibTeX bibliography of the catalog to w.
func (l *librarian) ExportBibtex(w io.Writer) error {
	if err := bibtex.Export(w, l.cat); err != nil {
		return newCommandError("bibliography export error", err)
	}
	return nil
}
