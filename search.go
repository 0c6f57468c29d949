package librarian

import (
	"encoding/json"
	"io"

	"librarian/internal/catalog"
)

// Search writes all resources whose metadata fuzzy-matches the query to w as
// a pretty JSON array. No match yields an empty array, not an error.
func (l *librarian) Search(w io.Writer, query string) error {
	matches := []catalog.Resource{}
	for i := range l.cat.Resources {
		if l.cat.Resources[i].FuzzyMatch(query) {
			matches = append(matches, l.cat.Resources[i])
		}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(matches); err != nil {
		return newCommandError("search output error", err)
	}
	return nil
}
