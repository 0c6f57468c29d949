package catalog

import (
	"strconv"

	"github.com/sahilm/fuzzy"
)

// FuzzyMatch reports whether the query fuzzy-matches any textual field of
// the resource, checksums and historical checksums included.
func (r *Resource) FuzzyMatch(query string) bool {
	return len(fuzzy.Find(query, r.searchTerms())) > 0
}

func (r *Resource) searchTerms() []string {
	terms := []string{r.Title, string(r.Checksum)}
	option := func(value *string) {
		if value != nil {
			terms = append(terms, *value)
		}
	}
	number := func(value *int) {
		if value != nil {
			terms = append(terms, strconv.Itoa(*value))
		}
	}

	option(r.Subtitle)
	for _, author := range r.Authors {
		option(author.First)
		option(author.Middle)
		option(author.Last)
	}
	number(r.Date.Year)
	number(r.Date.Month)
	number(r.Date.Day)
	number(r.Edition)
	option(r.Version)
	number(r.Volume)
	number(r.Number)
	option(r.Publisher)
	option(r.Organization)
	option(r.Journal)
	option(r.DOI)
	terms = append(terms, r.Tags...)
	option(r.DocumentType)
	option(r.ContentType)
	option(r.URL)
	for _, checksum := range r.HistoricalChecksums {
		terms = append(terms, string(checksum))
	}
	return terms
}
