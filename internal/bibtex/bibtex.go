package bibtex

import (
	"fmt"
	"io"
	"strings"

	"librarian/internal/catalog"
)

// Export writes a BibTeX bibliography of every resource whose content type
// maps to a known BibTeX entry type. Resources without a content type are
// skipped: they have nothing to be cited as.
func Export(w io.Writer, cat *catalog.Catalog) error {
	first := true
	for i := range cat.Resources {
		resource := &cat.Resources[i]
		if resource.ContentType == nil {
			continue
		}
		entryType, known := cat.ContentTypes[*resource.ContentType]
		if !known {
			return fmt.Errorf("resource %q has unknown content type %q", resource.Title, *resource.ContentType)
		}
		if !first {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		first = false
		if err := writeEntry(w, resource, entryType); err != nil {
			return fmt.Errorf("exporting resource %q: %w", resource.Title, err)
		}
	}
	return nil
}

func writeEntry(w io.Writer, resource *catalog.Resource, entryType catalog.BibtexType) error {
	bibtexName := string(entryType)
	if entryType == catalog.BibtexMiscellaneous {
		bibtexName = "misc"
	}
	if _, err := fmt.Fprintf(w, "@%s{%s,\n", bibtexName, resource.OriginalChecksum()); err != nil {
		return err
	}

	fields := [][2]string{{"title", entryTitle(resource)}}
	if author := entryAuthors(resource.Authors); author != "" {
		fields = append(fields, [2]string{"author", author})
	}
	if resource.Date.Year != nil {
		fields = append(fields, [2]string{"year", fmt.Sprint(*resource.Date.Year)})
	}
	if resource.Date.Month != nil {
		fields = append(fields, [2]string{"month", fmt.Sprint(*resource.Date.Month)})
	}
	appendIntField := func(name string, value *int) {
		if value != nil {
			fields = append(fields, [2]string{name, fmt.Sprint(*value)})
		}
	}
	appendStringField := func(name string, value *string) {
		if value != nil {
			fields = append(fields, [2]string{name, *value})
		}
	}
	appendIntField("edition", resource.Edition)
	appendIntField("volume", resource.Volume)
	appendIntField("number", resource.Number)
	appendStringField("version", resource.Version)
	appendStringField("publisher", resource.Publisher)
	appendStringField("organization", resource.Organization)
	appendStringField("journal", resource.Journal)
	appendStringField("doi", resource.DOI)
	appendStringField("url", resource.URL)

	for _, field := range fields {
		if _, err := fmt.Fprintf(w, "  %s = {%s},\n", field[0], field[1]); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "}")
	return err
}

func entryTitle(resource *catalog.Resource) string {
	if resource.Subtitle != nil {
		return resource.Title + ": " + *resource.Subtitle
	}
	return resource.Title
}

// entryAuthors renders "Last, First Middle and Last, First ..." with the
// pieces that are present.
func entryAuthors(authors []catalog.Name) string {
	var rendered []string
	for _, author := range authors {
		var given []string
		if author.First != nil {
			given = append(given, *author.First)
		}
		if author.Middle != nil {
			given = append(given, *author.Middle)
		}
		var parts []string
		if author.Last != nil {
			parts = append(parts, *author.Last)
		}
		if len(given) > 0 {
			parts = append(parts, strings.Join(given, " "))
		}
		if len(parts) > 0 {
			rendered = append(rendered, strings.Join(parts, ", "))
		}
	}
	return strings.Join(rendered, " and ")
}
