package catalog

import (
	"librarian/internal/hashing"
)

// BibtexType is the BibTeX entry type a content type maps to on export.
type BibtexType string

const (
	BibtexArticle       BibtexType = "article"
	BibtexBook          BibtexType = "book"
	BibtexManual        BibtexType = "manual"
	BibtexMiscellaneous BibtexType = "miscellaneous"
	BibtexOnline        BibtexType = "online"
	BibtexTechReport    BibtexType = "techreport"
)

// MediaType designates a media (formerly MIME) type such as application/pdf.
type MediaType struct {
	Type    string `json:"type"`
	Subtype string `json:"subtype"`
}

// DocumentType classifies a document by file extension and media type. The
// extension association is what lets cataloging derive a title and document
// type from an incoming filename.
type DocumentType struct {
	Extension string     `json:"extension"`
	MIME      *MediaType `json:"mime"`
}

// Name of a single author.
type Name struct {
	First  *string `json:"first"`
	Middle *string `json:"middle"`
	Last   *string `json:"last"`
}

// Date represents when a resource's content last changed: the publication
// date for publications, the last content update for websites.
type Date struct {
	Year  *int `json:"year"`
	Month *int `json:"month"`
	Day   *int `json:"day"`
}

// Resource is one unit of library content, either a file (document, video,
// ...) or a directory (e.g. the contents of a webpage). Its catalog identity
// is the first entry of HistoricalChecksums, which never changes even as the
// content (and therefore the current checksum) does.
type Resource struct {
	Title        string   `json:"title"`
	Subtitle     *string  `json:"subtitle"`
	Authors      []Name   `json:"authors"`
	Date         Date     `json:"date"`
	Edition      *int     `json:"edition"`
	Version      *string  `json:"version"`
	Volume       *int     `json:"volume"`
	Number       *int     `json:"number"`
	Publisher    *string  `json:"publisher"`
	Organization *string  `json:"organization"`
	Journal      *string  `json:"journal"`
	DOI          *string  `json:"doi"`
	Tags         []string `json:"tags"`
	DocumentType *string  `json:"document_type"`
	ContentType  *string  `json:"content_type"`
	URL          *string  `json:"url"`
	// Checksum is the current content digest, always the last element of
	// HistoricalChecksums.
	Checksum hashing.Digest `json:"checksum"`
	// HistoricalChecksums holds every digest the resource ever had, oldest
	// first. Append-only.
	HistoricalChecksums []hashing.Digest `json:"historical_checksums"`
}

// OriginalChecksum is the permanent catalog identity of the resource.
func (r *Resource) OriginalChecksum() hashing.Digest {
	return r.HistoricalChecksums[0]
}

// Catalog is the full library catalog as persisted in the catalog file.
type Catalog struct {
	DocumentTypes map[string]DocumentType `json:"document_types"`
	ContentTypes  map[string]BibtexType   `json:"content_types"`
	Resources     []Resource              `json:"resources"`
}

// NewCatalog returns an empty catalog with initialized containers, the same
// shape a missing catalog file is initialized to.
func NewCatalog() *Catalog {
	return &Catalog{
		DocumentTypes: make(map[string]DocumentType),
		ContentTypes:  make(map[string]BibtexType),
		Resources:     []Resource{},
	}
}

// OriginalChecksums yields the set of catalog identities, i.e. the filenames
// every cataloged resource is expected to carry on disk.
func (c *Catalog) OriginalChecksums() map[string]bool {
	names := make(map[string]bool, len(c.Resources))
	for i := range c.Resources {
		names[string(c.Resources[i].OriginalChecksum())] = true
	}
	return names
}
