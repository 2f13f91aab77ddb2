// ABOUTME: Paper domain model represents one academic paper from the search feed
// ABOUTME: Immutable once constructed; owned by the result list of a single query

package domain

// PaperAuthor is one author of a paper, in feed order.
type PaperAuthor struct {
	// Name is the author's display name
	Name string

	// Affiliation is the feed-supplied institution, empty when absent
	Affiliation string
}

// PaperRecord represents a single paper parsed from one feed entry.
type PaperRecord struct {
	// ID is the opaque stable identifier, typically the canonical abstract URL
	ID string

	// Title is the paper title with surrounding whitespace stripped
	Title string

	// Summary is the abstract text
	Summary string

	// Authors preserves the feed's author order
	Authors []PaperAuthor

	// Published is the original publication timestamp as reported by the feed
	Published string

	// Updated is the last-revision timestamp as reported by the feed
	Updated string

	// Categories holds the subject classification terms
	Categories []string

	// PdfLink is the link whose title attribute equals "pdf"
	PdfLink string

	// HTMLLink is the link whose rel attribute equals "alternate"
	HTMLLink string

	// Optional namespaced extension fields; empty when the entry omits them
	DOI        string
	JournalRef string
	Comment    string
}

// AuthorNames returns just the author names, preserving order.
func (p PaperRecord) AuthorNames() []string {
	names := make([]string, 0, len(p.Authors))
	for _, a := range p.Authors {
		names = append(names, a.Name)
	}
	return names
}
