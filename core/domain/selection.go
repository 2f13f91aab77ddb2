// ABOUTME: SelectionEntry is the reduced paper projection cached alongside selected ids
// ABOUTME: Small enough to survive round-trips through URL-encoded state

package domain

// SelectionEntry is the subset of PaperRecord kept for a selected paper so the
// selection can be displayed without re-querying the feed.
type SelectionEntry struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	PdfLink   string   `json:"pdfLink"`
	HTMLLink  string   `json:"htmlLink"`
	Authors   []string `json:"authors"`
	Published string   `json:"published"`
}

// EntryFromPaper builds the reduced projection of a paper record.
func EntryFromPaper(p PaperRecord) SelectionEntry {
	return SelectionEntry{
		ID:        p.ID,
		Title:     p.Title,
		PdfLink:   p.PdfLink,
		HTMLLink:  p.HTMLLink,
		Authors:   p.AuthorNames(),
		Published: p.Published,
	}
}
