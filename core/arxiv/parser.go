// ABOUTME: Atom feed parsing for the arXiv query API
// ABOUTME: Maps entry elements and arxiv-namespace extensions onto PaperRecord

package arxiv

import (
	"encoding/xml"
	"strings"

	"scholar-assist-api/core/domain"
	"scholar-assist-api/pkg/utils/text"
)

// arxivNS is the namespace of the feed's extension elements (affiliation,
// doi, journal_ref, comment).
const arxivNS = "http://arxiv.org/schemas/atom"

// Atom feed XML structures for the fixed arXiv schema.
type atomFeed struct {
	Entries []atomEntry `xml:"entry"`
}

type atomEntry struct {
	ID         string         `xml:"id"`
	Title      string         `xml:"title"`
	Summary    string         `xml:"summary"`
	Published  string         `xml:"published"`
	Updated    string         `xml:"updated"`
	Authors    []atomAuthor   `xml:"author"`
	Categories []atomCategory `xml:"category"`
	Links      []atomLink     `xml:"link"`
	DOI        string         `xml:"http://arxiv.org/schemas/atom doi"`
	JournalRef string         `xml:"http://arxiv.org/schemas/atom journal_ref"`
	Comment    string         `xml:"http://arxiv.org/schemas/atom comment"`
}

type atomAuthor struct {
	Name        string `xml:"name"`
	Affiliation string `xml:"http://arxiv.org/schemas/atom affiliation"`
}

type atomCategory struct {
	Term string `xml:"term,attr"`
}

type atomLink struct {
	Href  string `xml:"href,attr"`
	Rel   string `xml:"rel,attr"`
	Title string `xml:"title,attr"`
}

// Parse converts an arXiv Atom document into paper records, preserving entry
// order. Parsing is best-effort: missing elements become empty fields and a
// malformed document yields an empty list rather than an error, so a bad feed
// response degrades instead of failing the whole search.
func Parse(data []byte) []domain.PaperRecord {
	var feed atomFeed
	if err := xml.Unmarshal(data, &feed); err != nil {
		return nil
	}

	papers := make([]domain.PaperRecord, 0, len(feed.Entries))
	for _, entry := range feed.Entries {
		paper := domain.PaperRecord{
			ID:         entry.ID,
			Title:      text.CollapseWhitespace(entry.Title),
			Summary:    strings.TrimSpace(entry.Summary),
			Published:  entry.Published,
			Updated:    entry.Updated,
			DOI:        strings.TrimSpace(entry.DOI),
			JournalRef: strings.TrimSpace(entry.JournalRef),
			Comment:    strings.TrimSpace(entry.Comment),
		}

		for _, a := range entry.Authors {
			paper.Authors = append(paper.Authors, domain.PaperAuthor{
				Name:        strings.TrimSpace(a.Name),
				Affiliation: strings.TrimSpace(a.Affiliation),
			})
		}

		for _, c := range entry.Categories {
			if c.Term != "" {
				paper.Categories = append(paper.Categories, c.Term)
			}
		}

		// A link titled "pdf" is the PDF; rel "alternate" is the
		// canonical abstract page.
		for _, l := range entry.Links {
			switch {
			case l.Title == "pdf":
				paper.PdfLink = l.Href
			case l.Rel == "alternate":
				paper.HTMLLink = l.Href
			}
		}

		papers = append(papers, paper)
	}

	return papers
}
