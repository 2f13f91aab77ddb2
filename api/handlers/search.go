// ABOUTME: Search handler exposing paper search over the feed service
// ABOUTME: Returns structured paper records in feed order for a free-text query

package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"scholar-assist-api/core/domain"
)

// PaperSearcher defines the search operations needed by the handler
type PaperSearcher interface {
	Search(ctx context.Context, query string) ([]domain.PaperRecord, error)
}

// SearchHandler handles paper search requests
type SearchHandler struct {
	searcher PaperSearcher
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(searcher PaperSearcher) *SearchHandler {
	return &SearchHandler{searcher: searcher}
}

// RegisterRoutes registers search routes
func (h *SearchHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "searchPapers",
		Method:      http.MethodGet,
		Path:        "/search",
		Summary:     "Search academic papers",
		Description: "Searches the paper feed with a free-text query and returns structured records in feed order",
		Tags:        []string{"Search"},
	}, h.Search)
}

// SearchInput defines the input for paper search
type SearchInput struct {
	Query string `query:"q" required:"true" doc:"Free-text search query"`
}

// PaperAuthorDTO is one author in a search result.
type PaperAuthorDTO struct {
	Name        string `json:"name"`
	Affiliation string `json:"affiliation,omitempty"`
}

// PaperDTO is one paper in a search result.
type PaperDTO struct {
	ID         string           `json:"id"`
	Title      string           `json:"title"`
	Summary    string           `json:"summary"`
	Authors    []PaperAuthorDTO `json:"authors"`
	Published  string           `json:"published"`
	Updated    string           `json:"updated,omitempty"`
	Categories []string         `json:"categories,omitempty"`
	PdfLink    string           `json:"pdfLink,omitempty"`
	HTMLLink   string           `json:"htmlLink,omitempty"`
	DOI        string           `json:"doi,omitempty"`
	JournalRef string           `json:"journalRef,omitempty"`
	Comment    string           `json:"comment,omitempty"`
}

// SearchOutput defines the output for paper search
type SearchOutput struct {
	Body struct {
		Papers []PaperDTO `json:"papers" doc:"Papers in feed order"`
		Count  int        `json:"count" doc:"Number of papers returned"`
	}
}

// Search handles the GET /search endpoint
func (h *SearchHandler) Search(ctx context.Context, input *SearchInput) (*SearchOutput, error) {
	papers, err := h.searcher.Search(ctx, input.Query)
	if err != nil {
		return nil, mapServiceError(err)
	}

	output := &SearchOutput{}
	output.Body.Papers = make([]PaperDTO, 0, len(papers))
	for _, p := range papers {
		output.Body.Papers = append(output.Body.Papers, toPaperDTO(p))
	}
	output.Body.Count = len(output.Body.Papers)
	return output, nil
}

func toPaperDTO(p domain.PaperRecord) PaperDTO {
	authors := make([]PaperAuthorDTO, 0, len(p.Authors))
	for _, a := range p.Authors {
		authors = append(authors, PaperAuthorDTO{Name: a.Name, Affiliation: a.Affiliation})
	}
	return PaperDTO{
		ID:         p.ID,
		Title:      p.Title,
		Summary:    p.Summary,
		Authors:    authors,
		Published:  p.Published,
		Updated:    p.Updated,
		Categories: p.Categories,
		PdfLink:    p.PdfLink,
		HTMLLink:   p.HTMLLink,
		DOI:        p.DOI,
		JournalRef: p.JournalRef,
		Comment:    p.Comment,
	}
}
