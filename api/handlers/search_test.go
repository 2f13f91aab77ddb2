package handlers

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"

	"scholar-assist-api/core/domain"
	"scholar-assist-api/core/errors"
)

// mockSearcher is a mock implementation of the paper search service
type mockSearcher struct {
	searchFunc func(ctx context.Context, query string) ([]domain.PaperRecord, error)
}

func (m *mockSearcher) Search(ctx context.Context, query string) ([]domain.PaperRecord, error) {
	if m.searchFunc != nil {
		return m.searchFunc(ctx, query)
	}
	return nil, nil
}

func TestSearchHandler_RegisterRoutes(t *testing.T) {
	handler := NewSearchHandler(&mockSearcher{})

	_, api := humatest.New(t)
	handler.RegisterRoutes(api)

	openapi := api.OpenAPI()
	if openapi.Paths == nil || openapi.Paths["/search"] == nil {
		t.Error("GET /search endpoint not registered")
	} else if openapi.Paths["/search"].Get == nil {
		t.Error("GET method not registered for /search")
	}
}

func TestSearchHandler_Search_Success(t *testing.T) {
	mockService := &mockSearcher{
		searchFunc: func(ctx context.Context, query string) ([]domain.PaperRecord, error) {
			if query != "quantum computing" {
				t.Errorf("query = %q", query)
			}
			return []domain.PaperRecord{
				{
					ID:    "http://arxiv.org/abs/2401.00001v1",
					Title: "First Paper",
					Authors: []domain.PaperAuthor{
						{Name: "Alice", Affiliation: "MIT"},
						{Name: "Bob"},
					},
					Published: "2024-01-01T00:00:00Z",
					PdfLink:   "http://arxiv.org/pdf/2401.00001v1",
				},
				{ID: "http://arxiv.org/abs/2401.00002v1", Title: "Second Paper"},
			}, nil
		},
	}
	handler := NewSearchHandler(mockService)

	_, api := humatest.New(t)
	handler.RegisterRoutes(api)

	resp := api.Get("/search?q=quantum+computing")
	if resp.Code != 200 {
		t.Fatalf("status = %d, want 200", resp.Code)
	}

	var body struct {
		Papers []PaperDTO `json:"papers"`
		Count  int        `json:"count"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if body.Count != 2 || len(body.Papers) != 2 {
		t.Fatalf("count = %d, papers = %d", body.Count, len(body.Papers))
	}
	if body.Papers[0].Title != "First Paper" || body.Papers[1].Title != "Second Paper" {
		t.Error("papers not returned in feed order")
	}
	if len(body.Papers[0].Authors) != 2 || body.Papers[0].Authors[0].Affiliation != "MIT" {
		t.Errorf("authors = %+v", body.Papers[0].Authors)
	}
}

func TestSearchHandler_Search_ValidationError(t *testing.T) {
	mockService := &mockSearcher{
		searchFunc: func(ctx context.Context, query string) ([]domain.PaperRecord, error) {
			return nil, &errors.ValidationError{Field: "query", Message: "search query cannot be empty"}
		},
	}
	handler := NewSearchHandler(mockService)

	_, api := humatest.New(t)
	handler.RegisterRoutes(api)

	resp := api.Get("/search?q=%20")
	if resp.Code != 400 {
		t.Errorf("status = %d, want 400", resp.Code)
	}
}

func TestSearchHandler_Search_UpstreamError(t *testing.T) {
	mockService := &mockSearcher{
		searchFunc: func(ctx context.Context, query string) ([]domain.PaperRecord, error) {
			return nil, &errors.ExternalAPIError{StatusCode: 503, Message: "paper search request failed", API: "arxiv"}
		},
	}
	handler := NewSearchHandler(mockService)

	_, api := humatest.New(t)
	handler.RegisterRoutes(api)

	resp := api.Get("/search?q=anything")
	if resp.Code != 502 {
		t.Errorf("status = %d, want 502", resp.Code)
	}
}

func TestSearchHandler_Search_EmptyResults(t *testing.T) {
	handler := NewSearchHandler(&mockSearcher{
		searchFunc: func(ctx context.Context, query string) ([]domain.PaperRecord, error) {
			return nil, nil
		},
	})

	_, api := humatest.New(t)
	handler.RegisterRoutes(api)

	resp := api.Get("/search?q=nothing")
	if resp.Code != 200 {
		t.Fatalf("status = %d, want 200", resp.Code)
	}

	var body struct {
		Papers []PaperDTO `json:"papers"`
		Count  int        `json:"count"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.Count != 0 || body.Papers == nil {
		t.Errorf("empty search should return an empty list, got %+v", body)
	}
}
