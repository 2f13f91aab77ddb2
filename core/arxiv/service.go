// ABOUTME: Search service queries the arXiv feed and returns structured paper records
// ABOUTME: Provides caching and rate limiting independent of the HTTP layer

// Package arxiv implements paper search against the arXiv query API.
package arxiv

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"scholar-assist-api/core/domain"
	"scholar-assist-api/core/errors"
	"scholar-assist-api/core/interfaces"
)

const (
	// DefaultBaseURL is the arXiv query endpoint.
	DefaultBaseURL = "https://export.arxiv.org/api/query"

	// DefaultMaxResults is the fixed page size for one search.
	DefaultMaxResults = 7

	// arXiv asks automated clients for no more than one request every
	// three seconds.
	politenessInterval = 3 * time.Second

	cacheTTL = 1 * time.Hour
)

// Config holds search settings resolved from the application configuration.
type Config struct {
	// BaseURL is the feed endpoint; DefaultBaseURL when empty
	BaseURL string

	// MaxResults is the fixed result count per query; DefaultMaxResults
	// when zero
	MaxResults int
}

// Service handles paper search operations.
type Service struct {
	deps    interfaces.Dependencies
	cfg     Config
	limiter *rate.Limiter
}

// NewService creates a new search service instance.
func NewService(deps interfaces.Dependencies, cfg Config) *Service {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = DefaultMaxResults
	}
	return &Service{
		deps:    deps,
		cfg:     cfg,
		limiter: rate.NewLimiter(rate.Every(politenessInterval), 1),
	}
}

// Search queries the feed with the text embedded as an all-fields term and
// returns papers in feed order. An empty or whitespace query short-circuits
// without a network call.
func (s *Service) Search(ctx context.Context, query string) ([]domain.PaperRecord, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, &errors.ValidationError{Field: "query", Message: "search query cannot be empty"}
	}

	cacheKey := fmt.Sprintf("arxiv:search:%s", query)
	if s.deps.Cache != nil {
		if data, err := s.deps.Cache.Get(ctx, cacheKey); err == nil && data != nil {
			var papers []domain.PaperRecord
			if err := json.Unmarshal(data, &papers); err == nil {
				return papers, nil
			}
		}
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	feedURL := fmt.Sprintf("%s?search_query=all:%s&start=0&max_results=%d",
		s.cfg.BaseURL, url.QueryEscape(query), s.cfg.MaxResults)

	resp, err := s.deps.HTTPClient.Get(ctx, feedURL)
	if err != nil {
		return nil, errors.WrapError(err, "failed to search papers")
	}
	defer resp.Body().Close()

	if resp.StatusCode() < 200 || resp.StatusCode() > 299 {
		return nil, &errors.ExternalAPIError{
			StatusCode: resp.StatusCode(),
			Message:    "paper search request failed",
			API:        "arxiv",
		}
	}

	body, err := io.ReadAll(resp.Body())
	if err != nil {
		return nil, errors.WrapError(err, "failed to read search response")
	}

	papers := Parse(body)

	if s.deps.Logger != nil {
		s.deps.Logger.Debug("paper search completed", map[string]interface{}{
			"query":   query,
			"results": len(papers),
		})
	}

	if s.deps.Cache != nil && len(papers) > 0 {
		if data, err := json.Marshal(papers); err == nil {
			_ = s.deps.Cache.Set(ctx, cacheKey, data, cacheTTL)
		}
	}

	return papers, nil
}
