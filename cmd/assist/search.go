// ABOUTME: Search subcommand querying the API and mutating the selection state
// ABOUTME: Renders results with selection markers and persists toggles

package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"scholar-assist-api/api/handlers"
	"scholar-assist-api/core/domain"
)

var (
	flagSelect    []int
	flagSelectAll bool
)

var searchCmd = &cobra.Command{
	Use:   "search <query>...",
	Short: "Search academic papers",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSearch,
}

func init() {
	searchCmd.Flags().IntSliceVar(&flagSelect, "select", nil, "Toggle selection of result numbers (1-based)")
	searchCmd.Flags().BoolVar(&flagSelectAll, "select-all", false, "Select every returned paper")
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")

	papers, err := fetchPapers(query)
	if err != nil {
		return err
	}

	records := toRecords(papers)
	sel := loadSelection()

	if flagSelectAll {
		sel.SelectAll(records)
	}
	for _, n := range flagSelect {
		if n < 1 || n > len(records) {
			return fmt.Errorf("no result numbered %d", n)
		}
		sel.Toggle(records[n-1].ID, records)
	}
	if flagSelectAll || len(flagSelect) > 0 {
		if err := saveSelection(sel); err != nil {
			return err
		}
	}

	selected := make(map[string]bool)
	for _, id := range sel.IDs() {
		selected[id] = true
	}
	renderPapers(os.Stdout, papers, selected)
	return nil
}

func fetchPapers(query string) ([]handlers.PaperDTO, error) {
	searchURL := fmt.Sprintf("%s/search?q=%s", strings.TrimRight(flagAPI, "/"), url.QueryEscape(query))
	resp, err := http.Get(searchURL)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search request failed with status %d", resp.StatusCode)
	}

	var body struct {
		Papers []handlers.PaperDTO `json:"papers"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}
	return body.Papers, nil
}

func toRecords(papers []handlers.PaperDTO) []domain.PaperRecord {
	records := make([]domain.PaperRecord, 0, len(papers))
	for _, p := range papers {
		authors := make([]domain.PaperAuthor, 0, len(p.Authors))
		for _, a := range p.Authors {
			authors = append(authors, domain.PaperAuthor{Name: a.Name, Affiliation: a.Affiliation})
		}
		records = append(records, domain.PaperRecord{
			ID:        p.ID,
			Title:     p.Title,
			Summary:   p.Summary,
			Authors:   authors,
			Published: p.Published,
			PdfLink:   p.PdfLink,
			HTMLLink:  p.HTMLLink,
		})
	}
	return records
}
