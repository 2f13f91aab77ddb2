// ABOUTME: Lipgloss rendering for search results, selections, and section outlines
// ABOUTME: Shared styles for every assist subcommand

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"scholar-assist-api/api/handlers"
	"scholar-assist-api/core/domain"
)

var (
	bold     = lipgloss.NewStyle().Bold(true)
	dim      = lipgloss.NewStyle().Faint(true)
	cyan     = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	green    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	headline = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("4"))
)

// truncate cuts a string to maxLen characters, appending "…" if truncated.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-1] + "…"
}

func renderPapers(w io.Writer, papers []handlers.PaperDTO, selected map[string]bool) {
	if len(papers) == 0 {
		fmt.Fprintln(w, "No papers found.")
		return
	}

	fmt.Fprintln(w, bold.Render(fmt.Sprintf("Found %d papers", len(papers))))
	fmt.Fprintln(w)

	for i, p := range papers {
		marker := "  "
		if selected[p.ID] {
			marker = green.Render("✓ ")
		}
		fmt.Fprintf(w, "%s%s %s\n", marker, cyan.Render(fmt.Sprintf("[%d]", i+1)), bold.Render(truncate(p.Title, 76)))

		authors := make([]string, 0, len(p.Authors))
		for _, a := range p.Authors {
			authors = append(authors, a.Name)
		}
		if len(authors) > 0 {
			fmt.Fprintf(w, "      %s\n", dim.Render(truncate(strings.Join(authors, ", "), 76)))
		}
		if p.Published != "" {
			fmt.Fprintf(w, "      %s\n", dim.Render(p.Published))
		}
		if p.PdfLink != "" {
			fmt.Fprintf(w, "      %s\n", dim.Render(p.PdfLink))
		}
		fmt.Fprintln(w)
	}
}

func renderSelectionEntries(w io.Writer, entries []domain.SelectionEntry, mode string) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "Nothing selected.")
		return
	}

	fmt.Fprintln(w, bold.Render(fmt.Sprintf("%d selected (%s mode)", len(entries), mode)))
	for i, e := range entries {
		title := e.Title
		if title == "" {
			title = dim.Render(e.ID)
		} else {
			title = bold.Render(truncate(title, 76))
		}
		fmt.Fprintf(w, "  %s %s\n", cyan.Render(fmt.Sprintf("[%d]", i+1)), title)
		if len(e.Authors) > 0 {
			fmt.Fprintf(w, "      %s\n", dim.Render(truncate(strings.Join(e.Authors, ", "), 76)))
		}
	}
}

func renderOutline(w io.Writer, sections []domain.MarkdownSection) {
	titled := make([]string, 0, len(sections))
	for _, s := range sections {
		if s.Title != nil {
			titled = append(titled, *s.Title)
		}
	}
	if len(titled) == 0 {
		return
	}

	fmt.Fprintln(w, headline.Render("Sections"))
	for _, title := range titled {
		fmt.Fprintf(w, "  • %s\n", title)
	}
}
