// ABOUTME: Incremental markdown sectionizer deriving a titled outline from a buffer
// ABOUTME: Pure full recompute; safe to call on truncated mid-stream input

// Package markdown derives a section outline from an accumulating markdown
// buffer. The function is a pure recompute over the current text: at streaming
// scale the buffer is small, and recomputing beats patching for correctness.
package markdown

import (
	"regexp"
	"strings"

	"scholar-assist-api/core/domain"
)

// headingPattern matches a level 1-3 heading marker at line start.
var headingPattern = regexp.MustCompile(`^#{1,3}\s+`)

// Sectionize splits markdown text into titled sections at level 1-3 heading
// boundaries. Heading markers inside fenced code blocks are inert. A buffer
// with no headings collapses to exactly one untitled section holding the whole
// trimmed text; empty or whitespace-only input yields no sections.
//
// The input may be a truncated in-progress stream: an unterminated fence at
// end of buffer simply leaves the remaining lines fenced, which corrects
// itself once the closing fence arrives.
func Sectionize(text string) []domain.MarkdownSection {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}

	lines := strings.Split(strings.ReplaceAll(trimmed, "\r\n", "\n"), "\n")

	var sections []domain.MarkdownSection
	var currentTitle *string
	var current []string
	inFence := false

	flush := func() {
		sections = append(sections, domain.MarkdownSection{
			Title:   currentTitle,
			Content: strings.TrimSpace(strings.Join(current, "\n")),
		})
		current = current[:0]
	}

	for _, line := range lines {
		if strings.HasPrefix(line, "```") {
			inFence = !inFence
		}

		if !inFence && headingPattern.MatchString(line) {
			// Leading lines before the first heading form an untitled
			// section only when they exist; a titled section flushes
			// even when its body is empty.
			if currentTitle != nil || len(current) > 0 {
				flush()
			}
			title := strings.TrimSpace(headingPattern.ReplaceAllString(line, ""))
			currentTitle = &title
			continue
		}
		current = append(current, line)
	}
	flush()

	// No headings anywhere: one untitled section over the whole buffer, so
	// callers can tell "no structure" from "structure not yet streamed".
	for _, s := range sections {
		if s.Title != nil {
			return sections
		}
	}
	return []domain.MarkdownSection{{Title: nil, Content: trimmed}}
}

// Titles returns the non-empty section titles in document order.
func Titles(sections []domain.MarkdownSection) []string {
	var titles []string
	for _, s := range sections {
		if s.Title != nil && *s.Title != "" {
			titles = append(titles, *s.Title)
		}
	}
	return titles
}
