// ABOUTME: MarkdownSection is a titled or untitled contiguous span of markdown text
// ABOUTME: Derived from heading boundaries; recomputed on every buffer update

package domain

// MarkdownSection is one span of a markdown document delimited by level 1-3
// headings. Title is nil only when the whole document carries no headings, in
// which case exactly one section covers the entire text.
type MarkdownSection struct {
	// Title is the heading text with markers stripped, or nil for the
	// untitled span
	Title *string

	// Content is the section body, trimmed at flush time
	Content string
}
