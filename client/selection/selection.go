// ABOUTME: Selection state tracks chosen papers as an ordered id list plus projections
// ABOUTME: Round-trips through query-string text so state survives process restarts

// Package selection maintains the set of papers a user has picked out of
// search results, together with the view mode.
package selection

import (
	"encoding/json"
	"net/url"
	"strings"

	"scholar-assist-api/core/domain"
)

// Mode selects how the picked papers are used.
type Mode string

const (
	// ModePreview shows the selected papers.
	ModePreview Mode = "preview"

	// ModeSynth composes a synthesis prompt from the selected papers.
	ModeSynth Mode = "synth"
)

// Selection holds the ordered selected ids, their cached projections, and the
// view mode. All mutation goes through Toggle, SelectAll, Clear, and SetMode
// so the id list and the projection map stay consistent.
type Selection struct {
	ids  []string
	meta map[string]domain.SelectionEntry
	mode Mode
}

// New returns an empty selection in preview mode.
func New() *Selection {
	return &Selection{
		meta: make(map[string]domain.SelectionEntry),
		mode: ModePreview,
	}
}

// IDs returns the selected ids in selection order.
func (s *Selection) IDs() []string {
	return append([]string(nil), s.ids...)
}

// Len returns the number of selected papers.
func (s *Selection) Len() int {
	return len(s.ids)
}

// Mode returns the current view mode.
func (s *Selection) Mode() Mode {
	return s.mode
}

// SetMode changes the view mode. Unrecognized values fall back to preview.
func (s *Selection) SetMode(mode Mode) {
	if mode != ModeSynth {
		mode = ModePreview
	}
	s.mode = mode
}

// Contains reports whether the id is selected.
func (s *Selection) Contains(id string) bool {
	_, ok := s.meta[id]
	if ok {
		return true
	}
	for _, existing := range s.ids {
		if existing == id {
			return true
		}
	}
	return false
}

// Toggle adds the id to the selection, caching its projection when the paper
// appears in results, or removes it if already selected. Toggling twice
// restores the prior state.
func (s *Selection) Toggle(id string, results []domain.PaperRecord) {
	for i, existing := range s.ids {
		if existing == id {
			s.ids = append(s.ids[:i], s.ids[i+1:]...)
			delete(s.meta, id)
			return
		}
	}

	s.ids = append(s.ids, id)
	for _, p := range results {
		if p.ID == id {
			s.meta[id] = domain.EntryFromPaper(p)
			return
		}
	}
}

// SelectAll replaces the selection with every paper in results, in result
// order.
func (s *Selection) SelectAll(results []domain.PaperRecord) {
	s.ids = make([]string, 0, len(results))
	s.meta = make(map[string]domain.SelectionEntry, len(results))
	for _, p := range results {
		s.ids = append(s.ids, p.ID)
		s.meta[p.ID] = domain.EntryFromPaper(p)
	}
}

// Clear removes every selected paper. The mode is untouched.
func (s *Selection) Clear() {
	s.ids = nil
	s.meta = make(map[string]domain.SelectionEntry)
}

// Entries resolves the selection in order. Ids without a cached projection
// degrade to a direct link when they parse as an http(s) URL, otherwise to a
// title-less placeholder.
func (s *Selection) Entries() []domain.SelectionEntry {
	entries := make([]domain.SelectionEntry, 0, len(s.ids))
	for _, id := range s.ids {
		if entry, ok := s.meta[id]; ok {
			entries = append(entries, entry)
			continue
		}
		entry := domain.SelectionEntry{ID: id}
		if u, err := url.Parse(id); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
			entry.HTMLLink = id
		}
		entries = append(entries, entry)
	}
	return entries
}

// Encode serializes the selection as query-string text: repeated sel values,
// a percent-encoded JSON meta map, and the mode flag.
func (s *Selection) Encode() string {
	values := url.Values{}
	for _, id := range s.ids {
		values.Add("sel", id)
	}
	if len(s.meta) > 0 {
		if data, err := json.Marshal(s.meta); err == nil {
			values.Set("meta", string(data))
		}
	}
	values.Set("mode", string(s.mode))
	return values.Encode()
}

// Decode rebuilds a selection from query-string text. A malformed meta map
// degrades to an empty one; an unrecognized mode falls back to preview. Ids
// keep their encoded order.
func Decode(encoded string) *Selection {
	s := New()

	encoded = strings.TrimPrefix(strings.TrimSpace(encoded), "?")
	values, err := url.ParseQuery(encoded)
	if err != nil {
		return s
	}

	s.ids = append(s.ids, values["sel"]...)

	if raw := values.Get("meta"); raw != "" {
		var meta map[string]domain.SelectionEntry
		if err := json.Unmarshal([]byte(raw), &meta); err == nil {
			for id, entry := range meta {
				s.meta[id] = entry
			}
		}
	}

	s.SetMode(Mode(values.Get("mode")))
	return s
}
