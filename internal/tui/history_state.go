package tui

import (
	"sync"

	"github.com/sahilm/fuzzy"
	"github.com/studiowebux/redditmood/internal/history"
)

// HistoryState encapsulates the history browser: loaded entries, selection
// and the fuzzy search query.
type HistoryState struct {
	mu sync.RWMutex

	entries []history.Entry
	matches []int // indices into entries; nil means no active search
	index   int   // selection within the visible list
	query   string
}

// NewHistoryState creates an empty history browser state.
func NewHistoryState() *HistoryState {
	return &HistoryState{}
}

// SetEntries replaces the loaded entries and resets selection and search.
func (s *HistoryState) SetEntries(entries []history.Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = entries
	s.matches = nil
	s.index = 0
	s.query = ""
}

// Query returns the active search query.
func (s *HistoryState) Query() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.query
}

// SetQuery updates the search query and recomputes the fuzzy matches over
// "title url" haystacks.
func (s *HistoryState) SetQuery(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.query = query
	s.index = 0

	if query == "" {
		s.matches = nil
		return
	}

	haystack := make([]string, len(s.entries))
	for i, e := range s.entries {
		haystack[i] = e.PostTitle + " " + e.URL
	}

	results := fuzzy.Find(query, haystack)
	s.matches = make([]int, len(results))
	for i, m := range results {
		s.matches[i] = m.Index
	}
}

// Visible returns the entries currently shown (all, or the fuzzy matches).
func (s *HistoryState) Visible() []history.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.visibleLocked()
}

func (s *HistoryState) visibleLocked() []history.Entry {
	if s.query == "" {
		return s.entries
	}
	visible := make([]history.Entry, 0, len(s.matches))
	for _, idx := range s.matches {
		visible = append(visible, s.entries[idx])
	}
	return visible
}

// Index returns the current selection index within the visible list.
func (s *HistoryState) Index() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index
}

// Navigate moves the selection up or down with wrap-around.
func (s *HistoryState) Navigate(delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	visible := s.visibleLocked()
	if len(visible) == 0 {
		s.index = 0
		return
	}

	s.index += delta
	if s.index < 0 {
		s.index = len(visible) - 1
	} else if s.index >= len(visible) {
		s.index = 0
	}
}

// Selected returns the currently selected entry, or nil when empty.
func (s *HistoryState) Selected() *history.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	visible := s.visibleLocked()
	if len(visible) == 0 || s.index < 0 || s.index >= len(visible) {
		return nil
	}
	entry := visible[s.index]
	return &entry
}

// Len returns the number of visible entries.
func (s *HistoryState) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.visibleLocked())
}
