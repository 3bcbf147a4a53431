package tui

import (
	"strings"
	"sync"

	"github.com/studiowebux/redditmood/internal/types"
)

// Phase is the mutually-exclusive mode of one analysis submission.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseSuccess
	PhaseFailed
)

// String returns the phase name for status display and logging.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseSuccess:
		return "success"
	case PhaseFailed:
		return "failed"
	}
	return "unknown"
}

// AnalysisState owns the interaction state of the analysis lifecycle: the
// tagged phase plus the derived view flags. The result is replaced wholesale
// on every new submission; old and new results are never merged.
//
// There is exactly one writer (the update loop) and many readers (the view).
// If the submission boundary fails to block a concurrent submit, the
// later-completing response wins.
type AnalysisState struct {
	mu sync.RWMutex

	phase          Phase
	result         *types.AnalysisResult
	errText        string
	validationText string

	rawViewVisible   bool
	copyAcknowledged bool
}

// NewAnalysisState creates an idle analysis state.
func NewAnalysisState() *AnalysisState {
	return &AnalysisState{phase: PhaseIdle}
}

// Phase returns the current lifecycle phase.
func (s *AnalysisState) Phase() Phase {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.phase
}

// Result returns the current result, or nil outside Success.
func (s *AnalysisState) Result() *types.AnalysisResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.result
}

// ErrorText returns the failure message, or "" outside Failed.
func (s *AnalysisState) ErrorText() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.errText
}

// ValidationText returns the pre-dispatch validation message, if any.
func (s *AnalysisState) ValidationText() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.validationText
}

// RawViewVisible reports whether the raw payload view is shown.
func (s *AnalysisState) RawViewVisible() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rawViewVisible
}

// CopyAcknowledged reports whether the copied badge is currently shown.
func (s *AnalysisState) CopyAcknowledged() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.copyAcknowledged
}

// BeginSubmit validates the input and, if valid, resets all per-submission
// state and enters Loading. Returns the trimmed URL and whether the caller
// should dispatch the request. Blank or whitespace-only input keeps the state
// out of Loading and records a validation message instead; it must never
// reach the network.
func (s *AnalysisState) BeginSubmit(rawURL string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	trimmed := strings.TrimSpace(rawURL)
	if trimmed == "" {
		s.phase = PhaseIdle
		s.result = nil
		s.errText = ""
		s.validationText = "Please enter a Reddit URL"
		s.rawViewVisible = false
		s.copyAcknowledged = false
		return "", false
	}

	s.phase = PhaseLoading
	s.result = nil
	s.errText = ""
	s.validationText = ""
	s.rawViewVisible = false
	s.copyAcknowledged = false
	return trimmed, true
}

// Complete stores a successful result and enters Success.
func (s *AnalysisState) Complete(result *types.AnalysisResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.phase = PhaseSuccess
	s.result = result
	s.errText = ""
}

// Fail records a terminal failure for this submission. No automatic retry;
// the only recovery path is a new submission.
func (s *AnalysisState) Fail(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.phase = PhaseFailed
	s.result = nil
	s.errText = message
}

// ToggleRawView flips raw payload visibility. Pure state toggle, only
// meaningful in Success.
func (s *AnalysisState) ToggleRawView() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhaseSuccess {
		return
	}
	s.rawViewVisible = !s.rawViewVisible
}

// AcknowledgeCopy marks the clipboard export as acknowledged.
func (s *AnalysisState) AcknowledgeCopy() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhaseSuccess {
		return
	}
	s.copyAcknowledged = true
}

// ExpireCopyAck clears the copied badge after its display window.
func (s *AnalysisState) ExpireCopyAck() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.copyAcknowledged = false
}

// Reset returns the state to Idle, dropping any result or error.
func (s *AnalysisState) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.phase = PhaseIdle
	s.result = nil
	s.errText = ""
	s.validationText = ""
	s.rawViewVisible = false
	s.copyAcknowledged = false
}
