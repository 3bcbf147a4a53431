package tui

import (
	"context"
	"log/slog"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/redditmood/internal/api"
	"github.com/studiowebux/redditmood/internal/types"
)

// clipboardWriteAll is the clipboard write capability; a package variable so
// tests can stub the platform clipboard.
var clipboardWriteAll = clipboard.WriteAll

// healthCheckTimeout bounds the startup health probe.
const healthCheckTimeout = 3 * time.Second

// submitAnalysis validates the input and dispatches one analysis request.
// While a request is in flight the boundary ignores further submissions; the
// state machine itself does not deduplicate.
func (m *Model) submitAnalysis() tea.Cmd {
	if m.state.Phase() == PhaseLoading {
		return nil
	}

	url, ok := m.state.BeginSubmit(m.urlInput.Value())
	m.statusMsg = ""
	m.errorMsg = ""
	m.updateResultView()
	if !ok {
		return nil
	}

	client := m.client
	return tea.Batch(m.spin.Tick, func() tea.Msg {
		result, err := client.Analyze(context.Background(), url)
		if err != nil {
			return analysisFailedMsg{message: api.UserMessage(err)}
		}
		return analysisCompleteMsg{result: result, url: url}
	})
}

// copyResult serializes the current result to its canonical text form and
// writes it to the clipboard. Clipboard failures never change the
// interaction state; they only go to the diagnostic log.
func (m *Model) copyResult() tea.Cmd {
	result := m.state.Result()
	if result == nil {
		return nil
	}

	return func() tea.Msg {
		text, err := result.CanonicalText()
		if err != nil {
			slog.Warn("failed to serialize result for clipboard", "error", err)
			return nil
		}
		if err := clipboardWriteAll(text); err != nil {
			slog.Warn("failed to copy result to clipboard", "error", err)
			return nil
		}
		return resultCopiedMsg{}
	}
}

// saveHistory records a completed analysis, best-effort.
func (m *Model) saveHistory(url string, result *types.AnalysisResult) tea.Cmd {
	if m.historyMgr == nil {
		return nil
	}
	mgr := m.historyMgr
	return func() tea.Msg {
		if err := mgr.Save(url, result); err != nil {
			slog.Warn("failed to save analysis to history", "error", err)
		}
		return nil
	}
}

// loadHistory fetches past analyses for the history browser.
func (m *Model) loadHistory() tea.Cmd {
	if m.historyMgr == nil {
		return func() tea.Msg {
			return errorMsg("History is disabled")
		}
	}
	mgr := m.historyMgr
	return func() tea.Msg {
		entries, err := mgr.List(200)
		if err != nil {
			return errorMsg("Failed to load history: " + err.Error())
		}
		return historyLoadedMsg{entries: entries}
	}
}

// clearHistory deletes all saved analyses and reloads the (empty) list.
func (m *Model) clearHistory() tea.Cmd {
	if m.historyMgr == nil {
		return nil
	}
	mgr := m.historyMgr
	return func() tea.Msg {
		if err := mgr.Clear(); err != nil {
			return errorMsg("Failed to clear history: " + err.Error())
		}
		return historyLoadedMsg{entries: nil}
	}
}

// restoreHistoryEntry loads a stored result back into the success state.
func (m *Model) restoreHistoryEntry() tea.Cmd {
	entry := m.histState.Selected()
	if entry == nil {
		return nil
	}

	result, err := entry.Result()
	if err != nil {
		return func() tea.Msg {
			return errorMsg("Failed to restore analysis: " + err.Error())
		}
	}

	m.urlInput.SetValue(entry.URL)
	m.state.Complete(result)
	m.mode = ModeNormal
	m.focusedPanel = "result"
	m.statusMsg = "Restored analysis from history"
	m.updateResultView()
	return nil
}

// checkHealth probes the analysis service once at startup.
func (m *Model) checkHealth() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), healthCheckTimeout)
		defer cancel()
		return healthCheckMsg{err: client.Health(ctx)}
	}
}
