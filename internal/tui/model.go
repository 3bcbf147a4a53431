package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/redditmood/internal/api"
	"github.com/studiowebux/redditmood/internal/history"
	"github.com/studiowebux/redditmood/internal/types"
)

// Mode represents the current TUI mode
type Mode int

const (
	ModeNormal Mode = iota
	ModeHistory
	ModeHelp
)

// copyAckWindow is how long the "Copied!" badge stays visible.
const copyAckWindow = 2 * time.Second

// Model represents the TUI state
type Model struct {
	// Core state
	client     *api.Client
	historyMgr *history.Manager // nil when history is disabled
	version    string

	mode      Mode
	state     *AnalysisState
	histState *HistoryState

	// Components
	urlInput   textinput.Model
	resultView viewport.Model
	spin       spinner.Model

	// UI state
	width         int
	height        int
	focusedPanel  string // "input" or "result"
	statusMsg     string
	errorMsg      string
	healthWarning string
}

// Init initializes the TUI
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.checkHealth())
}

// Cleanup closes database connections
func (m *Model) Cleanup() {
	if m.historyMgr != nil {
		_ = m.historyMgr.Close()
	}
}

// Update handles messages and updates the model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmd = m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateViewport()

	case spinner.TickMsg:
		// Only keep the spinner ticking while a request is in flight.
		if m.state.Phase() == PhaseLoading {
			m.spin, cmd = m.spin.Update(msg)
			m.updateResultView()
		}

	case analysisCompleteMsg:
		// Later-completing response wins; the previous result is replaced
		// wholesale.
		m.state.Complete(msg.result)
		m.statusMsg = fmt.Sprintf("Analyzed %d comments", msg.result.TotalComments())
		m.errorMsg = ""
		m.updateResultView()
		m.focusedPanel = "result"
		cmd = m.saveHistory(msg.url, msg.result)

	case analysisFailedMsg:
		m.state.Fail(msg.message)
		m.statusMsg = ""
		m.updateResultView()

	case resultCopiedMsg:
		m.state.AcknowledgeCopy()
		cmd = tea.Tick(copyAckWindow, func(time.Time) tea.Msg {
			return copyAckExpiredMsg{}
		})

	case copyAckExpiredMsg:
		m.state.ExpireCopyAck()

	case healthCheckMsg:
		if msg.err != nil {
			m.healthWarning = "analysis service unreachable"
		} else {
			m.healthWarning = ""
		}

	case historyLoadedMsg:
		m.histState.SetEntries(msg.entries)
		m.mode = ModeHistory
		if len(msg.entries) > 0 {
			m.statusMsg = fmt.Sprintf("Loaded %d past analyses", len(msg.entries))
		} else {
			m.statusMsg = "No past analyses"
		}

	case errorMsg:
		m.errorMsg = string(msg)
	}

	return m, cmd
}

// View renders the TUI
func (m Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	switch m.mode {
	case ModeHistory:
		return m.renderHistory()
	case ModeHelp:
		return m.renderHelp()
	default:
		return m.renderMain()
	}
}

// Custom message types
type analysisCompleteMsg struct {
	result *types.AnalysisResult
	url    string
}

type analysisFailedMsg struct {
	message string
}

type resultCopiedMsg struct{}

type copyAckExpiredMsg struct{}

type healthCheckMsg struct {
	err error
}

type historyLoadedMsg struct {
	entries []history.Entry
}

type errorMsg string

// updateViewport recalculates component sizes after a resize.
func (m *Model) updateViewport() {
	contentWidth := m.width - 4 // borders + padding
	if contentWidth < 20 {
		contentWidth = 20
	}

	m.urlInput.Width = contentWidth - 4

	// Header (1) + input box (3) + result borders (2) + status bar (1)
	resultHeight := m.height - 7
	if resultHeight < 3 {
		resultHeight = 3
	}
	m.resultView.Width = contentWidth
	m.resultView.Height = resultHeight

	m.updateResultView()
}

// updateResultView refreshes the result panel content from the current state.
func (m *Model) updateResultView() {
	m.resultView.SetContent(m.renderResultContent(m.resultView.Width))
}
