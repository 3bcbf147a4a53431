package tui

import (
	"log/slog"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/redditmood/internal/api"
	"github.com/studiowebux/redditmood/internal/config"
	"github.com/studiowebux/redditmood/internal/history"
)

// New creates a new TUI model. historyMgr may be nil when history is
// disabled.
func New(client *api.Client, historyMgr *history.Manager, version string) Model {
	input := textinput.New()
	input.Placeholder = "https://reddit.com/r/..."
	input.Prompt = "URL> "
	input.CharLimit = 2048
	input.Focus()

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = styleTitle

	return Model{
		client:       client,
		historyMgr:   historyMgr,
		version:      version,
		mode:         ModeNormal,
		state:        NewAnalysisState(),
		histState:    NewHistoryState(),
		urlInput:     input,
		resultView:   viewport.New(80, 20),
		spin:         spin,
		focusedPanel: "input",
	}
}

// Run starts the TUI against the given analysis endpoint.
func Run(endpoint string, version string) error {
	client := api.New(endpoint)

	var historyMgr *history.Manager
	settings, err := config.LoadSettings()
	if err != nil {
		slog.Warn("failed to load settings", "error", err)
		settings = nil
	}
	if config.HistoryEnabled(settings) {
		historyMgr, err = history.NewManager(config.DatabasePath)
		if err != nil {
			// History is optional; run without it.
			slog.Warn("failed to open history database", "error", err)
			historyMgr = nil
		}
	}

	m := New(client, historyMgr, version)

	p := tea.NewProgram(&m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}

	m.Cleanup()
	return nil
}
