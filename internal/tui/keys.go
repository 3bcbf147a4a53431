package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// handleKeyPress routes key presses based on current mode
func (m *Model) handleKeyPress(msg tea.KeyMsg) tea.Cmd {
	// Global keys (work in all modes)
	if msg.String() == "ctrl+c" {
		m.Cleanup()
		return tea.Quit
	}

	switch m.mode {
	case ModeHistory:
		return m.handleHistoryKeys(msg)
	case ModeHelp:
		return m.handleHelpKeys(msg)
	default:
		return m.handleNormalKeys(msg)
	}
}

// handleNormalKeys handles the main view. The URL input owns most keys while
// focused; the result panel uses single-letter bindings.
func (m *Model) handleNormalKeys(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "tab":
		if m.focusedPanel == "input" {
			m.focusedPanel = "result"
			m.urlInput.Blur()
		} else {
			m.focusedPanel = "input"
			m.urlInput.Focus()
		}
		return nil

	case "enter":
		if m.focusedPanel == "input" {
			return m.submitAnalysis()
		}
		return nil

	case "ctrl+h":
		return m.loadHistory()
	}

	if m.focusedPanel == "result" {
		return m.handleResultPanelKeys(msg)
	}

	// Everything else edits the URL input.
	var cmd tea.Cmd
	m.urlInput, cmd = m.urlInput.Update(msg)
	return cmd
}

// handleResultPanelKeys handles bindings scoped to the result panel.
func (m *Model) handleResultPanelKeys(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q":
		m.Cleanup()
		return tea.Quit

	case "r":
		m.state.ToggleRawView()
		m.updateResultView()
		m.resultView.GotoTop()
		return nil

	case "c", "y":
		return m.copyResult()

	case "h":
		return m.loadHistory()

	case "?":
		m.mode = ModeHelp
		return nil

	case "j", "down":
		m.resultView.LineDown(1)
		return nil

	case "k", "up":
		m.resultView.LineUp(1)
		return nil

	case "ctrl+d", "pgdown":
		m.resultView.HalfViewDown()
		return nil

	case "ctrl+u", "pgup":
		m.resultView.HalfViewUp()
		return nil

	case "g", "home":
		m.resultView.GotoTop()
		return nil

	case "G", "end":
		m.resultView.GotoBottom()
		return nil
	}

	return nil
}

// handleHistoryKeys handles the history browser. Printable characters feed
// the fuzzy search; arrows navigate.
func (m *Model) handleHistoryKeys(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		if m.histState.Query() != "" {
			m.histState.SetQuery("")
			return nil
		}
		m.mode = ModeNormal
		return nil

	case "enter":
		return m.restoreHistoryEntry()

	case "up":
		m.histState.Navigate(-1)
		return nil

	case "down":
		m.histState.Navigate(1)
		return nil

	case "ctrl+x":
		return m.clearHistory()

	case "backspace":
		query := m.histState.Query()
		if query != "" {
			m.histState.SetQuery(query[:len(query)-1])
		}
		return nil
	}

	if msg.Type == tea.KeyRunes {
		m.histState.SetQuery(m.histState.Query() + string(msg.Runes))
	}
	return nil
}

// handleHelpKeys dismisses the help view.
func (m *Model) handleHelpKeys(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc", "q", "?":
		m.mode = ModeNormal
	}
	return nil
}
