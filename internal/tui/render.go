package tui

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/lipgloss"
	"github.com/studiowebux/redditmood/internal/types"
)

// Adaptive color definitions for light/dark terminal support
var (
	colorGreen  = lipgloss.AdaptiveColor{Light: "#006400", Dark: "#00ff00"}
	colorRed    = lipgloss.AdaptiveColor{Light: "#8b0000", Dark: "#ff0000"}
	colorYellow = lipgloss.AdaptiveColor{Light: "#b8860b", Dark: "#ffff00"}
	colorGray   = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#888888"}
	colorCyan   = lipgloss.AdaptiveColor{Light: "#008b8b", Dark: "#00ffff"}
)

// Style definitions
var (
	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorCyan)

	styleSuccess = lipgloss.NewStyle().
			Foreground(colorGreen)

	styleError = lipgloss.NewStyle().
			Foreground(colorRed)

	styleWarning = lipgloss.NewStyle().
			Foreground(colorYellow)

	styleSubtle = lipgloss.NewStyle().
			Foreground(colorGray)

	styleSelected = lipgloss.NewStyle().
			Background(lipgloss.AdaptiveColor{Light: "#d3d3d3", Dark: "#3a3a3a"}).
			Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#ffffff"})
)

// sentimentStyle returns the display style for a sentiment label.
func sentimentStyle(s types.Sentiment) lipgloss.Style {
	switch s {
	case types.SentimentPositive:
		return styleSuccess
	case types.SentimentNegative:
		return styleError
	default:
		return styleSubtle
	}
}

// renderMain renders the main view (URL input + result panel)
func (m Model) renderMain() string {
	header := styleTitle.Render("redditmood") +
		styleSubtle.Render(" v"+m.version+" - Reddit sentiment analysis")
	if m.healthWarning != "" {
		header += "  " + styleWarning.Render("! "+m.healthWarning)
	}

	inputBorderColor := colorGray
	resultBorderColor := colorGray
	if m.focusedPanel == "input" {
		inputBorderColor = colorGreen
	} else {
		resultBorderColor = colorGreen
	}

	inputBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(inputBorderColor).
		Width(m.width - 2).
		Render(m.urlInput.View())

	resultBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(resultBorderColor).
		Width(m.width - 2).
		Render(m.resultView.View())

	statusBar := m.renderStatusBar()

	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		inputBox,
		resultBox,
		statusBar,
	)
}

// renderResultContent renders the result panel body for the current phase.
func (m Model) renderResultContent(width int) string {
	switch m.state.Phase() {
	case PhaseLoading:
		return m.spin.View() + " Analyzing sentiment..."

	case PhaseFailed:
		return styleError.Render("Error: " + m.state.ErrorText())

	case PhaseSuccess:
		result := m.state.Result()
		if result == nil {
			return ""
		}
		if m.state.RawViewVisible() {
			return renderRawResult(result)
		}
		return renderSummary(result, width)

	default:
		if v := m.state.ValidationText(); v != "" {
			return styleWarning.Render(v)
		}
		return styleSubtle.Render("Enter a Reddit post URL and press Enter to analyze its sentiment.")
	}
}

// renderSummary renders the human-readable result view.
func renderSummary(result *types.AnalysisResult, width int) string {
	var sb strings.Builder

	sb.WriteString(styleTitle.Render(result.PostTitle))
	sb.WriteString("\n\n")

	overall := sentimentStyle(result.OverallSentiment).Bold(true).
		Render(strings.ToUpper(string(result.OverallSentiment)))
	sb.WriteString(fmt.Sprintf("Overall sentiment: %s", overall))
	sb.WriteString(styleSubtle.Render(fmt.Sprintf("  (%d comments)", result.TotalComments())))
	sb.WriteString("\n\n")

	if len(result.Groups) > 0 {
		barWidth := width - 30
		if barWidth < 10 {
			barWidth = 10
		}
		if barWidth > 40 {
			barWidth = 40
		}
		for _, g := range result.Groups {
			sb.WriteString(renderGroupBar(g, barWidth))
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	sb.WriteString(fmt.Sprintf("Controversy: %.2f\n\n", result.Controversy))

	if len(result.Keywords) > 0 {
		sb.WriteString("Keywords: ")
		sb.WriteString(styleSubtle.Render(strings.Join(result.Keywords, ", ")))
		sb.WriteString("\n\n")
	}

	if len(result.NotableComments) > 0 {
		sb.WriteString(styleTitle.Render("Notable comments"))
		sb.WriteString("\n")
		for _, c := range result.NotableComments {
			marker := sentimentStyle(c.Sentiment).Render("●")
			sb.WriteString(fmt.Sprintf("%s %s\n", marker, c.Snippet))
			sb.WriteString(styleSubtle.Render(fmt.Sprintf("  %s | score %d\n", c.Sentiment, c.Score)))
		}
	}

	return sb.String()
}

// renderGroupBar renders one sentiment group as a proportional bar.
func renderGroupBar(g types.SentimentGroup, barWidth int) string {
	filled := int(g.Proportion*float64(barWidth) + 0.5)
	if filled > barWidth {
		filled = barWidth
	}
	bar := sentimentStyle(g.Label).Render(strings.Repeat("█", filled)) +
		styleSubtle.Render(strings.Repeat("░", barWidth-filled))

	label := fmt.Sprintf("%-8s", g.Label)
	return fmt.Sprintf("%s %s %3.0f%% (%d)", label, bar, g.Proportion*100, g.Count)
}

// renderRawResult renders the canonical JSON payload with syntax highlighting.
func renderRawResult(result *types.AnalysisResult) string {
	text, err := result.CanonicalText()
	if err != nil {
		return styleError.Render("Failed to serialize result: " + err.Error())
	}

	var buf bytes.Buffer
	if err := quick.Highlight(&buf, text, "json", "terminal256", "monokai"); err != nil {
		return text
	}
	return buf.String()
}

// renderStatusBar renders the bottom status line.
func (m Model) renderStatusBar() string {
	var left string
	switch {
	case m.state.CopyAcknowledged():
		left = styleSuccess.Render("Copied!")
	case m.errorMsg != "":
		left = styleError.Render(m.errorMsg)
	case m.statusMsg != "":
		left = styleSuccess.Render(m.statusMsg)
	case m.state.Phase() == PhaseFailed:
		left = styleError.Render(m.state.ErrorText())
	}

	hints := "tab: focus | enter: analyze | r: raw | c: copy | ctrl+h: history | ?: help | ctrl+c: quit"
	right := styleSubtle.Render(hints)

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return left
	}
	return left + strings.Repeat(" ", gap) + right
}

// renderHistory renders the history browser.
func (m Model) renderHistory() string {
	var sb strings.Builder

	sb.WriteString(styleTitle.Render("History"))
	if q := m.histState.Query(); q != "" {
		sb.WriteString(styleSubtle.Render("  filter: ") + q)
	} else {
		sb.WriteString(styleSubtle.Render("  (type to filter)"))
	}
	sb.WriteString("\n\n")

	entries := m.histState.Visible()
	if len(entries) == 0 {
		sb.WriteString(styleSubtle.Render("No past analyses."))
	}

	maxRows := m.height - 6
	if maxRows < 1 {
		maxRows = 1
	}
	for i, e := range entries {
		if i >= maxRows {
			sb.WriteString(styleSubtle.Render(fmt.Sprintf("... and %d more\n", len(entries)-maxRows)))
			break
		}

		badge := sentimentStyle(types.Sentiment(e.OverallSentiment)).
			Render(fmt.Sprintf("%-8s", e.OverallSentiment))
		line := fmt.Sprintf("%s %s  %s", e.Timestamp.Local().Format("2006-01-02 15:04"), badge, e.PostTitle)
		if i == m.histState.Index() {
			line = styleSelected.Render(line)
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(styleSubtle.Render("up/down: select | enter: open | ctrl+x: clear all | esc: back"))
	return sb.String()
}

// renderHelp renders the key binding reference.
func (m Model) renderHelp() string {
	rows := [][2]string{
		{"enter", "analyze the entered URL"},
		{"tab", "switch focus between input and result"},
		{"r", "toggle raw JSON view (result focused)"},
		{"c / y", "copy result to clipboard (result focused)"},
		{"j/k, pgup/pgdown", "scroll the result"},
		{"ctrl+h / h", "browse past analyses"},
		{"?", "toggle this help"},
		{"q / ctrl+c", "quit"},
	}

	var sb strings.Builder
	sb.WriteString(styleTitle.Render("redditmood help"))
	sb.WriteString("\n\n")
	for _, row := range rows {
		sb.WriteString(fmt.Sprintf("  %-18s %s\n", styleSuccess.Render(row[0]), row[1]))
	}
	sb.WriteString("\n")
	sb.WriteString(styleSubtle.Render("press esc to close"))
	return sb.String()
}
