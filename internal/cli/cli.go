// Package cli implements non-interactive one-shot analysis runs.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"gopkg.in/yaml.v3"

	"github.com/studiowebux/redditmood/internal/api"
	"github.com/studiowebux/redditmood/internal/config"
	"github.com/studiowebux/redditmood/internal/filter"
	"github.com/studiowebux/redditmood/internal/history"
	"github.com/studiowebux/redditmood/internal/types"
)

// RunOptions contains options for CLI execution
type RunOptions struct {
	URL          string
	Endpoint     string
	OutputFormat string // json/yaml/text, default text
	Query        string // JMESPath expression applied to the result
	NoHistory    bool
	Out          io.Writer // defaults to os.Stdout
}

// Run executes a single analysis in CLI mode.
func Run(opts RunOptions) error {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	url, err := types.ValidateURL(opts.URL)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := api.New(opts.Endpoint)
	result, err := client.Analyze(ctx, url)
	if err != nil {
		return fmt.Errorf("%s", api.UserMessage(err))
	}

	if !opts.NoHistory {
		saveHistory(url, result)
	}

	output, err := formatOutput(result, opts.OutputFormat, opts.Query)
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}
	fmt.Fprintln(out, output)

	return nil
}

// saveHistory records the analysis, best-effort.
func saveHistory(url string, result *types.AnalysisResult) {
	settings, err := config.LoadSettings()
	if err != nil || !config.HistoryEnabled(settings) {
		return
	}

	mgr, err := history.NewManager(config.DatabasePath)
	if err != nil {
		slog.Warn("failed to open history database", "error", err)
		return
	}
	defer mgr.Close()

	if err := mgr.Save(url, result); err != nil {
		slog.Warn("failed to save history entry", "error", err)
	}
}

// formatOutput formats the result based on the output format
func formatOutput(result *types.AnalysisResult, format, query string) (string, error) {
	if query != "" {
		text, err := result.CanonicalText()
		if err != nil {
			return "", err
		}
		filtered, err := filter.Apply(text, query)
		if err != nil {
			return "", fmt.Errorf("query error: %w", err)
		}
		return filtered, nil
	}

	switch format {
	case "json":
		return result.CanonicalText()

	case "yaml":
		data, err := yaml.Marshal(result)
		if err != nil {
			return "", err
		}
		return strings.TrimRight(string(data), "\n"), nil

	case "text", "":
		return formatText(result), nil

	default:
		return "", fmt.Errorf("unknown output format: %s", format)
	}
}

// formatText renders a plain-text summary for terminal output.
func formatText(result *types.AnalysisResult) string {
	var sb strings.Builder

	sb.WriteString(result.PostTitle)
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Overall: %s (%d comments)\n",
		strings.ToUpper(string(result.OverallSentiment)), result.TotalComments()))

	for _, g := range result.Groups {
		sb.WriteString(fmt.Sprintf("  %-8s %4d  %5.1f%%\n", g.Label, g.Count, g.Proportion*100))
	}

	sb.WriteString(fmt.Sprintf("Controversy: %.2f\n", result.Controversy))

	if len(result.Keywords) > 0 {
		sb.WriteString("Keywords: ")
		sb.WriteString(strings.Join(result.Keywords, ", "))
		sb.WriteString("\n")
	}

	for _, c := range result.NotableComments {
		sb.WriteString(fmt.Sprintf("  [%s] %s (score %d)\n", c.Sentiment, c.Snippet, c.Score))
	}

	return strings.TrimRight(sb.String(), "\n")
}
