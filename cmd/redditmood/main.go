package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/studiowebux/redditmood/internal/cli"
	"github.com/studiowebux/redditmood/internal/config"
	"github.com/studiowebux/redditmood/internal/logging"
	"github.com/studiowebux/redditmood/internal/tui"
)

var (
	version = "0.1.0"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "redditmood [url]",
	Short: "Reddit sentiment analysis client",
	Long: `redditmood analyzes the sentiment of a Reddit post's comments.

Run without arguments to start the interactive TUI, or provide a post URL
to analyze it directly and print the result.

Examples:
  redditmood                                        # Start interactive TUI
  redditmood https://reddit.com/r/golang/...        # Analyze and print summary
  redditmood analyze <url> -o json                  # Machine-readable output
  redditmood analyze <url> --query 'keywords[0]'    # Extract a single field
  redditmood --help                                 # Show help`,
	Version: version,
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Initialize(); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		// If a URL is provided, run in CLI mode
		if len(args) > 0 {
			return runCLI(args[0])
		}

		return runTUI()
	},
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze <url>",
	Short: "Analyze a Reddit post in CLI mode",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Initialize(); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}
		return runCLI(args[0])
	},
}

var (
	flagEndpoint  string
	flagOutput    string
	flagQuery     string
	flagNoHistory bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&flagEndpoint, "endpoint", "", "Analysis service endpoint")

	rootCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "Output format (json/yaml/text)")
	rootCmd.Flags().StringVarP(&flagQuery, "query", "q", "", "JMESPath query applied to the result")
	rootCmd.Flags().BoolVar(&flagNoHistory, "no-history", false, "Skip recording the analysis in history")

	analyzeCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "Output format (json/yaml/text)")
	analyzeCmd.Flags().StringVarP(&flagQuery, "query", "q", "", "JMESPath query applied to the result")
	analyzeCmd.Flags().BoolVar(&flagNoHistory, "no-history", false, "Skip recording the analysis in history")

	rootCmd.AddCommand(analyzeCmd)
}

// runCLI performs a single analysis and prints the result.
func runCLI(url string) error {
	logging.SetupStderr()

	opts := cli.RunOptions{
		URL:          url,
		Endpoint:     config.ResolveEndpoint(flagEndpoint),
		OutputFormat: flagOutput,
		Query:        flagQuery,
		NoHistory:    flagNoHistory,
	}
	return cli.Run(opts)
}

// runTUI starts the interactive TUI. Diagnostics go to a log file so they
// never corrupt the alternate screen.
func runTUI() error {
	closer, err := logging.Setup(config.LogPath)
	if err != nil {
		slog.Warn("failed to open log file", "error", err)
	} else {
		defer closer.Close()
	}

	return tui.Run(config.ResolveEndpoint(flagEndpoint), version)
}
