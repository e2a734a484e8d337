package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "doc-architect",
	Short: "Architecture model extractor for codebases",
	Long: `doc-architect scans a repository and extracts an architecture model:
components, dependencies, API endpoints, data entities and message flows.

Scanners parse build files and sources with precise parsers where possible
and fall back to pattern matching where not, so one malformed file never
aborts a scan. Every run ends with a quality report stating how much of
the project was actually analyzed.`,
	Version: "1.0.0",
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
