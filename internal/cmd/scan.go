package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"log/slog"

	"github.com/spf13/cobra"

	"github.com/petrarca/doc-architect/internal/config"
	"github.com/petrarca/doc-architect/internal/gitmeta"
	"github.com/petrarca/doc-architect/internal/progress"
	"github.com/petrarca/doc-architect/internal/quality"
	"github.com/petrarca/doc-architect/internal/report"
	"github.com/petrarca/doc-architect/internal/scanner"

	// Scanners register themselves via init
	_ "github.com/petrarca/doc-architect/internal/scanner/scanners/gomod"
	_ "github.com/petrarca/doc-architect/internal/scanner/scanners/gradle"
	_ "github.com/petrarca/doc-architect/internal/scanner/scanners/jpa"
	_ "github.com/petrarca/doc-architect/internal/scanner/scanners/kafka"
	_ "github.com/petrarca/doc-architect/internal/scanner/scanners/maven"
	_ "github.com/petrarca/doc-architect/internal/scanner/scanners/springrest"
	_ "github.com/petrarca/doc-architect/internal/scanner/scanners/terraform"
)

var settings *config.Settings

var markdownFile string

var scanCmd = &cobra.Command{
	Use:   "scan [path]",
	Short: "Scan a repository and extract its architecture model",
	Long: `Scan analyzes a repository and writes the extracted architecture model
as JSON, together with a scan quality report.

Examples:
  doc-architect scan /path/to/project
  doc-architect scan --scanners maven,spring-rest /path/to/project
  doc-architect scan --exclude "**/generated/**" /path/to/project
  doc-architect scan -o - /path/to/project`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)

	// Initialize settings with defaults and environment variables
	settings = config.LoadSettings()

	scanCmd.Flags().StringVarP(&settings.OutputFile, "output", "o", settings.OutputFile, "Output file path, - for stdout (default: architecture.json)")
	scanCmd.Flags().BoolVar(&settings.PrettyPrint, "pretty", settings.PrettyPrint, "Pretty print JSON output")
	scanCmd.Flags().StringSliceVar(&settings.Scanners, "scanners", settings.Scanners, "Scanner ids to run (see 'doc-architect list'; default: all)")
	scanCmd.Flags().StringSliceVar(&settings.ExcludePatterns, "exclude", settings.ExcludePatterns, "Glob patterns to exclude (can be specified multiple times)")
	scanCmd.Flags().BoolVarP(&settings.Verbose, "verbose", "v", settings.Verbose, "Show per-scanner progress")
	scanCmd.Flags().StringVar(&markdownFile, "markdown", "", "Also write a markdown report to this file")

	// Logging flags - use defaults from environment variables
	scanCmd.Flags().String("log-level", settings.LogLevel.String(), "Log level: debug, info, warn, error")
	scanCmd.Flags().String("log-format", settings.LogFormat, "Log format: text or json")
	scanCmd.Flags().String("log-file", settings.LogFile, "Log file path (default: stderr)")
}

// configureLogging sets up logging based on command flags
func configureLogging(cmd *cobra.Command) *slog.Logger {
	logLevel, _ := cmd.Flags().GetString("log-level")
	logFormat, _ := cmd.Flags().GetString("log-format")
	logFile, _ := cmd.Flags().GetString("log-file")

	if level, err := config.ParseLogLevel(logLevel); err == nil {
		settings.LogLevel = level
	}
	settings.LogFormat = logFormat
	settings.LogFile = logFile

	return settings.ConfigureLogger()
}

// resolveScanPath resolves and validates the scan path from args
func resolveScanPath(args []string, logger *slog.Logger) string {
	path := "."
	if len(args) > 0 {
		path = strings.TrimSpace(args[0])
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		logger.Error("Invalid path", "error", err)
		os.Exit(1)
	}

	info, err := os.Stat(absPath)
	if os.IsNotExist(err) {
		logger.Error("Path does not exist", "path", absPath)
		os.Exit(1)
	}
	if err == nil && !info.IsDir() {
		logger.Error("Path is not a directory", "path", absPath)
		os.Exit(1)
	}
	return absPath
}

func runScan(cmd *cobra.Command, args []string) {
	logger := configureLogging(cmd)
	absPath := resolveScanPath(args, logger)

	projectConfig, err := config.LoadProjectConfig(absPath)
	if err != nil {
		logger.Error("Invalid project configuration", "error", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stderr, "Scanning: %s\n", absPath)

	searchRoots := resolveSearchRoots(absPath, projectConfig)
	ctx, err := scanner.NewScanContext(absPath, searchRoots, logger)
	if err != nil {
		logger.Error("Failed to create scan context", "error", err)
		os.Exit(1)
	}
	ctx.SetExcludes(projectConfig.MergeExcludes(settings.ExcludePatterns))

	var reporter *progress.Progress
	if settings.Verbose && !settings.NoProgress {
		reporter = progress.New(true, progress.NewSimpleHandler(os.Stderr))
	}

	orchestrator := scanner.NewOrchestrator(scanner.All(), logger, reporter)
	results, warnings := orchestrator.Run(ctx, projectConfig.MergeScanners(settings.Scanners))
	for _, warning := range warnings {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", warning)
	}

	projectName := projectConfig.ProjectName
	if projectName == "" {
		projectName = filepath.Base(absPath)
	}

	out := &report.Report{
		GeneratedAt: time.Now(),
		Model:       scanner.Aggregate(projectName, gitmeta.Describe(absPath), results),
		Quality:     quality.CalculateReport(results, ctx),
	}

	if err := writeReport(out); err != nil {
		logger.Error("Failed to write report", "error", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// resolveSearchRoots maps configured relative roots onto absolute paths
func resolveSearchRoots(absPath string, projectConfig *config.ProjectConfig) []string {
	var roots []string
	for _, root := range projectConfig.SearchRoots {
		if !filepath.IsAbs(root) {
			root = filepath.Join(absPath, root)
		}
		roots = append(roots, root)
	}
	return roots
}

func writeReport(out *report.Report) error {
	var writers []report.Writer

	switch settings.OutputFile {
	case "-", "":
		writers = append(writers, report.NewJSONWriter(os.Stdout, settings.PrettyPrint))
	default:
		file, err := os.Create(settings.OutputFile)
		if err != nil {
			return err
		}
		defer file.Close()
		writers = append(writers, report.NewJSONWriter(file, settings.PrettyPrint))
		// Summary on the terminal when JSON goes to a file
		writers = append(writers, report.NewConsoleWriter(os.Stderr))
	}

	if markdownFile != "" {
		file, err := os.Create(markdownFile)
		if err != nil {
			return err
		}
		defer file.Close()
		writers = append(writers, report.NewMarkdownWriter(file))
	}

	return report.NewMultiWriter(writers...).Write(out)
}
