package quality

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petrarca/doc-architect/internal/model"
	"github.com/petrarca/doc-architect/internal/scanner"
)

func newContext(t *testing.T, files map[string]string) *scanner.ScanContext {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	ctx, err := scanner.NewScanContext(dir, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	return ctx
}

func successResult(id string, scanned int) *scanner.ScanResult {
	builder := scanner.NewStatisticsBuilder().FilesDiscovered(scanned)
	for i := 0; i < scanned; i++ {
		builder.IncrementFilesScanned().IncrementFilesParsed()
	}
	res := scanner.EmptyResult(id)
	res.Statistics = builder.Build()
	return res
}

func runResults(t *testing.T, ctx *scanner.ScanContext, results ...*scanner.ScanResult) *scanner.Results {
	t.Helper()
	var scanners []scanner.Scanner
	for _, res := range results {
		scanners = append(scanners, &stubScanner{id: res.ScannerID, result: res})
	}
	out, _ := scanner.NewOrchestrator(scanners, slog.New(slog.NewTextHandler(io.Discard, nil)), nil).Run(ctx, nil)
	return out
}

type stubScanner struct {
	id     string
	result *scanner.ScanResult
}

func (s *stubScanner) ID() string                          { return s.id }
func (s *stubScanner) DisplayName() string                 { return s.id }
func (s *stubScanner) Priority() int                       { return 50 }
func (s *stubScanner) AppliesTo(*scanner.ScanContext) bool { return true }
func (s *stubScanner) Scan(*scanner.ScanContext) *scanner.ScanResult {
	return s.result
}

func TestCalculateReport(t *testing.T) {
	t.Run("file accounting with clamped skip count", func(t *testing.T) {
		ctx := newContext(t, map[string]string{
			"a.java": "x", "b.java": "x", "c.yaml": "x",
		})

		// Two scanners both scanned the same files: analyzed exceeds the
		// project estimate.
		results := runResults(t, ctx, successResult("one", 3), successResult("two", 3))

		report := CalculateReport(results, ctx)
		assert.Equal(t, 3, report.TotalFilesInProject)
		assert.Equal(t, 6, report.FilesAnalyzed)
		assert.Equal(t, 0, report.FilesSkipped, "skip count never goes negative")
	})

	t.Run("failed scanners contribute error gaps per distinct error", func(t *testing.T) {
		ctx := newContext(t, nil)
		failed := scanner.FailedResult("maven", "cannot open pom", "cannot open pom", "bad xml")

		report := CalculateReport(runResults(t, ctx, failed), ctx)

		errorGaps := report.GapsBySeverity(model.GapError)
		require.Len(t, errorGaps, 2, "duplicate error messages collapse")
		assert.Equal(t, "maven", errorGaps[0].ScannerID)
		assert.Contains(t, errorGaps[0].Message, "Scanner failed: cannot open pom")
	})

	t.Run("high failure rate produces a warning gap", func(t *testing.T) {
		ctx := newContext(t, nil)
		builder := scanner.NewStatisticsBuilder().FilesDiscovered(10)
		for i := 0; i < 7; i++ {
			builder.IncrementFilesScanned().IncrementFilesParsed()
		}
		for i := 0; i < 3; i++ {
			builder.IncrementFilesScanned().IncrementFilesFailed()
		}
		res := scanner.EmptyResult("terraform")
		res.Statistics = builder.Build()

		report := CalculateReport(runResults(t, ctx, res), ctx)

		warnings := report.GapsBySeverity(model.GapWarning)
		require.Len(t, warnings, 1)
		assert.Contains(t, warnings[0].Message, "High failure rate: 30.0%")
	})

	t.Run("moderate failure rate is not flagged", func(t *testing.T) {
		ctx := newContext(t, nil)
		builder := scanner.NewStatisticsBuilder().FilesDiscovered(10)
		for i := 0; i < 9; i++ {
			builder.IncrementFilesScanned().IncrementFilesParsed()
		}
		builder.IncrementFilesScanned().IncrementFilesFailed()
		res := scanner.EmptyResult("terraform")
		res.Statistics = builder.Build()

		report := CalculateReport(runResults(t, ctx, res), ctx)
		assert.Empty(t, report.GapsBySeverity(model.GapWarning))
	})

	t.Run("scanner warnings surface once", func(t *testing.T) {
		ctx := newContext(t, nil)
		res := scanner.EmptyResult("gradle")
		res.Warnings = []string{"version catalog not resolved", "second warning"}

		report := CalculateReport(runResults(t, ctx, res), ctx)

		warnings := report.GapsBySeverity(model.GapWarning)
		require.Len(t, warnings, 1, "only the first warning becomes a gap")
		assert.Equal(t, "version catalog not resolved", warnings[0].Message)
	})

	t.Run("confidence histogram initializes every level", func(t *testing.T) {
		ctx := newContext(t, nil)
		res := scanner.EmptyResult("maven")
		res.Components = []model.Component{{ID: "a"}, {ID: "b"}}

		report := CalculateReport(runResults(t, ctx, res), ctx)

		assert.Equal(t, 2, report.FindingsByConfidence["high"])
		assert.Equal(t, 0, report.FindingsByConfidence["medium"])
		assert.Equal(t, 0, report.FindingsByConfidence["low"])
		assert.Equal(t, 2, report.TotalFindings())
	})

	t.Run("component coverage caps at 100 percent", func(t *testing.T) {
		ctx := newContext(t, map[string]string{
			"src/OrderController.java": "x",
		})
		res := scanner.EmptyResult("spring-rest")
		res.ApiEndpoints = []model.ApiEndpoint{
			{Path: "/a"}, {Path: "/b"}, {Path: "/c"},
		}

		report := CalculateReport(runResults(t, ctx, res), ctx)

		var rest *model.ComponentCoverage
		for i := range report.CoverageByComponent {
			if report.CoverageByComponent[i].ComponentType == "REST APIs" {
				rest = &report.CoverageByComponent[i]
			}
		}
		require.NotNil(t, rest)
		assert.Equal(t, 1, rest.ExpectedFiles)
		assert.Equal(t, 3, rest.Found)
		assert.InDelta(t, 100.0, rest.Percentage, 0.01, "one file yielded several findings")
	})
}
