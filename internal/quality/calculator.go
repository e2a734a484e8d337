// Package quality computes the post-run scan quality report: coverage
// estimates, a confidence histogram and detected quality gaps.
package quality

import (
	"fmt"

	"github.com/petrarca/doc-architect/internal/model"
	"github.com/petrarca/doc-architect/internal/scanner"
)

// highFailureRateThreshold is the failure-rate percentage above which a
// warning gap is emitted for a scanner.
const highFailureRateThreshold = 20.0

// totalFilePatterns approximates "all source and config files in the
// project". Union of matches, deduplicated by path.
var totalFilePatterns = []string{
	"**/*.java", "**/*.py", "**/*.cs", "**/*.go", "**/*.rb",
	"**/*.js", "**/*.ts", "**/*.xml", "**/*.json", "**/*.yaml",
	"**/*.yml", "**/*.tf", "**/*.sql", "**/*.graphql", "**/*.proto",
}

// CalculateReport computes the quality report from the accumulated scan
// results. Pure with respect to the results: it only reads them, plus
// the context for file-count estimates.
func CalculateReport(results *scanner.Results, ctx *scanner.ScanContext) *model.ScanQualityReport {
	total := estimateTotalFiles(ctx)
	analyzed := filesAnalyzed(results)

	// Scanners overlap (a Java scanner and a framework scanner may both
	// count the same file), so analyzed can exceed the estimate; clamp
	// instead of reporting a negative skip count.
	skipped := max(0, total-analyzed)

	return &model.ScanQualityReport{
		TotalFilesInProject:  total,
		FilesAnalyzed:        analyzed,
		FilesSkipped:         skipped,
		CoverageByComponent:  componentCoverage(results, ctx),
		FindingsByConfidence: findingsByConfidence(results),
		Gaps:                 detectGaps(results),
	}
}

func estimateTotalFiles(ctx *scanner.ScanContext) int {
	unique := make(map[string]struct{})
	for _, pattern := range totalFilePatterns {
		for _, path := range ctx.FindFiles(pattern) {
			unique[path] = struct{}{}
		}
	}
	return len(unique)
}

func filesAnalyzed(results *scanner.Results) int {
	total := 0
	for _, res := range results.All() {
		if res.Success && res.Statistics != nil {
			total += res.Statistics.FilesScanned
		}
	}
	return total
}

// componentCoverage compares naming-convention file estimates against
// actual finding counts per architecture component type. Best-effort
// approximation for the human reader, deliberately separate from the
// exact parse statistics.
func componentCoverage(results *scanner.Results, ctx *scanner.ScanContext) []model.ComponentCoverage {
	var coverage []model.ComponentCoverage

	add := func(label string, expected, found int) {
		if expected == 0 && found == 0 {
			return
		}
		var pct float64
		switch {
		case expected > 0:
			pct = min(float64(found)/float64(expected)*100, 100)
		case found > 0:
			pct = 100
		}
		coverage = append(coverage, model.ComponentCoverage{
			ComponentType: label,
			ExpectedFiles: expected,
			Found:         found,
			Percentage:    pct,
		})
	}

	add("REST APIs", countMatches(ctx,
		"**/*Controller.java", "**/routes.py", "**/views.py", "**/api.py",
		"**/*Controller.cs", "**/handler*.go", "**/router*.go",
	), sumFindings(results, func(r *scanner.ScanResult) int { return len(r.ApiEndpoints) }))

	add("Database Entities", countMatches(ctx,
		"**/entity/**/*.java", "**/model/**/*.java", "**/models.py",
		"**/Entities/**/*.cs", "**/Models/**/*.cs",
	), sumFindings(results, func(r *scanner.ScanResult) int { return len(r.DataEntities) }))

	add("Message Flows", countMatches(ctx,
		"**/*Consumer*.java", "**/*Producer*.java",
		"**/*consumer*.py", "**/*producer*.py",
	), sumFindings(results, func(r *scanner.ScanResult) int { return len(r.MessageFlows) }))

	add("Dependencies", countMatches(ctx,
		"**/pom.xml", "**/build.gradle*", "**/package.json", "**/requirements.txt",
		"**/pyproject.toml", "**/*.csproj", "**/go.mod", "**/Gemfile",
	), sumFindings(results, func(r *scanner.ScanResult) int { return len(r.Dependencies) }))

	return coverage
}

func countMatches(ctx *scanner.ScanContext, patterns ...string) int {
	total := 0
	for _, pattern := range patterns {
		total += len(ctx.FindFiles(pattern))
	}
	return total
}

func sumFindings(results *scanner.Results, count func(*scanner.ScanResult) int) int {
	total := 0
	for _, res := range results.All() {
		total += count(res)
	}
	return total
}

// findingsByConfidence buckets finding counts by confidence level. All
// findings are attributed to HIGH: scanners do not yet propagate
// per-finding tier tags to the aggregate level, and the report keeps
// that simplification rather than inventing an attribution scheme.
func findingsByConfidence(results *scanner.Results) map[string]int {
	histogram := make(map[string]int, 3)
	for _, level := range scanner.Levels() {
		histogram[level.String()] = 0
	}

	total := 0
	for _, res := range results.All() {
		total += res.FindingCount()
	}
	histogram[scanner.ConfidenceHigh.String()] = total
	return histogram
}

// detectGaps inspects every result for errors, warnings and high
// failure rates. One error gap per distinct error message, one warning
// gap for a result with warnings, one warning gap per scanner above the
// failure-rate threshold.
func detectGaps(results *scanner.Results) []model.QualityGap {
	var gaps []model.QualityGap

	for _, res := range results.All() {
		if !res.Success && len(res.Errors) > 0 {
			seen := make(map[string]struct{}, len(res.Errors))
			for _, e := range res.Errors {
				if _, dup := seen[e]; dup {
					continue
				}
				seen[e] = struct{}{}
				gaps = append(gaps, model.ErrorGap(res.ScannerID, "Scanner failed: "+e))
			}
		}

		if len(res.Warnings) > 0 {
			gaps = append(gaps, model.WarningGap(res.ScannerID, res.Warnings[0]))
		}

		if res.Statistics != nil && res.Statistics.HasFailures() {
			if rate := res.Statistics.FailureRate(); rate > highFailureRateThreshold {
				gaps = append(gaps, model.WarningGap(res.ScannerID,
					fmt.Sprintf("High failure rate: %.1f%% of files failed to parse", rate)))
			}
		}
	}

	return gaps
}
