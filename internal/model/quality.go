package model

// GapSeverity grades a quality gap
type GapSeverity string

const (
	GapInfo    GapSeverity = "info"
	GapWarning GapSeverity = "warning"
	GapError   GapSeverity = "error"
)

// QualityGap is a surfaced coverage or reliability issue for one scanner.
// Gaps are derived from scan results after the run; scanners never create
// them directly.
type QualityGap struct {
	ScannerID string      `json:"scanner_id"`
	Message   string      `json:"message"`
	Severity  GapSeverity `json:"severity"`
}

// InfoGap creates an info-severity gap
func InfoGap(scannerID, message string) QualityGap {
	return QualityGap{ScannerID: scannerID, Message: message, Severity: GapInfo}
}

// WarningGap creates a warning-severity gap
func WarningGap(scannerID, message string) QualityGap {
	return QualityGap{ScannerID: scannerID, Message: message, Severity: GapWarning}
}

// ErrorGap creates an error-severity gap
func ErrorGap(scannerID, message string) QualityGap {
	return QualityGap{ScannerID: scannerID, Message: message, Severity: GapError}
}

// ComponentCoverage compares the heuristic "expected" file count for one
// architecture component type against the findings actually extracted.
// Percentage is capped at 100 because the estimate is file-name based and
// a single file can yield several findings.
type ComponentCoverage struct {
	ComponentType string  `json:"component_type"`
	ExpectedFiles int     `json:"expected_files"`
	Found         int     `json:"found"`
	Percentage    float64 `json:"percentage"`
}

// ScanQualityReport summarizes scan completeness for one run.
// Computed once after all scanners finish; read-only afterwards.
type ScanQualityReport struct {
	TotalFilesInProject  int                 `json:"total_files_in_project"`
	FilesAnalyzed        int                 `json:"files_analyzed"`
	FilesSkipped         int                 `json:"files_skipped"`
	CoverageByComponent  []ComponentCoverage `json:"coverage_by_component"`
	FindingsByConfidence map[string]int      `json:"findings_by_confidence"`
	Gaps                 []QualityGap        `json:"gaps"`
}

// CoveragePercentage is the share of estimated project files that some
// scanner analyzed
func (r *ScanQualityReport) CoveragePercentage() float64 {
	if r.TotalFilesInProject == 0 {
		return 0
	}
	return float64(r.FilesAnalyzed) / float64(r.TotalFilesInProject) * 100
}

// TotalFindings sums the confidence histogram
func (r *ScanQualityReport) TotalFindings() int {
	total := 0
	for _, n := range r.FindingsByConfidence {
		total += n
	}
	return total
}

// HasGaps reports whether any gap was detected
func (r *ScanQualityReport) HasGaps() bool {
	return len(r.Gaps) > 0
}

// GapsBySeverity filters gaps by severity
func (r *ScanQualityReport) GapsBySeverity(severity GapSeverity) []QualityGap {
	var out []QualityGap
	for _, g := range r.Gaps {
		if g.Severity == severity {
			out = append(out, g)
		}
	}
	return out
}
