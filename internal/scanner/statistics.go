package scanner

import (
	"fmt"
	"sync"
)

// maxTopErrors caps the per-scanner error detail list
const maxTopErrors = 10

// ScanStatistics are the frozen per-scanner parsing counters. Built
// incrementally through a StatisticsBuilder during the scan loop, then
// attached to the scanner's ScanResult as an immutable value.
type ScanStatistics struct {
	FilesDiscovered  int            `json:"files_discovered"`
	FilesScanned     int            `json:"files_scanned"`
	FilesParsed      int            `json:"files_parsed"`
	FilesFallback    int            `json:"files_fallback"`
	FilesFailed      int            `json:"files_failed"`
	FilesPreFiltered int            `json:"files_pre_filtered"`
	ErrorCounts      map[string]int `json:"error_counts,omitempty"`
	TopErrors        []string       `json:"top_errors,omitempty"`
}

// SuccessRate is the share of attempted files parsed by either tier, as
// a percentage in [0,100]. Zero when no files were attempted.
func (s *ScanStatistics) SuccessRate() float64 {
	if s.FilesScanned == 0 {
		return 0
	}
	return float64(s.FilesParsed+s.FilesFallback) * 100 / float64(s.FilesScanned)
}

// OverallParseRate relates parsed files to all files discovered,
// including pre-filtered ones. Zero when nothing was discovered.
func (s *ScanStatistics) OverallParseRate() float64 {
	if s.FilesDiscovered == 0 {
		return 0
	}
	return float64(s.FilesParsed+s.FilesFallback) * 100 / float64(s.FilesDiscovered)
}

// FailureRate is the share of attempted files that failed outright
func (s *ScanStatistics) FailureRate() float64 {
	if s.FilesScanned == 0 {
		return 0
	}
	return float64(s.FilesFailed) * 100 / float64(s.FilesScanned)
}

// HasFailures reports whether any file failed to parse
func (s *ScanStatistics) HasFailures() bool {
	return s.FilesFailed > 0
}

// UsedFallback reports whether the regex tier produced any result
func (s *ScanStatistics) UsedFallback() bool {
	return s.FilesFallback > 0
}

// Summary returns a one-line human-readable digest
func (s *ScanStatistics) Summary() string {
	return fmt.Sprintf(
		"discovered: %d, scanned: %d, parsed: %d, fallback: %d, failed: %d (%.1f%%)",
		s.FilesDiscovered, s.FilesScanned, s.FilesParsed, s.FilesFallback,
		s.FilesFailed, s.FailureRate(),
	)
}

// StatisticsBuilder accumulates counters during one scanner run. Safe
// for concurrent use so the pipeline may fan out over files.
type StatisticsBuilder struct {
	mu    sync.Mutex
	stats ScanStatistics
}

// NewStatisticsBuilder creates an empty builder
func NewStatisticsBuilder() *StatisticsBuilder {
	return &StatisticsBuilder{}
}

// FilesDiscovered records the total number of files matching the
// scanner's glob patterns. Set once, from the file-finding step.
func (b *StatisticsBuilder) FilesDiscovered(n int) *StatisticsBuilder {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stats.FilesDiscovered = n
	return b
}

// IncrementFilesScanned records one attempted file (survived
// pre-filtering). Called exactly once per attempted file.
func (b *StatisticsBuilder) IncrementFilesScanned() *StatisticsBuilder {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stats.FilesScanned++
	return b
}

// IncrementFilesParsed records one structural-tier success
func (b *StatisticsBuilder) IncrementFilesParsed() *StatisticsBuilder {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stats.FilesParsed++
	return b
}

// IncrementFilesFallback records one fallback-tier success
func (b *StatisticsBuilder) IncrementFilesFallback() *StatisticsBuilder {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stats.FilesFallback++
	return b
}

// IncrementFilesFailed records one outright failure (I/O or unexpected
// error)
func (b *StatisticsBuilder) IncrementFilesFailed() *StatisticsBuilder {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stats.FilesFailed++
	return b
}

// IncrementFilesPreFiltered records one file short-circuited by the
// pre-filter hook, kept separate from attempted files so failure rates
// stay meaningful.
func (b *StatisticsBuilder) IncrementFilesPreFiltered() *StatisticsBuilder {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stats.FilesPreFiltered++
	return b
}

// AddError counts an error by kind and keeps up to 10 detail messages
func (b *StatisticsBuilder) AddError(kind, detail string) *StatisticsBuilder {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.stats.ErrorCounts == nil {
		b.stats.ErrorCounts = make(map[string]int)
	}
	b.stats.ErrorCounts[kind]++
	if len(b.stats.TopErrors) < maxTopErrors {
		b.stats.TopErrors = append(b.stats.TopErrors, detail)
	}
	return b
}

// Build freezes the accumulated counters into an immutable snapshot
func (b *StatisticsBuilder) Build() *ScanStatistics {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := b.stats
	if len(b.stats.ErrorCounts) > 0 {
		out.ErrorCounts = make(map[string]int, len(b.stats.ErrorCounts))
		for k, v := range b.stats.ErrorCounts {
			out.ErrorCounts[k] = v
		}
	}
	out.TopErrors = append([]string(nil), b.stats.TopErrors...)
	return &out
}
