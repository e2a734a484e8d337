package scanner

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/petrarca/doc-architect/internal/progress"
)

// Orchestrator sequences scanners over a shared context. Scanners run
// strictly one after another in priority order because later scanners
// may read earlier results; a scanner that panics or fails never aborts
// the rest of the run.
type Orchestrator struct {
	scanners []Scanner
	log      *slog.Logger
	progress *progress.Progress
}

// NewOrchestrator creates an orchestrator over the given scanners,
// usually scanner.All().
func NewOrchestrator(scanners []Scanner, logger *slog.Logger, reporter *progress.Progress) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	if reporter == nil {
		reporter = progress.New(false, nil)
	}
	return &Orchestrator{scanners: scanners, log: logger, progress: reporter}
}

// Run executes every enabled, applicable scanner against the context and
// returns the ordered result accumulation plus non-fatal orchestration
// warnings (e.g. unknown ids in the enabled list).
//
// enabledIDs filters which scanners run; nil, empty or a list containing
// "all" enables everything. Unknown ids warn and are otherwise ignored
// (fail-open). Scanners whose AppliesTo returns false are skipped and
// contribute no result entry and no statistics.
func (o *Orchestrator) Run(ctx *ScanContext, enabledIDs []string) (*Results, []string) {
	selected, warnings := o.selectScanners(enabledIDs)

	// Stable sort keeps registration order for equal priorities, so two
	// runs over the same scanner set execute in the same order.
	sort.SliceStable(selected, func(i, j int) bool {
		return selected[i].Priority() < selected[j].Priority()
	})

	o.progress.Report(progress.Event{Type: progress.EventScanStart, Count: len(selected)})

	results := ctx.previous
	for _, s := range selected {
		if !o.applies(s, ctx) {
			o.log.Debug("scanner not applicable", "scanner", s.ID())
			o.progress.Report(progress.Event{Type: progress.EventScannerSkipped, ScannerID: s.ID(), Name: s.DisplayName()})
			continue
		}

		o.log.Info("running scanner", "scanner", s.ID(), "name", s.DisplayName())
		o.progress.Report(progress.Event{Type: progress.EventScannerStart, ScannerID: s.ID(), Name: s.DisplayName()})

		result := o.runScanner(s, ctx)
		results.add(result)

		if result.Success {
			o.progress.Report(progress.Event{
				Type:      progress.EventScannerComplete,
				ScannerID: s.ID(),
				Name:      s.DisplayName(),
				Count:     result.FindingCount(),
			})
			if result.HasFindings() {
				o.log.Debug("scanner findings",
					"scanner", s.ID(),
					"components", len(result.Components),
					"dependencies", len(result.Dependencies),
					"endpoints", len(result.ApiEndpoints),
					"entities", len(result.DataEntities),
					"flows", len(result.MessageFlows))
			}
		} else {
			o.progress.Report(progress.Event{Type: progress.EventScannerFailed, ScannerID: s.ID(), Name: s.DisplayName()})
		}
	}

	o.progress.Report(progress.Event{Type: progress.EventScanComplete, Count: results.Len()})
	return results, warnings
}

// selectScanners applies the enabled-ids filter. Unknown ids produce a
// warning naming the id and listing what is available; disabled-but-known
// ids are silently left out.
func (o *Orchestrator) selectScanners(enabledIDs []string) ([]Scanner, []string) {
	if len(enabledIDs) == 0 {
		return append([]Scanner(nil), o.scanners...), nil
	}
	for _, id := range enabledIDs {
		if id == "all" {
			return append([]Scanner(nil), o.scanners...), nil
		}
	}

	byID := make(map[string]Scanner, len(o.scanners))
	available := make([]string, 0, len(o.scanners))
	for _, s := range o.scanners {
		byID[s.ID()] = s
		available = append(available, s.ID())
	}

	var selected []Scanner
	var warnings []string
	enabled := make(map[string]bool, len(enabledIDs))
	for _, id := range enabledIDs {
		if _, ok := byID[id]; !ok {
			msg := fmt.Sprintf("unknown scanner id %q, available: [%s]", id, strings.Join(available, ", "))
			o.log.Warn("ignoring unknown scanner id", "id", id, "available", available)
			warnings = append(warnings, msg)
			continue
		}
		enabled[id] = true
	}
	// Preserve registration order rather than enable-list order
	for _, s := range o.scanners {
		if enabled[s.ID()] {
			selected = append(selected, s)
		}
	}
	return selected, warnings
}

// applies evaluates AppliesTo, treating a panic as "does not apply"
func (o *Orchestrator) applies(s Scanner, ctx *ScanContext) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			o.log.Error("scanner applicability check panicked", "scanner", s.ID(), "panic", r)
			ok = false
		}
	}()
	return s.AppliesTo(ctx)
}

// runScanner invokes Scan with panic isolation: an escaping panic is
// converted into a failed result so the remaining scanners still run.
func (o *Orchestrator) runScanner(s Scanner, ctx *ScanContext) (result *ScanResult) {
	defer func() {
		if r := recover(); r != nil {
			o.log.Error("scanner panicked", "scanner", s.ID(), "panic", r)
			result = FailedResult(s.ID(), fmt.Sprintf("scanner panicked: %v", r))
		}
	}()

	result = s.Scan(ctx)
	if result == nil {
		o.log.Error("scanner returned no result", "scanner", s.ID())
		return FailedResult(s.ID(), "scanner returned no result")
	}
	if !result.Success {
		o.log.Warn("scanner failed", "scanner", s.ID(), "errors", result.Errors)
	}
	return result
}
