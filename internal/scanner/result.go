package scanner

import (
	"sort"

	"github.com/petrarca/doc-architect/internal/model"
)

// ScanResult is what a scanner returns after execution. Produced exactly
// once per scanner per run and treated as immutable once returned.
type ScanResult struct {
	ScannerID     string               `json:"scanner_id"`
	Success       bool                 `json:"success"`
	Components    []model.Component    `json:"components,omitempty"`
	Dependencies  []model.Dependency   `json:"dependencies,omitempty"`
	ApiEndpoints  []model.ApiEndpoint  `json:"api_endpoints,omitempty"`
	MessageFlows  []model.MessageFlow  `json:"message_flows,omitempty"`
	DataEntities  []model.DataEntity   `json:"data_entities,omitempty"`
	Relationships []model.Relationship `json:"relationships,omitempty"`
	Warnings      []string             `json:"warnings,omitempty"`
	Errors        []string             `json:"errors,omitempty"`
	Statistics    *ScanStatistics      `json:"statistics,omitempty"`
}

// EmptyResult creates a successful result with no findings. Used when a
// scanner applies but finds nothing to report.
func EmptyResult(scannerID string) *ScanResult {
	return &ScanResult{ScannerID: scannerID, Success: true}
}

// FailedResult creates a failed result carrying error messages
func FailedResult(scannerID string, errs ...string) *ScanResult {
	return &ScanResult{ScannerID: scannerID, Success: false, Errors: errs}
}

// HasFindings reports whether the result carries any extracted data
func (r *ScanResult) HasFindings() bool {
	return len(r.Components) > 0 ||
		len(r.Dependencies) > 0 ||
		len(r.ApiEndpoints) > 0 ||
		len(r.MessageFlows) > 0 ||
		len(r.DataEntities) > 0 ||
		len(r.Relationships) > 0
}

// FindingCount counts components, endpoints, entities and message flows.
// Dependencies and relationships are excluded, matching how the quality
// report buckets findings.
func (r *ScanResult) FindingCount() int {
	return len(r.Components) + len(r.ApiEndpoints) + len(r.DataEntities) + len(r.MessageFlows)
}

// Results is the ordered accumulation of scan results keyed by scanner
// id. The orchestrator owns the only mutator; everything outside this
// package gets a read-only view.
type Results struct {
	order []string
	byID  map[string]*ScanResult
}

func newResults() *Results {
	return &Results{byID: make(map[string]*ScanResult)}
}

// add appends a completed result. Unexported: only the orchestrator
// (same package) may grow the accumulation.
func (r *Results) add(res *ScanResult) {
	if _, exists := r.byID[res.ScannerID]; !exists {
		r.order = append(r.order, res.ScannerID)
	}
	r.byID[res.ScannerID] = res
}

// Get returns the result for a scanner id
func (r *Results) Get(id string) (*ScanResult, bool) {
	res, ok := r.byID[id]
	return res, ok
}

// IDs returns scanner ids in execution order
func (r *Results) IDs() []string {
	ids := make([]string, len(r.order))
	copy(ids, r.order)
	return ids
}

// Len returns the number of accumulated results
func (r *Results) Len() int {
	return len(r.order)
}

// All returns the results in execution order
func (r *Results) All() []*ScanResult {
	out := make([]*ScanResult, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out
}

// SortedIDs returns scanner ids sorted lexically; used where stable
// output matters more than execution order (JSON rendering).
func (r *Results) SortedIDs() []string {
	ids := r.IDs()
	sort.Strings(ids)
	return ids
}
