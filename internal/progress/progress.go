// Package progress provides verbose scan progress reporting, decoupled
// from the orchestrator through an event stream.
package progress

// EventType identifies what happened during a scan run
type EventType int

const (
	EventScanStart EventType = iota
	EventScannerStart
	EventScannerComplete
	EventScannerSkipped
	EventScannerFailed
	EventScanComplete
)

// Event is one reportable occurrence during scanning
type Event struct {
	Type      EventType
	ScannerID string
	Name      string
	Count     int // scanners at scan start/complete, findings per scanner
}

// Handler processes events and produces output
type Handler interface {
	Handle(event Event)
}

// Progress dispatches events to a handler when enabled. A disabled
// Progress swallows everything, so callers never need nil checks.
type Progress struct {
	enabled bool
	handler Handler
}

// New creates a progress reporter
func New(enabled bool, handler Handler) *Progress {
	if handler == nil {
		enabled = false
	}
	return &Progress{enabled: enabled, handler: handler}
}

// Report forwards an event to the handler if reporting is enabled
func (p *Progress) Report(event Event) {
	if p == nil || !p.enabled {
		return
	}
	p.handler.Handle(event)
}
