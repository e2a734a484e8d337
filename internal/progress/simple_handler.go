package progress

import (
	"fmt"
	"io"
)

// SimpleHandler prints flat, line-oriented progress output
type SimpleHandler struct {
	w io.Writer
}

// NewSimpleHandler creates a handler writing to w
func NewSimpleHandler(w io.Writer) *SimpleHandler {
	return &SimpleHandler{w: w}
}

// Handle writes one line per event
func (h *SimpleHandler) Handle(event Event) {
	switch event.Type {
	case EventScanStart:
		fmt.Fprintf(h.w, "Running %d scanners\n", event.Count)
	case EventScannerStart:
		fmt.Fprintf(h.w, "  → %s\n", event.Name)
	case EventScannerComplete:
		if event.Count > 0 {
			fmt.Fprintf(h.w, "  ✓ %s (%d findings)\n", event.Name, event.Count)
		}
	case EventScannerFailed:
		fmt.Fprintf(h.w, "  ✗ %s failed\n", event.Name)
	case EventScanComplete:
		fmt.Fprintf(h.w, "Executed %d scanners\n", event.Count)
	}
}
