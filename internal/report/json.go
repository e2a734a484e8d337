package report

import (
	"encoding/json"
	"io"
)

// JSONWriter outputs the report as JSON, the format downstream
// documentation generators consume.
type JSONWriter struct {
	baseWriter
	pretty bool
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer
func NewJSONWriter(output io.Writer, pretty bool) *JSONWriter {
	return &JSONWriter{
		baseWriter: newBaseWriter(output),
		pretty:     pretty,
	}
}

// Write outputs the full report as a single JSON document
func (w *JSONWriter) Write(report *Report) error {
	encoder := json.NewEncoder(w.output)
	if w.pretty {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(report)
}
