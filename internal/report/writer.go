// Package report renders the architecture model and its quality report
// for humans (console, markdown) and machines (JSON).
package report

import (
	"io"
	"time"

	"github.com/petrarca/doc-architect/internal/model"
)

// Report bundles everything one scan run produced
type Report struct {
	GeneratedAt time.Time                `json:"generated_at"`
	Model       *model.ArchitectureModel `json:"model"`
	Quality     *model.ScanQualityReport `json:"quality,omitempty"`
}

// Writer renders a report to its configured destination
type Writer interface {
	Write(report *Report) error
}

// MultiWriter writes to several Writers in turn, e.g. console plus an
// output file. Stops on the first error.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the report to all configured Writers
func (m *MultiWriter) Write(report *Report) error {
	for _, w := range m.writers {
		if err := w.Write(report); err != nil {
			return err
		}
	}
	return nil
}

// baseWriter provides the shared output destination for writers
type baseWriter struct {
	output io.Writer
}

func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}
