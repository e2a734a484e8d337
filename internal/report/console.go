package report

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/petrarca/doc-architect/internal/model"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Underline(true)
	sectionStyle = lipgloss.NewStyle().Bold(true)
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	errStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	dimStyle     = lipgloss.NewStyle().Faint(true)
)

// ConsoleWriter renders a compact summary for the terminal. Styling is
// disabled automatically when output is not a TTY, so piping stays
// clean.
type ConsoleWriter struct {
	baseWriter
	styled bool
}

// NewConsoleWriter creates a ConsoleWriter for the given output
func NewConsoleWriter(output io.Writer) *ConsoleWriter {
	styled := false
	if f, ok := output.(*os.File); ok {
		styled = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return &ConsoleWriter{
		baseWriter: newBaseWriter(output),
		styled:     styled,
	}
}

func (w *ConsoleWriter) render(style lipgloss.Style, text string) string {
	if !w.styled {
		return text
	}
	return style.Render(text)
}

// Write outputs the summary
func (w *ConsoleWriter) Write(report *Report) error {
	m := report.Model

	fmt.Fprintln(w.output, w.render(titleStyle, "Architecture: "+m.ProjectName))
	if repo := m.Repository; repo != nil {
		fmt.Fprintln(w.output, w.render(dimStyle, "  "+revisionText(repo)))
	}
	fmt.Fprintln(w.output)

	fmt.Fprintln(w.output, w.render(sectionStyle, "Findings"))
	fmt.Fprintf(w.output, "  components:    %d\n", len(m.Components))
	fmt.Fprintf(w.output, "  dependencies:  %d\n", len(m.Dependencies))
	fmt.Fprintf(w.output, "  api endpoints: %d\n", len(m.ApiEndpoints))
	fmt.Fprintf(w.output, "  data entities: %d\n", len(m.DataEntities))
	fmt.Fprintf(w.output, "  message flows: %d\n", len(m.MessageFlows))
	fmt.Fprintln(w.output)

	if report.Quality != nil {
		w.writeQuality(report.Quality)
	}

	return nil
}

func (w *ConsoleWriter) writeQuality(quality *model.ScanQualityReport) {
	fmt.Fprintln(w.output, w.render(sectionStyle, "Scan quality"))
	fmt.Fprintf(w.output, "  files analyzed: %d/%d (%.1f%%)\n",
		quality.FilesAnalyzed, quality.TotalFilesInProject, quality.CoveragePercentage())

	if !quality.HasGaps() {
		fmt.Fprintln(w.output, "  "+w.render(okStyle, "no gaps detected"))
		return
	}

	for _, gap := range quality.Gaps {
		style := dimStyle
		switch gap.Severity {
		case model.GapError:
			style = errStyle
		case model.GapWarning:
			style = warnStyle
		}
		fmt.Fprintf(w.output, "  %s %s: %s\n",
			w.render(style, string(gap.Severity)), gap.ScannerID, gap.Message)
	}
}
