package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/nao1215/markdown"

	"github.com/petrarca/doc-architect/internal/model"
)

// MarkdownWriter outputs the report as GitHub-flavored markdown,
// suitable for committing next to the code it describes.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given
// writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs the full report in Markdown format
func (w *MarkdownWriter) Write(report *Report) error {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	w.writeComponents(md, report.Model)
	w.writeEndpoints(md, report.Model)
	w.writeEntities(md, report.Model)
	w.writeFlows(md, report.Model)
	w.writeQuality(md, report.Quality)

	return md.Build()
}

func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *Report) {
	md.H1("Architecture: " + report.Model.ProjectName)
	md.PlainText("")

	rows := [][]string{
		{"Generated", report.GeneratedAt.Format("2006-01-02 15:04:05 MST")},
		{"Components", strconv.Itoa(len(report.Model.Components))},
		{"Dependencies", strconv.Itoa(len(report.Model.Dependencies))},
	}
	if repo := report.Model.Repository; repo != nil {
		rows = append(rows, []string{"Revision", revisionText(repo)})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows:   rows,
	})
	md.PlainText("")
}

func revisionText(repo *model.RepositoryRef) string {
	text := repo.Branch + "@" + repo.Commit
	if repo.Dirty {
		text += " (dirty)"
	}
	return text
}

func (w *MarkdownWriter) writeComponents(md *markdown.Markdown, m *model.ArchitectureModel) {
	md.H2("Components")
	md.PlainText("")

	if len(m.Components) == 0 {
		md.PlainText("No components discovered.")
		md.PlainText("")
		return
	}

	rows := make([][]string, len(m.Components))
	for i, c := range m.Components {
		rows[i] = []string{c.Name, string(c.Type), orDash(c.Technology), orDash(c.Path)}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Name", "Type", "Technology", "Path"},
		Rows:   rows,
	})
	md.PlainText("")
}

func (w *MarkdownWriter) writeEndpoints(md *markdown.Markdown, m *model.ArchitectureModel) {
	if len(m.ApiEndpoints) == 0 {
		return
	}

	md.H2("API Endpoints")
	md.PlainText("")

	rows := make([][]string, len(m.ApiEndpoints))
	for i, ep := range m.ApiEndpoints {
		rows[i] = []string{orDash(ep.Method), "`" + ep.Path + "`", orDash(ep.Handler), orDash(ep.SourceFile)}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Method", "Path", "Handler", "Source"},
		Rows:   rows,
	})
	md.PlainText("")
}

func (w *MarkdownWriter) writeEntities(md *markdown.Markdown, m *model.ArchitectureModel) {
	if len(m.DataEntities) == 0 {
		return
	}

	md.H2("Data Entities")
	md.PlainText("")

	rows := make([][]string, len(m.DataEntities))
	for i, e := range m.DataEntities {
		rows[i] = []string{e.Name, orDash(e.Table), strconv.Itoa(len(e.Fields)), orDash(e.SourceFile)}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Entity", "Table", "Fields", "Source"},
		Rows:   rows,
	})
	md.PlainText("")
}

func (w *MarkdownWriter) writeFlows(md *markdown.Markdown, m *model.ArchitectureModel) {
	if len(m.MessageFlows) == 0 {
		return
	}

	md.H2("Message Flows")
	md.PlainText("")

	rows := make([][]string, len(m.MessageFlows))
	for i, f := range m.MessageFlows {
		direction := "subscribe"
		if f.PublisherComponentID != "" {
			direction = "publish"
		}
		rows[i] = []string{"`" + f.Topic + "`", direction, orDash(f.Broker), orDash(f.MessageType)}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Topic", "Direction", "Broker", "Message Type"},
		Rows:   rows,
	})
	md.PlainText("")
}

func (w *MarkdownWriter) writeQuality(md *markdown.Markdown, quality *model.ScanQualityReport) {
	if quality == nil {
		return
	}

	md.H2("Scan Quality")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Files in project", strconv.Itoa(quality.TotalFilesInProject)},
			{"Files analyzed", strconv.Itoa(quality.FilesAnalyzed)},
			{"Coverage", fmt.Sprintf("%.1f%%", quality.CoveragePercentage())},
			{"Findings", strconv.Itoa(quality.TotalFindings())},
		},
	})
	md.PlainText("")

	if len(quality.CoverageByComponent) > 0 {
		rows := make([][]string, len(quality.CoverageByComponent))
		for i, c := range quality.CoverageByComponent {
			rows[i] = []string{c.ComponentType, strconv.Itoa(c.ExpectedFiles),
				strconv.Itoa(c.Found), fmt.Sprintf("%.1f%%", c.Percentage)}
		}
		md.Table(markdown.TableSet{
			Header: []string{"Component Type", "Expected", "Found", "Coverage"},
			Rows:   rows,
		})
		md.PlainText("")
	}

	switch {
	case len(quality.GapsBySeverity(model.GapError)) > 0:
		md.Warningf("%d scanner failure(s); the model is incomplete.",
			len(quality.GapsBySeverity(model.GapError)))
	case quality.HasGaps():
		md.Note("Some scanners reported warnings; see the gap list below.")
	default:
		md.Tip("All scanners completed without gaps.")
	}
	md.PlainText("")

	for _, gap := range quality.Gaps {
		md.BulletList(fmt.Sprintf("**%s** [%s]: %s", gap.Severity, gap.ScannerID, gap.Message))
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
