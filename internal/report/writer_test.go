package report

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petrarca/doc-architect/internal/model"
)

func sampleReport() *Report {
	return &Report{
		GeneratedAt: time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC),
		Model: &model.ArchitectureModel{
			ProjectName: "billing",
			Repository:  &model.RepositoryRef{Branch: "main", Commit: "abc1234"},
			Components: []model.Component{
				{ID: "c1", Name: "order-service", Type: model.ComponentService, Technology: "java", Path: "services/orders"},
			},
			Dependencies: []model.Dependency{
				{SourceComponentID: "c1", Group: "org.springframework.boot", Name: "spring-boot-starter-web"},
			},
			ApiEndpoints: []model.ApiEndpoint{
				{ComponentID: "c1", Type: model.ApiREST, Path: "/api/orders", Method: "GET", Handler: "OrderController.list"},
			},
		},
		Quality: &model.ScanQualityReport{
			TotalFilesInProject:  10,
			FilesAnalyzed:        8,
			FilesSkipped:         2,
			FindingsByConfidence: map[string]int{"high": 3, "medium": 0, "low": 0},
			Gaps: []model.QualityGap{
				model.WarningGap("maven", "High failure rate: 25.0% of files failed to parse"),
			},
		},
	}
}

func TestJSONWriter(t *testing.T) {
	t.Run("round-trips through encoding/json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewJSONWriter(&buf, false).Write(sampleReport()))

		var decoded Report
		require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
		assert.Equal(t, "billing", decoded.Model.ProjectName)
		assert.Len(t, decoded.Model.Components, 1)
		assert.Equal(t, 8, decoded.Quality.FilesAnalyzed)
	})

	t.Run("pretty output is indented", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewJSONWriter(&buf, true).Write(sampleReport()))
		assert.Contains(t, buf.String(), "\n  \"model\"")
	})
}

func TestMarkdownWriter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewMarkdownWriter(&buf).Write(sampleReport()))

	out := buf.String()
	assert.Contains(t, out, "# Architecture: billing")
	assert.Contains(t, out, "## Components")
	assert.Contains(t, out, "order-service")
	assert.Contains(t, out, "## API Endpoints")
	assert.Contains(t, out, "`/api/orders`")
	assert.Contains(t, out, "## Scan Quality")
	assert.Contains(t, out, "High failure rate")
	assert.NotContains(t, out, "## Data Entities", "empty sections are omitted")
}

func TestConsoleWriter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewConsoleWriter(&buf).Write(sampleReport()))

	out := buf.String()
	assert.Contains(t, out, "Architecture: billing")
	assert.Contains(t, out, "components:    1")
	assert.Contains(t, out, "files analyzed: 8/10 (80.0%)")
	assert.Contains(t, out, "warning maven: High failure rate")
	assert.NotContains(t, out, "\x1b[", "no ANSI escapes when output is not a terminal")
}

func TestMultiWriter(t *testing.T) {
	var a, b bytes.Buffer
	multi := NewMultiWriter(NewConsoleWriter(&a), NewJSONWriter(&b, false))
	require.NoError(t, multi.Write(sampleReport()))
	assert.NotEmpty(t, a.String())
	assert.NotEmpty(t, b.String())
}
