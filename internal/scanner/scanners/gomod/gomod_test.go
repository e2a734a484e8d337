package gomod

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petrarca/doc-architect/internal/scanner"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func newContext(t *testing.T, dir string) *scanner.ScanContext {
	t.Helper()
	ctx, err := scanner.NewScanContext(dir, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	return ctx
}

func TestGomodScanner(t *testing.T) {
	t.Run("parses module and direct requires", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "go.mod", `module github.com/acme/billing/v2

go 1.22

require (
	github.com/spf13/cobra v1.8.0
	golang.org/x/sync v0.7.0 // indirect
)
`)

		ctx := newContext(t, dir)
		s := gomodScanner{}
		require.True(t, s.AppliesTo(ctx))

		res := s.Scan(ctx)
		require.True(t, res.Success)
		require.Len(t, res.Components, 1)
		assert.Equal(t, "billing", res.Components[0].Name)
		assert.Equal(t, "go", res.Components[0].Technology)
		assert.Equal(t, "github.com/acme/billing/v2", res.Components[0].Metadata["module"])

		require.Len(t, res.Dependencies, 1)
		assert.Equal(t, "github.com/spf13/cobra", res.Dependencies[0].Name)
		assert.Equal(t, "v1.8.0", res.Dependencies[0].Version)
		assert.Equal(t, res.Components[0].ID, res.Dependencies[0].SourceComponentID)

		require.NotNil(t, res.Statistics)
		assert.Equal(t, 1, res.Statistics.FilesParsed)
		assert.Equal(t, 0, res.Statistics.FilesFailed)
	})

	t.Run("malformed go.mod falls back to line matching", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "go.mod", `module github.com/acme/broken
go 1.22 something invalid here ((((
require (
	github.com/pkg/errors v0.9.1
)
`)

		ctx := newContext(t, dir)
		res := gomodScanner{}.Scan(ctx)
		require.True(t, res.Success)
		require.Len(t, res.Components, 1)
		assert.Equal(t, "broken", res.Components[0].Name)

		require.NotNil(t, res.Statistics)
		assert.Equal(t, 1, res.Statistics.FilesFallback)
		assert.Equal(t, 0, res.Statistics.FilesFailed)
	})

	t.Run("does not apply without go.mod", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "main.go", "package main\n")

		assert.False(t, gomodScanner{}.AppliesTo(newContext(t, dir)))
	})

	t.Run("repeated scans produce identical ids", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "go.mod", "module example.com/svc\n\ngo 1.22\n")

		ctx := newContext(t, dir)
		first := gomodScanner{}.Scan(ctx)
		second := gomodScanner{}.Scan(ctx)
		require.Len(t, first.Components, 1)
		require.Len(t, second.Components, 1)
		assert.Equal(t, first.Components[0].ID, second.Components[0].ID)
	})
}
