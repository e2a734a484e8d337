package scanner

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petrarca/doc-architect/internal/model"
)

// fakeScanner is a configurable scanner for orchestration tests
type fakeScanner struct {
	id       string
	priority int
	applies  bool
	scan     func(ctx *ScanContext) *ScanResult
}

func (f *fakeScanner) ID() string                      { return f.id }
func (f *fakeScanner) DisplayName() string             { return f.id }
func (f *fakeScanner) Priority() int                   { return f.priority }
func (f *fakeScanner) AppliesTo(ctx *ScanContext) bool { return f.applies }

func (f *fakeScanner) Scan(ctx *ScanContext) *ScanResult {
	if f.scan != nil {
		return f.scan(ctx)
	}
	return &ScanResult{ScannerID: f.id, Success: true}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testContext(t *testing.T) *ScanContext {
	t.Helper()
	ctx, err := NewScanContext(t.TempDir(), nil, testLogger())
	require.NoError(t, err)
	return ctx
}

func TestOrchestratorRun(t *testing.T) {
	t.Run("runs in priority order with registration tie-break", func(t *testing.T) {
		var order []string
		record := func(id string) func(*ScanContext) *ScanResult {
			return func(*ScanContext) *ScanResult {
				order = append(order, id)
				return &ScanResult{ScannerID: id, Success: true}
			}
		}
		scanners := []Scanner{
			&fakeScanner{id: "frameworks", priority: 60, applies: true, scan: record("frameworks")},
			&fakeScanner{id: "deps-b", priority: 10, applies: true, scan: record("deps-b")},
			&fakeScanner{id: "deps-a", priority: 10, applies: true, scan: record("deps-a")},
		}

		results, warnings := NewOrchestrator(scanners, testLogger(), nil).Run(testContext(t), nil)

		assert.Empty(t, warnings)
		assert.Equal(t, []string{"deps-b", "deps-a", "frameworks"}, order,
			"equal priorities keep registration order")
		assert.Equal(t, []string{"deps-b", "deps-a", "frameworks"}, results.IDs())
	})

	t.Run("failed scanner does not abort the rest", func(t *testing.T) {
		scanners := []Scanner{
			&fakeScanner{id: "broken", priority: 1, applies: true, scan: func(*ScanContext) *ScanResult {
				return FailedResult("broken", "cannot read lockfile")
			}},
			&fakeScanner{id: "healthy", priority: 2, applies: true},
		}

		results, _ := NewOrchestrator(scanners, testLogger(), nil).Run(testContext(t), nil)

		require.Equal(t, 2, results.Len())
		broken, ok := results.Get("broken")
		require.True(t, ok)
		assert.False(t, broken.Success)
		assert.Equal(t, []string{"cannot read lockfile"}, broken.Errors)

		healthy, ok := results.Get("healthy")
		require.True(t, ok)
		assert.True(t, healthy.Success)
	})

	t.Run("panicking scanner becomes a failed result", func(t *testing.T) {
		scanners := []Scanner{
			&fakeScanner{id: "panicky", priority: 1, applies: true, scan: func(*ScanContext) *ScanResult {
				panic("index out of range")
			}},
			&fakeScanner{id: "after", priority: 2, applies: true},
		}

		results, _ := NewOrchestrator(scanners, testLogger(), nil).Run(testContext(t), nil)

		panicked, ok := results.Get("panicky")
		require.True(t, ok)
		assert.False(t, panicked.Success)
		assert.Contains(t, panicked.Errors[0], "scanner panicked")

		_, ok = results.Get("after")
		assert.True(t, ok, "subsequent scanners still ran")
	})

	t.Run("nil result becomes a failed result", func(t *testing.T) {
		scanners := []Scanner{
			&fakeScanner{id: "nil-result", priority: 1, applies: true, scan: func(*ScanContext) *ScanResult {
				return nil
			}},
		}

		results, _ := NewOrchestrator(scanners, testLogger(), nil).Run(testContext(t), nil)

		res, ok := results.Get("nil-result")
		require.True(t, ok)
		assert.False(t, res.Success)
	})

	t.Run("inapplicable scanners leave no trace", func(t *testing.T) {
		scanners := []Scanner{
			&fakeScanner{id: "applicable", priority: 1, applies: true},
			&fakeScanner{id: "inapplicable", priority: 2, applies: false},
		}

		results, _ := NewOrchestrator(scanners, testLogger(), nil).Run(testContext(t), nil)

		assert.Equal(t, []string{"applicable"}, results.IDs())
	})

	t.Run("unknown enabled id warns and is ignored", func(t *testing.T) {
		scanners := []Scanner{
			&fakeScanner{id: "maven", priority: 1, applies: true},
			&fakeScanner{id: "gradle", priority: 2, applies: true},
		}

		results, warnings := NewOrchestrator(scanners, testLogger(), nil).Run(testContext(t), []string{"maven", "npm"})

		require.Len(t, warnings, 1)
		assert.Contains(t, warnings[0], `unknown scanner id "npm"`)
		assert.Contains(t, warnings[0], "maven")
		assert.Equal(t, []string{"maven"}, results.IDs())
	})

	t.Run("enabled list containing all runs everything", func(t *testing.T) {
		scanners := []Scanner{
			&fakeScanner{id: "a", priority: 1, applies: true},
			&fakeScanner{id: "b", priority: 2, applies: true},
		}

		results, warnings := NewOrchestrator(scanners, testLogger(), nil).Run(testContext(t), []string{"all"})

		assert.Empty(t, warnings)
		assert.Equal(t, 2, results.Len())
	})

	t.Run("later scanners see earlier results", func(t *testing.T) {
		scanners := []Scanner{
			&fakeScanner{id: "deps", priority: 1, applies: true, scan: func(*ScanContext) *ScanResult {
				return &ScanResult{
					ScannerID: "deps",
					Success:   true,
					Dependencies: []model.Dependency{
						{Name: "spring-boot-starter-web", Group: "org.springframework.boot"},
					},
				}
			}},
			&fakeScanner{id: "framework", priority: 2, applies: true, scan: func(ctx *ScanContext) *ScanResult {
				assert.Equal(t, []string{"deps"}, ctx.PreviousIDs())
				assert.True(t, ctx.DependencyDeclared("spring-boot-starter-web"))
				prev, ok := ctx.Previous("deps")
				assert.True(t, ok)
				assert.Len(t, prev.Dependencies, 1)
				return &ScanResult{ScannerID: "framework", Success: true}
			}},
		}

		results, _ := NewOrchestrator(scanners, testLogger(), nil).Run(testContext(t), nil)
		assert.Equal(t, 2, results.Len())
	})

	t.Run("repeated runs produce identical results", func(t *testing.T) {
		build := func() []Scanner {
			return []Scanner{
				&fakeScanner{id: "x", priority: 5, applies: true, scan: func(*ScanContext) *ScanResult {
					return &ScanResult{
						ScannerID:  "x",
						Success:    true,
						Components: []model.Component{{ID: model.ComponentID("svc", "a/b"), Name: "b"}},
					}
				}},
				&fakeScanner{id: "y", priority: 1, applies: true},
			}
		}

		first, _ := NewOrchestrator(build(), testLogger(), nil).Run(testContext(t), nil)
		second, _ := NewOrchestrator(build(), testLogger(), nil).Run(testContext(t), nil)

		assert.Equal(t, first.IDs(), second.IDs())
		fx, _ := first.Get("x")
		sx, _ := second.Get("x")
		assert.Equal(t, fx.Components, sx.Components)
	})
}
