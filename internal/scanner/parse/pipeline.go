package parse

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/petrarca/doc-architect/internal/scanner"
)

// Tier records which pipeline tier produced a file's result
type Tier int

const (
	// TierNone: no tier produced data (pre-filtered, failed, or no match)
	TierNone Tier = iota
	// TierStructural: precise parser succeeded
	TierStructural
	// TierFallback: regex fallback produced data
	TierFallback
)

// FileResult is the outcome of running one file through the pipeline.
// Consumed immediately by the calling scanner; not persisted.
type FileResult[T any] struct {
	Data       []T
	Confidence scanner.ConfidenceLevel
	Tier       Tier
	Skipped    bool // short-circuited by the pre-filter
	Failed     bool // I/O or unexpected error
	ErrKind    string
	ErrDetail  string
}

// Pipeline is the reusable tiered parsing strategy for one scanner and
// one construct type T. Structural may be nil (or unavailable), in which
// case every file goes straight to the fallback tier. Fallback may be
// nil for scanners that trust the structural tier alone.
type Pipeline[T any] struct {
	Structural StructuralParser[T]
	Fallback   FallbackFunc[T]
	PreFilter  PreFilterFunc
	Log        *slog.Logger

	// Workers > 1 lets ScanFiles fan out over files. Per-file parsing
	// shares no state beyond the statistics builder, which synchronizes
	// internally; results are merged back in file order.
	Workers int
}

func (p *Pipeline[T]) logger() *slog.Logger {
	if p.Log != nil {
		return p.Log
	}
	return slog.Default()
}

// ParseFile runs one file through the tiers and records the outcome in
// stats. The structural tier is attempted at most once; a structural
// parse error falls through to the fallback tier exactly once. Errors
// never propagate: I/O failures log at WARN and count as failures,
// structural rejections log at DEBUG (routine), anything unexpected logs
// at ERROR and counts as a failure.
func (p *Pipeline[T]) ParseFile(path string, stats *scanner.StatisticsBuilder) FileResult[T] {
	log := p.logger()

	content, err := os.ReadFile(path)
	if err != nil {
		log.Warn("failed to read file", "path", path, "error", err)
		stats.IncrementFilesScanned()
		stats.IncrementFilesFailed()
		stats.AddError("file read error", path+": "+err.Error())
		return FileResult[T]{Failed: true, ErrKind: "file read error", ErrDetail: err.Error()}
	}

	if p.PreFilter != nil && !p.PreFilter(path, string(content)) {
		log.Debug("skipping file (pre-filter)", "path", path)
		stats.IncrementFilesPreFiltered()
		return FileResult[T]{Skipped: true}
	}

	stats.IncrementFilesScanned()

	if p.Structural != nil && p.Structural.Available() {
		data, perr := p.Structural.ParseFile(path, content)
		switch outcome := classify(perr); outcome {
		case outcomeSuccess:
			stats.IncrementFilesParsed()
			return FileResult[T]{Data: data, Confidence: scanner.ConfidenceHigh, Tier: TierStructural}
		case outcomeStructuralError:
			// Routine: most files simply don't match this grammar
			log.Debug("structural parse failed, falling back", "path", path, "error", perr)
		case outcomeIOError:
			log.Warn("i/o error during structural parse", "path", path, "error", perr)
			stats.IncrementFilesFailed()
			stats.AddError("file read error", path+": "+perr.Error())
			return FileResult[T]{Failed: true, ErrKind: "file read error", ErrDetail: perr.Error()}
		default:
			log.Error("unexpected error during structural parse", "path", path, "error", perr)
			stats.IncrementFilesFailed()
			stats.AddError("unexpected error", path+": "+perr.Error())
			return FileResult[T]{Failed: true, ErrKind: "unexpected error", ErrDetail: perr.Error()}
		}
	}

	if p.Fallback != nil {
		if data := p.Fallback(path, string(content)); len(data) > 0 {
			stats.IncrementFilesFallback()
			return FileResult[T]{Data: data, Confidence: scanner.ConfidenceMedium, Tier: TierFallback}
		}
	}

	// Neither tier matched: attempted, but neither a success nor a
	// failure.
	return FileResult[T]{Tier: TierNone}
}

// ScanFiles runs every file through ParseFile and concatenates the
// extracted data in file order. With Workers > 1 the loop fans out over
// a bounded errgroup; results are still merged deterministically.
func (p *Pipeline[T]) ScanFiles(files []string, stats *scanner.StatisticsBuilder) []T {
	if p.Workers <= 1 {
		var out []T
		for _, file := range files {
			out = append(out, p.ParseFile(file, stats).Data...)
		}
		return out
	}

	perFile := make([][]T, len(files))
	var g errgroup.Group
	g.SetLimit(p.Workers)
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			perFile[i] = p.ParseFile(file, stats).Data
			return nil
		})
	}
	_ = g.Wait() // workers never return errors; failures live in stats

	var out []T
	for _, data := range perFile {
		out = append(out, data...)
	}
	return out
}

type outcome int

const (
	outcomeSuccess outcome = iota
	outcomeStructuralError
	outcomeIOError
	outcomeUnexpected
)

// classify maps a structural parser error onto the pipeline's explicit
// outcome variants, replacing exception-driven control flow.
func classify(err error) outcome {
	if err == nil {
		return outcomeSuccess
	}
	var perr *Error
	if errors.As(err, &perr) {
		return outcomeStructuralError
	}
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) || errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
		return outcomeIOError
	}
	return outcomeUnexpected
}
