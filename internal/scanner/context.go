package scanner

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-enry/go-enry/v2"
)

// ScanContext is the per-run container handed to every scanner. It holds
// the resolved root path, the ordered search roots (multi-root repos),
// glob-based file discovery and a read-only view of results produced by
// scanners that already completed in this run.
//
// The orchestrator creates one context per run and appends each finished
// result before invoking the next scanner; scanners themselves can only
// read.
type ScanContext struct {
	rootPath    string
	searchRoots []string
	excludes    []string
	log         *slog.Logger
	previous    *Results
}

// NewScanContext creates a context rooted at rootPath. searchRoots may be
// empty, in which case the root path itself is searched.
func NewScanContext(rootPath string, searchRoots []string, logger *slog.Logger) (*ScanContext, error) {
	abs, err := filepath.Abs(rootPath)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(abs); err != nil {
		return nil, err
	}
	if len(searchRoots) == 0 {
		searchRoots = []string{abs}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ScanContext{
		rootPath:    abs,
		searchRoots: searchRoots,
		log:         logger,
		previous:    newResults(),
	}, nil
}

// RootPath returns the absolute project root
func (c *ScanContext) RootPath() string {
	return c.rootPath
}

// SearchRoots returns the ordered list of directories being searched
func (c *ScanContext) SearchRoots() []string {
	roots := make([]string, len(c.searchRoots))
	copy(roots, c.searchRoots)
	return roots
}

// Logger returns the run logger
func (c *ScanContext) Logger() *slog.Logger {
	return c.log
}

// SetExcludes installs additional glob patterns whose matches are
// hidden from every scanner. Called once during run setup, before any
// scanner sees the context.
func (c *ScanContext) SetExcludes(patterns []string) {
	c.excludes = patterns
}

// FindFiles returns all regular files under the search roots whose path
// relative to the root matches the doublestar glob pattern (e.g.
// "**/*.java"). Matching is case-sensitive; symlinks and directories are
// excluded, and vendored directories (node_modules, .git, ...) are
// pruned. The result is deduplicated and sorted so repeated runs see the
// same order.
func (c *ScanContext) FindFiles(pattern string) []string {
	seen := make(map[string]struct{})
	var matches []string

	for _, root := range c.searchRoots {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				c.log.Debug("skipping unreadable entry", "path", path, "error", err)
				if d != nil && d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			rel := c.relativize(path)
			if d.IsDir() {
				if path != root && c.skipDir(d.Name(), rel) {
					return filepath.SkipDir
				}
				return nil
			}
			if !d.Type().IsRegular() {
				return nil
			}
			ok, merr := doublestar.Match(pattern, rel)
			if merr != nil || !ok {
				return nil
			}
			if c.excluded(rel) {
				return nil
			}
			if _, dup := seen[path]; !dup {
				seen[path] = struct{}{}
				matches = append(matches, path)
			}
			return nil
		})
	}

	sort.Strings(matches)
	return matches
}

// HasAnyFiles reports whether at least one file matches any of the
// patterns. Convenience for AppliesTo implementations.
func (c *ScanContext) HasAnyFiles(patterns ...string) bool {
	for _, pattern := range patterns {
		if len(c.FindFiles(pattern)) > 0 {
			return true
		}
	}
	return false
}

// Previous returns the result of an earlier scanner in this run, if it
// ran. A scanner is either fully represented or absent; no in-flight
// result is ever visible.
func (c *ScanContext) Previous(id string) (*ScanResult, bool) {
	return c.previous.Get(id)
}

// PreviousIDs returns the ids of all scanners that completed so far, in
// execution order.
func (c *ScanContext) PreviousIDs() []string {
	return c.previous.IDs()
}

// DependencyDeclared reports whether any earlier scanner reported a
// dependency whose group or name contains the given substring. The
// standard way for framework scanners to condition on dependency
// scanners that ran before them.
func (c *ScanContext) DependencyDeclared(substr string) bool {
	for _, id := range c.previous.IDs() {
		res, _ := c.previous.Get(id)
		for _, dep := range res.Dependencies {
			if strings.Contains(dep.Name, substr) || strings.Contains(dep.Group, substr) {
				return true
			}
		}
	}
	return false
}

// RelPath returns path relative to the root, slash-separated. Used by
// scanners to derive stable component ids and report locations.
func (c *ScanContext) RelPath(path string) string {
	return c.relativize(path)
}

func (c *ScanContext) relativize(path string) string {
	rel, err := filepath.Rel(c.rootPath, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

// skipDir prunes directories that never contain first-party sources
func (c *ScanContext) skipDir(name, rel string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	return enry.IsVendor(rel + "/")
}

func (c *ScanContext) excluded(rel string) bool {
	for _, pattern := range c.excludes {
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return true
		}
	}
	return false
}
