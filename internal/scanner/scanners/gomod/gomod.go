// Package gomod scans go.mod files for module components and their
// declared dependencies. Tier 1 uses the official modfile parser; the
// fallback matches require lines textually.
package gomod

import (
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"golang.org/x/mod/modfile"

	"github.com/petrarca/doc-architect/internal/model"
	"github.com/petrarca/doc-architect/internal/scanner"
	"github.com/petrarca/doc-architect/internal/scanner/parse"
)

// moduleFile is one parsed go.mod: the module path plus its direct
// dependencies.
type moduleFile struct {
	File   string
	Module string
	Deps   []model.Dependency
}

type modfileParser struct{}

func (modfileParser) Language() string { return "gomod" }
func (modfileParser) Available() bool { return true }

func (modfileParser) ParseFile(filePath string, content []byte) ([]moduleFile, error) {
	f, err := modfile.Parse(filePath, content, nil)
	if err != nil {
		return nil, parse.NewError(filePath, "invalid go.mod: %v", err)
	}

	mod := moduleFile{File: filePath}
	if f.Module != nil {
		mod.Module = f.Module.Mod.Path
	}
	for _, req := range f.Require {
		if req.Indirect {
			continue
		}
		mod.Deps = append(mod.Deps, model.Dependency{
			Name:    req.Mod.Path,
			Version: req.Mod.Version,
		})
	}
	return []moduleFile{mod}, nil
}

var (
	moduleLineRegex  = regexp.MustCompile(`(?m)^module\s+(\S+)`)
	requireLineRegex = regexp.MustCompile(`(?m)^\s+([^\s/]+)\s+(v\S+)\s*$`)
)

// fallback extracts the module path and require lines with regexes when
// the modfile parser rejects the file.
func fallback(filePath, content string) []moduleFile {
	mod := moduleFile{File: filePath}
	if m := moduleLineRegex.FindStringSubmatch(content); m != nil {
		mod.Module = m[1]
	}
	for _, m := range requireLineRegex.FindAllStringSubmatch(content, -1) {
		mod.Deps = append(mod.Deps, model.Dependency{Name: m[1], Version: m[2]})
	}
	if mod.Module == "" && len(mod.Deps) == 0 {
		return nil
	}
	return []moduleFile{mod}
}

type gomodScanner struct{}

func (gomodScanner) ID() string { return "go-modules" }
func (gomodScanner) DisplayName() string { return "Go Module Scanner" }
func (gomodScanner) Priority() int { return 10 }

func (gomodScanner) AppliesTo(ctx *scanner.ScanContext) bool {
	return ctx.HasAnyFiles("**/go.mod")
}

func (s gomodScanner) Scan(ctx *scanner.ScanContext) *scanner.ScanResult {
	files := ctx.FindFiles("**/go.mod")
	if len(files) == 0 {
		return scanner.EmptyResult(s.ID())
	}

	stats := scanner.NewStatisticsBuilder().FilesDiscovered(len(files))
	pipeline := parse.Pipeline[moduleFile]{
		Structural: modfileParser{},
		Fallback:   fallback,
		Log:        ctx.Logger(),
	}

	var components []model.Component
	var dependencies []model.Dependency
	for _, mod := range pipeline.ScanFiles(files, stats) {
		rel := ctx.RelPath(mod.File)
		name := mod.Module
		if name == "" {
			name = filepath.Base(filepath.Dir(mod.File))
		}
		id := model.ComponentID("go-module", rel)
		components = append(components, model.Component{
			ID:         id,
			Name:       trimVersionSuffix(name),
			Type:       model.ComponentModule,
			Technology: "go",
			Path:       rel,
			Metadata:   map[string]string{"module": name},
		})
		for _, dep := range mod.Deps {
			dep.SourceComponentID = id
			dep.Scope = "require"
			dependencies = append(dependencies, dep)
		}
	}

	return &scanner.ScanResult{
		ScannerID:    s.ID(),
		Success:      true,
		Components:   components,
		Dependencies: dependencies,
		Statistics:   stats.Build(),
	}
}

// trimVersionSuffix drops a major-version path element (".../v2")
func trimVersionSuffix(module string) string {
	base := path.Base(module)
	if strings.HasPrefix(base, "v") && len(base) <= 3 {
		return path.Base(path.Dir(module))
	}
	return base
}

func init() {
	scanner.Register(gomodScanner{})
}
