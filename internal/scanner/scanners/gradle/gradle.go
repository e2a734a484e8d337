// Package gradle scans Gradle build scripts (Groovy and Kotlin DSL) for
// module components and declared dependencies. Gradle scripts are
// arbitrary code, so there is no precise tier; extraction is
// regex-based and reported at fallback confidence throughout.
package gradle

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/petrarca/doc-architect/internal/model"
	"github.com/petrarca/doc-architect/internal/scanner"
	"github.com/petrarca/doc-architect/internal/scanner/parse"
)

type buildScript struct {
	File string
	Deps []model.Dependency
}

var (
	// implementation "group:artifact:version" / implementation("...")
	coordinateRegex = regexp.MustCompile(
		`(?m)^\s*(implementation|api|compileOnly|runtimeOnly|testImplementation|testRuntimeOnly|annotationProcessor|kapt)\s*\(?\s*['"]([\w.\-]+):([\w.\-]+)(?::([\w.\-+]+))?['"]`)

	// rootProject.name = "name" in settings scripts
	projectNameRegex = regexp.MustCompile(`rootProject\.name\s*=\s*['"]([^'"]+)['"]`)
)

func extractDeps(path, content string) []buildScript {
	script := buildScript{File: path}
	for _, m := range coordinateRegex.FindAllStringSubmatch(content, -1) {
		script.Deps = append(script.Deps, model.Dependency{
			Group:   m[2],
			Name:    m[3],
			Version: m[4],
			Scope:   gradleScope(m[1]),
		})
	}
	if len(script.Deps) == 0 {
		return nil
	}
	return []buildScript{script}
}

func gradleScope(configuration string) string {
	if strings.HasPrefix(configuration, "test") {
		return "test"
	}
	return "compile"
}

type gradleScanner struct{}

func (gradleScanner) ID() string { return "gradle" }
func (gradleScanner) DisplayName() string { return "Gradle Scanner" }
func (gradleScanner) Priority() int { return 11 }

func (gradleScanner) AppliesTo(ctx *scanner.ScanContext) bool {
	return ctx.HasAnyFiles("**/build.gradle", "**/build.gradle.kts")
}

func (s gradleScanner) Scan(ctx *scanner.ScanContext) *scanner.ScanResult {
	files := ctx.FindFiles("**/build.gradle")
	files = append(files, ctx.FindFiles("**/build.gradle.kts")...)
	if len(files) == 0 {
		return scanner.EmptyResult(s.ID())
	}

	stats := scanner.NewStatisticsBuilder().FilesDiscovered(len(files))
	pipeline := parse.Pipeline[buildScript]{
		Fallback: extractDeps,
		Log:      ctx.Logger(),
	}

	var components []model.Component
	var dependencies []model.Dependency
	for _, script := range pipeline.ScanFiles(files, stats) {
		rel := ctx.RelPath(script.File)
		id := model.ComponentID("gradle-module", rel)
		components = append(components, model.Component{
			ID:         id,
			Name:       s.moduleName(ctx, script.File),
			Type:       model.ComponentModule,
			Technology: "java",
			Path:       filepath.ToSlash(filepath.Dir(rel)),
		})
		for _, dep := range script.Deps {
			dep.SourceComponentID = id
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

// moduleName prefers the settings-script project name for a root build
// script and falls back to the containing directory.
func (gradleScanner) moduleName(ctx *scanner.ScanContext, buildFile string) string {
	dir := filepath.Dir(buildFile)
	for _, settings := range []string{"settings.gradle", "settings.gradle.kts"} {
		content, err := readSmall(filepath.Join(dir, settings))
		if err != nil {
			continue
		}
		if m := projectNameRegex.FindStringSubmatch(content); m != nil {
			return m[1]
		}
	}
	return filepath.Base(dir)
}

func readSmall(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(content), nil
}

func init() {
	scanner.Register(gradleScanner{})
}
