// Package maven scans Maven pom.xml files for module components and
// declared dependencies.
package maven

import (
	"encoding/xml"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/petrarca/doc-architect/internal/model"
	"github.com/petrarca/doc-architect/internal/scanner"
	"github.com/petrarca/doc-architect/internal/scanner/parse"
)

// pomFile is one parsed pom.xml reduced to the coordinates the model
// needs.
type pomFile struct {
	File       string
	GroupID    string
	ArtifactID string
	Packaging  string
	Deps       []model.Dependency
}

// pom mirrors the subset of the POM schema we read. Parent coordinates
// fill in a missing groupId, the common multi-module convention.
type pom struct {
	XMLName    xml.Name `xml:"project"`
	GroupID    string   `xml:"groupId"`
	ArtifactID string   `xml:"artifactId"`
	Packaging  string   `xml:"packaging"`
	Parent     struct {
		GroupID    string `xml:"groupId"`
		ArtifactID string `xml:"artifactId"`
	} `xml:"parent"`
	Dependencies struct {
		Dependency []struct {
			GroupID    string `xml:"groupId"`
			ArtifactID string `xml:"artifactId"`
			Version    string `xml:"version"`
			Scope      string `xml:"scope"`
		} `xml:"dependency"`
	} `xml:"dependencies"`
}

type pomParser struct{}

func (pomParser) Language() string { return "xml" }
func (pomParser) Available() bool { return true }

func (pomParser) ParseFile(path string, content []byte) ([]pomFile, error) {
	var doc pom
	if err := xml.Unmarshal(content, &doc); err != nil {
		return nil, parse.NewError(path, "invalid pom.xml: %v", err)
	}
	if doc.ArtifactID == "" {
		return nil, parse.NewError(path, "pom.xml without artifactId")
	}

	out := pomFile{
		File:       path,
		GroupID:    doc.GroupID,
		ArtifactID: doc.ArtifactID,
		Packaging:  doc.Packaging,
	}
	if out.GroupID == "" {
		out.GroupID = doc.Parent.GroupID
	}
	if out.Packaging == "" {
		out.Packaging = "jar"
	}
	for _, dep := range doc.Dependencies.Dependency {
		out.Deps = append(out.Deps, model.Dependency{
			Group:   dep.GroupID,
			Name:    dep.ArtifactID,
			Version: dep.Version,
			Scope:   scopeOrDefault(dep.Scope),
		})
	}
	return []pomFile{out}, nil
}

func scopeOrDefault(scope string) string {
	if scope == "" {
		return "compile"
	}
	return scope
}

var (
	artifactIDRegex = regexp.MustCompile(`<artifactId>([^<]+)</artifactId>`)
	groupIDRegex    = regexp.MustCompile(`<groupId>([^<]+)</groupId>`)
	depBlockRegex   = regexp.MustCompile(`(?s)<dependency>(.*?)</dependency>`)
	versionRegex    = regexp.MustCompile(`<version>([^<]+)</version>`)
	scopeRegex      = regexp.MustCompile(`<scope>([^<]+)</scope>`)
)

// fallback recovers coordinates from a pom.xml the XML decoder rejects
// (truncated files, stray markup). The first artifactId outside a
// dependency block is taken as the project's own.
func fallback(path, content string) []pomFile {
	withoutDeps := depBlockRegex.ReplaceAllString(content, "")
	artifact := firstMatch(artifactIDRegex, withoutDeps)
	if artifact == "" {
		return nil
	}

	out := pomFile{
		File:       path,
		GroupID:    firstMatch(groupIDRegex, withoutDeps),
		ArtifactID: artifact,
		Packaging:  "jar",
	}
	for _, block := range depBlockRegex.FindAllStringSubmatch(content, -1) {
		dep := model.Dependency{
			Group:   firstMatch(groupIDRegex, block[1]),
			Name:    firstMatch(artifactIDRegex, block[1]),
			Version: firstMatch(versionRegex, block[1]),
			Scope:   scopeOrDefault(firstMatch(scopeRegex, block[1])),
		}
		if dep.Name == "" {
			continue
		}
		out.Deps = append(out.Deps, dep)
	}
	return []pomFile{out}
}

func firstMatch(re *regexp.Regexp, s string) string {
	if m := re.FindStringSubmatch(s); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

type mavenScanner struct{}

func (mavenScanner) ID() string { return "maven" }
func (mavenScanner) DisplayName() string { return "Maven Scanner" }
func (mavenScanner) Priority() int { return 10 }

func (mavenScanner) AppliesTo(ctx *scanner.ScanContext) bool {
	return ctx.HasAnyFiles("**/pom.xml")
}

func (s mavenScanner) Scan(ctx *scanner.ScanContext) *scanner.ScanResult {
	files := ctx.FindFiles("**/pom.xml")
	if len(files) == 0 {
		return scanner.EmptyResult(s.ID())
	}

	stats := scanner.NewStatisticsBuilder().FilesDiscovered(len(files))
	pipeline := parse.Pipeline[pomFile]{
		Structural: pomParser{},
		Fallback:   fallback,
		Log:        ctx.Logger(),
	}

	var components []model.Component
	var dependencies []model.Dependency
	for _, p := range pipeline.ScanFiles(files, stats) {
		rel := ctx.RelPath(p.File)
		id := model.ComponentID("maven-module", rel)
		components = append(components, model.Component{
			ID:         id,
			Name:       p.ArtifactID,
			Type:       componentType(p.Packaging),
			Technology: "java",
			Path:       filepath.ToSlash(filepath.Dir(rel)),
			Metadata: map[string]string{
				"groupId":   p.GroupID,
				"packaging": p.Packaging,
			},
		})
		for _, dep := range p.Deps {
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

// componentType maps Maven packaging onto the architecture model. A pom
// aggregator is a module grouping, anything executable-ish a service.
func componentType(packaging string) model.ComponentType {
	switch packaging {
	case "pom":
		return model.ComponentModule
	case "war", "ear":
		return model.ComponentService
	default:
		return model.ComponentLibrary
	}
}

func init() {
	scanner.Register(mavenScanner{})
}
