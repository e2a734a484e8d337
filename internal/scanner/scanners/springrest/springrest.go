// Package springrest scans Spring MVC controllers for REST endpoints.
// Java sources are matched textually: class-level @RequestMapping sets
// the base path, method-level mapping annotations contribute one
// endpoint each.
package springrest

import (
	"path"
	"regexp"
	"strings"

	"github.com/petrarca/doc-architect/internal/model"
	"github.com/petrarca/doc-architect/internal/scanner"
	"github.com/petrarca/doc-architect/internal/scanner/parse"
)

type endpoint struct {
	File    string
	Path    string
	Method  string
	Handler string
}

var (
	controllerRegex  = regexp.MustCompile(`@(Rest)?Controller\b`)
	classNameRegex   = regexp.MustCompile(`(?m)^\s*(?:public\s+)?(?:final\s+)?class\s+(\w+)`)
	basePathRegex    = regexp.MustCompile(`@RequestMapping\s*\(\s*(?:value\s*=\s*|path\s*=\s*)?"([^"]*)"`)
	methodNameRegex  = regexp.MustCompile(`^\s*(?:public|protected|private)?[\w<>,.\[\]\s]*?\s(\w+)\s*\(`)
	mappingAnnotRe   = regexp.MustCompile(`@(Get|Post|Put|Delete|Patch|Request)Mapping\s*(?:\(\s*(?:value\s*=\s*|path\s*=\s*)?"([^"]*)"[^)]*\))?`)
	requestMethodRe  = regexp.MustCompile(`method\s*=\s*(?:RequestMethod\.)?(\w+)`)
	annotationHeader = regexp.MustCompile(`^\s*@\w`)
)

// hasController is the pre-filter: only files carrying a controller
// annotation enter extraction.
func hasController(_, content string) bool {
	return controllerRegex.MatchString(content)
}

// extractEndpoints walks the file line by line. A mapping annotation is
// attached to the first method declaration that follows it.
func extractEndpoints(file, content string) []endpoint {
	className := ""
	if m := classNameRegex.FindStringSubmatch(content); m != nil {
		className = m[1]
	}

	basePath := ""
	if idx := classNameRegex.FindStringIndex(content); idx != nil {
		if m := basePathRegex.FindStringSubmatch(content[:idx[0]]); m != nil {
			basePath = m[1]
		}
	}

	var out []endpoint
	var pending []endpoint

	for _, line := range strings.Split(content, "\n") {
		if classNameRegex.MatchString(line) {
			// Anything pending here was the class-level mapping,
			// already folded into basePath.
			pending = nil
			continue
		}
		for _, m := range mappingAnnotRe.FindAllStringSubmatch(line, -1) {
			ep := endpoint{
				File:   file,
				Path:   joinPaths(basePath, m[2]),
				Method: httpMethod(m[1], line),
			}
			pending = append(pending, ep)
		}
		if len(pending) > 0 && !annotationHeader.MatchString(line) {
			if m := methodNameRegex.FindStringSubmatch(line); m != nil {
				for i := range pending {
					pending[i].Handler = qualifyHandler(className, m[1])
					out = append(out, pending[i])
				}
				pending = nil
			}
		}
	}

	// Annotations never followed by a method declaration still count as
	// endpoints, just without a handler.
	out = append(out, pending...)
	return out
}

func joinPaths(base, sub string) string {
	joined := path.Join("/", base, sub)
	if joined == "" {
		return "/"
	}
	return joined
}

// httpMethod maps the annotation name to the HTTP verb. A bare
// @RequestMapping defaults to GET unless a method attribute says
// otherwise, mirroring how such endpoints are usually documented.
func httpMethod(annotation, line string) string {
	if annotation != "Request" {
		return strings.ToUpper(annotation)
	}
	if m := requestMethodRe.FindStringSubmatch(line); m != nil {
		return strings.ToUpper(m[1])
	}
	return "GET"
}

func qualifyHandler(className, method string) string {
	if className == "" {
		return method
	}
	return className + "." + method
}

type springRestScanner struct{}

func (springRestScanner) ID() string { return "spring-rest" }
func (springRestScanner) DisplayName() string { return "Spring REST Scanner" }
func (springRestScanner) Priority() int { return 60 }

// AppliesTo checks the dependency scanners that ran earlier: scanning
// every Java file for controllers is pointless unless the build pulls in
// Spring MVC. Without dependency results it falls back to a cheap file
// probe.
func (springRestScanner) AppliesTo(ctx *scanner.ScanContext) bool {
	if len(ctx.PreviousIDs()) > 0 {
		return ctx.DependencyDeclared("spring-boot-starter-web") ||
			ctx.DependencyDeclared("spring-webmvc")
	}
	return ctx.HasAnyFiles("**/*Controller.java")
}

func (s springRestScanner) Scan(ctx *scanner.ScanContext) *scanner.ScanResult {
	files := ctx.FindFiles("**/*.java")
	if len(files) == 0 {
		return scanner.EmptyResult(s.ID())
	}

	stats := scanner.NewStatisticsBuilder().FilesDiscovered(len(files))
	pipeline := parse.Pipeline[endpoint]{
		Fallback:  extractEndpoints,
		PreFilter: hasController,
		Log:       ctx.Logger(),
		Workers:   4,
	}

	var endpoints []model.ApiEndpoint
	for _, ep := range pipeline.ScanFiles(files, stats) {
		rel := ctx.RelPath(ep.File)
		endpoints = append(endpoints, model.ApiEndpoint{
			ComponentID: model.ComponentID("spring-controller", rel),
			Type:        model.ApiREST,
			Path:        ep.Path,
			Method:      ep.Method,
			Handler:     ep.Handler,
			SourceFile:  rel,
		})
	}

	return &scanner.ScanResult{
		ScannerID:    s.ID(),
		Success:      true,
		ApiEndpoints: endpoints,
		Statistics:   stats.Build(),
	}
}

func init() {
	scanner.Register(springRestScanner{})
}
