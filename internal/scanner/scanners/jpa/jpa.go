// Package jpa scans JPA-annotated Java sources for persisted data
// entities: entity name, mapped table and field declarations.
package jpa

import (
	"regexp"
	"strings"

	"github.com/petrarca/doc-architect/internal/model"
	"github.com/petrarca/doc-architect/internal/scanner"
	"github.com/petrarca/doc-architect/internal/scanner/parse"
)

type entity struct {
	File   string
	Name   string
	Table  string
	Fields []model.EntityField
}

var (
	persistenceImport = regexp.MustCompile(`import\s+(?:javax|jakarta)\.persistence\.`)
	entityAnnotRegex  = regexp.MustCompile(`@Entity\b`)
	tableAnnotRegex   = regexp.MustCompile(`@Table\s*\(\s*name\s*=\s*"([^"]+)"`)
	classNameRegex    = regexp.MustCompile(`(?m)^\s*(?:public\s+)?(?:abstract\s+)?class\s+(\w+)`)
	fieldRegex        = regexp.MustCompile(`(?m)^\s*(?:private|protected)\s+([\w<>,.\[\]]+)\s+(\w+)\s*(?:=[^;]*)?;`)
	columnNullableRe  = regexp.MustCompile(`@Column\s*\([^)]*nullable\s*=\s*false`)
)

// hasEntity pre-filters for files importing the persistence API and
// carrying an @Entity annotation.
func hasEntity(_, content string) bool {
	return persistenceImport.MatchString(content) && entityAnnotRegex.MatchString(content)
}

// extractEntities pulls the entity class, its table mapping and its
// private field declarations out of the source text. Static and
// transient members are not persisted and are skipped.
func extractEntities(file, content string) []entity {
	if !entityAnnotRegex.MatchString(content) {
		return nil
	}

	e := entity{File: file}
	if m := classNameRegex.FindStringSubmatch(content); m != nil {
		e.Name = m[1]
	}
	if e.Name == "" {
		return nil
	}
	if m := tableAnnotRegex.FindStringSubmatch(content); m != nil {
		e.Table = m[1]
	} else {
		e.Table = toSnakeCase(e.Name)
	}

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		if strings.Contains(line, "static ") {
			continue
		}
		m := fieldRegex.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		// Annotations sit on the lines directly above the declaration
		nullable := true
		transient := false
		for j := i - 1; j >= 0; j-- {
			annot := strings.TrimSpace(lines[j])
			if !strings.HasPrefix(annot, "@") {
				break
			}
			if strings.HasPrefix(annot, "@Transient") {
				transient = true
			}
			if columnNullableRe.MatchString(annot) || strings.HasPrefix(annot, "@Id") {
				nullable = false
			}
		}
		if transient {
			continue
		}
		e.Fields = append(e.Fields, model.EntityField{
			Name:     m[2],
			DataType: m[1],
			Nullable: nullable,
		})
	}

	return []entity{e}
}

// toSnakeCase approximates the default JPA table naming strategy
func toSnakeCase(name string) string {
	var b strings.Builder
	for i, r := range name {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r - 'A' + 'a')
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

type jpaScanner struct{}

func (jpaScanner) ID() string { return "jpa-entities" }
func (jpaScanner) DisplayName() string { return "JPA Entity Scanner" }
func (jpaScanner) Priority() int { return 61 }

func (jpaScanner) AppliesTo(ctx *scanner.ScanContext) bool {
	if ctx.DependencyDeclared("spring-boot-starter-data-jpa") ||
		ctx.DependencyDeclared("hibernate-core") ||
		ctx.DependencyDeclared("jakarta.persistence") {
		return true
	}
	return ctx.HasAnyFiles("**/entity/**/*.java", "**/domain/**/*.java", "**/model/**/*.java")
}

func (s jpaScanner) Scan(ctx *scanner.ScanContext) *scanner.ScanResult {
	files := ctx.FindFiles("**/*.java")
	if len(files) == 0 {
		return scanner.EmptyResult(s.ID())
	}

	stats := scanner.NewStatisticsBuilder().FilesDiscovered(len(files))
	pipeline := parse.Pipeline[entity]{
		Fallback:  extractEntities,
		PreFilter: hasEntity,
		Log:       ctx.Logger(),
		Workers:   4,
	}

	var entities []model.DataEntity
	for _, e := range pipeline.ScanFiles(files, stats) {
		rel := ctx.RelPath(e.File)
		entities = append(entities, model.DataEntity{
			ComponentID: model.ComponentID("jpa-entity", rel),
			Name:        e.Name,
			Table:       e.Table,
			Fields:      e.Fields,
			SourceFile:  rel,
		})
	}

	return &scanner.ScanResult{
		ScannerID:    s.ID(),
		Success:      true,
		DataEntities: entities,
		Statistics:   stats.Build(),
	}
}

func init() {
	scanner.Register(jpaScanner{})
}
