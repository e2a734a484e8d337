// Package terraform scans Terraform configuration for infrastructure
// components. Tier 1 parses HCL with hclparse; the fallback matches
// resource and module headers textually.
package terraform

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/petrarca/doc-architect/internal/model"
	"github.com/petrarca/doc-architect/internal/scanner"
	"github.com/petrarca/doc-architect/internal/scanner/parse"
)

// resource is one resource, module or provider block extracted from a
// .tf file.
type resource struct {
	File     string
	Kind     string // "resource", "module", "provider"
	Type     string // e.g. aws_sqs_queue; empty for module blocks
	Name     string
	Metadata map[string]string
}

// blockSchema lists the block types we extract. Partial decoding keeps
// the parser tolerant of everything else in the file.
var blockSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "resource", LabelNames: []string{"type", "name"}},
		{Type: "module", LabelNames: []string{"name"}},
		{Type: "provider", LabelNames: []string{"name"}},
	},
}

type hclParser struct{}

func (hclParser) Language() string { return "hcl" }
func (hclParser) Available() bool { return true }

func (hclParser) ParseFile(path string, content []byte) ([]resource, error) {
	file, diags := hclparse.NewParser().ParseHCL(content, path)
	if diags.HasErrors() {
		return nil, parse.NewError(path, "invalid hcl: %s", diags.Error())
	}

	body, _, diags := file.Body.PartialContent(blockSchema)
	if diags.HasErrors() {
		return nil, parse.NewError(path, "invalid hcl: %s", diags.Error())
	}

	var out []resource
	for _, block := range body.Blocks {
		res := resource{File: path, Kind: block.Type, Metadata: map[string]string{}}
		switch block.Type {
		case "resource":
			res.Type = block.Labels[0]
			res.Name = block.Labels[1]
		default:
			res.Name = block.Labels[0]
		}
		if block.Type == "module" {
			if source, ok := literalAttr(block.Body, "source"); ok {
				res.Metadata["source"] = source
			}
		}
		out = append(out, res)
	}
	return out, nil
}

// literalAttr reads a string attribute when it is a plain literal;
// expressions referencing variables are skipped.
func literalAttr(body hcl.Body, name string) (string, bool) {
	attrs, _ := body.JustAttributes()
	attr, ok := attrs[name]
	if !ok {
		return "", false
	}
	val, diags := attr.Expr.Value(nil)
	if diags.HasErrors() || val.Type() != cty.String {
		return "", false
	}
	return val.AsString(), true
}

var blockHeaderRegex = regexp.MustCompile(
	`(?m)^\s*(resource|module|provider)\s+"([^"]+)"(?:\s+"([^"]+)")?\s*\{`)

// fallback scrapes block headers out of files hclparse rejects
func fallback(path, content string) []resource {
	var out []resource
	for _, m := range blockHeaderRegex.FindAllStringSubmatch(content, -1) {
		res := resource{File: path, Kind: m[1], Metadata: map[string]string{}}
		switch m[1] {
		case "resource":
			if m[3] == "" {
				continue
			}
			res.Type = m[2]
			res.Name = m[3]
		default:
			res.Name = m[2]
		}
		out = append(out, res)
	}
	return out
}

// resourceTypeMapping classifies well-known resource type prefixes onto
// the architecture model.
var resourceTypeMapping = []struct {
	prefix string
	kind   model.ComponentType
}{
	{"aws_sqs", model.ComponentMessageBroker},
	{"aws_sns", model.ComponentMessageBroker},
	{"aws_msk", model.ComponentMessageBroker},
	{"aws_rds", model.ComponentDatabase},
	{"aws_db_instance", model.ComponentDatabase},
	{"aws_dynamodb", model.ComponentDatabase},
	{"aws_elasticache", model.ComponentCache},
	{"aws_lb", model.ComponentLoadBalancer},
	{"aws_alb", model.ComponentLoadBalancer},
	{"aws_api_gateway", model.ComponentAPIGateway},
	{"aws_apigatewayv2", model.ComponentAPIGateway},
	{"google_sql", model.ComponentDatabase},
	{"google_pubsub", model.ComponentMessageBroker},
	{"azurerm_servicebus", model.ComponentMessageBroker},
	{"azurerm_postgresql", model.ComponentDatabase},
	{"azurerm_mysql", model.ComponentDatabase},
	{"kafka_topic", model.ComponentMessageBroker},
}

func classifyResource(resourceType string) model.ComponentType {
	for _, m := range resourceTypeMapping {
		if strings.HasPrefix(resourceType, m.prefix) {
			return m.kind
		}
	}
	return model.ComponentInfra
}

type terraformScanner struct{}

func (terraformScanner) ID() string { return "terraform" }
func (terraformScanner) DisplayName() string { return "Terraform Scanner" }
func (terraformScanner) Priority() int { return 20 }

func (terraformScanner) AppliesTo(ctx *scanner.ScanContext) bool {
	return ctx.HasAnyFiles("**/*.tf")
}

func (s terraformScanner) Scan(ctx *scanner.ScanContext) *scanner.ScanResult {
	files := ctx.FindFiles("**/*.tf")
	if len(files) == 0 {
		return scanner.EmptyResult(s.ID())
	}

	stats := scanner.NewStatisticsBuilder().FilesDiscovered(len(files))
	pipeline := parse.Pipeline[resource]{
		Structural: hclParser{},
		Fallback:   fallback,
		Log:        ctx.Logger(),
	}

	var components []model.Component
	for _, res := range pipeline.ScanFiles(files, stats) {
		if res.Kind == "provider" {
			// Providers describe where infrastructure runs, not what it is
			continue
		}
		rel := ctx.RelPath(res.File)
		kind := model.ComponentModule
		name := res.Name
		if res.Kind == "resource" {
			kind = classifyResource(res.Type)
			name = fmt.Sprintf("%s.%s", res.Type, res.Name)
			res.Metadata["resource_type"] = res.Type
		}
		components = append(components, model.Component{
			ID:         model.ComponentID("terraform-"+res.Kind, rel+":"+name),
			Name:       name,
			Type:       kind,
			Technology: "terraform",
			Path:       rel,
			Metadata:   res.Metadata,
		})
	}

	return &scanner.ScanResult{
		ScannerID:  s.ID(),
		Success:    true,
		Components: components,
		Statistics: stats.Build(),
	}
}

func init() {
	scanner.Register(terraformScanner{})
}
