// Package kafka scans Java sources for Kafka publish and subscribe
// sites: @KafkaListener subscriptions and KafkaTemplate sends. Each
// observed topic becomes a message flow against a synthesized broker
// component.
package kafka

import (
	"regexp"
	"sort"

	"github.com/petrarca/doc-architect/internal/model"
	"github.com/petrarca/doc-architect/internal/scanner"
	"github.com/petrarca/doc-architect/internal/scanner/parse"
)

const brokerName = "kafka"

// flowSite is one publish or subscribe occurrence in a source file
type flowSite struct {
	File      string
	Topic     string
	Publish   bool
	GroupID   string
	ValueType string
}

var (
	kafkaMarker    = regexp.MustCompile(`@KafkaListener\b|KafkaTemplate\b|kafkaTemplate\.`)
	listenerRegex  = regexp.MustCompile(`@KafkaListener\s*\(([^)]*)\)`)
	topicsAttrRe   = regexp.MustCompile(`topics\s*=\s*\{?\s*"([^"]+)"`)
	groupIDAttrRe  = regexp.MustCompile(`groupId\s*=\s*"([^"]+)"`)
	sendRegex      = regexp.MustCompile(`[kK]afkaTemplate\s*\.\s*send\s*\(\s*"([^"]+)"`)
	templateTypeRe = regexp.MustCompile(`KafkaTemplate<\s*[\w.]+\s*,\s*([\w.]+)\s*>`)
)

func usesKafka(_, content string) bool {
	return kafkaMarker.MatchString(content)
}

// extractFlows pulls listener subscriptions and template sends out of
// one source file.
func extractFlows(file, content string) []flowSite {
	var out []flowSite

	valueType := ""
	if m := templateTypeRe.FindStringSubmatch(content); m != nil {
		valueType = m[1]
	}

	for _, m := range listenerRegex.FindAllStringSubmatch(content, -1) {
		topic := firstGroup(topicsAttrRe, m[1])
		if topic == "" {
			continue
		}
		out = append(out, flowSite{
			File:    file,
			Topic:   topic,
			GroupID: firstGroup(groupIDAttrRe, m[1]),
		})
	}

	for _, m := range sendRegex.FindAllStringSubmatch(content, -1) {
		out = append(out, flowSite{
			File:      file,
			Topic:     m[1],
			Publish:   true,
			ValueType: valueType,
		})
	}

	return out
}

func firstGroup(re *regexp.Regexp, s string) string {
	if m := re.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	return ""
}

type kafkaScanner struct{}

func (kafkaScanner) ID() string { return "kafka-flows" }
func (kafkaScanner) DisplayName() string { return "Kafka Message Flow Scanner" }
func (kafkaScanner) Priority() int { return 62 }

func (kafkaScanner) AppliesTo(ctx *scanner.ScanContext) bool {
	if ctx.DependencyDeclared("spring-kafka") || ctx.DependencyDeclared("kafka-clients") {
		return true
	}
	return ctx.HasAnyFiles("**/*Consumer*.java", "**/*Producer*.java", "**/*Listener*.java")
}

func (s kafkaScanner) Scan(ctx *scanner.ScanContext) *scanner.ScanResult {
	files := ctx.FindFiles("**/*.java")
	if len(files) == 0 {
		return scanner.EmptyResult(s.ID())
	}

	stats := scanner.NewStatisticsBuilder().FilesDiscovered(len(files))
	pipeline := parse.Pipeline[flowSite]{
		Fallback:  extractFlows,
		PreFilter: usesKafka,
		Log:       ctx.Logger(),
		Workers:   4,
	}

	sites := pipeline.ScanFiles(files, stats)
	if len(sites) == 0 {
		return &scanner.ScanResult{
			ScannerID:  s.ID(),
			Success:    true,
			Statistics: stats.Build(),
		}
	}

	brokerID := model.ComponentID("message-broker", brokerName)
	components := []model.Component{{
		ID:         brokerID,
		Name:       brokerName,
		Type:       model.ComponentMessageBroker,
		Technology: "kafka",
	}}

	var flows []model.MessageFlow
	var relationships []model.Relationship
	seenRel := make(map[string]struct{})

	for _, site := range sites {
		rel := ctx.RelPath(site.File)
		siteID := model.ComponentID("kafka-site", rel)

		flow := model.MessageFlow{
			Topic:       site.Topic,
			Broker:      brokerName,
			MessageType: site.ValueType,
		}
		relType := model.RelSubscribes
		if site.Publish {
			flow.PublisherComponentID = siteID
			relType = model.RelPublishes
		} else {
			flow.SubscriberComponentID = siteID
		}
		flows = append(flows, flow)

		key := siteID + "/" + string(relType)
		if _, dup := seenRel[key]; !dup {
			seenRel[key] = struct{}{}
			relationships = append(relationships, model.Relationship{
				SourceID:   siteID,
				TargetID:   brokerID,
				Type:       relType,
				Technology: "kafka",
			})
		}
	}

	sort.Slice(flows, func(i, j int) bool { return flows[i].Topic < flows[j].Topic })

	return &scanner.ScanResult{
		ScannerID:     s.ID(),
		Success:       true,
		Components:    components,
		MessageFlows:  flows,
		Relationships: relationships,
		Statistics:    stats.Build(),
	}
}

func init() {
	scanner.Register(kafkaScanner{})
}
