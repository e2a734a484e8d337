// Package model defines the architecture model extracted by scanners:
// components, dependencies, API endpoints, message flows, data entities
// and the relationships between them.
package model

// ComponentType classifies a discovered component
type ComponentType string

const (
	ComponentService       ComponentType = "service"
	ComponentModule        ComponentType = "module"
	ComponentLibrary       ComponentType = "library"
	ComponentExternal      ComponentType = "external"
	ComponentDatabase      ComponentType = "database"
	ComponentMessageBroker ComponentType = "message_broker"
	ComponentAPIGateway    ComponentType = "api_gateway"
	ComponentLoadBalancer  ComponentType = "load_balancer"
	ComponentCache         ComponentType = "cache"
	ComponentInfra         ComponentType = "infrastructure"
	ComponentUnknown       ComponentType = "unknown"
)

// ApiType classifies an API endpoint
type ApiType string

const (
	ApiREST      ApiType = "rest"
	ApiGraphQL   ApiType = "graphql"
	ApiGRPC      ApiType = "grpc"
	ApiWebSocket ApiType = "websocket"
	ApiSOAP      ApiType = "soap"
)

// RelationshipType classifies a relationship between two components
type RelationshipType string

const (
	RelCalls      RelationshipType = "calls"
	RelUses       RelationshipType = "uses"
	RelPublishes  RelationshipType = "publishes"
	RelSubscribes RelationshipType = "subscribes"
	RelDependsOn  RelationshipType = "depends_on"
	RelReadsFrom  RelationshipType = "reads_from"
	RelWritesTo   RelationshipType = "writes_to"
	RelContains   RelationshipType = "contains"
)

// Component is a deployable or logical unit discovered in the codebase
// (a Maven module, a Go module, a Terraform resource, a Spring service).
type Component struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	Type       ComponentType     `json:"type"`
	Technology string            `json:"technology,omitempty"`
	Path       string            `json:"path,omitempty"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

// Dependency is a declared build dependency of a component
type Dependency struct {
	SourceComponentID string `json:"source_component_id"`
	Group             string `json:"group,omitempty"`
	Name              string `json:"name"`
	Version           string `json:"version,omitempty"`
	Scope             string `json:"scope,omitempty"`
}

// ApiEndpoint is an exposed API operation
type ApiEndpoint struct {
	ComponentID string  `json:"component_id"`
	Type        ApiType `json:"type"`
	Path        string  `json:"path"`
	Method      string  `json:"method,omitempty"`
	Handler     string  `json:"handler,omitempty"`
	SourceFile  string  `json:"source_file,omitempty"`
}

// MessageFlow is a publish or subscribe interaction with a broker topic.
// Either side may be empty when only one end was observed.
type MessageFlow struct {
	PublisherComponentID  string `json:"publisher_component_id,omitempty"`
	SubscriberComponentID string `json:"subscriber_component_id,omitempty"`
	Topic                 string `json:"topic"`
	Broker                string `json:"broker,omitempty"`
	MessageType           string `json:"message_type,omitempty"`
}

// EntityField is a single persisted field of a data entity
type EntityField struct {
	Name     string `json:"name"`
	DataType string `json:"data_type,omitempty"`
	Nullable bool   `json:"nullable,omitempty"`
}

// DataEntity is a persisted domain object (JPA entity, ORM model, table)
type DataEntity struct {
	ComponentID string        `json:"component_id"`
	Name        string        `json:"name"`
	Table       string        `json:"table,omitempty"`
	Fields      []EntityField `json:"fields,omitempty"`
	SourceFile  string        `json:"source_file,omitempty"`
}

// Relationship connects two components
type Relationship struct {
	SourceID   string           `json:"source_id"`
	TargetID   string           `json:"target_id"`
	Type       RelationshipType `json:"type"`
	Technology string           `json:"technology,omitempty"`
}

// ArchitectureModel is the aggregated output of a scan run, consumed by
// renderers and downstream generators.
type ArchitectureModel struct {
	ProjectName   string         `json:"project_name"`
	Repository    *RepositoryRef `json:"repository,omitempty"`
	Components    []Component    `json:"components"`
	Dependencies  []Dependency   `json:"dependencies"`
	ApiEndpoints  []ApiEndpoint  `json:"api_endpoints"`
	MessageFlows  []MessageFlow  `json:"message_flows"`
	DataEntities  []DataEntity   `json:"data_entities"`
	Relationships []Relationship `json:"relationships"`
}

// RepositoryRef identifies the scanned repository state
type RepositoryRef struct {
	Branch    string `json:"branch,omitempty"`
	Commit    string `json:"commit,omitempty"`
	RemoteURL string `json:"remote_url,omitempty"`
	Dirty     bool   `json:"dirty,omitempty"`
}
