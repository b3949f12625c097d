package model

// EdgeKind enumerates the relationship kinds the graph sink accepts
// (spec §4.7).
type EdgeKind string

const (
	EdgeKindDeclares      EdgeKind = "DECLARES"
	EdgeKindExtends       EdgeKind = "EXTENDS"
	EdgeKindImplements    EdgeKind = "IMPLEMENTS"
	EdgeKindCalls         EdgeKind = "CALLS"
	EdgeKindUses          EdgeKind = "USES"
	EdgeKindHasParameter  EdgeKind = "HAS_PARAMETER"
	EdgeKindReturns       EdgeKind = "RETURNS"
	EdgeKindAnnotatedWith EdgeKind = "ANNOTATED_WITH"
	EdgeKindContains      EdgeKind = "CONTAINS"
)

// GraphNode is one symbol emitted to the sink, keyed by FQN.
type GraphNode struct {
	Fqn      string
	Name     string
	Kind     SymbolKind
	FilePath string
	Location Location
	Domain   string
}

// GraphEdge is one relationship emitted to the sink, keyed by the FQNs
// of its endpoints.
type GraphEdge struct {
	SourceFqn string
	TargetFqn string
	Kind      EdgeKind
	Location  Location
}
