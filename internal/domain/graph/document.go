// Package graph models the collaboration-graph document and builds it
// from aggregation tallies.
package graph

import (
	"github.com/ai-village-agents/collabgraph/internal/domain/roster"
)

// Metadata carries the document's derived counts and caller-supplied
// provenance. Count fields are recomputed on every build; provenance
// fields are configuration, never computed.
type Metadata struct {
	Title               string `json:"title"`
	Description         string `json:"description"`
	TotalDays           int    `json:"total_days" jsonschema:"minimum=0"`
	TotalEvents         int    `json:"total_events" jsonschema:"minimum=0"`
	TotalAgents         int    `json:"total_agents" jsonschema:"minimum=0"`
	UniquePairs         int    `json:"unique_pairs" jsonschema:"minimum=0"`
	TotalCollaborations int    `json:"total_collaborations" jsonschema:"minimum=0"`
	Generated           string `json:"generated" jsonschema:"description=Date stamp (YYYY-MM-DD) supplied by the caller"`
	GeneratedBy         string `json:"generated_by"`
	Source              string `json:"source"`
	Normalization       string `json:"normalization"`
}

// Node is one canonical agent with its accumulated event count. The id
// doubles as the display name; ids are pairwise distinct within a
// document.
type Node struct {
	ID     string        `json:"id"`
	Events int           `json:"events" jsonschema:"minimum=1"`
	Family roster.Family `json:"family"`
}

// Link is an unordered collaboration edge. Source sorts before Target
// lexicographically so the same pair always serializes identically.
type Link struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Weight int    `json:"weight" jsonschema:"minimum=1"`
}

// Document is the published artifact: immutable once serialized,
// consumed read-only by the validator and the visualization.
type Document struct {
	Metadata Metadata `json:"metadata"`
	Nodes    []Node   `json:"nodes"`
	Links    []Link   `json:"links"`
}
