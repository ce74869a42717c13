// Package validate checks serialized graph documents against the
// expected shape and the cross-field numeric invariants. It never
// raises on malformed input: structural problems become schema
// violations, and every check runs so one pass surfaces every problem.
package validate

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/ai-village-agents/collabgraph/internal/domain/graph"
)

// Kind classifies a violation.
type Kind string

// Violation kinds.
const (
	// KindSchema covers structural problems: missing fields, wrong
	// types, malformed JSON.
	KindSchema Kind = "schema"
	// KindInvariant covers numeric inconsistencies between metadata and
	// the node/link contents.
	KindInvariant Kind = "invariant"
)

// Violation is one failed check. Message is self-contained: it names
// the field and states expected versus actual.
type Violation struct {
	Kind    Kind
	Field   string
	Message string
}

func (v Violation) String() string {
	return v.Message
}

// Report is the ordered list of violations from one validation pass.
// Schema violations come first, then invariants in their fixed order.
type Report []Violation

// OK reports whether the document passed every check.
func (r Report) OK() bool {
	return len(r) == 0
}

// File validates the document at path. The error covers I/O only;
// content problems land in the report.
func File(path string) (Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read graph document: %w", err)
	}
	return Bytes(data), nil
}

// Document validates an in-memory document by serializing it through
// the same pass the published file goes through.
func Document(doc *graph.Document) Report {
	data, err := json.Marshal(doc)
	if err != nil {
		return Report{{Kind: KindSchema, Field: "document", Message: fmt.Sprintf("document does not serialize: %v", err)}}
	}
	return Bytes(data)
}

// Bytes validates a serialized document.
func Bytes(data []byte) Report {
	c := &checker{}

	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		c.add(KindSchema, "document", fmt.Sprintf("document is not a JSON object: %v", err))
		return c.report
	}

	view := c.checkSchema(doc)
	c.checkInvariants(view)
	return c.report
}

// metadata fields checked in order; ints before strings mirrors the
// document layout.
var (
	requiredInts    = []string{"total_days", "total_events", "total_agents", "unique_pairs", "total_collaborations"}
	optionalInts    = []string{"total_links"}
	requiredStrings = []string{"title", "description", "generated", "generated_by", "source", "normalization"}
)

type nodeView struct {
	id       string
	idOK     bool
	events   int
	eventsOK bool
}

type linkView struct {
	source   string
	target   string
	srcOK    bool
	tgtOK    bool
	weight   int
	weightOK bool
}

// docView is the partially-typed document the invariant phase works on.
// Each piece carries its own validity so invariants can run on whatever
// parsed, independent of problems elsewhere.
type docView struct {
	ints    map[string]int
	nodes   []nodeView
	nodesOK bool
	links   []linkView
	linksOK bool
}

type checker struct {
	report Report
}

func (c *checker) add(kind Kind, field, message string) {
	c.report = append(c.report, Violation{Kind: kind, Field: field, Message: message})
}

func (c *checker) addf(kind Kind, field, format string, args ...any) {
	c.add(kind, field, fmt.Sprintf(format, args...))
}

func (c *checker) checkSchema(doc map[string]any) *docView {
	view := &docView{ints: make(map[string]int)}

	meta, ok := asObject(doc["metadata"])
	if !ok {
		c.add(KindSchema, "metadata", "metadata is missing or not an object")
	} else {
		c.checkMetadata(meta, view)
	}

	view.nodes, view.nodesOK = c.checkNodes(doc["nodes"])
	view.links, view.linksOK = c.checkLinks(doc["links"])
	return view
}

func (c *checker) checkMetadata(meta map[string]any, view *docView) {
	for _, field := range requiredInts {
		v, present := meta[field]
		if !present {
			c.addf(KindSchema, "metadata."+field, "metadata.%s is missing", field)
			continue
		}
		n, ok := asInt(v)
		if !ok || n < 0 {
			c.addf(KindSchema, "metadata."+field, "metadata.%s must be a non-negative integer, got %v", field, v)
			continue
		}
		view.ints[field] = n
	}
	for _, field := range optionalInts {
		v, present := meta[field]
		if !present {
			continue
		}
		n, ok := asInt(v)
		if !ok || n < 0 {
			c.addf(KindSchema, "metadata."+field, "metadata.%s must be a non-negative integer, got %v", field, v)
			continue
		}
		view.ints[field] = n
	}
	for _, field := range requiredStrings {
		v, present := meta[field]
		if !present {
			c.addf(KindSchema, "metadata."+field, "metadata.%s is missing", field)
			continue
		}
		if _, ok := v.(string); !ok {
			c.addf(KindSchema, "metadata."+field, "metadata.%s must be a string, got %v", field, v)
		}
	}
}

func (c *checker) checkNodes(v any) ([]nodeView, bool) {
	raw, ok := v.([]any)
	if !ok {
		c.add(KindSchema, "nodes", "nodes is missing or not a list")
		return nil, false
	}
	nodes := make([]nodeView, len(raw))
	for i, item := range raw {
		obj, ok := asObject(item)
		if !ok {
			c.addf(KindSchema, fmt.Sprintf("nodes[%d]", i), "nodes[%d] is not an object", i)
			continue
		}
		if id, ok := obj["id"].(string); ok && id != "" {
			nodes[i].id = id
			nodes[i].idOK = true
		} else {
			c.addf(KindSchema, fmt.Sprintf("nodes[%d].id", i), "nodes[%d].id must be a non-empty string, got %v", i, obj["id"])
		}
		if n, ok := asInt(obj["events"]); ok && n > 0 {
			nodes[i].events = n
			nodes[i].eventsOK = true
		} else {
			c.addf(KindSchema, fmt.Sprintf("nodes[%d].events", i), "nodes[%d].events must be a positive integer, got %v", i, obj["events"])
		}
		if fam, ok := obj["family"].(string); !ok || fam == "" {
			c.addf(KindSchema, fmt.Sprintf("nodes[%d].family", i), "nodes[%d].family must be a non-empty string, got %v", i, obj["family"])
		}
	}
	return nodes, true
}

func (c *checker) checkLinks(v any) ([]linkView, bool) {
	raw, ok := v.([]any)
	if !ok {
		c.add(KindSchema, "links", "links is missing or not a list")
		return nil, false
	}
	links := make([]linkView, len(raw))
	for i, item := range raw {
		obj, ok := asObject(item)
		if !ok {
			c.addf(KindSchema, fmt.Sprintf("links[%d]", i), "links[%d] is not an object", i)
			continue
		}
		if s, ok := obj["source"].(string); ok && s != "" {
			links[i].source = s
			links[i].srcOK = true
		} else {
			c.addf(KindSchema, fmt.Sprintf("links[%d].source", i), "links[%d].source must be a non-empty string, got %v", i, obj["source"])
		}
		if t, ok := obj["target"].(string); ok && t != "" {
			links[i].target = t
			links[i].tgtOK = true
		} else {
			c.addf(KindSchema, fmt.Sprintf("links[%d].target", i), "links[%d].target must be a non-empty string, got %v", i, obj["target"])
		}
		if w, ok := asInt(obj["weight"]); ok && w > 0 {
			links[i].weight = w
			links[i].weightOK = true
		} else {
			c.addf(KindSchema, fmt.Sprintf("links[%d].weight", i), "links[%d].weight must be a positive integer, got %v", i, obj["weight"])
		}
	}
	return links, true
}

// checkInvariants evaluates every cross-field rule the parsed pieces
// allow. No short-circuiting: each broken rule contributes its own
// entry.
func (c *checker) checkInvariants(view *docView) {
	totalAgents, haveTotalAgents := view.ints["total_agents"]
	if haveTotalAgents && view.nodesOK && totalAgents != len(view.nodes) {
		c.addf(KindInvariant, "metadata.total_agents",
			"metadata.total_agents is %d, want %d (number of nodes)", totalAgents, len(view.nodes))
	}

	if totalLinks, have := view.ints["total_links"]; have && view.linksOK && totalLinks != len(view.links) {
		c.addf(KindInvariant, "metadata.total_links",
			"metadata.total_links is %d, want %d (number of links)", totalLinks, len(view.links))
	}

	if total, have := view.ints["total_collaborations"]; have && view.linksOK {
		sum, complete := 0, true
		for _, l := range view.links {
			if !l.weightOK {
				complete = false
				break
			}
			sum += l.weight
		}
		if complete && total != sum {
			c.addf(KindInvariant, "metadata.total_collaborations",
				"metadata.total_collaborations is %d, want %d (sum of link weights)", total, sum)
		}
	}

	if uniquePairs, have := view.ints["unique_pairs"]; have && view.linksOK && uniquePairs != len(view.links) {
		c.addf(KindInvariant, "metadata.unique_pairs",
			"metadata.unique_pairs is %d, want %d (number of links)", uniquePairs, len(view.links))
	}

	ids := make(map[string]bool, len(view.nodes))
	if view.nodesOK {
		for _, n := range view.nodes {
			if n.idOK {
				ids[n.id] = true
			}
		}
	}
	if view.nodesOK && view.linksOK {
		for i, l := range view.links {
			if l.srcOK && !ids[l.source] {
				c.addf(KindInvariant, fmt.Sprintf("links[%d].source", i),
					"links[%d].source %q is not a node id", i, l.source)
			}
			if l.tgtOK && !ids[l.target] {
				c.addf(KindInvariant, fmt.Sprintf("links[%d].target", i),
					"links[%d].target %q is not a node id", i, l.target)
			}
			if l.srcOK && l.tgtOK && l.source == l.target {
				c.addf(KindInvariant, fmt.Sprintf("links[%d]", i),
					"links[%d] connects %q to itself", i, l.source)
			}
		}
	}

	if view.nodesOK {
		seen := make(map[string]int, len(view.nodes))
		for _, n := range view.nodes {
			if !n.idOK {
				continue
			}
			seen[n.id]++
			if seen[n.id] == 2 {
				c.addf(KindInvariant, "nodes", "node id %q appears more than once", n.id)
			}
		}
	}

	if totalEvents, have := view.ints["total_events"]; have && view.nodesOK {
		sum, maxEvents, complete := 0, 0, true
		for _, n := range view.nodes {
			if !n.eventsOK {
				complete = false
				break
			}
			sum += n.events
			if n.events > maxEvents {
				maxEvents = n.events
			}
		}
		if complete {
			if totalEvents > sum {
				c.addf(KindInvariant, "metadata.total_events",
					"metadata.total_events is %d, exceeds the total node participation %d", totalEvents, sum)
			}
			if totalEvents < maxEvents {
				c.addf(KindInvariant, "metadata.total_events",
					"metadata.total_events is %d, below the highest node event count %d", totalEvents, maxEvents)
			}
		}
	}
}

func asObject(v any) (map[string]any, bool) {
	obj, ok := v.(map[string]any)
	return obj, ok
}

// asInt accepts JSON numbers that are whole. encoding/json decodes
// every number as float64, so integrality is a value check, not a type
// check.
func asInt(v any) (int, bool) {
	f, ok := v.(float64)
	if !ok || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}
