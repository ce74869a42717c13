package graph

import (
	"sort"

	"github.com/ai-village-agents/collabgraph/internal/domain/aggregate"
	"github.com/ai-village-agents/collabgraph/internal/domain/roster"
)

// Default provenance values; configuration normally overrides these.
const (
	defaultTitle         = "AI Village Collaboration Network"
	defaultDescription   = "Pairwise co-participation of AI Village agents in logged events"
	defaultGeneratedBy   = "graphgen"
	defaultSource        = "events.json"
	defaultNormalization = "alias resolution + agent allowlist + within-event dedup"
)

// Option applies a configuration option to the Builder.
type Option func(*Builder)

// WithTitle sets metadata.title.
func WithTitle(title string) Option {
	return func(b *Builder) {
		if title != "" {
			b.title = title
		}
	}
}

// WithDescription sets metadata.description.
func WithDescription(description string) Option {
	return func(b *Builder) {
		if description != "" {
			b.description = description
		}
	}
}

// WithSource sets metadata.source, the provenance label of the event
// log the document was derived from.
func WithSource(source string) Option {
	return func(b *Builder) {
		if source != "" {
			b.source = source
		}
	}
}

// WithGeneratedBy sets metadata.generated_by.
func WithGeneratedBy(generatedBy string) Option {
	return func(b *Builder) {
		if generatedBy != "" {
			b.generatedBy = generatedBy
		}
	}
}

// WithNormalization sets metadata.normalization, the human-readable
// summary of the filtering applied upstream.
func WithNormalization(normalization string) Option {
	return func(b *Builder) {
		if normalization != "" {
			b.normalization = normalization
		}
	}
}

// WithGenerated sets the caller-supplied date stamp. Build fails
// without one.
func WithGenerated(stamp string) Option {
	return func(b *Builder) {
		b.generated = stamp
	}
}

// WithTotalDays sets metadata.total_days from the event log's own
// metadata. Zero defers to the highest day seen during aggregation.
func WithTotalDays(days int) Option {
	return func(b *Builder) {
		if days > 0 {
			b.totalDays = days
		}
	}
}

// Builder assembles documents from tallies. Construction is cheap; a
// Builder is immutable after New and safe for reuse across runs.
type Builder struct {
	agents *roster.Roster

	title         string
	description   string
	source        string
	generatedBy   string
	normalization string
	generated     string
	totalDays     int
}

// NewBuilder creates a Builder classifying nodes against the given
// roster. A nil roster falls back to the built-in tables.
func NewBuilder(agents *roster.Roster, opts ...Option) *Builder {
	b := &Builder{
		agents:        agents,
		title:         defaultTitle,
		description:   defaultDescription,
		generatedBy:   defaultGeneratedBy,
		source:        defaultSource,
		normalization: defaultNormalization,
	}
	if b.agents == nil {
		b.agents = roster.New()
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build produces the document for a tally. Nodes and links come out
// sorted by id so that two runs over the same inputs and date stamp
// serialize byte-identically.
func (b *Builder) Build(tally *aggregate.Tally) (*Document, error) {
	if b.generated == "" {
		return nil, ErrMissingGenerated
	}
	if tally == nil {
		return nil, ErrNilTally
	}

	nodes := make([]Node, 0, len(tally.Agents))
	for name, count := range tally.Agents {
		fam, ok := b.agents.Family(name)
		if !ok {
			fam = roster.FamilyOther
		}
		nodes = append(nodes, Node{ID: name, Events: count, Family: fam})
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID < nodes[j].ID })

	links := make([]Link, 0, len(tally.Pairs))
	collaborations := 0
	for pair, weight := range tally.Pairs {
		links = append(links, Link{Source: pair.A, Target: pair.B, Weight: weight})
		collaborations += weight
	}
	sort.Slice(links, func(i, j int) bool {
		if links[i].Source != links[j].Source {
			return links[i].Source < links[j].Source
		}
		return links[i].Target < links[j].Target
	})

	days := b.totalDays
	if days == 0 {
		days = tally.MaxDay
	}

	return &Document{
		Metadata: Metadata{
			Title:               b.title,
			Description:         b.description,
			TotalDays:           days,
			TotalEvents:         tally.ContributingEvents,
			TotalAgents:         len(nodes),
			UniquePairs:         len(links),
			TotalCollaborations: collaborations,
			Generated:           b.generated,
			GeneratedBy:         b.generatedBy,
			Source:              b.source,
			Normalization:       b.normalization,
		},
		Nodes: nodes,
		Links: links,
	}, nil
}
