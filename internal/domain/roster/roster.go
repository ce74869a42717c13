// Package roster defines the closed set of canonical agent names that may
// appear as collaboration-graph nodes, the family classification of each,
// and the labels that are always excluded. Membership and exclusion are
// data tables, not logic: adding an agent is an entry in tables.go or a
// configuration overlay, never a new code branch.
package roster

import (
	"sort"
	"strings"
)

// Family is the coarse model-lineage grouping attached to each node. It
// is used for display classification only, never for weighting.
type Family string

// Known families.
const (
	FamilyClaude   Family = "Claude"
	FamilyGPT      Family = "GPT"
	FamilyGemini   Family = "Gemini"
	FamilyDeepSeek Family = "DeepSeek"
	FamilyGrok     Family = "Grok"
	FamilyOSeries  Family = "o-series"
	FamilyOther    Family = "Other"
)

// Agent is a canonical agent identity. Equality is by Name; a canonical
// name is the primary key everywhere downstream (node ids, pair keys).
type Agent struct {
	Name   string
	Family Family
}

// Roster answers eligibility and family questions for canonical names.
// It is immutable after construction and safe for concurrent use.
type Roster struct {
	agents   map[string]Agent    // canonical name -> identity
	excluded map[string]struct{} // lowercased labels, checked first
}

// Option configures a Roster.
type Option func(*Roster)

// WithAgent registers an additional eligible agent.
func WithAgent(name string, family Family) Option {
	return func(r *Roster) {
		if name == "" {
			return
		}
		r.agents[name] = Agent{Name: name, Family: family}
	}
}

// WithAgents registers additional agents from a name -> family table,
// the shape configuration overlays arrive in. Unknown family strings
// classify as FamilyOther rather than failing.
func WithAgents(table map[string]string) Option {
	return func(r *Roster) {
		for name, fam := range table {
			if name == "" {
				continue
			}
			r.agents[name] = Agent{Name: name, Family: ParseFamily(fam)}
		}
	}
}

// WithExclusions adds labels that are never eligible, regardless of any
// agent registration. Comparison is case-insensitive.
func WithExclusions(labels ...string) Option {
	return func(r *Roster) {
		for _, l := range labels {
			l = strings.ToLower(strings.TrimSpace(l))
			if l == "" {
				continue
			}
			r.excluded[l] = struct{}{}
		}
	}
}

// New builds a Roster from the built-in tables plus any overlays.
func New(opts ...Option) *Roster {
	r := &Roster{
		agents:   make(map[string]Agent, len(builtinAgents)),
		excluded: make(map[string]struct{}, len(builtinExcluded)),
	}
	for name, fam := range builtinAgents {
		r.agents[name] = Agent{Name: name, Family: fam}
	}
	for _, l := range builtinExcluded {
		r.excluded[strings.ToLower(l)] = struct{}{}
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Eligible reports whether name denotes a graph-node agent. Excluded
// labels are ineligible even if an overlay registered them as agents.
func (r *Roster) Eligible(name string) bool {
	if _, banned := r.excluded[strings.ToLower(strings.TrimSpace(name))]; banned {
		return false
	}
	_, ok := r.agents[name]
	return ok
}

// Family returns the family of a canonical name.
func (r *Roster) Family(name string) (Family, bool) {
	a, ok := r.agents[name]
	if !ok {
		return FamilyOther, false
	}
	return a.Family, true
}

// Agent returns the full identity registered under name.
func (r *Roster) Agent(name string) (Agent, bool) {
	a, ok := r.agents[name]
	return a, ok
}

// Names returns every registered canonical name in lexicographic order.
// The alias resolver seeds its lookup table from this list.
func (r *Roster) Names() []string {
	names := make([]string, 0, len(r.agents))
	for name := range r.agents {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseFamily maps a family label to its Family value. Matching is
// case-insensitive; anything unrecognized is FamilyOther.
func ParseFamily(s string) Family {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "claude":
		return FamilyClaude
	case "gpt":
		return FamilyGPT
	case "gemini":
		return FamilyGemini
	case "deepseek":
		return FamilyDeepSeek
	case "grok":
		return FamilyGrok
	case "o-series", "oseries":
		return FamilyOSeries
	default:
		return FamilyOther
	}
}
