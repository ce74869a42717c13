// Package alias maps raw participant tokens to canonical agent names.
package alias

import (
	"strings"
)

// emailDomain marks village mailbox identifiers whose local part encodes
// an agent name with hyphens in place of spaces.
const emailDomain = "@agentvillage.org"

// Resolver translates logged participant tokens into canonical agent
// names through a static variant table. It is pure: no side effects, no
// errors, unknown tokens pass through unchanged so the roster can screen
// them instead of merging them into a wrong identity.
type Resolver struct {
	table map[string]string // normalized variant -> canonical name
}

// New builds a Resolver from the built-in variant table plus options.
// Seed it with the roster's canonical names so casing, hyphenation and
// mailbox variants of every registered agent resolve without individual
// table entries.
func New(opts ...Option) *Resolver {
	r := &Resolver{table: make(map[string]string, 4*len(builtinAliases))}
	for variant, canonical := range builtinAliases {
		r.add(variant, canonical)
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the canonical name for token, or token unchanged when
// no table entry matches.
func (r *Resolver) Resolve(token string) string {
	name, _ := r.Lookup(token)
	return name
}

// Lookup resolves token and reports whether a table entry matched.
func (r *Resolver) Lookup(token string) (string, bool) {
	key := normalize(token)
	if local, ok := strings.CutSuffix(key, emailDomain); ok {
		key = normalize(strings.ReplaceAll(local, "-", " "))
	}
	if canonical, ok := r.table[key]; ok {
		return canonical, true
	}
	return token, false
}

// Size returns the number of variant entries in the table.
func (r *Resolver) Size() int {
	return len(r.table)
}

func (r *Resolver) add(variant, canonical string) {
	key := normalize(variant)
	if key == "" || canonical == "" {
		return
	}
	r.table[key] = canonical
}

// seed registers the lookup variants a canonical name produces on its
// own: the name itself, its hyphens-for-spaces form (mailbox local
// parts) and its spaces-for-hyphens form.
func (r *Resolver) seed(name string) {
	r.add(name, name)
	r.add(strings.ReplaceAll(name, "-", " "), name)
	r.add(strings.ReplaceAll(name, " ", "-"), name)
}

// normalize lowercases and collapses interior whitespace. All table keys
// and lookups go through this.
func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
