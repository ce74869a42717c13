package alias

// Option applies a configuration option to the Resolver.
type Option func(*Resolver)

// WithCanonicalNames seeds lookup variants for each canonical name, so
// that its casing, hyphenation and mailbox forms all resolve to it.
func WithCanonicalNames(names ...string) Option {
	return func(r *Resolver) {
		for _, name := range names {
			r.seed(name)
		}
	}
}

// WithAliases registers extra variant -> canonical entries from a
// configuration overlay. Later entries override earlier ones for the
// same normalized variant.
func WithAliases(table map[string]string) Option {
	return func(r *Resolver) {
		for variant, canonical := range table {
			r.add(variant, canonical)
		}
	}
}
