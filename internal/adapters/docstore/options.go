package docstore

import (
	"os"

	"github.com/ai-village-agents/collabgraph/pkg/logger"
)

// Option applies a configuration option to the Store.
type Option func(*Store)

// WithLogger overrides the store's logger.
func WithLogger(l logger.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// WithIndent sets the serialization indent.
func WithIndent(indent string) Option {
	return func(s *Store) {
		if indent != "" {
			s.indent = indent
		}
	}
}

// WithFileMode sets the mode of the published file.
func WithFileMode(mode os.FileMode) Option {
	return func(s *Store) {
		if mode != 0 {
			s.fileMode = mode
		}
	}
}
