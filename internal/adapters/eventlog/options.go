package eventlog

import "github.com/ai-village-agents/collabgraph/pkg/logger"

// Option applies a configuration option to the Reader.
type Option func(*Reader)

// WithLogger overrides the reader's logger.
func WithLogger(l logger.Logger) Option {
	return func(r *Reader) {
		if l != nil {
			r.log = l
		}
	}
}
