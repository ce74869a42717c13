package aggregate

import (
	"github.com/ai-village-agents/collabgraph/pkg/logger"
)

// Option applies a configuration option to the Aggregator.
type Option func(*Aggregator)

// WithShardCount sets how many shards Run splits the event slice into.
// Values below 2 keep the sequential path.
func WithShardCount(n int) Option {
	return func(a *Aggregator) {
		if n > 0 {
			a.shards = n
		}
	}
}

// WithLogger overrides the aggregator's logger.
func WithLogger(l logger.Logger) Option {
	return func(a *Aggregator) {
		if l != nil {
			a.log = l
		}
	}
}
