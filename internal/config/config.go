// Package config defines tool configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults; Load(ctx) layers
//   file and environment on top.
// - External errors must be wrapped via this package's sentinel kinds.
// - The normalization tables (aliases, agents, excluded) are data, not
//   code: registering a new agent is a configuration change.
package config

// Config contains process configuration for the graph tools.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// EventsPath is the default input event log location.
	EventsPath string `koanf:"events_path"`

	// OutputPath is the default graph document location.
	OutputPath string `koanf:"output_path"`

	// ShardCount sets how many shards aggregation splits the event
	// slice into. 1 keeps the sequential path.
	ShardCount int `koanf:"shard_count"`

	// MetricsAddr, when non-empty, serves /metrics and /healthz on this
	// address for the duration of a run, e.g. ":9080".
	MetricsAddr string `koanf:"metrics_addr"`

	// Graph carries the provenance strings embedded into the output
	// metadata. They are never computed.
	Graph GraphConfig `koanf:"graph"`

	// Aliases adds raw variant -> canonical name entries to the alias
	// table, on top of the built-in one. This is where operators decide
	// whether in-fiction role-play names count for their agent.
	Aliases map[string]string `koanf:"aliases"`

	// Agents registers extra canonical agents as name -> family.
	Agents map[string]string `koanf:"agents"`

	// Excluded extends the list of labels that never become nodes.
	Excluded []string `koanf:"excluded"`
}

// GraphConfig groups the output provenance strings.
type GraphConfig struct {
	Title         string `koanf:"title"`
	Description   string `koanf:"description"`
	Source        string `koanf:"source"`
	GeneratedBy   string `koanf:"generated_by"`
	Normalization string `koanf:"normalization"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:    "info",
		EventsPath:  "events.json",
		OutputPath:  "graph-data.json",
		ShardCount:  1,
		MetricsAddr: "",
		Graph: GraphConfig{
			Title:         "AI Village Collaboration Network",
			Description:   "Pairwise co-participation of AI Village agents in logged events",
			Source:        "events.json",
			GeneratedBy:   "graphgen",
			Normalization: "alias resolution + agent allowlist + within-event dedup",
		},
		Aliases:  map[string]string{},
		Agents:   map[string]string{},
		Excluded: []string{},
	}
}
