package testlog

import (
	"fmt"
	"os"

	"github.com/ai-village-agents/collabgraph/pkg/logger"
)

// SetupLogging initializes logging for the test tool. Verbose runs get
// debug-level output.
func SetupLogging(verbose bool) error {
	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	level := "info"
	if verbose {
		level = "debug"
	}
	if err := logger.SetLevelString(level); err != nil {
		return fmt.Errorf("failed to set log level: %w", err)
	}
	return nil
}

// ShowHelp prints usage information for the test log tool.
func ShowHelp() {
	os.Stdout.WriteString(`Collabgraph Log Test Tool
=========================

Generates a synthetic AI Village event log, runs the full collaboration
graph pipeline over it, and verifies the published document.

Usage:
  go run cmd/test-log/main.go [options]

Options:
  -events int
        Number of events to generate (default 200)
  -days int
        Day span the events are spread over (default 30)
  -max-agents int
        Maximum participants per event (default 5)
  -malformed int
        Number of junk records injected into the log (default 4)
  -shards int
        Aggregation shard count for the pipeline run (default 4)
  -workers int
        Number of concurrent generator workers (default CPU cores * 2)
  -output string
        Output file for the event log (default: test_events_TIMESTAMP.json)
  -graph string
        Output file for the graph document (default: test_graph_TIMESTAMP.json)
  -verbose
        Enable verbose logging
  -help
        Show this help message

Examples:
  # Run with default settings
  go run cmd/test-log/main.go

  # Generate a bigger log and keep the artifacts
  go run cmd/test-log/main.go -events 5000 -output events.json -graph graph-data.json

  # Exercise the sequential aggregation path
  go run cmd/test-log/main.go -shards 1 -verbose
`)
}
