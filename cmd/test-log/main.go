package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/ai-village-agents/collabgraph/internal/testlog"
)

// Default configuration constants.
const (
	defaultNumEvents       = 200
	defaultDays            = 30
	defaultMaxParticipants = 5
	defaultMalformed       = 4
	defaultShards          = 4
	defaultWorkers         = 2 // multiplier for runtime.NumCPU()
	defaultTestTimeout     = 10 * time.Minute
)

func main() {
	var (
		numEvents = flag.Int("events", defaultNumEvents, "Number of events to generate")
		days      = flag.Int("days", defaultDays, "Day span the events are spread over")
		maxAgents = flag.Int("max-agents", defaultMaxParticipants, "Maximum participants per event")
		malformed = flag.Int("malformed", defaultMalformed, "Number of junk records injected into the log")
		shards    = flag.Int("shards", defaultShards, "Aggregation shard count for the pipeline run")
		workers   = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent generator workers")
		output    = flag.String("output", "", "Output file for the event log (default: test_events_TIMESTAMP.json)")
		graph     = flag.String("graph", "", "Output file for the graph document (default: test_graph_TIMESTAMP.json)")
		verbose   = flag.Bool("verbose", false, "Enable verbose logging")
		help      = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		testlog.ShowHelp()
		return
	}

	// Setup logging
	if err := testlog.SetupLogging(*verbose); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	// Create context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), defaultTestTimeout)
	defer cancel()

	// Create test configuration
	config := &testlog.Config{
		NumEvents:       *numEvents,
		Days:            *days,
		MaxParticipants: *maxAgents,
		Malformed:       *malformed,
		Shards:          *shards,
		Workers:         *workers,
		OutputFile:      *output,
		GraphFile:       *graph,
		Verbose:         *verbose,
	}

	// Run the test
	if err := testlog.Run(ctx, config); err != nil {
		os.Stderr.WriteString("Test failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}
