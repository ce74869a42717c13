package testlog

import "time"

// Config holds configuration for the synthetic log run
type Config struct {
	NumEvents       int    // Number of events to generate
	Days            int    // Day span the events are spread over
	MaxParticipants int    // Upper bound on participants per event
	Malformed       int    // Number of junk records injected into the log
	Shards          int    // Aggregation shard count for the pipeline run
	Workers         int    // Number of concurrent generator workers
	OutputFile      string // Output file for the event log
	GraphFile       string // Output file for the generated graph document
	Verbose         bool   // Enable verbose logging
}

// Stats holds synthetic log run statistics
type Stats struct {
	EventsGenerated int
	TokensEmitted   int
	AliasTokens     int
	MailboxTokens   int
	ExcludedTokens  int
	UnknownTokens   int
	DuplicateTokens int
	MalformedJunk   int
	StartTime       time.Time
	EndTime         time.Time
	Duration        time.Duration
}
