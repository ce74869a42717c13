// Package model contains the event-log records consumed by the pipeline.
package model

// Event is one record from the village event log. Agents holds the raw
// participant tokens exactly as logged: possibly duplicated, mixed case,
// or email-formatted. Records are read-only inputs.
type Event struct {
	ID     string   `json:"id,omitempty"`  // optional stable id, traceability only
	Day    int      `json:"day,omitempty"` // village day the event occurred on
	Agents []string `json:"agents"`        // raw participant tokens
	Seq    int      `json:"-"`             // zero-based log position, assigned by the reader
}

// Meta mirrors the event log's own metadata block. TotalEvents is the
// log's self-reported count; the pipeline derives its own contributing
// count and treats this value as diagnostic only.
type Meta struct {
	TotalEvents    int `json:"total_events"`
	LastUpdatedDay int `json:"last_updated_day"`
}

// Log is a fully materialized event log.
type Log struct {
	Metadata Meta    `json:"metadata"`
	Events   []Event `json:"events"`
}
