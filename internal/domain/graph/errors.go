package graph

import "errors"

// Common graph build errors.
var (
	// ErrMissingGenerated means no date stamp was supplied. The document
	// is never built without one; this surfaces before anything is
	// written.
	ErrMissingGenerated = errors.New("generated date stamp is required")

	// ErrNilTally means Build was called without an aggregation result.
	ErrNilTally = errors.New("nil aggregation tally")
)
