package docstore

import "errors"

// Sentinel kinds for document store failures.
var (
	// ErrNilDocument means Write was called without a document.
	ErrNilDocument = errors.New("nil graph document")

	// ErrMalformedDocument means the file on disk does not decode as a
	// graph document.
	ErrMalformedDocument = errors.New("graph document does not decode")
)
