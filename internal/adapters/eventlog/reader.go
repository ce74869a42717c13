// Package eventlog loads the village event log from disk.
package eventlog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/ai-village-agents/collabgraph/internal/domain/model"
	"github.com/ai-village-agents/collabgraph/pkg/logger"
)

// Reader materializes an event log file in full before processing
// begins; the log is bounded, so there is no streaming path.
type Reader struct {
	log logger.Logger
}

// New creates a Reader.
func New(opts ...Option) *Reader {
	r := &Reader{
		log: logger.Get().Named("eventlog"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// rawLog defers event decoding so that a single malformed record skips
// with a warning instead of failing the whole file.
type rawLog struct {
	Metadata model.Meta      `json:"metadata"`
	Events   json.RawMessage `json:"events"`
}

// Read loads and decodes the log at path. A missing or non-list events
// field is fatal; individual records that do not decode are skipped.
func (r *Reader) Read(ctx context.Context, path string) (*model.Log, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read event log: %w", err)
	}

	var raw rawLog
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedLog, err)
	}

	trimmed := bytes.TrimSpace(raw.Events)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, ErrEventsNotList
	}
	var items []json.RawMessage
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEventsNotList, err)
	}

	out := &model.Log{
		Metadata: raw.Metadata,
		Events:   make([]model.Event, 0, len(items)),
	}
	malformed := 0
	for i, item := range items {
		var ev model.Event
		if err := json.Unmarshal(item, &ev); err != nil {
			malformed++
			r.log.Warn(ctx, "skipping malformed event record",
				logger.Int("index", i),
				logger.Error(err),
			)
			continue
		}
		ev.Seq = i
		out.Events = append(out.Events, ev)
	}

	r.log.Debug(ctx, "event log loaded",
		logger.String("path", path),
		logger.Int("events", len(out.Events)),
		logger.Int("malformed", malformed),
		logger.Int("reported_total", out.Metadata.TotalEvents),
	)
	return out, nil
}
