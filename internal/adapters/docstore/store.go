// Package docstore persists graph documents as pretty-printed,
// human-diffable JSON files.
package docstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ai-village-agents/collabgraph/internal/domain/graph"
	"github.com/ai-village-agents/collabgraph/pkg/logger"
	"github.com/ai-village-agents/collabgraph/pkg/metrics"
)

// Default serialization settings; the two-space indent and trailing
// newline keep regeneration diffs clean in version control.
const (
	defaultIndent   = "  "
	defaultFileMode = os.FileMode(0o644)
)

// Store reads and writes graph document files. Writes are atomic: the
// document lands in a temp file in the target directory and is renamed
// into place, so a failed run never leaves a partial document behind.
type Store struct {
	log      logger.Logger
	indent   string
	fileMode os.FileMode
}

// New creates a Store.
func New(opts ...Option) *Store {
	s := &Store{
		log:      logger.Get().Named("docstore"),
		indent:   defaultIndent,
		fileMode: defaultFileMode,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Write serializes doc and atomically replaces the file at path.
func (s *Store) Write(ctx context.Context, path string, doc *graph.Document) error {
	if doc == nil {
		return ErrNilDocument
	}

	data, err := json.MarshalIndent(doc, "", s.indent)
	if err != nil {
		return fmt.Errorf("encode graph document: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".graph-data-*.json")
	if err != nil {
		return fmt.Errorf("create temp document: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) //nolint:errcheck // gone already when the rename succeeded

	if _, err := tmp.Write(data); err != nil {
		tmp.Close() //nolint:errcheck // write error takes precedence
		return fmt.Errorf("write temp document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp document: %w", err)
	}
	if err := os.Chmod(tmpName, s.fileMode); err != nil {
		return fmt.Errorf("chmod temp document: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("publish document: %w", err)
	}

	metrics.RecordDocumentWritten()
	s.log.Info(ctx, "wrote graph data",
		logger.String("path", path),
		logger.Int("bytes", len(data)),
		logger.Int("nodes", len(doc.Nodes)),
		logger.Int("links", len(doc.Links)),
	)
	return nil
}

// Read loads and decodes the document at path.
func (s *Store) Read(ctx context.Context, path string) (*graph.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read graph document: %w", err)
	}
	var doc graph.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	return &doc, nil
}
