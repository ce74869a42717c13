package docstore

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ai-village-agents/collabgraph/internal/domain/graph"
	"github.com/ai-village-agents/collabgraph/internal/domain/roster"
	"github.com/ai-village-agents/collabgraph/pkg/logger"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func sampleDoc() *graph.Document {
	return &graph.Document{
		Metadata: graph.Metadata{
			Title:               "AI Village Collaboration Network",
			Description:         "test document",
			TotalDays:           3,
			TotalEvents:         2,
			TotalAgents:         2,
			UniquePairs:         1,
			TotalCollaborations: 2,
			Generated:           "2026-08-25",
			GeneratedBy:         "graphgen",
			Source:              "events.json",
			Normalization:       "test",
		},
		Nodes: []graph.Node{
			{ID: "Claude 3.7 Sonnet", Events: 2, Family: roster.FamilyClaude},
			{ID: "Gemini 2.5 Pro", Events: 2, Family: roster.FamilyGemini},
		},
		Links: []graph.Link{
			{Source: "Claude 3.7 Sonnet", Target: "Gemini 2.5 Pro", Weight: 2},
		},
	}
}

func TestWriteAndRead(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "graph-data.json")
	store := New()

	if err := store.Write(ctx, path, sampleDoc()); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	got, err := store.Read(ctx, path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if len(got.Nodes) != 2 || len(got.Links) != 1 {
		t.Errorf("round trip lost content: %d nodes, %d links", len(got.Nodes), len(got.Links))
	}
	if got.Metadata.Generated != "2026-08-25" {
		t.Errorf("metadata not preserved: %+v", got.Metadata)
	}
}

func TestWriteFormat(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "graph-data.json")

	if err := New().Write(ctx, path, sampleDoc()); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}

	if !bytes.HasSuffix(data, []byte("}\n")) {
		t.Error("document should end with a single trailing newline")
	}
	if !strings.Contains(string(data), "\n  \"metadata\": {") {
		t.Error("document should be indented with two spaces")
	}
	// Key order is fixed by the struct layout; spot-check determinism.
	first := strings.Index(string(data), `"metadata"`)
	nodesAt := strings.Index(string(data), `"nodes"`)
	linksAt := strings.Index(string(data), `"links"`)
	if !(first < nodesAt && nodesAt < linksAt) {
		t.Error("sections should serialize as metadata, nodes, links")
	}
}

func TestWriteDeterministic(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store := New()

	p1 := filepath.Join(dir, "a.json")
	p2 := filepath.Join(dir, "b.json")
	if err := store.Write(ctx, p1, sampleDoc()); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if err := store.Write(ctx, p2, sampleDoc()); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	d1, _ := os.ReadFile(p1)
	d2, _ := os.ReadFile(p2)
	if !bytes.Equal(d1, d2) {
		t.Error("two writes of the same document should be byte-identical")
	}
}

func TestWriteAtomicReplace(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "graph-data.json")
	if err := os.WriteFile(path, []byte("old content"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := New().Write(ctx, path, sampleDoc()); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "old content") {
		t.Error("previous content should be fully replaced")
	}

	// No temp files may survive a successful write.
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".graph-data-") {
			t.Errorf("leftover temp file: %s", e.Name())
		}
	}
}

func TestWriteNilDocument(t *testing.T) {
	ctx := context.Background()
	err := New().Write(ctx, filepath.Join(t.TempDir(), "out.json"), nil)
	if !errors.Is(err, ErrNilDocument) {
		t.Fatalf("expected ErrNilDocument, got %v", err)
	}
}

func TestWriteFailureLeavesNoFile(t *testing.T) {
	ctx := context.Background()
	missingDir := filepath.Join(t.TempDir(), "does", "not", "exist")
	path := filepath.Join(missingDir, "graph-data.json")

	if err := New().Write(ctx, path, sampleDoc()); err == nil {
		t.Fatal("expected write into a missing directory to fail")
	}
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("no output file may exist after a failed write, stat: %v", err)
	}
}

func TestReadMalformed(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{broken"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := New().Read(ctx, path)
	if !errors.Is(err, ErrMalformedDocument) {
		t.Fatalf("expected ErrMalformedDocument, got %v", err)
	}
}
