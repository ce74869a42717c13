package eventlog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ai-village-agents/collabgraph/pkg/logger"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func writeLog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "events.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestReadValidLog(t *testing.T) {
	ctx := context.Background()
	path := writeLog(t, `{
		"metadata": {"total_events": 2, "last_updated_day": 31},
		"events": [
			{"id": "e1", "day": 30, "agents": ["Claude 3.7 Sonnet", "o3"]},
			{"day": 31, "agents": ["Gemini 2.5 Pro"]}
		]
	}`)

	log, err := New().Read(ctx, path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(log.Events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(log.Events))
	}
	if log.Metadata.TotalEvents != 2 || log.Metadata.LastUpdatedDay != 31 {
		t.Errorf("metadata not decoded: %+v", log.Metadata)
	}
	if log.Events[0].Seq != 0 || log.Events[1].Seq != 1 {
		t.Errorf("sequence numbers not assigned: %+v", log.Events)
	}
	if got := log.Events[0].Agents[1]; got != "o3" {
		t.Errorf("expected second agent o3, got %q", got)
	}
}

func TestReadSkipsMalformedRecords(t *testing.T) {
	ctx := context.Background()
	path := writeLog(t, `{
		"events": [
			{"agents": ["o3"]},
			"not an event",
			{"agents": 42},
			{"agents": ["GPT-5"]}
		]
	}`)

	log, err := New().Read(ctx, path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(log.Events) != 2 {
		t.Fatalf("expected 2 surviving events, got %d", len(log.Events))
	}
	// Seq reflects the original log position, not the surviving index.
	if log.Events[1].Seq != 3 {
		t.Errorf("expected surviving event to keep seq 3, got %d", log.Events[1].Seq)
	}
}

func TestReadEventsNotList(t *testing.T) {
	ctx := context.Background()
	cases := map[string]string{
		"missing": `{"metadata": {}}`,
		"null":    `{"events": null}`,
		"object":  `{"events": {"a": 1}}`,
		"string":  `{"events": "nope"}`,
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := New().Read(ctx, writeLog(t, content))
			if !errors.Is(err, ErrEventsNotList) {
				t.Fatalf("expected ErrEventsNotList, got %v", err)
			}
		})
	}
}

func TestReadMalformedFile(t *testing.T) {
	ctx := context.Background()
	_, err := New().Read(ctx, writeLog(t, "{broken"))
	if !errors.Is(err, ErrMalformedLog) {
		t.Fatalf("expected ErrMalformedLog, got %v", err)
	}
}

func TestReadMissingFile(t *testing.T) {
	ctx := context.Background()
	_, err := New().Read(ctx, filepath.Join(t.TempDir(), "absent.json"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected wrapped os.ErrNotExist, got %v", err)
	}
}
