package service_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	service "github.com/ai-village-agents/collabgraph/internal/app"
	"github.com/ai-village-agents/collabgraph/internal/domain/graph"
	"github.com/ai-village-agents/collabgraph/internal/domain/roster"
	"github.com/ai-village-agents/collabgraph/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	err := logger.Init()
	if err != nil {
		panic(err)
	}
}

// Six events exercising canonical names, casing, built-in shorthands,
// mailbox addresses, within-event duplicates and excluded labels.
const villageLog = `{
  "metadata": {"total_events": 6, "last_updated_day": 21},
  "events": [
    {"id": "ev-1", "day": 3, "agents": ["Claude Opus 4.5", "GPT-5", "Gemini 2.5 Pro"]},
    {"id": "ev-2", "day": 5, "agents": ["claude opus 4.5", "gpt-5"]},
    {"id": "ev-3", "day": 9, "agents": ["opus 4.5", "Human Observer"]},
    {"id": "ev-4", "day": 14, "agents": ["o3", "o3", "GPT-5"]},
    {"id": "ev-5", "day": 17, "agents": ["Adam"]},
    {"id": "ev-6", "day": 21, "agents": ["claude-opus-4.5@agentvillage.org", "Gemini 2.5 Pro"]}
  ]
}`

func writeEventLog(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write event log fixture: %v", err)
	}
	return path
}

func TestServiceIntegration(t *testing.T) {
	Convey("Given a service and a realistic event log", t, func() {
		svc := service.New()
		ctx := context.Background()
		dir := t.TempDir()
		events := writeEventLog(t, dir, "events.json", villageLog)
		output := filepath.Join(dir, "graph-data.json")

		Convey("When generating the collaboration graph", func() {
			sum, err := svc.Generate(ctx, events, output, "2026-08-25")

			Convey("Then it should succeed", func() {
				So(err, ShouldBeNil)
				So(sum, ShouldNotBeNil)
			})

			Convey("And the summary should describe the run", func() {
				So(err, ShouldBeNil)
				So(sum.RunID, ShouldNotBeEmpty)
				So(sum.Output, ShouldEqual, output)
				So(sum.TotalDays, ShouldEqual, 21)
				So(sum.Events, ShouldEqual, 5)
				So(sum.SkippedEvents, ShouldEqual, 1)
				So(sum.Agents, ShouldEqual, 4)
				So(sum.Pairs, ShouldEqual, 4)
				So(sum.Collaborations, ShouldEqual, 6)
				So(sum.Elapsed, ShouldBeGreaterThan, 0)
			})

			Convey("And the published document should carry the tallies", func() {
				So(err, ShouldBeNil)
				data, readErr := os.ReadFile(output)
				So(readErr, ShouldBeNil)
				So(strings.HasSuffix(string(data), "}\n"), ShouldBeTrue)

				var doc graph.Document
				So(json.Unmarshal(data, &doc), ShouldBeNil)

				So(doc.Metadata.Title, ShouldEqual, "AI Village Collaboration Network")
				So(doc.Metadata.Generated, ShouldEqual, "2026-08-25")
				So(doc.Metadata.GeneratedBy, ShouldEqual, "graphgen")
				So(doc.Metadata.Source, ShouldEqual, "events.json")
				So(doc.Metadata.TotalDays, ShouldEqual, 21)
				So(doc.Metadata.TotalEvents, ShouldEqual, 5)
				So(doc.Metadata.TotalAgents, ShouldEqual, 4)
				So(doc.Metadata.UniquePairs, ShouldEqual, 4)
				So(doc.Metadata.TotalCollaborations, ShouldEqual, 6)

				So(doc.Nodes, ShouldResemble, []graph.Node{
					{ID: "Claude Opus 4.5", Events: 4, Family: roster.FamilyClaude},
					{ID: "GPT-5", Events: 3, Family: roster.FamilyGPT},
					{ID: "Gemini 2.5 Pro", Events: 2, Family: roster.FamilyGemini},
					{ID: "o3", Events: 1, Family: roster.FamilyOSeries},
				})
				So(doc.Links, ShouldResemble, []graph.Link{
					{Source: "Claude Opus 4.5", Target: "GPT-5", Weight: 2},
					{Source: "Claude Opus 4.5", Target: "Gemini 2.5 Pro", Weight: 2},
					{Source: "GPT-5", Target: "Gemini 2.5 Pro", Weight: 1},
					{Source: "GPT-5", Target: "o3", Weight: 1},
				})
			})

			Convey("And the published document should validate cleanly", func() {
				So(err, ShouldBeNil)
				report, valErr := svc.Validate(ctx, output)
				So(valErr, ShouldBeNil)
				So(report.OK(), ShouldBeTrue)
			})
		})
	})
}

func TestServiceDeterminism(t *testing.T) {
	Convey("Given the same event log generated repeatedly", t, func() {
		ctx := context.Background()
		dir := t.TempDir()
		events := writeEventLog(t, dir, "events.json", villageLog)

		Convey("When one service generates twice", func() {
			svc := service.New()
			first := filepath.Join(dir, "first.json")
			second := filepath.Join(dir, "second.json")

			_, err := svc.Generate(ctx, events, first, "2026-08-25")
			So(err, ShouldBeNil)
			_, err = svc.Generate(ctx, events, second, "2026-08-25")
			So(err, ShouldBeNil)

			Convey("Then both documents should be byte-identical", func() {
				a, errA := os.ReadFile(first)
				b, errB := os.ReadFile(second)
				So(errA, ShouldBeNil)
				So(errB, ShouldBeNil)
				So(string(a), ShouldEqual, string(b))
			})
		})

		Convey("When a sharded service generates the same log", func() {
			plain := service.New()
			sharded := service.New(service.WithShardCount(4))
			base := filepath.Join(dir, "plain.json")
			split := filepath.Join(dir, "sharded.json")

			_, err := plain.Generate(ctx, events, base, "2026-08-25")
			So(err, ShouldBeNil)
			_, err = sharded.Generate(ctx, events, split, "2026-08-25")
			So(err, ShouldBeNil)

			Convey("Then shard count should not change the output", func() {
				a, errA := os.ReadFile(base)
				b, errB := os.ReadFile(split)
				So(errA, ShouldBeNil)
				So(errB, ShouldBeNil)
				So(string(a), ShouldEqual, string(b))
			})
		})
	})
}

func TestServiceOverlays(t *testing.T) {
	Convey("Given a service with roster, alias and provenance overlays", t, func() {
		svc := service.New(
			service.WithAgents(map[string]string{"Clawd": "Other"}),
			service.WithAliases(map[string]string{"the clawd": "Clawd"}),
			service.WithExclusions("GPT-5"),
			service.WithShardCount(2),
			service.WithTitle("Village collaboration map"),
			service.WithSource("village-events.json"),
		)
		ctx := context.Background()
		dir := t.TempDir()
		events := writeEventLog(t, dir, "events.json", `{
  "metadata": {"total_events": 2, "last_updated_day": 0},
  "events": [
    {"id": "a", "day": 7, "agents": ["The Clawd", "GPT-5", "Claude Opus 4.5"]},
    {"id": "b", "day": 9, "agents": ["gpt-5"]}
  ]
}`)
		output := filepath.Join(dir, "graph-data.json")

		Convey("When generating the collaboration graph", func() {
			sum, err := svc.Generate(ctx, events, output, "2026-08-25")
			So(err, ShouldBeNil)

			Convey("Then overlay agents should count and excluded ones should not", func() {
				So(sum.Events, ShouldEqual, 1)
				So(sum.SkippedEvents, ShouldEqual, 1)
				So(sum.Agents, ShouldEqual, 2)
				So(sum.Pairs, ShouldEqual, 1)
				So(sum.Collaborations, ShouldEqual, 1)
			})

			Convey("And the document should reflect the overlays", func() {
				data, readErr := os.ReadFile(output)
				So(readErr, ShouldBeNil)

				var doc graph.Document
				So(json.Unmarshal(data, &doc), ShouldBeNil)

				So(doc.Metadata.Title, ShouldEqual, "Village collaboration map")
				So(doc.Metadata.Source, ShouldEqual, "village-events.json")
				// No last_updated_day in the log, so the day span
				// falls back to the highest contributing event day.
				So(doc.Metadata.TotalDays, ShouldEqual, 7)

				So(doc.Nodes, ShouldResemble, []graph.Node{
					{ID: "Claude Opus 4.5", Events: 1, Family: roster.FamilyClaude},
					{ID: "Clawd", Events: 1, Family: roster.FamilyOther},
				})
				So(doc.Links, ShouldResemble, []graph.Link{
					{Source: "Claude Opus 4.5", Target: "Clawd", Weight: 1},
				})
			})
		})
	})
}
