package config_test

import (
	"testing"

	"github.com/ai-village-agents/collabgraph/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.EventsPath, convey.ShouldEqual, "events.json")
			convey.So(cfg.OutputPath, convey.ShouldEqual, "graph-data.json")
			convey.So(cfg.ShardCount, convey.ShouldEqual, 1)
			convey.So(cfg.MetricsAddr, convey.ShouldBeEmpty)
		})

		convey.Convey("Then graph provenance should be prefilled", func() {
			convey.So(cfg.Graph.Title, convey.ShouldEqual, "AI Village Collaboration Network")
			convey.So(cfg.Graph.GeneratedBy, convey.ShouldEqual, "graphgen")
			convey.So(cfg.Graph.Source, convey.ShouldEqual, "events.json")
			convey.So(cfg.Graph.Normalization, convey.ShouldNotBeEmpty)
		})

		convey.Convey("Then the table overlays should start empty", func() {
			convey.So(cfg.Aliases, convey.ShouldBeEmpty)
			convey.So(cfg.Agents, convey.ShouldBeEmpty)
			convey.So(cfg.Excluded, convey.ShouldBeEmpty)
		})
	})
}
