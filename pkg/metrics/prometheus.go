// Package metrics provides Prometheus instrumentation for the
// collabgraph pipeline. Counters and gauges describe the most recent
// generation run; the registry can be exposed over HTTP for long runs.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Pipeline stage labels used with stage duration observations.
const (
	StageRead      = "read"
	StageAggregate = "aggregate"
	StageBuild     = "build"
	StageWrite     = "write"
	StageValidate  = "validate"
)

// Violation kind labels.
const (
	KindSchema    = "schema"
	KindInvariant = "invariant"
)

// Manager owns all Prometheus collectors for the pipeline.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Event-stream counters.
	eventsScanned      prometheus.Counter
	eventsContributing prometheus.Counter
	eventsSkipped      prometheus.Counter

	// Token normalization counters.
	tokensResolved prometheus.Counter
	tokensExcluded prometheus.Counter
	aliasHits      prometheus.Counter

	// Output shape of the last build.
	graphNodes          prometheus.Gauge
	graphLinks          prometheus.Gauge
	graphCollaborations prometheus.Gauge

	// Run bookkeeping.
	documentsWritten prometheus.Counter
	shardCount       prometheus.Gauge
	stageDuration    *prometheus.HistogramVec

	// Validation outcomes.
	validationRuns       prometheus.Counter
	validationViolations *prometheus.CounterVec
}

// Global manager registered on a private registry so the default Go
// collectors never mix into pipeline scrapes.
var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

var pipelineRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // backing registry for the singleton

func init() { //nolint:gochecknoinits // metrics must exist before any pipeline package runs
	globalManager = NewManager(WithRegistry(pipelineRegistry))
}

// NewManager creates a metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "collabgraph",
		subsystem:        "pipeline",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.eventsScanned = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "events_scanned_total",
		Help:      "Total number of event records read from the log",
	})

	m.eventsContributing = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "events_contributing_total",
		Help:      "Events that contributed at least one eligible participant",
	})

	m.eventsSkipped = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "events_skipped_total",
		Help:      "Events with no resolvable, eligible participants",
	})

	m.tokensResolved = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "tokens_resolved_total",
		Help:      "Raw participant tokens accepted as canonical agents",
	})

	m.tokensExcluded = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "tokens_excluded_total",
		Help:      "Raw participant tokens dropped by the allowlist",
	})

	m.aliasHits = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "alias_hits_total",
		Help:      "Tokens rewritten by the alias table before allowlisting",
	})

	m.graphNodes = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "graph_nodes",
		Help:      "Node count of the most recently built graph document",
	})

	m.graphLinks = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "graph_links",
		Help:      "Link count of the most recently built graph document",
	})

	m.graphCollaborations = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "graph_collaborations",
		Help:      "Sum of link weights in the most recently built graph document",
	})

	m.documentsWritten = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "documents_written_total",
		Help:      "Graph documents successfully written to disk",
	})

	m.shardCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "aggregation_shards",
		Help:      "Shard count used by the most recent aggregation run",
	})

	m.stageDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "stage_duration_seconds",
			Help:      "Wall-clock duration of each pipeline stage",
			Buckets:   m.histogramBuckets,
		},
		[]string{"stage"},
	)

	m.validationRuns = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "validation_runs_total",
		Help:      "Validation passes executed",
	})

	m.validationViolations = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "validation_violations_total",
			Help:      "Violations reported by the validator, by kind",
		},
		[]string{"kind"},
	)
}

// RecordEventScanned counts one event record read from the log.
func RecordEventScanned() {
	globalManager.eventsScanned.Inc()
}

// RecordEventContributing counts an event that produced node effects.
func RecordEventContributing() {
	globalManager.eventsContributing.Inc()
}

// RecordEventSkipped counts an event with no eligible participants.
func RecordEventSkipped() {
	globalManager.eventsSkipped.Inc()
}

// RecordTokenResolved counts a token accepted as a canonical agent.
func RecordTokenResolved() {
	globalManager.tokensResolved.Inc()
}

// RecordTokenExcluded counts a token dropped by the allowlist.
func RecordTokenExcluded() {
	globalManager.tokensExcluded.Inc()
}

// RecordAliasHit counts a token rewritten by the alias table.
func RecordAliasHit() {
	globalManager.aliasHits.Inc()
}

// UpdateGraphShape records the node/link/weight totals of a build.
func UpdateGraphShape(nodes, links, collaborations int) {
	globalManager.graphNodes.Set(float64(nodes))
	globalManager.graphLinks.Set(float64(links))
	globalManager.graphCollaborations.Set(float64(collaborations))
}

// RecordDocumentWritten counts one successfully persisted document.
func RecordDocumentWritten() {
	globalManager.documentsWritten.Inc()
}

// UpdateShardCount records the shard count of an aggregation run.
func UpdateShardCount(shards int) {
	globalManager.shardCount.Set(float64(shards))
}

// ObserveStageDuration records seconds spent in a pipeline stage.
func ObserveStageDuration(stage string, seconds float64) {
	globalManager.stageDuration.WithLabelValues(stage).Observe(seconds)
}

// RecordValidationRun counts one validation pass.
func RecordValidationRun() {
	globalManager.validationRuns.Inc()
}

// RecordValidationViolations adds n violations of the given kind.
func RecordValidationViolations(kind string, n int) {
	if n <= 0 {
		return
	}
	globalManager.validationViolations.WithLabelValues(kind).Add(float64(n))
}

// Handler exposes the pipeline registry for scraping.
func Handler() http.Handler {
	return promhttp.HandlerFor(pipelineRegistry, promhttp.HandlerOpts{})
}

// GetRegistry returns the backing registry, mainly for tests.
func GetRegistry() *prometheus.Registry {
	return pipelineRegistry
}
