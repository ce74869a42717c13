// Package service wires the collaboration graph pipeline together,
// from event log to published graph document.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/ai-village-agents/collabgraph/internal/adapters/docstore"
	"github.com/ai-village-agents/collabgraph/internal/adapters/eventlog"
	"github.com/ai-village-agents/collabgraph/internal/domain/aggregate"
	"github.com/ai-village-agents/collabgraph/internal/domain/alias"
	"github.com/ai-village-agents/collabgraph/internal/domain/graph"
	"github.com/ai-village-agents/collabgraph/internal/domain/roster"
	"github.com/ai-village-agents/collabgraph/internal/validate"
	"github.com/ai-village-agents/collabgraph/pkg/logger"
	"github.com/ai-village-agents/collabgraph/pkg/metrics"
	"github.com/google/uuid"
)

// Service runs the collaboration graph pipeline.
type Service struct {
	// Core components
	reader     *eventlog.Reader
	store      *docstore.Store
	agents     *roster.Roster
	resolver   *alias.Resolver
	aggregator *aggregate.Aggregator

	// Configuration
	shardCount int
	aliasTable map[string]string
	agentTable map[string]string
	excluded   []string
	graphOpts  []graph.Option

	// Logging
	log logger.Logger
}

// Summary describes one generation run.
type Summary struct {
	RunID          string
	Output         string
	TotalDays      int
	Events         int // events that contributed at least one member
	SkippedEvents  int
	Agents         int
	Pairs          int
	Collaborations int
	Elapsed        time.Duration
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithShardCount sets the number of aggregation shards.
func WithShardCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.shardCount = count
		}
	}
}

// WithAliases merges extra alias entries on top of the built-in
// shorthand table. Keys are raw tokens, values canonical agent names.
func WithAliases(table map[string]string) Option {
	return func(s *Service) {
		for token, name := range table {
			s.aliasTable[token] = name
		}
	}
}

// WithAgents registers extra agents on the roster. Keys are canonical
// names, values family labels.
func WithAgents(table map[string]string) Option {
	return func(s *Service) {
		for name, family := range table {
			s.agentTable[name] = family
		}
	}
}

// WithExclusions adds labels that never count as agents.
func WithExclusions(labels ...string) Option {
	return func(s *Service) {
		s.excluded = append(s.excluded, labels...)
	}
}

// WithTitle overrides the document title.
func WithTitle(title string) Option {
	return func(s *Service) {
		s.graphOpts = append(s.graphOpts, graph.WithTitle(title))
	}
}

// WithDescription overrides the document description.
func WithDescription(description string) Option {
	return func(s *Service) {
		s.graphOpts = append(s.graphOpts, graph.WithDescription(description))
	}
}

// WithSource overrides the source label recorded in document metadata.
func WithSource(source string) Option {
	return func(s *Service) {
		s.graphOpts = append(s.graphOpts, graph.WithSource(source))
	}
}

// WithGeneratedBy overrides the generator label recorded in document
// metadata.
func WithGeneratedBy(generatedBy string) Option {
	return func(s *Service) {
		s.graphOpts = append(s.graphOpts, graph.WithGeneratedBy(generatedBy))
	}
}

// WithNormalization overrides the normalization note recorded in
// document metadata.
func WithNormalization(normalization string) Option {
	return func(s *Service) {
		s.graphOpts = append(s.graphOpts, graph.WithNormalization(normalization))
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

// New constructs a Service with default configuration and builds the
// resolver, roster and aggregator from the accumulated options.
func New(opts ...Option) *Service {
	s := &Service{
		shardCount: 1,
		aliasTable: map[string]string{},
		agentTable: map[string]string{},
		log:        logger.Get().Named("service"),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.agents = roster.New(
		roster.WithAgents(s.agentTable),
		roster.WithExclusions(s.excluded...),
	)
	s.resolver = alias.New(
		alias.WithCanonicalNames(s.agents.Names()...),
		alias.WithAliases(s.aliasTable),
	)
	s.aggregator = aggregate.New(s.resolver, s.agents,
		aggregate.WithShardCount(s.shardCount),
	)
	s.reader = eventlog.New()
	s.store = docstore.New()

	return s
}

// Generate reads the event log at eventsPath, aggregates pairwise
// co-participation, builds the graph document with the given generated
// date stamp, validates it and writes it to outputPath. A document the
// validator rejects never reaches disk.
func (s *Service) Generate(ctx context.Context, eventsPath, outputPath, generated string) (*Summary, error) {
	runID := uuid.NewString()
	start := time.Now()

	s.log.Info(ctx, "generating collaboration graph",
		logger.String("run_id", runID),
		logger.String("events", eventsPath),
		logger.String("output", outputPath),
	)

	stage := time.Now()
	eventLog, err := s.reader.Read(ctx, eventsPath)
	if err != nil {
		return nil, err
	}
	metrics.ObserveStageDuration(metrics.StageRead, time.Since(stage).Seconds())

	stage = time.Now()
	tally, err := s.aggregator.Run(ctx, eventLog.Events)
	if err != nil {
		return nil, err
	}
	metrics.ObserveStageDuration(metrics.StageAggregate, time.Since(stage).Seconds())

	stage = time.Now()
	opts := make([]graph.Option, 0, len(s.graphOpts)+2)
	opts = append(opts, s.graphOpts...)
	opts = append(opts,
		graph.WithGenerated(generated),
		graph.WithTotalDays(eventLog.Metadata.LastUpdatedDay),
	)
	doc, err := graph.NewBuilder(s.agents, opts...).Build(tally)
	if err != nil {
		return nil, err
	}
	metrics.ObserveStageDuration(metrics.StageBuild, time.Since(stage).Seconds())

	if report := s.check(ctx, runID, doc); !report.OK() {
		return nil, fmt.Errorf("%w: %d violations", ErrInvalidDocument, len(report))
	}

	stage = time.Now()
	if err := s.store.Write(ctx, outputPath, doc); err != nil {
		return nil, err
	}
	metrics.ObserveStageDuration(metrics.StageWrite, time.Since(stage).Seconds())
	metrics.UpdateGraphShape(len(doc.Nodes), len(doc.Links), doc.Metadata.TotalCollaborations)

	summary := &Summary{
		RunID:          runID,
		Output:         outputPath,
		TotalDays:      doc.Metadata.TotalDays,
		Events:         tally.ContributingEvents,
		SkippedEvents:  tally.SkippedEvents,
		Agents:         len(doc.Nodes),
		Pairs:          len(doc.Links),
		Collaborations: doc.Metadata.TotalCollaborations,
		Elapsed:        time.Since(start),
	}

	s.log.Info(ctx, "collaboration graph written",
		logger.String("run_id", runID),
		logger.String("output", summary.Output),
		logger.Int("agents", summary.Agents),
		logger.Int("pairs", summary.Pairs),
		logger.Int("collaborations", summary.Collaborations),
		logger.Duration("elapsed", summary.Elapsed),
	)

	return summary, nil
}

// Validate checks a previously written graph document. The returned
// report lists every schema and consistency violation found; an error
// is returned only when the file cannot be read.
func (s *Service) Validate(ctx context.Context, path string) (validate.Report, error) {
	stage := time.Now()
	report, err := validate.File(path)
	if err != nil {
		return nil, err
	}
	metrics.ObserveStageDuration(metrics.StageValidate, time.Since(stage).Seconds())
	metrics.RecordValidationRun()
	recordViolations(report)

	if report.OK() {
		s.log.Info(ctx, "graph document is valid", logger.String("path", path))
		return report, nil
	}
	s.log.Warn(ctx, "graph document has violations",
		logger.String("path", path),
		logger.Int("violations", len(report)),
	)
	return report, nil
}

// check validates a freshly built document before it is written.
func (s *Service) check(ctx context.Context, runID string, doc *graph.Document) validate.Report {
	stage := time.Now()
	report := validate.Document(doc)
	metrics.ObserveStageDuration(metrics.StageValidate, time.Since(stage).Seconds())
	metrics.RecordValidationRun()
	recordViolations(report)

	for _, v := range report {
		s.log.Error(ctx, "graph document violation",
			logger.String("run_id", runID),
			logger.String("kind", string(v.Kind)),
			logger.String("field", v.Field),
			logger.String("message", v.Message),
		)
	}
	return report
}

func recordViolations(report validate.Report) {
	counts := make(map[validate.Kind]int, 2)
	for _, v := range report {
		counts[v.Kind]++
	}
	metrics.RecordValidationViolations(metrics.KindSchema, counts[validate.KindSchema])
	metrics.RecordValidationViolations(metrics.KindInvariant, counts[validate.KindInvariant])
}
