// Package aggregate scans the event log and accumulates per-agent
// participation counts and pairwise collaboration weights.
package aggregate

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/ai-village-agents/collabgraph/internal/domain/alias"
	"github.com/ai-village-agents/collabgraph/internal/domain/model"
	"github.com/ai-village-agents/collabgraph/internal/domain/roster"
	"github.com/ai-village-agents/collabgraph/pkg/logger"
	"github.com/ai-village-agents/collabgraph/pkg/metrics"
)

const defaultShardCount = 1

// Aggregator runs the resolve -> filter -> dedupe -> count pass over
// events. Safe for concurrent use; all state lives in the returned Tally.
type Aggregator struct {
	resolver *alias.Resolver
	roster   *roster.Roster
	shards   int
	log      logger.Logger
}

// New creates an Aggregator. Nil resolver or roster fall back to the
// built-in tables.
func New(resolver *alias.Resolver, agents *roster.Roster, opts ...Option) *Aggregator {
	a := &Aggregator{
		resolver: resolver,
		roster:   agents,
		shards:   defaultShardCount,
		log:      logger.Named("aggregate"),
	}
	if a.resolver == nil {
		a.resolver = alias.New()
	}
	if a.roster == nil {
		a.roster = roster.New()
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Run consumes the full event slice and returns the aggregate tally.
// Event order never affects the result: every counter update is a
// commutative sum, so the sharded path below and the sequential path
// produce identical tallies.
func (a *Aggregator) Run(ctx context.Context, events []model.Event) (*Tally, error) {
	shards := a.shards
	if shards > len(events) {
		shards = len(events)
	}
	if shards < 1 {
		shards = 1
	}
	metrics.UpdateShardCount(shards)
	if shards == 1 {
		return a.runSequential(ctx, events)
	}
	return a.runSharded(ctx, events, shards)
}

func (a *Aggregator) runSequential(ctx context.Context, events []model.Event) (*Tally, error) {
	tally := NewTally()
	for i := range events {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("aggregation cancelled at event %d: %w", i, err)
		}
		a.consume(tally, &events[i])
	}
	a.logRun(ctx, tally, 1)
	return tally, nil
}

func (a *Aggregator) runSharded(ctx context.Context, events []model.Event, shards int) (*Tally, error) {
	parts := make([]*Tally, shards)
	chunk := (len(events) + shards - 1) / shards

	g, gctx := errgroup.WithContext(ctx)
	for s := 0; s < shards; s++ {
		lo := s * chunk
		hi := lo + chunk
		if hi > len(events) {
			hi = len(events)
		}
		g.Go(func() error {
			part := NewTally()
			for i := lo; i < hi; i++ {
				if err := gctx.Err(); err != nil {
					return fmt.Errorf("aggregation shard cancelled: %w", err)
				}
				a.consume(part, &events[i])
			}
			parts[s] = part
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	tally := NewTally()
	for _, part := range parts {
		tally.merge(part)
	}
	a.logRun(ctx, tally, shards)
	return tally, nil
}

// consume applies one event to the tally: resolve each raw token,
// screen through the roster, dedupe within the event, then count the
// event once per member and once per unordered member pair. An event
// with k members contributes to all k*(k-1)/2 pairs.
func (a *Aggregator) consume(tally *Tally, ev *model.Event) {
	metrics.RecordEventScanned()

	var members []string
	seen := make(map[string]struct{}, len(ev.Agents))
	for _, raw := range ev.Agents {
		name, hit := a.resolver.Lookup(raw)
		if hit {
			metrics.RecordAliasHit()
		}
		if !a.roster.Eligible(name) {
			metrics.RecordTokenExcluded()
			continue
		}
		metrics.RecordTokenResolved()
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		members = append(members, name)
	}

	if len(members) == 0 {
		tally.SkippedEvents++
		metrics.RecordEventSkipped()
		return
	}

	tally.ContributingEvents++
	metrics.RecordEventContributing()
	if ev.Day > tally.MaxDay {
		tally.MaxDay = ev.Day
	}
	for _, name := range members {
		tally.Agents[name]++
	}
	for i := 0; i < len(members); i++ {
		for j := i + 1; j < len(members); j++ {
			tally.Pairs[NewPair(members[i], members[j])]++
		}
	}
}

func (a *Aggregator) logRun(ctx context.Context, tally *Tally, shards int) {
	a.log.Debug(ctx, "aggregation complete",
		logger.Int("contributing_events", tally.ContributingEvents),
		logger.Int("skipped_events", tally.SkippedEvents),
		logger.Int("agents", len(tally.Agents)),
		logger.Int("pairs", len(tally.Pairs)),
		logger.Int("shards", shards),
	)
}
