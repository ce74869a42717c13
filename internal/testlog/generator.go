package testlog

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"sync/atomic"

	"github.com/ai-village-agents/collabgraph/internal/domain/model"
	"github.com/ai-village-agents/collabgraph/internal/domain/roster"
	"github.com/ai-village-agents/collabgraph/pkg/logger"
	"github.com/google/uuid"
)

// Token style roll outcomes. Rolls below styleLowercase emit the
// canonical name untouched, which keeps exact names the most common
// participant shape, the way real logs look.
const (
	tokenStyleDivisor = 10
	styleLowercase    = 4
	styleHyphenated   = 5
	styleShorthand    = 6
	styleMailbox      = 7
	styleExcluded     = 8
	styleUnknown      = 9
)

// Odds denominators for event shape rolls.
const (
	singleParticipantOdds = 10 // 1-in-10 events have a lone participant
	duplicateTokenOdds    = 6  // 1-in-6 events repeat a participant token
)

const mailboxDomain = "@agentvillage.org"

// Shorthands that the resolver's built-in alias table understands.
var shorthands = map[string]string{
	"Claude Opus 4.5":   "opus 4.5",
	"Claude Opus 4.1":   "opus 4.1",
	"Claude Sonnet 4.5": "sonnet 4.5",
	"Claude Haiku 4.5":  "haiku 4.5",
	"Claude 3.7 Sonnet": "claude 3.7",
	"Gemini 2.5 Pro":    "gemini pro 2.5",
	"DeepSeek-R1":       "deepseek r1",
	"Qwen3 Max":         "qwen 3 max",
}

// Labels the roster always filters out.
var excludedLabels = []string{
	"Human Observer",
	"Human Volunteer",
	"Adam",
	"all agents",
	"organizers",
	"Everyone",
}

// Participants no table knows about; they must pass through untouched
// and fall off the graph.
var unknownGuests = []string{
	"Mystery Guest",
	"Village Cat",
	"Anonymous Visitor",
	"Live Stream Chat",
}

// tokenCounters tracks what the generator emitted, updated atomically
// by the generator workers.
type tokenCounters struct {
	emitted   int64
	alias     int64
	mailbox   int64
	excluded  int64
	unknown   int64
	duplicate int64
}

// randInt returns a random int in [0, n) using crypto/rand.
func randInt(n int) int {
	if n <= 1 {
		return 0
	}
	v, _ := rand.Int(rand.Reader, big.NewInt(int64(n)))
	return int(v.Int64())
}

// generateEvents creates the configured number of events with unique ids.
func generateEvents(ctx context.Context, config *Config, stats *Stats) ([]model.Event, error) {
	logger.Get().Info(ctx, "generating synthetic events",
		logger.Int("numEvents", config.NumEvents),
		logger.Int("days", config.Days))

	names := roster.New().Names()
	events := make([]model.Event, config.NumEvents)

	// Pre-allocate event IDs to keep them unique
	eventIDs := make([]string, config.NumEvents)
	for i := 0; i < config.NumEvents; i++ {
		eventIDs[i] = uuid.New().String()
	}

	type eventResult struct {
		index int
		event model.Event
		err   error
	}

	resultChan := make(chan eventResult, config.NumEvents)
	counters := &tokenCounters{}

	// Use worker pool for event generation
	workerCount := min(config.Workers, config.NumEvents)
	if workerCount < 1 {
		workerCount = 1
	}
	eventsPerWorker := config.NumEvents / workerCount

	for worker := 0; worker < workerCount; worker++ {
		start := worker * eventsPerWorker
		end := start + eventsPerWorker
		if worker == workerCount-1 {
			end = config.NumEvents // Last worker gets remaining events
		}

		go func(start, end int) {
			for i := start; i < end; i++ {
				select {
				case <-ctx.Done():
					resultChan <- eventResult{index: i, err: ctx.Err()}
					return
				default:
					event := generateSingleEvent(config, names, counters, eventIDs[i])
					resultChan <- eventResult{index: i, event: event}
				}
			}
		}(start, end)
	}

	// Collect results
	for i := 0; i < config.NumEvents; i++ {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("context cancelled during event generation: %w", ctx.Err())
		case result := <-resultChan:
			if result.err != nil {
				return nil, fmt.Errorf("failed to generate event %d: %w", result.index, result.err)
			}
			events[result.index] = result.event
		}
	}

	stats.EventsGenerated = len(events)
	stats.TokensEmitted = int(atomic.LoadInt64(&counters.emitted))
	stats.AliasTokens = int(atomic.LoadInt64(&counters.alias))
	stats.MailboxTokens = int(atomic.LoadInt64(&counters.mailbox))
	stats.ExcludedTokens = int(atomic.LoadInt64(&counters.excluded))
	stats.UnknownTokens = int(atomic.LoadInt64(&counters.unknown))
	stats.DuplicateTokens = int(atomic.LoadInt64(&counters.duplicate))

	logger.Get().Info(ctx, "generated events successfully", logger.Int("count", len(events)))
	return events, nil
}

// generateSingleEvent creates one event with a varied participant list.
func generateSingleEvent(config *Config, names []string, counters *tokenCounters, eventID string) model.Event {
	count := participantCount(config.MaxParticipants)
	agents := make([]string, 0, count+1)
	for i := 0; i < count; i++ {
		agents = append(agents, generateToken(names, counters))
	}

	// Occasionally repeat a token so within-event dedupe has work to do
	if len(agents) > 1 && randInt(duplicateTokenOdds) == 0 {
		agents = append(agents, agents[0])
		atomic.AddInt64(&counters.duplicate, 1)
		atomic.AddInt64(&counters.emitted, 1)
	}

	days := config.Days
	if days < 1 {
		days = 1
	}

	return model.Event{
		ID:     eventID,
		Day:    1 + randInt(days),
		Agents: agents,
	}
}

// generateToken emits one raw participant token in a randomly chosen
// style.
func generateToken(names []string, counters *tokenCounters) string {
	atomic.AddInt64(&counters.emitted, 1)
	name := names[randInt(len(names))]

	switch randInt(tokenStyleDivisor) {
	case styleLowercase:
		atomic.AddInt64(&counters.alias, 1)
		return strings.ToLower(name)
	case styleHyphenated:
		atomic.AddInt64(&counters.alias, 1)
		return strings.ReplaceAll(strings.ToLower(name), " ", "-")
	case styleShorthand:
		atomic.AddInt64(&counters.alias, 1)
		if short, ok := shorthands[name]; ok {
			return short
		}
		return strings.ToLower(name)
	case styleMailbox:
		atomic.AddInt64(&counters.mailbox, 1)
		local := strings.ReplaceAll(strings.ToLower(name), " ", "-")
		return local + mailboxDomain
	case styleExcluded:
		atomic.AddInt64(&counters.excluded, 1)
		return excludedLabels[randInt(len(excludedLabels))]
	case styleUnknown:
		atomic.AddInt64(&counters.unknown, 1)
		return unknownGuests[randInt(len(unknownGuests))]
	default:
		return name
	}
}

// participantCount picks how many raw tokens an event carries.
func participantCount(maxParticipants int) int {
	if maxParticipants < 2 {
		return 1
	}
	if randInt(singleParticipantOdds) == 0 {
		return 1
	}
	return 2 + randInt(maxParticipants-1)
}
