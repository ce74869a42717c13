package testlog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	service "github.com/ai-village-agents/collabgraph/internal/app"
	"github.com/ai-village-agents/collabgraph/internal/domain/model"
	"github.com/ai-village-agents/collabgraph/internal/domain/roster"
	"github.com/ai-village-agents/collabgraph/internal/validate"
	"github.com/ai-village-agents/collabgraph/pkg/logger"
)

// File permission constants.
const (
	directoryPermission = 0750
)

// Junk records the event log reader must skip without failing the run.
var junkRecords = []string{
	`"scheduled maintenance window"`,
	`{"id": 17, "day": "twelve", "agents": ["GPT-5"]}`,
	`{"agents": "everyone"}`,
	`[3, 2, 1]`,
}

// Run executes the complete synthetic log test: generate events, write
// them as an event log, run the pipeline over it and validate what
// comes out.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{
		StartTime: time.Now(),
	}

	logger.Get().Info(ctx, "starting collabgraph log test",
		logger.Int("events", config.NumEvents),
		logger.Int("days", config.Days),
		logger.Int("maxParticipants", config.MaxParticipants),
		logger.Int("malformed", config.Malformed),
		logger.Int("shards", config.Shards),
		logger.Int("workers", config.Workers),
		logger.Bool("verbose", config.Verbose))

	// Step 1: Generate events
	events, err := generateEvents(ctx, config, stats)
	if err != nil {
		return fmt.Errorf("event generation failed: %w", err)
	}

	// Step 2: Write the event log
	logPath, err := writeLogFile(ctx, config, events, stats)
	if err != nil {
		return fmt.Errorf("event log write failed: %w", err)
	}

	// Step 3: Run the pipeline over the generated log
	graphPath := config.GraphFile
	if graphPath == "" {
		timestamp := time.Now().Format("20060102_150405")
		graphPath = "test_graph_" + timestamp + ".json"
	}

	svc := service.New(service.WithShardCount(config.Shards))
	summary, err := svc.Generate(ctx, logPath, graphPath, time.Now().Format("2006-01-02"))
	if err != nil {
		return fmt.Errorf("graph generation failed: %w", err)
	}

	// Step 4: Validate the published document
	report, err := svc.Validate(ctx, graphPath)
	if err != nil {
		return fmt.Errorf("graph validation failed: %w", err)
	}

	// Step 5: Verify the run adds up
	if err := verifyOutcome(ctx, stats, summary, report); err != nil {
		return fmt.Errorf("result verification failed: %w", err)
	}

	// Final statistics
	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	displayFinalStats(stats, summary)

	logger.Get().Info(ctx, "test completed successfully")
	return nil
}

// writeLogFile writes the generated events as an event log file,
// sprinkling in the configured number of junk records.
func writeLogFile(ctx context.Context, config *Config, events []model.Event, stats *Stats) (string, error) {
	if len(events) == 0 {
		return "", fmt.Errorf("no events to write")
	}

	// Determine output filename
	filename := config.OutputFile
	if filename == "" {
		timestamp := time.Now().Format("20060102_150405")
		filename = "test_events_" + timestamp + ".json"
	}

	// Ensure the directory exists
	dir := filepath.Dir(filename)
	if dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return "", fmt.Errorf("failed to create directory: %w", err)
		}
	}

	// Marshal every event, then splice junk records in at random spots
	records := make([]string, 0, len(events)+config.Malformed)
	for i := range events {
		data, err := json.Marshal(&events[i])
		if err != nil {
			return "", fmt.Errorf("failed to marshal event %d: %w", i, err)
		}
		records = append(records, string(data))
	}
	for i := 0; i < config.Malformed; i++ {
		junk := junkRecords[i%len(junkRecords)]
		pos := randInt(len(records) + 1)
		records = append(records, "")
		copy(records[pos+1:], records[pos:])
		records[pos] = junk
		stats.MalformedJunk++
	}

	file, err := os.Create(filename)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.Get().Error(context.Background(), "failed to close file", logger.Error(err))
		}
	}()

	days := config.Days
	if days < 1 {
		days = 1
	}
	if _, err := fmt.Fprintf(file, "{\n  \"metadata\": {\"total_events\": %d, \"last_updated_day\": %d},\n  \"events\": [\n", len(records), days); err != nil {
		return "", fmt.Errorf("failed to write log header: %w", err)
	}

	for i, record := range records {
		if _, err := file.WriteString("    " + record); err != nil {
			return "", fmt.Errorf("failed to write record %d: %w", i, err)
		}
		// Add comma except for last record
		if i < len(records)-1 {
			if _, err := file.WriteString(","); err != nil {
				return "", fmt.Errorf("failed to write comma: %w", err)
			}
		}
		_, _ = file.WriteString("\n")
	}

	if _, err := file.WriteString("  ]\n}\n"); err != nil {
		return "", fmt.Errorf("failed to write closing bracket: %w", err)
	}

	logger.Get().Info(ctx, "event log saved to file",
		logger.String("filename", filename),
		logger.Int("records", len(records)),
		logger.Int("junk", stats.MalformedJunk))
	return filename, nil
}

// verifyOutcome checks that the pipeline accounted for every generated
// event and produced a valid document.
func verifyOutcome(ctx context.Context, stats *Stats, summary *service.Summary, report validate.Report) error {
	logger.Get().Info(ctx, "verifying results")

	if !report.OK() {
		for _, v := range report {
			logger.Get().Error(ctx, "document violation", logger.String("message", v.String()))
		}
		return fmt.Errorf("document has %d validation violations", len(report))
	}

	// Junk records never reach the aggregator, so contributing plus
	// skipped must cover exactly the generated events.
	accounted := summary.Events + summary.SkippedEvents
	if accounted != stats.EventsGenerated {
		return fmt.Errorf("pipeline accounted for %d events, generated %d", accounted, stats.EventsGenerated)
	}

	rosterSize := len(roster.New().Names())
	if summary.Agents > rosterSize {
		return fmt.Errorf("graph has %d agents but the roster only has %d", summary.Agents, rosterSize)
	}

	logger.Get().Info(ctx, "result verification completed")
	return nil
}

// displayFinalStats prints the final test statistics.
func displayFinalStats(stats *Stats, summary *service.Summary) {
	var eventsPerSecond float64
	if stats.Duration > 0 {
		eventsPerSecond = float64(stats.EventsGenerated) / stats.Duration.Seconds()
	}

	logger.Get().Info(context.Background(), "final statistics",
		logger.Int("eventsGenerated", stats.EventsGenerated),
		logger.Int("tokensEmitted", stats.TokensEmitted),
		logger.Int("aliasTokens", stats.AliasTokens),
		logger.Int("mailboxTokens", stats.MailboxTokens),
		logger.Int("excludedTokens", stats.ExcludedTokens),
		logger.Int("unknownTokens", stats.UnknownTokens),
		logger.Int("duplicateTokens", stats.DuplicateTokens),
		logger.Int("malformedJunk", stats.MalformedJunk),
		logger.Int("contributingEvents", summary.Events),
		logger.Int("skippedEvents", summary.SkippedEvents),
		logger.Int("agents", summary.Agents),
		logger.Int("pairs", summary.Pairs),
		logger.Int("collaborations", summary.Collaborations),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("eventsPerSecond", eventsPerSecond))
}
