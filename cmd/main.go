package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	service "github.com/ai-village-agents/collabgraph/internal/app"
	"github.com/ai-village-agents/collabgraph/internal/config"
	"github.com/ai-village-agents/collabgraph/pkg/logger"
	"github.com/ai-village-agents/collabgraph/pkg/metrics"

	"github.com/joho/godotenv"
)

// Metrics server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 5 * time.Second
)

func main() {
	var (
		eventsPath = flag.String("events", "", "Event log path (overrides configuration)")
		outputPath = flag.String("output", "", "Graph document path (overrides configuration)")
		generated  = flag.String("generated", "", "Generated date stamp for document metadata (default: today)")
	)
	flag.Parse()

	// Local overrides land in the environment before configuration loads
	_ = godotenv.Load()

	// Initialize logging
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	loggerInstance := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		loggerInstance.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	// Flags override file/env configuration
	if *eventsPath != "" {
		cfg.EventsPath = *eventsPath
	}
	if *outputPath != "" {
		cfg.OutputPath = *outputPath
	}
	stamp := *generated
	if stamp == "" {
		stamp = time.Now().Format("2006-01-02")
	}

	// Optional metrics listener so long runs can be watched
	var srv *http.Server
	if cfg.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler())
		mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
		})
		srv = &http.Server{
			Addr:              cfg.MetricsAddr,
			Handler:           mux,
			ReadTimeout:       readTimeout,
			WriteTimeout:      writeTimeout,
			IdleTimeout:       idleTimeout,
			ReadHeaderTimeout: readHeaderTimeout,
		}
		go func() {
			loggerInstance.Info(ctx, "serving metrics", logger.String("addr", cfg.MetricsAddr))
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				loggerInstance.Error(ctx, "metrics server failed", logger.Error(err))
			}
		}()
	}

	// Create the pipeline service with configuration options
	svc := service.New(
		service.WithLogger(loggerInstance),
		service.WithShardCount(cfg.ShardCount),
		service.WithAliases(cfg.Aliases),
		service.WithAgents(cfg.Agents),
		service.WithExclusions(cfg.Excluded...),
		service.WithTitle(cfg.Graph.Title),
		service.WithDescription(cfg.Graph.Description),
		service.WithSource(cfg.Graph.Source),
		service.WithGeneratedBy(cfg.Graph.GeneratedBy),
		service.WithNormalization(cfg.Graph.Normalization),
	)

	summary, err := svc.Generate(ctx, cfg.EventsPath, cfg.OutputPath, stamp)
	if err != nil {
		os.Stderr.WriteString("generation failed: " + err.Error() + "\n")
		os.Exit(1)
	}

	if srv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			loggerInstance.Error(ctx, "metrics server shutdown failed", logger.Error(err))
		}
	}

	fmt.Printf("wrote %s: %d agents, %d links, %d collaborations from %d events over %d days\n",
		summary.Output, summary.Agents, summary.Pairs, summary.Collaborations, summary.Events, summary.TotalDays)
}
