package app

import (
	"context"
	"log/slog"
	"time"

	"TrendDigest/internal/config"
	"TrendDigest/internal/infrastructure/llm"
	"TrendDigest/internal/infrastructure/notify"
	"TrendDigest/internal/infrastructure/storage"
	"TrendDigest/internal/logging"
	"TrendDigest/internal/ports"
	"TrendDigest/internal/usecase"
)

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg       config.Config
	publisher *usecase.Publisher
	logger    *slog.Logger
}

// New builds a runnable application instance. A misconfigured engine is not
// fatal here: the publisher can still re-deliver a cached projection, and
// the orchestrator reports the missing engine when a fresh analysis is due.
func New(cfg config.Config, baseLogger *slog.Logger) *Application {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	reader := storage.NewSnapshotReader(baseLogger.With("component", "snapshot.reader"))
	aggregator := usecase.NewAggregator(reader, cfg.Storage, baseLogger.With("component", "aggregator"))
	cache := storage.NewAnalysisCache(cfg.Storage.AnalysisPath(), time.Now, baseLogger.With("component", "analysis.cache"))

	var engine ports.AnalysisEngine
	if eng, err := llm.NewEngine(cfg.AI); err != nil {
		baseLogger.Warn("analysis engine unavailable", "error", err)
	} else {
		engine = eng
	}

	orchestrator := usecase.NewOrchestrator(usecase.OrchestratorDeps{
		Source:     aggregator,
		Gate:       cache,
		Engine:     engine,
		PromptFile: cfg.AI.PromptFile,
		Logger:     baseLogger.With("component", "orchestrator"),
	})

	projector := usecase.NewProjector(cache, time.Now, baseLogger.With("component", "projector"))

	dispatcher := notify.NewDispatcher(
		baseLogger.With("component", "dispatcher"),
		notify.ChannelsFromConfig(cfg.Notifications)...,
	)

	publisher := usecase.NewPublisher(orchestrator, projector, dispatcher, baseLogger.With("component", "publisher"))

	return &Application{cfg: cfg, publisher: publisher, logger: baseLogger}
}

// Run executes a single publish cycle and reports whether a dispatch was
// attempted.
func (a *Application) Run(ctx context.Context) bool {
	return a.publisher.Publish(ctx)
}
