package usecase

import (
	"context"
	"log/slog"
	"time"

	"TrendDigest/internal/domain"
	"TrendDigest/internal/ports"
)

const (
	platformID        = "custom_analysis"
	platformName      = "Custom Analysis"
	publishType       = "daily trend analysis"
	timeDisplayLayout = "2006-01-02 15:04"
)

// Projector turns the cached analysis record into a display-ready payload.
// Pure function of persisted state; performs no external calls.
type Projector struct {
	gate   ports.Gate
	now    func() time.Time
	logger *slog.Logger
}

// NewProjector wires the cache read side and a clock.
func NewProjector(gate ports.Gate, now func() time.Time, log *slog.Logger) *Projector {
	if now == nil {
		now = time.Now
	}
	return &Projector{gate: gate, now: now, logger: log}
}

// Project builds the payload from the current cache record, or nil when no
// usable analysis exists. The payload always carries exactly one platform
// with one rank-1 title; it is rebuilt on every publish and never persisted.
func (p *Projector) Project() *domain.DisplayPayload {
	record, err := p.gate.Load()
	if err != nil {
		p.warn("analysis cache unreadable", "error", err)
		return nil
	}
	if record == nil || record.Result.Empty() {
		return nil
	}

	return &domain.DisplayPayload{
		Platforms: []domain.PlatformSection{
			{
				PlatformID:   platformID,
				PlatformName: platformName,
				Titles: []domain.DisplayTitle{
					{
						Title:       record.Result.Text(),
						TimeDisplay: p.now().Format(timeDisplayLayout),
						Rank:        1,
					},
				},
			},
		},
		RSSFeeds: []domain.RSSFeedSection{},
	}
}

func (p *Projector) warn(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Warn(msg, args...)
	}
}

// Publisher runs the daily cycle: analyze if needed, project the cached
// result, dispatch. Even when the gate skips the engine call, the cached
// projection is re-sent so downstream consumers get a delivery attempt on
// every run.
type Publisher struct {
	orchestrator *Orchestrator
	projector    *Projector
	dispatcher   ports.Dispatcher
	logger       *slog.Logger
}

// NewPublisher constructs the publication driver.
func NewPublisher(orch *Orchestrator, proj *Projector, dispatcher ports.Dispatcher, log *slog.Logger) *Publisher {
	return &Publisher{
		orchestrator: orch,
		projector:    proj,
		dispatcher:   dispatcher,
		logger:       log,
	}
}

// Publish reports true iff a dispatch was attempted. Analysis failures are
// logged and never block the projection path; per-channel delivery outcomes
// are the dispatcher's concern.
func (p *Publisher) Publish(ctx context.Context) bool {
	if _, err := p.orchestrator.RunIfNeeded(ctx); err != nil {
		p.logError("analysis failed", "error", err)
	}

	payload := p.projector.Project()
	if payload == nil {
		p.logInfo("no analysis available, nothing to publish")
		return false
	}

	results := p.dispatcher.DispatchAll(ctx, domain.EmptyReportEnvelope(), publishType, reportMode, payload)

	failed := 0
	for _, err := range results {
		if err != nil {
			failed++
		}
	}
	p.logInfo("dispatch finished", "channels", len(results), "failed", failed)

	return true
}

func (p *Publisher) logInfo(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Info(msg, args...)
	}
}

func (p *Publisher) logError(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Error(msg, args...)
	}
}
