package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"TrendDigest/internal/domain"
	"TrendDigest/internal/ports"
)

const (
	// maxAnalysisLines bounds the corpus handed to the engine. Truncation
	// always takes a prefix so the analysis input is deterministic.
	maxAnalysisLines = 100

	reportMode     = "daily"
	reportType     = "custom_analysis"
	reportPlatform = "system"
)

const defaultSystemPrompt = `You are a professional analyst. Analyze the provided trending news data.

Focus on:
1. International affairs
2. Major domestic events
3. High-impact social news

Output the analysis directly; no particular format is required.`

// OrchestratorDeps wires the collaborators of the analysis orchestration.
type OrchestratorDeps struct {
	Source     ports.SnapshotSource
	Gate       ports.Gate
	Engine     ports.AnalysisEngine
	PromptFile string
	Now        func() time.Time
	Logger     *slog.Logger
}

// Orchestrator guards the single costly engine call of the daily cycle. The
// gate, the aggregator, and the commit ordering exist solely to guarantee
// that call happens at most once per calendar day no matter how often the
// job is triggered.
type Orchestrator struct {
	source     ports.SnapshotSource
	gate       ports.Gate
	engine     ports.AnalysisEngine
	promptFile string
	now        func() time.Time
	logger     *slog.Logger
}

// NewOrchestrator constructs the orchestration component.
func NewOrchestrator(deps OrchestratorDeps) *Orchestrator {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &Orchestrator{
		source:     deps.Source,
		gate:       deps.Gate,
		engine:     deps.Engine,
		promptFile: deps.PromptFile,
		now:        now,
		logger:     deps.Logger,
	}
}

// RunIfNeeded performs today's analysis unless it already ran or there is
// nothing to analyze; both no-op paths return (nil, nil). The cache commit
// happens strictly after a successful engine call, so a failed day retries
// on the next invocation rather than waiting for the next calendar day.
func (o *Orchestrator) RunIfNeeded(ctx context.Context) (*domain.AnalysisRecord, error) {
	if o.gate.HasRunToday() {
		o.debug("analysis already ran today")
		return nil, nil
	}

	corpus, err := o.source.CollectDaily(ctx, o.now())
	if err != nil {
		return nil, fmt.Errorf("collect daily corpus: %w", err)
	}
	if len(corpus) == 0 {
		o.info("no data to analyze today")
		return nil, nil
	}

	if o.engine == nil {
		return nil, fmt.Errorf("analysis engine is not configured")
	}

	text := corpus.Truncate(maxAnalysisLines).Render()
	o.info("running analysis", "lines", len(corpus), "analyzed", min(len(corpus), maxAnalysisLines))

	result, err := o.engine.Analyze(ctx, domain.AnalysisRequest{
		SystemPrompt: o.systemPrompt(),
		UserPrompt:   buildUserPrompt(text),
		ReportMode:   reportMode,
		ReportType:   reportType,
		Platforms:    []string{reportPlatform},
		Stats: []domain.TopicStat{
			{
				Word: reportType,
				Titles: []domain.StatTitle{
					{Title: text, SourceName: reportPlatform},
				},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("analysis engine: %w", err)
	}
	if !result.Success {
		return nil, fmt.Errorf("analysis engine: %s", result.Err)
	}

	record, err := o.gate.Commit(result.CoreTrends)
	if err != nil {
		return nil, fmt.Errorf("commit analysis: %w", err)
	}

	o.info("analysis committed", "at", record.LastAnalysis)
	return record, nil
}

// systemPrompt prefers the configured prompt file over the built-in default.
func (o *Orchestrator) systemPrompt() string {
	if o.promptFile == "" {
		return defaultSystemPrompt
	}

	raw, err := os.ReadFile(o.promptFile)
	if err != nil {
		o.debug("prompt file unavailable, using default", "path", o.promptFile, "error", err)
		return defaultSystemPrompt
	}

	prompt := strings.TrimSpace(string(raw))
	if prompt == "" {
		return defaultSystemPrompt
	}

	o.debug("using custom system prompt", "path", o.promptFile)
	return prompt
}

func buildUserPrompt(corpusText string) string {
	return fmt.Sprintf("Analyze the following trending news data:\n\n%s\n\nOutput the analysis directly.", corpusText)
}

func (o *Orchestrator) info(msg string, args ...any) {
	if o.logger != nil {
		o.logger.Info(msg, args...)
	}
}

func (o *Orchestrator) debug(msg string, args ...any) {
	if o.logger != nil {
		o.logger.Debug(msg, args...)
	}
}
