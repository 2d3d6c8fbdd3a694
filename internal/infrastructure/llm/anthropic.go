package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"TrendDigest/internal/config"
	"TrendDigest/internal/domain"
	"TrendDigest/internal/ports"
)

const claudeMaxTokens = 4096

type claudeEngine struct {
	client *anthropic.Client
	model  anthropic.Model
}

var _ ports.AnalysisEngine = (*claudeEngine)(nil)

func newClaudeEngine(cfg config.AIConfig) *claudeEngine {
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	client := anthropic.NewClient(opts...)

	model := anthropic.ModelClaude3_5HaikuLatest
	if cfg.Model != "" {
		model = anthropic.Model(cfg.Model)
	}

	return &claudeEngine{client: &client, model: model}
}

func (e *claudeEngine) Analyze(ctx context.Context, req domain.AnalysisRequest) (domain.AnalysisResult, error) {
	resp, err := e.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     e.model,
		MaxTokens: claudeMaxTokens,
		System: []anthropic.TextBlockParam{
			{Text: req.SystemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.UserPrompt)),
		},
	})
	if err != nil {
		return domain.AnalysisResult{Err: err.Error()}, fmt.Errorf("anthropic API error: %w", err)
	}

	if len(resp.Content) == 0 {
		return domain.AnalysisResult{Err: "no response from anthropic"}, nil
	}

	content := strings.TrimSpace(resp.Content[0].Text)
	if content == "" {
		return domain.AnalysisResult{Err: "empty completion from anthropic"}, nil
	}

	return domain.AnalysisResult{Success: true, CoreTrends: content}, nil
}
