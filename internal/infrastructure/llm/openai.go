package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"TrendDigest/internal/config"
	"TrendDigest/internal/domain"
	"TrendDigest/internal/ports"
)

type openAIEngine struct {
	client *openai.Client
	model  openai.ChatModel
}

var _ ports.AnalysisEngine = (*openAIEngine)(nil)

func newOpenAIEngine(cfg config.AIConfig) *openAIEngine {
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	client := openai.NewClient(opts...)

	model := openai.ChatModelGPT4oMini
	if cfg.Model != "" {
		model = openai.ChatModel(cfg.Model)
	}

	return &openAIEngine{client: &client, model: model}
}

// Analyze issues one chat completion with the request's system and user
// prompts. An empty completion is an engine-reported failure, not an error.
func (e *openAIEngine) Analyze(ctx context.Context, req domain.AnalysisRequest) (domain.AnalysisResult, error) {
	resp, err := e.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: e.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(req.SystemPrompt),
			openai.UserMessage(req.UserPrompt),
		},
	})
	if err != nil {
		return domain.AnalysisResult{Err: err.Error()}, fmt.Errorf("openai API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return domain.AnalysisResult{Err: "no response from openai"}, nil
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return domain.AnalysisResult{Err: "empty completion from openai"}, nil
	}

	return domain.AnalysisResult{Success: true, CoreTrends: content}, nil
}
