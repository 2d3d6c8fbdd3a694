package llm

import (
	"fmt"

	"TrendDigest/internal/config"
	"TrendDigest/internal/ports"
)

// NewEngine selects a provider implementation from configuration.
func NewEngine(cfg config.AIConfig) (ports.AnalysisEngine, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("ai engine: api key is not configured")
	}

	switch cfg.Provider {
	case "", "openai":
		return newOpenAIEngine(cfg), nil
	case "claude":
		return newClaudeEngine(cfg), nil
	default:
		return nil, fmt.Errorf("unknown ai provider %q (valid: openai, claude)", cfg.Provider)
	}
}
