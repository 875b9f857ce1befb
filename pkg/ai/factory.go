package ai

import (
	"context"

	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-minutes/pkg/config"
)

// TextGenerator completes a user prompt under a fixed system contract
type TextGenerator interface {
	Complete(ctx context.Context, systemContract, userText string) (string, error)
	Provider() string
}

// NewTextGenerator builds the generator selected by LLM_PROVIDER.
// It returns nil when the selected cloud provider has no API key so that
// callers degrade to empty minutes instead of failing at startup.
func NewTextGenerator(cfg *config.Config, logger *zap.Logger) TextGenerator {
	if logger == nil {
		logger = zap.NewNop()
	}
	llm := cfg.LLM

	if cfg.IsCloudLLM() && cfg.Pipeline.PrivacyMode {
		logger.Warn("⚠️ Privacy mode is on but a cloud LLM is configured, transcripts will leave this host",
			zap.String("provider", llm.Provider),
		)
	}

	switch llm.Provider {
	case config.ProviderAnthropic:
		if llm.AnthropicAPIKey == "" {
			logger.Warn("⚠️ ANTHROPIC_API_KEY not set, minutes generation disabled")
			return nil
		}
		return NewAnthropicClient(AnthropicOptions{
			APIKey:      llm.AnthropicAPIKey,
			BaseURL:     llm.AnthropicBaseURL,
			Model:       llm.Model,
			Temperature: llm.Temperature,
			MaxTokens:   llm.MaxTokens,
			Timeout:     llm.Timeout,
		})
	case config.ProviderGroq:
		if llm.GroqAPIKey == "" {
			logger.Warn("⚠️ GROQ_API_KEY not set, minutes generation disabled")
			return nil
		}
		return NewChatClient(ChatOptions{
			Provider:    config.ProviderGroq,
			APIKey:      llm.GroqAPIKey,
			BaseURL:     llm.GroqBaseURL,
			Model:       llm.Model,
			Temperature: llm.Temperature,
			MaxTokens:   llm.MaxTokens,
			Timeout:     llm.Timeout,
			JSONMode:    true,
		})
	case config.ProviderLocal:
		return NewChatClient(ChatOptions{
			Provider:    config.ProviderLocal,
			BaseURL:     llm.LocalBaseURL,
			Model:       llm.Model,
			Temperature: llm.Temperature,
			MaxTokens:   llm.MaxTokens,
			Timeout:     llm.Timeout,
		})
	default:
		if llm.OpenAIAPIKey == "" {
			logger.Warn("⚠️ OPENAI_API_KEY not set, minutes generation disabled")
			return nil
		}
		return NewChatClient(ChatOptions{
			Provider:    config.ProviderOpenAI,
			APIKey:      llm.OpenAIAPIKey,
			BaseURL:     llm.OpenAIBaseURL,
			Model:       llm.Model,
			Temperature: llm.Temperature,
			Timeout:     llm.Timeout,
			JSONMode:    true,
		})
	}
}
