package ai

import (
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/johnquangdev/meeting-minutes/pkg/config"
)

func TestNewTextGenerator(t *testing.T) {
	tests := []struct {
		name     string
		llm      config.LLMConfig
		wantNil  bool
		provider string
	}{
		{name: "openai without key", llm: config.LLMConfig{Provider: config.ProviderOpenAI}, wantNil: true},
		{name: "openai", llm: config.LLMConfig{Provider: config.ProviderOpenAI, OpenAIAPIKey: "k"}, provider: "openai"},
		{name: "groq", llm: config.LLMConfig{Provider: config.ProviderGroq, GroqAPIKey: "k"}, provider: "groq"},
		{name: "anthropic", llm: config.LLMConfig{Provider: config.ProviderAnthropic, AnthropicAPIKey: "k"}, provider: "anthropic"},
		{name: "local needs no key", llm: config.LLMConfig{Provider: config.ProviderLocal}, provider: "local"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{LLM: tt.llm, Pipeline: config.PipelineConfig{PrivacyMode: true}}
			gen := NewTextGenerator(cfg, zaptest.NewLogger(t))
			if tt.wantNil {
				if gen != nil {
					t.Fatalf("expected nil generator, got %T", gen)
				}
				return
			}
			if gen == nil {
				t.Fatalf("expected generator")
			}
			if gen.Provider() != tt.provider {
				t.Fatalf("expected provider %s, got %s", tt.provider, gen.Provider())
			}
		})
	}
}
