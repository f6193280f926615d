package llm

import (
	"fmt"

	"codeberg.org/essayinsights/server/internal/config"
)

// builds the configured embedder; the local provider loads its model eagerly
func NewEmbedder(cfg *config.Config) (Embedder, error) {
	switch Provider(cfg.Embedder.Provider) {
	case ProviderLocal, "":
		return NewLocalEmbedder(LocalConfig{
			Model:         cfg.Embedder.Model,
			ModelDir:      cfg.Embedder.ModelDir,
			Dimensions:    cfg.Embedder.Dimensions,
			MaxInputChars: cfg.Embedder.MaxInputChars,
		})
	case ProviderOpenAI:
		if cfg.OpenAIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required for the openai embedder")
		}

		return NewOpenAIEmbedder(OpenAIConfig{
			APIKey:        cfg.OpenAIKey,
			Model:         cfg.Embedder.Model,
			Dimensions:    cfg.Embedder.Dimensions,
			MaxInputChars: cfg.Embedder.MaxInputChars,
		}), nil
	default:
		return nil, fmt.Errorf("unsupported embedder provider: %s", cfg.Embedder.Provider)
	}
}

func NewGenerator(cfg *config.Config) (TextGenerator, error) {
	switch Provider(cfg.Generator.Provider) {
	case ProviderOpenAI, "":
		if cfg.OpenAIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required for the openai generator")
		}

		return NewOpenAIGenerator(OpenAIConfig{
			APIKey:      cfg.OpenAIKey,
			Model:       cfg.Generator.Model,
			MaxTokens:   cfg.Generator.MaxTokens,
			Temperature: cfg.Generator.Temperature,
		}), nil
	case ProviderAnthropic:
		if cfg.AnthropicKey == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY is required for the anthropic generator")
		}

		return NewAnthropicGenerator(AnthropicConfig{
			APIKey:      cfg.AnthropicKey,
			Model:       cfg.Generator.Model,
			MaxTokens:   cfg.Generator.MaxTokens,
			Temperature: cfg.Generator.Temperature,
		}), nil
	default:
		return nil, fmt.Errorf("unsupported generator provider: %s", cfg.Generator.Provider)
	}
}
