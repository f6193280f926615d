package config

import "time"

const (
	defaultPort           = "8080"
	defaultCORSOrigin     = "http://localhost:3000"
	defaultEnvironment    = "development"
	defaultEmbedProvider  = "local"
	defaultLocalModel     = "sentence-transformers/all-MiniLM-L6-v2"
	defaultOpenAIEmbed    = "text-embedding-3-small"
	defaultDimensions     = 384
	defaultLocalMaxChars  = 2000
	defaultOpenAIMaxChars = 24000
	defaultModelDir       = "./models"
	defaultGenProvider    = "openai"
	defaultOpenAIGenModel = "gpt-4"
	defaultAnthropicModel = "claude-sonnet-4-20250514"
	defaultMaxTokens      = 300
	defaultTemperature    = 0.7
	defaultMatchThreshold = 0.3
	defaultSearchLimit    = 5
	defaultMaxSearchLimit = 20
	defaultRequestTimeout = 30 * time.Second
	defaultContextChars   = 1000
	defaultBatchSize      = 32
)

func defaults() *Config {
	return &Config{
		Environment: defaultEnvironment,
		Port:        defaultPort,
		CORSOrigins: []string{defaultCORSOrigin},
		StoreDriver: StoreDriverPostgres,
		Embedder: EmbedderConfig{
			Provider:   defaultEmbedProvider,
			Dimensions: defaultDimensions,
			ModelDir:   defaultModelDir,
		},
		Generator: GeneratorConfig{
			Provider:    defaultGenProvider,
			MaxTokens:   defaultMaxTokens,
			Temperature: defaultTemperature,
		},
		Search: SearchConfig{
			MatchThreshold: defaultMatchThreshold,
			DefaultLimit:   defaultSearchLimit,
			MaxLimit:       defaultMaxSearchLimit,
			RequestTimeout: defaultRequestTimeout,
			ContextChars:   defaultContextChars,
			FailureMode:    FailureModeFail,
		},
	}
}

// fills provider-dependent values that were left empty
func applyProviderDefaults(cfg *Config) {
	if cfg.Embedder.Model == "" {
		if cfg.Embedder.Provider == "openai" {
			cfg.Embedder.Model = defaultOpenAIEmbed
		} else {
			cfg.Embedder.Model = defaultLocalModel
		}
	}

	if cfg.Embedder.MaxInputChars == 0 {
		if cfg.Embedder.Provider == "openai" {
			cfg.Embedder.MaxInputChars = defaultOpenAIMaxChars
		} else {
			cfg.Embedder.MaxInputChars = defaultLocalMaxChars
		}
	}

	if cfg.Generator.Model == "" {
		if cfg.Generator.Provider == "anthropic" {
			cfg.Generator.Model = defaultAnthropicModel
		} else {
			cfg.Generator.Model = defaultOpenAIGenModel
		}
	}
}
