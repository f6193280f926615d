package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// loads configuration from .env, the optional YAML tuning file and the environment.
// missing credentials are returned as errors so the process fails before serving.
func LoadEnvironmentVariables() (*Config, error) {
	return load(true)
}

// like LoadEnvironmentVariables but for the backfill, which writes to postgres
// and never generates text
func LoadBackfillEnvironment() (*Config, error) {
	cfg, err := load(false)
	if err != nil {
		return nil, err
	}

	if cfg.SupabaseConnString == "" {
		return nil, fmt.Errorf("SUPABASE_CONNECTION_STRING environment variable is required")
	}

	return cfg, nil
}

func load(serving bool) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		_ = err // not an error - production environments may not have .env file
	}

	cfg := defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := loadFile(path, cfg); err != nil {
			return nil, err
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	applyProviderDefaults(cfg)

	if err := validate(cfg, serving); err != nil {
		return nil, err
	}

	return cfg, nil
}

func applyEnv(cfg *Config) error {
	setString(&cfg.Environment, "ENVIRONMENT")
	setString(&cfg.Port, "PORT")
	setString(&cfg.SupabaseConnString, "SUPABASE_CONNECTION_STRING")
	setString(&cfg.RedisURL, "REDIS_URL")
	setString(&cfg.OpenAIKey, "OPENAI_API_KEY")
	setString(&cfg.AnthropicKey, "ANTHROPIC_API_KEY")
	setString(&cfg.StoreDriver, "STORE_DRIVER")
	setString(&cfg.CorpusFile, "CORPUS_FILE")

	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		cfg.CORSOrigins = splitList(origins)
	}

	setString(&cfg.Embedder.Provider, "EMBEDDER_PROVIDER")
	setString(&cfg.Embedder.Model, "EMBEDDER_MODEL")
	setString(&cfg.Embedder.ModelDir, "MODEL_DIR")
	setString(&cfg.Generator.Provider, "GENERATOR_PROVIDER")
	setString(&cfg.Generator.Model, "GENERATOR_MODEL")
	setString(&cfg.Search.FailureMode, "SYNTHESIS_FAILURE_MODE")

	ints := []struct {
		key string
		dst *int
	}{
		{"EMBEDDING_DIMENSIONS", &cfg.Embedder.Dimensions},
		{"EMBEDDER_MAX_INPUT_CHARS", &cfg.Embedder.MaxInputChars},
		{"GENERATOR_MAX_TOKENS", &cfg.Generator.MaxTokens},
		{"SEARCH_DEFAULT_LIMIT", &cfg.Search.DefaultLimit},
		{"SEARCH_MAX_LIMIT", &cfg.Search.MaxLimit},
		{"SYNTHESIS_CONTEXT_CHARS", &cfg.Search.ContextChars},
	}

	for _, i := range ints {
		if err := setInt(i.dst, i.key); err != nil {
			return err
		}
	}

	if v := os.Getenv("GENERATOR_TEMPERATURE"); v != "" {
		f, err := strconv.ParseFloat(v, 32)
		if err != nil {
			return fmt.Errorf("GENERATOR_TEMPERATURE must be a number: %w", err)
		}
		cfg.Generator.Temperature = float32(f)
	}

	if v := os.Getenv("MATCH_THRESHOLD"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("MATCH_THRESHOLD must be a number: %w", err)
		}
		cfg.Search.MatchThreshold = f
	}

	if v := os.Getenv("REQUEST_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("REQUEST_TIMEOUT must be a duration: %w", err)
		}
		cfg.Search.RequestTimeout = d
	}

	return nil
}

func validate(cfg *Config, serving bool) error {
	switch cfg.StoreDriver {
	case StoreDriverPostgres:
		if serving && cfg.SupabaseConnString == "" {
			return fmt.Errorf("SUPABASE_CONNECTION_STRING environment variable is required")
		}
	case StoreDriverMemory:
		if cfg.CorpusFile == "" {
			return fmt.Errorf("CORPUS_FILE is required when STORE_DRIVER=memory")
		}
	default:
		return fmt.Errorf("unsupported store driver: %s", cfg.StoreDriver)
	}

	switch cfg.Embedder.Provider {
	case "local":
	case "openai":
		if cfg.OpenAIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY environment variable is required")
		}
	default:
		return fmt.Errorf("unsupported embedder provider: %s", cfg.Embedder.Provider)
	}

	switch cfg.Generator.Provider {
	case "openai":
		if serving && cfg.OpenAIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY environment variable is required")
		}
	case "anthropic":
		if serving && cfg.AnthropicKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY environment variable is required")
		}
	default:
		return fmt.Errorf("unsupported generator provider: %s", cfg.Generator.Provider)
	}

	if cfg.Embedder.Dimensions <= 0 {
		return fmt.Errorf("EMBEDDING_DIMENSIONS must be positive")
	}

	if cfg.Search.MatchThreshold < -1 || cfg.Search.MatchThreshold > 1 {
		return fmt.Errorf("MATCH_THRESHOLD must be within [-1, 1]")
	}

	// the openai client omits a zero temperature
	if cfg.Generator.Temperature <= 0 || cfg.Generator.Temperature > 2 {
		return fmt.Errorf("GENERATOR_TEMPERATURE must be within (0, 2]")
	}

	if cfg.Search.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be positive")
	}

	if cfg.Search.DefaultLimit <= 0 || cfg.Search.MaxLimit < cfg.Search.DefaultLimit {
		return fmt.Errorf("search limits are inconsistent: default %d, max %d", cfg.Search.DefaultLimit, cfg.Search.MaxLimit)
	}

	if cfg.Search.FailureMode != FailureModeFail && cfg.Search.FailureMode != FailureModeDegrade {
		return fmt.Errorf("SYNTHESIS_FAILURE_MODE must be %q or %q", FailureModeFail, FailureModeDegrade)
	}

	return nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s must be an integer: %w", key, err)
	}

	*dst = n
	return nil
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))

	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}

	return out
}
