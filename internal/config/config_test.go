package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"CONFIG_FILE", "ENVIRONMENT", "PORT", "SUPABASE_CONNECTION_STRING", "REDIS_URL",
	"OPENAI_API_KEY", "ANTHROPIC_API_KEY", "STORE_DRIVER", "CORPUS_FILE", "CORS_ORIGINS",
	"EMBEDDER_PROVIDER", "EMBEDDER_MODEL", "MODEL_DIR", "GENERATOR_PROVIDER", "GENERATOR_MODEL",
	"SYNTHESIS_FAILURE_MODE", "EMBEDDING_DIMENSIONS", "EMBEDDER_MAX_INPUT_CHARS",
	"GENERATOR_MAX_TOKENS", "SEARCH_DEFAULT_LIMIT", "SEARCH_MAX_LIMIT", "SYNTHESIS_CONTEXT_CHARS",
	"GENERATOR_TEMPERATURE", "MATCH_THRESHOLD", "REQUEST_TIMEOUT",
}

// empty values count as unset
func clearEnv(t *testing.T) {
	t.Helper()

	for _, k := range configKeys {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("SUPABASE_CONNECTION_STRING", "postgres://localhost/essays")
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := LoadEnvironmentVariables()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSOrigins)
	assert.Equal(t, "local", cfg.Embedder.Provider)
	assert.Equal(t, "sentence-transformers/all-MiniLM-L6-v2", cfg.Embedder.Model)
	assert.Equal(t, 384, cfg.Embedder.Dimensions)
	assert.Equal(t, "openai", cfg.Generator.Provider)
	assert.Equal(t, "gpt-4", cfg.Generator.Model)
	assert.Equal(t, 300, cfg.Generator.MaxTokens)
	assert.InDelta(t, 0.7, cfg.Generator.Temperature, 1e-6)
	assert.InDelta(t, 0.3, cfg.Search.MatchThreshold, 1e-9)
	assert.Equal(t, 5, cfg.Search.DefaultLimit)
	assert.Equal(t, 1000, cfg.Search.ContextChars)
	assert.Equal(t, FailureModeFail, cfg.Search.FailureMode)
	assert.False(t, cfg.IsProduction())
}

func TestLoadMissingConnectionString(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-test")

	_, err := LoadEnvironmentVariables()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SUPABASE_CONNECTION_STRING")
}

func TestLoadMissingGeneratorKey(t *testing.T) {
	clearEnv(t)
	t.Setenv("SUPABASE_CONNECTION_STRING", "postgres://localhost/essays")

	_, err := LoadEnvironmentVariables()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OPENAI_API_KEY")

	t.Setenv("GENERATOR_PROVIDER", "anthropic")

	_, err = LoadEnvironmentVariables()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ANTHROPIC_API_KEY")

	t.Setenv("ANTHROPIC_API_KEY", "key")

	cfg, err := LoadEnvironmentVariables()
	require.NoError(t, err)
	assert.Equal(t, "claude-sonnet-4-20250514", cfg.Generator.Model)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("SUPABASE_CONNECTION_STRING", "postgres://localhost/essays")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("EMBEDDER_PROVIDER", "openai")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("MATCH_THRESHOLD", "0.45")
	t.Setenv("REQUEST_TIMEOUT", "5s")
	t.Setenv("SYNTHESIS_FAILURE_MODE", "degrade")

	cfg, err := LoadEnvironmentVariables()
	require.NoError(t, err)

	assert.Equal(t, "text-embedding-3-small", cfg.Embedder.Model)
	assert.Equal(t, 24000, cfg.Embedder.MaxInputChars)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.InDelta(t, 0.45, cfg.Search.MatchThreshold, 1e-9)
	assert.Equal(t, 5*time.Second, cfg.Search.RequestTimeout)
	assert.Equal(t, FailureModeDegrade, cfg.Search.FailureMode)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"threshold out of range", "MATCH_THRESHOLD", "1.5"},
		{"threshold not a number", "MATCH_THRESHOLD", "high"},
		{"bad timeout", "REQUEST_TIMEOUT", "soon"},
		{"bad failure mode", "SYNTHESIS_FAILURE_MODE", "ignore"},
		{"bad dimensions", "EMBEDDING_DIMENSIONS", "0"},
		{"unknown embedder", "EMBEDDER_PROVIDER", "cohere"},
		{"unknown store", "STORE_DRIVER", "sqlite"},
		{"zero temperature", "GENERATOR_TEMPERATURE", "0"},
		{"temperature too high", "GENERATOR_TEMPERATURE", "2.5"},
		{"zero timeout", "REQUEST_TIMEOUT", "0s"},
		{"negative timeout", "REQUEST_TIMEOUT", "-5s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("SUPABASE_CONNECTION_STRING", "postgres://localhost/essays")
			t.Setenv("OPENAI_API_KEY", "sk-test")
			t.Setenv(tt.key, tt.val)

			_, err := LoadEnvironmentVariables()
			assert.Error(t, err)
		})
	}
}

func TestLoadYAMLFileThenEnv(t *testing.T) {
	clearEnv(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
port: "9090"
store_driver: memory
corpus_file: ./corpus.json
search:
  match_threshold: 0.25
  default_limit: 3
  request_timeout: 12s
generator:
  max_tokens: 400
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("PORT", "7070")

	cfg, err := LoadEnvironmentVariables()
	require.NoError(t, err)

	assert.Equal(t, "7070", cfg.Port, "environment wins over the file")
	assert.Equal(t, StoreDriverMemory, cfg.StoreDriver)
	assert.Equal(t, "./corpus.json", cfg.CorpusFile)
	assert.InDelta(t, 0.25, cfg.Search.MatchThreshold, 1e-9)
	assert.Equal(t, 3, cfg.Search.DefaultLimit)
	assert.Equal(t, 12*time.Second, cfg.Search.RequestTimeout)
	assert.Equal(t, 400, cfg.Generator.MaxTokens)
}

func TestLoadYAMLFileExplicitZero(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
search:
  match_threshold: 0
generator:
  temperature: 0.2
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("SUPABASE_CONNECTION_STRING", "postgres://localhost/essays")
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := LoadEnvironmentVariables()
	require.NoError(t, err)

	assert.Zero(t, cfg.Search.MatchThreshold)
	assert.InDelta(t, 0.2, cfg.Generator.Temperature, 1e-6)
	assert.Equal(t, 30*time.Second, cfg.Search.RequestTimeout, "keys absent from the file keep their defaults")
	assert.Equal(t, 20, cfg.Search.MaxLimit)
}

func TestLoadYAMLFileRejectsZeroTemperature(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("generator:\n  temperature: 0\n"), 0o600))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("SUPABASE_CONNECTION_STRING", "postgres://localhost/essays")
	t.Setenv("OPENAI_API_KEY", "sk-test")

	_, err := LoadEnvironmentVariables()
	assert.Error(t, err)
}

func TestParseBackfillFlags(t *testing.T) {
	flags := ParseBackfillFlags([]string{"-all", "-batch", "8", "-migrate"})
	assert.Equal(t, Flags{All: true, BatchSize: 8, Migrate: true}, flags)

	flags = ParseBackfillFlags([]string{"-batch", "0"})
	assert.Equal(t, DefaultBackfillFlags(), flags)
}

func TestLoadBackfillEnvironmentSkipsGeneratorKey(t *testing.T) {
	clearEnv(t)
	t.Setenv("SUPABASE_CONNECTION_STRING", "postgres://localhost/essays")

	cfg, err := LoadBackfillEnvironment()
	require.NoError(t, err)
	assert.Equal(t, "local", cfg.Embedder.Provider)

	t.Setenv("SUPABASE_CONNECTION_STRING", "")
	_, err = LoadBackfillEnvironment()
	assert.Error(t, err)
}
