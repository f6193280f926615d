package config

import "time"

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"

	FailureModeFail    = "fail"
	FailureModeDegrade = "degrade"
)

type Config struct {
	Environment        string
	Port               string
	CORSOrigins        []string
	SupabaseConnString string
	RedisURL           string
	OpenAIKey          string
	AnthropicKey       string
	StoreDriver        string
	CorpusFile         string // seed file for the memory store

	Embedder  EmbedderConfig
	Generator GeneratorConfig
	Search    SearchConfig
}

type EmbedderConfig struct {
	Provider      string `yaml:"provider"`
	Model         string `yaml:"model"`
	Dimensions    int    `yaml:"dimensions"`
	MaxInputChars int    `yaml:"max_input_chars"`
	ModelDir      string `yaml:"model_dir"`
}

type GeneratorConfig struct {
	Provider    string  `yaml:"provider"`
	Model       string  `yaml:"model"`
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float32 `yaml:"temperature"`
}

type SearchConfig struct {
	MatchThreshold float64       `yaml:"match_threshold"`
	DefaultLimit   int           `yaml:"default_limit"`
	MaxLimit       int           `yaml:"max_limit"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	ContextChars   int           `yaml:"context_chars"`
	FailureMode    string        `yaml:"failure_mode"`
}

// non-secret knobs that may live in a YAML file (CONFIG_FILE)
type tuningFile struct {
	Port        string          `yaml:"port"`
	CORSOrigins []string        `yaml:"cors_origins"`
	StoreDriver string          `yaml:"store_driver"`
	CorpusFile  string          `yaml:"corpus_file"`
	Embedder    EmbedderConfig  `yaml:"embedder"`
	Generator   GeneratorConfig `yaml:"generator"`
	Search      SearchConfig    `yaml:"search"`
}

type Flags struct {
	All       bool
	BatchSize int
	Migrate   bool
	DryRun    bool
}
