package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// applies the keys present in a YAML tuning file to cfg.
// secrets are deliberately absent from the file format and only come from the environment.
func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path comes from operator config
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	// decoding onto the current values keeps every key the file omits, and lets
	// the file set explicit zeroes such as match_threshold: 0
	f := tuningFile{
		Port:        cfg.Port,
		CORSOrigins: cfg.CORSOrigins,
		StoreDriver: cfg.StoreDriver,
		CorpusFile:  cfg.CorpusFile,
		Embedder:    cfg.Embedder,
		Generator:   cfg.Generator,
		Search:      cfg.Search,
	}

	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	cfg.Port = f.Port
	cfg.CORSOrigins = f.CORSOrigins
	cfg.StoreDriver = f.StoreDriver
	cfg.CorpusFile = f.CorpusFile
	cfg.Embedder = f.Embedder
	cfg.Generator = f.Generator
	cfg.Search = f.Search

	return nil
}
