package config

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the corpus agent.
type Config struct {
	Embedding EmbeddingConfig `yaml:"embedding"`
	Generate  GenerateConfig  `yaml:"generate"`
	Retrieve  RetrieveConfig  `yaml:"retrieve"`
	Context   ContextConfig   `yaml:"context"`
	Ingest    IngestConfig    `yaml:"ingest"`
	Cache     CacheConfig     `yaml:"cache"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// EmbeddingConfig holds embedding configuration. The same model must
// serve ingestion and query embedding.
type EmbeddingConfig struct {
	Provider  string `yaml:"provider"` // "ollama", "openai", "mock"
	Model     string `yaml:"model"`
	BaseURL   string `yaml:"base_url"`
	APIKeyEnv string `yaml:"api_key_env"`
	Dimension int    `yaml:"dimension"`
}

// GenerateConfig holds generation service configuration.
type GenerateConfig struct {
	BaseURL        string `yaml:"base_url"`
	Model          string `yaml:"model"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// RetrieveConfig holds retrieval configuration. MinScore serves both as
// the per-passage floor inside retrieval and as the overall best-score
// gate.
type RetrieveConfig struct {
	TopK     int     `yaml:"top_k"`
	MinScore float64 `yaml:"min_score"`
}

// ContextConfig bounds the assembled context.
type ContextConfig struct {
	MaxChars int `yaml:"max_chars"`
}

// IngestConfig holds corpus build configuration.
type IngestConfig struct {
	DataDir      string `yaml:"data_dir"`
	ChunkChars   int    `yaml:"chunk_chars"`
	ChunkOverlap int    `yaml:"chunk_overlap"`
}

// CacheConfig holds retrieval cache configuration.
type CacheConfig struct {
	Enabled    bool `yaml:"enabled"`
	MaxEntries int  `yaml:"max_entries"`
	TTLSeconds int  `yaml:"ttl_seconds"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Embedding: EmbeddingConfig{
			Provider:  "ollama",
			Model:     "all-minilm",
			BaseURL:   "http://localhost:11434/v1",
			APIKeyEnv: "OPENAI_API_KEY",
			Dimension: 384,
		},
		Generate: GenerateConfig{
			BaseURL:        "http://localhost:11434",
			Model:          "llama3.1",
			TimeoutSeconds: 120,
		},
		Retrieve: RetrieveConfig{
			TopK:     8,
			MinScore: 0.25,
		},
		Context: ContextConfig{
			MaxChars: 3000,
		},
		Ingest: IngestConfig{
			DataDir:      "data",
			ChunkChars:   800,
			ChunkOverlap: 150,
		},
		Cache: CacheConfig{
			Enabled:    true,
			MaxEntries: 100,
			TTLSeconds: 300,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from a YAML file, applying environment
// overrides for the generation endpoint and model.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnv()
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	cfg.applyEnv()
	return cfg, nil
}

// LoadFromDir loads configuration from a directory (looks for corpusqa.yaml).
func LoadFromDir(dir string) (*Config, error) {
	path := filepath.Join(dir, "corpusqa.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	path = filepath.Join(dir, ".corpusqa", "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	cfg := DefaultConfig()
	cfg.applyEnv()
	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// applyEnv overrides the generation endpoint and model from the
// environment. OLLAMA_URL may carry the full generate path.
func (c *Config) applyEnv() {
	if v := os.Getenv("OLLAMA_URL"); v != "" {
		c.Generate.BaseURL = strings.TrimSuffix(v, "/api/generate")
	}
	if v := os.Getenv("OLLAMA_MODEL"); v != "" {
		c.Generate.Model = v
	}
}

// IndexDBPath returns the path to the corpus index database.
func IndexDBPath(dir string) string {
	return filepath.Join(dir, "index", "corpus.db")
}
