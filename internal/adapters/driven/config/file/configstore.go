// Package file provides a TOML-backed configuration store.
package file

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Config holds the pipeline configuration persisted in the lagrum
// config directory. Secrets are never written to disk: API keys are
// read from the environment at load time.
type Config struct {
	OpenAI   OpenAIConfig   `toml:"openai"`
	Weaviate WeaviateConfig `toml:"weaviate"`
	Pipeline PipelineConfig `toml:"pipeline"`
	Scraper  ScraperConfig  `toml:"scraper"`

	path string
}

// OpenAIConfig selects the embedding and chat models.
type OpenAIConfig struct {
	APIKey         string `toml:"-"`
	BaseURL        string `toml:"base_url,omitempty"`
	EmbeddingModel string `toml:"embedding_model"`
	ChatModel      string `toml:"chat_model"`
}

// WeaviateConfig locates the vector store.
type WeaviateConfig struct {
	URL    string `toml:"url"`
	APIKey string `toml:"-"`
	Class  string `toml:"class"`
}

// PipelineConfig tunes chunking and embedding.
// An explicit embed_delay_ms of 0 disables the pause between embedding
// calls; leaving the key out keeps the default.
type PipelineConfig struct {
	ChunkSize     int      `toml:"chunk_size"`
	ChunkOverlap  int      `toml:"chunk_overlap"`
	ContextFields []string `toml:"context_fields"`
	TokenLimit    int      `toml:"token_limit"`
	BatchSize     int      `toml:"batch_size"`
	EmbedDelayMS  int      `toml:"embed_delay_ms"`
}

// ScraperConfig bounds the corpus walk.
type ScraperConfig struct {
	BaseURL   string  `toml:"base_url"`
	FromPost  int     `toml:"from_post"`
	ToPost    int     `toml:"to_post"`
	RateLimit float64 `toml:"rate_limit"`
}

// DefaultConfig returns a config populated with working defaults.
func DefaultConfig() *Config {
	return &Config{
		OpenAI: OpenAIConfig{
			EmbeddingModel: "text-embedding-ada-002",
			ChatModel:      "gpt-3.5-turbo",
		},
		Weaviate: WeaviateConfig{
			URL:   "http://localhost:8080",
			Class: "Legislation",
		},
		Pipeline: PipelineConfig{
			ChunkSize:     1000,
			ChunkOverlap:  100,
			ContextFields: []string{"title", "sfs_number"},
			TokenLimit:    2000,
			BatchSize:     64,
			EmbedDelayMS:  100,
		},
		Scraper: ScraperConfig{
			BaseURL:   "https://rkrattsbaser.gov.se",
			RateLimit: 2,
		},
	}
}

// Load reads the configuration from the TOML file in configDir,
// creating the file with defaults on first use. If configDir is empty,
// defaults to ~/.lagrum.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		configDir = filepath.Join(home, ".lagrum")
	}

	// Ensure directory exists
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	cfg.path = filepath.Join(configDir, "config.toml")

	data, err := os.ReadFile(cfg.path)
	switch {
	case os.IsNotExist(err):
		// First run: persist the defaults so the user has a file to edit.
		if err := cfg.Save(); err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	default:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

// Save persists the configuration to disk.
func (c *Config) Save() error {
	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}

	// Write with restricted permissions
	return os.WriteFile(c.path, data, 0600)
}

// Path returns the configuration file path.
func (c *Config) Path() string {
	return c.path
}

// applyEnv overlays secrets and endpoint overrides from the environment.
func (c *Config) applyEnv() {
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		c.OpenAI.APIKey = v
	}
	if v := os.Getenv("OPENAI_BASE_URL"); v != "" {
		c.OpenAI.BaseURL = v
	}
	if v := os.Getenv("WEAVIATE_URL"); v != "" {
		c.Weaviate.URL = v
	}
	if v := os.Getenv("WEAVIATE_API_KEY"); v != "" {
		c.Weaviate.APIKey = v
	}
}
