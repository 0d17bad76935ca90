package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the top-level ledgerbench.yaml configuration.
type Config struct {
	CasesDir  string        `yaml:"cases_dir"`
	OutputDir string        `yaml:"output_dir"`
	Models    []ModelConfig `yaml:"models"`
}

// ModelConfig names one model under test and how to reach it.
type ModelConfig struct {
	// Name is the friendly label used in reports.
	Name string `yaml:"name"`
	// Provider selects the adapter: gemini, openai, ollama, bedrock.
	Provider string `yaml:"provider"`
	// Model is the backend-specific model identifier.
	Model       string  `yaml:"model"`
	Temperature float64 `yaml:"temperature"`
	Endpoint    string  `yaml:"endpoint,omitempty"`
	Region      string  `yaml:"region,omitempty"`
	// APIKeyEnv overrides the environment variable the credential is read
	// from. The credential itself never appears in config or logs.
	APIKeyEnv string `yaml:"api_key_env,omitempty"`
}

// Load reads a ledgerbench.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if len(cfg.Models) == 0 {
		return nil, fmt.Errorf("config %s: no models configured", path)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new benchmark.
func Default() *Config {
	return &Config{
		CasesDir:  "cases",
		OutputDir: "results",
		Models: []ModelConfig{
			{
				Name:        "gemini-2.5-flash",
				Provider:    "gemini",
				Model:       "gemini-2.5-flash",
				Temperature: 0,
			},
			{
				Name:        "gemma3",
				Provider:    "ollama",
				Model:       "gemma3",
				Temperature: 0,
			},
		},
	}
}
