// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Environment variables that override file values
const (
	EnvGeminiAPIKey = "GEMINI_API_KEY"
	EnvOpenAIAPIKey = "OPENAI_API_KEY"
	EnvSerperAPIKey = "SERPER_API_KEY"
	EnvKnowledgeDir = "HS_KNOWLEDGE_DIR"
)

// Config represents the configuration that can be loaded from a JSON or YAML file.
// All fields are optional; missing values use defaults or CLI flags.
type Config struct {
	// Corpus
	KnowledgeDir string `json:"knowledge_dir,omitempty" yaml:"knowledge_dir,omitempty"`
	Partitions   int    `json:"partitions,omitempty" yaml:"partitions,omitempty" validate:"gte=0,lte=1000"`
	MaxResults   int    `json:"max_results,omitempty" yaml:"max_results,omitempty" validate:"gte=0,lte=100"`

	// Collaborators
	LLM          LLMConfig `json:"llm,omitempty" yaml:"llm,omitempty"`
	SerperAPIKey string    `json:"serper_api_key,omitempty" yaml:"serper_api_key,omitempty"`

	// Surfaces
	Server ServerConfig `json:"server,omitempty" yaml:"server,omitempty"`

	// Behavior
	Verbose bool `json:"verbose,omitempty" yaml:"verbose,omitempty"` // Print debug logs
}

// LLMConfig selects the language-model provider
type LLMConfig struct {
	Provider    string            `json:"provider,omitempty" yaml:"provider,omitempty" validate:"omitempty,oneof=gemini openai"`
	APIKey      string            `json:"api_key,omitempty" yaml:"api_key,omitempty"`
	BaseURL     string            `json:"base_url,omitempty" yaml:"base_url,omitempty" validate:"omitempty,url"`
	Temperature float32           `json:"temperature,omitempty" yaml:"temperature,omitempty" validate:"gte=0,lte=2"`
	Models      map[string]string `json:"models,omitempty" yaml:"models,omitempty" validate:"omitempty,dive,keys,oneof=lite standard advanced,endkeys,required"`
}

// ServerConfig configures the HTTP API
type ServerConfig struct {
	Addr              string   `json:"addr,omitempty" yaml:"addr,omitempty" validate:"omitempty,hostname_port"`
	RequestsPerMinute int      `json:"requests_per_minute,omitempty" yaml:"requests_per_minute,omitempty" validate:"gte=0"`
	Burst             int      `json:"burst,omitempty" yaml:"burst,omitempty" validate:"gte=0"`
	CORSOrigins       []string `json:"cors_origins,omitempty" yaml:"cors_origins,omitempty"`
	JWTSecret         string   `json:"jwt_secret,omitempty" yaml:"jwt_secret,omitempty"`
}

// Defaults returns the built-in configuration
func Defaults() Config {
	return Config{
		KnowledgeDir: "knowledge",
		Partitions:   10,
		MaxResults:   5,
		LLM: LLMConfig{
			Provider:    "gemini",
			Temperature: 0.1,
		},
		Server: ServerConfig{
			Addr:              ":8080",
			RequestsPerMinute: 60,
			Burst:             10,
		},
	}
}

// LoadConfig loads configuration from a JSON or YAML file, chosen by extension.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Required values are checked after merging with flags, not here.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	if c.KnowledgeDir != "" {
		info, err := os.Stat(c.KnowledgeDir)
		if err == nil && !info.IsDir() {
			return fmt.Errorf("config error: knowledge_dir is not a directory: %s", c.KnowledgeDir)
		}
	}

	return nil
}

// ApplyEnv overrides API keys and the knowledge directory from the environment.
// getenv is usually os.Getenv.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := getenv(EnvKnowledgeDir); v != "" {
		c.KnowledgeDir = v
	}
	if v := getenv(EnvSerperAPIKey); v != "" {
		c.SerperAPIKey = v
	}
	if v := getenv(EnvJWTSecret); v != "" {
		c.Server.JWTSecret = v
	}
	if c.LLM.APIKey == "" {
		switch c.LLM.Provider {
		case "openai":
			c.LLM.APIKey = getenv(EnvOpenAIAPIKey)
		default:
			c.LLM.APIKey = getenv(EnvGeminiAPIKey)
		}
	}
}

// MergeWithDefaults returns a new Config with zero fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.KnowledgeDir == "" {
		result.KnowledgeDir = defaults.KnowledgeDir
	}
	if result.SerperAPIKey == "" {
		result.SerperAPIKey = defaults.SerperAPIKey
	}
	if result.LLM.Provider == "" {
		result.LLM.Provider = defaults.LLM.Provider
	}
	if result.LLM.APIKey == "" {
		result.LLM.APIKey = defaults.LLM.APIKey
	}
	if result.LLM.BaseURL == "" {
		result.LLM.BaseURL = defaults.LLM.BaseURL
	}
	if result.Server.Addr == "" {
		result.Server.Addr = defaults.Server.Addr
	}
	if result.Server.JWTSecret == "" {
		result.Server.JWTSecret = defaults.Server.JWTSecret
	}

	// Numeric fields: use default if zero
	if result.Partitions == 0 {
		result.Partitions = defaults.Partitions
	}
	if result.MaxResults == 0 {
		result.MaxResults = defaults.MaxResults
	}
	if result.LLM.Temperature == 0 {
		result.LLM.Temperature = defaults.LLM.Temperature
	}
	if result.Server.RequestsPerMinute == 0 {
		result.Server.RequestsPerMinute = defaults.Server.RequestsPerMinute
	}
	if result.Server.Burst == 0 {
		result.Server.Burst = defaults.Server.Burst
	}

	// Collections: defaults only when unset
	if len(result.LLM.Models) == 0 && len(defaults.LLM.Models) > 0 {
		result.LLM.Models = make(map[string]string, len(defaults.LLM.Models))
		for tier, model := range defaults.LLM.Models {
			result.LLM.Models[tier] = model
		}
	}
	if len(result.Server.CORSOrigins) == 0 {
		result.Server.CORSOrigins = append([]string(nil), defaults.Server.CORSOrigins...)
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
