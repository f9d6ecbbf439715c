package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// EnvAPIKey optionally seeds the session credential at startup.
const EnvAPIKey = "OPENAI_API_KEY"

// Config represents the application configuration
type Config struct {
	Provider     string             `json:"provider"`
	Providers    ProvidersConfig    `json:"providers"`
	SystemPrompt SystemPromptConfig `json:"system_prompt"`
	ContextMode  string             `json:"context_mode"` // "full" or "latest"
	LogLevel     string             `json:"log_level"`
	LogFormat    string             `json:"log_format"`
	LogFile      string             `json:"log_file"`
}

// ProvidersConfig groups per-provider settings.
type ProvidersConfig struct {
	OpenAI     ProviderConfig `json:"openai"`
	OpenRouter ProviderConfig `json:"openrouter"`
	Google     ProviderConfig `json:"google"`
}

// ProviderConfig holds the settings for one completion provider.
type ProviderConfig struct {
	APIKey            string  `json:"api_key"`
	APIURL            string  `json:"api_url,omitempty"`
	Model             string  `json:"model"`
	Temperature       float64 `json:"temperature"`
	MaxTokens         int     `json:"max_tokens"`
	APITimeoutSeconds int     `json:"api_timeout_seconds"`
	HTTPReferer       string  `json:"http_referer,omitempty"`
	XTitle            string  `json:"x_title,omitempty"`
}

// SystemPromptConfig controls the persona message prepended to
// full-history turns.
type SystemPromptConfig struct {
	Enabled bool   `json:"enabled"`
	Text    string `json:"text"`
}

// Default returns a configuration with default values
func Default() Config {
	return Config{
		Provider: "openai",
		Providers: ProvidersConfig{
			OpenAI: ProviderConfig{
				APIURL:            "https://api.openai.com/v1",
				Model:             "gpt-4o",
				Temperature:       0.5,
				MaxTokens:         2000,
				APITimeoutSeconds: 30,
			},
			OpenRouter: ProviderConfig{
				APIURL:            "https://openrouter.ai/api/v1",
				Model:             "openai/gpt-4o-mini",
				Temperature:       0.5,
				MaxTokens:         2000,
				APITimeoutSeconds: 30,
				XTitle:            "roomchat",
			},
			Google: ProviderConfig{
				Model:             "gemini-2.0-flash",
				Temperature:       0.5,
				MaxTokens:         2000,
				APITimeoutSeconds: 60,
			},
		},
		SystemPrompt: SystemPromptConfig{
			Enabled: false,
			Text:    "You are a friendly class chat assistant.",
		},
		ContextMode: "full",
		LogLevel:    "info",
		LogFormat:   "json",
	}
}

// Load loads configuration from the specified path
// If the file doesn't exist, creates one with default values
func Load(configPath string) (Config, error) {
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return Config{}, fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := Default()
			if err := Save(configPath, cfg); err != nil {
				return Config{}, fmt.Errorf("failed to create default config: %w", err)
			}
			return cfg, nil
		}
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}

	// Unmarshal over defaults so missing fields keep their default values.
	cfg := Default()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

// Save saves the configuration to the specified path
func Save(configPath string, cfg Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c Config) Validate() error {
	switch c.Provider {
	case "openai", "openrouter", "google":
	default:
		return fmt.Errorf("unsupported provider: %s", c.Provider)
	}

	p := c.ActiveProvider()

	if strings.TrimSpace(p.Model) == "" {
		return fmt.Errorf("model is required for provider %s", c.Provider)
	}

	if p.Temperature < 0 || p.Temperature > 2 {
		return fmt.Errorf("temperature must be between 0 and 2, got: %f", p.Temperature)
	}

	if p.MaxTokens <= 0 {
		return fmt.Errorf("max_tokens must be positive, got: %d", p.MaxTokens)
	}

	if p.APITimeoutSeconds <= 0 {
		return fmt.Errorf("api_timeout_seconds must be positive, got: %d", p.APITimeoutSeconds)
	}

	switch strings.ToLower(strings.TrimSpace(c.ContextMode)) {
	case "", "full", "latest":
	default:
		return fmt.Errorf("context_mode must be 'full' or 'latest', got: %s", c.ContextMode)
	}

	return nil
}

// ActiveProvider returns the settings for the configured provider.
func (c Config) ActiveProvider() ProviderConfig {
	switch c.Provider {
	case "openrouter":
		return c.Providers.OpenRouter
	case "google":
		return c.Providers.Google
	default:
		return c.Providers.OpenAI
	}
}

// EnvCredential returns the ambient API key from the environment, or ""
// when unset. The config file's api_key takes precedence over it.
func EnvCredential() string {
	return strings.TrimSpace(os.Getenv(EnvAPIKey))
}

// GetConfigPath returns the default configuration file path
func GetConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".roomchat", "config.json")
	}
	return filepath.Join(homeDir, ".roomchat", "config.json")
}
