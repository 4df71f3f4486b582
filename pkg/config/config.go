package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v9"
	"github.com/hashicorp/go-multierror"
	"github.com/joho/godotenv"
)

const (
	ProviderGoogle = "google"
	ProviderOpenAI = "openai"

	defaultGoogleModel = "gemini-1.5-flash"
	defaultOpenAIModel = "gpt-4o-mini"
	defaultOpenAIURL   = "https://api.openai.com/v1"
	defaultTimeout     = 60
)

// ErrMissingAPIKey is returned by Validate when the active provider has no credential.
var ErrMissingAPIKey = errors.New("api key not found")

// Config represents the application configuration
type Config struct {
	LLMProvider string          `json:"llm_provider" env:"IG_PROVIDER"`
	Providers   ProvidersConfig `json:"providers"`
	LogLevel    string          `json:"log_level" env:"IG_LOG_LEVEL"`
	LogFormat   string          `json:"log_format" env:"IG_LOG_FORMAT"` // "json" or "text"
	LogFile     string          `json:"log_file" env:"IG_LOG_FILE"`
}

// ProvidersConfig groups per-provider settings.
type ProvidersConfig struct {
	Google GoogleConfig `json:"google"`
	OpenAI OpenAIConfig `json:"openai"`
}

// GoogleConfig holds the Gemini API configuration
type GoogleConfig struct {
	APIKey            string  `json:"api_key" env:"API_KEY"`
	Model             string  `json:"model" env:"GEMINI_MODEL"`
	Temperature       float64 `json:"temperature" env:"GEMINI_TEMPERATURE"`
	MaxTokens         int     `json:"max_tokens" env:"GEMINI_MAX_TOKENS"`
	APITimeoutSeconds int     `json:"api_timeout_seconds" env:"GEMINI_TIMEOUT_SECONDS"`
}

// OpenAIConfig holds settings for any OpenAI-compatible endpoint (OpenAI, OpenRouter).
type OpenAIConfig struct {
	APIKey            string  `json:"api_key" env:"OPENAI_API_KEY"`
	APIURL            string  `json:"api_url" env:"OPENAI_BASE_URL"`
	Model             string  `json:"model" env:"OPENAI_MODEL"`
	Temperature       float64 `json:"temperature" env:"OPENAI_TEMPERATURE"`
	MaxTokens         int     `json:"max_tokens" env:"OPENAI_MAX_TOKENS"`
	APITimeoutSeconds int     `json:"api_timeout_seconds" env:"OPENAI_TIMEOUT_SECONDS"`
}

// Default returns a configuration with default values
func Default() Config {
	return Config{
		LLMProvider: ProviderGoogle,
		Providers: ProvidersConfig{
			Google: GoogleConfig{
				Model:             defaultGoogleModel,
				APITimeoutSeconds: defaultTimeout,
			},
			OpenAI: OpenAIConfig{
				APIURL:            defaultOpenAIURL,
				Model:             defaultOpenAIModel,
				APITimeoutSeconds: defaultTimeout,
			},
		},
		LogLevel:  "info",
		LogFormat: "json",
	}
}

// Load reads the configuration file at configPath.
// If the file doesn't exist, one is created with default values.
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

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	applyDefaults(&cfg)

	return cfg, nil
}

// Save writes the configuration to configPath. The file may hold API keys, so it is 0600.
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

// ApplyEnv loads dotenv files (".env" when none given) and overlays environment
// variables on cfg. Missing dotenv files are not an error. Variables already set
// in the process environment win over dotenv values.
func ApplyEnv(cfg *Config, dotenvFiles ...string) error {
	if len(dotenvFiles) == 0 {
		dotenvFiles = []string{".env"}
	}
	for _, file := range dotenvFiles {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", file, err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("failed to parse environment: %w", err)
	}
	applyDefaults(cfg)
	return nil
}

// applyDefaults fills fields that older config files may leave empty.
func applyDefaults(cfg *Config) {
	def := Default()
	if strings.TrimSpace(cfg.LLMProvider) == "" {
		cfg.LLMProvider = def.LLMProvider
	}
	if strings.TrimSpace(cfg.Providers.Google.Model) == "" {
		cfg.Providers.Google.Model = def.Providers.Google.Model
	}
	if cfg.Providers.Google.APITimeoutSeconds == 0 {
		cfg.Providers.Google.APITimeoutSeconds = def.Providers.Google.APITimeoutSeconds
	}
	if strings.TrimSpace(cfg.Providers.OpenAI.APIURL) == "" {
		cfg.Providers.OpenAI.APIURL = def.Providers.OpenAI.APIURL
	}
	if strings.TrimSpace(cfg.Providers.OpenAI.Model) == "" {
		cfg.Providers.OpenAI.Model = def.Providers.OpenAI.Model
	}
	if cfg.Providers.OpenAI.APITimeoutSeconds == 0 {
		cfg.Providers.OpenAI.APITimeoutSeconds = def.Providers.OpenAI.APITimeoutSeconds
	}
	if strings.TrimSpace(cfg.LogLevel) == "" {
		cfg.LogLevel = def.LogLevel
	}
	if strings.TrimSpace(cfg.LogFormat) == "" {
		cfg.LogFormat = def.LogFormat
	}
}

// APIKey returns the credential of the active provider.
func (c Config) APIKey() string {
	switch c.LLMProvider {
	case ProviderOpenAI:
		return strings.TrimSpace(c.Providers.OpenAI.APIKey)
	default:
		return strings.TrimSpace(c.Providers.Google.APIKey)
	}
}

// SetModel overrides the model of the active provider.
func (c *Config) SetModel(model string) {
	model = strings.TrimSpace(model)
	if model == "" {
		return
	}
	switch c.LLMProvider {
	case ProviderOpenAI:
		c.Providers.OpenAI.Model = model
	default:
		c.Providers.Google.Model = model
	}
}

// Validate checks the configuration and reports every problem found.
// A missing credential is reported as ErrMissingAPIKey.
func (c Config) Validate() error {
	var result *multierror.Error

	switch c.LLMProvider {
	case ProviderGoogle:
		result = multierror.Append(result, validateTuning("google",
			c.Providers.Google.Temperature,
			c.Providers.Google.MaxTokens,
			c.Providers.Google.APITimeoutSeconds)...)
	case ProviderOpenAI:
		result = multierror.Append(result, validateTuning("openai",
			c.Providers.OpenAI.Temperature,
			c.Providers.OpenAI.MaxTokens,
			c.Providers.OpenAI.APITimeoutSeconds)...)
		if strings.TrimSpace(c.Providers.OpenAI.APIURL) == "" {
			result = multierror.Append(result, fmt.Errorf("openai api_url is required"))
		}
	default:
		result = multierror.Append(result, fmt.Errorf("unsupported LLM provider: %s", c.LLMProvider))
	}

	if c.APIKey() == "" {
		result = multierror.Append(result, ErrMissingAPIKey)
	}

	return result.ErrorOrNil()
}

func validateTuning(name string, temperature float64, maxTokens, timeoutSeconds int) []error {
	var errs []error
	if temperature < 0 || temperature > 2 {
		errs = append(errs, fmt.Errorf("%s temperature must be between 0 and 2, got: %f", name, temperature))
	}
	if maxTokens < 0 {
		errs = append(errs, fmt.Errorf("%s max_tokens must not be negative, got: %d", name, maxTokens))
	}
	if timeoutSeconds <= 0 {
		errs = append(errs, fmt.Errorf("%s api_timeout_seconds must be positive, got: %d", name, timeoutSeconds))
	}
	return errs
}

// GetConfigPath returns the default configuration file path
func GetConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".instagram_content_ai", "config.json")
	}
	return filepath.Join(homeDir, ".instagram_content_ai", "config.json")
}
