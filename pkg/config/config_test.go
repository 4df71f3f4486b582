package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.LLMProvider != ProviderGoogle {
		t.Errorf("Expected LLMProvider %q, got %q", ProviderGoogle, cfg.LLMProvider)
	}
	if cfg.Providers.Google.Model != "gemini-1.5-flash" {
		t.Errorf("Expected model 'gemini-1.5-flash', got %q", cfg.Providers.Google.Model)
	}
	if cfg.Providers.Google.APITimeoutSeconds != 60 {
		t.Errorf("Expected timeout 60, got %d", cfg.Providers.Google.APITimeoutSeconds)
	}
	if cfg.Providers.OpenAI.APIURL != "https://api.openai.com/v1" {
		t.Errorf("Expected OpenAI URL, got %q", cfg.Providers.OpenAI.APIURL)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("Expected log level 'info', got %q", cfg.LogLevel)
	}
}

func TestLoad_CreateDefault(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, ".instagram_content_ai", "config.json")

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Providers.Google.Model != defaultGoogleModel {
		t.Errorf("Expected default model, got %q", cfg.Providers.Google.Model)
	}

	info, err := os.Stat(configPath)
	if err != nil {
		t.Fatalf("Config file was not created: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("Expected config file mode 0600, got %v", info.Mode().Perm())
	}
}

func TestLoad_ExistingConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.json")

	initial := Default()
	initial.Providers.Google.APIKey = "file-key"
	initial.Providers.Google.Model = "gemini-2.0-flash"
	if err := Save(configPath, initial); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Providers.Google.APIKey != "file-key" {
		t.Errorf("Expected api key 'file-key', got %q", cfg.Providers.Google.APIKey)
	}
	if cfg.Providers.Google.Model != "gemini-2.0-flash" {
		t.Errorf("Expected model 'gemini-2.0-flash', got %q", cfg.Providers.Google.Model)
	}
}

func TestLoad_MigrationDefaults(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.json")

	// Older files may only carry the key.
	if err := os.WriteFile(configPath, []byte(`{"providers":{"google":{"api_key":"k"}}}`), 0600); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.LLMProvider != ProviderGoogle {
		t.Errorf("Expected provider to default to google, got %q", cfg.LLMProvider)
	}
	if cfg.Providers.Google.Model != defaultGoogleModel {
		t.Errorf("Expected model default, got %q", cfg.Providers.Google.Model)
	}
	if cfg.Providers.Google.APITimeoutSeconds != defaultTimeout {
		t.Errorf("Expected timeout default, got %d", cfg.Providers.Google.APITimeoutSeconds)
	}
	if cfg.LogFormat != "json" {
		t.Errorf("Expected log format default, got %q", cfg.LogFormat)
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(configPath, []byte("{not json"), 0600); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	if _, err := Load(configPath); err == nil {
		t.Fatal("Expected parse error for invalid JSON")
	}
}

func TestApplyEnv_OverridesFileValues(t *testing.T) {
	t.Setenv("API_KEY", "env-key")
	t.Setenv("IG_LOG_LEVEL", "debug")
	t.Setenv("GEMINI_TEMPERATURE", "0.9")

	cfg := Default()
	cfg.Providers.Google.APIKey = "file-key"

	if err := ApplyEnv(&cfg, filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Fatalf("ApplyEnv() error: %v", err)
	}

	if cfg.Providers.Google.APIKey != "env-key" {
		t.Errorf("Expected env api key, got %q", cfg.Providers.Google.APIKey)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("Expected log level 'debug', got %q", cfg.LogLevel)
	}
	if cfg.Providers.Google.Temperature != 0.9 {
		t.Errorf("Expected temperature 0.9, got %f", cfg.Providers.Google.Temperature)
	}
}

func TestApplyEnv_LoadsDotenvFile(t *testing.T) {
	const key = "GEMINI_MODEL"
	if _, exists := os.LookupEnv(key); exists {
		t.Skipf("%s already set in the environment", key)
	}
	t.Cleanup(func() { _ = os.Unsetenv(key) })

	dotenv := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(dotenv, []byte(key+"=gemini-from-dotenv\n"), 0600); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	cfg := Default()
	if err := ApplyEnv(&cfg, dotenv); err != nil {
		t.Fatalf("ApplyEnv() error: %v", err)
	}

	if cfg.Providers.Google.Model != "gemini-from-dotenv" {
		t.Errorf("Expected model from dotenv, got %q", cfg.Providers.Google.Model)
	}
}

func TestApplyEnv_InvalidNumber(t *testing.T) {
	t.Setenv("GEMINI_MAX_TOKENS", "lots")

	cfg := Default()
	if err := ApplyEnv(&cfg, filepath.Join(t.TempDir(), "missing.env")); err == nil {
		t.Fatal("Expected error for non-numeric GEMINI_MAX_TOKENS")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid google",
			mutate: func(c *Config) { c.Providers.Google.APIKey = "k" },
		},
		{
			name: "valid openai",
			mutate: func(c *Config) {
				c.LLMProvider = ProviderOpenAI
				c.Providers.OpenAI.APIKey = "k"
			},
		},
		{
			name:    "missing key",
			mutate:  func(c *Config) {},
			wantErr: "api key not found",
		},
		{
			name:    "whitespace key",
			mutate:  func(c *Config) { c.Providers.Google.APIKey = "   " },
			wantErr: "api key not found",
		},
		{
			name: "unsupported provider",
			mutate: func(c *Config) {
				c.LLMProvider = "palm"
				c.Providers.Google.APIKey = "k"
			},
			wantErr: "unsupported LLM provider",
		},
		{
			name: "temperature out of range",
			mutate: func(c *Config) {
				c.Providers.Google.APIKey = "k"
				c.Providers.Google.Temperature = 3
			},
			wantErr: "temperature must be between 0 and 2",
		},
		{
			name: "non-positive timeout",
			mutate: func(c *Config) {
				c.Providers.Google.APIKey = "k"
				c.Providers.Google.APITimeoutSeconds = 0
			},
			wantErr: "api_timeout_seconds must be positive",
		},
		{
			name: "negative max tokens",
			mutate: func(c *Config) {
				c.LLMProvider = ProviderOpenAI
				c.Providers.OpenAI.APIKey = "k"
				c.Providers.OpenAI.MaxTokens = -1
			},
			wantErr: "max_tokens must not be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Validate() error %q does not contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestValidate_MissingKeyIsSentinel(t *testing.T) {
	cfg := Default()
	cfg.Providers.Google.Temperature = 5

	err := cfg.Validate()
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("Expected ErrMissingAPIKey in %v", err)
	}
	if !strings.Contains(err.Error(), "temperature") {
		t.Fatalf("Expected aggregated temperature error, got %v", err)
	}
}

func TestAPIKeyAndSetModel_FollowActiveProvider(t *testing.T) {
	cfg := Default()
	cfg.Providers.Google.APIKey = "g"
	cfg.Providers.OpenAI.APIKey = "o"

	if cfg.APIKey() != "g" {
		t.Errorf("Expected google key, got %q", cfg.APIKey())
	}
	cfg.SetModel("gemini-2.5-flash")
	if cfg.Providers.Google.Model != "gemini-2.5-flash" {
		t.Errorf("Expected google model override, got %q", cfg.Providers.Google.Model)
	}

	cfg.LLMProvider = ProviderOpenAI
	if cfg.APIKey() != "o" {
		t.Errorf("Expected openai key, got %q", cfg.APIKey())
	}
	cfg.SetModel("  ")
	if cfg.Providers.OpenAI.Model != defaultOpenAIModel {
		t.Errorf("Expected blank override to be ignored, got %q", cfg.Providers.OpenAI.Model)
	}
}
