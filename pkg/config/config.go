// Package config provides unified configuration for the bote relay.
//
// Configuration is loaded with a layered approach:
//  1. Built-in defaults
//  2. .env file in the working directory (via godotenv)
//  3. YAML config file (discovered or explicitly specified)
//  4. Environment variable overrides (BOTE_ prefix plus the conventional
//     GROQ_API_KEY / GEMINI_API_KEY / GOOGLE_* names)
//  5. File reference resolution (_file suffix fields)
//  6. Validation
package config

import "time"

// Provider names selectable via provider / BOTE_PROVIDER.
const (
	ProviderGroq   = "groq"
	ProviderGemini = "gemini"
)

// Config holds all configuration for the bote relay.
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Provider      string              `yaml:"provider"` // "groq" or "gemini", default: "groq"
	Groq          GroqConfig          `yaml:"groq"`
	Gemini        GeminiConfig        `yaml:"gemini"`
	Logging       LoggingConfig       `yaml:"logging"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         int           `yaml:"port"`          // default: 8080
	ReadTimeout  time.Duration `yaml:"read_timeout"`  // default: 30s
	WriteTimeout time.Duration `yaml:"write_timeout"` // default: 120s
}

// GroqConfig holds settings for the OpenAI-compatible upstream.
type GroqConfig struct {
	BaseURL    string `yaml:"base_url"`     // default: https://api.groq.com/openai/v1
	APIKey     string `yaml:"api_key"`      // optional; requests fail with a configuration error without it
	APIKeyFile string `yaml:"api_key_file"` // _file variant for api_key
	Model      string `yaml:"model"`        // default model name
}

// GeminiConfig holds settings for the Generative-Language upstream.
// Credential material is resolved in strict priority order: api_key, then
// service_account_json, then credentials_file.
type GeminiConfig struct {
	BaseURL            string `yaml:"base_url"`             // default: https://generativelanguage.googleapis.com/v1beta
	APIKey             string `yaml:"api_key"`              // literal API key (highest priority)
	APIKeyFile         string `yaml:"api_key_file"`         // _file variant for api_key
	ServiceAccountJSON string `yaml:"service_account_json"` // inline service-account key JSON
	CredentialsFile    string `yaml:"credentials_file"`     // path to a service-account key file
	Model              string `yaml:"model"`                // default model name
}

// LoggingConfig holds debug category and log level settings.
type LoggingConfig struct {
	Debug string `yaml:"debug"` // comma-separated debug categories
	Level string `yaml:"level"` // ERROR, WARN, INFO, DEBUG, TRACE
}

// ObservabilityConfig holds monitoring and instrumentation settings.
type ObservabilityConfig struct {
	Metrics MetricsConfig `yaml:"metrics"`
}

// MetricsConfig holds Prometheus metrics endpoint settings.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"` // default: true
	Path    string `yaml:"path"`    // default: "/metrics"
}

// Defaults returns a Config with all default values filled in.
func Defaults() Config {
	return Config{
		Server: ServerConfig{
			Port:         8080,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 120 * time.Second,
		},
		Provider: ProviderGroq,
		Groq: GroqConfig{
			BaseURL: "https://api.groq.com/openai/v1",
			Model:   "llama-3.3-70b-versatile",
		},
		Gemini: GeminiConfig{
			BaseURL: "https://generativelanguage.googleapis.com/v1beta",
			Model:   "gemini-2.0-flash",
		},
		Observability: ObservabilityConfig{
			Metrics: MetricsConfig{
				Enabled: true,
				Path:    "/metrics",
			},
		},
	}
}
