package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Load loads configuration from a layered set of sources.
//
// The loading order is:
//  1. Built-in defaults
//  2. .env file in the working directory (does not override existing env)
//  3. YAML config file (explicit path, BOTE_CONFIG env, ./config.yaml, /etc/bote/config.yaml)
//  4. Environment variable overrides
//  5. File reference resolution (_file suffix)
//  6. Validation
func Load(configPath string) (*Config, error) {
	// Start with defaults.
	cfg := Defaults()

	// Pull a local .env into the process environment before reading any
	// env vars. A missing file is not an error.
	_ = godotenv.Load()

	// Discover and load YAML config file.
	filePath := discoverConfigFile(configPath)
	if filePath != "" {
		if err := loadYAMLFile(filePath, &cfg); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", filePath, err)
		}
	}

	// Apply environment variable overrides.
	applyEnvOverrides(&cfg)

	// Resolve _file references.
	if err := resolveFileReferences(&cfg); err != nil {
		return nil, fmt.Errorf("resolving file references: %w", err)
	}

	// Validate.
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return &cfg, nil
}

// discoverConfigFile finds the config file path using the discovery order:
// 1. Explicit configPath argument
// 2. BOTE_CONFIG environment variable
// 3. ./config.yaml in the current directory
// 4. /etc/bote/config.yaml
//
// Returns empty string if no config file is found.
func discoverConfigFile(configPath string) string {
	// Explicit path takes priority.
	if configPath != "" {
		return configPath
	}

	// Check BOTE_CONFIG env var.
	if envPath := os.Getenv("BOTE_CONFIG"); envPath != "" {
		return envPath
	}

	// Check common locations.
	candidates := []string{
		"config.yaml",
		"/etc/bote/config.yaml",
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// loadYAMLFile reads and parses a YAML file into the Config struct.
// Fields not present in the YAML retain their current (default) values.
func loadYAMLFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// applyEnvOverrides maps environment variables to config fields. BOTE_*
// names cover the relay's own surface; the conventional provider variable
// names (GROQ_API_KEY, GEMINI_API_KEY, GOOGLE_SERVICE_ACCOUNT_JSON,
// GOOGLE_APPLICATION_CREDENTIALS) are honored as well so the relay works
// with the environment shape these providers document.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("BOTE_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("BOTE_PROVIDER"); v != "" {
		cfg.Provider = strings.ToLower(strings.TrimSpace(v))
	}

	if v := os.Getenv("BOTE_GROQ_BASE_URL"); v != "" {
		cfg.Groq.BaseURL = v
	}
	if v := os.Getenv("GROQ_API_KEY"); v != "" {
		cfg.Groq.APIKey = v
	}
	if v := os.Getenv("BOTE_GROQ_MODEL"); v != "" {
		cfg.Groq.Model = v
	}

	if v := os.Getenv("BOTE_GEMINI_BASE_URL"); v != "" {
		cfg.Gemini.BaseURL = v
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		cfg.Gemini.APIKey = v
	}
	if v := os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"); v != "" {
		cfg.Gemini.ServiceAccountJSON = v
	}
	if v := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); v != "" {
		cfg.Gemini.CredentialsFile = v
	}
	if v := os.Getenv("BOTE_GEMINI_MODEL"); v != "" {
		cfg.Gemini.Model = v
	}

	if v := os.Getenv("BOTE_DEBUG"); v != "" {
		cfg.Logging.Debug = v
	}
	if v := os.Getenv("BOTE_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}

// resolveFileReferences reads _file fields and populates the corresponding
// value fields. For each field ending in _file, if the value field is empty
// and the file field is set, the file is read, whitespace is trimmed, and
// the value field is populated.
//
// gemini.credentials_file is deliberately not resolved here: it names a
// service-account key file whose readability is checked lazily by the
// credential resolver, where a broken file degrades to "no credentials"
// instead of failing startup.
func resolveFileReferences(cfg *Config) error {
	// groq.api_key_file -> groq.api_key
	if cfg.Groq.APIKeyFile != "" && cfg.Groq.APIKey == "" {
		val, err := readSecretFile(cfg.Groq.APIKeyFile)
		if err != nil {
			return fmt.Errorf("groq.api_key_file: %w", err)
		}
		cfg.Groq.APIKey = val
	}

	// gemini.api_key_file -> gemini.api_key
	if cfg.Gemini.APIKeyFile != "" && cfg.Gemini.APIKey == "" {
		val, err := readSecretFile(cfg.Gemini.APIKeyFile)
		if err != nil {
			return fmt.Errorf("gemini.api_key_file: %w", err)
		}
		cfg.Gemini.APIKey = val
	}

	return nil
}

// readSecretFile reads a file and returns its content with surrounding whitespace trimmed.
func readSecretFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
