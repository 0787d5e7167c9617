// Package config loads runtime configuration for the chat CLI from YAML,
// .env files, and the process environment.
package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/andreinakagawa/agentic-ai-basic-cli/session"
)

// envVarPattern matches ${VAR_NAME} or $VAR_NAME in config values.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}|\$([A-Z_][A-Z0-9_]*)`)

// Config is the full CLI configuration. Session fields mirror
// session.Config; the remainder selects and parameterizes the agent backend.
type Config struct {
	ContextWindow     int     `yaml:"context_window"`
	CleanupThreshold  float64 `yaml:"cleanup_threshold"`
	CleanupTarget     float64 `yaml:"cleanup_target"`
	MinMessagesToKeep int     `yaml:"min_messages_to_keep"`

	// Agent selects the collaborator backend: "mock" or "anthropic".
	Agent        string `yaml:"agent"`
	Model        string `yaml:"model"`
	SystemPrompt string `yaml:"system_prompt"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
}

func DefaultConfig() *Config {
	return &Config{
		ContextWindow:     session.DefaultContextWindow,
		CleanupThreshold:  session.DefaultCleanupThreshold,
		CleanupTarget:     session.DefaultCleanupTarget,
		MinMessagesToKeep: session.DefaultMinMessagesToKeep,
		Agent:             "mock",
		LogLevel:          "info",
	}
}

// LoadFromFile reads and parses a YAML configuration file. .env files are
// loaded first and ${VAR} references in the YAML are expanded before parsing.
func LoadFromFile(path string) (*Config, error) {
	loadEnvFiles()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	expanded := expandEnvVars(string(data))
	return Parse([]byte(expanded))
}

// Load resolves configuration without a file: defaults plus .env and
// environment overrides.
func Load() *Config {
	loadEnvFiles()
	cfg := DefaultConfig()
	applyEnvOverrides(cfg)
	return cfg
}

// Parse parses YAML bytes into a Config. Starts with defaults and overlays
// values from the YAML, then applies environment overrides.
func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("mapping config: %w", err)
	}
	applyEnvOverrides(cfg)
	return cfg, nil
}

// FindConfigFile searches for config files in standard locations.
func FindConfigFile() string {
	candidates := []string{
		"agentic.yaml",
		"agentic.yml",
		"configs/agentic.yaml",
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// Session converts the loaded values into a validated session configuration.
func (c *Config) Session() (session.Config, error) {
	sc := session.Config{
		ContextWindow:     c.ContextWindow,
		CleanupThreshold:  c.CleanupThreshold,
		CleanupTarget:     c.CleanupTarget,
		MinMessagesToKeep: c.MinMessagesToKeep,
	}
	if err := sc.Validate(); err != nil {
		return session.Config{}, err
	}
	return sc, nil
}

// Validate checks backend selection on top of session-level validation.
func (c *Config) Validate() error {
	if _, err := c.Session(); err != nil {
		return err
	}
	switch c.Agent {
	case "mock", "anthropic":
	default:
		return fmt.Errorf("%w: unknown agent backend %q", session.ErrInvalidConfig, c.Agent)
	}
	return nil
}

// loadEnvFiles loads .env files from standard locations.
func loadEnvFiles() {
	for _, f := range []string{".env", ".env.local"} {
		// godotenv.Load does NOT overwrite existing env vars.
		_ = godotenv.Load(f)
	}
}

// expandEnvVars replaces ${VAR} and $VAR references in a string with their
// environment variable values. Unset references are left as-is.
func expandEnvVars(input string) string {
	return envVarPattern.ReplaceAllStringFunc(input, func(match string) string {
		var varName string
		if strings.HasPrefix(match, "${") {
			varName = match[2 : len(match)-1]
		} else {
			varName = match[1:]
		}
		if val, ok := os.LookupEnv(varName); ok {
			return val
		}
		return match
	})
}

// applyEnvOverrides lets the environment win over file values for the
// settings usually flipped per invocation.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("AGENTIC_AGENT"); v != "" {
		cfg.Agent = v
	}
	if v := os.Getenv("AGENTIC_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("AGENTIC_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
}
