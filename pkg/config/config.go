// Package config loads casegen settings from a .env file, an optional TOML
// file and the process environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// DefaultModel is the Gemini model used when GEMINI_MODEL is unset.
const DefaultModel = "gemini-1.5-flash"

// ErrMissingAPIKey is returned when GOOGLE_API_KEY is unset or blank.
var ErrMissingAPIKey = errors.New("required but not set")

// Config is the casegen runtime configuration.
type Config struct {
	// APIKey authenticates calls to the Gemini API.
	APIKey string `env:"GOOGLE_API_KEY"`

	// Model is the Gemini model name (e.g., "gemini-1.5-flash")
	Model string `env:"GEMINI_MODEL" envDefault:"gemini-1.5-flash"`

	// Address to listen on (e.g., ":8080")
	ListenAddr string `env:"LISTEN_ADDR" envDefault:":8080"`

	// SessionTTL is how long an idle browser session keeps its chat history.
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"24h"`

	// GenerationInterval is the minimum gap between two upstream calls.
	// Zero disables pacing.
	GenerationInterval time.Duration `env:"GENERATION_INTERVAL" envDefault:"0s"`

	// MaxUploadMB caps the size of one submit request body.
	MaxUploadMB int `env:"MAX_UPLOAD_MB" envDefault:"32"`

	Debug     bool   `env:"DEBUG" envDefault:"false"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"console"`
}

// ConfigurationError reports a missing or invalid setting. It is fatal at startup.
type ConfigurationError struct {
	Field string
	Err   error
}

func (e *ConfigurationError) Error() string {
	if e.Field == "" {
		return "invalid configuration: " + e.Err.Error()
	}
	return fmt.Sprintf("invalid configuration: %s: %v", e.Field, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// Load reads an optional .env file from the working directory, then the TOML
// file at path (if non-empty), then the process environment. Environment
// variables win over file values, which win over defaults.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, &ConfigurationError{Field: ".env", Err: err}
	}

	environ := map[string]string{}
	if path != "" {
		fileVars, err := readFile(path)
		if err != nil {
			return nil, &ConfigurationError{Field: path, Err: err}
		}
		maps.Copy(environ, fileVars)
	}
	maps.Copy(environ, env.ToMap(os.Environ()))

	return FromEnvironment(environ)
}

// FromEnvironment parses and validates a Config from an explicit variable map.
func FromEnvironment(environ map[string]string) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, env.Options{Environment: environ}); err != nil {
		return nil, &ConfigurationError{Err: err}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the settings that env parsing cannot express.
func (c *Config) Validate() error {
	c.APIKey = strings.TrimSpace(c.APIKey)
	if c.APIKey == "" {
		return &ConfigurationError{Field: "GOOGLE_API_KEY", Err: ErrMissingAPIKey}
	}
	if strings.TrimSpace(c.Model) == "" {
		return &ConfigurationError{Field: "GEMINI_MODEL", Err: errors.New("must not be empty")}
	}
	if c.SessionTTL <= 0 {
		return &ConfigurationError{Field: "SESSION_TTL", Err: fmt.Errorf("must be positive, got %s", c.SessionTTL)}
	}
	if c.GenerationInterval < 0 {
		return &ConfigurationError{Field: "GENERATION_INTERVAL", Err: fmt.Errorf("must not be negative, got %s", c.GenerationInterval)}
	}
	if c.MaxUploadMB <= 0 {
		return &ConfigurationError{Field: "MAX_UPLOAD_MB", Err: fmt.Errorf("must be positive, got %d", c.MaxUploadMB)}
	}
	return nil
}

// BodyLimit is MaxUploadMB in bytes.
func (c *Config) BodyLimit() int {
	return c.MaxUploadMB << 20
}

// readFile flattens a TOML file into environment-style variables:
// `gemini_model = "x"` becomes GEMINI_MODEL=x.
func readFile(path string) (map[string]string, error) {
	var raw map[string]any
	if _, err := toml.DecodeFile(path, &raw); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	vars := make(map[string]string, len(raw))
	for key, value := range raw {
		switch v := value.(type) {
		case string:
			vars[strings.ToUpper(key)] = v
		case int64, float64, bool:
			vars[strings.ToUpper(key)] = fmt.Sprint(v)
		default:
			return nil, fmt.Errorf("key %q: unsupported value type %T", key, value)
		}
	}

	return vars, nil
}
