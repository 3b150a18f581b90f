// Package config provides layered configuration for the csv2json binary.
//
// Values are resolved in this order, later layers winning:
//
//  1. Defaults()
//  2. a YAML file, when a path is given
//  3. a .env file in the working directory, when present
//  4. CSV2JSON_* environment variables
//
// CLI flags are applied on top by the caller. The result is validated before
// it is returned, so a bad value fails at startup rather than mid-request.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "CSV2JSON_"

// Config holds all application configuration.
type Config struct {
	Log    LogConfig    `yaml:"log" json:"log"`
	Server ServerConfig `yaml:"server" json:"server"`
	Output OutputConfig `yaml:"output" json:"output"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	// Level is debug, info, warn or error (default: info)
	Level string `yaml:"level" json:"level" validate:"oneof=debug info warn error"`

	// Format is console or json (default: console)
	Format string `yaml:"format" json:"format" validate:"oneof=console json"`
}

// ServerConfig holds HTTP service settings.
type ServerConfig struct {
	// Addr is the listen address (default: :8080)
	Addr string `yaml:"addr" json:"addr" validate:"required"`

	// MaxBodyBytes caps the request body size (default: 10MB)
	MaxBodyBytes int64 `yaml:"max_body_bytes" json:"max_body_bytes" validate:"gt=0"`

	// AllowedOrigins lists CORS origins; empty or "*" allows any (default: *)
	AllowedOrigins []string `yaml:"allowed_origins" json:"allowed_origins"`

	// ReadHeaderTimeout bounds the time to read request headers (default: 10s)
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout" json:"read_header_timeout" validate:"gt=0"`

	// ShutdownTimeout bounds graceful shutdown (default: 15s)
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" json:"shutdown_timeout" validate:"gt=0"`
}

// OutputConfig holds rendering and file output settings.
type OutputConfig struct {
	// Format is json or yaml (default: json)
	Format string `yaml:"format" json:"format" validate:"oneof=json yaml"`

	// Indent is the JSON indent width in spaces (default: 2)
	Indent int `yaml:"indent" json:"indent" validate:"gte=0,lte=8"`

	// Dir is where saved files are written (default: current directory)
	Dir string `yaml:"dir" json:"dir"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		Server: ServerConfig{
			Addr:              ":8080",
			MaxBodyBytes:      10 << 20,
			AllowedOrigins:    []string{"*"},
			ReadHeaderTimeout: 10 * time.Second,
			ShutdownTimeout:   15 * time.Second,
		},
		Output: OutputConfig{
			Format: "json",
			Indent: 2,
			Dir:    ".",
		},
	}
}

// Load resolves the configuration. path may be empty to skip the YAML file.
func Load(path string) (Config, error) {
	cfg := Defaults()

	if path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := loadDotEnv(".env"); err != nil {
		return Config{}, err
	}

	cfg = applyEnv(cfg, Env().Prefix(EnvPrefix))

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// loadFile decodes the YAML file at path over cfg.
func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// loadDotEnv loads KEY=VALUE pairs from path without overriding variables
// already set in the environment. A missing file is not an error.
func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("load %s: %w", path, err)
}

// applyEnv overlays environment variables read through env onto cfg.
func applyEnv(cfg Config, env Conf) Config {
	logEnv := env.Prefix("LOG_")
	cfg.Log.Level = strings.ToLower(logEnv.MayString("LEVEL", cfg.Log.Level))
	cfg.Log.Format = strings.ToLower(logEnv.MayString("FORMAT", cfg.Log.Format))

	srvEnv := env.Prefix("SERVER_")
	cfg.Server.Addr = srvEnv.MayString("ADDR", cfg.Server.Addr)
	cfg.Server.MaxBodyBytes = srvEnv.MayInt64("MAX_BODY_BYTES", cfg.Server.MaxBodyBytes)
	cfg.Server.AllowedOrigins = srvEnv.MayList("ALLOWED_ORIGINS", cfg.Server.AllowedOrigins)
	cfg.Server.ReadHeaderTimeout = srvEnv.MayDuration("READ_HEADER_TIMEOUT", cfg.Server.ReadHeaderTimeout)
	cfg.Server.ShutdownTimeout = srvEnv.MayDuration("SHUTDOWN_TIMEOUT", cfg.Server.ShutdownTimeout)

	outEnv := env.Prefix("OUTPUT_")
	cfg.Output.Format = strings.ToLower(outEnv.MayString("FORMAT", cfg.Output.Format))
	cfg.Output.Indent = outEnv.MayInt("INDENT", cfg.Output.Indent)
	cfg.Output.Dir = outEnv.MayString("DIR", cfg.Output.Dir)

	return cfg
}

// ValidationError lists every invalid field, keyed by its dotted yaml path.
type ValidationError struct {
	Fields map[string]string
}

// Error returns the field messages sorted by field name.
func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = e.Fields[name]
	}
	return "invalid config: " + strings.Join(parts, "; ")
}
