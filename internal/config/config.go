// Package config loads makeflow's optional project settings from
// .makeflow.toml and the MAKEFLOW_* environment variables.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/felixgeelhaar/makeflow/internal/adapters/logging"
	"github.com/felixgeelhaar/makeflow/internal/ports"
)

// FileName is the settings file looked up in the working directory.
const FileName = ".makeflow.toml"

// Environment variables that override file settings.
const (
	EnvLogLevel  = "MAKEFLOW_LOG_LEVEL"
	EnvLogFormat = "MAKEFLOW_LOG_FORMAT"
	EnvStrict    = "MAKEFLOW_STRICT"
	EnvChdir     = "MAKEFLOW_CHDIR"
)

// Log formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config holds every setting that can come from a file or the environment.
type Config struct {
	Build BuildConfig `toml:"build"`
	Log   LogConfig   `toml:"log"`

	// Source is the file the settings were read from, empty for defaults.
	Source string `toml:"-"`
}

// BuildConfig controls loading and evaluation.
type BuildConfig struct {
	File          string `toml:"file"`
	Strict        bool   `toml:"strict"`
	Chdir         bool   `toml:"chdir"`
	FailOnMissing bool   `toml:"fail_on_missing"`
}

// LogConfig controls the console logger.
type LogConfig struct {
	Level      string `toml:"level"`
	Format     string `toml:"format"`
	Timestamps bool   `toml:"timestamps"`
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		Log: LogConfig{
			Level:  "info",
			Format: FormatText,
		},
	}
}

// Parse decodes settings from TOML on top of the defaults. Unknown keys are
// rejected.
func Parse(path string, data []byte) (Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, NewParseError(path, err)
	}
	cfg.Source = path
	return cfg, nil
}

// ApplyEnv overrides settings from the environment. Unset or unparsable
// boolean variables are ignored.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := strings.TrimSpace(getenv(EnvLogLevel)); v != "" {
		c.Log.Level = v
	}
	if v := strings.TrimSpace(getenv(EnvLogFormat)); v != "" {
		c.Log.Format = v
	}
	if v, ok := parseBool(getenv(EnvStrict)); ok {
		c.Build.Strict = v
	}
	if v, ok := parseBool(getenv(EnvChdir)); ok {
		c.Build.Chdir = v
	}
}

// Validate checks the values that have a fixed set of choices.
func (c Config) Validate() error {
	errs := NewErrorList()
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		errs.AddValidation("log.level", err.Error(), "Use one of debug, info, warn or error")
	}
	switch strings.ToLower(c.Log.Format) {
	case FormatText, FormatJSON:
	default:
		errs.AddValidation("log.format", fmt.Sprintf("unknown format %q", c.Log.Format), "Use text or json")
	}
	return errs.Err()
}

// LogLevel returns the parsed log level.
func (c Config) LogLevel() ports.Level {
	level, _ := logging.ParseLevel(c.Log.Level)
	return level
}

// JSONLogs reports whether logs are written as JSON.
func (c Config) JSONLogs() bool {
	return strings.EqualFold(c.Log.Format, FormatJSON)
}

// Loader reads the settings file through a FileSystem.
type Loader struct {
	fs     ports.FileSystem
	getenv func(string) string
}

// NewLoader creates a Loader that reads files from fs and the environment
// from getenv.
func NewLoader(fs ports.FileSystem, getenv func(string) string) *Loader {
	return &Loader{fs: fs, getenv: getenv}
}

// Load reads the settings. An empty path looks for FileName in dir and falls
// back to the defaults when it is absent; an explicit path must exist. The
// environment is applied last and the result is validated.
func (l *Loader) Load(dir, path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = ports.ResolvePath(dir, FileName)
	} else {
		path = ports.ResolvePath(dir, path)
	}

	switch {
	case l.fs.Exists(path):
		data, err := l.fs.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read %s: %w", path, err)
		}
		cfg, err = Parse(path, data)
		if err != nil {
			return Config{}, err
		}
	case explicit:
		return Config{}, NewConfigNotFoundError(path)
	}

	if l.getenv != nil {
		cfg.ApplyEnv(l.getenv)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func parseBool(raw string) (bool, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false, false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return v, true
}

// IsUserError reports whether err carries a configuration UserError.
func IsUserError(err error) bool {
	var ue *UserError
	if errors.As(err, &ue) {
		return true
	}
	var list *ErrorList
	return errors.As(err, &list)
}
