// Package config loads the walletforms CLI settings from a TOML file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

var (
	ErrFailedToLoadConfig     = errors.New("failed to load config")
	ErrFailedToValidateConfig = errors.New("failed to validate config")
)

// LogFormat is the logging output format.
type LogFormat string

// LogLevel is the logging verbosity.
type LogLevel string

const (
	LogFormatText LogFormat = "text"
	LogFormatJSON LogFormat = "json"

	LogLevelTrace LogLevel = "trace"
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// IsValid reports whether f is a known format.
func (f LogFormat) IsValid() bool {
	return f == LogFormatText || f == LogFormatJSON
}

// IsValid reports whether l is a known level.
func (l LogLevel) IsValid() bool {
	switch l {
	case LogLevelTrace, LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
		return true
	default:
		return false
	}
}

// LoggingConfig controls the CLI logger.
type LoggingConfig struct {
	Format LogFormat `toml:"format"`
	Level  LogLevel  `toml:"level"`
}

// FieldsetsConfig lists extra fieldset directories loaded after the
// embedded catalog.
type FieldsetsConfig struct {
	Dirs []string `toml:"dirs,omitempty"`
}

// I18nConfig lists extra locale directories and the fallback locale.
type I18nConfig struct {
	Dirs     []string `toml:"dirs,omitempty"`
	Fallback string   `toml:"fallback"`
}

// Config is the complete CLI configuration.
type Config struct {
	Locale    string          `toml:"locale"`
	Logging   LoggingConfig   `toml:"logging"`
	Fieldsets FieldsetsConfig `toml:"fieldsets"`
	I18n      I18nConfig      `toml:"i18n"`
}

// Default returns the settings used when no file is given.
func Default() *Config {
	return &Config{
		Locale: "en",
		Logging: LoggingConfig{
			Format: LogFormatText,
			Level:  LogLevelInfo,
		},
		I18n: I18nConfig{Fallback: "en"},
	}
}

// Load reads and validates the TOML file at path. Relative directories in
// the file are resolved against the file's own directory.
func Load(path string) (*Config, error) {
	if ext := filepath.Ext(path); ext != ".toml" {
		return nil, fmt.Errorf("%w: unsupported format %q, only .toml is supported", ErrFailedToLoadConfig, ext)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedToLoadConfig, err)
	}
	cfg, err := LoadBytes(data)
	if err != nil {
		return nil, err
	}
	base := filepath.Dir(path)
	cfg.Fieldsets.Dirs = resolveDirs(base, cfg.Fieldsets.Dirs)
	cfg.I18n.Dirs = resolveDirs(base, cfg.I18n.Dirs)
	return cfg, nil
}

// LoadBytes parses TOML on top of Default and validates the result. Unknown
// keys are rejected.
func LoadBytes(data []byte) (*Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedToLoadConfig, err)
	}
	cfg.Locale = strings.TrimSpace(cfg.Locale)
	cfg.Logging.Format = LogFormat(strings.ToLower(strings.TrimSpace(string(cfg.Logging.Format))))
	cfg.Logging.Level = LogLevel(strings.ToLower(strings.TrimSpace(string(cfg.Logging.Level))))
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every setting and reports all problems at once.
func (c *Config) Validate() error {
	var errz []error
	if c.Locale == "" {
		errz = append(errz, errors.New("locale is empty"))
	}
	if !c.Logging.Format.IsValid() {
		errz = append(errz, fmt.Errorf("unknown log format %q", c.Logging.Format))
	}
	if !c.Logging.Level.IsValid() {
		errz = append(errz, fmt.Errorf("unknown log level %q", c.Logging.Level))
	}
	for _, dir := range append(append([]string{}, c.Fieldsets.Dirs...), c.I18n.Dirs...) {
		if strings.TrimSpace(dir) == "" {
			errz = append(errz, errors.New("empty directory entry"))
		}
	}
	if len(errz) > 0 {
		return fmt.Errorf("%w: %w", ErrFailedToValidateConfig, errors.Join(errz...))
	}
	return nil
}

// String renders the configuration as TOML.
func (c *Config) String() string {
	out, err := toml.Marshal(c)
	if err != nil {
		return fmt.Sprintf("config: %v", err)
	}
	return string(out)
}

func resolveDirs(base string, dirs []string) []string {
	if len(dirs) == 0 {
		return dirs
	}
	out := make([]string, len(dirs))
	for i, dir := range dirs {
		if filepath.IsAbs(dir) {
			out[i] = dir
			continue
		}
		out[i] = filepath.Join(base, dir)
	}
	return out
}
