// Package config resolves jiraglance configuration from defaults, config
// files (JSON with comments), the environment and command-line overrides.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/tailscale/hujson"

	"github.com/idilsaglam/jiraglance/internal/jira"
)

var (
	ErrConfigInvalid = errors.New("invalid config")
	ErrBaseURLEmpty  = errors.New("base_url must not be empty")
)

// Config holds all configuration options.
type Config struct {
	BaseURL      string   `json:"base_url"`
	ProbeProject string   `json:"probe_project"`
	Statuses     []string `json:"statuses,omitempty"`
	Theme        string   `json:"theme,omitempty"`
	LogLevel     string   `json:"log_level,omitempty"`
	LogFile      string   `json:"log_file,omitempty"`
	RateLimit    float64  `json:"rate_limit,omitempty"`
	SettingsPath string   `json:"settings_path,omitempty"`

	// Sources tracks which config files were loaded; `check` prints them.
	Sources Sources `json:"-"`
}

// Sources tracks which config files were loaded.
type Sources struct {
	Global   string
	Explicit string
}

// DefaultStatuses are the choices offered by the popup's status selector.
var DefaultStatuses = []string{"Open", "In Progress", "Reopened", "Resolved", "Closed"}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		BaseURL:      jira.DefaultBaseURL,
		ProbeProject: "SUN",
		Statuses:     append([]string(nil), DefaultStatuses...),
		Theme:        "classic",
		LogLevel:     "info",
	}
}

// Overrides come from root flags; empty fields leave the config untouched.
type Overrides struct {
	BaseURL  string
	Theme    string
	LogLevel string
	LogFile  string
}

// LoadInput holds the inputs for Load.
type LoadInput struct {
	ConfigPath string            // --config flag value
	Env        map[string]string // environment variables
	Overrides  Overrides
}

// Load resolves configuration with the following precedence (highest wins):
// 1. Defaults
// 2. Global config ($XDG_CONFIG_HOME/jiraglance/config.json or ~/.config/jiraglance/config.json)
// 3. Explicit config file (--config)
// 4. Environment (JIRAGLANCE_BASE_URL, JIRAGLANCE_LOG_LEVEL)
// 5. Flag overrides.
func Load(in LoadInput) (Config, error) {
	cfg := Default()

	if p := GlobalPath(in.Env); p != "" {
		fileCfg, loaded, err := loadFile(p, false)
		if err != nil {
			return Config{}, err
		}
		if loaded {
			cfg = merge(cfg, fileCfg)
			cfg.Sources.Global = p
		}
	}

	if in.ConfigPath != "" {
		fileCfg, _, err := loadFile(in.ConfigPath, true)
		if err != nil {
			return Config{}, err
		}
		cfg = merge(cfg, fileCfg)
		cfg.Sources.Explicit = in.ConfigPath
	}

	if v := in.Env["JIRAGLANCE_BASE_URL"]; v != "" {
		cfg.BaseURL = v
	}
	if v := in.Env["JIRAGLANCE_LOG_LEVEL"]; v != "" {
		cfg.LogLevel = v
	}

	o := in.Overrides
	if o.BaseURL != "" {
		cfg.BaseURL = o.BaseURL
	}
	if o.Theme != "" {
		cfg.Theme = o.Theme
	}
	if o.LogLevel != "" {
		cfg.LogLevel = o.LogLevel
	}
	if o.LogFile != "" {
		cfg.LogFile = o.LogFile
	}

	if err := validate(cfg); err != nil {
		return Config{}, err
	}
	cfg.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")
	return cfg, nil
}

// Dir is the jiraglance config directory.
func Dir(env map[string]string) string {
	if xdg := env["XDG_CONFIG_HOME"]; xdg != "" {
		return filepath.Join(xdg, "jiraglance")
	}
	if home := env["HOME"]; home != "" {
		return filepath.Join(home, ".config", "jiraglance")
	}
	return ""
}

// GlobalPath returns the global config file path, or "" when no home
// directory can be determined.
func GlobalPath(env map[string]string) string {
	d := Dir(env)
	if d == "" {
		return ""
	}
	return filepath.Join(d, "config.json")
}

// loadFile reads a HuJSON config file. Missing files are an error only when
// required is set.
func loadFile(path string, required bool) (Config, bool, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return Config{}, false, nil
		}
		return Config{}, false, fmt.Errorf("read config: %w", err)
	}
	std, err := hujson.Standardize(b)
	if err != nil {
		return Config{}, false, fmt.Errorf("%w %s: %w", ErrConfigInvalid, path, err)
	}
	var cfg Config
	if err := json.Unmarshal(std, &cfg); err != nil {
		return Config{}, false, fmt.Errorf("%w %s: %w", ErrConfigInvalid, path, err)
	}
	return cfg, true, nil
}

func merge(base, over Config) Config {
	if over.BaseURL != "" {
		base.BaseURL = over.BaseURL
	}
	if over.ProbeProject != "" {
		base.ProbeProject = over.ProbeProject
	}
	if len(over.Statuses) > 0 {
		base.Statuses = over.Statuses
	}
	if over.Theme != "" {
		base.Theme = over.Theme
	}
	if over.LogLevel != "" {
		base.LogLevel = over.LogLevel
	}
	if over.LogFile != "" {
		base.LogFile = over.LogFile
	}
	if over.RateLimit != 0 {
		base.RateLimit = over.RateLimit
	}
	if over.SettingsPath != "" {
		base.SettingsPath = over.SettingsPath
	}
	return base
}

func validate(cfg Config) error {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return fmt.Errorf("%w: %w", ErrConfigInvalid, ErrBaseURLEmpty)
	}
	if cfg.RateLimit < 0 {
		return fmt.Errorf("%w: rate_limit must not be negative", ErrConfigInvalid)
	}
	if _, err := ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("%w: %w", ErrConfigInvalid, err)
	}
	return nil
}

// ParseLevel maps a log_level string onto a slog level.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if s == "" {
		return slog.LevelInfo, nil
	}
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log_level %q: %w", s, err)
	}
	return l, nil
}

// EnvMap snapshots the process environment.
func EnvMap() map[string]string {
	env := make(map[string]string)
	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if ok {
			env[k] = v
		}
	}
	return env
}
