package jsonstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"
	"github.com/tailscale/hujson"

	"github.com/idilsaglam/jiraglance/internal/model"
)

// JSON-backed settings storage. One small file, human-editable (comments and
// trailing commas are accepted), replaced atomically on save.

const dataFileName = "settings.json"

// Store persists model.Settings in a single file.
type Store struct {
	path string
}

// New returns a store backed by path. An empty path means DefaultPath().
func New(path string) (*Store, error) {
	if path == "" {
		p, err := DefaultPath(os.Getenv)
		if err != nil {
			return nil, err
		}
		path = p
	}
	return &Store{path: path}, nil
}

// DefaultPath is $XDG_CONFIG_HOME/jiraglance/settings.json, falling back to
// ~/.config/jiraglance/settings.json.
func DefaultPath(getenv func(string) string) (string, error) {
	if xdg := getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "jiraglance", dataFileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home: %w", err)
	}
	return filepath.Join(home, ".config", "jiraglance", dataFileName), nil
}

func (s *Store) Path() string { return s.path }

// Load returns the stored settings with defaults filled in for absent keys.
// A missing file yields the defaults.
func (s *Store) Load(ctx context.Context) (model.Settings, error) {
	out := model.DefaultSettings()
	if err := ctx.Err(); err != nil {
		return out, err
	}
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return out, nil
		}
		return out, fmt.Errorf("read file: %w", err)
	}
	if strings.TrimSpace(string(b)) == "" {
		return out, nil
	}
	std, err := hujson.Standardize(b)
	if err != nil {
		return model.DefaultSettings(), fmt.Errorf("parse %s: %w", s.path, err)
	}
	if err := json.Unmarshal(std, &out); err != nil {
		return model.DefaultSettings(), fmt.Errorf("json unmarshal: %w", err)
	}
	return out, nil
}

// Save writes settings, creating the parent directory if needed.
func (s *Store) Save(ctx context.Context, st model.Settings) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	b, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	b = append(b, '\n')
	if err := atomic.WriteFile(s.path, strings.NewReader(string(b))); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}
