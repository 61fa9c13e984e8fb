// Package auth stores the JIRA credential used by the client.
package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/natefinch/atomic"
)

const (
	credFileName = "credentials.json"

	// EnvToken overrides any stored credential.
	EnvToken = "JIRAGLANCE_TOKEN"
)

// TokenInfo is a JIRA credential: either "email:api-token" (Basic) or a
// personal access token (Bearer).
type TokenInfo struct {
	Token     string    `json:"token"`
	Source    string    `json:"source"`     // "env" | "file"
	CreatedAt time.Time `json:"created_at"` // when we saved to file
}

// Vault reads and writes the credential file in Dir.
type Vault struct {
	Dir    string
	Getenv func(string) string
}

func (v Vault) path() (string, error) {
	if v.Dir == "" {
		return "", errors.New("no credentials directory")
	}
	return filepath.Join(v.Dir, credFileName), nil
}

func (v Vault) getenv(k string) string {
	if v.Getenv == nil {
		return os.Getenv(k)
	}
	return v.Getenv(k)
}

// Get returns the active credential, or nil when none is configured.
func (v Vault) Get() (*TokenInfo, error) {
	// 1) env override
	if env := strings.TrimSpace(v.getenv(EnvToken)); env != "" {
		return &TokenInfo{Token: stripBearer(env), Source: "env"}, nil
	}

	// 2) file
	p, err := v.path()
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil // not logged in
		}
		return nil, fmt.Errorf("read credentials: %w", err)
	}
	var ti TokenInfo
	if err := json.Unmarshal(b, &ti); err != nil {
		return nil, fmt.Errorf("parse credentials: %w", err)
	}
	ti.Token = stripBearer(ti.Token)
	return &ti, nil
}

// Token returns the active token or "" when not logged in.
func (v Vault) Token() (string, error) {
	ti, err := v.Get()
	if err != nil || ti == nil {
		return "", err
	}
	return ti.Token, nil
}

// Set stores token in the credential file (mode 0600).
func (v Vault) Set(token string, now time.Time) error {
	token = stripBearer(strings.TrimSpace(token))
	if token == "" {
		return errors.New("empty token")
	}
	p, err := v.path()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(v.Dir, 0o700); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	ti := TokenInfo{
		Token:     token,
		Source:    "file",
		CreatedAt: now,
	}
	b, err := json.MarshalIndent(ti, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	if err := atomic.WriteFile(p, strings.NewReader(string(b))); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	// atomic.WriteFile keeps the mode of an existing file.
	if err := os.Chmod(p, 0o600); err != nil {
		return fmt.Errorf("chmod: %w", err)
	}
	return nil
}

// Delete removes the credential file; a missing file is not an error.
func (v Vault) Delete() error {
	p, err := v.path()
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("remove: %w", err)
	}
	return nil
}

func stripBearer(s string) string {
	if strings.HasPrefix(strings.ToLower(s), "bearer ") {
		return strings.TrimSpace(s[7:])
	}
	return s
}
