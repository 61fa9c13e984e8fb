package auth

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noEnv(string) string { return "" }

func TestVault_RoundTrip(t *testing.T) {
	t.Parallel()
	v := Vault{Dir: filepath.Join(t.TempDir(), "jiraglance"), Getenv: noEnv}

	ti, err := v.Get()
	require.NoError(t, err)
	assert.Nil(t, ti)

	now := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, v.Set("Bearer abc123", now))

	ti, err = v.Get()
	require.NoError(t, err)
	require.NotNil(t, ti)
	assert.Equal(t, "abc123", ti.Token)
	assert.Equal(t, "file", ti.Source)
	assert.True(t, ti.CreatedAt.Equal(now))

	fi, err := os.Stat(filepath.Join(v.Dir, credFileName))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), fi.Mode().Perm())

	require.NoError(t, v.Delete())
	require.NoError(t, v.Delete())
	tok, err := v.Token()
	require.NoError(t, err)
	assert.Empty(t, tok)
}

func TestVault_EnvOverride(t *testing.T) {
	t.Parallel()
	v := Vault{Dir: t.TempDir(), Getenv: func(k string) string {
		if k == EnvToken {
			return " me@example.com:tok "
		}
		return ""
	}}
	require.NoError(t, v.Set("stored", time.Now()))

	ti, err := v.Get()
	require.NoError(t, err)
	assert.Equal(t, "env", ti.Source)
	assert.Equal(t, "me@example.com:tok", ti.Token)
}

func TestVault_SetEmpty(t *testing.T) {
	t.Parallel()
	v := Vault{Dir: t.TempDir(), Getenv: noEnv}
	assert.Error(t, v.Set("   ", time.Now()))
	assert.Error(t, Vault{}.Set("x", time.Now()))
}
