package jsonstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/jiraglance/internal/model"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "nested", dataFileName))
	require.NoError(t, err)
	return s
}

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	t.Parallel()
	got, err := newStore(t).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.Settings{Project: "Sunshine", User: "nyx.linden"}, got)
}

func TestLoad_DefaultsMergedUnderStoredValues(t *testing.T) {
	t.Parallel()
	s := newStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(s.Path()), 0o755))
	require.NoError(t, os.WriteFile(s.Path(), []byte(`{
		// only the project is stored
		"project": "Firestorm",
	}`), 0o644))

	got, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Firestorm", got.Project)
	assert.Equal(t, "nyx.linden", got.User)
}

func TestLoad_StoredEmptyStringWins(t *testing.T) {
	t.Parallel()
	s := newStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(s.Path()), 0o755))
	require.NoError(t, os.WriteFile(s.Path(), []byte(`{"user": ""}`), 0o644))

	got, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Sunshine", got.Project)
	assert.Equal(t, "", got.User)
}

func TestSaveThenLoad(t *testing.T) {
	t.Parallel()
	s := newStore(t)
	ctx := context.Background()
	want := model.Settings{Project: "SUN", User: "oz.linden"}

	require.NoError(t, s.Save(ctx, want))
	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoad_Corrupt(t *testing.T) {
	t.Parallel()
	s := newStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(s.Path()), 0o755))
	require.NoError(t, os.WriteFile(s.Path(), []byte(`{"project": `), 0o644))

	got, err := s.Load(context.Background())
	require.Error(t, err)
	assert.Equal(t, model.DefaultSettings(), got)
}

func TestDefaultPath_XDG(t *testing.T) {
	t.Parallel()
	p, err := DefaultPath(func(k string) string {
		if k == "XDG_CONFIG_HOME" {
			return "/tmp/xdg"
		}
		return ""
	})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/tmp/xdg", "jiraglance", "settings.json"), p)
}
