package envmap

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplatePath(t *testing.T) {
	p, err := TemplatePath("react")
	require.NoError(t, err)
	assert.Equal(t, "env.template", filepath.Base(p))
	assert.Contains(t, p, "react")

	_, err = TemplatePath("nonexistent")
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestMappingReact(t *testing.T) {
	m, err := Mapping("react")
	require.NoError(t, err)
	assert.Equal(t, "SUPABASE_URL", m["REACT_APP_SUPABASE_URL"])
	assert.Equal(t, "API_SECRET_KEY", m["REACT_APP_API_KEY"])
	assert.Equal(t, "DATABASE_URL", m["REACT_APP_DATABASE_URL"])
}

func TestToCommon(t *testing.T) {
	got, err := ToCommon("react", map[string]string{
		"REACT_APP_SUPABASE_URL": "https://example.supabase.co",
		"REACT_APP_API_KEY":      "secret-key",
		"REACT_APP_DATABASE_URL": "postgresql://...",
		"UNKNOWN_VAR":            "should-be-ignored",
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"SUPABASE_URL":   "https://example.supabase.co",
		"API_SECRET_KEY": "secret-key",
		"DATABASE_URL":   "postgresql://...",
	}, got)
}

func TestToFramework(t *testing.T) {
	got, err := ToFramework("react", map[string]string{
		"SUPABASE_URL":   "https://example.supabase.co",
		"API_SECRET_KEY": "secret-key",
		"DATABASE_URL":   "postgresql://...",
		"UNKNOWN_VAR":    "should-be-ignored",
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"REACT_APP_SUPABASE_URL": "https://example.supabase.co",
		"REACT_APP_API_KEY":      "secret-key",
		"REACT_APP_DATABASE_URL": "postgresql://...",
	}, got)
}

func TestUnknownFramework(t *testing.T) {
	_, err := ToCommon("nonexistent", nil)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	_, err = ToFramework("nonexistent", nil)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestFrameworks(t *testing.T) {
	names := Frameworks()
	assert.Contains(t, names, "react")
	assert.Contains(t, names, "nextjs")
	assert.IsNonDecreasing(t, names)
}

func TestParseTemplate(t *testing.T) {
	file := filepath.Join(t.TempDir(), "env.template")
	require.NoError(t, os.WriteFile(file, []byte("# comment\nMY_VAR=COMMON_VAR\n"), 0644))

	m, err := ParseTemplate(file)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"MY_VAR": "COMMON_VAR"}, m)

	_, err = ParseTemplate(filepath.Join("nonexistent", "path", "env.template"))
	assert.ErrorIs(t, err, fs.ErrNotExist)
}
