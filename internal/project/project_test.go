package project

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseType(t *testing.T) {
	got, err := ParseType("React")
	require.NoError(t, err)
	assert.Equal(t, TypeReact, got)

	_, err = ParseType("not-a-real-type")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedType))
	assert.Contains(t, err.Error(), "not-a-real-type")
}

func TestTypesIsACopy(t *testing.T) {
	ts := Types()
	ts[0] = "mutated"
	assert.Equal(t, TypeAndroid, Types()[0])
}

func TestReplacementsWellKnownKeys(t *testing.T) {
	cfg := &Config{Name: "app", Version: "1.0.0", Type: TypeReact, OutputPath: "out"}
	r := cfg.Replacements()

	for _, k := range []string{
		KeyProjectName, KeyDescription, KeyAuthor, KeyVersion, KeyUseTypeScript,
		KeyStylingSolution, KeyDirectory, KeyDBName, KeyDBUser, KeyDBPassword, KeyDBPort,
	} {
		_, ok := r[k]
		assert.True(t, ok, "missing key %s", k)
	}

	assert.Equal(t, "false", r[KeyUseTypeScript])
	assert.Equal(t, "css", r[KeyStylingSolution])
	assert.True(t, filepath.IsAbs(r[KeyDirectory]), "directory %q is not absolute", r[KeyDirectory])
	assert.Empty(t, r[KeyDBName])
}

func TestReplacementsTypeScriptLowercase(t *testing.T) {
	cfg := &Config{Name: "app", Type: TypeReact, OutputPath: "/tmp/app",
		Parameters: map[string]any{"typescript": true, "styling_solution": "tailwind"}}
	r := cfg.Replacements()
	assert.Equal(t, "true", r[KeyUseTypeScript])
	assert.Equal(t, "tailwind", r[KeyStylingSolution])

	cfg.Parameters["typescript"] = "False"
	assert.Equal(t, "false", cfg.Replacements()[KeyUseTypeScript])
}

func TestReplacementsObserveMutation(t *testing.T) {
	cfg := &Config{Name: "app", Type: TypeNextJS, OutputPath: "/tmp/app", Parameters: map[string]any{}}
	before := cfg.Replacements()
	cfg.Parameters["styling_solution"] = "scss"
	after := cfg.Replacements()

	assert.Equal(t, "css", before[KeyStylingSolution])
	assert.Equal(t, "scss", after[KeyStylingSolution])
}

func TestDatabaseDefaults(t *testing.T) {
	tests := []struct {
		typ                      Type
		name, user, pass, port string
	}{
		{TypePostgreSQL, "default_postgres", "dbuser", "dbpass", "5432"},
		{TypeMySQL, "default_postgres", "root", "dbpass", "3306"},
		{TypeMongoDB, "default_postgres", "dbuser", "dbpass", "27017"},
		{TypeSQLite, "default_postgres.db", "", "", ""},
	}
	for _, tt := range tests {
		t.Run(string(tt.typ), func(t *testing.T) {
			cfg := &Config{Name: "default-postgres", Type: tt.typ, OutputPath: "/tmp/db"}
			r := cfg.Replacements()
			assert.Equal(t, tt.name, r[KeyDBName])
			assert.Equal(t, tt.user, r[KeyDBUser])
			assert.Equal(t, tt.pass, r[KeyDBPassword])
			assert.Equal(t, tt.port, r[KeyDBPort])
		})
	}
}

func TestDatabaseOverrides(t *testing.T) {
	cfg := &Config{Name: "db", Type: TypePostgreSQL, OutputPath: "/tmp/db",
		Parameters: map[string]any{
			"database_name":     "test_db",
			"database_user":     "testuser",
			"database_password": "testpass",
			"database_port":     int64(15432),
		}}
	r := cfg.Replacements()
	assert.Equal(t, "test_db", r[KeyDBName])
	assert.Equal(t, "testuser", r[KeyDBUser])
	assert.Equal(t, "testpass", r[KeyDBPassword])
	assert.Equal(t, "15432", r[KeyDBPort])
}

func TestSlug(t *testing.T) {
	tests := map[string]string{
		"default-postgres": "default_postgres",
		"My App":           "my_app",
		"Café Crème":       "cafe_creme",
		"--x--y--":         "x_y",
		"":                 "",
	}
	for in, want := range tests {
		assert.Equal(t, want, Slug(in), "Slug(%q)", in)
	}
}

func TestParseParameters(t *testing.T) {
	got := ParseParameters("typescript=true, styling_solution=tailwind,port=5000,ratio=1.5,ver=1.2.3,flag=FALSE,broken")
	assert.Equal(t, map[string]any{
		"typescript":       true,
		"styling_solution": "tailwind",
		"port":             int64(5000),
		"ratio":            1.5,
		"ver":              "1.2.3",
		"flag":             false,
	}, got)

	assert.Empty(t, ParseParameters(""))
}

func TestDecodeConfig(t *testing.T) {
	doc := `{
		"name": "my-app",
		"version": "0.1.0",
		"description": "demo",
		"author": "dev",
		"project_type": "postgresql",
		"output_path": "/tmp/my-app",
		"parameters": {"database_port": 15432, "ratio": 0.5, "typescript": true}
	}`
	cfg, err := DecodeConfig(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, TypePostgreSQL, cfg.Type)
	assert.Equal(t, int64(15432), cfg.Parameters["database_port"])
	assert.Equal(t, 0.5, cfg.Parameters["ratio"])
	assert.Equal(t, true, cfg.Parameters["typescript"])
	assert.Equal(t, "15432", cfg.Replacements()[KeyDBPort])
}

func TestDecodeConfigErrors(t *testing.T) {
	_, err := DecodeConfig(strings.NewReader(`{"name":"a","project_type":"not-a-real-type","output_path":"x"}`))
	assert.ErrorIs(t, err, ErrUnsupportedType)

	_, err = DecodeConfig(strings.NewReader(`{"project_type":"react"}`))
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = DecodeConfig(strings.NewReader(``))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
}
