package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sandbox(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	viper.Reset()
	t.Cleanup(viper.Reset)
	return home
}

func TestLoadDefaults(t *testing.T) {
	sandbox(t)
	Load()

	assert.Equal(t, DefaultPostProcessTimeout, PostProcessTimeout())
	assert.Equal(t, "info", LogLevel())
	assert.Empty(t, TemplatesDir())
}

func TestEnvOverride(t *testing.T) {
	sandbox(t)
	t.Setenv("UNIINIT_TEMPLATES_DIR", "/opt/templates")
	t.Setenv("UNIINIT_POST_PROCESS_TIMEOUT", "90s")
	Load()

	assert.Equal(t, "/opt/templates", TemplatesDir())
	assert.Equal(t, 90*time.Second, PostProcessTimeout())
}

func TestInvalidTimeoutFallsBack(t *testing.T) {
	sandbox(t)
	t.Setenv("UNIINIT_POST_PROCESS_TIMEOUT", "soon")
	Load()

	assert.Equal(t, DefaultPostProcessTimeout, PostProcessTimeout())
}

func TestSetPersists(t *testing.T) {
	home := sandbox(t)
	Load()

	require.NoError(t, Set(KeyLogLevel, "debug"))

	data, err := os.ReadFile(filepath.Join(home, ".uniinit", "config.yaml"))
	require.NoError(t, err)
	assert.NotEmpty(t, data, "config file is empty after Set")

	viper.Reset()
	Load()
	assert.Equal(t, "debug", Get(KeyLogLevel))
}

func TestSetRejectsBadInput(t *testing.T) {
	sandbox(t)
	Load()

	tests := []struct {
		name       string
		key, value string
		unknown    bool
	}{
		{"unknown key", "colour", "blue", true},
		{"bad duration", KeyPostProcessTimeout, "soon", false},
		{"negative duration", KeyPostProcessTimeout, "-1m", false},
		{"bad level", KeyLogLevel, "loud", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Set(tt.key, tt.value)
			require.Error(t, err)
			if tt.unknown {
				assert.ErrorIs(t, err, ErrUnknownKey)
			} else {
				assert.NotErrorIs(t, err, ErrUnknownKey)
			}
		})
	}

	assert.NoFileExists(t, FilePath(), "rejected Set wrote the config file")
}
