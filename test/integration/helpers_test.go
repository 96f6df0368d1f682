//go:build integration

package integration_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uniinit-labs/uniinit/internal/catalog"
	"github.com/uniinit-labs/uniinit/internal/initializer"
	"github.com/uniinit-labs/uniinit/internal/registry"
	"github.com/uniinit-labs/uniinit/internal/runtime"
)

// catalogRoot is the sample catalog shipped at the repository root.
const catalogRoot = "../../catalog"

// newInitializer returns an initializer over the shipped catalog with
// script files kept in a per-test temp dir.
func newInitializer(t *testing.T) *initializer.Initializer {
	t.Helper()
	root, err := filepath.Abs(catalogRoot)
	require.NoError(t, err)
	runner := &runtime.Runner{TempDir: t.TempDir()}
	return initializer.New(registry.Default(), catalog.New(root), runner, nil)
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

// assertNoTokens fails if any file under dir still carries a replacement token.
func assertNoTokens(t *testing.T, dir string) {
	t.Helper()
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		assert.NotContains(t, d.Name(), "$KAVIA_", "unrendered name")
		assert.False(t, strings.Contains(readFile(t, path), "KAVIA_"), "%s still contains a replacement token", path)
		return nil
	})
	require.NoError(t, err)
}
