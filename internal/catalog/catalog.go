// Package catalog locates template directories on disk. A catalog root holds
// one directory per template family, each with a config.yml manifest at its
// top level.
package catalog

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/uniinit-labs/uniinit/internal/branding"
	"github.com/uniinit-labs/uniinit/internal/config"
	"github.com/uniinit-labs/uniinit/internal/manifest"
	"github.com/uniinit-labs/uniinit/internal/registry"
)

// ErrTemplateNotFound indicates the catalog has no directory for a family.
var ErrTemplateNotFound = errors.New("template not found in catalog")

// localDir is the fallback catalog location relative to the working directory.
const localDir = "catalog"

// Catalog is a template root directory.
type Catalog struct {
	Root string
}

// New returns a catalog rooted at root.
func New(root string) *Catalog {
	return &Catalog{Root: root}
}

// Open resolves the catalog root and returns a Catalog for it.
func Open() *Catalog {
	return New(Root())
}

// Root returns the catalog root, checking (in order):
// 1. <PREFIX>_TEMPLATES_DIR env var
// 2. config key "templates_dir"
// 3. <exe dir>/../share/uniinit/catalog, when it exists
// 4. ./catalog
func Root() string {
	if v := os.Getenv(branding.EnvVar(config.KeyTemplatesDir)); v != "" {
		return v
	}
	if v := config.TemplatesDir(); v != "" {
		return v
	}
	if exe, err := os.Executable(); err == nil {
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			exe = resolved
		}
		shared := filepath.Join(filepath.Dir(exe), "..", filepath.FromSlash(branding.ShareDir()), localDir)
		if isDir(shared) {
			return filepath.Clean(shared)
		}
	}
	return localDir
}

// Path returns the template directory for p.
func (c *Catalog) Path(p registry.Policy) (string, error) {
	dir := filepath.Join(c.Root, p.TemplateDir())
	if !isDir(dir) {
		return "", fmt.Errorf("%w: %s (looked in %s)", ErrTemplateNotFound, p.Type, dir)
	}
	return dir, nil
}

// Has reports whether the catalog holds a template for p.
func (c *Catalog) Has(p registry.Policy) bool {
	_, err := c.Path(p)
	return err == nil
}

// List returns the names of directories under the root that contain a
// manifest, sorted.
func (c *Catalog) List() ([]string, error) {
	entries, err := os.ReadDir(c.Root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading catalog %s: %w", c.Root, err)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if _, err := os.Stat(manifest.Path(filepath.Join(c.Root, e.Name()))); err == nil {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
