package scaffold

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/uniinit-labs/uniinit/internal/platform"
)

// ManifestName is the template manifest file excluded from every copy.
const ManifestName = "config.yml"

// dunderPattern matches Python-style private entries such as __pycache__.
const dunderPattern = "__*__"

// Options tunes a Copy.
type Options struct {
	// IncludeHidden copies dot-files. Dot-directories are always traversed.
	IncludeHidden bool

	// ExtraFiles are copied after the template tree. Files land at the
	// destination root under their base name; directories are copied
	// recursively under their base name. Missing paths are skipped.
	ExtraFiles []string

	// Exclude adds doublestar globs matched against entry names and
	// slash-separated relative paths.
	Exclude []string

	// ExcludePaths are doublestar globs matched only against the path
	// relative to the template root, so "test-setup" skips the top-level
	// directory and nothing nested. Extra files are not affected.
	ExcludePaths []string
}

// Result describes a completed copy.
type Result struct {
	OutputDir string
	// Files lists every written file relative to OutputDir, slash-separated.
	Files []string
	// Binary lists the subset of Files copied without substitution.
	Binary []string
}

type copier struct {
	content  *strings.Replacer
	names    *strings.Replacer
	opts     Options
	excludes []string
	result   *Result
}

// Copy materializes the template at src into dst.
// dst is created if needed and existing files are overwritten in place;
// nothing already in dst is removed. Symlinks in the template, including src
// itself, are followed. The first I/O error aborts the copy.
func Copy(src, dst string, repl map[string]string, opts Options) (*Result, error) {
	info, err := os.Stat(src)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s: %w", ErrSourceNotFound, src, err)
		}
		return nil, fmt.Errorf("reading template source %s: %w", src, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrSourceNotFound, src)
	}

	excludes := append([]string{dunderPattern}, opts.Exclude...)
	for _, p := range slices.Concat(excludes, opts.ExcludePaths) {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("%w: %q", ErrBadPattern, p)
		}
	}

	if err := os.MkdirAll(dst, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory %s: %w", dst, err)
	}

	c := &copier{
		content:  Replacer(repl),
		names:    nameReplacer(repl),
		opts:     opts,
		excludes: excludes,
		result:   &Result{OutputDir: dst},
	}

	if err := c.walk(src, dst, "", true); err != nil {
		return nil, err
	}

	for _, extra := range opts.ExtraFiles {
		if err := c.copyExtra(extra, dst); err != nil {
			return nil, err
		}
	}

	return c.result, nil
}

// walk copies the tree rooted at srcRoot into dstRoot. prefix is prepended to
// reported file names so extras are listed relative to the output root.
// template is true for the template tree itself, where the root manifest is
// skipped and root-anchored excludes apply.
func (c *copier) walk(srcRoot, dstRoot, prefix string, template bool) error {
	resolved, err := filepath.EvalSymlinks(srcRoot)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", srcRoot, err)
	}
	w := &walker{copier: c, dstRoot: dstRoot, prefix: prefix, template: template}
	return w.dir(srcRoot, "", "", map[string]bool{resolved: true})
}

// walker carries the state of one tree walk. Symlinks are followed the way
// a plain file read would follow them; ancestors guards against loops.
type walker struct {
	*copier
	dstRoot  string
	prefix   string
	template bool
}

func (w *walker) dir(src, rel, outRel string, ancestors map[string]bool) error {
	entries, err := os.ReadDir(src)
	if err != nil {
		return fmt.Errorf("walking %s: %w", src, err)
	}
	for _, e := range entries {
		name := e.Name()
		path := filepath.Join(src, name)
		entryRel := joinRel(rel, name)
		if w.excluded(name, filepath.ToSlash(entryRel), w.template) {
			continue
		}

		// Stat follows symlinks: a link is copied as whatever it points at.
		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrUnreadableEntry, path, err)
		}
		entryOut := joinRel(outRel, w.names.Replace(name))
		target := filepath.Join(w.dstRoot, entryOut)

		if info.IsDir() {
			resolved, err := filepath.EvalSymlinks(path)
			if err != nil {
				return fmt.Errorf("resolving %s: %w", path, err)
			}
			if ancestors[resolved] {
				return fmt.Errorf("%w: %s", ErrSymlinkLoop, path)
			}
			if err := os.MkdirAll(target, info.Mode().Perm()|0700); err != nil {
				return fmt.Errorf("creating directory %s: %w", target, err)
			}
			ancestors[resolved] = true
			err = w.dir(path, entryRel, entryOut, ancestors)
			delete(ancestors, resolved)
			if err != nil {
				return err
			}
			continue
		}

		if w.template && entryRel == ManifestName {
			continue
		}
		if isHidden(name) && !w.opts.IncludeHidden {
			continue
		}
		// Sockets, devices and pipes are not part of a template.
		if !info.Mode().IsRegular() {
			continue
		}
		if err := w.copyFile(path, target, joinRel(w.prefix, entryOut), info.Mode().Perm()); err != nil {
			return err
		}
	}
	return nil
}

func (c *copier) copyExtra(path, dst string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading extra file %s: %w", path, err)
	}

	base := c.names.Replace(filepath.Base(path))
	target := filepath.Join(dst, base)

	if info.IsDir() {
		if err := os.MkdirAll(target, info.Mode().Perm()|0700); err != nil {
			return fmt.Errorf("creating directory %s: %w", target, err)
		}
		return c.walk(path, target, base, false)
	}
	return c.copyFile(path, target, base, info.Mode().Perm())
}

// copyFile writes src to dst with substitution applied to text content and
// gives dst the mode perm. A read-only dst left by an earlier copy is made
// writable first so repeat copies overwrite it.
func (c *copier) copyFile(src, dst, rel string, perm os.FileMode) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("reading %s: %w", src, err)
	}

	binary := !utf8.Valid(data)
	if !binary {
		data = []byte(c.content.Replace(string(data)))
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", dst, err)
	}
	if err := platform.EnsureWritable(dst); err != nil {
		return fmt.Errorf("preparing %s: %w", dst, err)
	}
	if err := os.WriteFile(dst, data, perm|0200); err != nil {
		return fmt.Errorf("writing %s: %w", dst, err)
	}
	if err := platform.Chmod(dst, perm); err != nil {
		return fmt.Errorf("setting mode on %s: %w", dst, err)
	}

	rel = filepath.ToSlash(rel)
	c.result.Files = append(c.result.Files, rel)
	if binary {
		c.result.Binary = append(c.result.Binary, rel)
	}
	return nil
}

// excluded matches name and rel against the exclude globs. Root-anchored
// globs only apply inside the template tree and only to rel.
func (c *copier) excluded(name, rel string, template bool) bool {
	for _, p := range c.excludes {
		if ok, _ := doublestar.Match(p, name); ok {
			return true
		}
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
	}
	if template {
		for _, p := range c.opts.ExcludePaths {
			if ok, _ := doublestar.Match(p, rel); ok {
				return true
			}
		}
	}
	return false
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}

func joinRel(prefix, rel string) string {
	if prefix == "" {
		return rel
	}
	return filepath.Join(prefix, rel)
}
