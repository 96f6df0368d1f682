// Package envmap translates environment variable names between a framework's
// conventions (REACT_APP_*, NEXT_PUBLIC_*, VITE_*, ...) and the common names
// the platform provisions. Each framework ships an env.template whose lines
// read FRAMEWORK_VAR=COMMON_VAR.
package envmap

import (
	"embed"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"sort"

	"github.com/joho/godotenv"
)

//go:embed templates
var templatesFS embed.FS

const (
	templatesRoot = "templates"
	templateName  = "env.template"
)

// TemplatePath returns the embedded env.template path for framework.
func TemplatePath(framework string) (string, error) {
	p := path.Join(templatesRoot, framework, templateName)
	if _, err := fs.Stat(templatesFS, p); err != nil {
		return "", fmt.Errorf("env template for %q: %w", framework, fs.ErrNotExist)
	}
	return p, nil
}

// ParseTemplate reads an env.template from disk.
func ParseTemplate(file string) (map[string]string, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, fmt.Errorf("opening env template: %w", err)
	}
	defer f.Close()
	return parse(f, file)
}

func parse(r io.Reader, name string) (map[string]string, error) {
	m, err := godotenv.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing env template %s: %w", name, err)
	}
	return m, nil
}

// Mapping returns the framework → common variable mapping for framework.
func Mapping(framework string) (map[string]string, error) {
	p, err := TemplatePath(framework)
	if err != nil {
		return nil, err
	}
	f, err := templatesFS.Open(p)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return parse(f, p)
}

// ToCommon renames framework-specific variables to their common names.
// Variables the framework does not map are dropped.
func ToCommon(framework string, env map[string]string) (map[string]string, error) {
	mapping, err := Mapping(framework)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(env))
	for k, v := range env {
		if common, ok := mapping[k]; ok {
			out[common] = v
		}
	}
	return out, nil
}

// ToFramework renames common variables to every framework variable mapped to
// them. Unmapped variables are dropped.
func ToFramework(framework string, env map[string]string) (map[string]string, error) {
	mapping, err := Mapping(framework)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(env))
	for fwVar, common := range mapping {
		if v, ok := env[common]; ok {
			out[fwVar] = v
		}
	}
	return out, nil
}

// Frameworks lists the frameworks with an embedded env.template, sorted.
func Frameworks() []string {
	entries, err := fs.ReadDir(templatesFS, templatesRoot)
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if _, err := fs.Stat(templatesFS, path.Join(templatesRoot, e.Name(), templateName)); err == nil {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names
}
