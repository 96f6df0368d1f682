package manifest

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/uniinit-labs/uniinit/internal/scaffold"
)

// FileName is the manifest file at the root of every template.
const FileName = scaffold.ManifestName

// Path returns the manifest path inside templateDir.
func Path(templateDir string) string {
	return filepath.Join(templateDir, FileName)
}

// Load reads the manifest at path, renders it with repl and decodes it.
// Every call re-reads the file.
func Load(path string, repl map[string]string) (*InitInfo, error) {
	data, err := readManifest(path)
	if err != nil {
		return nil, err
	}
	rendered, err := Render(data, repl)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return Decode(rendered, path)
}

// Render substitutes repl into the scalars of a parsed manifest and encodes
// it again. Values are never spliced into YAML syntax, so a substituted "#"
// or quote stays part of its string. Tokens must sit inside scalars: an
// unquoted value that starts with "{" is a flow mapping to YAML.
func Render(data []byte, repl map[string]string) ([]byte, error) {
	if len(repl) == 0 {
		return data, nil
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: parsing YAML: %w", ErrInvalidManifest, err)
	}
	if doc.Kind == 0 {
		return data, nil
	}
	substituteScalars(&doc, scaffold.Replacer(repl))
	out, err := yaml.Marshal(&doc)
	if err != nil {
		return nil, fmt.Errorf("%w: encoding rendered manifest: %w", ErrInvalidManifest, err)
	}
	return out, nil
}

func substituteScalars(n *yaml.Node, r *strings.Replacer) {
	if n.Kind == yaml.ScalarNode {
		n.Value = r.Replace(n.Value)
		return
	}
	for _, child := range n.Content {
		substituteScalars(child, r)
	}
}

// Decode validates and decodes already-rendered manifest bytes. source names
// the manifest in error messages.
func Decode(data []byte, source string) (*InitInfo, error) {
	result, err := Validate(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	if !result.Valid {
		return nil, &ManifestError{Path: source, Issues: result.Issues}
	}

	var info InitInfo
	if err := yaml.Unmarshal(data, &info); err != nil {
		return nil, fmt.Errorf("%w: decoding %s: %w", ErrInvalidManifest, source, err)
	}
	if info.Env.Versions == nil {
		info.Env.Versions = map[string]string{}
	}
	if info.InitFiles == nil {
		info.InitFiles = []string{}
	}
	return &info, nil
}

func readManifest(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrManifestNotFound, path)
		}
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}
	return data, nil
}
