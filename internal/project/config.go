package project

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Config is the user's request for one scaffolded project.
// Everything except Parameters is fixed after construction; family policies
// may inject defaults into Parameters before the replacement map is built.
type Config struct {
	Name        string         `json:"name"`
	Version     string         `json:"version"`
	Description string         `json:"description"`
	Author      string         `json:"author"`
	Type        Type           `json:"project_type"`
	OutputPath  string         `json:"output_path"`
	Parameters  map[string]any `json:"parameters,omitempty"`
}

// Validate checks the fields every template needs.
func (c *Config) Validate() error {
	var missing []string
	if strings.TrimSpace(c.Name) == "" {
		missing = append(missing, "name")
	}
	if c.Type == "" {
		missing = append(missing, "project_type")
	}
	if strings.TrimSpace(c.OutputPath) == "" {
		missing = append(missing, "output_path")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrInvalidConfig, strings.Join(missing, ", "))
	}
	if _, err := ParseType(string(c.Type)); err != nil {
		return err
	}
	return nil
}

// Param returns the parameter value for key, if present.
func (c *Config) Param(key string) (any, bool) {
	if c.Parameters == nil {
		return nil, false
	}
	v, ok := c.Parameters[key]
	return v, ok
}

// rawConfig mirrors the JSON layout with the type kept as a string so it can
// be validated through ParseType.
type rawConfig struct {
	Name        string         `json:"name"`
	Version     string         `json:"version"`
	Description string         `json:"description"`
	Author      string         `json:"author"`
	Type        string         `json:"project_type"`
	OutputPath  string         `json:"output_path"`
	Parameters  map[string]any `json:"parameters"`
}

// LoadConfig reads a JSON project config from path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading project config %s: %w", path, err)
	}
	cfg, err := DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return cfg, nil
}

// DecodeConfig decodes a JSON project config. Numeric parameters decode to
// int64 when integral and float64 otherwise.
func DecodeConfig(r io.Reader) (*Config, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var raw rawConfig
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrInvalidConfig)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	t, err := ParseType(raw.Type)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Name:        raw.Name,
		Version:     raw.Version,
		Description: raw.Description,
		Author:      raw.Author,
		Type:        t,
		OutputPath:  raw.OutputPath,
		Parameters:  make(map[string]any, len(raw.Parameters)),
	}
	for k, v := range raw.Parameters {
		cfg.Parameters[k] = normalizeNumber(v)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func normalizeNumber(v any) any {
	n, ok := v.(json.Number)
	if !ok {
		return v
	}
	if i, err := n.Int64(); err == nil {
		return i
	}
	if f, err := n.Float64(); err == nil {
		return f
	}
	return n.String()
}
