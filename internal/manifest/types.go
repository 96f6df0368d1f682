package manifest

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"

	"go.yaml.in/yaml/v3"
)

// Command is a shell command and the directory it runs in.
type Command struct {
	Command          string `yaml:"command" json:"command"`
	WorkingDirectory string `yaml:"working_directory" json:"working_directory"`
}

// IsZero reports whether no command was declared.
func (c Command) IsZero() bool { return c.Command == "" && c.WorkingDirectory == "" }

// Script is an inline shell script body.
type Script struct {
	Script string `yaml:"script" json:"script"`
}

// Linter holds the template's lint script.
type Linter struct {
	ScriptContent string `yaml:"script_content" json:"script_content"`
}

// Env declares the toolchain a generated project expects. Versions is
// sparse: only tools relevant to the template appear.
type Env struct {
	Initialized bool
	Versions    map[string]string
}

const envInitializedKey = "environment_initialized"

// UnmarshalYAML splits environment_initialized from the tool versions and
// renders every version scalar as a string.
func (e *Env) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("env: expected a mapping, got %v", node.Tag)
	}
	e.Versions = make(map[string]string)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i].Value, node.Content[i+1]
		if key == envInitializedKey {
			if err := val.Decode(&e.Initialized); err != nil {
				return fmt.Errorf("env.%s: %w", envInitializedKey, err)
			}
			continue
		}
		if val.Kind != yaml.ScalarNode {
			return fmt.Errorf("env.%s: expected a scalar version", key)
		}
		if val.Tag == "!!null" {
			e.Versions[key] = ""
			continue
		}
		e.Versions[key] = val.Value
	}
	return nil
}

// MarshalJSON flattens the versions next to environment_initialized.
func (e Env) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(e.Versions)+1)
	for k, v := range e.Versions {
		out[k] = v
	}
	out[envInitializedKey] = e.Initialized
	return json.Marshal(out)
}

// Version returns the declared version for tool, or "".
func (e Env) Version(tool string) string { return e.Versions[tool] }

// Tools returns the declared tool names in sorted order.
func (e Env) Tools() []string {
	return slices.Sorted(maps.Keys(e.Versions))
}

// InitInfo is the decoded template manifest.
type InitInfo struct {
	BuildCmd             Command  `yaml:"build_cmd" json:"build_cmd"`
	RunTool              Command  `yaml:"run_tool" json:"run_tool"`
	TestTool             Command  `yaml:"test_tool" json:"test_tool"`
	ConfigureEnvironment Command  `yaml:"configure_environment" json:"configure_environment"`
	InstallDependencies  Command  `yaml:"install_dependencies" json:"install_dependencies"`
	OpenAPIGeneration    Command  `yaml:"openapi_generation" json:"openapi_generation"`
	Env                  Env      `yaml:"env" json:"env_config"`
	InitFiles            []string `yaml:"init_files" json:"init_files"`
	ExtraFiles           []string `yaml:"extra_files" json:"extra_files,omitempty"`
	InitMinimal          string   `yaml:"init_minimal" json:"init_minimal"`
	InitStyle            string   `yaml:"init_style" json:"init_style"`
	Linter               Linter   `yaml:"linter" json:"-"`
	PreProcessing        Script   `yaml:"pre_processing" json:"pre_processing"`
	PostProcessing       Script   `yaml:"post_processing" json:"post_processing"`
	EntryPointURL        string   `yaml:"entry_point_url" json:"entry_point_url,omitempty"`
}

// LinterScript returns the lint script body.
func (i *InitInfo) LinterScript() string { return i.Linter.ScriptContent }
