package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/uniinit-labs/uniinit/internal/catalog"
	"github.com/uniinit-labs/uniinit/internal/config"
	"github.com/uniinit-labs/uniinit/internal/initializer"
	"github.com/uniinit-labs/uniinit/internal/manifest"
	"github.com/uniinit-labs/uniinit/internal/project"
	"github.com/uniinit-labs/uniinit/internal/registry"
	"github.com/uniinit-labs/uniinit/internal/runtime"
)

// initOptions holds the root command flags.
type initOptions struct {
	name        string
	version     string
	description string
	author      string
	projectType string
	output      string
	parameters  string
	configPath  string
	wait        bool
}

var initOpts initOptions

func init() {
	f := rootCmd.Flags()
	f.StringVar(&initOpts.name, "name", "", "Project name")
	f.StringVar(&initOpts.version, "version", "0.1.0", "Project version")
	f.StringVar(&initOpts.description, "description", "", "Project description")
	f.StringVar(&initOpts.author, "author", "", "Project author")
	f.StringVar(&initOpts.projectType, "type", "", "Project type (see '"+rootCmd.Use+" types')")
	f.StringVar(&initOpts.output, "output", "", "Output directory path")
	f.StringVar(&initOpts.parameters, "parameters", "", "Additional parameters as comma-separated key=value pairs")
	f.StringVar(&initOpts.configPath, "config", "", "Path to a JSON project config (overrides the other flags)")
	f.BoolVar(&initOpts.wait, "wait", true, "Wait for post-processing to finish before exiting")
}

// projectConfig builds the request from --config or from the flags.
func (o initOptions) projectConfig() (*project.Config, error) {
	if o.configPath != "" {
		return project.LoadConfig(o.configPath)
	}

	var missing []string
	for _, f := range []struct{ flag, value string }{
		{"name", o.name},
		{"author", o.author},
		{"type", o.projectType},
		{"output", o.output},
	} {
		if f.value == "" {
			missing = append(missing, "--"+f.flag)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: required flags not set: %s", project.ErrInvalidConfig, strings.Join(missing, ", "))
	}

	t, err := project.ParseType(o.projectType)
	if err != nil {
		return nil, err
	}
	return &project.Config{
		Name:        o.name,
		Version:     o.version,
		Description: o.description,
		Author:      o.author,
		Type:        t,
		OutputPath:  o.output,
		Parameters:  project.ParseParameters(o.parameters),
	}, nil
}

// initOutput is the single JSON document printed by the root command.
type initOutput struct {
	Success        bool   `json:"success"`
	Message        string `json:"message"`
	RequestID      string `json:"request_id,omitempty"`
	TemplateConfig any    `json:"template_config"`
	PostProcessing string `json:"post_processing,omitempty"`
}

// templateConfig is the rendered manifest with init files resolved against
// the project directory.
type templateConfig struct {
	ConfigureEnvironment manifest.Command `json:"configure_environment"`
	BuildCmd             manifest.Command `json:"build_cmd"`
	InstallDependencies  manifest.Command `json:"install_dependencies"`
	EnvConfig            manifest.Env     `json:"env_config"`
	InitFiles            []string         `json:"init_files"`
	InitMinimal          string           `json:"init_minimal"`
	OpenAPIGeneration    manifest.Command `json:"openapi_generation"`
	RunTool              manifest.Command `json:"run_tool"`
	TestTool             manifest.Command `json:"test_tool"`
	InitStyle            string           `json:"init_style"`
	LinterScript         string           `json:"linter_script"`
	PreProcessing        manifest.Script  `json:"pre_processing"`
	PostProcessing       manifest.Script  `json:"post_processing"`
	EntryPointURL        string           `json:"entry_point_url,omitempty"`
}

func newTemplateConfig(info *manifest.InitInfo, projectDir string) templateConfig {
	files := make([]string, 0, len(info.InitFiles))
	for _, f := range info.InitFiles {
		files = append(files, makeAbsolute(f, projectDir))
	}
	return templateConfig{
		ConfigureEnvironment: info.ConfigureEnvironment,
		BuildCmd:             info.BuildCmd,
		InstallDependencies:  info.InstallDependencies,
		EnvConfig:            info.Env,
		InitFiles:            files,
		InitMinimal:          info.InitMinimal,
		OpenAPIGeneration:    info.OpenAPIGeneration,
		RunTool:              info.RunTool,
		TestTool:             info.TestTool,
		InitStyle:            info.InitStyle,
		LinterScript:         info.LinterScript(),
		PreProcessing:        info.PreProcessing,
		PostProcessing:       info.PostProcessing,
		EntryPointURL:        info.EntryPointURL,
	}
}

func makeAbsolute(path, base string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if abs, err := filepath.Abs(base); err == nil {
		base = abs
	}
	return filepath.Join(base, path)
}

// Post-processing states reported under "post_processing".
const (
	postNone      = "none"
	postRunning   = "running"
	postCompleted = "completed"
	postTimeout   = "timeout"
)

func newInitializer(cmd *cobra.Command) *initializer.Initializer {
	runner := runtime.NewRunner(logger)
	// Script output is mirrored to stderr; stdout carries only the result.
	runner.Stdout = cmd.ErrOrStderr()
	runner.Stderr = cmd.ErrOrStderr()
	ini := initializer.New(registry.Default(), catalog.Open(), runner, logger)
	ini.WaitTimeout = config.PostProcessTimeout()
	return ini
}

func runInit(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return reportInitError(cmd, fmt.Errorf("unknown command %q for %q", args[0], cmd.CommandPath()))
	}
	out := cmd.OutOrStdout()

	cfg, err := initOpts.projectConfig()
	if err != nil {
		return reportInitError(cmd, err)
	}

	ini := newInitializer(cmd)
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	res := ini.InitializeProject(ctx, cfg)

	result := initOutput{
		Success:        res.Success,
		Message:        res.Message,
		RequestID:      res.RequestID,
		TemplateConfig: struct{}{},
	}
	if res.Template != nil {
		if info, err := res.Template.GetInitInfo(); err == nil {
			result.TemplateConfig = newTemplateConfig(info, cfg.OutputPath)
		}
	}
	if res.Success {
		result.PostProcessing = postProcessStatus(ini, initOpts.wait)
	}
	return reportInit(out, result)
}

// postProcessStatus optionally waits for the launched job and describes it.
// The status never changes the overall success.
func postProcessStatus(ini *initializer.Initializer, wait bool) string {
	if ini.PostProcess() == nil {
		return postNone
	}
	if !wait {
		return postRunning
	}
	err := ini.WaitForPostProcess(config.PostProcessTimeout())
	switch {
	case err == nil:
		return postCompleted
	case errors.Is(err, runtime.ErrWaitTimeout):
		logger.Warn("post-processing still running after timeout", "timeout", config.PostProcessTimeout())
		return postTimeout
	default:
		logger.Error("post-processing failed", "error", err)
		return "failed: " + err.Error()
	}
}

func reportInit(w io.Writer, result initOutput) error {
	if err := writeJSON(w, result); err != nil {
		return err
	}
	if !result.Success {
		return errReported
	}
	return nil
}

// reportInitError reports a failure that happened before any template was
// resolved.
func reportInitError(cmd *cobra.Command, err error) error {
	return reportInit(cmd.OutOrStdout(), initOutput{
		Message:        "Error: " + err.Error(),
		TemplateConfig: struct{}{},
	})
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
