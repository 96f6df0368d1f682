package initializer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/uniinit-labs/uniinit/internal/manifest"
	"github.com/uniinit-labs/uniinit/internal/project"
	"github.com/uniinit-labs/uniinit/internal/registry"
	"github.com/uniinit-labs/uniinit/internal/runtime"
	"github.com/uniinit-labs/uniinit/internal/scaffold"
)

// TestSetupDir is the optional template subdirectory copied to <output>/test.
const TestSetupDir = "test-setup"

// TestOutputDir is where the test setup lands inside the project.
const TestOutputDir = "test"

// Template is one scaffolding request bound to its template family.
// Steps must run in lifecycle order; a failed step leaves the template in
// StateFailed.
type Template struct {
	Config *project.Config
	Policy registry.Policy
	// Dir is the template source directory.
	Dir string

	runner *runtime.Runner
	logger *slog.Logger

	mu    sync.Mutex
	state State
	post  *runtime.Job
}

// NewTemplate binds cfg to policy and the template at dir.
func NewTemplate(cfg *project.Config, policy registry.Policy, dir string, runner *runtime.Runner, logger *slog.Logger) *Template {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if runner == nil {
		runner = runtime.NewRunner(logger)
	}
	if cfg.Parameters == nil {
		cfg.Parameters = map[string]any{}
	}
	return &Template{
		Config: cfg,
		Policy: policy,
		Dir:    dir,
		runner: runner,
		logger: logger,
		state:  StateCreated,
	}
}

// State returns the current lifecycle stage.
func (t *Template) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

func (t *Template) advance(from, to State) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state != from {
		return fmt.Errorf("%w: %s requires %s, template is %s", ErrInvalidState, to, from, t.state)
	}
	t.state = to
	return nil
}

func (t *Template) fail() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state = StateFailed
}

func (t *Template) check(want State) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state != want {
		return fmt.Errorf("%w: expected %s, template is %s", ErrInvalidState, want, t.state)
	}
	return nil
}

// Replacements returns the replacement map for the config as it is now.
func (t *Template) Replacements() map[string]string {
	return t.Config.Replacements()
}

// ValidateParameters injects the family defaults into the config parameters
// and checks them against the family policy.
func (t *Template) ValidateParameters() error {
	if err := t.check(StateCreated); err != nil {
		return err
	}
	if applied := t.Policy.ApplyDefaults(t.Config.Parameters); len(applied) > 0 {
		t.logger.Debug("applied parameter defaults", "keys", applied)
	}
	if err := t.Policy.Validate(t.Config.Parameters); err != nil {
		t.fail()
		return fmt.Errorf("invalid project parameters: %w", err)
	}
	return t.advance(StateCreated, StateParametersValidated)
}

// GetInitInfo re-reads and renders the template manifest.
func (t *Template) GetInitInfo() (*manifest.InitInfo, error) {
	return manifest.Load(manifest.Path(t.Dir), t.Replacements())
}

// RunPreProcessing runs the manifest's pre-processing script, if any, and
// blocks until it exits.
func (t *Template) RunPreProcessing(ctx context.Context) error {
	if err := t.check(StateParametersValidated); err != nil {
		return err
	}
	info, err := t.GetInitInfo()
	if err != nil {
		t.fail()
		return err
	}
	if script := info.PreProcessing.Script; strings.TrimSpace(script) != "" {
		t.logger.Info("running pre-processing")
		if _, err := t.runner.Run(ctx, script, runtime.LabelPreProcessing); err != nil {
			t.fail()
			return err
		}
	}
	return t.advance(StateParametersValidated, StatePreProcessed)
}

// GenerateStructure copies the template into the output directory.
func (t *Template) GenerateStructure() (*scaffold.Result, error) {
	if err := t.check(StatePreProcessed); err != nil {
		return nil, err
	}
	info, err := t.GetInitInfo()
	if err != nil {
		t.fail()
		return nil, err
	}

	opts := scaffold.Options{
		IncludeHidden: t.Policy.IncludeHidden,
		ExtraFiles:    t.resolveExtras(info.ExtraFiles),
	}
	if t.Policy.TestSetup {
		opts.ExcludePaths = append(opts.ExcludePaths, TestSetupDir)
	}

	res, err := scaffold.Copy(t.Dir, t.Config.OutputPath, t.Replacements(), opts)
	if err != nil {
		t.fail()
		return nil, fmt.Errorf("generating project structure: %w", err)
	}
	t.logger.Info("generated project structure", "output", t.Config.OutputPath, "files", len(res.Files))
	if err := t.advance(StatePreProcessed, StateStructureGenerated); err != nil {
		return nil, err
	}
	return res, nil
}

// resolveExtras makes manifest extra-file paths absolute against the
// template directory.
func (t *Template) resolveExtras(paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if !filepath.IsAbs(p) {
			p = filepath.Join(t.Dir, p)
		}
		out = append(out, p)
	}
	return out
}

// SetupTesting copies the template's test-setup directory to <output>/test
// for families that ship one. Only the project name is substituted there.
// A nil result means there was nothing to copy.
func (t *Template) SetupTesting() (*scaffold.Result, error) {
	if err := t.check(StateStructureGenerated); err != nil {
		return nil, err
	}

	var res *scaffold.Result
	src := filepath.Join(t.Dir, TestSetupDir)
	if info, err := os.Stat(src); t.Policy.TestSetup && err == nil && info.IsDir() {
		repl := map[string]string{project.KeyProjectName: t.Config.Name}
		dst := filepath.Join(t.Config.OutputPath, TestOutputDir)
		res, err = scaffold.Copy(src, dst, repl, scaffold.Options{IncludeHidden: t.Policy.IncludeHidden})
		if err != nil {
			t.fail()
			return nil, fmt.Errorf("setting up tests: %w", err)
		}
		t.logger.Info("configured test setup", "output", dst, "files", len(res.Files))
	}

	if err := t.advance(StateStructureGenerated, StateTestingConfigured); err != nil {
		return nil, err
	}
	return res, nil
}

// RunPostProcessing launches the manifest's post-processing script in the
// background and returns its job, or nil when the template declares none.
// The script's outcome only moves the template to StateDone or StateFailed
// once it exits.
func (t *Template) RunPostProcessing(ctx context.Context) (*runtime.Job, error) {
	if err := t.check(StateTestingConfigured); err != nil {
		return nil, err
	}
	info, err := t.GetInitInfo()
	if err != nil {
		t.fail()
		return nil, err
	}

	script := info.PostProcessing.Script
	if strings.TrimSpace(script) == "" {
		return nil, t.advance(StateTestingConfigured, StateDone)
	}

	if err := t.advance(StateTestingConfigured, StatePostProcessing); err != nil {
		return nil, err
	}
	t.logger.Info("launching post-processing")
	job := t.runner.Start(ctx, script, runtime.LabelPostProcessing)

	t.mu.Lock()
	t.post = job
	t.mu.Unlock()

	go func() {
		<-job.Done()
		t.mu.Lock()
		defer t.mu.Unlock()
		if job.Err() != nil {
			t.logger.Error("post-processing failed", "error", job.Err())
			t.state = StateFailed
			return
		}
		t.logger.Info("post-processing finished")
		t.state = StateDone
	}()
	return job, nil
}

// PostProcess returns the running or finished post-processing job, if any.
func (t *Template) PostProcess() *runtime.Job {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.post
}

// Initialize runs every lifecycle step in order. It returns once
// post-processing has been launched; the returned job is nil when the
// template declares no post-processing.
func (t *Template) Initialize(ctx context.Context) (*runtime.Job, error) {
	if err := t.ValidateParameters(); err != nil {
		return nil, err
	}
	if err := t.RunPreProcessing(ctx); err != nil {
		return nil, err
	}
	if _, err := t.GenerateStructure(); err != nil {
		return nil, err
	}
	if _, err := t.SetupTesting(); err != nil {
		return nil, err
	}
	return t.RunPostProcessing(ctx)
}

// RunCommand returns the rendered run command.
func (t *Template) RunCommand() (string, error) {
	info, err := t.GetInitInfo()
	if err != nil {
		return "", err
	}
	return info.RunTool.Command, nil
}

// EntryPointURL returns the rendered entry-point URL, validated.
// Templates without one return "".
func (t *Template) EntryPointURL() (string, error) {
	info, err := t.GetInitInfo()
	if err != nil {
		return "", err
	}
	if err := manifest.ValidateEntryPoint(info.EntryPointURL); err != nil {
		return info.EntryPointURL, err
	}
	return info.EntryPointURL, nil
}
