package initializer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	rtdebug "runtime/debug"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/uniinit-labs/uniinit/internal/catalog"
	"github.com/uniinit-labs/uniinit/internal/config"
	"github.com/uniinit-labs/uniinit/internal/project"
	"github.com/uniinit-labs/uniinit/internal/registry"
	"github.com/uniinit-labs/uniinit/internal/runtime"
)

// Result summarizes one InitializeProject call.
type Result struct {
	Success   bool
	Message   string
	RequestID string
	Template  *Template
	// Err is the underlying failure when Success is false.
	Err error
}

// Initializer creates templates and runs them.
type Initializer struct {
	registry *registry.Registry
	catalog  *catalog.Catalog
	runner   *runtime.Runner
	logger   *slog.Logger

	// WaitTimeout bounds WaitForPostProcess when it is called without a
	// positive timeout.
	WaitTimeout time.Duration

	mu   sync.Mutex
	post *runtime.Job
}

// New returns an Initializer. Nil dependencies fall back to the built-in
// registry, the resolved catalog root and a runner using logger.
func New(reg *registry.Registry, cat *catalog.Catalog, runner *runtime.Runner, logger *slog.Logger) *Initializer {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if reg == nil {
		reg = registry.Default()
	}
	if cat == nil {
		cat = catalog.Open()
	}
	if runner == nil {
		runner = runtime.NewRunner(logger)
	}
	return &Initializer{
		registry:    reg,
		catalog:     cat,
		runner:      runner,
		logger:      logger,
		WaitTimeout: config.DefaultPostProcessTimeout,
	}
}

// CreateTemplate resolves the family policy and template directory for cfg.
// It performs no output I/O.
func (i *Initializer) CreateTemplate(cfg *project.Config) (*Template, error) {
	return i.createTemplate(cfg, i.logger)
}

func (i *Initializer) createTemplate(cfg *project.Config, logger *slog.Logger) (*Template, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	policy, err := i.registry.Lookup(cfg.Type)
	if err != nil {
		return nil, err
	}
	dir, err := i.catalog.Path(policy)
	if err != nil {
		return nil, err
	}
	return NewTemplate(cfg, policy, dir, i.runner, logger), nil
}

// InitializeProject scaffolds cfg and launches its post-processing. Every
// synchronous failure, including a panic, is logged and reported in the
// Result rather than returned.
func (i *Initializer) InitializeProject(ctx context.Context, cfg *project.Config) (res Result) {
	res.RequestID = uuid.NewString()
	log := i.logger.With("request_id", res.RequestID)

	defer func() {
		if r := recover(); r != nil {
			res.Success = false
			res.Err = fmt.Errorf("%w: %v", ErrPanic, r)
			res.Message = "Failed to initialize project: " + res.Err.Error()
			log.Error("initialization panicked", "panic", r)
			log.Debug("panic stack", "stack", string(rtdebug.Stack()))
		}
	}()

	if cfg == nil {
		return i.failure(log, res, fmt.Errorf("%w: nil config", project.ErrInvalidConfig))
	}
	log = log.With("project_type", string(cfg.Type), "name", cfg.Name)
	log.Info("initializing project", "output", cfg.OutputPath)

	tmpl, err := i.createTemplate(cfg, log)
	if err != nil {
		return i.failure(log, res, err)
	}
	res.Template = tmpl

	job, err := tmpl.Initialize(ctx)
	if err != nil {
		return i.failure(log, res, err)
	}

	i.mu.Lock()
	i.post = job
	i.mu.Unlock()

	res.Success = true
	res.Message = fmt.Sprintf("Project %s initialized successfully at %s", cfg.Name, cfg.OutputPath)
	log.Info("project initialized", "post_processing", job != nil)
	return res
}

func (i *Initializer) failure(log *slog.Logger, res Result, err error) Result {
	res.Success = false
	res.Err = err
	res.Message = "Failed to initialize project: " + err.Error()
	log.Error("initialization failed", "error", err)
	log.Debug("failure stack", "stack", string(rtdebug.Stack()))
	return res
}

// PostProcess returns the job launched by the latest successful
// InitializeProject, or nil.
func (i *Initializer) PostProcess() *runtime.Job {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.post
}

// WaitForPostProcess blocks until the latest post-processing job exits or
// timeout elapses. It returns nil when nothing was launched, the script's
// error when it failed and runtime.ErrWaitTimeout when it is still running.
// A non-positive timeout uses WaitTimeout.
func (i *Initializer) WaitForPostProcess(timeout time.Duration) error {
	job := i.PostProcess()
	if job == nil {
		return nil
	}
	if timeout <= 0 {
		timeout = i.WaitTimeout
	}
	return job.Wait(timeout)
}
