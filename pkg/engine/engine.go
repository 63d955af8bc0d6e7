// Package engine ties the pieces together: it loads the manifest, resolves
// the target profile, builds the task set for the profile's groups and
// executes it.
package engine

import (
	"context"
	"os"

	"github.com/arthur-debert/dotman/pkg/config"
	"github.com/arthur-debert/dotman/pkg/errors"
	"github.com/arthur-debert/dotman/pkg/logging"
	"github.com/arthur-debert/dotman/pkg/paths"
	"github.com/arthur-debert/dotman/pkg/platform"
	"github.com/arthur-debert/dotman/pkg/target"
	"github.com/arthur-debert/dotman/pkg/tasks"
	"github.com/arthur-debert/dotman/pkg/types"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// Options are the per-invocation inputs.
type Options struct {
	// Target selects the profile; empty falls back to the marker file.
	Target string
	// Root is the dotfiles root; empty discovers it.
	Root string
	// ConfigPath overrides manifest discovery.
	ConfigPath string
	// OS overrides the detected platform.
	OS platform.OSTag

	Verbose bool
	DryRun  bool
}

// Engine runs installs. The zero value is not usable; use New.
type Engine struct {
	fs       afero.Fs
	env      paths.Env
	runner   tasks.Runner
	reporter tasks.Reporter
	isRoot   func() bool
	logger   zerolog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithFS sets the filesystem, the OS filesystem by default.
func WithFS(fsys afero.Fs) Option { return func(e *Engine) { e.fs = fsys } }

// WithEnv sets the environment, the process environment by default.
func WithEnv(env paths.Env) Option { return func(e *Engine) { e.env = env } }

// WithRunner sets the command runner.
func WithRunner(r tasks.Runner) Option { return func(e *Engine) { e.runner = r } }

// WithReporter sets the progress reporter.
func WithReporter(r tasks.Reporter) Option { return func(e *Engine) { e.reporter = r } }

// WithRootCheck overrides how a privileged run is detected.
func WithRootCheck(f func() bool) Option { return func(e *Engine) { e.isRoot = f } }

// New creates an Engine.
func New(opts ...Option) *Engine {
	e := &Engine{
		fs:       afero.NewOsFs(),
		env:      paths.OSEnv{},
		runner:   tasks.NewExecRunner(),
		reporter: tasks.NopReporter{},
		isRoot:   func() bool { return os.Geteuid() == 0 },
		logger:   logging.GetLogger("engine"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Plan is everything resolved before execution.
type Plan struct {
	Paths     *paths.Paths
	Manifest  *config.Manifest
	Selection *target.Selection
	Marker    *target.Marker
	Set       *tasks.Set
	AsRoot    bool
}

// LoadManifest locates and loads the manifest.
func (e *Engine) LoadManifest(o Options) (*paths.Paths, *config.Manifest, error) {
	p, err := paths.New(o.Root)
	if err != nil {
		return nil, nil, err
	}

	manifestPath := o.ConfigPath
	if manifestPath == "" {
		manifestPath, err = config.FindManifest(e.fs, p.ManifestCandidates())
		if err != nil {
			return nil, nil, err
		}
	} else {
		manifestPath = paths.Resolve(manifestPath, e.env)
	}

	var m *config.Manifest
	if _, onDisk := e.fs.(*afero.OsFs); onDisk {
		m, err = config.Load(manifestPath)
	} else {
		m, err = config.LoadFS(e.fs, manifestPath)
	}
	if err != nil {
		return nil, nil, err
	}

	p.SetPackagesDir(m.Settings.PackagesDir)
	return p, m, nil
}

// Prepare loads the manifest, resolves the target and builds the task set
// without running anything.
func (e *Engine) Prepare(o Options) (*Plan, error) {
	p, m, err := e.LoadManifest(o)
	if err != nil {
		return nil, err
	}

	marker := target.NewMarker(e.fs, m.Settings.Marker, e.env)
	sel, err := target.Resolve(m, o.Target, marker)
	if err != nil {
		return nil, err
	}

	asRoot := e.isRoot()
	set := tasks.NewSet(sel.Profile.Name)
	load := func(name string) (types.Package, error) {
		return config.LoadPackage(e.fs, name, p.PackagePath(name))
	}
	for _, g := range m.GroupsFor(sel.Profile, asRoot) {
		gs, err := tasks.FromGroup(g, m, load)
		if err != nil {
			return nil, err
		}
		set = set.Concat(gs)
	}

	e.logger.Info().
		Str("profile", sel.Profile.Name).
		Bool("root", asRoot).
		Int("units", set.Len()).
		Msg("plan ready")

	return &Plan{
		Paths:     p,
		Manifest:  m,
		Selection: sel,
		Marker:    marker,
		Set:       set,
		AsRoot:    asRoot,
	}, nil
}

// Run prepares and executes the plan. Outside dry runs the marker is
// updated with the target once it resolved. Failed commands make Run
// return an error only when the manifest asks for it.
func (e *Engine) Run(ctx context.Context, o Options) (*tasks.Report, error) {
	done := logging.LogOperationStart(e.logger, "run")
	defer done()

	plan, err := e.Prepare(o)
	if err != nil {
		return nil, err
	}

	if !o.DryRun {
		wrote, err := plan.Marker.Remember(plan.Selection.Name)
		if err != nil {
			return nil, err
		}
		e.logger.Debug().Bool("written", wrote).Str("path", plan.Marker.Path()).Msg("marker checked")
	}

	tctx := e.Context(ctx, o)
	report, err := plan.Set.Execute(tctx)
	if report != nil {
		report.Target = plan.Selection.Profile.Name
	}
	if err != nil {
		return report, err
	}

	if report.HasFailures() && plan.Manifest.Settings.FailOnCommandError {
		return report, errors.Newf(errors.ErrCommandFailed, "%d task(s) failed", report.Count(tasks.StatusFailed))
	}
	return report, nil
}

// Context builds the task context for one run.
func (e *Engine) Context(ctx context.Context, o Options) *tasks.Context {
	osTag := o.OS
	if osTag == "" {
		osTag = platform.Current()
	}
	return &tasks.Context{
		Ctx:      ctx,
		OS:       osTag,
		Verbose:  o.Verbose,
		DryRun:   o.DryRun,
		FS:       e.fs,
		Env:      e.env,
		Runner:   e.runner,
		Reporter: e.reporter,
		Logger:   logging.GetLogger("tasks"),
	}
}
