package tasks

import (
	"context"

	"github.com/arthur-debert/dotman/pkg/copier"
	"github.com/arthur-debert/dotman/pkg/paths"
	"github.com/arthur-debert/dotman/pkg/platform"
	"github.com/arthur-debert/dotman/pkg/staleness"
	"github.com/arthur-debert/dotman/pkg/template"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// Context carries everything a unit needs for one run. It is built once by
// the caller and passed to every unit; nothing in this package reads global
// state.
type Context struct {
	Ctx context.Context

	OS      platform.OSTag
	Verbose bool
	DryRun  bool

	FS       afero.Fs
	Env      paths.Env
	Runner   Runner
	Reporter Reporter
	Logger   zerolog.Logger
}

func (c *Context) base() context.Context {
	if c.Ctx == nil {
		return context.Background()
	}
	return c.Ctx
}

func (c *Context) reporter() Reporter {
	if c.Reporter == nil {
		return NopReporter{}
	}
	return c.Reporter
}

func (c *Context) newOracle() *staleness.Oracle {
	return staleness.New(c.FS, c.Env, c.OS)
}

func (c *Context) newCopier() *copier.Copier {
	return copier.New(c.FS)
}

func (c *Context) newTemplates() *template.Processor {
	return template.New(c.FS, c.Env, c.OS)
}

// Reporter receives the human-facing progress of a run.
type Reporter interface {
	// Performing is called before a stale unit's action runs. In a dry run
	// the action is not run afterwards.
	Performing(name string, dryRun bool)

	// Skipped is called for up-to-date units, only when verbose.
	Skipped(name string)

	// Failed is called when a unit's action fails without aborting the run.
	Failed(name string, err error)
}

// NopReporter discards progress.
type NopReporter struct{}

func (NopReporter) Performing(string, bool) {}
func (NopReporter) Skipped(string)          {}
func (NopReporter) Failed(string, error)    {}
