package tasks

import (
	"github.com/arthur-debert/dotman/pkg/errors"
)

// Unit is one schedulable piece of work guarded by a staleness predicate.
type Unit interface {
	Name() string
	IsStale(ctx *Context) (bool, error)
	Perform(ctx *Context) error
}

// kinded is implemented by units that name their kind in reports.
type kinded interface {
	Kind() string
}

// previewer is implemented by units whose effect later units depend on
// even in a dry run. Preview applies that effect without touching the
// filesystem.
type previewer interface {
	Preview(ctx *Context) error
}

// KindOf returns the kind of u, "general" when it does not say.
func KindOf(u Unit) string {
	if k, ok := u.(kinded); ok {
		return k.Kind()
	}
	return "general"
}

// IsFatal reports whether err must abort the remaining run. Only failed
// external commands are tolerated.
func IsFatal(err error) bool {
	return err != nil && !errors.HasErrorCode(err, errors.ErrCommandFailed)
}

// Execute runs u once: if it is stale, the Reporter is told and the action
// performed (unless the run is dry); otherwise it is skipped. A non-nil
// error is fatal; a tolerated failure is returned as a StatusFailed outcome.
func Execute(ctx *Context, u Unit) (Outcome, error) {
	outcome := Outcome{Name: u.Name(), Kind: KindOf(u)}
	logger := ctx.Logger.With().Str("unit", outcome.Name).Str("kind", outcome.Kind).Logger()

	stale, err := u.IsStale(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("staleness check failed")
		return outcome, err
	}

	if !stale {
		outcome.Status = StatusSkipped
		if ctx.Verbose {
			ctx.reporter().Skipped(outcome.Name)
		}
		logger.Debug().Msg("up to date")
		return outcome, nil
	}

	ctx.reporter().Performing(outcome.Name, ctx.DryRun)

	if ctx.DryRun {
		outcome.Status = StatusPending
		if p, ok := u.(previewer); ok {
			if err := p.Preview(ctx); err != nil {
				return outcome, err
			}
		}
		logger.Info().Msg("would perform")
		return outcome, nil
	}

	if err := u.Perform(ctx); err != nil {
		if IsFatal(err) {
			logger.Error().Err(err).Msg("unit failed, aborting")
			return outcome, err
		}
		outcome.Status = StatusFailed
		outcome.Error = err.Error()
		ctx.reporter().Failed(outcome.Name, err)
		logger.Warn().Err(err).Msg("unit failed, continuing")
		return outcome, nil
	}

	outcome.Status = StatusPerformed
	logger.Info().Msg("performed")
	return outcome, nil
}

// Predicate decides whether a GeneralUnit is stale.
type Predicate func(ctx *Context) (bool, error)

// Action is the side effect of a GeneralUnit.
type Action func(ctx *Context) error

// GeneralUnit is a unit assembled from a predicate and an action. Both must
// be set; executing an incomplete unit is a configuration error.
type GeneralUnit struct {
	Label     string
	Predicate Predicate
	Action    Action
}

// NewUnit creates a GeneralUnit.
func NewUnit(label string, predicate Predicate, action Action) *GeneralUnit {
	return &GeneralUnit{Label: label, Predicate: predicate, Action: action}
}

func (u *GeneralUnit) Name() string { return u.Label }

// IsStale fails with ErrTaskUnconfigured unless both functions are set.
func (u *GeneralUnit) IsStale(ctx *Context) (bool, error) {
	if err := u.check(); err != nil {
		return false, err
	}
	return u.Predicate(ctx)
}

func (u *GeneralUnit) Perform(ctx *Context) error {
	if err := u.check(); err != nil {
		return err
	}
	return u.Action(ctx)
}

func (u *GeneralUnit) check() error {
	switch {
	case u.Predicate == nil && u.Action == nil:
		return errors.Newf(errors.ErrTaskUnconfigured, "task %q has no predicate and no action", u.Label)
	case u.Predicate == nil:
		return errors.Newf(errors.ErrTaskUnconfigured, "task %q has no predicate", u.Label)
	case u.Action == nil:
		return errors.Newf(errors.ErrTaskUnconfigured, "task %q has no action", u.Label)
	}
	return nil
}
