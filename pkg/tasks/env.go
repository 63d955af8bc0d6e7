package tasks

import (
	"github.com/arthur-debert/dotman/pkg/errors"
	"github.com/arthur-debert/dotman/pkg/paths"
)

// EnvUnit sets an environment variable when it is absent or empty. Later
// units resolving $Var observe the new value because units run in order.
type EnvUnit struct {
	Var   string
	Value string
}

func (u *EnvUnit) Name() string { return u.Var }

func (u *EnvUnit) Kind() string { return "env" }

func (u *EnvUnit) IsStale(ctx *Context) (bool, error) {
	if u.Var == "" {
		return false, errors.New(errors.ErrConfigInvalid, "env task has no variable")
	}
	v, ok := ctx.Env.LookupEnv(u.Var)
	return !ok || v == "", nil
}

func (u *EnvUnit) Perform(ctx *Context) error {
	value := paths.ExpandVars(u.Value, ctx.Env)
	if err := ctx.Env.Setenv(u.Var, value); err != nil {
		return errors.Wrapf(err, errors.ErrInternal, "failed to set %s", u.Var)
	}
	ctx.Logger.Info().Str("var", u.Var).Str("value", value).Msg("set environment variable")
	return nil
}

// Preview sets the variable in dry runs too so the paths shown for later
// units are the ones a real run would use.
func (u *EnvUnit) Preview(ctx *Context) error {
	return u.Perform(ctx)
}
