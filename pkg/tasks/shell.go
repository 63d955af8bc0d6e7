package tasks

import (
	"github.com/arthur-debert/dotman/pkg/errors"
	"github.com/arthur-debert/dotman/pkg/paths"
)

// ShellUnit runs a command through sh. It is stale unless one of the Unless
// paths exists; with no Unless paths it runs on every invocation.
type ShellUnit struct {
	Label   string
	Command string
	Unless  []string
}

func (u *ShellUnit) Name() string {
	if u.Label != "" {
		return u.Label
	}
	return u.Command
}

func (u *ShellUnit) Kind() string { return "shell" }

func (u *ShellUnit) IsStale(ctx *Context) (bool, error) {
	if u.Command == "" {
		return false, errors.Newf(errors.ErrConfigInvalid, "shell task %q has no command", u.Label)
	}
	for _, p := range u.Unless {
		if paths.Exists(ctx.FS, p, ctx.Env) {
			return false, nil
		}
	}
	return true, nil
}

func (u *ShellUnit) Perform(ctx *Context) error {
	return ctx.Runner.Run(ctx.base(), Command{
		Path: "sh",
		Args: []string{"-c", u.Command},
		Env:  ctx.Env.Environ(),
	})
}
