package tasks

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/dotman/pkg/errors"
	"github.com/arthur-debert/dotman/pkg/paths"
)

// NamePlaceholder is replaced by the tool name in toolchain install
// commands.
const NamePlaceholder = "{{name}}"

// Toolchain installs tools into a bin directory with one command.
type Toolchain struct {
	Name    string
	BinDir  string
	Install []string
}

// Validate checks that the toolchain can install anything.
func (t Toolchain) Validate() error {
	if t.BinDir == "" {
		return errors.Newf(errors.ErrConfigInvalid, "toolchain %s has no bin_dir", t.Name)
	}
	if len(t.Install) == 0 {
		return errors.Newf(errors.ErrConfigInvalid, "toolchain %s has no install command", t.Name)
	}
	return nil
}

// InstallCommand builds the command installing tool, expanding variables
// in every argument.
func (t Toolchain) InstallCommand(tool string, env paths.Env) Command {
	args := make([]string, len(t.Install))
	for i, a := range t.Install {
		args[i] = paths.ExpandVars(strings.ReplaceAll(a, NamePlaceholder, tool), env)
	}
	return Command{Path: args[0], Args: args[1:], Env: env.Environ()}
}

// ToolUnit installs one tool of a toolchain. It is stale while
// <bin_dir>/<bin> does not exist.
type ToolUnit struct {
	Toolchain Toolchain
	Tool      string
	// Bin is the installed executable name, the tool name by default.
	Bin string
}

func (u *ToolUnit) Name() string { return u.Toolchain.Name + ":" + u.Tool }

func (u *ToolUnit) Kind() string { return "tool" }

func (u *ToolUnit) binary() string {
	if u.Bin != "" {
		return u.Bin
	}
	return u.Tool
}

func (u *ToolUnit) IsStale(ctx *Context) (bool, error) {
	if u.Tool == "" {
		return false, errors.Newf(errors.ErrConfigInvalid, "%s tool has no name", u.Toolchain.Name)
	}
	if err := u.Toolchain.Validate(); err != nil {
		return false, err
	}
	return !paths.Exists(ctx.FS, filepath.Join(u.Toolchain.BinDir, u.binary()), ctx.Env), nil
}

func (u *ToolUnit) Perform(ctx *Context) error {
	return ctx.Runner.Run(ctx.base(), u.Toolchain.InstallCommand(u.Tool, ctx.Env))
}
