package tasks

import (
	"path/filepath"

	"github.com/arthur-debert/dotman/pkg/copier"
	"github.com/arthur-debert/dotman/pkg/errors"
	"github.com/arthur-debert/dotman/pkg/filesystem"
	"github.com/arthur-debert/dotman/pkg/paths"
	"github.com/arthur-debert/dotman/pkg/platform"
	"github.com/arthur-debert/dotman/pkg/types"
)

// LinkUnit makes a destination a symlink to a file or directory of a
// package. It is stale unless the destination already links there.
type LinkUnit struct {
	Label        string
	Package      types.Package
	Src          string
	Destinations map[platform.OSTag]string
}

func (u *LinkUnit) Name() string {
	if u.Label != "" {
		return u.Label
	}
	return u.Package.Name + "/" + u.Src
}

func (u *LinkUnit) Kind() string { return "link" }

func (u *LinkUnit) dest(ctx *Context) (string, bool) {
	raw, ok := u.Destinations[ctx.OS]
	if !ok || raw == "" {
		return "", false
	}
	return paths.Resolve(raw, ctx.Env), true
}

func (u *LinkUnit) IsStale(ctx *Context) (bool, error) {
	dest, ok := u.dest(ctx)
	if !ok {
		return false, nil
	}
	src := u.Package.FilePath(u.Src)
	if _, err := ctx.FS.Stat(src); err != nil {
		return false, errors.Newf(errors.ErrSourceMissing, "package %s has no %s", u.Package.Name, u.Src).
			WithDetail("path", src)
	}

	current, err := filesystem.Readlink(ctx.FS, dest)
	if err != nil {
		return true, nil
	}
	return filepath.Clean(current) != filepath.Clean(src), nil
}

func (u *LinkUnit) Perform(ctx *Context) error {
	dest, ok := u.dest(ctx)
	if !ok {
		return nil
	}
	src := u.Package.FilePath(u.Src)

	if err := copier.New(ctx.FS).EnsureDirs(filepath.Dir(dest)); err != nil {
		return err
	}
	if _, err := filesystem.Lstat(ctx.FS, dest); err == nil {
		if err := ctx.FS.RemoveAll(dest); err != nil {
			return errors.Wrapf(err, errors.ErrFileRemove, "failed to replace %s", dest)
		}
	}
	if err := filesystem.Symlink(ctx.FS, src, dest); err != nil {
		return errors.Wrapf(err, errors.ErrSymlinkCreate, "failed to link %s to %s", dest, src)
	}

	ctx.Logger.Info().Str("src", src).Str("dest", dest).Msg("linked")
	return nil
}
