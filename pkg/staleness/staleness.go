// Package staleness decides whether a package needs to be installed by
// comparing its source files against the destination: a missing
// destination file, or a source file strictly newer than its destination,
// makes the package stale.
//
// Checks never modify the filesystem and may be repeated freely.
package staleness

import (
	"io/fs"
	"path/filepath"

	"github.com/arthur-debert/dotman/pkg/errors"
	"github.com/arthur-debert/dotman/pkg/filesystem"
	"github.com/arthur-debert/dotman/pkg/logging"
	"github.com/arthur-debert/dotman/pkg/paths"
	"github.com/arthur-debert/dotman/pkg/platform"
	"github.com/arthur-debert/dotman/pkg/types"
	"github.com/spf13/afero"
)

// Oracle answers staleness questions for one OS on one filesystem.
type Oracle struct {
	fs  afero.Fs
	env paths.Env
	os  platform.OSTag
}

// New creates an Oracle.
func New(fsys afero.Fs, env paths.Env, os platform.OSTag) *Oracle {
	return &Oracle{fs: fsys, env: env, os: os}
}

// NeedsUpdate reports whether spec must be (re)installed. A spec without a
// destination for the oracle's OS never needs an update.
func (o *Oracle) NeedsUpdate(spec types.InstallSpec) (bool, error) {
	logger := logging.GetLogger("staleness")

	rawDest, ok := spec.Destination(o.os)
	if !ok {
		logger.Trace().
			Str("package", spec.Package.Name).
			Str("os", o.os.String()).
			Msg("no destination for this os")
		return false, nil
	}
	dest := paths.Resolve(rawDest, o.env)

	var (
		stale bool
		err   error
	)
	switch p := spec.Policy.(type) {
	case types.Choose:
		stale, err = o.chooseIsStale(spec.Package, p.RelPath, dest)
	case types.Merge, types.Clean:
		stale, err = o.treeIsStale(spec.Package, dest)
	default:
		return false, errors.Newf(errors.ErrConfigInvalid, "package %s has no copy policy", spec.Package.Name)
	}
	if err != nil {
		return false, err
	}

	logger.Debug().
		Str("package", spec.Package.Name).
		Str("dest", dest).
		Bool("stale", stale).
		Msg("checked staleness")
	return stale, nil
}

func (o *Oracle) chooseIsStale(pkg types.Package, rel, dest string) (bool, error) {
	src := pkg.FilePath(rel)
	srcInfo, err := o.fs.Stat(src)
	if err != nil || srcInfo.IsDir() {
		return false, errors.Newf(errors.ErrSourceMissing, "package %s has no file %s", pkg.Name, rel).
			WithDetail("path", src)
	}

	destInfo, err := o.fs.Stat(dest)
	if err == nil && destInfo.IsDir() {
		destInfo, err = o.fs.Stat(filepath.Join(dest, filepath.Base(rel)))
	}
	if err != nil || destInfo.IsDir() {
		return true, nil
	}
	return newer(srcInfo, destInfo), nil
}

func (o *Oracle) treeIsStale(pkg types.Package, dest string) (bool, error) {
	if !filesystem.IsDir(o.fs, pkg.Path) {
		return false, errors.Newf(errors.ErrSourceMissing, "package directory %s does not exist", pkg.Path).
			WithDetail("package", pkg.Name)
	}

	stale := false
	err := filesystem.WalkFiles(o.fs, pkg.Path, pkg.IsIgnored, func(rel string, srcInfo fs.FileInfo) error {
		destInfo, err := o.fs.Stat(filepath.Join(dest, rel))
		if err != nil || destInfo.IsDir() || newer(srcInfo, destInfo) {
			stale = true
			return filesystem.StopWalk()
		}
		return nil
	})
	if err != nil {
		return false, errors.Wrapf(err, errors.ErrFileAccess, "failed to scan package %s", pkg.Name)
	}
	return stale, nil
}

func newer(src, dest fs.FileInfo) bool {
	return src.ModTime().After(dest.ModTime())
}
