// Package copier installs package trees onto the filesystem using one of
// the three copy policies: merge, choose and clean.
//
// No operation rolls back on failure; a failed copy leaves whatever was
// already written in place. Every policy is safe to re-run.
package copier

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/arthur-debert/dotman/pkg/errors"
	"github.com/arthur-debert/dotman/pkg/filesystem"
	"github.com/arthur-debert/dotman/pkg/logging"
	"github.com/arthur-debert/dotman/pkg/types"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

const dirPerm = 0755

// Copier copies package trees on a filesystem.
type Copier struct {
	fs     afero.Fs
	logger zerolog.Logger
}

// New creates a Copier working on fsys.
func New(fsys afero.Fs) *Copier {
	return &Copier{
		fs:     fsys,
		logger: logging.GetLogger("copier"),
	}
}

// Install copies pkg to dest with the given policy and returns the path
// that received the content (for Choose this may be dest/<file> when dest
// is an existing directory).
func (c *Copier) Install(pkg types.Package, policy types.CopyPolicy, dest string) (string, error) {
	switch p := policy.(type) {
	case types.Merge:
		return dest, c.Merge(pkg, dest)
	case types.Choose:
		return c.Choose(pkg, p.RelPath, dest)
	case types.Clean:
		return dest, c.Clean(pkg, dest)
	default:
		return "", errors.Newf(errors.ErrConfigInvalid, "package %s has no copy policy", pkg.Name)
	}
}

// Merge copies every file of pkg to the same relative path under dest,
// overwriting existing files and leaving unrelated ones untouched.
func (c *Copier) Merge(pkg types.Package, dest string) error {
	if !filesystem.IsDir(c.fs, pkg.Path) {
		return errors.Newf(errors.ErrSourceMissing, "package directory %s does not exist", pkg.Path).
			WithDetail("package", pkg.Name)
	}

	files, err := filesystem.ListFiles(c.fs, pkg.Path, pkg.IsIgnored)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to list package %s", pkg.Name)
	}

	for _, rel := range files {
		target := filepath.Join(dest, rel)
		if err := c.copyOne(pkg.FilePath(rel), target, false); err != nil {
			return err
		}
	}

	c.logger.Debug().
		Str("package", pkg.Name).
		Str("dest", dest).
		Int("files", len(files)).
		Msg("merged package")
	return nil
}

// Choose copies the single file rel of pkg to dest. When dest is an
// existing directory the file is placed inside it under its base name.
func (c *Copier) Choose(pkg types.Package, rel, dest string) (string, error) {
	src := pkg.FilePath(rel)
	if !filesystem.IsFile(c.fs, src) {
		return "", errors.Newf(errors.ErrSourceMissing, "package %s has no file %s", pkg.Name, rel).
			WithDetail("path", src)
	}

	target := dest
	if filesystem.IsDir(c.fs, dest) {
		target = filepath.Join(dest, filepath.Base(rel))
	}

	if err := c.copyOne(src, target, false); err != nil {
		return "", err
	}

	c.logger.Debug().
		Str("package", pkg.Name).
		Str("file", rel).
		Str("dest", target).
		Msg("copied chosen file")
	return target, nil
}

// Clean removes dest entirely and copies the whole package tree in its
// place, keeping modes and modification times.
func (c *Copier) Clean(pkg types.Package, dest string) error {
	if !filesystem.IsDir(c.fs, pkg.Path) {
		return errors.Newf(errors.ErrSourceMissing, "package directory %s does not exist", pkg.Path).
			WithDetail("package", pkg.Name)
	}

	if _, err := filesystem.Lstat(c.fs, dest); err == nil {
		if err := c.fs.RemoveAll(dest); err != nil {
			return errors.Wrapf(err, errors.ErrFileRemove, "failed to remove %s", dest)
		}
	}

	if err := c.EnsureDirs(dest); err != nil {
		return err
	}

	count := 0
	err := afero.Walk(c.fs, pkg.Path, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(pkg.Path, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return c.fs.Chmod(dest, info.Mode().Perm())
		}
		if pkg.IsIgnored(rel) {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		target := filepath.Join(dest, rel)
		if info.IsDir() {
			if err := c.fs.Mkdir(target, info.Mode().Perm()); err != nil && !os.IsExist(err) {
				return errors.Wrapf(err, errors.ErrDirCreate, "failed to create directory %s", target)
			}
			return nil
		}

		count++
		if err := filesystem.CopyFile(c.fs, path, target, true); err != nil {
			return errors.Wrapf(err, errors.ErrFileCopy, "failed to copy %s to %s", path, target)
		}
		return nil
	})
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileCopy, "failed to copy package %s to %s", pkg.Name, dest)
	}

	c.logger.Debug().
		Str("package", pkg.Name).
		Str("dest", dest).
		Int("files", count).
		Msg("replaced destination tree")
	return nil
}

// EnsureDirs creates every missing directory from the filesystem root down
// to dir. A directory that already exists is not an error.
func (c *Copier) EnsureDirs(dir string) error {
	for _, ancestor := range Ancestors(dir) {
		if filesystem.IsDir(c.fs, ancestor) {
			continue
		}
		if err := c.fs.Mkdir(ancestor, dirPerm); err != nil {
			if os.IsExist(err) && filesystem.IsDir(c.fs, ancestor) {
				continue
			}
			return errors.Wrapf(err, errors.ErrDirCreate, "failed to create directory %s", ancestor)
		}
	}
	return nil
}

func (c *Copier) copyOne(src, target string, keepTimes bool) error {
	if err := c.EnsureDirs(filepath.Dir(target)); err != nil {
		return err
	}
	if err := filesystem.CopyFile(c.fs, src, target, keepTimes); err != nil {
		return errors.Wrapf(err, errors.ErrFileCopy, "failed to copy %s to %s", src, target)
	}
	return nil
}

// Ancestors lists dir and all of its parents, root first.
func Ancestors(dir string) []string {
	dir = filepath.Clean(dir)
	chain := []string{dir}
	for {
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		chain = append(chain, parent)
		dir = parent
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}
