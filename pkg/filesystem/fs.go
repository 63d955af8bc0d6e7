package filesystem

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// ErrSymlinkUnsupported is returned when the filesystem cannot handle links.
var ErrSymlinkUnsupported = errors.New("filesystem does not support symlinks")

// errStopWalk ends a walk early without reporting an error.
var errStopWalk = errors.New("stop walk")

// NewOS returns the OS filesystem.
func NewOS() afero.Fs {
	return afero.NewOsFs()
}

// NewMemory returns an empty in-memory filesystem.
func NewMemory() afero.Fs {
	return afero.NewMemMapFs()
}

// StopWalk is returned from a WalkFiles callback to end the walk early.
func StopWalk() error {
	return errStopWalk
}

// WalkFiles calls fn for every regular file below root in lexical order,
// passing the root-relative path. Directories are descended into but not
// reported; skip, when non-nil, prunes files and directories by relative
// path. Returning StopWalk from fn ends the walk without error.
func WalkFiles(fsys afero.Fs, root string, skip func(rel string) bool, fn func(rel string, info fs.FileInfo) error) error {
	err := afero.Walk(fsys, root, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return relErr
		}
		if rel == "." {
			return nil
		}
		if skip != nil && skip(rel) {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if info.IsDir() {
			return nil
		}
		return fn(rel, info)
	})
	if errors.Is(err, errStopWalk) {
		return nil
	}
	return err
}

// ListFiles returns every file below root, relative and in lexical order.
func ListFiles(fsys afero.Fs, root string, skip func(rel string) bool) ([]string, error) {
	var files []string
	err := WalkFiles(fsys, root, skip, func(rel string, _ fs.FileInfo) error {
		files = append(files, rel)
		return nil
	})
	return files, err
}

// CopyFile copies src to dst, truncating dst. The source mode is kept; when
// keepTimes is set the source modification time is applied to dst too.
func CopyFile(fsys afero.Fs, src, dst string, keepTimes bool) error {
	info, err := fsys.Stat(src)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return &fs.PathError{Op: "copy", Path: src, Err: fs.ErrInvalid}
	}

	in, err := fsys.Open(src)
	if err != nil {
		return err
	}
	defer func() {
		_ = in.Close()
	}()

	out, err := fsys.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	// OpenFile does not change the mode of an existing file
	if err := fsys.Chmod(dst, info.Mode().Perm()); err != nil {
		return err
	}
	if keepTimes {
		return fsys.Chtimes(dst, info.ModTime(), info.ModTime())
	}
	return nil
}

// IsFile reports whether path exists and is not a directory.
func IsFile(fsys afero.Fs, path string) bool {
	info, err := fsys.Stat(path)
	return err == nil && !info.IsDir()
}

// IsDir reports whether path exists and is a directory.
func IsDir(fsys afero.Fs, path string) bool {
	info, err := fsys.Stat(path)
	return err == nil && info.IsDir()
}

// Symlink creates newname pointing at oldname when fsys supports links.
func Symlink(fsys afero.Fs, oldname, newname string) error {
	linker, ok := fsys.(afero.Linker)
	if !ok {
		return ErrSymlinkUnsupported
	}
	return linker.SymlinkIfPossible(oldname, newname)
}

// Readlink returns the link target when fsys supports links.
func Readlink(fsys afero.Fs, name string) (string, error) {
	reader, ok := fsys.(afero.LinkReader)
	if !ok {
		return "", ErrSymlinkUnsupported
	}
	return reader.ReadlinkIfPossible(name)
}

// Lstat stats name without following a final symlink when possible.
func Lstat(fsys afero.Fs, name string) (fs.FileInfo, error) {
	if lstater, ok := fsys.(afero.Lstater); ok {
		info, _, err := lstater.LstatIfPossible(name)
		return info, err
	}
	return fsys.Stat(name)
}

// IsWorldWritable reports whether others have write permission on path.
func IsWorldWritable(fsys afero.Fs, path string) (bool, error) {
	info, err := fsys.Stat(path)
	if err != nil {
		return false, err
	}
	return info.Mode().Perm()&0o002 != 0, nil
}
