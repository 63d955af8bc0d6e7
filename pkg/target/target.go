// Package target picks the profile to install: the --target flag when
// given, otherwise the name remembered in the marker file.
package target

import (
	"os"
	"strings"

	"github.com/arthur-debert/dotman/pkg/config"
	"github.com/arthur-debert/dotman/pkg/errors"
	"github.com/arthur-debert/dotman/pkg/filesystem"
	"github.com/arthur-debert/dotman/pkg/logging"
	"github.com/arthur-debert/dotman/pkg/paths"
	"github.com/spf13/afero"
)

const markerPerm = 0644

// Marker is the one-line file remembering the last selected target.
type Marker struct {
	fs   afero.Fs
	path string
}

// NewMarker returns the marker at rawPath, resolved against env.
func NewMarker(fsys afero.Fs, rawPath string, env paths.Env) *Marker {
	if rawPath == "" {
		rawPath = paths.DefaultMarker
	}
	return &Marker{fs: fsys, path: paths.Resolve(rawPath, env)}
}

// Path returns the resolved marker path.
func (m *Marker) Path() string {
	return m.path
}

// Read returns the trimmed marker content, empty when there is no marker.
func (m *Marker) Read() (string, error) {
	data, err := afero.ReadFile(m.fs, m.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to read marker %s", m.path)
	}
	return strings.TrimSpace(string(data)), nil
}

// Writable reports whether the marker may be (re)written: it is missing or
// world-writable. Any other existing marker is left alone.
func (m *Marker) Writable() (bool, error) {
	ww, err := filesystem.IsWorldWritable(m.fs, m.path)
	if err != nil {
		if os.IsNotExist(err) {
			return true, nil
		}
		return false, errors.Wrapf(err, errors.ErrFileAccess, "failed to stat marker %s", m.path)
	}
	return ww, nil
}

// Remember writes name to the marker when Writable allows it and reports
// whether it did.
func (m *Marker) Remember(name string) (bool, error) {
	ok, err := m.Writable()
	if err != nil || !ok {
		return false, err
	}
	if err := afero.WriteFile(m.fs, m.path, []byte(name+"\n"), markerPerm); err != nil {
		return false, errors.Wrapf(err, errors.ErrFileWrite, "failed to write marker %s", m.path)
	}
	return true, nil
}

// Selection is a resolved target.
type Selection struct {
	// Name is the requested target, as given or read from the marker.
	Name string
	// Profile is the manifest profile it selects.
	Profile *config.Profile
	// FromMarker is set when the name came from the marker file.
	FromMarker bool
}

// Resolve picks the profile for flag, falling back to the marker content.
// Failing to resolve is an ErrNoTarget error.
func Resolve(m *config.Manifest, flag string, marker *Marker) (*Selection, error) {
	logger := logging.GetLogger("target")

	name := strings.TrimSpace(flag)
	fromMarker := false
	if name == "" && marker != nil {
		stored, err := marker.Read()
		if err != nil {
			return nil, err
		}
		name, fromMarker = stored, true
	}

	if name == "" {
		err := errors.New(errors.ErrNoTarget, "no target given and no marker found")
		if marker != nil {
			err.WithDetail("marker", marker.Path())
		}
		return nil, err
	}

	profile, ok := m.FindProfile(name)
	if !ok {
		return nil, errors.Newf(errors.ErrNoTarget, "target %q matches no profile", name).
			WithDetail("target", name).
			WithDetail("profiles", m.ProfileNames())
	}

	logger.Debug().
		Str("target", name).
		Str("profile", profile.Name).
		Bool("fromMarker", fromMarker).
		Msg("target resolved")
	return &Selection{Name: name, Profile: profile, FromMarker: fromMarker}, nil
}
