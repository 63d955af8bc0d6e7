package types

import (
	"path"
	"path/filepath"
	"strings"
)

// Package is a named directory of files to install.
type Package struct {
	// Name is the package name (the directory name under the packages dir)
	Name string

	// Path is the absolute path to the package directory
	Path string

	// Ignore holds glob patterns, relative to Path, excluded from copies
	// and staleness checks.
	Ignore []string
}

// FilePath returns the full path to a file within the package
func (p Package) FilePath(rel string) string {
	return filepath.Join(p.Path, rel)
}

// IsIgnored reports whether a package-relative path is excluded. A pattern
// matches either the full relative path or its base name.
func (p Package) IsIgnored(rel string) bool {
	rel = filepath.ToSlash(rel)
	if path.Base(rel) == PackConfigFile {
		return true
	}
	for _, pattern := range p.Ignore {
		pattern = strings.TrimPrefix(filepath.ToSlash(pattern), "./")
		if matched, _ := path.Match(pattern, rel); matched {
			return true
		}
		if matched, _ := path.Match(pattern, path.Base(rel)); matched {
			return true
		}
		// a directory pattern excludes everything beneath it
		if strings.HasPrefix(rel, strings.TrimSuffix(pattern, "/")+"/") {
			return true
		}
	}
	return false
}

// PackConfigFile is the per-package configuration file name. It is never
// installed.
const PackConfigFile = ".dotman.toml"
