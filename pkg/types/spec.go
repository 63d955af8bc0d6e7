package types

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/arthur-debert/dotman/pkg/platform"
)

// PolicyKind names a CopyPolicy variant.
type PolicyKind string

const (
	PolicyClean  PolicyKind = "clean"
	PolicyMerge  PolicyKind = "merge"
	PolicyChoose PolicyKind = "choose"
)

// CopyPolicy decides how a package tree lands at its destination.
// The interface is sealed; the only implementations are Clean, Merge and
// Choose.
type CopyPolicy interface {
	Kind() PolicyKind
	String() string
	sealed()
}

// Clean replaces the destination tree entirely.
type Clean struct{}

// Merge copies every package file, leaving unrelated destination files alone.
type Merge struct{}

// Choose copies the single file RelPath to the destination path.
type Choose struct {
	RelPath string
}

func (Clean) Kind() PolicyKind  { return PolicyClean }
func (Merge) Kind() PolicyKind  { return PolicyMerge }
func (Choose) Kind() PolicyKind { return PolicyChoose }

func (Clean) String() string    { return "clean" }
func (Merge) String() string    { return "merge" }
func (c Choose) String() string { return "choose(" + c.RelPath + ")" }

func (Clean) sealed()  {}
func (Merge) sealed()  {}
func (Choose) sealed() {}

// TemplateSpec names the destination-relative file rendered after a copy
// and the variables it is rendered with.
type TemplateSpec struct {
	Path string
	Vars map[string]TemplateValue
}

// InstallSpec is the per-package install configuration.
type InstallSpec struct {
	Package Package

	// Destinations maps an OS tag to a destination path string. A missing
	// entry means the package does not apply on that OS.
	Destinations map[platform.OSTag]string

	Policy   CopyPolicy
	Template *TemplateSpec
}

// Destination returns the raw (unresolved) destination for os.
func (s InstallSpec) Destination(os platform.OSTag) (string, bool) {
	dest, ok := s.Destinations[os]
	if !ok || dest == "" {
		return "", false
	}
	return dest, true
}

// Validate checks the package name, the policy and how the template fits it.
func (s InstallSpec) Validate() error {
	if s.Package.Name == "" {
		return fmt.Errorf("install spec has no package name")
	}
	if s.Policy == nil {
		return fmt.Errorf("package %s has no copy policy", s.Package.Name)
	}
	if c, ok := s.Policy.(Choose); ok && strings.TrimSpace(c.RelPath) == "" {
		return fmt.Errorf("package %s: choose policy needs a file", s.Package.Name)
	}
	if s.Template != nil {
		_, choose := s.Policy.(Choose)
		switch {
		case choose && s.Template.Path != "":
			return fmt.Errorf("package %s: a chosen file is rendered itself, template path must be empty", s.Package.Name)
		case !choose && s.Template.Path == "":
			return fmt.Errorf("package %s: template needs a path", s.Package.Name)
		}
	}
	return nil
}

// TemplateTarget returns the file to render once the package landed at
// installed. For Choose that is the installed file itself; for trees it is
// the template path below the destination.
func (s InstallSpec) TemplateTarget(installed string) string {
	if _, ok := s.Policy.(Choose); ok || s.Template == nil {
		return installed
	}
	return filepath.Join(installed, s.Template.Path)
}

// OSNames returns the tags with a destination, sorted.
func (s InstallSpec) OSNames() []string {
	out := make([]string, 0, len(s.Destinations))
	for tag := range s.Destinations {
		out = append(out, string(tag))
	}
	sort.Strings(out)
	return out
}
