package config

import (
	"sort"
	"strings"
)

// Task types accepted in a group's task list.
const (
	TaskCopy  = "copy"
	TaskEnv   = "env"
	TaskShell = "shell"
	TaskTool  = "tool"
	TaskLink  = "link"
)

// DefaultDestKey applies a destination to every OS without its own entry.
const DefaultDestKey = "default"

// Manifest is the decoded dotman manifest.
type Manifest struct {
	Settings   Settings                   `koanf:"settings"`
	Toolchains map[string]ToolchainConfig `koanf:"toolchains"`
	Profiles   []Profile                  `koanf:"profiles"`
	Groups     []Group                    `koanf:"groups"`

	// Source is the file the manifest was read from, empty for in-memory
	// manifests.
	Source string `koanf:"-"`
}

// Settings holds global options.
type Settings struct {
	PackagesDir        string `koanf:"packages_dir"`
	Marker             string `koanf:"marker"`
	FailOnCommandError bool   `koanf:"fail_on_command_error"`
}

// ToolchainConfig describes how tools of one toolchain are installed.
type ToolchainConfig struct {
	BinDir  string   `koanf:"bin_dir"`
	Install []string `koanf:"install"`
}

// Profile is a named selection of groups.
type Profile struct {
	Name       string   `koanf:"name"`
	Aliases    []string `koanf:"aliases"`
	Groups     []string `koanf:"groups"`
	RootGroups []string `koanf:"root_groups"`
}

// Group is an ordered list of tasks.
type Group struct {
	Name  string       `koanf:"name"`
	Tasks []TaskConfig `koanf:"tasks"`
}

// TaskConfig is one task entry. Which fields apply depends on Type.
type TaskConfig struct {
	Type string `koanf:"type"`
	Name string `koanf:"name"`

	// copy and link
	Package  string            `koanf:"package"`
	Policy   string            `koanf:"policy"`
	Choose   string            `koanf:"choose"`
	Dest     map[string]string `koanf:"dest"`
	Template *TemplateConfig   `koanf:"template"`
	Src      string            `koanf:"src"`

	// env
	Var   string `koanf:"var"`
	Value string `koanf:"value"`

	// shell
	Command string   `koanf:"command"`
	Unless  []string `koanf:"unless"`

	// tool
	Toolchain string `koanf:"toolchain"`
	Bin       string `koanf:"bin"`
}

// TemplateConfig names the file to render and its variables. A variable is
// either a scalar or a table keyed by OS tag, optionally with "default".
type TemplateConfig struct {
	Path string                 `koanf:"path"`
	Vars map[string]interface{} `koanf:"vars"`
}

// Matches reports whether target selects the profile: the profile name
// equals target, or target contains one of the aliases. Comparison ignores
// case.
func (p Profile) Matches(target string) bool {
	target = strings.ToLower(strings.TrimSpace(target))
	if target == "" {
		return false
	}
	if strings.EqualFold(p.Name, target) {
		return true
	}
	for _, alias := range p.Aliases {
		alias = strings.ToLower(strings.TrimSpace(alias))
		if alias != "" && strings.Contains(target, alias) {
			return true
		}
	}
	return false
}

// FindProfile returns the first profile, in manifest order, matching target.
func (m *Manifest) FindProfile(target string) (*Profile, bool) {
	for i := range m.Profiles {
		if m.Profiles[i].Matches(target) {
			return &m.Profiles[i], true
		}
	}
	return nil, false
}

// Group returns the named group.
func (m *Manifest) Group(name string) (*Group, bool) {
	for i := range m.Groups {
		if m.Groups[i].Name == name {
			return &m.Groups[i], true
		}
	}
	return nil, false
}

// GroupsFor returns the groups a profile runs, in profile order. Root runs
// use the root groups.
func (m *Manifest) GroupsFor(p *Profile, asRoot bool) []*Group {
	names := p.Groups
	if asRoot {
		names = p.RootGroups
	}
	out := make([]*Group, 0, len(names))
	for _, name := range names {
		if g, ok := m.Group(name); ok {
			out = append(out, g)
		}
	}
	return out
}

// ProfileNames returns the profile names in manifest order.
func (m *Manifest) ProfileNames() []string {
	out := make([]string, 0, len(m.Profiles))
	for _, p := range m.Profiles {
		out = append(out, p.Name)
	}
	return out
}

// ToolchainNames returns the configured toolchain names, sorted.
func (m *Manifest) ToolchainNames() []string {
	out := make([]string, 0, len(m.Toolchains))
	for name := range m.Toolchains {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Label is the name used for the task in reports. For tools Name is the
// tool to install, so the label is always toolchain:name.
func (t TaskConfig) Label() string {
	if t.Type == TaskTool {
		return t.Toolchain + ":" + t.Name
	}
	if t.Name != "" {
		return t.Name
	}
	switch t.Type {
	case TaskCopy:
		return t.Package
	case TaskLink:
		return t.Package + "/" + t.Src
	case TaskEnv:
		return t.Var
	case TaskShell:
		return t.Command
	}
	return t.Type
}
