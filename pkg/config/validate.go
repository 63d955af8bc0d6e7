package config

import (
	"github.com/arthur-debert/dotman/pkg/errors"
	"github.com/arthur-debert/dotman/pkg/platform"
	"github.com/arthur-debert/dotman/pkg/types"
)

// Validate checks profiles, groups and every task entry. The first problem
// found is returned as an ErrConfigInvalid error whose details name the
// offending group and task index.
func (m *Manifest) Validate() error {
	if err := m.validateToolchains(); err != nil {
		return err
	}

	groups := make(map[string]bool, len(m.Groups))
	for gi, g := range m.Groups {
		if g.Name == "" {
			return invalid("group %d has no name", gi).WithDetail("group_index", gi)
		}
		if groups[g.Name] {
			return invalid("group %s is defined twice", g.Name).WithDetail("group", g.Name)
		}
		groups[g.Name] = true

		for ti, t := range g.Tasks {
			if err := m.validateTask(t); err != nil {
				return errors.Wrapf(err, errors.ErrConfigInvalid, "group %s, task %d", g.Name, ti).
					WithDetail("group", g.Name).
					WithDetail("task_index", ti)
			}
		}
	}

	names := make(map[string]bool, len(m.Profiles))
	for pi, p := range m.Profiles {
		if p.Name == "" {
			return invalid("profile %d has no name", pi).WithDetail("profile_index", pi)
		}
		if names[p.Name] {
			return invalid("profile %s is defined twice", p.Name).WithDetail("profile", p.Name)
		}
		names[p.Name] = true

		for _, list := range [][]string{p.Groups, p.RootGroups} {
			for _, name := range list {
				if !groups[name] {
					return invalid("profile %s uses unknown group %s", p.Name, name).
						WithDetail("profile", p.Name).
						WithDetail("group", name)
				}
			}
		}
	}
	return nil
}

func (m *Manifest) validateToolchains() error {
	for name, tc := range m.Toolchains {
		if tc.BinDir == "" {
			return invalid("toolchain %s has no bin_dir", name).WithDetail("toolchain", name)
		}
		if len(tc.Install) == 0 {
			return invalid("toolchain %s has no install command", name).WithDetail("toolchain", name)
		}
	}
	return nil
}

func (m *Manifest) validateTask(t TaskConfig) error {
	switch t.Type {
	case TaskCopy:
		if t.Package == "" {
			return invalid("copy task needs a package")
		}
		policy, err := ParsePolicy(t.Policy, t.Choose)
		if err != nil {
			return err
		}
		if err := validateDest(t.Dest); err != nil {
			return err
		}
		if t.Template != nil {
			_, choose := policy.(types.Choose)
			if err := validateTemplate(t, choose); err != nil {
				return err
			}
		}
	case TaskLink:
		if t.Package == "" || t.Src == "" {
			return invalid("link task needs a package and a src")
		}
		if err := validateDest(t.Dest); err != nil {
			return err
		}
	case TaskEnv:
		if t.Var == "" {
			return invalid("env task needs a var")
		}
	case TaskShell:
		if t.Command == "" {
			return invalid("shell task needs a command")
		}
	case TaskTool:
		if t.Name == "" {
			return invalid("tool task needs the tool name")
		}
		if _, ok := m.Toolchains[t.Toolchain]; !ok {
			return invalid("tool %s uses unknown toolchain %q", t.Name, t.Toolchain)
		}
	case "":
		return invalid("task has no type")
	default:
		return invalid("unknown task type %q", t.Type)
	}
	return nil
}

func validateDest(dest map[string]string) error {
	if len(dest) == 0 {
		return invalid("task needs a dest")
	}
	for key := range dest {
		if key == DefaultDestKey {
			continue
		}
		if _, err := platform.ParseTag(key); err != nil {
			return invalid("dest has unknown os %q", key)
		}
	}
	return nil
}

func validateTemplate(t TaskConfig, choose bool) error {
	switch {
	case choose && t.Template.Path != "":
		return invalid("template of a chosen file must not set a path")
	case !choose && t.Template.Path == "":
		return invalid("template needs a path")
	}
	for name, v := range t.Template.Vars {
		byOS, ok := v.(map[string]interface{})
		if !ok {
			continue
		}
		for key := range byOS {
			if key == DefaultDestKey {
				continue
			}
			if _, err := platform.ParseTag(key); err != nil {
				return invalid("template variable %s has unknown os %q", name, key)
			}
		}
	}
	return nil
}

func invalid(format string, args ...interface{}) *errors.DotmanError {
	return errors.Newf(errors.ErrConfigInvalid, format, args...)
}
