package tasks

import (
	"github.com/arthur-debert/dotman/pkg/config"
	"github.com/arthur-debert/dotman/pkg/errors"
	"github.com/arthur-debert/dotman/pkg/types"
)

// PackageLoader returns the package with the given name.
type PackageLoader func(name string) (types.Package, error)

// FromConfig builds the unit for one manifest task entry.
func FromConfig(t config.TaskConfig, m *config.Manifest, load PackageLoader) (Unit, error) {
	switch t.Type {
	case config.TaskCopy:
		pkg, err := load(t.Package)
		if err != nil {
			return nil, err
		}
		spec, err := t.InstallSpec(pkg)
		if err != nil {
			return nil, err
		}
		return &CopyUnit{Label: t.Label(), Spec: spec}, nil

	case config.TaskLink:
		pkg, err := load(t.Package)
		if err != nil {
			return nil, err
		}
		dest, err := config.Destinations(t.Dest)
		if err != nil {
			return nil, err
		}
		return &LinkUnit{Label: t.Label(), Package: pkg, Src: t.Src, Destinations: dest}, nil

	case config.TaskEnv:
		return &EnvUnit{Var: t.Var, Value: t.Value}, nil

	case config.TaskShell:
		return &ShellUnit{Label: t.Label(), Command: t.Command, Unless: t.Unless}, nil

	case config.TaskTool:
		tc, ok := m.Toolchains[t.Toolchain]
		if !ok {
			return nil, errors.Newf(errors.ErrConfigInvalid, "unknown toolchain %q", t.Toolchain)
		}
		return &ToolUnit{
			Toolchain: Toolchain{Name: t.Toolchain, BinDir: tc.BinDir, Install: tc.Install},
			Tool:      t.Name,
			Bin:       t.Bin,
		}, nil
	}
	return nil, errors.Newf(errors.ErrConfigInvalid, "unknown task type %q", t.Type)
}

// FromGroup builds the set of a manifest group, keeping task order.
func FromGroup(g *config.Group, m *config.Manifest, load PackageLoader) (*Set, error) {
	set := NewSet(g.Name)
	for i, t := range g.Tasks {
		u, err := FromConfig(t, m, load)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigInvalid, "group %s, task %d", g.Name, i).
				WithDetail("group", g.Name).
				WithDetail("task_index", i)
		}
		set.Add(u)
	}
	return set, nil
}
