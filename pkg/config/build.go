package config

import (
	"strings"

	"github.com/arthur-debert/dotman/pkg/errors"
	"github.com/arthur-debert/dotman/pkg/platform"
	"github.com/arthur-debert/dotman/pkg/types"
)

// ParsePolicy turns the policy and choose fields of a copy task into a
// CopyPolicy. Setting choose selects Choose; policy must then be empty or
// "choose". Without choose, policy defaults to clean.
func ParsePolicy(policy, choose string) (types.CopyPolicy, error) {
	policy = strings.ToLower(strings.TrimSpace(policy))
	if choose != "" {
		if policy != "" && policy != string(types.PolicyChoose) {
			return nil, invalid("choose cannot be combined with policy %q", policy)
		}
		return types.Choose{RelPath: choose}, nil
	}
	switch types.PolicyKind(policy) {
	case types.PolicyClean, "":
		return types.Clean{}, nil
	case types.PolicyMerge:
		return types.Merge{}, nil
	case types.PolicyChoose:
		return nil, invalid("policy choose needs a choose file")
	default:
		return nil, invalid("unknown copy policy %q", policy)
	}
}

// Destinations expands a dest table into one entry per OS tag. The default
// key fills every tag without an explicit entry.
func Destinations(dest map[string]string) (map[platform.OSTag]string, error) {
	out := make(map[platform.OSTag]string, len(platform.AllTags))
	if def, ok := dest[DefaultDestKey]; ok && def != "" {
		for _, tag := range platform.AllTags {
			out[tag] = def
		}
	}
	for key, value := range dest {
		if key == DefaultDestKey {
			continue
		}
		tag, err := platform.ParseTag(key)
		if err != nil {
			return nil, invalid("dest has unknown os %q", key)
		}
		out[tag] = value
	}
	return out, nil
}

// TemplateValues converts raw template variables. A table becomes an
// OS-conditional value; anything else a scalar.
func TemplateValues(vars map[string]interface{}) (map[string]types.TemplateValue, error) {
	out := make(map[string]types.TemplateValue, len(vars))
	for name, raw := range vars {
		table, ok := raw.(map[string]interface{})
		if !ok {
			out[name] = types.Scalar(raw)
			continue
		}

		byOS := make(map[platform.OSTag]interface{}, len(table))
		var fallback interface{}
		hasFallback := false
		for key, v := range table {
			if key == DefaultDestKey {
				fallback, hasFallback = v, true
				continue
			}
			tag, err := platform.ParseTag(key)
			if err != nil {
				return nil, invalid("template variable %s has unknown os %q", name, key)
			}
			byOS[tag] = v
		}
		out[name] = types.PerOS(byOS, fallback, hasFallback)
	}
	return out, nil
}

// InstallSpec builds the install spec of a copy task for pkg.
func (t TaskConfig) InstallSpec(pkg types.Package) (types.InstallSpec, error) {
	if t.Type != TaskCopy {
		return types.InstallSpec{}, invalid("task %s is not a copy task", t.Label())
	}

	policy, err := ParsePolicy(t.Policy, t.Choose)
	if err != nil {
		return types.InstallSpec{}, err
	}
	dest, err := Destinations(t.Dest)
	if err != nil {
		return types.InstallSpec{}, err
	}

	spec := types.InstallSpec{
		Package:      pkg,
		Destinations: dest,
		Policy:       policy,
	}
	if t.Template != nil {
		vars, err := TemplateValues(t.Template.Vars)
		if err != nil {
			return types.InstallSpec{}, err
		}
		spec.Template = &types.TemplateSpec{Path: t.Template.Path, Vars: vars}
	}

	if err := spec.Validate(); err != nil {
		return types.InstallSpec{}, errors.Wrap(err, errors.ErrConfigInvalid, "invalid install spec")
	}
	return spec, nil
}
