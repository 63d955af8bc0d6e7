package tasks

import (
	"github.com/arthur-debert/dotman/pkg/paths"
	"github.com/arthur-debert/dotman/pkg/types"
)

// CopyUnit installs a package according to its InstallSpec. It is stale
// when the staleness oracle says so; performing it copies the package and
// then renders the template, if any, on the installed copy.
type CopyUnit struct {
	Label string
	Spec  types.InstallSpec
}

// NewCopyUnit creates a CopyUnit named after the package.
func NewCopyUnit(spec types.InstallSpec) *CopyUnit {
	return &CopyUnit{Label: spec.Package.Name, Spec: spec}
}

func (u *CopyUnit) Name() string {
	if u.Label != "" {
		return u.Label
	}
	return u.Spec.Package.Name
}

func (u *CopyUnit) Kind() string { return "copy" }

func (u *CopyUnit) IsStale(ctx *Context) (bool, error) {
	return ctx.newOracle().NeedsUpdate(u.Spec)
}

func (u *CopyUnit) Perform(ctx *Context) error {
	raw, ok := u.Spec.Destination(ctx.OS)
	if !ok {
		return nil
	}
	dest := paths.Resolve(raw, ctx.Env)

	installed, err := ctx.newCopier().Install(u.Spec.Package, u.Spec.Policy, dest)
	if err != nil {
		return err
	}

	ctx.Logger.Info().
		Str("package", u.Spec.Package.Name).
		Str("policy", u.Spec.Policy.String()).
		Str("dest", installed).
		Msg("installed package")

	if u.Spec.Template == nil {
		return nil
	}
	return ctx.newTemplates().Apply(u.Spec.TemplateTarget(installed), u.Spec.Template.Vars)
}
