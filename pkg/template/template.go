// Package template renders an installed file in place. It runs after the
// copy that produced the file, so the package source (the template) is
// never modified and re-rendering with the same variables is idempotent.
//
// Files use Go text/template syntax. Besides the variables, three helper
// functions are available:
//
//	{{ os }}            the current OS tag, e.g. "macos"
//	{{ isOS "linux" }}  whether the current OS has the given tag
//	{{ env "HOME" }}    an environment variable, empty when unset
//
// Referencing a variable that was not provided is an error.
package template

import (
	"bytes"
	gotemplate "text/template"

	"github.com/arthur-debert/dotman/pkg/errors"
	"github.com/arthur-debert/dotman/pkg/logging"
	"github.com/arthur-debert/dotman/pkg/paths"
	"github.com/arthur-debert/dotman/pkg/platform"
	"github.com/arthur-debert/dotman/pkg/types"
	"github.com/spf13/afero"
)

// Processor renders destination files on a filesystem.
type Processor struct {
	fs  afero.Fs
	env paths.Env
	os  platform.OSTag
}

// New creates a Processor for the given OS. env backs the env helper.
func New(fsys afero.Fs, env paths.Env, os platform.OSTag) *Processor {
	return &Processor{fs: fsys, env: env, os: os}
}

// Apply renders filePath with vars and writes the result back, keeping the
// file mode.
func (p *Processor) Apply(filePath string, vars map[string]types.TemplateValue) error {
	logger := logging.GetLogger("template")

	info, err := p.fs.Stat(filePath)
	if err != nil {
		return errors.Wrapf(err, errors.ErrTemplateRender, "template target %s is not readable", filePath)
	}

	content, err := afero.ReadFile(p.fs, filePath)
	if err != nil {
		return errors.Wrapf(err, errors.ErrTemplateRender, "failed to read template %s", filePath)
	}

	data, err := types.ResolveAll(vars, p.os)
	if err != nil {
		return errors.Wrapf(err, errors.ErrTemplateRender, "failed to resolve variables for %s", filePath)
	}

	rendered, err := p.Render(filePath, string(content), data)
	if err != nil {
		return err
	}

	if err := afero.WriteFile(p.fs, filePath, rendered, info.Mode().Perm()); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write rendered %s", filePath)
	}

	logger.Debug().
		Str("file", filePath).
		Int("vars", len(data)).
		Msg("rendered template")
	return nil
}

// Render evaluates text against data. name only appears in error messages.
func (p *Processor) Render(name, text string, data map[string]interface{}) ([]byte, error) {
	tmpl, err := gotemplate.New(name).
		Option("missingkey=error").
		Funcs(p.funcs()).
		Parse(text)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrTemplateRender, "failed to parse template %s", name)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, errors.Wrapf(err, errors.ErrTemplateRender, "failed to render template %s", name)
	}
	return buf.Bytes(), nil
}

func (p *Processor) funcs() gotemplate.FuncMap {
	return gotemplate.FuncMap{
		"os": func() string {
			return p.os.String()
		},
		"isOS": func(tag string) bool {
			parsed, err := platform.ParseTag(tag)
			return err == nil && parsed == p.os
		},
		"env": func(name string) string {
			if p.env == nil {
				return ""
			}
			return p.env.Getenv(name)
		},
	}
}
