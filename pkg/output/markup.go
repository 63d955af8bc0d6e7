package output

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/beevik/etree"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// noFormatTag wraps content shown only when colour is off.
const noFormatTag = "no-format"

const rootTag = "markup"

// StyleMap maps tag names to styles.
type StyleMap map[string]lipgloss.Style

// Markup expands style tags with a lipgloss renderer. The renderer's colour
// profile decides whether styles apply.
type Markup struct {
	renderer *lipgloss.Renderer
	styles   StyleMap
}

// NewMarkup creates a Markup. A nil renderer uses lipgloss' default one.
func NewMarkup(r *lipgloss.Renderer, styles StyleMap) *Markup {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return &Markup{renderer: r, styles: styles}
}

// Color reports whether styles are applied.
func (m *Markup) Color() bool {
	return m.renderer.ColorProfile() != termenv.Ascii
}

// Expand replaces tags with styled text. Unknown tags keep their content.
// Input that is not well-formed markup is returned unchanged.
func (m *Markup) Expand(text string) string {
	if !strings.Contains(text, "<") {
		return text
	}
	root, ok := parse(text)
	if !ok {
		return text
	}
	return m.walk(root, m.Color())
}

// Render executes a Go template with data and expands the result.
func (m *Markup) Render(tmpl string, data interface{}) (string, error) {
	t, err := template.New("markup").Option("missingkey=error").Parse(tmpl)
	if err != nil {
		return "", fmt.Errorf("template parse: %w", err)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("template execute: %w", err)
	}
	return m.Expand(buf.String()), nil
}

func (m *Markup) walk(e *etree.Element, color bool) string {
	var b strings.Builder
	for _, tok := range e.Child {
		switch t := tok.(type) {
		case *etree.CharData:
			b.WriteString(t.Data)
		case *etree.Element:
			inner := m.walk(t, color)
			if t.Tag == noFormatTag {
				if !color {
					b.WriteString(inner)
				}
				continue
			}
			style, ok := m.styles[t.Tag]
			if ok && color {
				inner = style.Renderer(m.renderer).Render(inner)
			}
			b.WriteString(inner)
		}
	}
	return b.String()
}

// StripTags removes every tag, keeping content. Input that is not
// well-formed markup is returned unchanged.
func StripTags(text string) string {
	if !strings.Contains(text, "<") {
		return text
	}
	root, ok := parse(text)
	if !ok {
		return text
	}
	return (&Markup{}).walk(root, false)
}

// Escape makes text safe to embed in markup.
func Escape(text string) string {
	return escaper.Replace(text)
}

var escaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

func parse(text string) (*etree.Element, bool) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString("<" + rootTag + ">" + text + "</" + rootTag + ">"); err != nil {
		return nil, false
	}
	root := doc.Root()
	if root == nil || root.Tag != rootTag {
		return nil, false
	}
	return root, true
}
