package output

import (
	"fmt"
	"io"
	"sync"

	"github.com/arthur-debert/dotman/pkg/output/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Progress glyphs.
const (
	GlyphPerformed = "✅"
	GlyphSkipped   = "➡"
	GlyphFailed    = "❌"
)

// Terminal prints one line per reported unit. It satisfies tasks.Reporter.
type Terminal struct {
	mu     sync.Mutex
	out    io.Writer
	markup *Markup
}

// NewTerminal writes progress to w, styled when color is true.
func NewTerminal(w io.Writer, color bool) *Terminal {
	r := lipgloss.NewRenderer(w)
	if !color {
		r.SetColorProfile(termenv.Ascii)
	}
	return &Terminal{out: w, markup: NewMarkup(r, StyleMap(styles.StyleRegistry))}
}

// NewTerminalFor picks colour for w from format: FormatTerminal styles,
// everything else is plain.
func NewTerminalFor(w io.Writer, format Format) *Terminal {
	return NewTerminal(w, format == FormatTerminal)
}

func (t *Terminal) Performing(name string, dryRun bool) {
	if dryRun {
		t.line("%s <Pending>%s</Pending> <MutedItalic>(dry run)</MutedItalic>", GlyphPerformed, Escape(name))
		return
	}
	t.line("%s <Performed>%s</Performed>", GlyphPerformed, Escape(name))
}

func (t *Terminal) Skipped(name string) {
	t.line("%s <Skipped>%s</Skipped>", GlyphSkipped, Escape(name))
}

func (t *Terminal) Failed(name string, err error) {
	t.line("%s <Failed>%s</Failed>: <Muted>%s</Muted>", GlyphFailed, Escape(name), Escape(err.Error()))
}

// Banner prints a styled one-off line, such as the dry-run notice.
func (t *Terminal) Banner(style, text string) {
	t.line("<%s>%s</%s>", style, Escape(text), style)
}

// Error prints err in the error style.
func (t *Terminal) Error(err error) {
	t.line("<Error>Error:</Error> %s", Escape(err.Error()))
}

func (t *Terminal) line(format string, args ...interface{}) {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, _ = fmt.Fprintln(t.out, t.markup.Expand(fmt.Sprintf(format, args...)))
}
