package diagfmt

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"pepfix/internal/diag"
)

type palette struct {
	loc  *color.Color
	code *color.Color
	sev  map[diag.Severity]*color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		loc:  color.New(color.Bold),
		code: color.New(color.Faint),
		sev: map[diag.Severity]*color.Color{
			diag.SevInfo:    color.New(color.FgCyan),
			diag.SevWarning: color.New(color.FgYellow, color.Bold),
			diag.SevError:   color.New(color.FgRed, color.Bold),
		},
	}
	set := func(c *color.Color) {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	set(p.loc)
	set(p.code)
	for _, c := range p.sev {
		set(c)
	}
	return p
}

// Pretty writes one line per diagnostic:
//
//	<path>:<line>: <SEV> <CODE> <message>
//
// Whole-file diagnostics (Line == 0) omit the line number. Items are
// printed in bag order; call bag.Sort first for stable output.
func Pretty(w io.Writer, bag *diag.Bag, opts PrettyOpts) {
	if bag == nil {
		return
	}
	p := newPalette(opts.Color)
	for _, d := range bag.Items() {
		if d.Severity < opts.MinLevel {
			continue
		}
		loc := formatPath(d.Path, opts.PathMode, opts.BaseDir)
		if d.Line > 0 {
			loc = fmt.Sprintf("%s:%d", loc, d.Line)
		}
		sev := d.Severity.String()
		if c, ok := p.sev[d.Severity]; ok {
			sev = c.Sprint(sev)
		}
		// Diagnostics output is best effort.
		_, _ = fmt.Fprintf(w, "%s: %s %s %s\n", //nolint:errcheck
			p.loc.Sprint(loc), sev, p.code.Sprint(d.Code.ID()), d.Message)
	}
}
