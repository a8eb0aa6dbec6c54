package models

import (
	"github.com/mgutz/ansi"
)

var (
	colorAddr = ansi.ColorCode("cyan")
	colorName = ansi.ColorCode("default+b")
	colorWarn = ansi.ColorCode("yellow")
	colorBad  = ansi.ColorCode("red+b")
)

// Painter colors output when enabled.
type Painter struct {
	Enabled bool
}

func (p Painter) paint(s, color string) string {
	if !p.Enabled || s == "" {
		return s
	}
	return color + s + ansi.Reset
}

func (p Painter) Addr(s string) string { return p.paint(s, colorAddr) }
func (p Painter) Name(s string) string { return p.paint(s, colorName) }
func (p Painter) Warn(s string) string { return p.paint(s, colorWarn) }
func (p Painter) Bad(s string) string  { return p.paint(s, colorBad) }
