package models

import (
	"flag"
	"fmt"
	"io"
	"strings"
)

const usageWidth = 80

// wrapText splits s into lines of at most width bytes, preferring to break
// at a space or newline.
func wrapText(s string, width int) []string {
	var lines []string
	for len(s) > width {
		cut := strings.LastIndexAny(s[:width], " \n")
		if cut <= 0 {
			lines = append(lines, s[:width])
			s = s[width:]
			continue
		}
		lines = append(lines, s[:cut])
		s = s[cut+1:]
	}
	return append(lines, s)
}

// PrintFlags writes one aligned entry per flag, wrapping usage text to
// usageWidth columns.
func PrintFlags(w io.Writer, flags []*flag.Flag) {
	nameWidth, defWidth := 0, 0
	for _, f := range flags {
		if len(f.Name) > nameWidth {
			nameWidth = len(f.Name)
		}
		if len(f.DefValue) > defWidth {
			defWidth = len(f.DefValue)
		}
	}
	indent := nameWidth + defWidth + 7
	for _, f := range flags {
		def := ""
		switch f.DefValue {
		case "", "[]", "false":
		default:
			def = "(" + f.DefValue + ")"
		}
		fmt.Fprintf(w, "  -%-*s %-*s ", nameWidth, f.Name, defWidth+2, def)
		for i, line := range wrapText(f.Usage, usageWidth-indent) {
			if i > 0 {
				fmt.Fprint(w, strings.Repeat(" ", indent))
			}
			fmt.Fprintln(w, line)
		}
	}
}
