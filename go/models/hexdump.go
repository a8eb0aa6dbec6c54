package models

import (
	"encoding/hex"
	"fmt"
	"strings"
)

const dumpWidth = 80

func printable(p []byte) string {
	o := make([]byte, len(p))
	for i, c := range p {
		if c >= 0x20 && c <= 0x7e {
			o[i] = c
		} else {
			o[i] = '.'
		}
	}
	return string(o)
}

// HexDump renders mem as lines of word-sized hex groups followed by their
// printable bytes, sized to fit dumpWidth columns.
func HexDump(base uint64, mem []byte, bits int) []string {
	word := bits / 8
	addrFmt := fmt.Sprintf("0x%%0%dx:", word*2)
	words := ((dumpWidth - word*2 - 4) * 3 / 4) / ((word + 1) * 2)
	lineSize := words * word

	var out []string
	hexCol := make([]string, words)
	textCol := make([]string, words)
	for off := 0; off < len(mem); off += lineSize {
		line := mem[off:]
		for j := range hexCol {
			start, end := j*word, (j+1)*word
			if start >= len(line) {
				hexCol[j] = strings.Repeat(" ", word*2)
				textCol[j] = strings.Repeat(" ", word)
				continue
			}
			short := 0
			if end > len(line) {
				short = end - len(line)
				end = len(line)
			}
			hexCol[j] = hex.EncodeToString(line[start:end]) + strings.Repeat("  ", short)
			textCol[j] = printable(line[start:end]) + strings.Repeat(" ", short)
		}
		out = append(out, fmt.Sprintf("%s %s [%s]",
			fmt.Sprintf(addrFmt, base+uint64(off)), strings.Join(hexCol, " "), strings.Join(textCol, " ")))
	}
	return out
}
