package models

import (
	"bytes"
	"flag"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMmapString(t *testing.T) {
	m := &Mmap{Addr: 0x400000, Size: 0x1000, Align: 0x1000, Prot: PROT_READ | PROT_EXEC, Desc: ".text"}
	assert.Equal(t, "0x400000-0x401000 r-x align=0x1000 [.text]", m.String())
	m = &Mmap{Addr: 0x10, Size: 0x10, Prot: PROT_READ | PROT_WRITE}
	assert.Equal(t, "0x10-0x20 rw-", m.String())
	assert.Equal(t, "---", ProtString(0))
	assert.True(t, m.Contains(0x1f))
	assert.False(t, m.Contains(0x20))
}

func TestSymbolSort(t *testing.T) {
	syms := []Symbol{{Name: "f10", Addr: 3}, {Name: "f2", Addr: 1}, {Name: "f1", Addr: 3}}
	sort.Sort(SymbolNameSort(syms))
	assert.Equal(t, "f1 f2 f10", names(syms))
	sort.Sort(SymbolAddrSort(syms))
	assert.Equal(t, "f2 f1 f10", names(syms))
}

func names(syms []Symbol) string {
	var s []string
	for _, sym := range syms {
		s = append(s, sym.Name)
	}
	return strings.Join(s, " ")
}

func TestPrintFlags(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.Bool("v", false, "verbose")
	fs.String("backend", "sim", strings.Repeat("word ", 30))
	var flags []*flag.Flag
	fs.VisitAll(func(f *flag.Flag) { flags = append(flags, f) })

	var buf bytes.Buffer
	PrintFlags(&buf, flags)
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.True(t, len(lines) > 2)
	assert.Contains(t, lines[0], "-backend (sim)")
	for _, line := range lines {
		assert.True(t, len(line) <= 80, line)
	}
	assert.Contains(t, lines[len(lines)-1], "-v")
}

func TestHexDump(t *testing.T) {
	out := HexDump(0x1000, []byte("ABCDEFGH12345678xyz"), 64)
	assert.Len(t, out, 2)
	assert.Equal(t, "0x0000000000001000: 4142434445464748 3132333435363738 [ABCDEFGH 12345678]", out[0])
	assert.True(t, strings.HasPrefix(out[1], "0x0000000000001010: 78797a"))
}

func TestPainter(t *testing.T) {
	assert.Equal(t, "main", Painter{}.Name("main"))
	assert.NotEqual(t, "main", Painter{Enabled: true}.Name("main"))
	assert.Equal(t, "", Painter{Enabled: true}.Bad(""))
}
