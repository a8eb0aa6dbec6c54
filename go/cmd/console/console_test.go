package console

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lunixbochs/elfcore/go/elf"
	"github.com/lunixbochs/elfcore/go/elf/elftest"
	"github.com/lunixbochs/elfcore/go/models"
)

func newContext(t *testing.T, img *elftest.Image) (*Context, *bytes.Buffer) {
	f, err := elf.Parse(img.Build(t))
	require.NoError(t, err)
	var out bytes.Buffer
	c := &Context{Writer: &out, Config: models.NewConfig(), File: f}
	require.NoError(t, c.Reset())
	return c, &out
}

func TestConsoleLoad(t *testing.T) {
	c, out := newContext(t, elftest.Sample(binary.LittleEndian))
	require.NoError(t, Run(c, "info"))
	assert.Contains(t, out.String(), "entry 0x400000")

	out.Reset()
	require.NoError(t, Run(c, "load"))
	assert.Contains(t, out.String(), "0x400000-0x401000 r-x")

	out.Reset()
	require.NoError(t, Run(c, "mem 0x400000 4"))
	assert.Contains(t, out.String(), "0x0000000000400000: 7f454c46")

	out.Reset()
	require.NoError(t, Run(c, "load"))
	assert.Contains(t, out.String(), "error: load failed")

	out.Reset()
	require.NoError(t, Run(c, "reset"))
	require.NoError(t, Run(c, "maps"))
	assert.Contains(t, out.String(), "(no mappings)")
	require.NoError(t, Run(c, "load"))
}

func TestConsoleLink(t *testing.T) {
	c, out := newContext(t, elftest.Linkable(t, binary.LittleEndian))
	require.NoError(t, Run(c, "sym main"))
	assert.Contains(t, out.String(), "error:")

	require.NoError(t, Run(c, "resolve puts 0x1234"))
	require.NoError(t, Run(c, "link"))
	out.Reset()
	require.NoError(t, Run(c, "sym puts"))
	assert.Equal(t, "  0x00000000001234 puts\n", out.String())

	out.Reset()
	require.NoError(t, Run(c, "syms"))
	assert.Contains(t, out.String(), "main")
}

func TestConsoleParse(t *testing.T) {
	c, out := newContext(t, elftest.Sample(binary.LittleEndian))
	require.NoError(t, Run(c, ""))
	assert.Empty(t, out.String())

	require.NoError(t, Run(c, "frobnicate"))
	assert.Equal(t, "command not found.\n", out.String())

	out.Reset()
	require.NoError(t, Run(c, `sym "unterminated`))
	assert.Contains(t, out.String(), "parse error")

	out.Reset()
	require.NoError(t, Run(c, "mem nowhere 4"))
	assert.Contains(t, out.String(), "error:")

	out.Reset()
	require.NoError(t, Run(c, "help"))
	assert.Contains(t, out.String(), "quit")

	assert.Equal(t, ErrQuit, Run(c, "quit"))
}
