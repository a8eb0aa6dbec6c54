package elftest

import (
	"encoding/binary"
	"testing"

	"github.com/lunixbochs/struc"
	"github.com/stretchr/testify/require"

	"github.com/lunixbochs/elfcore/go/elf"
)

func TestSizes(t *testing.T) {
	for _, v := range []struct {
		val  interface{}
		size int
	}{
		{&elf.Header64{}, elf.Header64Size},
		{&elf.Prog64{}, elf.Prog64Size},
		{&elf.Section64{}, elf.Section64Size},
		{&elf.Sym64{}, elf.Sym64Size},
	} {
		size, err := struc.Sizeof(v.val)
		require.NoError(t, err)
		require.Equal(t, v.size, size, "%T", v.val)
	}
}

func TestLayout(t *testing.T) {
	i := Sample(binary.BigEndian)
	p := i.Build(t)
	require.Equal(t, int(i.Header.Shoff)+len(i.Sections)*elf.Section64Size+i.Pad, len(p))
	require.Equal(t, []byte{0x7f, 'E', 'L', 'F', elf.ELFCLASS64, elf.ELFDATA2MSB, elf.EV_CURRENT}, p[:7])
	// e_machine, big endian
	require.Equal(t, []byte{0, byte(elf.EM_X86_64)}, p[18:20])
	text := i.Sections[2]
	require.Equal(t, []byte{0x90, 0x90, 0xc3}, p[text.Off:text.Off+text.Size])
}
