package elf_test

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/lunixbochs/elfcore/go/elf"
	"github.com/lunixbochs/elfcore/go/elf/elftest"
)

func requireReject(t *testing.T, image []byte, want error) {
	t.Helper()
	f, err := elf.Parse(image)
	require.Nil(t, f)
	require.Error(t, err)
	require.Equal(t, want, errors.Cause(err), "got %v", err)
}

func TestParse(t *testing.T) {
	img := elftest.Sample(binary.LittleEndian)
	image := img.Build(t)
	f, err := elf.Parse(image)
	require.NoError(t, err)
	require.Equal(t, 64, f.Bits)
	require.Equal(t, elf.ET_EXEC, f.Type)
	require.Equal(t, elf.EM_X86_64, f.Machine)
	require.Equal(t, uint64(0x400000), f.Entry)
	require.Equal(t, 1, f.StringIndex())
	require.Equal(t, img.Strings, f.Strings())
	require.False(t, f.Consumed())
	require.Len(t, f.Progs(), 1)
	require.Len(t, f.Sections(), 4)
	require.Equal(t, ".shstrtab", f.SectionName(1))
	require.Equal(t, ".text", f.SectionName(2))
	require.Equal(t, ".data", f.SectionName(3))
	require.Equal(t, "", f.SectionName(0))
	require.Equal(t, "", f.SectionName(99))
	require.Equal(t, []byte{0x90, 0x90, 0xc3}, f.SectionData(2))
	require.Equal(t, image[:0x40], f.SegmentData(0))
	require.Nil(t, f.SegmentData(1))
	i, s := f.Section(".data")
	require.Equal(t, 3, i)
	require.Equal(t, uint64(0x401000), s.Addr)
	i, s = f.Section(".missing")
	require.Equal(t, -1, i)
	require.Nil(t, s)
}

func TestParseByteOrder(t *testing.T) {
	for _, order := range []binary.ByteOrder{binary.LittleEndian, binary.BigEndian} {
		f, err := elf.Parse(elftest.Sample(order).Build(t))
		require.NoError(t, err, "%v", order)
		require.Equal(t, order != elf.HostOrder(), f.Flip(), "%v", order)
		// decoded values are identical whichever order the file uses
		require.Equal(t, elf.EM_X86_64, f.Machine)
		require.Equal(t, uint64(0x400000), f.Entry)
		require.Equal(t, uint64(0x1000), f.Progs()[0].Memsz)
		require.Equal(t, uint32(elf.PF_R|elf.PF_X), f.Progs()[0].Flags)
		require.Equal(t, ".data", f.SectionName(3))
	}
}

func TestParseIdent(t *testing.T) {
	good := elftest.Sample(binary.LittleEndian).Build(t)

	requireReject(t, nil, elf.ErrMalformedIdent)
	requireReject(t, good[:elf.EI_NIDENT-1], elf.ErrMalformedIdent)
	requireReject(t, good[:elf.Header64Size-1], elf.ErrMalformedIdent)

	for _, i := range []int{elf.EI_MAG0, elf.EI_MAG1, elf.EI_MAG2, elf.EI_MAG3} {
		image := append([]byte(nil), good...)
		image[i] ^= 0xff
		requireReject(t, image, elf.ErrMalformedIdent)
	}
	for _, v := range []byte{elf.EV_NONE, 2, 0xff} {
		image := append([]byte(nil), good...)
		image[elf.EI_VERSION] = v
		requireReject(t, image, elf.ErrMalformedIdent)
	}
	for _, v := range []byte{elf.ELFDATANONE, 3} {
		image := append([]byte(nil), good...)
		image[elf.EI_DATA] = v
		requireReject(t, image, elf.ErrMalformedIdent)
	}
}

func TestParseClass(t *testing.T) {
	for _, class := range []byte{elf.ELFCLASSNONE, elf.ELFCLASS32, 3, 0xff} {
		image := elftest.Sample(binary.LittleEndian).Build(t)
		image[elf.EI_CLASS] = class
		requireReject(t, image, elf.ErrUnsupportedClass)
	}
}

func TestParseTableBounds(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(h *elf.Header64, size uint64)
	}{
		{"phoff past end", func(h *elf.Header64, size uint64) { h.Phoff = size }},
		{"shoff past end", func(h *elf.Header64, size uint64) { h.Shoff = size + 100 }},
		{"phoff wraps", func(h *elf.Header64, size uint64) { h.Phoff = math.MaxUint64 - 8 }},
		{"shoff wraps", func(h *elf.Header64, size uint64) { h.Shoff = math.MaxUint64 - elf.Section64Size }},
		{"phdr table too long", func(h *elf.Header64, size uint64) { h.Phnum = 0xffff; h.Phentsize = 0xffff }},
		{"shdr table too long", func(h *elf.Header64, size uint64) { h.Shnum = 0x1000 }},
		{"phdr table ends at eof", func(h *elf.Header64, size uint64) { h.Phoff = size - elf.Prog64Size }},
		{"short phentsize", func(h *elf.Header64, size uint64) { h.Phentsize = elf.Prog64Size - 1 }},
		{"short shentsize", func(h *elf.Header64, size uint64) { h.Shentsize = 8 }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			img := elftest.Sample(binary.BigEndian)
			size := uint64(len(img.Build(t)))
			c.mutate(&img.Header, size)
			requireReject(t, img.Encode(t), elf.ErrOutOfBoundsTable)
		})
	}
}

func TestParseProgBounds(t *testing.T) {
	img := elftest.Sample(binary.LittleEndian)
	img.AddProg(elf.Prog64{Type: elf.PT_NOTE, Off: math.MaxUint64 - 4, Filesz: 16})
	requireReject(t, img.Build(t), elf.ErrOutOfBoundsEntry)

	img = elftest.Sample(binary.LittleEndian)
	size := uint64(len(img.Build(t)))
	img.Progs[0].Filesz = size
	requireReject(t, img.Encode(t), elf.ErrOutOfBoundsEntry)
}

func TestParseStringTable(t *testing.T) {
	img := elftest.Sample(binary.LittleEndian)
	img.Layout()
	img.Header.Shstrndx = img.Header.Shnum
	requireReject(t, img.Encode(t), elf.ErrInvalidStringTable)

	img = elftest.Sample(binary.LittleEndian)
	img.Layout()
	img.Header.Shstrndx = elf.SHN_UNDEF
	requireReject(t, img.Encode(t), elf.ErrInvalidStringTable)

	img = elftest.Sample(binary.LittleEndian)
	img.Layout()
	img.Sections[1].Size = math.MaxUint64
	requireReject(t, img.Encode(t), elf.ErrInvalidStringTable)

	// no sections at all leaves no string table to reference
	img = elftest.Sample(binary.LittleEndian)
	img.Layout()
	img.Header.Shnum = 0
	img.Header.Shstrndx = 0
	requireReject(t, img.Encode(t), elf.ErrInvalidStringTable)
}

func TestParseSectionBounds(t *testing.T) {
	img := elftest.Sample(binary.LittleEndian)
	img.Layout()
	img.Sections[2].Off = math.MaxUint64 - 1
	img.Sections[2].Size = 4
	requireReject(t, img.Encode(t), elf.ErrOutOfBoundsEntry)

	// SHT_NOBITS sections are held to the same rule
	img = elftest.Sample(binary.LittleEndian)
	img.AddSection(elf.Section64{Type: elf.SHT_NOBITS, Size: 1 << 20}, ".bss", nil)
	requireReject(t, img.Build(t), elf.ErrOutOfBoundsEntry)
}

func TestParseNameOffset(t *testing.T) {
	img := elftest.Sample(binary.LittleEndian)
	img.Layout()
	img.Sections[3].Name = uint32(len(img.Strings))
	requireReject(t, img.Encode(t), elf.ErrInvalidNameOffset)

	img = elftest.Sample(binary.LittleEndian)
	img.Layout()
	img.Sections[3].Name = uint32(len(img.Strings) - 1)
	f, err := elf.Parse(img.Encode(t))
	require.NoError(t, err)
	require.Equal(t, "", f.SectionName(3))
}

func TestParseSkipsNullSection(t *testing.T) {
	// garbage in the null entry is never looked at
	img := elftest.Sample(binary.LittleEndian)
	img.Layout()
	img.Sections[0] = elf.Section64{Name: math.MaxUint32, Off: math.MaxUint64, Size: math.MaxUint64}
	f, err := elf.Parse(img.Encode(t))
	require.NoError(t, err)
	require.Equal(t, elf.Section64{}, f.Sections()[0])
}
