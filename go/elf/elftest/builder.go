// Package elftest builds synthetic 64-bit ELF images for tests.
package elftest

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/lunixbochs/struc"
	"github.com/stretchr/testify/require"

	"github.com/lunixbochs/elfcore/go/elf"
)

// Image is laid out as: header, program headers, section name table,
// section payloads in order, section headers, then Pad zero bytes.
type Image struct {
	Order    binary.ByteOrder
	Header   elf.Header64
	Progs    []elf.Prog64
	Sections []elf.Section64
	Strings  []byte
	// Data holds the payload of each section; nil payloads keep whatever
	// Off and Size the section was given.
	Data [][]byte
	Pad  int
}

// New returns an x86_64 executable image with a null section and a
// section name table at index 1.
func New(order binary.ByteOrder) *Image {
	data := byte(elf.ELFDATA2LSB)
	if order == binary.BigEndian {
		data = elf.ELFDATA2MSB
	}
	i := &Image{Order: order, Strings: []byte{0}, Pad: 16}
	i.Header.Ident = [elf.EI_NIDENT]byte{elf.ELFMAG0, elf.ELFMAG1, elf.ELFMAG2, elf.ELFMAG3, elf.ELFCLASS64, data, elf.EV_CURRENT}
	i.Header.Type = uint16(elf.ET_EXEC)
	i.Header.Machine = uint16(elf.EM_X86_64)
	i.Header.Version = elf.EV_CURRENT
	i.Header.Entry = 0x400000
	i.Header.Ehsize = elf.Header64Size
	i.AddSection(elf.Section64{}, "", nil)
	i.Header.Shstrndx = uint16(i.AddSection(elf.Section64{Type: elf.SHT_STRTAB}, ".shstrtab", nil))
	return i
}

// OtherOrder is the byte order the host does not use.
func OtherOrder() binary.ByteOrder {
	if elf.HostOrder() == binary.LittleEndian {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// Name appends s to the section name table and returns its offset.
func (i *Image) Name(s string) uint32 {
	if s == "" {
		return 0
	}
	off := uint32(len(i.Strings))
	i.Strings = append(i.Strings, s...)
	i.Strings = append(i.Strings, 0)
	return off
}

func (i *Image) AddSection(s elf.Section64, name string, data []byte) int {
	if name != "" {
		s.Name = i.Name(name)
	}
	i.Sections = append(i.Sections, s)
	i.Data = append(i.Data, data)
	return len(i.Sections) - 1
}

func (i *Image) AddProg(p elf.Prog64) {
	i.Progs = append(i.Progs, p)
}

// Layout fills in every table offset, count and entry size, and the offset
// and size of each section with a payload.
func (i *Image) Layout() {
	off := uint64(elf.Header64Size)
	i.Header.Phoff = off
	i.Header.Phnum = uint16(len(i.Progs))
	i.Header.Phentsize = elf.Prog64Size
	off += uint64(len(i.Progs)) * elf.Prog64Size
	str := &i.Sections[i.Header.Shstrndx]
	str.Off = off
	str.Size = uint64(len(i.Strings))
	off += str.Size
	for j, d := range i.Data {
		if d == nil {
			continue
		}
		i.Sections[j].Off = off
		i.Sections[j].Size = uint64(len(d))
		off += uint64(len(d))
	}
	i.Header.Shoff = off
	i.Header.Shnum = uint16(len(i.Sections))
	i.Header.Shentsize = elf.Section64Size
}

// Encode serializes the image as is, without running Layout.
func (i *Image) Encode(tb testing.TB) []byte {
	var buf bytes.Buffer
	pack := func(v interface{}) {
		require.NoError(tb, struc.PackWithOrder(&buf, v, i.Order))
	}
	pack(&i.Header)
	for j := range i.Progs {
		pack(&i.Progs[j])
	}
	buf.Write(i.Strings)
	for _, d := range i.Data {
		buf.Write(d)
	}
	for j := range i.Sections {
		pack(&i.Sections[j])
	}
	buf.Write(make([]byte, i.Pad))
	return buf.Bytes()
}

func (i *Image) Build(tb testing.TB) []byte {
	i.Layout()
	return i.Encode(tb)
}

// Symtab encodes syms as a symbol table payload, after the null symbol.
func (i *Image) Symtab(tb testing.TB, syms ...elf.Sym64) []byte {
	var buf bytes.Buffer
	all := append([]elf.Sym64{{}}, syms...)
	for j := range all {
		require.NoError(tb, struc.PackWithOrder(&buf, &all[j], i.Order))
	}
	return buf.Bytes()
}

// Sample is a small valid executable: one R+X PT_LOAD segment at 0x400000
// covering the first 0x40 file bytes, plus .text (index 2) and .data
// (index 3).
func Sample(order binary.ByteOrder) *Image {
	i := New(order)
	i.AddProg(elf.Prog64{Type: elf.PT_LOAD, Flags: elf.PF_R | elf.PF_X, Off: 0, Vaddr: 0x400000, Filesz: 0x40, Memsz: 0x1000, Align: 0x1000})
	i.AddSection(elf.Section64{Type: elf.SHT_PROGBITS, Flags: elf.SHF_ALLOC | elf.SHF_EXECINSTR, Addr: 0x400000}, ".text", []byte{0x90, 0x90, 0xc3})
	i.AddSection(elf.Section64{Type: elf.SHT_PROGBITS, Flags: elf.SHF_ALLOC | elf.SHF_WRITE, Addr: 0x401000}, ".data", []byte{1, 2, 3, 4})
	return i
}

// Linkable returns an image with .text (2), .skip (3), .strtab (4) and a
// .symtab (5) holding: main (defined in .text at 0x400000), puts, missing
// and exit (undefined), an unnamed section symbol and one whose name
// offset is out of range.
func Linkable(tb testing.TB, order binary.ByteOrder) *Image {
	i := New(order)
	i.AddSection(elf.Section64{Type: elf.SHT_PROGBITS, Flags: elf.SHF_ALLOC | elf.SHF_EXECINSTR, Addr: 0x400000, Addralign: 16}, ".text", []byte{0xc3})
	i.AddSection(elf.Section64{Type: elf.SHT_PROGBITS, Flags: elf.SHF_ALLOC | elf.SHF_WRITE, Addr: 0x401000, Addralign: 8}, ".skip", []byte{0})
	strtab := []byte("\x00main\x00puts\x00missing\x00exit\x00")
	strndx := i.AddSection(elf.Section64{Type: elf.SHT_STRTAB}, ".strtab", strtab)
	syms := i.Symtab(tb,
		elf.Sym64{Name: 1, Info: 0x12, Shndx: 2, Value: 0x400000},
		elf.Sym64{Name: 6, Info: 0x12, Shndx: elf.SHN_UNDEF},
		elf.Sym64{Name: 11, Info: 0x12, Shndx: elf.SHN_UNDEF},
		elf.Sym64{Name: 0, Info: 0x03, Shndx: 2},
		elf.Sym64{Name: 0x1000, Info: 0x12, Shndx: elf.SHN_UNDEF},
		elf.Sym64{Name: 19, Info: 0x12, Shndx: elf.SHN_UNDEF},
	)
	i.AddSection(elf.Section64{Type: elf.SHT_SYMTAB, Link: uint32(strndx), Entsize: elf.Sym64Size, Addralign: 8}, ".symtab", syms)
	return i
}
