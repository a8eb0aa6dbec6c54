package elf

import (
	"bytes"

	"github.com/lunixbochs/struc"
)

// On-disk sizes of the 64-bit structures.
const (
	Header64Size  = 64
	Prog64Size    = 56
	Section64Size = 64
	Sym64Size     = 24
)

type Header64 struct {
	Ident     [EI_NIDENT]byte
	Type      uint16
	Machine   uint16
	Version   uint32
	Entry     uint64
	Phoff     uint64
	Shoff     uint64
	Flags     uint32
	Ehsize    uint16
	Phentsize uint16
	Phnum     uint16
	Shentsize uint16
	Shnum     uint16
	Shstrndx  uint16
}

func (h *Header64) swap(flip bool) {
	h.Type = Flip16(h.Type, flip)
	h.Machine = Flip16(h.Machine, flip)
	h.Version = Flip32(h.Version, flip)
	h.Entry = Flip64(h.Entry, flip)
	h.Phoff = Flip64(h.Phoff, flip)
	h.Shoff = Flip64(h.Shoff, flip)
	h.Flags = Flip32(h.Flags, flip)
	h.Ehsize = Flip16(h.Ehsize, flip)
	h.Phentsize = Flip16(h.Phentsize, flip)
	h.Phnum = Flip16(h.Phnum, flip)
	h.Shentsize = Flip16(h.Shentsize, flip)
	h.Shnum = Flip16(h.Shnum, flip)
	h.Shstrndx = Flip16(h.Shstrndx, flip)
}

// Prog64 is a program header.
type Prog64 struct {
	Type   uint32
	Flags  uint32
	Off    uint64
	Vaddr  uint64
	Paddr  uint64
	Filesz uint64
	Memsz  uint64
	Align  uint64
}

func (p *Prog64) swap(flip bool) {
	p.Type = Flip32(p.Type, flip)
	p.Flags = Flip32(p.Flags, flip)
	p.Off = Flip64(p.Off, flip)
	p.Vaddr = Flip64(p.Vaddr, flip)
	p.Paddr = Flip64(p.Paddr, flip)
	p.Filesz = Flip64(p.Filesz, flip)
	p.Memsz = Flip64(p.Memsz, flip)
	p.Align = Flip64(p.Align, flip)
}

// Section64 is a section header.
type Section64 struct {
	Name      uint32
	Type      uint32
	Flags     uint64
	Addr      uint64
	Off       uint64
	Size      uint64
	Link      uint32
	Info      uint32
	Addralign uint64
	Entsize   uint64
}

func (s *Section64) swap(flip bool) {
	s.Name = Flip32(s.Name, flip)
	s.Type = Flip32(s.Type, flip)
	s.Flags = Flip64(s.Flags, flip)
	s.Addr = Flip64(s.Addr, flip)
	s.Off = Flip64(s.Off, flip)
	s.Size = Flip64(s.Size, flip)
	s.Link = Flip32(s.Link, flip)
	s.Info = Flip32(s.Info, flip)
	s.Addralign = Flip64(s.Addralign, flip)
	s.Entsize = Flip64(s.Entsize, flip)
}

// Sym64 is a symbol table entry.
type Sym64 struct {
	Name  uint32
	Info  uint8
	Other uint8
	Shndx uint16
	Value uint64
	Size  uint64
}

func (s *Sym64) swap(flip bool) {
	s.Name = Flip32(s.Name, flip)
	s.Shndx = Flip16(s.Shndx, flip)
	s.Value = Flip64(s.Value, flip)
	s.Size = Flip64(s.Size, flip)
}

// unpack lifts the bytes at p into v exactly as they sit in memory on this
// host. Callers must have proven p holds a whole structure and must swap
// the result themselves.
func unpack(p []byte, v interface{}) error {
	return struc.UnpackWithOrder(bytes.NewReader(p), v, hostOrder)
}
