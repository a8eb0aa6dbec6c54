package elf

import (
	stdelf "debug/elf"
	"strings"
)

// Identification block indexes.
const (
	EI_MAG0       = 0
	EI_MAG1       = 1
	EI_MAG2       = 2
	EI_MAG3       = 3
	EI_CLASS      = 4
	EI_DATA       = 5
	EI_VERSION    = 6
	EI_OSABI      = 7
	EI_ABIVERSION = 8
	EI_PAD        = 9
	EI_NIDENT     = 16
)

const (
	ELFMAG0 = 0x7f
	ELFMAG1 = 'E'
	ELFMAG2 = 'L'
	ELFMAG3 = 'F'
)

const (
	ELFCLASSNONE = 0
	ELFCLASS32   = 1
	ELFCLASS64   = 2
)

const (
	ELFDATANONE = 0
	ELFDATA2LSB = 1
	ELFDATA2MSB = 2
)

const (
	EV_NONE    = 0
	EV_CURRENT = 1
)

// Reserved section header table indexes.
const (
	SHN_UNDEF     = 0
	SHN_LORESERVE = 0xff00
	SHN_LOPROC    = 0xff00
	SHN_BEFORE    = 0xff00
	SHN_AFTER     = 0xff01
	SHN_HIPROC    = 0xff1f
	SHN_LOOS      = 0xff20
	SHN_HIOS      = 0xff3f
	SHN_ABS       = 0xfff1
	SHN_COMMON    = 0xfff2
	SHN_XINDEX    = 0xffff
	SHN_HIRESERVE = 0xffff
)

const (
	PT_NULL    = 0
	PT_LOAD    = 1
	PT_DYNAMIC = 2
	PT_INTERP  = 3
	PT_NOTE    = 4
	PT_SHLIB   = 5
	PT_PHDR    = 6
	PT_TLS     = 7
)

// Segment permission bits. The allocator callbacks receive these for both
// segments and linked sections.
const (
	PF_X = 0x1
	PF_W = 0x2
	PF_R = 0x4
)

const (
	SHT_NULL     = 0
	SHT_PROGBITS = 1
	SHT_SYMTAB   = 2
	SHT_STRTAB   = 3
	SHT_RELA     = 4
	SHT_NOBITS   = 8
	SHT_DYNSYM   = 11
)

const (
	SHF_WRITE     = 0x1
	SHF_ALLOC     = 0x2
	SHF_EXECINSTR = 0x4
)

// Type is the object file type (e_type).
type Type uint16

const (
	ET_NONE Type = 0
	ET_REL  Type = 1
	ET_EXEC Type = 2
	ET_DYN  Type = 3
	ET_CORE Type = 4
)

func (t Type) String() string { return stdelf.Type(t).String() }

// Machine is the target architecture (e_machine).
type Machine uint16

const (
	EM_NONE    Machine = 0
	EM_386     Machine = 3
	EM_MIPS    Machine = 8
	EM_PPC     Machine = 20
	EM_PPC64   Machine = 21
	EM_ARM     Machine = 40
	EM_X86_64  Machine = 62
	EM_AARCH64 Machine = 183
	EM_RISCV   Machine = 243
)

func (m Machine) String() string { return stdelf.Machine(m).String() }

var machineMap = map[Machine]string{
	EM_386:     "x86",
	EM_X86_64:  "x86_64",
	EM_ARM:     "arm",
	EM_AARCH64: "arm64",
	EM_MIPS:    "mips",
	EM_PPC:     "ppc",
	EM_PPC64:   "ppc64",
	EM_RISCV:   "riscv",
}

// Arch returns the short architecture name for m, or "" if unknown.
func (m Machine) Arch() string {
	return machineMap[m]
}

func (p *Prog64) TypeString() string {
	return strings.TrimPrefix(stdelf.ProgType(p.Type).String(), "PT_")
}

func (s *Section64) TypeString() string {
	return strings.TrimPrefix(stdelf.SectionType(s.Type).String(), "SHT_")
}

// MachineByArch is the inverse of Machine.Arch.
func MachineByArch(name string) (Machine, bool) {
	for m, arch := range machineMap {
		if arch == name {
			return m, true
		}
	}
	return EM_NONE, false
}

var typeNames = map[string]Type{"rel": ET_REL, "exec": ET_EXEC, "dyn": ET_DYN, "core": ET_CORE}

// TypeByName accepts rel, exec, dyn or core.
func TypeByName(name string) (Type, bool) {
	t, ok := typeNames[strings.ToLower(name)]
	return t, ok
}
