package models

import (
	"fmt"
)

// PF_* permission bits, as handed to allocators.
const (
	PROT_EXEC  = 0x1
	PROT_WRITE = 0x2
	PROT_READ  = 0x4
)

type Mmap struct {
	Addr, Size uint64
	Align      uint64
	Prot       uint32
	Desc       string
}

func (m *Mmap) Contains(addr uint64) bool {
	return m.Addr <= addr && addr < m.Addr+m.Size
}

func ProtString(prot uint32) string {
	prots := []uint32{PROT_READ, PROT_WRITE, PROT_EXEC}
	chars := []string{"r", "w", "x"}
	s := ""
	for i := range prots {
		if prot&prots[i] != 0 {
			s += chars[i]
		} else {
			s += "-"
		}
	}
	return s
}

func (m *Mmap) String() string {
	desc := fmt.Sprintf("0x%x-0x%x %s", m.Addr, m.Addr+m.Size, ProtString(m.Prot))
	if m.Align > 1 {
		desc += fmt.Sprintf(" align=0x%x", m.Align)
	}
	if m.Desc != "" {
		desc += fmt.Sprintf(" [%s]", m.Desc)
	}
	return desc
}

type MmapAddrSort []*Mmap

func (m MmapAddrSort) Len() int           { return len(m) }
func (m MmapAddrSort) Less(i, j int) bool { return m[i].Addr < m[j].Addr }
func (m MmapAddrSort) Swap(i, j int)      { m[i], m[j] = m[j], m[i] }
