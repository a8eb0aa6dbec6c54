package models

import (
	"sort"

	"github.com/pkg/errors"
)

type Mem struct {
	Mmap
	Data []byte
}

func (m *Mem) Overlaps(addr, size uint64) bool {
	e1, e2 := m.Addr+m.Size, addr+size
	return (m.Addr >= addr && m.Addr < e2) || (addr >= m.Addr && addr < e1)
}

// Split trims m to the part overlapping [addr, addr+size) and returns what
// was cut off on either side.
func (m *Mem) Split(addr, size uint64) (left, right *Mem) {
	end, nend := m.Addr+m.Size, addr+size
	// space on the right
	if nend < end {
		o := nend - m.Addr
		right = &Mem{Mmap: m.Mmap, Data: m.Data[o:]}
		right.Addr, right.Size = nend, end-nend
		m.Data = m.Data[:o]
	}
	// space on the left
	if addr > m.Addr {
		ls := addr - m.Addr
		left = &Mem{Mmap: m.Mmap, Data: m.Data[:ls]}
		left.Size = ls
		m.Data = m.Data[ls:]
		m.Addr = addr
	}
	m.Size = uint64(len(m.Data))
	return left, right
}

// MemSim is a sparse in-memory address space.
type MemSim struct {
	mem []*Mem
}

func (m *MemSim) Find(addr uint64) *Mem {
	for _, mm := range m.mem {
		if mm.Contains(addr) {
			return mm
		}
	}
	return nil
}

// Map creates a zeroed mapping, replacing anything it overlaps.
func (m *MemSim) Map(addr, size uint64, prot uint32, desc string) (*Mem, error) {
	if size == 0 {
		return nil, errors.Errorf("zero size mapping at %#x", addr)
	}
	if addr+size < addr {
		return nil, errors.Errorf("mapping %#x+%#x wraps", addr, size)
	}
	m.Unmap(addr, size)
	mem := &Mem{Mmap: Mmap{Addr: addr, Size: size, Prot: prot, Desc: desc}, Data: make([]byte, size)}
	m.mem = append(m.mem, mem)
	return mem, nil
}

func (m *MemSim) Unmap(addr, size uint64) {
	var tmp []*Mem
	for _, mm := range m.mem {
		if !mm.Overlaps(addr, size) {
			tmp = append(tmp, mm)
			continue
		}
		left, right := mm.Split(addr, size)
		if left != nil {
			tmp = append(tmp, left)
		}
		if right != nil {
			tmp = append(tmp, right)
		}
	}
	m.mem = tmp
}

func (m *MemSim) Read(addr uint64, p []byte) error {
	for len(p) > 0 {
		mm := m.Find(addr)
		if mm == nil {
			return errors.Errorf("unmapped read at %#x", addr)
		}
		n := copy(p, mm.Data[addr-mm.Addr:])
		p = p[n:]
		addr += uint64(n)
	}
	return nil
}

func (m *MemSim) Write(addr uint64, p []byte) error {
	for len(p) > 0 {
		mm := m.Find(addr)
		if mm == nil {
			return errors.Errorf("unmapped write at %#x", addr)
		}
		n := copy(mm.Data[addr-mm.Addr:], p)
		p = p[n:]
		addr += uint64(n)
	}
	return nil
}

// Mappings returns the current mappings sorted by address.
func (m *MemSim) Mappings() []*Mmap {
	ret := make([]*Mmap, len(m.mem))
	for i, mm := range m.mem {
		ret[i] = &mm.Mmap
	}
	sort.Sort(MmapAddrSort(ret))
	return ret
}
