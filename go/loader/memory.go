package loader

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/lunixbochs/elfcore/go/models"
)

const PAGE_SIZE = 0x1000

// Memory is an address space segments and sections can be mapped into.
type Memory interface {
	MemMap(addr, size uint64, prot uint32, desc string) error
	MemUnmap(addr, size uint64) error
	MemWrite(addr uint64, p []byte) error
	MemRead(addr uint64, p []byte) error
	Mappings() []*models.Mmap
}

// align grows [addr, addr+size) outward to multiples of to.
func align(addr, size, to uint64) (uint64, uint64) {
	if to < 2 {
		return addr, size
	}
	mask := ^(to - 1)
	right := addr + size
	right = (right + to - 1) & mask
	addr &= mask
	return addr, right - addr
}

type pageRef struct {
	refs int
	prot uint32
	desc string
}

// pageTable maps page-granular ranges through mapFn and unmapFn. Requests
// that overlap share pages; a page stays mapped until the last request
// covering it is unmapped.
type pageTable struct {
	pages   map[uint64]*pageRef
	mapFn   func(addr, size uint64, prot uint32) error
	unmapFn func(addr, size uint64) error
}

func newPageTable(mapFn func(addr, size uint64, prot uint32) error, unmapFn func(addr, size uint64) error) *pageTable {
	return &pageTable{pages: make(map[uint64]*pageRef), mapFn: mapFn, unmapFn: unmapFn}
}

// runs splits the pages of [addr, addr+size) into contiguous runs for which
// want returns true.
func (p *pageTable) runs(addr, size uint64, want func(page uint64) bool) [][2]uint64 {
	var ret [][2]uint64
	end := addr + size
	for page := addr; page < end; page += PAGE_SIZE {
		if !want(page) {
			continue
		}
		if n := len(ret); n > 0 && ret[n-1][0]+ret[n-1][1] == page {
			ret[n-1][1] += PAGE_SIZE
		} else {
			ret = append(ret, [2]uint64{page, PAGE_SIZE})
		}
	}
	return ret
}

// Map maps the pages of [addr, addr+size) that are not mapped yet and takes
// a reference on every page in the range. Pages already mapped keep their
// protection.
func (p *pageTable) Map(addr, size uint64, prot uint32, desc string) error {
	addr, size = align(addr, size, PAGE_SIZE)
	if addr+size < addr {
		return errors.Errorf("mapping %#x+%#x wraps", addr, size)
	}
	fresh := p.runs(addr, size, func(page uint64) bool { return p.pages[page] == nil })
	for i, run := range fresh {
		if err := p.mapFn(run[0], run[1], prot); err != nil {
			for _, done := range fresh[:i] {
				p.unmapFn(done[0], done[1])
			}
			return err
		}
	}
	for page := addr; page < addr+size; page += PAGE_SIZE {
		ref := p.pages[page]
		if ref == nil {
			ref = &pageRef{prot: prot, desc: desc}
			p.pages[page] = ref
		}
		ref.refs++
	}
	return nil
}

// Unmap drops a reference on every page of [addr, addr+size) and unmaps the
// pages nothing else covers.
func (p *pageTable) Unmap(addr, size uint64) error {
	addr, size = align(addr, size, PAGE_SIZE)
	last := p.runs(addr, size, func(page uint64) bool {
		ref := p.pages[page]
		return ref != nil && ref.refs == 1
	})
	for page := addr; page < addr+size; page += PAGE_SIZE {
		if ref := p.pages[page]; ref != nil {
			if ref.refs--; ref.refs == 0 {
				delete(p.pages, page)
			}
		}
	}
	var err error
	for _, run := range last {
		if e := p.unmapFn(run[0], run[1]); e != nil && err == nil {
			err = e
		}
	}
	return err
}

// Mappings coalesces adjacent pages with the same protection and
// description, sorted by address.
func (p *pageTable) Mappings() []*models.Mmap {
	addrs := make([]uint64, 0, len(p.pages))
	for page := range p.pages {
		addrs = append(addrs, page)
	}
	sort.Slice(addrs, func(i, j int) bool { return addrs[i] < addrs[j] })
	var ret []*models.Mmap
	for _, page := range addrs {
		ref := p.pages[page]
		if n := len(ret); n > 0 {
			m := ret[n-1]
			if m.Addr+m.Size == page && m.Prot == ref.prot && m.Desc == ref.desc {
				m.Size += PAGE_SIZE
				continue
			}
		}
		ret = append(ret, &models.Mmap{Addr: page, Size: PAGE_SIZE, Prot: ref.prot, Desc: ref.desc})
	}
	return ret
}

type SimMemory struct {
	models.MemSim
}

func NewSimMemory() *SimMemory {
	return &SimMemory{}
}

func (s *SimMemory) MemMap(addr, size uint64, prot uint32, desc string) error {
	_, err := s.Map(addr, size, prot, desc)
	return err
}

func (s *SimMemory) MemUnmap(addr, size uint64) error {
	s.Unmap(addr, size)
	return nil
}

func (s *SimMemory) MemWrite(addr uint64, p []byte) error {
	return s.Write(addr, p)
}

func (s *SimMemory) MemRead(addr uint64, p []byte) error {
	return s.Read(addr, p)
}
