package elf

// Cond constrains a File for Check. Zero fields match anything.
type Cond struct {
	Bits    int
	Type    Type
	Machine Machine
	// Every PT_LOAD segment and the entry point must lie in [MinAddr, MaxAddr).
	MinAddr uint64
	MaxAddr uint64
}

// Check reports whether f satisfies c.
func (f *File) Check(c *Cond) bool {
	if f == nil || c == nil {
		return false
	}
	if c.Bits != 0 && c.Bits != f.Bits {
		return false
	}
	if c.Type != ET_NONE && c.Type != f.Type {
		return false
	}
	if c.Machine != EM_NONE && c.Machine != f.Machine {
		return false
	}
	if c.MinAddr == 0 && c.MaxAddr == 0 {
		return true
	}
	if !c.contains(f.Entry, 1) {
		return false
	}
	for i := range f.progs {
		p := &f.progs[i]
		if p.Type == PT_LOAD && !c.contains(p.Vaddr, p.Memsz) {
			return false
		}
	}
	return true
}

func (c *Cond) contains(addr, size uint64) bool {
	if addr < c.MinAddr {
		return false
	}
	if c.MaxAddr == 0 {
		return addr+size >= addr
	}
	return size <= c.MaxAddr && addr <= c.MaxAddr-size
}
