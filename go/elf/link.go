package elf

import (
	"github.com/pkg/errors"
)

// sectionProt maps SHF_* section flags onto the PF_* bits handed to AllocFunc.
func sectionProt(flags uint64) uint32 {
	var prot uint32
	if flags&SHF_ALLOC != 0 {
		prot |= PF_R
	}
	if flags&SHF_WRITE != 0 {
		prot |= PF_W
	}
	if flags&SHF_EXECINSTR != 0 {
		prot |= PF_X
	}
	return prot
}

// Link walks the ordinary sections in index order. Each one is offered to
// shouldLink by name; accepted sections are handed to alloc, and accepted
// symbol tables have their undefined symbols passed to resolve. Every
// callback runs regardless of earlier results. A nil shouldLink accepts
// every section.
//
// Link shares Load's consumed flag and fails without side effects if f has
// already been loaded or linked.
func (f *File) Link(ctx interface{}, shouldLink ShouldLinkFunc, alloc AllocFunc, resolve ResolveFunc) error {
	if f.consumed {
		return errors.WithStack(ErrAlreadyConsumed)
	}
	f.links = make(map[string]uint64)
	for i := 1; i < len(f.sections); i++ {
		if !IsOrdinarySectionIndex(uint16(i)) {
			continue
		}
		if shouldLink != nil && !shouldLink(ctx, f.SectionName(i)) {
			continue
		}
		s := &f.sections[i]
		if alloc != nil {
			f.mappings = append(f.mappings, alloc(ctx, s.Addr, s.Size, s.Addralign, sectionProt(s.Flags)))
		}
		if s.Type == SHT_SYMTAB || s.Type == SHT_DYNSYM {
			f.linkSymbols(ctx, i, resolve)
		}
	}
	f.consumed = true
	f.linked = true
	return nil
}

// linkSymbols records defined symbols from table i and resolves undefined
// ones. Entries whose names fall outside the linked string table are
// skipped.
func (f *File) linkSymbols(ctx interface{}, i int, resolve ResolveFunc) {
	s := &f.sections[i]
	if s.Link >= uint32(len(f.sections)) || !IsOrdinarySectionIndex(uint16(s.Link)) {
		return
	}
	strs := f.SectionData(int(s.Link))
	data := f.SectionData(i)
	stride := s.Entsize
	if stride < Sym64Size {
		stride = Sym64Size
	}
	count := uint64(len(data)) / stride
	// symbol 0 is the reserved null entry
	for j := uint64(1); j < count; j++ {
		off := j * stride
		var sym Sym64
		if err := unpack(data[off:off+Sym64Size], &sym); err != nil {
			continue
		}
		sym.swap(f.flip)
		if !InBounds(uint64(sym.Name), uint64(len(strs))) {
			continue
		}
		name := cstring(strs, sym.Name)
		if name == "" {
			continue
		}
		if sym.Shndx != SHN_UNDEF {
			if _, ok := f.links[name]; !ok {
				f.links[name] = sym.Value
			}
			continue
		}
		var addr uint64
		if resolve != nil {
			addr = resolve(ctx, name, int(sym.Info))
		}
		if addr == 0 {
			f.unresolved = append(f.unresolved, name)
			continue
		}
		f.links[name] = addr
	}
}

// Symbol returns the address recorded for name by Link.
func (f *File) Symbol(name string) (uint64, error) {
	if !f.linked || f.links == nil {
		return 0, errors.WithStack(ErrNotLinked)
	}
	addr, ok := f.links[name]
	if !ok {
		return 0, errors.Wrap(ErrSymbolNotFound, name)
	}
	return addr, nil
}

// Symbols returns every name recorded by Link with its address.
func (f *File) Symbols() map[string]uint64 {
	return f.links
}

// Unresolved lists the undefined symbols resolve returned 0 for.
func (f *File) Unresolved() []string {
	return f.unresolved
}
