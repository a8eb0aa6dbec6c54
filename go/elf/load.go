package elf

import (
	"github.com/pkg/errors"
)

// Load calls alloc once for every program header, in file order, whatever
// its type. The allocator decides what gets mapped. A failed mapping does
// not stop the walk. Load fails without calling alloc
// if f has already been loaded or linked.
func (f *File) Load(ctx interface{}, alloc AllocFunc) error {
	if f.consumed {
		return errors.WithStack(ErrAlreadyConsumed)
	}
	for i := range f.progs {
		p := &f.progs[i]
		if alloc != nil {
			f.mappings = append(f.mappings, alloc(ctx, p.Vaddr, p.Memsz, p.Align, p.Flags))
		}
	}
	f.consumed = true
	return nil
}

// Release hands every recorded mapping handle to free. It is the caller's
// counterpart to Load and Link and may run at most once, before or after
// Close.
func (f *File) Release(ctx interface{}, free FreeFunc) {
	if free != nil {
		for _, h := range f.mappings {
			free(ctx, h)
		}
	}
	f.mappings = nil
}
