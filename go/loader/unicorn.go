package loader

import (
	"github.com/pkg/errors"
	uc "github.com/unicorn-engine/unicorn/bindings/go/unicorn"

	"github.com/lunixbochs/elfcore/go/elf"
	"github.com/lunixbochs/elfcore/go/models"
)

type ucArch struct {
	arch, mode int
}

var ucArchMap = map[elf.Machine]ucArch{
	elf.EM_X86_64:  {uc.ARCH_X86, uc.MODE_64},
	elf.EM_AARCH64: {uc.ARCH_ARM64, uc.MODE_ARM},
}

// UnicornMemory maps into a unicorn engine instance. Overlapping requests
// share pages, so sections living on the same page can be released in any
// order.
type UnicornMemory struct {
	uc.Unicorn
	pages *pageTable
}

func NewUnicornMemory(f *elf.File) (*UnicornMemory, error) {
	a, ok := ucArchMap[f.Machine]
	if !ok {
		return nil, errors.Errorf("unsupported machine for unicorn: %s", f.Machine)
	}
	mode := a.mode
	if f.Header().Ident[elf.EI_DATA] == elf.ELFDATA2MSB {
		mode |= uc.MODE_BIG_ENDIAN
	}
	u, err := uc.NewUnicorn(a.arch, mode)
	if err != nil {
		return nil, errors.Wrap(err, "NewUnicorn() failed")
	}
	m := &UnicornMemory{Unicorn: u}
	m.pages = newPageTable(
		func(addr, size uint64, prot uint32) error {
			return errors.Wrapf(u.MemMapProt(addr, size, ucProt(prot)), "unicorn map %#x+%#x", addr, size)
		},
		func(addr, size uint64) error {
			return errors.Wrapf(u.MemUnmap(addr, size), "unicorn unmap %#x+%#x", addr, size)
		},
	)
	return m, nil
}

func ucProt(prot uint32) int {
	var ret int
	if prot&models.PROT_READ != 0 {
		ret |= uc.PROT_READ
	}
	if prot&models.PROT_WRITE != 0 {
		ret |= uc.PROT_WRITE
	}
	if prot&models.PROT_EXEC != 0 {
		ret |= uc.PROT_EXEC
	}
	return ret
}

func (u *UnicornMemory) MemMap(addr, size uint64, prot uint32, desc string) error {
	return u.pages.Map(addr, size, prot, desc)
}

func (u *UnicornMemory) MemUnmap(addr, size uint64) error {
	return u.pages.Unmap(addr, size)
}

func (u *UnicornMemory) MemWrite(addr uint64, p []byte) error {
	return errors.WithStack(u.Unicorn.MemWrite(addr, p))
}

func (u *UnicornMemory) MemRead(addr uint64, p []byte) error {
	return errors.WithStack(u.Unicorn.MemReadInto(p, addr))
}

func (u *UnicornMemory) Mappings() []*models.Mmap {
	return u.pages.Mappings()
}
