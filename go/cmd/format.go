package cmd

import (
	"fmt"
	"io"
	"sort"

	"github.com/lunixbochs/fvbommel-util/sortorder"

	"github.com/lunixbochs/elfcore/go/elf"
	"github.com/lunixbochs/elfcore/go/models"
)

func endianName(f *elf.File) string {
	if f.Header().Ident[elf.EI_DATA] == elf.ELFDATA2MSB {
		return "big endian"
	}
	return "little endian"
}

func PrintHeader(w io.Writer, f *elf.File, p models.Painter) {
	fmt.Fprintf(w, "ELF%d %s %s, %s", f.Bits, p.Name(f.Machine.String()), f.Type, endianName(f))
	if f.Flip() {
		fmt.Fprintf(w, " (%s)", p.Warn("swapped"))
	}
	fmt.Fprintf(w, "\nentry %s\n", p.Addr(fmt.Sprintf("%#x", f.Entry)))
}

func PrintProgs(w io.Writer, f *elf.File, p models.Painter) {
	progs := f.Progs()
	fmt.Fprintf(w, "Program headers (%d):\n", len(progs))
	for i := range progs {
		ph := &progs[i]
		fmt.Fprintf(w, "  %-8s off %#08x %s filesz %#x memsz %#x align %#x %s\n",
			ph.TypeString(), ph.Off, p.Addr(fmt.Sprintf("%#012x", ph.Vaddr)),
			ph.Filesz, ph.Memsz, ph.Align, models.ProtString(ph.Flags))
	}
}

// PrintSections lists ordinary sections in index order, or by name when
// natural is set.
func PrintSections(w io.Writer, f *elf.File, p models.Painter, natural bool) {
	sections := f.Sections()
	var idx []int
	for i := range sections {
		if i > 0 && elf.IsOrdinarySectionIndex(uint16(i)) {
			idx = append(idx, i)
		}
	}
	if natural {
		sort.SliceStable(idx, func(a, b int) bool {
			return sortorder.NaturalLess(f.SectionName(idx[a]), f.SectionName(idx[b]))
		})
	}
	fmt.Fprintf(w, "Sections (%d):\n", len(idx))
	for _, i := range idx {
		s := &sections[i]
		fmt.Fprintf(w, "  [%2d] %-18s %-8s %s off %#08x size %#x\n",
			i, p.Name(f.SectionName(i)), s.TypeString(), p.Addr(fmt.Sprintf("%#012x", s.Addr)), s.Off, s.Size)
	}
}

func PrintMappings(w io.Writer, maps []*models.Mmap, p models.Painter) {
	for _, m := range maps {
		fmt.Fprintf(w, "  %s\n", m)
	}
	if len(maps) == 0 {
		fmt.Fprintf(w, "  %s\n", p.Warn("(no mappings)"))
	}
}

// PrintSymbols lists syms by address, or by name in natural order.
func PrintSymbols(w io.Writer, syms []models.Symbol, p models.Painter, natural bool) {
	if natural {
		sort.Sort(models.SymbolNameSort(syms))
	} else {
		sort.Sort(models.SymbolAddrSort(syms))
	}
	for _, s := range syms {
		tag := ""
		if s.Resolved {
			tag = " (resolved)"
		}
		fmt.Fprintf(w, "  %s %s%s\n", p.Addr(fmt.Sprintf("%#016x", s.Addr)), p.Name(s.Name), tag)
	}
}

func PrintUnresolved(w io.Writer, names []string, p models.Painter) {
	for _, name := range names {
		fmt.Fprintf(w, "  %s %s\n", p.Bad("unresolved"), name)
	}
}
