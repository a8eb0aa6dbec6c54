package elf

import (
	"github.com/pkg/errors"
)

// Parse validates image as an ELF file and returns a descriptor over it.
// Every table and entry the descriptor exposes has been bounds-checked
// against image; on any failure no descriptor is returned. image is not
// copied and must outlive the returned File.
func Parse(image []byte) (*File, error) {
	if len(image) < EI_NIDENT {
		return nil, errors.Wrapf(ErrMalformedIdent, "image is %d bytes", len(image))
	}
	ident := image[:EI_NIDENT]
	if ident[EI_MAG0] != ELFMAG0 || ident[EI_MAG1] != ELFMAG1 ||
		ident[EI_MAG2] != ELFMAG2 || ident[EI_MAG3] != ELFMAG3 {
		return nil, errors.Wrap(ErrMalformedIdent, "bad magic")
	}
	if ident[EI_VERSION] != EV_CURRENT {
		return nil, errors.Wrapf(ErrMalformedIdent, "unknown version %d", ident[EI_VERSION])
	}
	switch ident[EI_CLASS] {
	case ELFCLASS32:
		return parse32(image)
	case ELFCLASS64:
		return parse64(image)
	default:
		return nil, errors.Wrapf(ErrUnsupportedClass, "class %d", ident[EI_CLASS])
	}
}

func parse32(image []byte) (*File, error) {
	return nil, errors.Wrap(ErrUnsupportedClass, "32-bit images are not supported")
}

// needsFlip reports whether fields encoded with data must be byte swapped
// on this host.
func needsFlip(data byte) (bool, error) {
	switch data {
	case ELFDATA2LSB, ELFDATA2MSB:
		return data != hostData, nil
	default:
		return false, errors.Wrapf(ErrMalformedIdent, "unknown data encoding %d", data)
	}
}

func parse64(image []byte) (*File, error) {
	limit := uint64(len(image))
	if limit < Header64Size {
		return nil, errors.Wrapf(ErrMalformedIdent, "image is %d bytes, header needs %d", limit, Header64Size)
	}
	flip, err := needsFlip(image[EI_DATA])
	if err != nil {
		return nil, err
	}
	var hdr Header64
	if err := unpack(image[:Header64Size], &hdr); err != nil {
		return nil, errors.Wrap(ErrMalformedIdent, err.Error())
	}
	hdr.swap(flip)

	if !InBounds(hdr.Phoff, limit) || !InBounds(hdr.Shoff, limit) {
		return nil, errors.Wrapf(ErrOutOfBoundsTable, "phoff %#x shoff %#x", hdr.Phoff, hdr.Shoff)
	}
	phsize := uint64(hdr.Phnum) * uint64(hdr.Phentsize)
	if !InBoundsRange(hdr.Phoff, phsize, limit) {
		return nil, errors.Wrapf(ErrOutOfBoundsTable, "program headers at %#x+%#x", hdr.Phoff, phsize)
	}
	shsize := uint64(hdr.Shnum) * uint64(hdr.Shentsize)
	if !InBoundsRange(hdr.Shoff, shsize, limit) {
		return nil, errors.Wrapf(ErrOutOfBoundsTable, "section headers at %#x+%#x", hdr.Shoff, shsize)
	}
	// short entries would make the fixed-size reads below run past the table
	if hdr.Phnum > 0 && hdr.Phentsize < Prog64Size {
		return nil, errors.Wrapf(ErrOutOfBoundsTable, "phentsize %d", hdr.Phentsize)
	}
	if hdr.Shnum > 0 && hdr.Shentsize < Section64Size {
		return nil, errors.Wrapf(ErrOutOfBoundsTable, "shentsize %d", hdr.Shentsize)
	}

	progs := make([]Prog64, hdr.Phnum)
	for i := range progs {
		off := hdr.Phoff + uint64(i)*uint64(hdr.Phentsize)
		p := &progs[i]
		if err := unpack(image[off:off+Prog64Size], p); err != nil {
			return nil, errors.Wrapf(ErrOutOfBoundsEntry, "program header %d: %v", i, err)
		}
		p.swap(flip)
		if !InBoundsRange(p.Off, p.Filesz, limit) {
			return nil, errors.Wrapf(ErrOutOfBoundsEntry, "program header %d: %#x+%#x", i, p.Off, p.Filesz)
		}
	}

	if hdr.Shstrndx >= hdr.Shnum {
		return nil, errors.Wrapf(ErrInvalidStringTable, "index %d, %d sections", hdr.Shstrndx, hdr.Shnum)
	}
	if !IsOrdinarySectionIndex(hdr.Shstrndx) {
		return nil, errors.Wrapf(ErrInvalidStringTable, "reserved index %#x", hdr.Shstrndx)
	}
	readSection := func(i uint16, s *Section64) error {
		off := hdr.Shoff + uint64(i)*uint64(hdr.Shentsize)
		if err := unpack(image[off:off+Section64Size], s); err != nil {
			return errors.Wrapf(ErrOutOfBoundsEntry, "section header %d: %v", i, err)
		}
		s.swap(flip)
		return nil
	}
	sections := make([]Section64, hdr.Shnum)
	str := &sections[hdr.Shstrndx]
	if err := readSection(hdr.Shstrndx, str); err != nil {
		return nil, err
	}
	if !InBoundsRange(str.Off, str.Size, limit) {
		return nil, errors.Wrapf(ErrInvalidStringTable, "string table at %#x+%#x", str.Off, str.Size)
	}
	// index 0 is the null section and reserved indexes have no header
	for i := uint16(1); i < hdr.Shnum; i++ {
		if !IsOrdinarySectionIndex(i) {
			continue
		}
		s := &sections[i]
		if err := readSection(i, s); err != nil {
			return nil, err
		}
		if !InBoundsRange(s.Off, s.Size, limit) {
			return nil, errors.Wrapf(ErrOutOfBoundsEntry, "section header %d: %#x+%#x", i, s.Off, s.Size)
		}
		if !InBounds(uint64(s.Name), str.Size) {
			return nil, errors.Wrapf(ErrInvalidNameOffset, "section header %d: name %#x, table size %#x", i, s.Name, str.Size)
		}
	}

	return &File{
		Bits:    64,
		Type:    Type(hdr.Type),
		Machine: Machine(hdr.Machine),
		Entry:   hdr.Entry,

		image:    image,
		flip:     flip,
		strndx:   hdr.Shstrndx,
		strings:  image[str.Off : str.Off+str.Size],
		header:   hdr,
		progs:    progs,
		sections: sections,
	}, nil
}
