package elf

import (
	"bytes"
)

// File is a validated ELF image. It references, but does not own, the image
// passed to Parse.
//
// Load and Link share a single consumed flag: a File can be loaded or
// linked once, never both. A File is not safe for concurrent Load or Link
// calls; callers sharing one across goroutines must serialize them.
type File struct {
	Bits    int
	Type    Type
	Machine Machine
	Entry   uint64

	image    []byte
	flip     bool
	strndx   uint16
	strings  []byte
	header   Header64
	progs    []Prog64
	sections []Section64

	consumed   bool
	linked     bool
	mappings   []interface{}
	links      map[string]uint64
	unresolved []string
}

// Image returns the raw image the file was parsed from.
func (f *File) Image() []byte { return f.image }

// Flip reports whether the file's byte order differs from the host's.
func (f *File) Flip() bool { return f.flip }

// StringIndex is the section index of the section name string table.
func (f *File) StringIndex() int { return int(f.strndx) }

// Strings returns the section name string table.
func (f *File) Strings() []byte { return f.strings }

func (f *File) Header() Header64 { return f.header }

// Consumed reports whether Load or Link has run on f.
func (f *File) Consumed() bool { return f.consumed }

// Progs returns the decoded program headers in file order.
func (f *File) Progs() []Prog64 { return f.progs }

// Sections returns the decoded section header table. Entries at index 0 and
// at reserved indexes are left zeroed.
func (f *File) Sections() []Section64 { return f.sections }

// Mappings returns the handles returned by the allocator during Load or
// Link, in call order.
func (f *File) Mappings() []interface{} { return f.mappings }

// SectionName returns the name of section i, or "" for reserved indexes.
func (f *File) SectionName(i int) string {
	if i < 0 || i >= len(f.sections) || !IsOrdinarySectionIndex(uint16(i)) {
		return ""
	}
	return cstring(f.strings, f.sections[i].Name)
}

// Section looks up an ordinary section by name.
func (f *File) Section(name string) (int, *Section64) {
	for i := range f.sections {
		if IsOrdinarySectionIndex(uint16(i)) && f.SectionName(i) == name {
			return i, &f.sections[i]
		}
	}
	return -1, nil
}

// SegmentData returns the file bytes backing program header i.
func (f *File) SegmentData(i int) []byte {
	if i < 0 || i >= len(f.progs) || f.image == nil {
		return nil
	}
	p := &f.progs[i]
	return f.image[p.Off : p.Off+p.Filesz]
}

// SectionData returns the file bytes backing section i. SHT_NOBITS sections
// and reserved indexes have none.
func (f *File) SectionData(i int) []byte {
	if i < 0 || i >= len(f.sections) || !IsOrdinarySectionIndex(uint16(i)) || f.image == nil {
		return nil
	}
	s := &f.sections[i]
	if s.Type == SHT_NOBITS {
		return nil
	}
	return f.image[s.Off : s.Off+s.Size]
}

// Close drops f's references to the image and any link results. The image
// itself belongs to the caller. Mapping handles survive for Release.
func (f *File) Close() {
	f.image = nil
	f.strings = nil
	f.links = nil
	f.consumed = true
}

// cstring reads a NUL terminated string at off. off must be below len(p).
func cstring(p []byte, off uint32) string {
	if uint64(off) >= uint64(len(p)) {
		return ""
	}
	s := p[off:]
	if i := bytes.IndexByte(s, 0); i >= 0 {
		s = s[:i]
	}
	return string(s)
}
