package elf

// IsOrdinarySectionIndex reports whether idx names a real section header
// rather than one of the reserved pseudo-indexes. Everything from
// SHN_LORESERVE to SHN_HIRESERVE is reserved: the processor and OS
// subranges, SHN_AFTER, SHN_ABS, SHN_COMMON and the SHN_XINDEX escape.
func IsOrdinarySectionIndex(idx uint16) bool {
	if idx == SHN_UNDEF {
		return false
	}
	return idx < SHN_LORESERVE
}
