package elf

import (
	"encoding/binary"
	"unsafe"
)

var endianProbe uint16 = 0x00aa

// hostData is the ELF data encoding matching the host's native byte order.
var hostData = func() byte {
	if *(*byte)(unsafe.Pointer(&endianProbe)) == 0xaa {
		return ELFDATA2LSB
	}
	return ELFDATA2MSB
}()

// hostOrder is the byte order used to lift raw header bytes into structs.
// Fields are then swapped with the Flip* helpers when the file disagrees.
var hostOrder binary.ByteOrder = func() binary.ByteOrder {
	if hostData == ELFDATA2LSB {
		return binary.LittleEndian
	}
	return binary.BigEndian
}()

func Swap16(v uint16) uint16 {
	return v>>8 | v<<8
}

func Swap32(v uint32) uint32 {
	return (v&0xff000000)>>24 | (v&0x00ff0000)>>8 |
		(v&0x0000ff00)<<8 | (v&0x000000ff)<<24
}

func Swap64(v uint64) uint64 {
	return (v&0xff00000000000000)>>56 | (v&0x00ff000000000000)>>40 |
		(v&0x0000ff0000000000)>>24 | (v&0x000000ff00000000)>>8 |
		(v&0x00000000ff000000)<<8 | (v&0x0000000000ff0000)<<24 |
		(v&0x000000000000ff00)<<40 | (v&0x00000000000000ff)<<56
}

func Flip16(v uint16, flip bool) uint16 {
	if flip {
		return Swap16(v)
	}
	return v
}

func Flip32(v uint32, flip bool) uint32 {
	if flip {
		return Swap32(v)
	}
	return v
}

func Flip64(v uint64, flip bool) uint64 {
	if flip {
		return Swap64(v)
	}
	return v
}

// InBounds reports whether off addresses a byte below limit.
func InBounds(off, limit uint64) bool {
	return off < limit
}

// InBoundsRange reports whether [off, off+size) lies strictly inside limit.
// The end is compared as limit-off so the sum is never computed.
func InBoundsRange(off, size, limit uint64) bool {
	return off < limit && size < limit && size < limit-off
}

// HostOrder returns the host's native byte order.
func HostOrder() binary.ByteOrder {
	return hostOrder
}
