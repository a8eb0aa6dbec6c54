package elf

// AllocFunc requests a mapping of size bytes at vaddr with the given
// alignment and PF_* permission bits. The returned handle is recorded but
// never inspected.
type AllocFunc func(ctx interface{}, vaddr, size, align uint64, flags uint32) interface{}

// ShouldLinkFunc decides whether the named section takes part in linking.
type ShouldLinkFunc func(ctx interface{}, name string) bool

// ResolveFunc returns the address of an undefined symbol, or 0 if it cannot
// be resolved. flags is the symbol's st_info byte.
type ResolveFunc func(ctx interface{}, name string, flags int) uint64

// FreeFunc releases a handle returned by an AllocFunc.
type FreeFunc func(ctx interface{}, handle interface{})
