package loader

import (
	"path/filepath"

	"github.com/lunixbochs/elfcore/go/models"
)

const STUB_BASE = 0x7fff00000000

// Resolver hands out addresses for undefined symbols: first from a fixed
// table, then, if Stub is set, from a region of fake entry points.
type Resolver struct {
	Symbols map[string]uint64
	Stub    bool

	stubs    map[string]uint64
	nextStub uint64
}

// NewResolver copies symbols, so later additions stay local to the resolver.
func NewResolver(symbols map[string]uint64, stub bool) *Resolver {
	table := make(map[string]uint64, len(symbols))
	for name, addr := range symbols {
		table[name] = addr
	}
	return &Resolver{Symbols: table, Stub: stub, stubs: make(map[string]uint64), nextStub: STUB_BASE}
}

func (r *Resolver) Resolve(name string) uint64 {
	if addr, ok := r.Symbols[name]; ok {
		return addr
	}
	if !r.Stub {
		return 0
	}
	if addr, ok := r.stubs[name]; ok {
		return addr
	}
	addr := r.nextStub
	r.nextStub += 0x10
	r.stubs[name] = addr
	models.Log.Debugf("stubbed %s at %#x", name, addr)
	return addr
}

// Stubs returns the symbols that were given stub addresses.
func (r *Resolver) Stubs() map[string]uint64 {
	return r.stubs
}

// SectionFilter matches section names against glob patterns. An empty
// filter matches everything.
type SectionFilter []string

func (s SectionFilter) Match(name string) bool {
	if len(s) == 0 {
		return true
	}
	for _, pattern := range s {
		if ok, _ := filepath.Match(pattern, name); ok {
			return true
		}
	}
	return false
}
