package loader

import (
	"github.com/pkg/errors"

	"github.com/lunixbochs/elfcore/go/elf"
	"github.com/lunixbochs/elfcore/go/models"
)

// Session drives one validated File through Load or Link into a Memory.
// The session itself is the context value threaded through the callbacks.
type Session struct {
	Config   *models.Config
	File     *elf.File
	Mem      Memory
	Resolver *Resolver
	Filter   SectionFilter

	// Errors collects allocation failures; they never stop a walk.
	Errors []error
}

func NewSession(f *elf.File, mem Memory, config *models.Config) *Session {
	if config == nil {
		config = models.NewConfig()
	}
	return &Session{
		Config:   config,
		File:     f,
		Mem:      mem,
		Resolver: NewResolver(config.Symbols, false),
	}
}

// NewMemory returns the backend named by config.Backend.
func NewMemory(f *elf.File, config *models.Config) (Memory, error) {
	switch config.Backend {
	case "", "sim":
		return NewSimMemory(), nil
	case "unicorn":
		return NewUnicornMemory(f)
	default:
		return nil, errors.Errorf("unknown memory backend %q", config.Backend)
	}
}

func sessionAlloc(ctx interface{}, vaddr, size, align uint64, flags uint32) interface{} {
	s := ctx.(*Session)
	if size == 0 {
		models.Log.Debugf("skipping empty mapping at %#x", vaddr)
		return nil
	}
	if flags == 0 {
		// non-allocated sections have no place in memory
		models.Log.Debugf("skipping unallocated range %#x+%#x", vaddr, size)
		return nil
	}
	mmap := &models.Mmap{Addr: vaddr, Size: size, Align: align, Prot: flags}
	if err := s.Mem.MemMap(vaddr, size, flags, ""); err != nil {
		err = errors.Wrapf(err, "failed to map %s", mmap)
		models.Log.Warn(err)
		s.Errors = append(s.Errors, err)
		return nil
	}
	models.Log.Debugf("mapped %s", mmap)
	return mmap
}

func sessionFree(ctx interface{}, handle interface{}) {
	s := ctx.(*Session)
	mmap, ok := handle.(*models.Mmap)
	if !ok || mmap == nil {
		return
	}
	if err := s.Mem.MemUnmap(mmap.Addr, mmap.Size); err != nil {
		models.Log.Warnf("failed to unmap %s: %v", mmap, err)
	}
}

func sessionShouldLink(ctx interface{}, name string) bool {
	return ctx.(*Session).Filter.Match(name)
}

func sessionResolve(ctx interface{}, name string, flags int) uint64 {
	s := ctx.(*Session)
	addr := s.Resolver.Resolve(name)
	if addr == 0 {
		models.Log.Warnf("unresolved symbol %s (info %#x)", name, flags)
	} else {
		models.Log.Debugf("resolved %s = %#x", name, addr)
	}
	return addr
}

// loadAlloc is the allocator for Load. It sees every program header in
// order and only maps PT_LOAD segments.
func (s *Session) loadAlloc() elf.AllocFunc {
	progs := s.File.Progs()
	next := 0
	return func(ctx interface{}, vaddr, size, align uint64, flags uint32) interface{} {
		i := next
		next++
		if i >= len(progs) || progs[i].Type != elf.PT_LOAD {
			models.Log.Debugf("skipping program header %d", i)
			return nil
		}
		return sessionAlloc(ctx, vaddr, size, align, flags)
	}
}

// Load maps every PT_LOAD segment and copies in its file bytes.
func (s *Session) Load() error {
	if err := s.File.Load(s, s.loadAlloc()); err != nil {
		return errors.Wrap(err, "load failed")
	}
	return s.copySegments()
}

func (s *Session) copySegments() error {
	for i, p := range s.File.Progs() {
		if p.Type != elf.PT_LOAD {
			continue
		}
		data := s.File.SegmentData(i)
		if uint64(len(data)) > p.Memsz {
			data = data[:p.Memsz]
		}
		if len(data) == 0 {
			continue
		}
		if err := s.Mem.MemWrite(p.Vaddr, data); err != nil {
			err = errors.Wrapf(err, "failed to write segment %d", i)
			models.Log.Warn(err)
			s.Errors = append(s.Errors, err)
		}
	}
	return nil
}

// Link maps the sections accepted by Filter, copies their contents and
// resolves undefined symbols through Resolver.
func (s *Session) Link() error {
	if err := s.File.Link(s, sessionShouldLink, sessionAlloc, sessionResolve); err != nil {
		return errors.Wrap(err, "link failed")
	}
	return s.copySections()
}

func (s *Session) copySections() error {
	for i, sec := range s.File.Sections() {
		if sec.Flags&elf.SHF_ALLOC == 0 || !s.Filter.Match(s.File.SectionName(i)) {
			continue
		}
		data := s.File.SectionData(i)
		if len(data) == 0 {
			continue
		}
		if err := s.Mem.MemWrite(sec.Addr, data); err != nil {
			err = errors.Wrapf(err, "failed to write section %s", s.File.SectionName(i))
			models.Log.Warn(err)
			s.Errors = append(s.Errors, err)
		}
	}
	return nil
}

// Release unmaps everything Load or Link mapped.
func (s *Session) Release() {
	s.File.Release(s, sessionFree)
}

// Symbols lists the link results, flagging which came from the resolver.
func (s *Session) Symbols() []models.Symbol {
	var ret []models.Symbol
	for name, addr := range s.File.Symbols() {
		_, fixed := s.Resolver.Symbols[name]
		_, stub := s.Resolver.Stubs()[name]
		ret = append(ret, models.Symbol{Name: name, Addr: addr, Resolved: fixed || stub})
	}
	return ret
}

// Mapped lists the mappings Load or Link made, in call order.
func (s *Session) Mapped() []*models.Mmap {
	var ret []*models.Mmap
	for _, h := range s.File.Mappings() {
		if m, ok := h.(*models.Mmap); ok && m != nil {
			ret = append(ret, m)
		}
	}
	return ret
}
