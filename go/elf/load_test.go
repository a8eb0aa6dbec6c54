package elf_test

import (
	"encoding/binary"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/lunixbochs/elfcore/go/elf"
	"github.com/lunixbochs/elfcore/go/elf/elftest"
)

type allocCall struct {
	vaddr, size, align uint64
	flags              uint32
}

// recorder is threaded through the callbacks as their context value.
type recorder struct {
	allocs  []allocCall
	checks  []string
	resolve []string
	freed   []interface{}
}

func recordAlloc(ctx interface{}, vaddr, size, align uint64, flags uint32) interface{} {
	r := ctx.(*recorder)
	r.allocs = append(r.allocs, allocCall{vaddr, size, align, flags})
	return len(r.allocs)
}

func recordFree(ctx interface{}, handle interface{}) {
	r := ctx.(*recorder)
	r.freed = append(r.freed, handle)
}

func recordCheck(ctx interface{}, name string) bool {
	r := ctx.(*recorder)
	r.checks = append(r.checks, name)
	return name != ".skip"
}

func recordResolve(ctx interface{}, name string, flags int) uint64 {
	r := ctx.(*recorder)
	r.resolve = append(r.resolve, name)
	if name == "missing" {
		return 0
	}
	return 0x7f0000000000 + uint64(len(r.resolve))
}

func (r *recorder) calls() int {
	return len(r.allocs) + len(r.checks) + len(r.resolve)
}

func TestLoad(t *testing.T) {
	f, err := elf.Parse(elftest.Sample(binary.LittleEndian).Build(t))
	require.NoError(t, err)
	rec := &recorder{}
	require.NoError(t, f.Load(rec, recordAlloc))
	require.Equal(t, []allocCall{{0x400000, 0x1000, 0x1000, elf.PF_R | elf.PF_X}}, rec.allocs)
	require.True(t, f.Consumed())
	require.Equal(t, []interface{}{1}, f.Mappings())

	f.Release(rec, recordFree)
	require.Equal(t, []interface{}{1}, rec.freed)
	require.Empty(t, f.Mappings())
}

func TestLoadOrder(t *testing.T) {
	img := elftest.New(elftest.OtherOrder())
	img.AddProg(elf.Prog64{Type: elf.PT_PHDR, Vaddr: 0x1})
	img.AddProg(elf.Prog64{Type: elf.PT_LOAD, Flags: elf.PF_R, Vaddr: 0x10000, Memsz: 0x100, Align: 0x1000})
	img.AddProg(elf.Prog64{Type: elf.PT_NOTE, Vaddr: 0x2})
	img.AddProg(elf.Prog64{Type: elf.PT_LOAD, Flags: elf.PF_R | elf.PF_W, Vaddr: 0x20000, Memsz: 0x2000, Align: 0x1000})
	img.AddProg(elf.Prog64{Type: elf.PT_LOAD, Flags: elf.PF_R | elf.PF_X, Vaddr: 0x8000, Memsz: 0x10, Align: 0x10})
	f, err := elf.Parse(img.Build(t))
	require.NoError(t, err)

	rec := &recorder{}
	require.NoError(t, f.Load(rec, recordAlloc))
	require.Equal(t, []allocCall{
		{0x1, 0, 0, 0},
		{0x10000, 0x100, 0x1000, elf.PF_R},
		{0x2, 0, 0, 0},
		{0x20000, 0x2000, 0x1000, elf.PF_R | elf.PF_W},
		{0x8000, 0x10, 0x10, elf.PF_R | elf.PF_X},
	}, rec.allocs)
}

func TestLoadEveryHeader(t *testing.T) {
	img := elftest.New(binary.LittleEndian)
	img.AddProg(elf.Prog64{Type: elf.PT_PHDR, Flags: elf.PF_R, Vaddr: 0x400040, Memsz: 0x38, Align: 8})
	img.AddProg(elf.Prog64{Type: elf.PT_LOAD, Flags: elf.PF_R | elf.PF_X, Vaddr: 0x400000, Memsz: 0x1000, Align: 0x1000})
	img.AddProg(elf.Prog64{Type: elf.PT_NOTE, Flags: elf.PF_R, Vaddr: 0x400200, Memsz: 0x20, Align: 4})
	f, err := elf.Parse(img.Build(t))
	require.NoError(t, err)

	rec := &recorder{}
	require.NoError(t, f.Load(rec, recordAlloc))
	require.Equal(t, []allocCall{
		{0x400040, 0x38, 8, elf.PF_R},
		{0x400000, 0x1000, 0x1000, elf.PF_R | elf.PF_X},
		{0x400200, 0x20, 4, elf.PF_R},
	}, rec.allocs)
	require.Equal(t, []interface{}{1, 2, 3}, f.Mappings())
}

func TestReleaseAfterClose(t *testing.T) {
	f, err := elf.Parse(elftest.Sample(binary.LittleEndian).Build(t))
	require.NoError(t, err)
	rec := &recorder{}
	require.NoError(t, f.Load(rec, recordAlloc))
	f.Close()
	require.Nil(t, f.Image())

	f.Release(rec, recordFree)
	require.Len(t, rec.allocs, 1)
	require.Equal(t, []interface{}{1}, rec.freed)
}

func TestLoadIgnoresFailedMappings(t *testing.T) {
	img := elftest.New(binary.LittleEndian)
	for i := 0; i < 3; i++ {
		img.AddProg(elf.Prog64{Type: elf.PT_LOAD, Vaddr: uint64(i) << 12, Memsz: 0x1000})
	}
	f, err := elf.Parse(img.Build(t))
	require.NoError(t, err)
	calls := 0
	require.NoError(t, f.Load(nil, func(ctx interface{}, vaddr, size, align uint64, flags uint32) interface{} {
		calls++
		return nil
	}))
	require.Equal(t, 3, calls)
}

func TestLoadOnce(t *testing.T) {
	f, err := elf.Parse(elftest.Sample(binary.LittleEndian).Build(t))
	require.NoError(t, err)
	rec := &recorder{}
	require.NoError(t, f.Load(rec, recordAlloc))

	again := &recorder{}
	err = f.Load(again, recordAlloc)
	require.Equal(t, elf.ErrAlreadyConsumed, errors.Cause(err))
	err = f.Link(again, recordCheck, recordAlloc, recordResolve)
	require.Equal(t, elf.ErrAlreadyConsumed, errors.Cause(err))
	require.Zero(t, again.calls())
	require.Len(t, rec.allocs, 1)
}
