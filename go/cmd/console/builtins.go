package console

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/lunixbochs/elfcore/go/cmd"
	"github.com/lunixbochs/elfcore/go/models"
)

const maxDump = 0x100000

var HelpCmd = register(&Command{
	Name: "help",
	Desc: "List commands.",
	Run: func(c *Context) error {
		for _, name := range Names() {
			c.Printf("  %-8s %s\n", name, Commands[name].Desc)
		}
		return nil
	},
})

var QuitCmd = register(&Command{
	Name: "quit",
	Desc: "Leave the console.",
	Run: func(c *Context) error {
		return ErrQuit
	},
})

var InfoCmd = register(&Command{
	Name: "info",
	Desc: "Describe the ELF header.",
	Run: func(c *Context) error {
		cmd.PrintHeader(c, c.File, c.Painter())
		return nil
	},
})

var PhdrsCmd = register(&Command{
	Name: "phdrs",
	Desc: "List program headers.",
	Run: func(c *Context) error {
		cmd.PrintProgs(c, c.File, c.Painter())
		return nil
	},
})

var ShdrsCmd = register(&Command{
	Name: "shdrs",
	Desc: "List section headers.",
	Run: func(c *Context) error {
		cmd.PrintSections(c, c.File, c.Painter(), c.Config.NaturalSort)
		return nil
	},
})

var LoadCmd = register(&Command{
	Name: "load",
	Desc: "Map PT_LOAD segments.",
	Run: func(c *Context) error {
		if err := c.Session.Load(); err != nil {
			return err
		}
		cmd.PrintMappings(c, c.Session.Mapped(), c.Painter())
		return nil
	},
})

var LinkCmd = register(&Command{
	Name: "link",
	Desc: "Map sections and resolve symbols.",
	Run: func(c *Context) error {
		if err := c.Session.Link(); err != nil {
			return err
		}
		cmd.PrintMappings(c, c.Session.Mapped(), c.Painter())
		cmd.PrintUnresolved(c, c.File.Unresolved(), c.Painter())
		return nil
	},
})

var ResolveCmd = register(&Command{
	Name: "resolve",
	Desc: "Set the address used for an undefined symbol.",
	Run: func(c *Context, name string, addr uint64) error {
		c.Session.Resolver.Symbols[name] = addr
		return nil
	},
})

var SymCmd = register(&Command{
	Name: "sym",
	Desc: "Look up a linked symbol.",
	Run: func(c *Context, name string) error {
		addr, err := c.File.Symbol(name)
		if err != nil {
			return err
		}
		c.Printf("  %s %s\n", c.Painter().Addr(fmt.Sprintf("%#016x", addr)), name)
		return nil
	},
})

var SymsCmd = register(&Command{
	Name: "syms",
	Desc: "List linked symbols.",
	Run: func(c *Context) error {
		if !c.File.Consumed() {
			return errors.New("nothing linked yet")
		}
		cmd.PrintSymbols(c, c.Session.Symbols(), c.Painter(), c.Config.NaturalSort)
		return nil
	},
})

var MapsCmd = register(&Command{
	Name: "maps",
	Desc: "Display memory mappings.",
	Run: func(c *Context) error {
		cmd.PrintMappings(c, c.Session.Mem.Mappings(), c.Painter())
		return nil
	},
})

var MemCmd = register(&Command{
	Name: "mem",
	Desc: "Hexdump mapped memory.",
	Run: func(c *Context, addr, size uint64) error {
		if size > maxDump {
			return errors.Errorf("size %#x exceeds %#x", size, maxDump)
		}
		mem := make([]byte, size)
		if err := c.Session.Mem.MemRead(addr, mem); err != nil {
			return err
		}
		for _, line := range models.HexDump(addr, mem, c.File.Bits) {
			c.Printf("  %s\n", line)
		}
		return nil
	},
})

var ResetCmd = register(&Command{
	Name: "reset",
	Desc: "Unmap everything and start over.",
	Run: func(c *Context) error {
		return c.Reset()
	},
})
