package load

import (
	"github.com/lunixbochs/elfcore/go/cmd"
	"github.com/lunixbochs/elfcore/go/models"
)

func New() *cmd.ElfCmd {
	c := cmd.NewElfCmd()
	var dump *bool
	c.SetupFlags = func() error {
		dump = c.Flags.Bool("x", false, "hexdump each mapped segment")
		return nil
	}
	c.RunFile = func(args []string) error {
		s, err := c.NewSession()
		if err != nil {
			return err
		}
		defer s.Release()
		if err := s.Load(); err != nil {
			return err
		}
		p := c.Painter()
		c.Printf("Mappings:\n")
		maps := s.Mapped()
		cmd.PrintMappings(c.Stdout, maps, p)
		for _, err := range s.Errors {
			c.Printf("  %s %v\n", p.Bad("error"), err)
		}
		if *dump {
			for _, m := range maps {
				mem := make([]byte, m.Size)
				if err := s.Mem.MemRead(m.Addr, mem); err != nil {
					return err
				}
				c.Printf("\n%s\n", m)
				for _, line := range models.HexDump(m.Addr, mem, c.File.Bits) {
					c.Printf("  %s\n", line)
				}
			}
		}
		return nil
	}
	return c
}

func Main(args []string) int {
	return New().Run(args)
}

func init() { cmd.Register("load", "map PT_LOAD segments into memory", Main) }
