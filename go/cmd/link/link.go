package link

import (
	"github.com/lunixbochs/elfcore/go/cmd"
)

func New() *cmd.ElfCmd {
	c := cmd.NewElfCmd()
	var flags *cmd.LinkFlags
	c.SetupFlags = func() error {
		flags = c.AddLinkFlags()
		return nil
	}
	c.RunFile = func(args []string) error {
		s, err := c.NewSession()
		if err != nil {
			return err
		}
		defer s.Release()
		if err := flags.Apply(s); err != nil {
			return err
		}
		if err := s.Link(); err != nil {
			return err
		}
		p := c.Painter()
		c.Printf("Mappings:\n")
		cmd.PrintMappings(c.Stdout, s.Mapped(), p)
		c.Printf("Symbols:\n")
		cmd.PrintSymbols(c.Stdout, s.Symbols(), p, c.Config.NaturalSort)
		cmd.PrintUnresolved(c.Stdout, s.File.Unresolved(), p)
		for _, err := range s.Errors {
			c.Printf("  %s %v\n", p.Bad("error"), err)
		}
		return nil
	}
	return c
}

func Main(args []string) int {
	return New().Run(args)
}

func init() { cmd.Register("link", "map sections and resolve symbols", Main) }
