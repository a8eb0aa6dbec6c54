package info

import (
	"github.com/lunixbochs/elfcore/go/cmd"
)

// New builds the command; Main runs it.
func New() *cmd.ElfCmd {
	c := cmd.NewElfCmd()
	var progs, sections *bool
	c.SetupFlags = func() error {
		progs = c.Flags.Bool("l", true, "list program headers")
		sections = c.Flags.Bool("S", true, "list section headers")
		return nil
	}
	c.RunFile = func(args []string) error {
		p := c.Painter()
		cmd.PrintHeader(c.Stdout, c.File, p)
		if *progs {
			cmd.PrintProgs(c.Stdout, c.File, p)
		}
		if *sections {
			cmd.PrintSections(c.Stdout, c.File, p, c.Config.NaturalSort)
		}
		return nil
	}
	return c
}

func Main(args []string) int {
	return New().Run(args)
}

func init() { cmd.Register("info", "describe a validated ELF image", Main) }

