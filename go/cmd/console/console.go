package console

import (
	"strings"

	"github.com/lunixbochs/elfcore/go/cmd"
)

// New builds the command; Main runs it.
func New() *cmd.ElfCmd {
	c := cmd.NewElfCmd()
	c.Args = "[-e cmd]..."
	var flags *cmd.LinkFlags
	var script []string
	c.SetupFlags = func() error {
		flags = c.AddLinkFlags()
		c.Flags.Func("e", "run a console command and exit (repeatable, ';' separates commands)", func(s string) error {
			script = append(script, strings.Split(s, ";")...)
			return nil
		})
		return nil
	}
	c.RunFile = func(args []string) error {
		ctx := &Context{Writer: c.Stdout, Config: c.Config, File: c.File, Link: flags}
		if err := ctx.Reset(); err != nil {
			return err
		}
		defer func() { ctx.Session.Release() }()
		if len(script) > 0 {
			for _, line := range script {
				if Run(ctx, line) == ErrQuit {
					break
				}
			}
			return nil
		}
		return Repl(ctx)
	}
	return c
}

func Main(args []string) int {
	return New().Run(args)
}

func init() { cmd.Register("console", "inspect, load and link an image interactively", Main) }
