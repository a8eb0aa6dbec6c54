package cmd

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"

	"github.com/lunixbochs/elfcore/go/elf"
	"github.com/lunixbochs/elfcore/go/loader"
	"github.com/lunixbochs/elfcore/go/models"
)

type strslice []string

func (s *strslice) String() string {
	return fmt.Sprintf("%v", *s)
}

func (s *strslice) Set(value string) error {
	*s = append(*s, value)
	return nil
}

// ElfCmd is the shared frontend for subcommands operating on one ELF image.
type ElfCmd struct {
	Config *models.Config

	SetupFlags func() error
	RunFile    func(args []string) error
	Teardown   func()

	// NoExe skips reading an image from the first positional argument.
	NoExe bool
	Args  string

	File  *elf.File
	Flags *flag.FlagSet

	Stdout io.Writer
	Stderr io.Writer
}

func NewElfCmd() *ElfCmd {
	return &ElfCmd{
		Flags:  flag.NewFlagSet("cli", flag.ContinueOnError),
		Stdout: colorable.NewColorableStdout(),
		Stderr: colorable.NewColorableStderr(),
	}
}

func (c *ElfCmd) Printf(format string, a ...interface{}) {
	fmt.Fprintf(c.Stdout, format, a...)
}

// Painter colors output according to the loaded config.
func (c *ElfCmd) Painter() models.Painter {
	return models.Painter{Enabled: c.Config != nil && c.Config.Color}
}

type stackTracer interface {
	StackTrace() errors.StackTrace
}

func (c *ElfCmd) PrintError(err error) {
	w := c.Stderr
	fmt.Fprintf(w, "%s\n", strings.Repeat("-", 40))
	fmt.Fprintf(w, "Error: %s\n", err)
	// verbose runs get the innermost stack trace
	if c.Config == nil || !c.Config.Verbose {
		return
	}
	var tracer stackTracer
	for e := err; e != nil; {
		if st, ok := e.(stackTracer); ok {
			tracer = st
		}
		cause, ok := e.(interface{ Cause() error })
		if !ok {
			break
		}
		e = cause.Cause()
	}
	if tracer == nil {
		return
	}
	var frames [][]string
	for _, f := range tracer.StackTrace() {
		fileline := fmt.Sprintf("%s:%d", f, f)
		method := fmt.Sprintf("%n", f)
		frames = append(frames, []string{fileline, method})
		if method == "main" {
			break
		}
	}
	width := 0
	for _, f := range frames {
		if len(f[0]) > width {
			width = len(f[0])
		}
	}
	for _, f := range frames {
		fmt.Fprintf(w, "%-*s | %s()\n", width, f[0], f[1])
	}
}

// LinkFlags are the resolver and filter options shared by commands that link.
type LinkFlags struct {
	syms   strslice
	filter strslice
	stub   *bool
}

func (c *ElfCmd) AddLinkFlags() *LinkFlags {
	l := &LinkFlags{}
	c.Flags.Var(&l.syms, "sym", "resolve symbol as name=addr (repeatable)")
	c.Flags.Var(&l.filter, "filter", "only link sections matching this glob (repeatable)")
	l.stub = c.Flags.Bool("stub", false, "give unresolved symbols stub addresses")
	return l
}

// Apply configures s's resolver and section filter.
func (l *LinkFlags) Apply(s *loader.Session) error {
	for _, v := range l.syms {
		split := strings.SplitN(v, "=", 2)
		if len(split) != 2 || split[0] == "" {
			return errors.Errorf("invalid -sym %q, want name=addr", v)
		}
		addr, err := models.ParseAddr(split[1])
		if err != nil {
			return errors.Wrapf(err, "invalid -sym %q", v)
		}
		s.Resolver.Symbols[split[0]] = addr
	}
	s.Resolver.Stub = *l.stub
	s.Filter = loader.SectionFilter(l.filter)
	return nil
}

// loadConfig merges the per-user config files, lowest priority first, then
// an explicit -config file.
func loadConfig(config *models.Config, explicit string) error {
	paths := models.ConfigPaths()
	for i := len(paths) - 1; i >= 0; i-- {
		if err := config.LoadFile(paths[i]); err != nil {
			return err
		}
	}
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return errors.Wrap(err, "config")
		}
		return config.LoadFile(explicit)
	}
	return nil
}

// Run parses argv, builds the config, loads the image and calls RunFile.
// It returns the process exit code.
func (c *ElfCmd) Run(argv []string) int {
	fs := c.Flags
	fs.SetOutput(c.Stderr)
	verbose := fs.Bool("v", false, "verbose output")
	color := fs.Bool("color", false, "colorize output (default: when stdout is a terminal)")
	natural := fs.Bool("natural", false, "sort names in natural order")
	backend := fs.String("backend", "sim", "memory backend: sim or unicorn")
	configPath := fs.String("config", "", "read settings from this INI file")
	outfile := fs.String("o", "", "redirect log output to file (default stderr)")

	fs.Usage = func() {
		usage := "Usage: %s [options]"
		if !c.NoExe {
			usage += " <elf>"
		}
		if c.Args != "" {
			usage += " " + c.Args
		}
		usage += "\n\nOptions:\n"
		fmt.Fprintf(c.Stderr, usage, argv[0])
		var flags []*flag.Flag
		fs.VisitAll(func(f *flag.Flag) { flags = append(flags, f) })
		models.PrintFlags(c.Stderr, flags)
	}
	if c.SetupFlags != nil {
		if err := c.SetupFlags(); err != nil {
			c.PrintError(err)
			return 1
		}
	}
	if err := fs.Parse(argv[1:]); err != nil {
		return 2
	}

	config := models.NewConfig()
	if f, ok := c.Stdout.(interface{ Fd() uintptr }); ok {
		config.Color = isatty.IsTerminal(f.Fd())
	}
	c.Config = config
	if err := loadConfig(config, *configPath); err != nil {
		c.PrintError(err)
		return 1
	}
	// flags given on the command line win over config files
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "v":
			config.Verbose = *verbose
		case "color":
			config.Color = *color
		case "natural":
			config.NaturalSort = *natural
		case "backend":
			config.Backend = *backend
		}
	})
	if *outfile != "" {
		out, err := os.OpenFile(*outfile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			c.PrintError(errors.WithStack(err))
			return 1
		}
		config.Output = out
		defer func() {
			models.Log.SetOutput(os.Stderr)
			out.Close()
		}()
	}
	models.SetupLog(config)
	if c.Teardown != nil {
		defer c.Teardown()
	}

	args := fs.Args()
	if !c.NoExe {
		if len(args) < 1 {
			fs.Usage()
			return 1
		}
		f, err := loader.LoadFile(args[0])
		if err != nil {
			c.PrintError(errors.Wrap(err, args[0]))
			return 1
		}
		c.File = f
		models.Log.Debugf("parsed %s: %s %s", args[0], f.Machine, f.Type)
	}
	if c.RunFile != nil {
		if err := c.RunFile(args); err != nil {
			c.PrintError(err)
			return 1
		}
	}
	return 0
}

// NewSession builds a loader session for c.File on the configured backend.
func (c *ElfCmd) NewSession() (*loader.Session, error) {
	mem, err := loader.NewMemory(c.File, c.Config)
	if err != nil {
		return nil, err
	}
	return loader.NewSession(c.File, mem, c.Config), nil
}
