package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
)

type command struct {
	name, desc string
	main       func(args []string) int
}

var commands map[string]*command
var order []string
var pad int

func init() { commands = make(map[string]*command) }

// Register adds a subcommand. main receives argv with the program and
// subcommand names joined into argv[0].
func Register(name, desc string, main func(args []string) int) {
	if len(name) > pad {
		pad = len(name)
	}
	commands[name] = &command{name, desc, main}
	order = append(order, name)
}

func usage(w io.Writer, prog string) {
	fmt.Fprintln(w, "Commands:")
	fstr := fmt.Sprintf("%%-%ds | %%s\n", pad)
	for _, name := range order {
		cmd := commands[name]
		fmt.Fprintf(w, fstr, cmd.name, cmd.desc)
	}
	fmt.Fprintf(w, "\nExample: %s link -stub -v bins/x86_64.linux.elf\n\n", prog)
}

// Dispatch runs the subcommand named by argv[1] and returns its exit code.
func Dispatch(argv []string, stderr io.Writer) int {
	if len(argv) < 2 {
		usage(stderr, argv[0])
		return 1
	}
	cmd, ok := commands[argv[1]]
	if !ok {
		fmt.Fprintf(stderr, "Command '%s' not found.\n\n", argv[1])
		usage(stderr, argv[0])
		return 1
	}
	args := append([]string{strings.Join(argv[:2], " ")}, argv[2:]...)
	return cmd.main(args)
}

func Main() {
	os.Exit(Dispatch(os.Args, os.Stderr))
}
