package console

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/lunixbochs/argjoy"
	"github.com/mattn/go-shellwords"
	"github.com/pkg/errors"

	"github.com/lunixbochs/elfcore/go/models"
)

type Command struct {
	Name string
	Desc string
	Run  interface{}
}

var Commands = make(map[string]*Command)

// ErrQuit ends the console loop.
var ErrQuit = errors.New("quit")

func register(c *Command) *Command {
	fn := reflect.ValueOf(c.Run)
	if !fn.IsValid() || fn.Kind() != reflect.Func {
		panic(fmt.Sprintf("Command.Run must be a func: got (%T) %#v\n", c.Run, c.Run))
	}
	Commands[c.Name] = c
	return c
}

// Names lists the registered commands in order.
func Names() []string {
	var names []string
	for name := range Commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// argCodec converts console words into command arguments.
func argCodec(arg interface{}, vals []interface{}) error {
	switch v := vals[0].(type) {
	case *Context:
		if c, ok := arg.(**Context); ok {
			*c = v
			return nil
		}
	case string:
		switch a := arg.(type) {
		case *string:
			*a = v
			return nil
		case *uint64:
			addr, err := models.ParseAddr(v)
			if err != nil {
				return errors.Wrapf(err, "bad number %q", v)
			}
			*a = addr
			return nil
		}
	}
	return argjoy.NoMatch
}

var aj = argjoy.NewArgjoy()

func init() { aj.Register(argCodec) }

// Run executes one console line. Command failures are printed; only ErrQuit
// is returned.
func Run(c *Context, line string) error {
	args, err := shellwords.Parse(line)
	if err != nil {
		c.Printf("parse error: %v\n", err)
		return nil
	}
	if len(args) == 0 {
		return nil
	}
	name, args := args[0], args[1:]
	cmd, ok := Commands[name]
	if !ok {
		c.Printf("command not found.\n")
		return nil
	}
	in := []interface{}{c}
	for _, a := range args {
		in = append(in, a)
	}
	out, err := aj.Call(cmd.Run, in...)
	if err != nil {
		c.Printf("error: %v\n", err)
		return nil
	}
	if len(out) > 0 {
		if err, ok := out[0].(error); ok {
			if errors.Cause(err) == ErrQuit {
				return ErrQuit
			}
			c.Printf("error: %v\n", err)
		}
	}
	return nil
}
