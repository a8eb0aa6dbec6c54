package check

import (
	"github.com/pkg/errors"

	"github.com/lunixbochs/elfcore/go/cmd"
	"github.com/lunixbochs/elfcore/go/elf"
	"github.com/lunixbochs/elfcore/go/models"
)

var ErrMismatch = errors.New("image does not match")

// Cond builds a check condition from flag values; empty strings are
// wildcards.
func Cond(bits int, typ, machine, min, max string) (*elf.Cond, error) {
	c := &elf.Cond{Bits: bits}
	if typ != "" {
		t, ok := elf.TypeByName(typ)
		if !ok {
			return nil, errors.Errorf("unknown type %q", typ)
		}
		c.Type = t
	}
	if machine != "" {
		m, ok := elf.MachineByArch(machine)
		if !ok {
			return nil, errors.Errorf("unknown machine %q", machine)
		}
		c.Machine = m
	}
	var err error
	if min != "" {
		if c.MinAddr, err = models.ParseAddr(min); err != nil {
			return nil, errors.Wrap(err, "-min")
		}
	}
	if max != "" {
		if c.MaxAddr, err = models.ParseAddr(max); err != nil {
			return nil, errors.Wrap(err, "-max")
		}
	}
	return c, nil
}

func New() *cmd.ElfCmd {
	c := cmd.NewElfCmd()
	var bits *int
	var typ, machine, min, max *string
	c.SetupFlags = func() error {
		bits = c.Flags.Int("bits", 0, "require ELF class (64)")
		typ = c.Flags.String("type", "", "require object type: rel, exec, dyn or core")
		machine = c.Flags.String("machine", "", "require machine, e.g. x86_64 or arm64")
		min = c.Flags.String("min", "", "lowest address segments may occupy")
		max = c.Flags.String("max", "", "address segments must end below")
		return nil
	}
	c.RunFile = func(args []string) error {
		cond, err := Cond(*bits, *typ, *machine, *min, *max)
		if err != nil {
			return err
		}
		if !c.File.Check(cond) {
			return errors.Wrap(ErrMismatch, args[0])
		}
		c.Printf("%s: ok\n", args[0])
		return nil
	}
	return c
}

func Main(args []string) int {
	return New().Run(args)
}

func init() { cmd.Register("check", "test an image against constraints", Main) }
