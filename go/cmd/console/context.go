package console

import (
	"fmt"
	"io"

	"github.com/pkg/errors"

	"github.com/lunixbochs/elfcore/go/cmd"
	"github.com/lunixbochs/elfcore/go/elf"
	"github.com/lunixbochs/elfcore/go/loader"
	"github.com/lunixbochs/elfcore/go/models"
)

// Context is the state shared by console commands: one image and the
// session currently driving it.
type Context struct {
	io.Writer
	Config  *models.Config
	File    *elf.File
	Session *loader.Session
	Link    *cmd.LinkFlags
}

func (c *Context) Printf(format string, a ...interface{}) (n int, err error) {
	return fmt.Fprintf(c, format, a...)
}

func (c *Context) Painter() models.Painter {
	return models.Painter{Enabled: c.Config.Color}
}

// Reset releases the current session and starts over on a freshly parsed
// copy of the image.
func (c *Context) Reset() error {
	if c.Session != nil {
		c.Session.Release()
	}
	f, err := elf.Parse(c.File.Image())
	if err != nil {
		return errors.Wrap(err, "reparse failed")
	}
	mem, err := loader.NewMemory(f, c.Config)
	if err != nil {
		return err
	}
	c.File = f
	c.Session = loader.NewSession(f, mem, c.Config)
	if c.Link != nil {
		return c.Link.Apply(c.Session)
	}
	return nil
}
