package models

import (
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gookit/ini/v2"
	"github.com/pkg/errors"
	"github.com/shibukawa/configdir"
)

const ConfigName = "config.ini"

type Config struct {
	Color       bool
	NaturalSort bool
	Verbose     bool
	// Backend selects the loader memory backend: "sim" or "unicorn".
	Backend string
	// Symbols seeds the resolver used when linking.
	Symbols map[string]uint64

	Output io.WriteCloser
}

func NewConfig() *Config {
	return &Config{
		Backend: "sim",
		Symbols: make(map[string]uint64),
		Output:  os.Stderr,
	}
}

// ConfigPaths lists the per-user config files in priority order.
func ConfigPaths() []string {
	var paths []string
	dirs := configdir.New("elfcore", "elfcore")
	for _, folder := range dirs.QueryFolders(configdir.All) {
		paths = append(paths, filepath.Join(folder.Path, ConfigName))
	}
	return paths
}

// LoadFile merges settings from an INI file into c. Missing files are
// ignored.
//
//	verbose = true
//	color = true
//	natural_sort = true
//	backend = sim
//
//	[symbols]
//	puts = 0x7f0000001000
func (c *Config) LoadFile(paths ...string) error {
	conf := ini.New()
	if err := conf.LoadExists(paths...); err != nil {
		return errors.Wrap(err, "failed to read config")
	}
	return c.load(conf)
}

// LoadString is LoadFile for in-memory INI text.
func (c *Config) LoadString(text string) error {
	conf := ini.New()
	if err := conf.LoadStrings(text); err != nil {
		return errors.Wrap(err, "failed to parse config")
	}
	return c.load(conf)
}

func (c *Config) load(conf *ini.Ini) error {
	c.Verbose = conf.Bool("verbose", c.Verbose)
	c.Color = conf.Bool("color", c.Color)
	c.NaturalSort = conf.Bool("natural_sort", c.NaturalSort)
	c.Backend = conf.String("backend", c.Backend)
	if c.Symbols == nil {
		c.Symbols = make(map[string]uint64)
	}
	for name, val := range conf.Section("symbols") {
		addr, err := ParseAddr(val)
		if err != nil {
			return errors.Wrapf(err, "bad address for symbol %s", name)
		}
		c.Symbols[name] = addr
	}
	return nil
}

// ParseAddr parses a decimal or 0x-prefixed hex address.
func ParseAddr(s string) (uint64, error) {
	s = strings.TrimSpace(s)
	return strconv.ParseUint(s, 0, 64)
}
