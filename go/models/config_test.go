package models

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigDefaults(t *testing.T) {
	c := NewConfig()
	assert.Equal(t, "sim", c.Backend)
	assert.False(t, c.Verbose)
	assert.NotNil(t, c.Symbols)
}

func TestConfigLoadString(t *testing.T) {
	c := NewConfig()
	err := c.LoadString(`
verbose = true
natural_sort = true
backend = unicorn

[symbols]
puts = 0x7f0000001000
exit = 4096
`)
	require.NoError(t, err)
	assert.True(t, c.Verbose)
	assert.True(t, c.NaturalSort)
	assert.False(t, c.Color)
	assert.Equal(t, "unicorn", c.Backend)
	assert.Equal(t, map[string]uint64{"puts": 0x7f0000001000, "exit": 4096}, c.Symbols)
}

func TestConfigBadSymbol(t *testing.T) {
	c := NewConfig()
	err := c.LoadString("[symbols]\nputs = nowhere\n")
	assert.Error(t, err)
}

func TestConfigLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigName)
	require.NoError(t, os.WriteFile(path, []byte("color = true\n"), 0644))

	c := NewConfig()
	require.NoError(t, c.LoadFile(filepath.Join(dir, "missing.ini"), path))
	assert.True(t, c.Color)
}

func TestConfigPaths(t *testing.T) {
	for _, path := range ConfigPaths() {
		assert.Equal(t, ConfigName, filepath.Base(path))
	}
}

func TestParseAddr(t *testing.T) {
	for s, want := range map[string]uint64{"0x10": 16, "10": 10, " 0x400000 ": 0x400000} {
		addr, err := ParseAddr(s)
		require.NoError(t, err, s)
		assert.Equal(t, want, addr, s)
	}
	_, err := ParseAddr("-1")
	assert.Error(t, err)
}
