package loader

import (
	"bytes"
	"io"
	"io/ioutil"

	"github.com/golang/snappy"
	"github.com/pkg/errors"

	"github.com/lunixbochs/elfcore/go/elf"
)

var UnknownMagic = errors.New("Could not identify file magic.")

var elfMagic = []byte{elf.ELFMAG0, elf.ELFMAG1, elf.ELFMAG2, elf.ELFMAG3}

// snappy framing format stream identifier
var snappyMagic = []byte("\xff\x06\x00\x00sNaPpY")

func MatchElf(p []byte) bool {
	return bytes.HasPrefix(p, elfMagic)
}

func MatchSnappy(p []byte) bool {
	return bytes.HasPrefix(p, snappyMagic)
}

// ReadImage reads a whole image from r, unwrapping snappy framed streams.
func ReadImage(r io.Reader) ([]byte, error) {
	p, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read image")
	}
	if MatchSnappy(p) {
		p, err = ioutil.ReadAll(snappy.NewReader(bytes.NewReader(p)))
		if err != nil {
			return nil, errors.Wrap(err, "failed to decompress image")
		}
	}
	return p, nil
}

func ReadImageFile(path string) ([]byte, error) {
	p, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return ReadImage(bytes.NewReader(p))
}

// LoadFile reads and validates the image at path.
func LoadFile(path string) (*elf.File, error) {
	p, err := ReadImageFile(path)
	if err != nil {
		return nil, err
	}
	return Load(p)
}

func Load(p []byte) (*elf.File, error) {
	if !MatchElf(p) {
		return nil, errors.WithStack(UnknownMagic)
	}
	f, err := elf.Parse(p)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse ELF")
	}
	return f, nil
}

// CompressImage wraps p in a snappy framed stream.
func CompressImage(w io.Writer, p []byte) error {
	zw := snappy.NewBufferedWriter(w)
	if _, err := zw.Write(p); err != nil {
		return errors.WithStack(err)
	}
	return errors.WithStack(zw.Close())
}
