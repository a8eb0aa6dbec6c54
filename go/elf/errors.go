package elf

import (
	"github.com/pkg/errors"
)

// Every rejection from Parse wraps one of these; use errors.Cause to match.
var (
	ErrMalformedIdent     = errors.New("malformed ELF identification")
	ErrUnsupportedClass   = errors.New("unsupported ELF class")
	ErrOutOfBoundsTable   = errors.New("header table out of bounds")
	ErrOutOfBoundsEntry   = errors.New("header entry out of bounds")
	ErrInvalidStringTable = errors.New("invalid string table reference")
	ErrInvalidNameOffset  = errors.New("section name offset out of bounds")
	ErrAlreadyConsumed    = errors.New("descriptor already loaded or linked")

	ErrNotLinked      = errors.New("descriptor has not been linked")
	ErrSymbolNotFound = errors.New("symbol not found")
)
