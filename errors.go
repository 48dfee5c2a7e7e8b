package clockwork

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument reports a missing input or collaborator.
	ErrInvalidArgument = errors.New("clockwork: invalid argument")
	// ErrInvalidSymbol is matched by errors.Is for every *SymbolError.
	ErrInvalidSymbol = errors.New("clockwork: invalid symbol")
)

// SymbolError is returned by Decode for a character outside the alphabet
// and its aliases.
type SymbolError struct {
	Symbol rune
	Offset int // byte offset into the input
}

func (e *SymbolError) Error() string {
	return fmt.Sprintf("clockwork: invalid symbol %q at offset %d", e.Symbol, e.Offset)
}

func (e *SymbolError) Unwrap() error { return ErrInvalidSymbol }
