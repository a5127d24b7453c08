package modeq

import "errors"

var (
	// ErrInvalidModulus reports a modulus below two. The ring Z/nZ is
	// defined only for n >= 2 here.
	ErrInvalidModulus = errors.New("modeq: modulus must be greater than one")

	// ErrTooManySolutions reports an equation whose solution count
	// exceeds the solver's cap.
	ErrTooManySolutions = errors.New("modeq: solution count exceeds the cap")

	// ErrOverflow reports a coefficient that cannot be represented in
	// the solver's integer width.
	ErrOverflow = errors.New("modeq: coefficient overflows the integer width")
)
