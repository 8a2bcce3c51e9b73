package munsell

import (
	"errors"
	"fmt"
)

// ErrOutOfGamut is matched by every error returned for a notation the
// backend could not convert.
var ErrOutOfGamut = errors.New("notation is outside the Munsell gamut")

// OutOfGamutError reports a failed forward conversion. The backend error
// that caused it, typically oracle.ErrUndefined, a notation.ErrSyntax or an
// oracle.ErrConversion, can be accessed via errors.Unwrap.
type OutOfGamutError struct {
	Notation string
	cause    error
}

func (e *OutOfGamutError) Error() string {
	if e.cause == nil {
		return fmt.Sprintf("%q is outside the Munsell gamut", e.Notation)
	}
	return fmt.Sprintf("%q is outside the Munsell gamut: %v", e.Notation, e.cause)
}

func (e *OutOfGamutError) Is(target error) bool { return target == ErrOutOfGamut }

func (e *OutOfGamutError) Unwrap() error { return e.cause }
