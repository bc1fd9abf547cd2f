package poly

import (
	"errors"

	"github.com/njchilds90/symroot/internal/fault"
)

var (
	// ErrMismatchedVariable is returned when two polynomials over different
	// variables are combined.
	ErrMismatchedVariable = errors.New("poly: mismatched variable")

	// ErrDivisionByZero is returned when dividing by the zero polynomial.
	ErrDivisionByZero = errors.New("poly: division by zero polynomial")

	// ErrNonConstantDivisor is returned by Divide when the divisor has degree > 0.
	// Use DivMod for Euclidean division.
	ErrNonConstantDivisor = errors.New("poly: divisor is not a constant")

	// ErrNonFinite is returned when a NaN or infinite coefficient is supplied.
	ErrNonFinite = errors.New("poly: non-finite coefficient")
)

func mismatch(a, b Poly) error {
	return fault.Wrap(ErrMismatchedVariable, "%q vs %q", a.v, b.v)
}
