package roots

import (
	"errors"
	"fmt"
	"math/big"
)

var (
	// ErrZeroPolynomial is returned when asked for the roots of the zero
	// polynomial, which vanishes everywhere.
	ErrZeroPolynomial = errors.New("roots: zero polynomial")

	// ErrBisectionBudget is returned when isolation needs more splits than
	// Config.MaxBisections allows.
	ErrBisectionBudget = errors.New("roots: bisection budget exhausted")

	// ErrNonConvergence is wrapped by RefinementError.
	ErrNonConvergence = errors.New("roots: refinement did not converge")
)

// RefinementError reports the best bracketing interval reached before the
// iteration cap.
type RefinementError struct {
	Lo, Hi     *big.Rat
	Iterations int
}

func (e *RefinementError) Error() string {
	lo, _ := e.Lo.Float64()
	hi, _ := e.Hi.Float64()
	return fmt.Sprintf("%v after %d iterations: best interval [%g, %g]", ErrNonConvergence, e.Iterations, lo, hi)
}

func (e *RefinementError) Unwrap() error { return ErrNonConvergence }
