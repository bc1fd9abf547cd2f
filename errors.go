package symroot

import "errors"

var (
	// ErrIntegrationUnsupported is returned by Integrate for shapes outside
	// the supported pattern set. Callers may fall back to numeric methods.
	ErrIntegrationUnsupported = errors.New("symroot: integration pattern not supported")

	// ErrNotPolynomial is returned when an expression does not simplify to a
	// polynomial in the requested variable.
	ErrNotPolynomial = errors.New("symroot: expression is not a polynomial")

	// ErrUnboundVariable is returned by Eval when a variable has no value.
	ErrUnboundVariable = errors.New("symroot: unbound variable")

	// ErrParse is returned by Parse for input it cannot convert.
	ErrParse = errors.New("symroot: parse error")

	// ErrOrderLimit is returned by CheckOrder for derivative or series orders
	// above Config.MaxOrder.
	ErrOrderLimit = errors.New("symroot: order exceeds limit")
)

// ErrMalformedJSON is returned by FromJSON for objects that do not describe
// an expression.
var ErrMalformedJSON = errors.New("symroot: malformed expression JSON")
