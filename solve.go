package symroot

import (
	"math"

	"github.com/njchilds90/symroot/internal/fault"
	"github.com/njchilds90/symroot/poly"
	"github.com/njchilds90/symroot/roots"
)

// ToPoly simplifies e and returns it as a polynomial in v. When v is empty
// the single free variable of e is used; a constant becomes a polynomial
// in "x".
func ToPoly(e Expr, v string) (poly.Poly, error) {
	return toPoly(e, v, DefaultConfig())
}

func toPoly(e Expr, v string, cfg Config) (poly.Poly, error) {
	e = SimplifyWith(e, cfg)
	if v == "" {
		switch vars := FreeVars(e); len(vars) {
		case 0:
			v = "x"
		case 1:
			v = vars[0]
		default:
			return poly.Poly{}, fault.Wrap(ErrNotPolynomial, "%s has several variables %v", e, vars)
		}
	}
	switch n := e.(type) {
	case *Poly:
		if n.p.Var() == v {
			return n.p, nil
		}
	case *Var:
		if n.ID() == v {
			return poly.X(v), nil
		}
	case *Const:
		if n.IsExact() {
			return poly.Constant(v, n.rat), nil
		}
		return poly.FromFloats(v, n.f)
	}
	return poly.Poly{}, fault.Wrap(ErrNotPolynomial, "%s in %s", e, v)
}

// RealRoots returns the distinct real roots of the polynomial e in v, sorted
// ascending.
func RealRoots(e Expr, v string, cfg Config) ([]roots.Root, error) {
	p, err := toPoly(e, v, cfg)
	if err != nil {
		return nil, err
	}
	return roots.Solve(p, cfg.Roots)
}

// IsolateRoots returns one isolating interval per distinct real root of e.
func IsolateRoots(e Expr, v string, cfg Config) ([]roots.Interval, error) {
	p, err := toPoly(e, v, cfg)
	if err != nil {
		return nil, err
	}
	return roots.Isolate(p, cfg.Roots)
}

// SturmChain builds the Sturm sequence of the squarefree part of e.
func SturmChain(e Expr, v string) (*roots.Chain, error) {
	p, err := ToPoly(e, v)
	if err != nil {
		return nil, err
	}
	sf, err := poly.Squarefree(p)
	if err != nil {
		return nil, err
	}
	return roots.NewChain(sf)
}

// CountRoots returns the number of distinct real roots of e in (a, b].
// Infinite bounds are allowed.
func CountRoots(e Expr, v string, a, b float64) (int, error) {
	p, err := ToPoly(e, v)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(a) || math.IsNaN(b) {
		return 0, fault.Wrap(poly.ErrNonFinite, "bounds (%g, %g]", a, b)
	}
	sf, err := poly.Squarefree(p)
	if err != nil {
		return 0, err
	}
	chain, err := roots.NewChain(sf)
	if err != nil {
		return 0, err
	}
	return chain.RootCountFloat(a, b), nil
}
