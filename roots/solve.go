package roots

import (
	"math"
	"math/big"

	"github.com/njchilds90/symroot/internal/fault"
	"github.com/njchilds90/symroot/poly"
)

// Solve returns the distinct real roots of f sorted ascending.
//
// f is first reduced to its squarefree part, so repeated roots are reported
// once. Degrees two and three try the closed forms first; their roots are
// accepted only when the Sturm count agrees and each one can be bracketed
// within cfg.Tolerance. Otherwise, and for higher degrees, the roots are
// isolated with a Sturm chain and each interval is refined.
func Solve(f poly.Poly, cfg Config) ([]Root, error) {
	cfg = cfg.withDefaults()
	sf, err := poly.Squarefree(f)
	if err != nil {
		return nil, err
	}
	if sf.IsZero() {
		return nil, fault.Wrap(ErrZeroPolynomial, "solve")
	}

	switch d := sf.Degree(); {
	case d == 0:
		return nil, nil
	case d == 1:
		// -c0/c1 is exact
		x := new(big.Rat).Quo(sf.Coeff(0), sf.Coeff(1))
		return []Root{exactRoot(x.Neg(x))}, nil
	case d <= 3:
		chain, err := NewChain(sf)
		if err != nil {
			return nil, err
		}
		if out, ok := closedRoots(sf, chain, cfg); ok {
			return out, nil
		}
	}

	ivs, err := Isolate(sf, cfg)
	if err != nil {
		return nil, err
	}
	out := make([]Root, 0, len(ivs))
	for _, iv := range ivs {
		r, err := Refine(sf, iv, cfg)
		if err != nil {
			return out, err
		}
		out = append(out, r)
	}
	sortRoots(out)
	return out, nil
}

// closedRoots solves a squarefree quadratic or cubic with the float closed
// forms and checks the result against chain. It reports false when a root is
// missing or cannot be bracketed within cfg.Tolerance.
func closedRoots(f poly.Poly, chain *Chain, cfg Config) ([]Root, bool) {
	c := f.Floats()
	var vals []float64
	if f.Degree() == 2 {
		vals = SolveQuadratic(c[0], c[1], c[2])
	} else {
		vals = SolveCubic(c[0], c[1], c[2], c[3])
	}
	if len(vals) != chain.TotalRoots() {
		return nil, false
	}
	out := make([]Root, 0, len(vals))
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, false
		}
		r, ok := closedRoot(f, chain, v, cfg.Tolerance)
		if !ok {
			return nil, false
		}
		out = append(out, r)
	}
	sortRoots(out)
	for i := 1; i < len(out); i++ {
		if out[i-1].Hi.Cmp(out[i].Lo) >= 0 {
			return nil, false
		}
	}
	return out, true
}

// closedRoot wraps a closed-form value. A value that is a root of f in exact
// arithmetic is returned as is; otherwise the bracket v ± tol must hold
// exactly one root of f.
func closedRoot(f poly.Poly, chain *Chain, v, tol float64) (Root, bool) {
	x := new(big.Rat).SetFloat64(v)
	if f.Eval(x).Sign() == 0 {
		return exactRoot(x), true
	}
	lo, hi := v-tol, v+tol
	if lo == v || hi == v {
		return Root{}, false
	}
	a, b := new(big.Rat).SetFloat64(lo), new(big.Rat).SetFloat64(hi)
	if f.Eval(b).Sign() == 0 || chain.RootCount(a, b) != 1 {
		return Root{}, false
	}
	return Root{Value: v, Lo: a, Hi: b, Tolerance: tol}, true
}
