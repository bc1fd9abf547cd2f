package roots

import (
	"math"
	"math/big"

	"github.com/njchilds90/symroot/internal/fault"
	"github.com/njchilds90/symroot/poly"
)

// Mobius is the map x -> (A*x + B) / (C*x + D). It records the composition
// of the transforms applied to a polynomial so that roots of the transformed
// polynomial can be mapped back.
type Mobius struct {
	A, B, C, D *big.Rat
}

// Identity returns x -> x.
func Identity() Mobius {
	return Mobius{A: big.NewRat(1, 1), B: new(big.Rat), C: new(big.Rat), D: big.NewRat(1, 1)}
}

// Eval returns M(x). ok is false when the denominator vanishes.
func (m Mobius) Eval(x *big.Rat) (r *big.Rat, ok bool) {
	num := new(big.Rat).Mul(m.A, x)
	num.Add(num, m.B)
	den := new(big.Rat).Mul(m.C, x)
	den.Add(den, m.D)
	if den.Sign() == 0 {
		return nil, false
	}
	return num.Quo(num, den), true
}

// AtInf returns the limit A/C of M(x) as x grows without bound.
func (m Mobius) AtInf() (r *big.Rat, ok bool) {
	if m.C.Sign() == 0 {
		return nil, false
	}
	return new(big.Rat).Quo(m.A, m.C), true
}

// Shift composes M with x -> x + t.
func (m Mobius) Shift(t *big.Rat) Mobius {
	b := new(big.Rat).Mul(m.A, t)
	d := new(big.Rat).Mul(m.C, t)
	return Mobius{A: m.A, B: b.Add(b, m.B), C: m.C, D: d.Add(d, m.D)}
}

// Scale composes M with x -> s*x.
func (m Mobius) Scale(s *big.Rat) Mobius {
	return Mobius{A: new(big.Rat).Mul(m.A, s), B: m.B, C: new(big.Rat).Mul(m.C, s), D: m.D}
}

// InvertTaylorShift composes M with x -> 1/(x + 1).
func (m Mobius) InvertTaylorShift() Mobius {
	return Mobius{A: m.B, B: new(big.Rat).Add(m.A, m.B), C: m.D, D: new(big.Rat).Add(m.C, m.D)}
}

// Bounds returns M(0) and M(inf) in ascending order. Both are finite for the
// transforms built by Refine.
func (m Mobius) Bounds() (lo, hi *big.Rat) {
	zero, _ := m.Eval(new(big.Rat))
	inf, _ := m.AtInf()
	if zero.Cmp(inf) > 0 {
		return inf, zero
	}
	return zero, inf
}

// Root is a refined real root.
type Root struct {
	Value float64
	// Lo and Hi bracket the root. They are equal for exact roots.
	Lo, Hi *big.Rat
	// Tolerance is the achieved half-width of the bracket. Exact roots
	// report zero.
	Tolerance float64
	// Exact is set when the root was found as an exact rational.
	Exact bool
}

func exactRoot(x *big.Rat) Root {
	v, _ := x.Float64()
	return Root{Value: v, Lo: x, Hi: new(big.Rat).Set(x), Exact: true}
}

// stripZeroRoots removes factors of x. At the start of refinement these
// correspond to interval endpoints, which are excluded.
func stripZeroRoots(g poly.Poly) poly.Poly {
	for g.Degree() > 0 && g.Coeff(0).Sign() == 0 {
		g = poly.New(g.Var(), g.Coeffs()[1:]...)
	}
	return g
}

// Refine narrows an isolating interval of f until the root is known within
// cfg.Tolerance. iv must contain exactly one simple root of f.
func Refine(f poly.Poly, iv Interval, cfg Config) (Root, error) {
	cfg = cfg.withDefaults()
	if f.IsZero() {
		return Root{}, fault.Wrap(ErrZeroPolynomial, "refine")
	}
	lo, hi := iv.Lo, iv.Hi
	if lo.Cmp(hi) > 0 {
		lo, hi = hi, lo
	}
	if lo.Cmp(hi) == 0 {
		r := exactRoot(lo)
		r.Exact = f.Eval(lo).Sign() == 0
		return r, nil
	}

	width := new(big.Rat).Sub(hi, lo)
	g := poly.InvertTaylorShift(poly.Scale(poly.Shift(f, lo), width))
	g = stripZeroRoots(g)
	m := Identity().Shift(lo).Scale(width).InvertTaylorShift()

	one := big.NewRat(1, 1)
	half := big.NewRat(1, 2)
	for it := 0; it < cfg.MaxIterations; it++ {
		a, b := m.Bounds()
		w := new(big.Rat).Sub(b, a)
		hw, _ := w.Mul(w, half).Float64()
		if hw <= cfg.Tolerance {
			mid := new(big.Rat).Add(a, b)
			v, _ := mid.Mul(mid, half).Float64()
			return Root{Value: v, Lo: a, Hi: b, Tolerance: hw}, nil
		}

		if g.Coeff(0).Sign() == 0 {
			x, _ := m.Eval(new(big.Rat))
			return exactRoot(x), nil
		}

		// Jump over the root-free stretch (0, lb) when it is at least one wide.
		// The jump is kept only if the root is still ahead of it.
		if lb := poly.LMQLowerBound(g); lb >= 1 && !math.IsInf(lb, 0) {
			s := new(big.Rat).SetInt(floorInt(lb))
			gs := poly.Shift(g, s)
			if poly.DescartesSignChanges(gs)%2 == 1 {
				g, m = gs, m.Shift(s)
				continue
			}
		}

		g1 := g.Eval(one)
		if g1.Sign() == 0 {
			x, _ := m.Eval(one)
			return exactRoot(x), nil
		}
		if g.Coeff(0).Sign() != g1.Sign() {
			g, m = poly.InvertTaylorShift(g), m.InvertTaylorShift()
		} else {
			g, m = poly.Shift(g, one), m.Shift(one)
		}
	}

	a, b := m.Bounds()
	return Root{}, &RefinementError{Lo: a, Hi: b, Iterations: cfg.MaxIterations}
}

func floorInt(f float64) *big.Int {
	i, _ := new(big.Float).SetFloat64(math.Floor(f)).Int(nil)
	return i
}
