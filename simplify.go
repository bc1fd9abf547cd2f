package symroot

import (
	"math"
	"math/big"

	"github.com/njchilds90/symroot/poly"
)

// Simplify rewrites e to canonical form using DefaultConfig. It never fails:
// shapes no rule recognizes are returned unchanged. The result is a fixed
// point, so Simplify(Simplify(e)) is structurally equal to Simplify(e).
func Simplify(e Expr) Expr { return SimplifyWith(e, DefaultConfig()) }

// SimplifyWith is Simplify with explicit configuration.
func SimplifyWith(e Expr, cfg Config) Expr {
	if cfg.MaxPowerExpansion < 0 {
		cfg.MaxPowerExpansion = 0
	}
	s := &simplifier{cfg: cfg}
	return s.simplify(e)
}

type simplifier struct {
	cfg Config
}

// rule inspects a node whose children are already simplified. It reports
// false when the node's shape does not match.
type rule func(s *simplifier, e Expr) (Expr, bool)

// rules are tried in order; the first match wins. Several rules recurse
// into rewrite, so the list is filled in init.
var rules []rule

func init() {
	rules = []rule{
		evaluate,
		eliminateIdentity,
		foldExact,
		reassociate,
		absorbArbSign,
		promotePoly,
	}
}

// simplify works bottom-up: children first, then the rule list on the node.
func (s *simplifier) simplify(e Expr) Expr {
	switch n := e.(type) {
	case *Unary:
		return s.rewrite(n.with(s.simplify(n.arg)))
	case *Binary:
		return s.rewrite(n.with(s.simplify(n.left), s.simplify(n.right)))
	case *Poly:
		if d := demote(n.p); d.Kind() != KindPoly {
			return d
		}
	}
	return e
}

func (s *simplifier) rewrite(e Expr) Expr {
	for _, r := range rules {
		if out, ok := r(s, e); ok {
			return out
		}
	}
	return e
}

// ============================================================
// Polynomial conversion
// ============================================================

// exactOf returns the rational value of c. Floats convert exactly; NaN and
// infinities have no rational value.
func exactOf(c *Const) (*big.Rat, bool) {
	if c.rat != nil {
		return c.rat, true
	}
	if math.IsNaN(c.f) || math.IsInf(c.f, 0) {
		return nil, false
	}
	return new(big.Rat).SetFloat64(c.f), true
}

// asPoly views an operand as a polynomial. Constants carry no variable tag.
func (s *simplifier) asPoly(e Expr) (poly.Poly, bool) {
	switch n := e.(type) {
	case *Const:
		r, ok := exactOf(n)
		if !ok {
			return poly.Poly{}, false
		}
		return poly.Constant("", r), true
	case *Var:
		return poly.X(n.ID()), true
	case *Poly:
		return n.p, true
	case *Binary:
		v, ok := n.left.(*Var)
		if n.op != OpPow || !ok {
			break
		}
		if k, ok := s.smallExponent(n.right); ok {
			return poly.Monomial(v.ID(), ratOne, k), true
		}
	}
	return poly.Poly{}, false
}

// smallExponent accepts exact integers in [0, MaxPowerExpansion].
func (s *simplifier) smallExponent(e Expr) (int, bool) {
	c, ok := e.(*Const)
	if !ok {
		return 0, false
	}
	k, ok := c.Int()
	if !ok || k < 0 || k > int64(s.cfg.MaxPowerExpansion) {
		return 0, false
	}
	return int(k), true
}

// demote turns degenerate polynomials back into leaves: constants become
// Const and the identity polynomial becomes its Var.
func demote(p poly.Poly) Expr {
	switch {
	case p.Degree() <= 0:
		return NRat(p.Coeff(0))
	case p.IsX():
		return varFromID(p.Var())
	}
	return PolyOf(p)
}
