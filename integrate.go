package symroot

import (
	"math/big"

	"github.com/njchilds90/symroot/internal/fault"
	"github.com/njchilds90/symroot/poly"
)

// Integrate returns an antiderivative of e with respect to v, without the
// constant of integration. It covers sums, constant multiples, powers of v,
// polynomials, 1/v, a^v and sin, cos or exp of a linear argument. Anything
// else fails with ErrIntegrationUnsupported.
func Integrate(e Expr, v string) (Expr, error) {
	in := &integrator{id: v, x: varFromID(v)}
	res := Visit[integral](Simplify(e), in)
	if res.err != nil {
		return nil, res.err
	}
	return Simplify(res.e), nil
}

type integral struct {
	e   Expr
	err error
}

type integrator struct {
	id string
	x  *Var
}

func (in *integrator) of(e Expr) integral { return Visit[integral](e, in) }

func (in *integrator) unsupported(e Expr) integral {
	return integral{err: fault.Wrap(ErrIntegrationUnsupported, "integral of %s d%s", e, in.id)}
}

// free is the antiderivative of an expression that does not mention v.
func (in *integrator) free(e Expr) integral { return integral{e: MulOf(e, in.x)} }

func (in *integrator) VisitConst(c *Const) integral { return in.free(c) }

func (in *integrator) VisitVar(w *Var) integral {
	if w.ID() != in.id {
		return in.free(w)
	}
	return integral{e: PolyOf(poly.Monomial(in.id, big.NewRat(1, 2), 2))}
}

func (in *integrator) VisitUnary(u *Unary) integral {
	if !dependsOn(u, in.id) {
		return in.free(u)
	}
	if u.op == OpNeg {
		r := in.of(u.arg)
		if r.err != nil {
			return r
		}
		return integral{e: NegOf(r.e)}
	}
	a, ok := in.linearCoeff(u.arg)
	if !ok {
		return in.unsupported(u)
	}
	switch u.op {
	case OpSin:
		return integral{e: NegOf(DivOf(CosOf(u.arg), a))}
	case OpCos:
		return integral{e: DivOf(SinOf(u.arg), a)}
	case OpExp:
		return integral{e: DivOf(u, a)}
	}
	return in.unsupported(u)
}

// linearCoeff returns a for arguments of the form a*v + b.
func (in *integrator) linearCoeff(e Expr) (*Const, bool) {
	switch n := e.(type) {
	case *Var:
		if n.ID() == in.id {
			return N(1), true
		}
	case *Poly:
		if n.p.Var() == in.id && n.p.Degree() == 1 {
			return &Const{rat: n.p.Coeff(1)}, true
		}
	}
	return nil, false
}

func (in *integrator) VisitBinary(b *Binary) integral {
	if !dependsOn(b, in.id) {
		return in.free(b)
	}
	lDep, rDep := dependsOn(b.left, in.id), dependsOn(b.right, in.id)

	switch b.op {
	case OpAdd, OpSub:
		l := in.of(b.left)
		if l.err != nil {
			return l
		}
		r := in.of(b.right)
		if r.err != nil {
			return r
		}
		return integral{e: binaryOf(b.op, l.e, r.e)}

	case OpMul:
		if !lDep {
			r := in.of(b.right)
			if r.err != nil {
				return r
			}
			return integral{e: MulOf(b.left, r.e)}
		}
		if !rDep {
			l := in.of(b.left)
			if l.err != nil {
				return l
			}
			return integral{e: MulOf(l.e, b.right)}
		}

	case OpDiv:
		if !rDep {
			l := in.of(b.left)
			if l.err != nil {
				return l
			}
			return integral{e: DivOf(l.e, b.right)}
		}
		// k/v -> k*ln|v|
		if v, ok := b.right.(*Var); ok && v.ID() == in.id && !lDep {
			return integral{e: MulOf(b.left, LnOf(AbsOf(in.x)))}
		}

	case OpPow:
		n, constExp := b.right.(*Const)
		if v, ok := b.left.(*Var); ok && v.ID() == in.id && constExp {
			if n.is(big.NewRat(-1, 1)) {
				return integral{e: LnOf(AbsOf(in.x))}
			}
			k := addConst(n, 1)
			return integral{e: DivOf(PowOf(in.x, k), k)}
		}
		// a^v -> a^v/ln(a) for a constant base
		if a, ok := b.left.(*Const); ok && a.Sign() > 0 && !a.IsOne() {
			if v, ok := b.right.(*Var); ok && v.ID() == in.id {
				return integral{e: DivOf(b, LnOf(a))}
			}
		}
	}
	return in.unsupported(b)
}

func (in *integrator) VisitPoly(p *Poly) integral {
	if p.p.Var() != in.id {
		return in.free(p)
	}
	return integral{e: PolyOf(p.p.Integral())}
}
