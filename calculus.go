package symroot

import (
	"math/big"

	"github.com/njchilds90/symroot/poly"
)

// ============================================================
// Differentiation
// ============================================================

// Derivative returns d(e)/d(v). The result is not simplified; pass it to
// Simplify for a compact form. Variables other than v are constants.
//
//	d(sin u) = cos(u)*du     d(cos u) = -sin(u)*du
//	d(exp u) = exp(u)*du     d(ln u)  = du/u
//	d(|u|)   = ±1*du         d(±u)    = ±du
func Derivative(e Expr, v string) Expr {
	return Visit[Expr](e, &differ{id: v})
}

// DerivativeN applies Derivative n times, simplifying after each step.
func DerivativeN(e Expr, v string, n int) Expr {
	for i := 0; i < n; i++ {
		e = Simplify(Derivative(e, v))
	}
	return e
}

type differ struct {
	id string
}

func (d *differ) of(e Expr) Expr { return Visit[Expr](e, d) }

func (d *differ) VisitConst(*Const) Expr { return N(0) }

func (d *differ) VisitVar(v *Var) Expr {
	if v.ID() == d.id {
		return N(1)
	}
	return N(0)
}

func (d *differ) VisitUnary(u *Unary) Expr {
	du := d.of(u.arg)
	switch u.op {
	case OpNeg:
		return NegOf(du)
	case OpSin:
		return MulOf(CosOf(u.arg), du)
	case OpCos:
		return MulOf(NegOf(SinOf(u.arg)), du)
	case OpExp:
		return MulOf(u, du)
	case OpLn:
		return DivOf(du, u.arg)
	case OpAbs:
		return MulOf(ArbSignOf(N(1)), du)
	case OpArbSign:
		return ArbSignOf(du)
	}
	return N(0)
}

func (d *differ) VisitBinary(b *Binary) Expr {
	l, r := b.left, b.right
	switch b.op {
	case OpAdd, OpSub:
		return binaryOf(b.op, d.of(l), d.of(r))
	case OpMul:
		return AddOf(MulOf(d.of(l), r), MulOf(l, d.of(r)))
	case OpDiv:
		num := SubOf(MulOf(d.of(l), r), MulOf(l, d.of(r)))
		return DivOf(num, PowOf(r, N(2)))
	case OpPow:
		if !dependsOn(r, d.id) {
			// n*u^(n-1)*du
			return MulOf(r, PowOf(l, SubOf(r, N(1))), d.of(l))
		}
		// u^w * (w'*ln(u) + w*u'/u)
		return MulOf(b, AddOf(
			MulOf(d.of(r), LnOf(l)),
			DivOf(MulOf(r, d.of(l)), l),
		))
	}
	return N(0)
}

func (d *differ) VisitPoly(p *Poly) Expr {
	if p.p.Var() != d.id {
		return N(0)
	}
	return PolyOf(p.p.Derivative())
}

// ============================================================
// Substitution
// ============================================================

// Substitute replaces every occurrence of the variable v in e with r.
// Subtrees that do not mention v are shared with the input.
func Substitute(e Expr, v string, r Expr) Expr {
	return Visit[Expr](e, &substituter{id: v, r: r})
}

type substituter struct {
	id string
	r  Expr
}

func (s *substituter) VisitConst(c *Const) Expr { return c }

func (s *substituter) VisitVar(v *Var) Expr {
	if v.ID() == s.id {
		return s.r
	}
	return v
}

func (s *substituter) VisitUnary(u *Unary) Expr {
	return u.with(Visit[Expr](u.arg, s))
}

func (s *substituter) VisitBinary(b *Binary) Expr {
	return b.with(Visit[Expr](b.left, s), Visit[Expr](b.right, s))
}

func (s *substituter) VisitPoly(p *Poly) Expr {
	if p.p.Var() != s.id {
		return p
	}
	switch r := s.r.(type) {
	case *Const:
		if r.IsExact() {
			return &Const{rat: p.p.Eval(r.rat)}
		}
		return NFloat(p.p.EvalFloat(r.f))
	case *Var:
		return PolyOf(p.p.Rename(r.ID()))
	}
	return horner(p.p, s.r)
}

// horner expands p at an arbitrary expression: (...(cn*x + cn-1)*x ...) + c0.
func horner(p poly.Poly, x Expr) Expr {
	d := p.Degree()
	if d < 0 {
		return N(0)
	}
	var acc Expr = NRat(p.Coeff(d))
	for i := d - 1; i >= 0; i-- {
		acc = MulOf(acc, x)
		if c := p.Coeff(i); c.Sign() != 0 {
			acc = AddOf(acc, &Const{rat: c})
		}
	}
	return acc
}

// addConst builds the exact or float constant c + k.
func addConst(c *Const, k int64) *Const {
	if c.IsExact() {
		return &Const{rat: new(big.Rat).Add(c.rat, big.NewRat(k, 1))}
	}
	return NFloat(c.f + float64(k))
}
