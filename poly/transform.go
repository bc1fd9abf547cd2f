package poly

import (
	"math/big"
)

// Derivative returns p'.
func (p Poly) Derivative() Poly {
	if len(p.c) <= 1 {
		return Zero(p.v)
	}
	c := make([]*big.Rat, len(p.c)-1)
	for i := 1; i < len(p.c); i++ {
		c[i-1] = new(big.Rat).Mul(p.c[i], new(big.Rat).SetInt64(int64(i)))
	}
	return Poly{v: p.v, c: c}
}

// Integral returns the antiderivative with zero constant term.
func (p Poly) Integral() Poly {
	c := make([]*big.Rat, len(p.c)+1)
	c[0] = new(big.Rat)
	for i, k := range p.c {
		c[i+1] = new(big.Rat).Quo(k, new(big.Rat).SetInt64(int64(i+1)))
	}
	return Poly{v: p.v, c: c}
}

// Eval evaluates p at x exactly using Horner's scheme.
func (p Poly) Eval(x *big.Rat) *big.Rat {
	acc := new(big.Rat)
	for i := len(p.c) - 1; i >= 0; i-- {
		acc.Mul(acc, x)
		acc.Add(acc, p.c[i])
	}
	return acc
}

// EvalFloat evaluates p at x in float64 using Horner's scheme.
func (p Poly) EvalFloat(x float64) float64 {
	fs := p.Floats()
	acc := 0.0
	for i := len(fs) - 1; i >= 0; i-- {
		acc = acc*x + fs[i]
	}
	return acc
}

// EvalDerivatives returns f(x), f'(x), ..., f^(n)(x).
func (p Poly) EvalDerivatives(x *big.Rat, n int) []*big.Rat {
	out := make([]*big.Rat, 0, n+1)
	d := p
	for i := 0; i <= n; i++ {
		out = append(out, d.Eval(x))
		d = d.Derivative()
	}
	return out
}

// EvalDerivativesFloat is EvalDerivatives in float64.
func (p Poly) EvalDerivativesFloat(x float64, n int) []float64 {
	out := make([]float64, 0, n+1)
	d := p
	for i := 0; i <= n; i++ {
		out = append(out, d.EvalFloat(x))
		d = d.Derivative()
	}
	return out
}

// Shift returns f(x + t) re-expanded in x.
func Shift(f Poly, t *big.Rat) Poly {
	if t.Sign() == 0 {
		return New(f.v, f.c...)
	}
	n := f.Order()
	out := New(f.v, make([]*big.Rat, n+1)...)
	r := out.c
	r[0].Set(f.c[n])
	tmp := new(big.Rat)
	for i := n; i > 0; i-- {
		for j := n - (i - 1); j > 0; j-- {
			r[j].Add(tmp.Mul(r[j], t), r[j-1])
		}
		r[0].Add(tmp.Mul(r[0], t), f.c[i-1])
	}
	return out
}

// Scale returns f(s*x) re-expanded in x.
func Scale(f Poly, s *big.Rat) Poly {
	out := New(f.v, f.c...)
	factor := big.NewRat(1, 1)
	for i := 1; i < len(out.c); i++ {
		factor.Mul(factor, s)
		out.c[i].Mul(out.c[i], factor)
	}
	return out
}

// Reflect returns f(-x).
func Reflect(f Poly) Poly {
	out := New(f.v, f.c...)
	for i := 1; i < len(out.c); i += 2 {
		out.c[i].Neg(out.c[i])
	}
	return out
}

// Reverse returns x^d f(1/x) where d is the degree of f.
func Reverse(f Poly) Poly {
	d := max(f.Degree(), 0)
	c := make([]*big.Rat, d+1)
	for i := 0; i <= d; i++ {
		c[i] = f.c[d-i]
	}
	return New(f.v, c...)
}

// InvertTaylorShift returns (x+1)^d f(1/(x+1)). Roots of f in (0, 1) become
// roots of the result in (0, inf).
func InvertTaylorShift(f Poly) Poly {
	return Shift(Reverse(f), big.NewRat(1, 1))
}
