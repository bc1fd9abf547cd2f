package poly

import (
	"math/big"

	"github.com/njchilds90/symroot/internal/fault"
)

func unify(a, b Poly) (string, error) {
	switch {
	case a.v == b.v:
		return a.v, nil
	case a.v == "" && a.IsConstant():
		return b.v, nil
	case b.v == "" && b.IsConstant():
		return a.v, nil
	}
	return "", mismatch(a, b)
}

// Add returns a + b. The result keeps max(a.Order(), b.Order()) coefficients.
func Add(a, b Poly) (Poly, error) {
	v, err := unify(a, b)
	if err != nil {
		return Poly{}, err
	}
	c := make([]*big.Rat, max(len(a.c), len(b.c)))
	for i := range c {
		c[i] = new(big.Rat).Add(a.Coeff(i), b.Coeff(i))
	}
	return Poly{v: v, c: c}, nil
}

// Sub returns a - b.
func Sub(a, b Poly) (Poly, error) {
	return Add(a, b.Neg())
}

// Mul returns the convolution a * b.
func Mul(a, b Poly) (Poly, error) {
	v, err := unify(a, b)
	if err != nil {
		return Poly{}, err
	}
	c := make([]*big.Rat, len(a.c)+len(b.c)-1)
	for i := range c {
		c[i] = new(big.Rat)
	}
	t := new(big.Rat)
	for i, x := range a.c {
		if x.Sign() == 0 {
			continue
		}
		for j, y := range b.c {
			c[i+j].Add(c[i+j], t.Mul(x, y))
		}
	}
	return Poly{v: v, c: c}, nil
}

func (p Poly) Neg() Poly {
	return p.MulScalar(big.NewRat(-1, 1))
}

// MulScalar multiplies every coefficient by k.
func (p Poly) MulScalar(k *big.Rat) Poly {
	c := make([]*big.Rat, len(p.c))
	for i, x := range p.c {
		c[i] = new(big.Rat).Mul(x, k)
	}
	return Poly{v: p.v, c: c}
}

// Pow returns p^n for n >= 0.
func (p Poly) Pow(n int) Poly {
	out := Constant(p.v, big.NewRat(1, 1))
	base := p
	for ; n > 0; n >>= 1 {
		if n&1 == 1 {
			out, _ = Mul(out, base)
		}
		base, _ = Mul(base, base)
	}
	return out
}

// Divide divides f by a constant polynomial g.
func Divide(f, g Poly) (Poly, error) {
	if _, err := unify(f, g); err != nil {
		return Poly{}, err
	}
	switch d := g.Degree(); {
	case d < 0:
		return Poly{}, fault.Wrap(ErrDivisionByZero, "divide %s", f)
	case d > 0:
		return Poly{}, fault.Wrap(ErrNonConstantDivisor, "divide by degree %d", d)
	}
	return f.MulScalar(new(big.Rat).Inv(g.c[0])), nil
}

// DivMod performs Euclidean division: f = q*g + r with deg r < deg g.
func DivMod(f, g Poly) (q, r Poly, err error) {
	v, err := unify(f, g)
	if err != nil {
		return Poly{}, Poly{}, err
	}
	dg := g.Degree()
	if dg < 0 {
		return Poly{}, Poly{}, fault.Wrap(ErrDivisionByZero, "divmod %s", f)
	}
	df := f.Degree()
	if df < dg {
		return Zero(v), f.Trim().Rename(v), nil
	}
	rem := f.Trim().Coeffs()
	quo := make([]*big.Rat, df-dg+1)
	lead := g.c[dg]
	t := new(big.Rat)
	for i := df - dg; i >= 0; i-- {
		k := new(big.Rat).Quo(rem[i+dg], lead)
		quo[i] = k
		if k.Sign() == 0 {
			continue
		}
		for j := 0; j <= dg; j++ {
			rem[i+j].Sub(rem[i+j], t.Mul(k, g.c[j]))
		}
	}
	r = New(v, rem[:max(dg, 1)]...)
	return New(v, quo...), r, nil
}

// Monic scales p so that its leading coefficient is one. The zero polynomial
// is returned unchanged.
func (p Poly) Monic() Poly {
	if p.IsZero() {
		return p.Trim()
	}
	return p.Trim().MulScalar(new(big.Rat).Inv(p.Lead()))
}

// GCD returns the monic greatest common divisor of f and g. By convention
// GCD(f, 0) is monic f and GCD(0, 0) is the unit polynomial.
func GCD(f, g Poly) (Poly, error) {
	v, err := unify(f, g)
	if err != nil {
		return Poly{}, err
	}
	a, b := f.Trim().Rename(v), g.Trim().Rename(v)
	if a.IsZero() && b.IsZero() {
		return Constant(v, big.NewRat(1, 1)), nil
	}
	for !b.IsZero() {
		_, r, err := DivMod(a, b)
		if err != nil {
			return Poly{}, err
		}
		a, b = b, r
	}
	return a.Monic(), nil
}

// Squarefree returns f / gcd(f, f'), which has the same distinct roots as f
// but each with multiplicity one.
func Squarefree(f Poly) (Poly, error) {
	if f.Degree() <= 1 {
		return f.Trim(), nil
	}
	g, err := GCD(f, f.Derivative())
	if err != nil {
		return Poly{}, err
	}
	if g.Degree() == 0 {
		return f.Trim(), nil
	}
	q, _, err := DivMod(f, g)
	return q, err
}
