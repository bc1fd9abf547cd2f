// Package poly implements dense single-variable polynomials with exact
// rational coefficients.
//
// A Poly is immutable: every operation returns a new value and coefficients
// are never shared with callers. Coefficients are stored by ascending degree.
// Trailing zero coefficients are allowed; Degree reports the highest nonzero
// one and is what the algorithms use.
//
// The empty variable tag marks a constant that is compatible with any
// variable, so a bare number can be combined with a tagged polynomial.
package poly

import (
	"math"
	"math/big"
	"strconv"
	"strings"
)

// Poly is a polynomial in one variable.
type Poly struct {
	v string
	c []*big.Rat
}

// ============================================================
// Construction
// ============================================================

// New builds a polynomial from ascending coefficients. Nil entries are zero.
func New(v string, coeffs ...*big.Rat) Poly {
	c := make([]*big.Rat, max(len(coeffs), 1))
	for i := range c {
		c[i] = new(big.Rat)
		if i < len(coeffs) && coeffs[i] != nil {
			c[i].Set(coeffs[i])
		}
	}
	return Poly{v: v, c: c}
}

// FromInts builds a polynomial from ascending integer coefficients.
func FromInts(v string, coeffs ...int64) Poly {
	c := make([]*big.Rat, len(coeffs))
	for i, k := range coeffs {
		c[i] = new(big.Rat).SetInt64(k)
	}
	return New(v, c...)
}

// FromFloats builds a polynomial from ascending float coefficients. The
// conversion is exact.
func FromFloats(v string, coeffs ...float64) (Poly, error) {
	c := make([]*big.Rat, len(coeffs))
	for i, f := range coeffs {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return Poly{}, ErrNonFinite
		}
		c[i] = new(big.Rat).SetFloat64(f)
	}
	return New(v, c...), nil
}

// Zero returns the zero polynomial.
func Zero(v string) Poly { return New(v) }

// Constant returns the degree-0 polynomial k.
func Constant(v string, k *big.Rat) Poly { return New(v, k) }

// X returns the identity polynomial x.
func X(v string) Poly { return FromInts(v, 0, 1) }

// Monomial returns k*x^n.
func Monomial(v string, k *big.Rat, n int) Poly {
	if n < 0 {
		n = 0
	}
	c := make([]*big.Rat, n+1)
	c[n] = k
	return New(v, c...)
}

// ============================================================
// Accessors
// ============================================================

func (p Poly) Var() string { return p.v }

// Order is the number of stored coefficients minus one.
func (p Poly) Order() int { return len(p.c) - 1 }

// Degree is the index of the highest nonzero coefficient, or -1 for the zero
// polynomial.
func (p Poly) Degree() int {
	for i := len(p.c) - 1; i >= 0; i-- {
		if p.c[i].Sign() != 0 {
			return i
		}
	}
	return -1
}

// Coeff returns a copy of the coefficient of x^i (zero when out of range).
func (p Poly) Coeff(i int) *big.Rat {
	if i < 0 || i >= len(p.c) {
		return new(big.Rat)
	}
	return new(big.Rat).Set(p.c[i])
}

// Coeffs returns copies of all stored coefficients.
func (p Poly) Coeffs() []*big.Rat {
	out := make([]*big.Rat, len(p.c))
	for i, k := range p.c {
		out[i] = new(big.Rat).Set(k)
	}
	return out
}

// Floats returns the stored coefficients rounded to float64.
func (p Poly) Floats() []float64 {
	out := make([]float64, len(p.c))
	for i, k := range p.c {
		out[i], _ = k.Float64()
	}
	return out
}

// Lead returns the coefficient at Degree (zero for the zero polynomial).
func (p Poly) Lead() *big.Rat { return p.Coeff(p.Degree()) }

func (p Poly) IsZero() bool     { return p.Degree() < 0 }
func (p Poly) IsConstant() bool { return p.Degree() <= 0 }

// IsX reports whether p is exactly the identity polynomial.
func (p Poly) IsX() bool {
	return p.Degree() == 1 && p.c[0].Sign() == 0 && p.c[1].Cmp(big.NewRat(1, 1)) == 0
}

// Trim drops trailing zero coefficients, keeping at least one.
func (p Poly) Trim() Poly {
	if len(p.c) == 0 {
		return Zero(p.v)
	}
	d := max(p.Degree(), 0)
	return New(p.v, p.c[:d+1]...)
}

// Rename returns p over a different variable.
func (p Poly) Rename(v string) Poly { return New(v, p.c...) }

// Equal compares variable and effective coefficients.
func (p Poly) Equal(q Poly) bool {
	if p.v != q.v {
		return false
	}
	d := p.Degree()
	if d != q.Degree() {
		return false
	}
	for i := 0; i <= d; i++ {
		if p.c[i].Cmp(q.c[i]) != 0 {
			return false
		}
	}
	return true
}

// ============================================================
// Printing
// ============================================================

// String prints p in descending powers, e.g. "x^2 - 3*x + 1/2".
func (p Poly) String() string {
	v := p.v
	if v == "" {
		v = "x"
	}
	var b strings.Builder
	for i := p.Degree(); i >= 0; i-- {
		k := p.c[i]
		if k.Sign() == 0 {
			continue
		}
		abs := new(big.Rat).Abs(k)
		switch {
		case b.Len() == 0 && k.Sign() < 0:
			b.WriteString("-")
		case b.Len() > 0 && k.Sign() < 0:
			b.WriteString(" - ")
		case b.Len() > 0:
			b.WriteString(" + ")
		}
		unit := abs.Cmp(big.NewRat(1, 1)) == 0
		if !unit || i == 0 {
			b.WriteString(FormatRat(abs))
			if i > 0 {
				b.WriteString("*")
			}
		}
		switch {
		case i == 1:
			b.WriteString(v)
		case i > 1:
			b.WriteString(v + "^" + strconv.Itoa(i))
		}
	}
	if b.Len() == 0 {
		return "0"
	}
	return b.String()
}

// FormatRat prints integers and small fractions exactly and anything with a
// large denominator (typically a converted float) in shortest float form.
func FormatRat(r *big.Rat) string {
	if r.IsInt() {
		return r.Num().String()
	}
	if r.Denom().BitLen() <= 32 {
		return r.RatString()
	}
	f, _ := r.Float64()
	return strconv.FormatFloat(f, 'g', -1, 64)
}
