package poly

import (
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func r(n, d int64) *big.Rat { return big.NewRat(n, d) }

func TestDegreeAndOrder(t *testing.T) {
	tests := []struct {
		name   string
		p      Poly
		order  int
		degree int
	}{
		{"zero", Zero("x"), 0, -1},
		{"constant", FromInts("x", 5), 0, 0},
		{"trailing zeros", FromInts("x", 1, 2, 0, 0), 3, 1},
		{"cubic", FromInts("x", -6, 11, -6, 1), 3, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.order, tt.p.Order())
			assert.Equal(t, tt.degree, tt.p.Degree())
		})
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		p    Poly
		want string
	}{
		{Zero("x"), "0"},
		{FromInts("x", -1, 0, 1), "x^2 - 1"},
		{FromInts("x", 0, -1), "-x"},
		{FromInts("y", 3, -2, 1), "y^2 - 2*y + 3"},
		{New("x", r(1, 2), nil, r(-3, 4)), "-3/4*x^2 + 1/2"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.p.String())
		})
	}
}

func TestArithmetic(t *testing.T) {
	a := FromInts("x", 1, 1)  // x + 1
	b := FromInts("x", -1, 1) // x - 1

	sum, err := Add(a, b)
	require.NoError(t, err)
	assert.True(t, sum.Equal(FromInts("x", 0, 2)))

	diff, err := Sub(a, b)
	require.NoError(t, err)
	assert.True(t, diff.Equal(FromInts("x", 2)))

	prod, err := Mul(a, b)
	require.NoError(t, err)
	assert.True(t, prod.Equal(FromInts("x", -1, 0, 1)))

	assert.True(t, a.Pow(3).Equal(FromInts("x", 1, 3, 3, 1)))
	assert.True(t, a.Pow(0).Equal(FromInts("x", 1)))
}

func TestMismatchedVariable(t *testing.T) {
	_, err := Add(X("x"), X("y"))
	assert.ErrorIs(t, err, ErrMismatchedVariable)

	_, err = Mul(X("x"), X("y"))
	assert.ErrorIs(t, err, ErrMismatchedVariable)

	// untagged constants combine with anything
	sum, err := Add(X("x"), FromInts("", 2))
	require.NoError(t, err)
	assert.Equal(t, "x", sum.Var())
}

func TestDivide(t *testing.T) {
	q, err := Divide(FromInts("x", 2, 4), FromInts("x", 2))
	require.NoError(t, err)
	assert.True(t, q.Equal(FromInts("x", 1, 2)))

	_, err = Divide(X("x"), Zero("x"))
	assert.ErrorIs(t, err, ErrDivisionByZero)

	_, err = Divide(X("x"), X("x"))
	assert.ErrorIs(t, err, ErrNonConstantDivisor)
}

func TestDivMod(t *testing.T) {
	f := FromInts("x", -6, 11, -6, 1) // (x-1)(x-2)(x-3)
	g := FromInts("x", -1, 1)

	q, rem, err := DivMod(f, g)
	require.NoError(t, err)
	assert.True(t, q.Equal(FromInts("x", 6, -5, 1)))
	assert.True(t, rem.IsZero())

	q, rem, err = DivMod(FromInts("x", 1, 0, 1), g)
	require.NoError(t, err)
	assert.True(t, q.Equal(FromInts("x", 1, 1)))
	assert.True(t, rem.Equal(FromInts("x", 2)))

	_, _, err = DivMod(f, Zero("x"))
	assert.ErrorIs(t, err, ErrDivisionByZero)
}

func TestGCD(t *testing.T) {
	f := FromInts("x", -2, 1, 1) // (x-1)(x+2)
	g := FromInts("x", -3, 2, 1) // (x-1)(x+3)
	d, err := GCD(f, g)
	require.NoError(t, err)
	assert.True(t, d.Equal(FromInts("x", -1, 1)))

	d, err = GCD(FromInts("x", 0, 2), Zero("x"))
	require.NoError(t, err)
	assert.True(t, d.Equal(X("x")))

	d, err = GCD(Zero("x"), Zero("x"))
	require.NoError(t, err)
	assert.True(t, d.Equal(FromInts("x", 1)))
}

func TestSquarefree(t *testing.T) {
	f := FromInts("x", 1, -2, 1) // (x-1)^2
	sf, err := Squarefree(f)
	require.NoError(t, err)
	assert.True(t, sf.Monic().Equal(FromInts("x", -1, 1)))

	g := FromInts("x", -1, 0, 1)
	sf, err = Squarefree(g)
	require.NoError(t, err)
	assert.True(t, sf.Equal(g))
}

func TestShiftRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		f    Poly
		t    *big.Rat
	}{
		{"cubic by 3", FromInts("x", -6, 11, -6, 1), r(3, 1)},
		{"quartic by -1/2", FromInts("x", 2, 0, -3, 1, 7), r(-1, 2)},
		{"constant", FromInts("x", 4), r(5, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shifted := Shift(tt.f, tt.t)
			back := Shift(shifted, new(big.Rat).Neg(tt.t))
			assert.True(t, back.Equal(tt.f), "got %s", back)

			for _, x := range []*big.Rat{r(0, 1), r(1, 3), r(-2, 1)} {
				want := tt.f.Eval(new(big.Rat).Add(x, tt.t))
				assert.Equal(t, 0, shifted.Eval(x).Cmp(want))
			}
		})
	}
}

func TestShiftExpands(t *testing.T) {
	// (x+1)^2
	got := Shift(FromInts("x", 0, 0, 1), r(1, 1))
	assert.True(t, got.Equal(FromInts("x", 1, 2, 1)))
}

func TestScaleReflectReverse(t *testing.T) {
	f := FromInts("x", 1, 2, 3)
	assert.True(t, Scale(f, r(2, 1)).Equal(FromInts("x", 1, 4, 12)))
	assert.True(t, Reflect(f).Equal(FromInts("x", 1, -2, 3)))
	assert.True(t, Reverse(f).Equal(FromInts("x", 3, 2, 1)))
}

func TestInvertTaylorShift(t *testing.T) {
	// root at 1/3 maps to 1/x - 1 = 2
	f := FromInts("x", -1, 3)
	g := InvertTaylorShift(f)
	assert.Equal(t, 0, g.Eval(r(2, 1)).Sign())
}

func TestCalculus(t *testing.T) {
	f := FromInts("x", 1, 2, 3)
	assert.True(t, f.Derivative().Equal(FromInts("x", 2, 6)))
	assert.True(t, f.Integral().Equal(New("x", r(0, 1), r(1, 1), r(1, 1), r(1, 1))))
	assert.True(t, Zero("x").Derivative().IsZero())

	ds := f.EvalDerivatives(r(1, 1), 3)
	require.Len(t, ds, 4)
	assert.Equal(t, "6", ds[0].RatString())
	assert.Equal(t, "8", ds[1].RatString())
	assert.Equal(t, "6", ds[2].RatString())
	assert.Equal(t, "0", ds[3].RatString())
}

func TestEval(t *testing.T) {
	f := FromInts("x", -2, 0, 1)
	assert.Equal(t, "-7/4", f.Eval(r(1, 2)).RatString())
	assert.InDelta(t, -1.75, f.EvalFloat(0.5), 1e-15)
}

func TestFromFloats(t *testing.T) {
	p, err := FromFloats("x", 0.5, -1)
	require.NoError(t, err)
	assert.True(t, p.Equal(New("x", r(1, 2), r(-1, 1))))

	_, err = FromFloats("x", math.NaN())
	assert.ErrorIs(t, err, ErrNonFinite)
}

func TestBounds(t *testing.T) {
	f := FromInts("x", -6, 11, -6, 1)
	assert.Equal(t, 3, DescartesSignChanges(f))
	assert.Equal(t, 0, DescartesSignChanges(FromInts("x", 1, 0, 1)))

	cb := CauchyBound(f)
	assert.Equal(t, "12", cb.RatString())

	ub := LMQUpperBound(f)
	assert.GreaterOrEqual(t, ub, 3.0)
	lb := LMQLowerBound(f)
	assert.Greater(t, lb, 0.0)
	assert.LessOrEqual(t, lb, 1.0)

	assert.Equal(t, 0.0, LMQUpperBound(FromInts("x", 1, 1)))
	assert.True(t, math.IsInf(LMQLowerBound(FromInts("x", 1, 1)), 1))
}
