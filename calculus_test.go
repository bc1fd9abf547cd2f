package symroot_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/symroot"
)

func parse(t *testing.T, src string) symroot.Expr {
	t.Helper()
	e, err := symroot.Parse(src)
	require.NoError(t, err, src)
	return e
}

func TestDerivative(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"sin(x)", "cos(x)"},
		{"cos(x)", "-sin(x)"},
		{"x^3", "3*x^2"},
		{"exp(x)", "exp(x)"},
		{"ln(x)", "1/x"},
		{"x*sin(x)", "sin(x) + x*cos(x)"},
		{"abs(x)", "±1"},
		{"pm(x^2)", "±(2*x)"},
		{"7", "0"},
		{"y", "0"},
		{"-x", "-1"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			got := symroot.Simplify(symroot.Derivative(parse(t, tt.src), "x"))
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestDerivativeMatchesFiniteDifference(t *testing.T) {
	srcs := []string{
		"x^2*sin(x)",
		"exp(2*x)/(x^2 + 1)",
		"ln(x^2 + 1)*cos(x)",
		"x^x",
		"2^x - x^(1/2)",
		"(x^3 - 2*x)^5",
	}
	const h = 1e-6
	for _, src := range srcs {
		e := parse(t, src)
		d := symroot.Simplify(symroot.Derivative(e, "x"))
		for _, x := range []float64{0.4, 1.3, 2.2} {
			hi, err := symroot.Eval(e, map[string]float64{"x": x + h})
			require.NoError(t, err)
			lo, err := symroot.Eval(e, map[string]float64{"x": x - h})
			require.NoError(t, err)
			want := (hi - lo) / (2 * h)
			got, err := symroot.Eval(d, map[string]float64{"x": x})
			require.NoError(t, err)
			assert.InDelta(t, want, got, 1e-4*math.Max(1, math.Abs(want)), "d/dx %s at %g", src, x)
		}
	}
}

func TestDerivativeN(t *testing.T) {
	assert.Equal(t, "6", symroot.DerivativeN(parse(t, "x^3 + y"), "x", 3).String())
	assert.Equal(t, "sin(x)", symroot.DerivativeN(parse(t, "sin(x)"), "x", 4).String())
	assert.Equal(t, "x^2", symroot.DerivativeN(parse(t, "x^2"), "x", 0).String())
}

func TestDerivativeOfPolyNode(t *testing.T) {
	p := symroot.Simplify(parse(t, "x^3 - 2*x"))
	require.Equal(t, symroot.KindPoly, p.Kind())
	assert.Equal(t, "3*x^2 - 2", symroot.Derivative(p, "x").String())
	assert.Equal(t, "0", symroot.Derivative(p, "y").String())
}

func TestSubstitute(t *testing.T) {
	e := parse(t, "x^2 + sin(y)")
	assert.Equal(t, "3^2 + sin(y)", symroot.Substitute(e, "x", symroot.N(3)).String())
	assert.Equal(t, "sin(y) + 9", symroot.Simplify(symroot.Substitute(e, "x", symroot.N(3))).String())

	// untouched subtrees are shared
	assert.Same(t, e, symroot.Substitute(e, "z", symroot.N(1)))

	p := symroot.Simplify(parse(t, "x^2 - 1"))
	assert.Equal(t, "8", symroot.Substitute(p, "x", symroot.N(3)).String())
	assert.Equal(t, "-0.75", symroot.Substitute(p, "x", symroot.NFloat(0.5)).String())
	assert.Equal(t, "t^2 - 1", symroot.Substitute(p, "x", symroot.S("t")).String())

	composed := symroot.Simplify(symroot.Substitute(p, "x", parse(t, "sin(t)")))
	v, err := symroot.Eval(composed, map[string]float64{"t": 0.3})
	require.NoError(t, err)
	assert.InDelta(t, math.Pow(math.Sin(0.3), 2)-1, v, 1e-12)
}

func TestIntegrate(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"3*x^2", "x^3"},
		{"x", "1/2*x^2"},
		{"cos(x)", "sin(x)"},
		{"1/x", "ln(abs(x))"},
		{"x^(-1)", "ln(abs(x))"},
		{"y", "y*x"},
		{"0", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			got, err := symroot.Integrate(parse(t, tt.src), "x")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestIntegrateDifferentiatesBack(t *testing.T) {
	srcs := []string{
		"x^3 - 4*x + 2",
		"sin(3*x) + cos(x/2)",
		"exp(2*x - 1)*5",
		"2^x",
		"x^(5/2) - 3/x",
		"-(x^2)/7 + y*x",
	}
	env := map[string]float64{"x": 1.7, "y": -0.6}
	for _, src := range srcs {
		f := parse(t, src)
		anti, err := symroot.Integrate(f, "x")
		require.NoError(t, err, src)
		back := symroot.Simplify(symroot.Derivative(anti, "x"))

		want, err := symroot.Eval(f, env)
		require.NoError(t, err)
		got, err := symroot.Eval(back, env)
		require.NoError(t, err)
		assert.InDelta(t, want, got, 1e-9*math.Max(1, math.Abs(want)), "%s -> %s", src, anti)
	}
}

func TestIntegrateUnsupported(t *testing.T) {
	for _, src := range []string{"sin(x^2)", "x*sin(x)", "exp(x)/x", "ln(x)"} {
		_, err := symroot.Integrate(parse(t, src), "x")
		assert.ErrorIs(t, err, symroot.ErrIntegrationUnsupported, src)
	}
}

func TestTaylorSeries(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		at    symroot.Expr
		order int
		want  string
	}{
		{"exp", "exp(x)", symroot.N(0), 3, "1/6*x^3 + 1/2*x^2 + x + 1"},
		{"sin", "sin(x)", symroot.N(0), 5, "1/120*x^5 - 1/6*x^3 + x"},
		{"polynomial is exact", "x^2", symroot.N(1), 2, "x^2"},
		{"order zero", "cos(x)", symroot.N(0), 0, "1"},
		{"negative order", "x + 5", symroot.N(0), -3, "5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := symroot.TaylorSeries(parse(t, tt.src), "x", tt.at, tt.order)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestMaclaurinApproximates(t *testing.T) {
	s := symroot.MaclaurinSeries(parse(t, "exp(x)*cos(x)"), "x", 8)
	got, err := symroot.Eval(s, map[string]float64{"x": 0.2})
	require.NoError(t, err)
	assert.InDelta(t, math.Exp(0.2)*math.Cos(0.2), got, 1e-8)
}
