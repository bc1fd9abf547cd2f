package roots

import (
	"errors"
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/symroot/poly"
)

func r(n, d int64) *big.Rat { return big.NewRat(n, d) }

// fromRoots builds prod (x - root) over integer roots.
func fromRoots(rs ...int64) poly.Poly {
	p := poly.FromInts("x", 1)
	for _, root := range rs {
		p, _ = poly.Mul(p, poly.FromInts("x", -root, 1))
	}
	return p
}

func TestChainRootCount(t *testing.T) {
	chain, err := NewChain(poly.FromInts("x", -1, 0, 1))
	require.NoError(t, err)

	assert.Equal(t, 2, chain.RootCount(r(-2, 1), r(2, 1)))
	assert.Equal(t, 1, chain.RootCount(r(0, 1), r(2, 1)))
	assert.Equal(t, 1, chain.RootCount(r(2, 1), r(0, 1)), "bounds are swapped")
	assert.Equal(t, 0, chain.RootCount(r(-1, 2), r(1, 2)))
	assert.Equal(t, 2, chain.TotalRoots())
}

func TestChainZeroPolynomial(t *testing.T) {
	_, err := NewChain(poly.Zero("x"))
	assert.ErrorIs(t, err, ErrZeroPolynomial)
}

func TestSturmCountMatchesScan(t *testing.T) {
	tests := []struct {
		name  string
		roots []int64
	}{
		{"linear", []int64{3}},
		{"cubic", []int64{1, 2, 3}},
		{"spread quintic", []int64{-7, -2, 0, 4, 9}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chain, err := NewChain(fromRoots(tt.roots...))
			require.NoError(t, err)
			for a := int64(-10); a <= 10; a += 3 {
				for b := a + 1; b <= 11; b += 2 {
					want := 0
					for _, root := range tt.roots {
						if root > a && root <= b {
							want++
						}
					}
					assert.Equal(t, want, chain.RootCount(r(a, 1), r(b, 1)), "(%d, %d]", a, b)
				}
			}
		})
	}
}

func TestIsolate(t *testing.T) {
	f := fromRoots(1, 2, 3, 4, 5)
	ivs, err := Isolate(f, DefaultConfig())
	require.NoError(t, err)
	require.Len(t, ivs, 5)

	for i, iv := range ivs {
		root := r(int64(i+1), 1)
		assert.Equal(t, 1, iv.Count)
		if iv.Degenerate() {
			assert.Equal(t, 0, iv.Lo.Cmp(root))
			continue
		}
		assert.True(t, iv.Lo.Cmp(root) < 0 && root.Cmp(iv.Hi) < 0, "interval %d = (%s, %s)", i, iv.Lo, iv.Hi)
	}
}

func TestIsolateExactMidpoint(t *testing.T) {
	// x^3 - x: Cauchy bound 2, first midpoint 0 is a root
	ivs, err := Isolate(poly.FromInts("x", 0, -1, 0, 1), DefaultConfig())
	require.NoError(t, err)
	require.Len(t, ivs, 3)
	assert.True(t, ivs[1].Degenerate())
	assert.Equal(t, 0, ivs[1].Lo.Sign())
}

func TestIsolateRepeatedRoots(t *testing.T) {
	// (x-1)^2 (x+2)
	ivs, err := Isolate(fromRoots(1, 1, -2), DefaultConfig())
	require.NoError(t, err)
	assert.Len(t, ivs, 2)
}

func TestIsolateErrors(t *testing.T) {
	_, err := Isolate(poly.Zero("x"), DefaultConfig())
	assert.ErrorIs(t, err, ErrZeroPolynomial)

	ivs, err := Isolate(poly.FromInts("x", 4), DefaultConfig())
	require.NoError(t, err)
	assert.Empty(t, ivs)

	_, err = Isolate(fromRoots(1, 2, 3, 4, 5), Config{MaxBisections: 1})
	assert.ErrorIs(t, err, ErrBisectionBudget)
	assert.ErrorContains(t, err, "1 intervals pending in (0, 275)")
}

func TestMobius(t *testing.T) {
	m := Identity().Shift(r(2, 1)).Scale(r(3, 1)).InvertTaylorShift()
	// x -> 2 + 3/(x+1)
	got, ok := m.Eval(r(0, 1))
	require.True(t, ok)
	assert.Equal(t, "5", got.RatString())

	inf, ok := m.AtInf()
	require.True(t, ok)
	assert.Equal(t, "2", inf.RatString())

	got, _ = m.Eval(r(2, 1))
	assert.Equal(t, "3", got.RatString())

	lo, hi := m.Bounds()
	assert.Equal(t, "2", lo.RatString())
	assert.Equal(t, "5", hi.RatString())

	_, ok = Identity().AtInf()
	assert.False(t, ok)
}

func TestRefineCubic(t *testing.T) {
	f := fromRoots(1, 2, 3)
	ivs, err := Isolate(f, DefaultConfig())
	require.NoError(t, err)
	require.Len(t, ivs, 3)

	cfg := Config{Tolerance: 1e-6}
	for i, iv := range ivs {
		root, err := Refine(f, iv, cfg)
		require.NoError(t, err)
		assert.InDelta(t, float64(i+1), root.Value, 1e-6)
		assert.True(t, root.Exact || root.Tolerance <= 1e-6)
	}
}

func TestRefineIrrational(t *testing.T) {
	f := poly.FromInts("x", -2, 0, 1)
	root, err := Refine(f, Interval{Lo: r(1, 1), Hi: r(2, 1), Count: 1}, Config{Tolerance: 1e-12})
	require.NoError(t, err)
	assert.False(t, root.Exact)
	assert.InDelta(t, math.Sqrt2, root.Value, 1e-12)
	assert.True(t, root.Lo.Cmp(root.Hi) < 0)
}

func TestRefineExcludesEndpointRoots(t *testing.T) {
	// roots at 1 and 2; 1 is an endpoint of (1, 3) and must not be reported
	f := fromRoots(1, 2)
	root, err := Refine(f, Interval{Lo: r(1, 1), Hi: r(3, 1), Count: 1}, DefaultConfig())
	require.NoError(t, err)
	assert.InDelta(t, 2.0, root.Value, 1e-9)
}

func TestRefineNonConvergence(t *testing.T) {
	f := poly.FromInts("x", -2, 0, 1)
	_, err := Refine(f, Interval{Lo: r(1, 1), Hi: r(2, 1), Count: 1}, Config{Tolerance: 1e-15, MaxIterations: 1})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNonConvergence)

	var rerr *RefinementError
	require.True(t, errors.As(err, &rerr))
	assert.Equal(t, 1, rerr.Iterations)
	assert.True(t, rerr.Lo.Cmp(rerr.Hi) < 0)
}

func TestSolveLinearQuadratic(t *testing.T) {
	assert.Equal(t, []float64{-2}, SolveLinear(4, 2))
	assert.Nil(t, SolveLinear(1, 0))

	assert.Equal(t, []float64{-1, 1}, SolveQuadratic(-1, 0, 1))
	assert.Equal(t, []float64{-3, 0}, SolveQuadratic(0, 3, 1))
	assert.Nil(t, SolveQuadratic(1, 0, 1))
	assert.Equal(t, []float64{2}, SolveQuadratic(4, -4, 1))

	// cancellation-prone: roots near 1e8 and 1e-8
	got := SolveQuadratic(1, -1e8, 1)
	require.Len(t, got, 2)
	assert.InEpsilon(t, 1e-8, got[0], 1e-12)
	assert.InEpsilon(t, 1e8, got[1], 1e-12)
}

func TestSolveCubic(t *testing.T) {
	tests := []struct {
		name string
		c    [4]float64
		want []float64
	}{
		{"three real", [4]float64{-6, 11, -6, 1}, []float64{1, 2, 3}},
		{"one real", [4]float64{-2, 1, 0, 1}, []float64{1}},
		{"pure cube", [4]float64{-8, 0, 0, 1}, []float64{2}},
		{"zero constant", [4]float64{0, -1, 0, 1}, []float64{-1, 0, 1}},
		{"scaled", [4]float64{12, -22, 12, -2}, []float64{1, 2, 3}},
		{"degenerate to quadratic", [4]float64{-4, 0, 1, 0}, []float64{-2, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SolveCubic(tt.c[0], tt.c[1], tt.c[2], tt.c[3])
			require.Len(t, got, len(tt.want))
			for i := range got {
				assert.InDelta(t, tt.want[i], got[i], 1e-9)
			}
		})
	}
}

func TestSolve(t *testing.T) {
	tests := []struct {
		name string
		f    poly.Poly
		want []float64
	}{
		{"difference of squares", poly.FromInts("x", -1, 0, 1), []float64{-1, 1}},
		{"cubic", fromRoots(1, 2, 3), []float64{1, 2, 3}},
		{"repeated", fromRoots(2, 2, 2, -1), []float64{-1, 2}},
		{"quintic", fromRoots(-7, -2, 0, 4, 9), []float64{-7, -2, 0, 4, 9}},
		{"no real roots", poly.FromInts("x", 1, 0, 0, 0, 1), nil},
		{"rational linear", poly.FromInts("x", 1, 3), []float64{-1.0 / 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Solve(tt.f, DefaultConfig())
			require.NoError(t, err)
			require.Len(t, got, len(tt.want))
			for i, root := range got {
				assert.InDelta(t, tt.want[i], root.Value, 1e-9)
			}
		})
	}
}

func TestSolveQuarticIrrational(t *testing.T) {
	// (x^2 - 2)(x^2 - 3)
	f, err := poly.Mul(poly.FromInts("x", -2, 0, 1), poly.FromInts("x", -3, 0, 1))
	require.NoError(t, err)
	got, err := Solve(f, Config{Tolerance: 1e-12})
	require.NoError(t, err)
	want := []float64{-math.Sqrt(3), -math.Sqrt2, math.Sqrt2, math.Sqrt(3)}
	require.Len(t, got, 4)
	for i := range want {
		assert.InDelta(t, want[i], got[i].Value, 1e-11)
	}
}

func TestSolveCloseRoots(t *testing.T) {
	near := func(num, den int64) poly.Poly {
		return poly.New("x", new(big.Rat).Neg(r(num, den)), r(1, 1))
	}
	tests := []struct {
		name    string
		factors []poly.Poly
		want    []*big.Rat
	}{
		{
			"quadratic 1e-10 apart",
			[]poly.Poly{near(1, 1), near(10000000001, 10000000000)},
			[]*big.Rat{r(1, 1), r(10000000001, 10000000000)},
		},
		{
			"cubic 1e-9 apart",
			[]poly.Poly{near(1, 1), near(1000000001, 1000000000), near(2, 1)},
			[]*big.Rat{r(1, 1), r(1000000001, 1000000000), r(2, 1)},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := poly.FromInts("x", 1)
			for _, g := range tt.factors {
				var err error
				f, err = poly.Mul(f, g)
				require.NoError(t, err)
			}
			got, err := Solve(f, Config{Tolerance: 1e-12})
			require.NoError(t, err)
			require.Len(t, got, len(tt.want))
			for i, root := range got {
				assert.LessOrEqual(t, root.Lo.Cmp(tt.want[i]), 0)
				assert.GreaterOrEqual(t, root.Hi.Cmp(tt.want[i]), 0)
				if i > 0 {
					assert.Equal(t, -1, got[i-1].Hi.Cmp(root.Lo))
				}
			}
		})
	}
}

func TestSolveClosedFormBracket(t *testing.T) {
	got, err := Solve(poly.FromInts("x", -2, 0, 1), DefaultConfig())
	require.NoError(t, err)
	require.Len(t, got, 2)
	for _, root := range got {
		assert.False(t, root.Exact)
		assert.Equal(t, -1, root.Lo.Cmp(root.Hi))
		assert.Greater(t, root.Tolerance, 0.0)
		assert.LessOrEqual(t, root.Tolerance, DefaultTolerance)
	}
	// the positive root's bracket straddles sqrt(2)
	lo2 := new(big.Rat).Mul(got[1].Lo, got[1].Lo)
	hi2 := new(big.Rat).Mul(got[1].Hi, got[1].Hi)
	assert.Equal(t, -1, lo2.Cmp(r(2, 1)))
	assert.Equal(t, 1, hi2.Cmp(r(2, 1)))
}

func TestSolveZero(t *testing.T) {
	_, err := Solve(poly.Zero("x"), DefaultConfig())
	assert.ErrorIs(t, err, ErrZeroPolynomial)
}

func TestRootCount(t *testing.T) {
	n, err := RootCount(fromRoots(1, 1, 3), r(0, 1), r(4, 1))
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}
