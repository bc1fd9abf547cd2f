package roots

import (
	"math"
	"slices"
)

// Closed-form solvers. Coefficients are in ascending order and the returned
// roots are distinct, real and sorted. A double root is reported once.

var maxSqrt = math.Sqrt(math.MaxFloat64)

// SolveLinear solves c0 + c1*x = 0.
func SolveLinear(c0, c1 float64) []float64 {
	if c1 == 0 {
		return nil
	}
	return []float64{-c0 / c1}
}

// SolveQuadratic solves c0 + c1*x + c2*x^2 = 0 without the cancellation of
// the textbook formula: the larger root comes from -(b + sign(b)*sqrt(disc))/2
// and the other from the product of roots.
func SolveQuadratic(c0, c1, c2 float64) []float64 {
	if c2 == 0 {
		return SolveLinear(c0, c1)
	}
	c0, c1 = c0/c2, c1/c2

	if c0 == 0 {
		if c1 == 0 {
			return []float64{0}
		}
		return sorted(-c1, 0)
	}
	if math.Abs(c1) > maxSqrt {
		return sorted(-c1, -c0/c1)
	}

	disc := c1*c1 - 4*c0
	switch {
	case disc < 0:
		return nil
	case disc == 0:
		return []float64{-c1 * 0.5}
	}
	r1 := -(c1 + math.Copysign(math.Sqrt(disc), c1)) * 0.5
	return sorted(r1, c0/r1)
}

// SolveCubic solves c0 + c1*x + c2*x^2 + c3*x^3 = 0. Three real roots use the
// trigonometric form, a single real root uses Cardano's form and the
// remaining quadratic factor is solved after deflation. Roots are polished
// with Halley's method against the original cubic.
func SolveCubic(c0, c1, c2, c3 float64) []float64 {
	if c3 == 0 {
		return SolveQuadratic(c0, c1, c2)
	}
	orig := []float64{c0, c1, c2, c3}
	if c0 == 0 {
		return deflateAndSolve(orig, 0)
	}

	// monic form x^3 + a x^2 + b x + c
	a, b, c := c2/c3, c1/c3, c0/c3
	f := []float64{c, b, a, 1}

	if a == 0 && b == 0 {
		return []float64{math.Cbrt(-c)}
	}
	switch {
	case math.Abs(a) > maxSqrt:
		return deflateAndSolve(f, -a)
	case b > maxSqrt:
		return deflateAndSolve(f, -c/b)
	case b < -maxSqrt:
		return deflateAndSolve(f, -math.Sqrt(-b))
	case math.Abs(c) > maxSqrt:
		return deflateAndSolve(f, -math.Cbrt(c))
	}

	v := c + (2*a*a/9-b)*(a/3)
	if math.Abs(v) > maxSqrt {
		return deflateAndSolve(f, -a)
	}
	uo3 := b/3 - a*a/9
	u2o3 := uo3 + uo3
	if math.Abs(u2o3) > maxSqrt || u2o3*u2o3 > maxSqrt {
		switch {
		case a != 0:
			return deflateAndSolve(f, -b/a)
		case b > 0:
			return deflateAndSolve(f, -c/b)
		case b < 0:
			return deflateAndSolve(f, -math.Sqrt(-b))
		}
		return deflateAndSolve(f, 0)
	}

	uo3sq4 := u2o3 * u2o3
	j := uo3sq4*uo3 + v*v
	if j > 0 {
		// one real root; j can be wrong through cancellation, so the
		// deflated quadratic decides whether there are more
		w := math.Sqrt(j)
		var root float64
		if v < 0 {
			root = math.Cbrt(0.5*(w-v)) - uo3*math.Cbrt(2/(w-v)) - a/3
		} else {
			root = uo3*math.Cbrt(2/(w+v)) - math.Cbrt(0.5*(w+v)) - a/3
		}
		root = halley(f, root)
		return deflateAndSolve(f, root)
	}

	if uo3 >= 0 {
		// triple root
		return []float64{math.Cbrt(v) - a/3}
	}

	muo3 := -uo3
	s := math.Sqrt(muo3)
	if a > 0 {
		s = -s
	}
	scube := s * muo3
	if scube == 0 {
		return []float64{-a / 3}
	}
	t := math.Min(math.Max(-v/(scube+scube), -1), 1)
	k := math.Acos(t) / 3
	cosk := math.Cos(k)
	roots := []float64{(s+s)*cosk - a/3}
	sinsqk := 1 - cosk*cosk
	if sinsqk < 0 {
		return roots
	}
	rt3sink := math.Sqrt(3) * math.Sqrt(sinsqk)
	roots = append(roots,
		s*(-cosk+rt3sink)-a/3,
		s*(-cosk-rt3sink)-a/3,
	)
	for i := range roots {
		roots[i] = halley(f, roots[i])
	}
	return distinct(roots)
}

// deflateAndSolve divides out the root r, solves the remaining quadratic and
// polishes its roots against f.
func deflateAndSolve(f []float64, r float64) []float64 {
	q := deflate(f, r)
	rest := SolveQuadratic(q[0], q[1], q[2])
	for i := range rest {
		rest[i] = halley(f, rest[i])
	}
	return distinct(append(rest, r))
}

// deflate performs synthetic division of the cubic f by (x - r), dropping
// the remainder.
func deflate(f []float64, r float64) []float64 {
	n := len(f) - 1
	q := make([]float64, n)
	q[n-1] = f[n]
	for i := n - 1; i > 0; i-- {
		q[i-1] = f[i] + r*q[i]
	}
	return q
}

// evalDerivs2 returns f and its first two derivatives at x for ascending
// coefficients f.
func evalDerivs2(f []float64, x float64) (v, d1, d2 float64) {
	for i := len(f) - 1; i >= 0; i-- {
		d2 = d2*x + 2*d1
		d1 = d1*x + v
		v = v*x + f[i]
	}
	return v, d1, d2
}

// halley polishes x as a root of f. A failed polish returns x unchanged.
func halley(f []float64, x float64) float64 {
	const maxIter = 50
	cur := x
	for i := 0; i < maxIter; i++ {
		v, d1, d2 := evalDerivs2(f, cur)
		if v == 0 {
			return cur
		}
		den := 2*d1*d1 - v*d2
		if den == 0 || math.IsNaN(den) {
			break
		}
		step := 2 * v * d1 / den
		next := cur - step
		if math.IsNaN(next) || math.IsInf(next, 0) {
			break
		}
		if next == cur || math.Abs(step) <= 4*math.SmallestNonzeroFloat64+1e-16*math.Abs(next) {
			return next
		}
		cur = next
	}
	nv, _, _ := evalDerivs2(f, cur)
	ov, _, _ := evalDerivs2(f, x)
	if math.Abs(nv) < math.Abs(ov) {
		return cur
	}
	return x
}

func sorted(a, b float64) []float64 {
	if a > b {
		a, b = b, a
	}
	if a == b {
		return []float64{a}
	}
	return []float64{a, b}
}

func distinct(rs []float64) []float64 {
	slices.Sort(rs)
	return slices.Compact(rs)
}
