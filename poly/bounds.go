package poly

import (
	"math"
	"math/big"
)

// DescartesSignChanges counts sign changes between consecutive nonzero
// coefficients. It bounds the number of positive real roots, and has the same
// parity, so 0 and 1 are exact.
func DescartesSignChanges(f Poly) int {
	changes, last := 0, 0
	for _, k := range f.c {
		s := k.Sign()
		if s == 0 {
			continue
		}
		if last != 0 && s != last {
			changes++
		}
		last = s
	}
	return changes
}

// CauchyBound returns 1 + max|a_i/a_n|, a strict upper bound on the magnitude
// of every root. Constants yield zero.
func CauchyBound(f Poly) *big.Rat {
	d := f.Degree()
	if d <= 0 {
		return new(big.Rat)
	}
	lead := f.c[d]
	m := new(big.Rat)
	q := new(big.Rat)
	for i := 0; i < d; i++ {
		q.Quo(f.c[i], lead)
		q.Abs(q)
		if q.Cmp(m) > 0 {
			m.Set(q)
		}
	}
	return m.Add(m, big.NewRat(1, 1))
}

// LMQUpperBound is the local-max-quadratic upper bound on the positive real
// roots of f. Zero means f has no positive roots.
func LMQUpperBound(f Poly) float64 {
	n := f.Degree()
	if n <= 0 {
		return 0
	}
	used := make([]int, n+1)
	for i := range used {
		used[i] = 1
	}
	leadSign := f.c[n].Sign()
	ub := 0.0
	q := new(big.Rat)
	for m := n - 1; m >= 0; m-- {
		sm := f.c[m].Sign()
		if sm == 0 || sm == leadSign {
			continue
		}
		best := math.Inf(1)
		for k := n; k > m; k-- {
			sk := f.c[k].Sign()
			if sk == 0 || sk == sm {
				continue
			}
			q.Quo(f.c[m], f.c[k])
			ratio, _ := q.Float64()
			temp := math.Pow(-math.Ldexp(ratio, used[k]), 1/float64(k-m))
			used[k]++
			best = math.Min(best, temp)
		}
		ub = math.Max(ub, best)
	}
	return ub
}

// LMQLowerBound is a lower bound on the positive real roots of f, obtained
// from the upper bound of the reversed polynomial. +Inf means no positive roots.
func LMQLowerBound(f Poly) float64 {
	ub := LMQUpperBound(Reverse(f))
	if ub == 0 {
		return math.Inf(1)
	}
	return 1 / ub
}
