package roots

import (
	"cmp"
	"math"
	"math/big"
	"slices"

	"github.com/njchilds90/symroot/internal/fault"
	"github.com/njchilds90/symroot/internal/stackvec"
	"github.com/njchilds90/symroot/poly"
)

// Chain is the Sturm sequence p0 = f, p1 = f', p(i+1) = -rem(p(i-1), p(i)).
//
// Root counts are only meaningful when f is squarefree; NewChain does not
// check this. Isolate and Solve reduce their input first.
type Chain struct {
	seq []poly.Poly
}

// NewChain builds the Sturm sequence of f.
func NewChain(f poly.Poly) (*Chain, error) {
	f = f.Trim()
	if f.IsZero() {
		return nil, fault.Wrap(ErrZeroPolynomial, "sturm chain")
	}
	seq := []poly.Poly{f}
	if d := f.Derivative().Trim(); !d.IsZero() {
		seq = append(seq, d)
	}
	for seq[len(seq)-1].Degree() > 0 {
		n := len(seq)
		_, r, err := poly.DivMod(seq[n-2], seq[n-1])
		if err != nil {
			return nil, err
		}
		if r.IsZero() {
			break
		}
		seq = append(seq, r.Neg())
	}
	return &Chain{seq: seq}, nil
}

func (c *Chain) Len() int { return len(c.seq) }

// Polys returns the members of the chain, p0 first.
func (c *Chain) Polys() []poly.Poly { return slices.Clone(c.seq) }

// SignChanges counts sign changes of the chain evaluated at x. Zero values
// are skipped.
func (c *Chain) SignChanges(x *big.Rat) int {
	changes, last := 0, 0
	for _, p := range c.seq {
		s := p.Eval(x).Sign()
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

// signChangesAtInf counts sign changes at +inf (dir > 0) or -inf (dir < 0),
// where each member takes the sign of its leading term.
func (c *Chain) signChangesAtInf(dir int) int {
	changes, last := 0, 0
	for _, p := range c.seq {
		s := p.Lead().Sign()
		if dir < 0 && p.Degree()%2 == 1 {
			s = -s
		}
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

// RootCount returns the number of distinct real roots in (a, b]. The bounds
// are swapped if a > b.
func (c *Chain) RootCount(a, b *big.Rat) int {
	if a.Cmp(b) > 0 {
		a, b = b, a
	}
	return c.SignChanges(a) - c.SignChanges(b)
}

// RootCountFloat is RootCount for float bounds, which may be infinite.
// NaN bounds count nothing.
func (c *Chain) RootCountFloat(a, b float64) int {
	if math.IsNaN(a) || math.IsNaN(b) {
		return 0
	}
	if a > b {
		a, b = b, a
	}
	return c.signChangesAtFloat(a) - c.signChangesAtFloat(b)
}

func (c *Chain) signChangesAtFloat(x float64) int {
	switch {
	case math.IsInf(x, 1):
		return c.signChangesAtInf(1)
	case math.IsInf(x, -1):
		return c.signChangesAtInf(-1)
	}
	return c.SignChanges(new(big.Rat).SetFloat64(x))
}

// TotalRoots returns the number of distinct real roots.
func (c *Chain) TotalRoots() int {
	return c.signChangesAtInf(-1) - c.signChangesAtInf(1)
}

// Interval is an open interval (Lo, Hi) holding Count distinct roots. When
// Lo equals Hi the interval is degenerate and Lo is an exact root.
type Interval struct {
	Lo, Hi *big.Rat
	Count  int
}

// Degenerate reports whether the interval is a single exact point.
func (iv Interval) Degenerate() bool { return iv.Lo.Cmp(iv.Hi) == 0 }

// span is a pending bisection item. vlo and vhi are sign-change counts chosen
// so that vlo - vhi is the number of roots strictly inside (lo, hi).
type span struct {
	lo, hi   *big.Rat
	vlo, vhi int
}

// Isolate returns disjoint intervals, each holding exactly one distinct real
// root of f, sorted by position.
func Isolate(f poly.Poly, cfg Config) ([]Interval, error) {
	cfg = cfg.withDefaults()
	sf, err := poly.Squarefree(f)
	if err != nil {
		return nil, err
	}
	if sf.IsZero() {
		return nil, fault.Wrap(ErrZeroPolynomial, "isolate")
	}
	if sf.Degree() == 0 {
		return nil, nil
	}
	chain, err := NewChain(sf)
	if err != nil {
		return nil, err
	}

	bound := poly.CauchyBound(sf)
	lo, hi := new(big.Rat).Neg(bound), bound
	work := stackvec.New[span](sf.Degree() + 1)
	first := span{lo: lo, hi: hi, vlo: chain.SignChanges(lo), vhi: chain.SignChanges(hi)}
	if first.vlo-first.vhi > 0 {
		if err := work.Push(first); err != nil {
			return nil, err
		}
	}

	var out []Interval
	two := big.NewRat(2, 1)
	bisections := 0
	for !work.Empty() {
		s, _ := work.Pop()
		n := s.vlo - s.vhi
		if n == 1 {
			out = append(out, Interval{Lo: s.lo, Hi: s.hi, Count: 1})
			continue
		}
		if bisections >= cfg.MaxBisections {
			lo, hi := s.lo, s.hi
			work.Each(func(_ int, p span) {
				lo, hi = minRat(lo, p.lo), maxRat(hi, p.hi)
			})
			return nil, fault.Wrap(ErrBisectionBudget, "%d splits, %d intervals pending in (%s, %s)",
				bisections, work.Len()+1, lo.RatString(), hi.RatString())
		}
		bisections++

		mid := new(big.Rat).Add(s.lo, s.hi)
		mid.Quo(mid, two)
		vmid := chain.SignChanges(mid)
		left := span{lo: s.lo, hi: mid, vlo: s.vlo, vhi: vmid}
		if sf.Eval(mid).Sign() == 0 {
			out = append(out, Interval{Lo: mid, Hi: mid, Count: 1})
			left.vhi = vmid + 1
		}
		right := span{lo: mid, hi: s.hi, vlo: vmid, vhi: s.vhi}
		for _, child := range []span{right, left} {
			if child.vlo-child.vhi <= 0 {
				continue
			}
			if err := work.Push(child); err != nil {
				return nil, err
			}
		}
	}

	slices.SortFunc(out, func(a, b Interval) int {
		if c := a.Lo.Cmp(b.Lo); c != 0 {
			return c
		}
		return a.Hi.Cmp(b.Hi)
	})
	return out, nil
}

// RootCount is a convenience wrapper returning the number of distinct real
// roots of f in (a, b].
func RootCount(f poly.Poly, a, b *big.Rat) (int, error) {
	sf, err := poly.Squarefree(f)
	if err != nil {
		return 0, err
	}
	chain, err := NewChain(sf)
	if err != nil {
		return 0, err
	}
	return chain.RootCount(a, b), nil
}

func minRat(a, b *big.Rat) *big.Rat {
	if a.Cmp(b) <= 0 {
		return a
	}
	return b
}

func maxRat(a, b *big.Rat) *big.Rat {
	if a.Cmp(b) >= 0 {
		return a
	}
	return b
}

func sortRoots(rs []Root) {
	slices.SortFunc(rs, func(a, b Root) int { return cmp.Compare(a.Value, b.Value) })
}
