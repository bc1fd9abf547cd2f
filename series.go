package symroot

import "math/big"

// TaylorSeries expands f about v = point up to and including the term of
// the given order, in nested form:
//
//	T = f(a) + (v - a)*(f'(a) + (v - a)*(f''(a)/2 + ...))
//
// The result is simplified. A negative order is treated as zero.
func TaylorSeries(f Expr, v string, point Expr, order int) Expr {
	if order < 0 {
		order = 0
	}
	t := &taylor{id: v, x: varFromID(v), at: Simplify(point), order: order}
	return Simplify(t.term(Simplify(f), 0, big.NewInt(1)))
}

// MaclaurinSeries is TaylorSeries about zero.
func MaclaurinSeries(f Expr, v string, order int) Expr {
	return TaylorSeries(f, v, N(0), order)
}

type taylor struct {
	id    string
	x     *Var
	at    Expr
	order int
}

// term returns f_k(a)/k! + (v - a)*term(k+1), where fk is the k-th
// derivative and fact is k!.
func (t *taylor) term(fk Expr, k int, fact *big.Int) Expr {
	coeff := Simplify(DivOf(Substitute(fk, t.id, t.at), &Const{rat: new(big.Rat).SetInt(fact)}))
	if k == t.order {
		return coeff
	}
	next := Simplify(Derivative(fk, t.id))
	nextFact := new(big.Int).Mul(fact, big.NewInt(int64(k+1)))
	return AddOf(coeff, MulOf(SubOf(t.x, t.at), t.term(next, k+1, nextFact)))
}
