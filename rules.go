package symroot

import (
	"math"
	"math/big"

	"github.com/njchilds90/symroot/poly"
)

const (
	// maxExactExponent bounds exact rational powers; larger ones fall back
	// to float evaluation.
	maxExactExponent = 4096
	// maxExactBits bounds the size of an exactly folded power's numerator
	// and denominator.
	maxExactBits = 1 << 16
)

// ============================================================
// 1. Operator evaluation
// ============================================================

func evaluate(s *simplifier, e Expr) (Expr, bool) {
	switch n := e.(type) {
	case *Unary:
		c, ok := n.arg.(*Const)
		if !ok {
			return nil, false
		}
		return s.evalUnary(n.op, c)
	case *Binary:
		l, lok := n.left.(*Const)
		r, rok := n.right.(*Const)
		if !lok || !rok {
			return nil, false
		}
		if n.op == OpPow {
			return s.evalPow(l, r)
		}
		if l.IsExact() && r.IsExact() {
			return nil, false
		}
		return floatConst(n.op.Eval(l.Float64(), r.Float64()))
	}
	return nil, false
}

func floatConst(f float64) (Expr, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, false
	}
	return NFloat(f), true
}

func (s *simplifier) evalUnary(op UnaryOp, c *Const) (Expr, bool) {
	switch op {
	case OpNeg:
		if c.IsExact() {
			return &Const{rat: new(big.Rat).Neg(c.rat)}, true
		}
		return NFloat(-c.f), true
	case OpAbs:
		if c.IsExact() {
			return &Const{rat: new(big.Rat).Abs(c.rat)}, true
		}
		return NFloat(math.Abs(c.f)), true
	case OpArbSign:
		if c.IsZero() {
			return c, true
		}
		return nil, false
	}

	if c.IsExact() {
		switch {
		case op == OpSin && c.IsZero():
			return N(0), true
		case (op == OpCos || op == OpExp) && c.IsZero():
			return N(1), true
		case op == OpLn && c.IsOne():
			return N(0), true
		}
		if !s.cfg.FoldTranscendental {
			return nil, false
		}
	}
	return floatConst(op.Eval(c.Float64()))
}

func (s *simplifier) evalPow(base, exp *Const) (Expr, bool) {
	if base.IsExact() && exp.IsExact() {
		if k, ok := exp.Int(); ok && k >= -maxExactExponent && k <= maxExactExponent && powBits(base.rat, k) <= maxExactBits {
			if k < 0 && base.rat.Sign() == 0 {
				return nil, false
			}
			return &Const{rat: ratPow(base.rat, k)}, true
		}
		if !s.cfg.FoldTranscendental {
			return nil, false
		}
	}
	return floatConst(math.Pow(base.Float64(), exp.Float64()))
}

// powBits estimates the bit length of the larger of numerator and
// denominator of r^k.
func powBits(r *big.Rat, k int64) int64 {
	if k < 0 {
		k = -k
	}
	return int64(max(r.Num().BitLen(), r.Denom().BitLen())) * k
}

// ratPow returns r^k for integer k. r must be nonzero when k < 0.
func ratPow(r *big.Rat, k int64) *big.Rat {
	n := big.NewInt(k)
	n.Abs(n)
	num := new(big.Int).Exp(r.Num(), n, nil)
	den := new(big.Int).Exp(r.Denom(), n, nil)
	if k < 0 {
		num, den = den, num
	}
	return new(big.Rat).SetFrac(num, den)
}

// ============================================================
// 2. Identity elimination
// ============================================================

func eliminateIdentity(s *simplifier, e Expr) (Expr, bool) {
	switch n := e.(type) {
	case *Unary:
		return s.unaryIdentity(n)
	case *Binary:
		info := binaryOps[n.op]
		if c, ok := n.left.(*Const); ok {
			if info.leftZero != nil && c.is(info.leftZero) {
				return NRat(info.leftZero), true
			}
			if info.leftIdentity != nil && c.is(info.leftIdentity) {
				return n.right, true
			}
			if n.op == OpSub && c.IsZero() {
				return s.rewrite(NegOf(n.right)), true
			}
		}
		if c, ok := n.right.(*Const); ok {
			if info.rightZero != nil && c.is(info.rightZero) {
				return NRat(info.rightZero), true
			}
			if info.rightIdentity != nil && c.is(info.rightIdentity) {
				return n.left, true
			}
			if n.op == OpPow && c.IsZero() {
				return N(1), true
			}
		}
		lv, lok := n.left.(*Var)
		rv, rok := n.right.(*Var)
		if lok && rok && lv.Equal(rv) {
			switch n.op {
			case OpSub:
				return N(0), true
			case OpDiv:
				return N(1), true
			}
		}
	}
	return nil, false
}

func (s *simplifier) unaryIdentity(u *Unary) (Expr, bool) {
	inner, nested := u.arg.(*Unary)
	switch u.op {
	case OpNeg:
		if nested && inner.op == OpNeg {
			return inner.arg, true
		}
	case OpAbs:
		if nested && inner.op == OpAbs {
			return inner, true
		}
		if nested && inner.op == OpNeg {
			return s.rewrite(AbsOf(inner.arg)), true
		}
		// |p| == |-p|: keep the leading coefficient positive
		if p, ok := u.arg.(*Poly); ok && p.p.Lead().Sign() < 0 {
			return s.rewrite(AbsOf(demote(p.p.Neg()))), true
		}
	case OpLn:
		if nested && inner.op == OpExp {
			return inner.arg, true
		}
	}
	return nil, false
}

// ============================================================
// 3. Exact rational folding
// ============================================================

func foldExact(_ *simplifier, e Expr) (Expr, bool) {
	n, ok := e.(*Binary)
	if !ok {
		return nil, false
	}
	l, lok := n.left.(*Const)
	r, rok := n.right.(*Const)
	if !lok || !rok || !l.IsExact() || !r.IsExact() {
		return nil, false
	}
	out := new(big.Rat)
	switch n.op {
	case OpAdd:
		out.Add(l.rat, r.rat)
	case OpSub:
		out.Sub(l.rat, r.rat)
	case OpMul:
		out.Mul(l.rat, r.rat)
	case OpDiv:
		if r.rat.Sign() == 0 {
			return nil, false
		}
		out.Quo(l.rat, r.rat)
	default:
		return nil, false
	}
	return &Const{rat: out}, true
}

// ============================================================
// 4. Re-association
// ============================================================

func negConst(c *Const) *Const {
	if c.IsExact() {
		return &Const{rat: new(big.Rat).Neg(c.rat)}
	}
	return NFloat(-c.f)
}

func recipConst(c *Const) *Const {
	if c.IsExact() {
		return &Const{rat: new(big.Rat).Inv(c.rat)}
	}
	return NFloat(1 / c.f)
}

// reassociate moves constants to the right end of + and * chains so that
// they meet and fold. Subtraction and division by a constant become addition
// and multiplication first.
func reassociate(s *simplifier, e Expr) (Expr, bool) {
	n, ok := e.(*Binary)
	if !ok {
		return nil, false
	}
	lc, lConst := n.left.(*Const)
	rc, rConst := n.right.(*Const)

	switch n.op {
	case OpSub:
		if rConst && !lConst {
			return s.simplify(binaryOf(OpAdd, n.left, negConst(rc))), true
		}
		return nil, false
	case OpDiv:
		if rConst && !lConst && !rc.IsZero() {
			return s.simplify(binaryOf(OpMul, n.left, recipConst(rc))), true
		}
		return nil, false
	case OpAdd, OpMul:
	default:
		return nil, false
	}

	if lConst && !rConst {
		return s.simplify(binaryOf(n.op, n.right, lc)), true
	}
	if lb, ok := n.left.(*Binary); ok && lb.op == n.op {
		if c1, ok := lb.right.(*Const); ok {
			if rConst {
				// (a op C1) op C2 -> a op C3, only when C1 op C2 folds
				c3, ok := s.rewrite(binaryOf(n.op, c1, rc)).(*Const)
				if !ok {
					return nil, false
				}
				return s.simplify(binaryOf(n.op, lb.left, c3)), true
			}
			// (a op C) op b -> (a op b) op C
			return s.simplify(binaryOf(n.op, binaryOf(n.op, lb.left, n.right), c1)), true
		}
	}
	if rb, ok := n.right.(*Binary); ok && rb.op == n.op && !lConst {
		if c, ok := rb.right.(*Const); ok {
			// a op (b op C) -> (a op b) op C
			return s.simplify(binaryOf(n.op, binaryOf(n.op, n.left, rb.left), c)), true
		}
	}
	return nil, false
}

// ============================================================
// 5. Sign-arbitrary absorption
// ============================================================

func arbSignArg(e Expr) (Expr, bool) {
	if u, ok := e.(*Unary); ok && u.op == OpArbSign {
		return u.arg, true
	}
	return nil, false
}

func absorbArbSign(s *simplifier, e Expr) (Expr, bool) {
	switch n := e.(type) {
	case *Unary:
		inner, ok := arbSignArg(n.arg)
		if !ok {
			return nil, false
		}
		switch n.op {
		case OpArbSign:
			return n.arg, true
		case OpAbs:
			return s.rewrite(AbsOf(inner)), true
		}
	case *Binary:
		switch n.op {
		case OpMul, OpDiv:
			l, lm := arbSignArg(n.left)
			r, rm := arbSignArg(n.right)
			if !lm && !rm {
				return nil, false
			}
			if !lm {
				l = n.left
			}
			if !rm {
				r = n.right
			}
			return s.simplify(ArbSignOf(binaryOf(n.op, l, r))), true
		case OpPow:
			base, ok := arbSignArg(n.left)
			if !ok {
				return nil, false
			}
			c, ok := n.right.(*Const)
			if !ok {
				return nil, false
			}
			k, ok := c.Int()
			if !ok {
				return nil, false
			}
			if k%2 == 0 {
				return s.simplify(PowOf(base, c)), true
			}
			return s.simplify(ArbSignOf(PowOf(base, c))), true
		}
	}
	return nil, false
}

// ============================================================
// 6. Polynomial promotion
// ============================================================

func promotePoly(s *simplifier, e Expr) (Expr, bool) {
	switch n := e.(type) {
	case *Unary:
		if n.op != OpNeg {
			return nil, false
		}
		p, ok := s.asPoly(n.arg)
		if !ok || p.IsConstant() {
			return nil, false
		}
		return demote(p.Neg()), true

	case *Binary:
		l, ok := s.asPoly(n.left)
		if !ok {
			return nil, false
		}
		switch n.op {
		case OpPow:
			k, ok := s.smallExponent(n.right)
			if !ok || l.IsConstant() {
				return nil, false
			}
			return demote(l.Pow(k)), true
		case OpDiv:
			c, ok := n.right.(*Const)
			if !ok || l.IsConstant() {
				return nil, false
			}
			r, ok := exactOf(c)
			if !ok {
				return nil, false
			}
			q, err := poly.Divide(l, poly.Constant("", r))
			if err != nil {
				return nil, false
			}
			return demote(q), true
		}

		r, ok := s.asPoly(n.right)
		if !ok || (l.IsConstant() && r.IsConstant()) {
			return nil, false
		}
		var out poly.Poly
		var err error
		switch n.op {
		case OpAdd:
			out, err = poly.Add(l, r)
		case OpSub:
			out, err = poly.Sub(l, r)
		case OpMul:
			out, err = poly.Mul(l, r)
		default:
			return nil, false
		}
		if err != nil {
			// different variables: leave the node as it is
			return nil, false
		}
		return demote(out), true
	}
	return nil, false
}
