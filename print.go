package symroot

import (
	"math/big"
	"strconv"
	"strings"

	"github.com/njchilds90/symroot/poly"
)

// precedence is the binding power of e's outermost operator when printed.
func precedence(e Expr) int {
	switch n := e.(type) {
	case *Const:
		if n.Sign() < 0 {
			return precAdd
		}
		if n.rat != nil && !n.rat.IsInt() {
			return precMul
		}
	case *Unary:
		if n.op == OpNeg || n.op == OpArbSign {
			return precUnary
		}
	case *Binary:
		return n.op.Precedence()
	case *Poly:
		return polyPrecedence(n.p)
	}
	return precAtom
}

func polyPrecedence(p poly.Poly) int {
	d := p.Degree()
	if d <= 0 {
		if p.Coeff(0).Sign() < 0 {
			return precAdd
		}
		return precAtom
	}
	terms := 0
	for i := 0; i <= d; i++ {
		if p.Coeff(i).Sign() != 0 {
			terms++
		}
	}
	lead := p.Lead()
	switch {
	case terms > 1 || lead.Sign() < 0:
		return precAdd
	case lead.Cmp(ratOne) != 0:
		return precMul
	case d > 1:
		return precPow
	}
	return precAtom
}

func paren(s string) string { return "(" + s + ")" }

// operands renders both sides of b with the parentheses its precedence and
// associativity require.
func operands(b *Binary, render func(Expr) string, wrap func(string) string) (string, string) {
	info := binaryOps[b.op]
	l, r := render(b.left), render(b.right)
	lp, rp := precedence(b.left), precedence(b.right)
	if lp < info.precedence || (lp == info.precedence && info.assoc == AssocRight) {
		l = wrap(l)
	}
	if rp < info.precedence || (rp == info.precedence && info.assoc == AssocLeft) {
		r = wrap(r)
	}
	return l, r
}

// ============================================================
// Plain text
// ============================================================

func (u *Unary) String() string {
	arg := u.arg.String()
	switch u.op {
	case OpNeg:
		if precedence(u.arg) <= precUnary {
			arg = paren(arg)
		}
		return "-" + arg
	case OpArbSign:
		if precedence(u.arg) <= precUnary {
			arg = paren(arg)
		}
		return "±" + arg
	}
	return unaryOps[u.op].name + paren(arg)
}

func (b *Binary) String() string {
	if c, ok := b.right.(*Const); ok && b.op == OpAdd && c.Sign() < 0 {
		return SubOf(b.left, negConst(c)).String()
	}
	l, r := operands(b, Expr.String, paren)
	switch b.op {
	case OpAdd, OpSub:
		return l + " " + b.op.String() + " " + r
	}
	return l + b.op.String() + r
}

// ============================================================
// LaTeX
// ============================================================

func latexParen(s string) string { return `\left(` + s + `\right)` }

func latexRat(r *big.Rat) string {
	if r.IsInt() {
		return r.Num().String()
	}
	if r.Denom().BitLen() > 32 {
		return poly.FormatRat(r)
	}
	num := new(big.Int).Abs(r.Num())
	s := `\frac{` + num.String() + `}{` + r.Denom().String() + `}`
	if r.Sign() < 0 {
		return "-" + s
	}
	return s
}

func (c *Const) LaTeX() string {
	if c.rat != nil {
		return latexRat(c.rat)
	}
	return strconv.FormatFloat(c.f, 'g', -1, 64)
}

func (v *Var) LaTeX() string {
	if !v.indexed {
		return v.name
	}
	return v.name + "_{" + strconv.Itoa(v.index) + "}"
}

func (u *Unary) LaTeX() string {
	arg := u.arg.LaTeX()
	switch u.op {
	case OpNeg, OpArbSign:
		if precedence(u.arg) <= precUnary {
			arg = latexParen(arg)
		}
		return unaryOps[u.op].latex + arg
	case OpAbs:
		return `\left|` + arg + `\right|`
	}
	return unaryOps[u.op].latex + latexParen(arg)
}

func (b *Binary) LaTeX() string {
	switch b.op {
	case OpDiv:
		return `\frac{` + b.left.LaTeX() + `}{` + b.right.LaTeX() + `}`
	case OpPow:
		base := b.left.LaTeX()
		if precedence(b.left) <= precPow {
			base = latexParen(base)
		}
		return base + "^{" + b.right.LaTeX() + "}"
	}
	if c, ok := b.right.(*Const); ok && b.op == OpAdd && c.Sign() < 0 {
		return SubOf(b.left, negConst(c)).LaTeX()
	}
	l, r := operands(b, Expr.LaTeX, latexParen)
	if b.op == OpMul {
		return l + ` \cdot ` + r
	}
	return l + " " + b.op.String() + " " + r
}

func (p *Poly) LaTeX() string {
	v := p.Var().LaTeX()
	var sb strings.Builder
	for i := p.p.Degree(); i >= 0; i-- {
		k := p.p.Coeff(i)
		if k.Sign() == 0 {
			continue
		}
		switch {
		case sb.Len() == 0 && k.Sign() < 0:
			sb.WriteString("-")
		case sb.Len() > 0 && k.Sign() < 0:
			sb.WriteString(" - ")
		case sb.Len() > 0:
			sb.WriteString(" + ")
		}
		abs := k.Abs(k)
		if abs.Cmp(ratOne) != 0 || i == 0 {
			sb.WriteString(latexRat(abs))
		}
		switch {
		case i == 1:
			sb.WriteString(v)
		case i > 1:
			sb.WriteString(v + "^{" + strconv.Itoa(i) + "}")
		}
	}
	if sb.Len() == 0 {
		return "0"
	}
	return sb.String()
}

// String renders e as plain text.
func String(e Expr) string { return e.String() }

// LaTeX renders e as a LaTeX math fragment.
func LaTeX(e Expr) string { return e.LaTeX() }
