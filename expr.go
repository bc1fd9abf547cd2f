package symroot

import (
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/njchilds90/symroot/poly"
)

// ============================================================
// Core Interface
// ============================================================

// Kind tags the five node types.
type Kind int

const (
	KindConst Kind = iota
	KindVar
	KindUnary
	KindBinary
	KindPoly
)

func (k Kind) String() string {
	switch k {
	case KindConst:
		return "const"
	case KindVar:
		return "var"
	case KindUnary:
		return "unary"
	case KindBinary:
		return "binary"
	case KindPoly:
		return "poly"
	}
	return "unknown"
}

// Expr is an immutable expression tree. The set of implementations is closed;
// use Visit for exhaustive dispatch.
type Expr interface {
	Kind() Kind
	String() string
	LaTeX() string
	// Equal is structural. Exact constants compare by value.
	Equal(other Expr) bool
	toJSON() map[string]interface{}
}

// ============================================================
// Const — exact rational or float constant
// ============================================================

type Const struct {
	rat *big.Rat // nil for float constants
	f   float64
}

func N(n int64) *Const { return &Const{rat: new(big.Rat).SetInt64(n)} }

// F returns the exact fraction p/q. A zero denominator yields a float NaN
// constant rather than a panic.
func F(p, q int64) *Const {
	if q == 0 {
		return NFloat(math.NaN())
	}
	return &Const{rat: big.NewRat(p, q)}
}

// NRat returns an exact constant holding a copy of r.
func NRat(r *big.Rat) *Const { return &Const{rat: new(big.Rat).Set(r)} }

// NFloat returns an inexact constant.
func NFloat(f float64) *Const { return &Const{f: f} }

func (c *Const) Kind() Kind { return KindConst }

// IsExact reports whether c holds a rational.
func (c *Const) IsExact() bool { return c.rat != nil }

// Rat returns a copy of the exact value, or nil for float constants.
func (c *Const) Rat() *big.Rat {
	if c.rat == nil {
		return nil
	}
	return new(big.Rat).Set(c.rat)
}

func (c *Const) Float64() float64 {
	if c.rat == nil {
		return c.f
	}
	f, _ := c.rat.Float64()
	return f
}

func (c *Const) Sign() int {
	if c.rat != nil {
		return c.rat.Sign()
	}
	switch {
	case c.f > 0:
		return 1
	case c.f < 0:
		return -1
	}
	return 0
}

// is reports whether c equals the rational k, whether exact or float.
func (c *Const) is(k *big.Rat) bool {
	if c.rat != nil {
		return c.rat.Cmp(k) == 0
	}
	kf, _ := k.Float64()
	return c.f == kf
}

func (c *Const) IsZero() bool { return c.is(ratZero) }
func (c *Const) IsOne() bool  { return c.is(ratOne) }

// Int returns the value as an int64 when it is an exact integer that fits.
func (c *Const) Int() (int64, bool) {
	if c.rat == nil || !c.rat.IsInt() || !c.rat.Num().IsInt64() {
		return 0, false
	}
	return c.rat.Num().Int64(), true
}

func (c *Const) Equal(other Expr) bool {
	o, ok := other.(*Const)
	if !ok {
		return false
	}
	if c.rat != nil && o.rat != nil {
		return c.rat.Cmp(o.rat) == 0
	}
	if c.rat == nil && o.rat == nil {
		return c.f == o.f || (math.IsNaN(c.f) && math.IsNaN(o.f))
	}
	return false
}

func (c *Const) String() string {
	if c.rat != nil {
		return poly.FormatRat(c.rat)
	}
	return strconv.FormatFloat(c.f, 'g', -1, 64)
}

// ============================================================
// Var — symbolic variable
// ============================================================

// Var is a named variable, optionally carrying a runtime index. Indexed
// variables are identified by "name[index]".
type Var struct {
	name    string
	index   int
	indexed bool
}

func S(name string) *Var { return &Var{name: name} }

// SIdx returns the indexed variable name[index].
func SIdx(name string, index int) *Var { return &Var{name: name, index: index, indexed: true} }

func (v *Var) Kind() Kind   { return KindVar }
func (v *Var) Name() string { return v.name }

func (v *Var) Index() (int, bool) { return v.index, v.indexed }

// ID is the identity used for substitution, differentiation and evaluation.
func (v *Var) ID() string {
	if !v.indexed {
		return v.name
	}
	return v.name + "[" + strconv.Itoa(v.index) + "]"
}

func (v *Var) Equal(other Expr) bool {
	o, ok := other.(*Var)
	return ok && v.ID() == o.ID()
}

func (v *Var) String() string { return v.ID() }

// varFromID is the inverse of Var.ID.
func varFromID(id string) *Var {
	if i := strings.IndexByte(id, '['); i > 0 && strings.HasSuffix(id, "]") {
		if n, err := strconv.Atoi(id[i+1 : len(id)-1]); err == nil {
			return SIdx(id[:i], n)
		}
	}
	return S(id)
}

// ============================================================
// Unary — operator applied to one operand
// ============================================================

type Unary struct {
	op  UnaryOp
	arg Expr
}

func unaryOf(op UnaryOp, arg Expr) *Unary { return &Unary{op: op, arg: arg} }

func NegOf(arg Expr) *Unary     { return unaryOf(OpNeg, arg) }
func SinOf(arg Expr) *Unary     { return unaryOf(OpSin, arg) }
func CosOf(arg Expr) *Unary     { return unaryOf(OpCos, arg) }
func ExpOf(arg Expr) *Unary     { return unaryOf(OpExp, arg) }
func LnOf(arg Expr) *Unary      { return unaryOf(OpLn, arg) }
func AbsOf(arg Expr) *Unary     { return unaryOf(OpAbs, arg) }
func ArbSignOf(arg Expr) *Unary { return unaryOf(OpArbSign, arg) }

func (u *Unary) Kind() Kind  { return KindUnary }
func (u *Unary) Op() UnaryOp { return u.op }
func (u *Unary) Arg() Expr   { return u.arg }
func (u *Unary) with(a Expr) Expr {
	if a == u.arg {
		return u
	}
	return unaryOf(u.op, a)
}

func (u *Unary) Equal(other Expr) bool {
	o, ok := other.(*Unary)
	return ok && u.op == o.op && u.arg.Equal(o.arg)
}

// ============================================================
// Binary — operator applied to two operands
// ============================================================

type Binary struct {
	op          BinaryOp
	left, right Expr
}

func binaryOf(op BinaryOp, l, r Expr) *Binary { return &Binary{op: op, left: l, right: r} }

// fold combines terms left to right: ((a op b) op c) ...
func fold(op BinaryOp, unit int64, terms []Expr) Expr {
	switch len(terms) {
	case 0:
		return N(unit)
	case 1:
		return terms[0]
	}
	acc := terms[0]
	for _, t := range terms[1:] {
		acc = binaryOf(op, acc, t)
	}
	return acc
}

// AddOf returns the left-nested sum of terms. No simplification is applied.
func AddOf(terms ...Expr) Expr { return fold(OpAdd, 0, terms) }

// MulOf returns the left-nested product of factors.
func MulOf(factors ...Expr) Expr { return fold(OpMul, 1, factors) }

func SubOf(l, r Expr) *Binary                 { return binaryOf(OpSub, l, r) }
func DivOf(l, r Expr) *Binary                 { return binaryOf(OpDiv, l, r) }
func PowOf(base, exp Expr) *Binary            { return binaryOf(OpPow, base, exp) }
func BinaryOf(op BinaryOp, l, r Expr) *Binary { return binaryOf(op, l, r) }

func (b *Binary) Kind() Kind   { return KindBinary }
func (b *Binary) Op() BinaryOp { return b.op }
func (b *Binary) Left() Expr   { return b.left }
func (b *Binary) Right() Expr  { return b.right }
func (b *Binary) with(l, r Expr) Expr {
	if l == b.left && r == b.right {
		return b
	}
	return binaryOf(b.op, l, r)
}

func (b *Binary) Equal(other Expr) bool {
	o, ok := other.(*Binary)
	return ok && b.op == o.op && b.left.Equal(o.left) && b.right.Equal(o.right)
}

// ============================================================
// Poly — canonical single-variable polynomial leaf
// ============================================================

// Poly wraps a poly.Poly whose variable tag is a Var ID. Simplify produces
// it when an expression canonicalizes to polynomial form.
type Poly struct {
	p poly.Poly
}

// PolyOf wraps p. An untagged p is taken to be in x.
func PolyOf(p poly.Poly) *Poly {
	if p.Var() == "" {
		p = p.Rename("x")
	}
	return &Poly{p: p.Trim()}
}

func (p *Poly) Kind() Kind       { return KindPoly }
func (p *Poly) Value() poly.Poly { return p.p }
func (p *Poly) Var() *Var        { return varFromID(p.p.Var()) }
func (p *Poly) String() string   { return p.p.String() }

func (p *Poly) Equal(other Expr) bool {
	o, ok := other.(*Poly)
	return ok && p.p.Equal(o.p)
}
