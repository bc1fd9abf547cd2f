package symroot

import (
	"github.com/njchilds90/symroot/internal/fault"
)

// Eval computes e numerically. env maps variable IDs (such as "x" or
// "a[2]") to values. The sign-arbitrary marker evaluates as its + branch.
func Eval(e Expr, env map[string]float64) (float64, error) {
	ev := &evaluator{env: env}
	v := Visit[float64](e, ev)
	if ev.err != nil {
		return 0, ev.err
	}
	return v, nil
}

// evaluator keeps the first lookup failure; later results are meaningless.
type evaluator struct {
	env map[string]float64
	err error
}

func (ev *evaluator) lookup(id string) float64 {
	x, ok := ev.env[id]
	if !ok && ev.err == nil {
		ev.err = fault.Wrap(ErrUnboundVariable, "%s", id)
	}
	return x
}

func (ev *evaluator) VisitConst(c *Const) float64 { return c.Float64() }
func (ev *evaluator) VisitVar(v *Var) float64     { return ev.lookup(v.ID()) }

func (ev *evaluator) VisitUnary(u *Unary) float64 {
	return u.op.Eval(Visit[float64](u.arg, ev))
}

func (ev *evaluator) VisitBinary(b *Binary) float64 {
	return b.op.Eval(Visit[float64](b.left, ev), Visit[float64](b.right, ev))
}

func (ev *evaluator) VisitPoly(p *Poly) float64 {
	if p.p.IsConstant() {
		return p.p.EvalFloat(0)
	}
	return p.p.EvalFloat(ev.lookup(p.p.Var()))
}
