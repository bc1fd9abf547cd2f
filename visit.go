package symroot

import "fmt"

// Visitor has one method per node kind. A consumer that does not handle
// every kind does not compile.
type Visitor[T any] interface {
	VisitConst(*Const) T
	VisitVar(*Var) T
	VisitUnary(*Unary) T
	VisitBinary(*Binary) T
	VisitPoly(*Poly) T
}

// Visit dispatches e to the matching method of v.
func Visit[T any](e Expr, v Visitor[T]) T {
	switch n := e.(type) {
	case *Const:
		return v.VisitConst(n)
	case *Var:
		return v.VisitVar(n)
	case *Unary:
		return v.VisitUnary(n)
	case *Binary:
		return v.VisitBinary(n)
	case *Poly:
		return v.VisitPoly(n)
	}
	// Expr is sealed by its unexported method, so only a nil tree gets here.
	panic(fmt.Sprintf("symroot: cannot visit %T", e))
}

// freeVars collects variable IDs in first-seen order.
type freeVars struct {
	seen map[string]bool
	ids  []string
}

func (f *freeVars) add(id string) struct{} {
	if !f.seen[id] {
		f.seen[id] = true
		f.ids = append(f.ids, id)
	}
	return struct{}{}
}

func (f *freeVars) VisitConst(*Const) struct{} { return struct{}{} }
func (f *freeVars) VisitVar(v *Var) struct{}   { return f.add(v.ID()) }
func (f *freeVars) VisitUnary(u *Unary) struct{} {
	return Visit[struct{}](u.arg, f)
}
func (f *freeVars) VisitBinary(b *Binary) struct{} {
	Visit[struct{}](b.left, f)
	return Visit[struct{}](b.right, f)
}
func (f *freeVars) VisitPoly(p *Poly) struct{} {
	if p.p.IsConstant() {
		return struct{}{}
	}
	return f.add(p.p.Var())
}

// FreeVars returns the IDs of the variables e depends on, in order of first
// appearance.
func FreeVars(e Expr) []string {
	f := &freeVars{seen: map[string]bool{}}
	Visit[struct{}](e, f)
	return f.ids
}

// dependsOn reports whether e mentions the variable id.
func dependsOn(e Expr, id string) bool {
	for _, v := range FreeVars(e) {
		if v == id {
			return true
		}
	}
	return false
}
