package symroot

import (
	"fmt"

	"github.com/expr-lang/expr/ast"
	"github.com/expr-lang/expr/parser"
)

// Parse reads infix notation into an expression tree without simplifying it.
//
//	x^2 - 2*x + 1     a[1]*sin(a[2])     sqrt(x)    pm(y)
//
// Both ^ and ** denote powers. Recognized functions are sin, cos, exp,
// ln (alias log), abs, pm (alias arbsign) and sqrt, which becomes ^(1/2).
func Parse(src string) (Expr, error) {
	tree, err := parser.Parse(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	return fromAST(tree.Node)
}

// MustParse is Parse for literals known to be valid. It panics on error.
func MustParse(src string) Expr {
	e, err := Parse(src)
	if err != nil {
		panic(err)
	}
	return e
}

var funcAliases = map[string]string{
	"log":     "ln",
	"arbsign": "pm",
}

func fromAST(node ast.Node) (Expr, error) {
	switch n := node.(type) {
	case *ast.IntegerNode:
		return N(int64(n.Value)), nil
	case *ast.FloatNode:
		return NFloat(n.Value), nil
	case *ast.IdentifierNode:
		return S(n.Value), nil

	case *ast.MemberNode:
		base, ok := n.Node.(*ast.IdentifierNode)
		idx, ok2 := n.Property.(*ast.IntegerNode)
		if !ok || !ok2 {
			return nil, fmt.Errorf("%w: unsupported member access %s", ErrParse, n)
		}
		return SIdx(base.Value, idx.Value), nil

	case *ast.UnaryNode:
		arg, err := fromAST(n.Node)
		if err != nil {
			return nil, err
		}
		switch n.Operator {
		case "-":
			return NegOf(arg), nil
		case "+":
			return arg, nil
		}
		return nil, fmt.Errorf("%w: unsupported operator %q", ErrParse, n.Operator)

	case *ast.BinaryNode:
		name := n.Operator
		if name == "**" {
			name = "^"
		}
		op, ok := binaryOpByName(name)
		if !ok {
			return nil, fmt.Errorf("%w: unsupported operator %q", ErrParse, n.Operator)
		}
		l, err := fromAST(n.Left)
		if err != nil {
			return nil, err
		}
		r, err := fromAST(n.Right)
		if err != nil {
			return nil, err
		}
		return binaryOf(op, l, r), nil

	case *ast.CallNode:
		callee, ok := n.Callee.(*ast.IdentifierNode)
		if !ok {
			return nil, fmt.Errorf("%w: unsupported call %s", ErrParse, n)
		}
		return call(callee.Value, n.Arguments)
	case *ast.BuiltinNode:
		return call(n.Name, n.Arguments)
	}
	return nil, fmt.Errorf("%w: unsupported syntax %T", ErrParse, node)
}

func call(name string, args []ast.Node) (Expr, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("%w: %s takes one argument, got %d", ErrParse, name, len(args))
	}
	arg, err := fromAST(args[0])
	if err != nil {
		return nil, err
	}
	if alias, ok := funcAliases[name]; ok {
		name = alias
	}
	if name == "sqrt" {
		return PowOf(arg, F(1, 2)), nil
	}
	op, ok := unaryOpByName(name)
	if !ok || op == OpNeg {
		return nil, fmt.Errorf("%w: unknown function %q", ErrParse, name)
	}
	return unaryOf(op, arg), nil
}
