package symroot

import (
	"math"
	"math/big"
)

// UnaryOp identifies a unary operator.
type UnaryOp int

const (
	OpNeg UnaryOp = iota
	OpSin
	OpCos
	OpExp
	OpLn
	OpAbs
	// OpArbSign marks an expression whose sign is undetermined, such as the
	// derivative of an absolute value.
	OpArbSign
	numUnaryOps
)

// BinaryOp identifies a binary operator.
type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpPow
	numBinaryOps
)

// Assoc is the associativity used when printing.
type Assoc int

const (
	AssocLeft Assoc = iota
	AssocRight
)

const (
	precAdd   = 20
	precMul   = 30
	precUnary = 35
	precPow   = 40
	precAtom  = 100
)

type unaryInfo struct {
	name  string // function name, also accepted by Parse
	latex string
	eval  func(float64) float64
}

type binaryInfo struct {
	name        string // JSON type name
	symbol      string
	precedence  int
	assoc       Assoc
	associative bool
	commutative bool

	// Identities and absorbing elements. Nil means none.
	leftIdentity, rightIdentity *big.Rat
	leftZero, rightZero         *big.Rat

	eval func(a, b float64) float64
}

var (
	ratZero = big.NewRat(0, 1)
	ratOne  = big.NewRat(1, 1)
)

var unaryOps = [numUnaryOps]unaryInfo{
	OpNeg:     {name: "neg", latex: "-", eval: func(x float64) float64 { return -x }},
	OpSin:     {name: "sin", latex: `\sin`, eval: math.Sin},
	OpCos:     {name: "cos", latex: `\cos`, eval: math.Cos},
	OpExp:     {name: "exp", latex: `\exp`, eval: math.Exp},
	OpLn:      {name: "ln", latex: `\ln`, eval: math.Log},
	OpAbs:     {name: "abs", latex: "", eval: math.Abs},
	OpArbSign: {name: "pm", latex: `\pm `, eval: func(x float64) float64 { return x }},
}

var binaryOps = [numBinaryOps]binaryInfo{
	OpAdd: {
		name: "add", symbol: "+", precedence: precAdd, assoc: AssocLeft,
		associative: true, commutative: true,
		leftIdentity: ratZero, rightIdentity: ratZero,
		eval: func(a, b float64) float64 { return a + b },
	},
	OpSub: {
		name: "sub", symbol: "-", precedence: precAdd, assoc: AssocLeft,
		rightIdentity: ratZero,
		eval:          func(a, b float64) float64 { return a - b },
	},
	OpMul: {
		name: "mul", symbol: "*", precedence: precMul, assoc: AssocLeft,
		associative: true, commutative: true,
		leftIdentity: ratOne, rightIdentity: ratOne,
		leftZero: ratZero, rightZero: ratZero,
		eval: func(a, b float64) float64 { return a * b },
	},
	OpDiv: {
		name: "div", symbol: "/", precedence: precMul, assoc: AssocLeft,
		rightIdentity: ratOne, leftZero: ratZero,
		eval: func(a, b float64) float64 { return a / b },
	},
	OpPow: {
		name: "pow", symbol: "^", precedence: precPow, assoc: AssocRight,
		rightIdentity: ratOne, leftZero: ratOne,
		eval: math.Pow,
	},
}

func (op UnaryOp) String() string {
	if op < 0 || op >= numUnaryOps {
		return "unknown"
	}
	return unaryOps[op].name
}

func (op BinaryOp) String() string {
	if op < 0 || op >= numBinaryOps {
		return "?"
	}
	return binaryOps[op].symbol
}

// Precedence is the binding power used by the printer.
func (op BinaryOp) Precedence() int { return binaryOps[op].precedence }

func (op BinaryOp) Associativity() Assoc { return binaryOps[op].assoc }
func (op BinaryOp) Associative() bool    { return binaryOps[op].associative }
func (op BinaryOp) Commutative() bool    { return binaryOps[op].commutative }

// Eval applies the operator to floats.
func (op BinaryOp) Eval(a, b float64) float64 { return binaryOps[op].eval(a, b) }

// Eval applies the operator to a float. OpArbSign takes the positive branch.
func (op UnaryOp) Eval(x float64) float64 { return unaryOps[op].eval(x) }

func unaryOpByName(name string) (UnaryOp, bool) {
	for i, info := range unaryOps {
		if info.name == name {
			return UnaryOp(i), true
		}
	}
	return 0, false
}

func binaryOpByName(name string) (BinaryOp, bool) {
	for i, info := range binaryOps {
		if info.name == name || info.symbol == name {
			return BinaryOp(i), true
		}
	}
	return 0, false
}
