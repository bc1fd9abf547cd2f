// Package symroot is a small computer-algebra core.
//
// Expressions are immutable trees of constants, variables, unary and binary
// operators. Simplify rewrites a tree bottom-up with an ordered rule list
// until it reaches a fixed point; when an expression reduces to a polynomial
// in a single variable it becomes a *Poly node backed by the exact
// arithmetic of package poly, and its real roots can be isolated and refined
// with package roots.
//
// Design goals:
//   - Exact rational arithmetic (math/big.Rat) wherever possible
//   - Deterministic simplification and stable output
//   - Typed, matchable errors instead of silently wrong results
//   - JSON, LaTeX and tool-call APIs for services and agent backends
package symroot
