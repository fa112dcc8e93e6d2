// Package symb provides the symbolic expression tree for model assembly.
//
// Expressions form an immutable directed acyclic graph over state
// variables, parameters, time, and space:
//
//   - [StateVariable]: a declared unknown, referenced by handle
//   - [Binary]/[Unary]: pointwise arithmetic with domain checking
//   - [Broadcast], [SurfaceValue], [Restriction]: domain-transforming ops
//   - [Gradient], [Divergence]: spatial operators evaluated on a mesh
//   - [Interpolant]: piecewise-linear lookup with explicit extrapolation
//
// Every node carries a spatial [Domain]. Binary operations require
// identical domains, or a scalar operand which is broadcast into the
// other domain; anything else fails with [DomainMismatchError] at
// construction time, never during solving.
//
// # Evaluation
//
// Expressions evaluate against an [Env] holding time, state fields and
// per-region meshes:
//
//	v, err := expr.Eval(env)
//
// Shared subtrees are evaluated wherever referenced; nodes are never
// mutated after construction, so trees are safe to share across models.
package symb
