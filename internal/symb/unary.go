package symb

import (
	"fmt"
	"math"
)

type UnaryOp int

const (
	OpNeg UnaryOp = iota
	OpAbs
	OpLog
	OpExp
	OpSqrt
	OpSinh
	OpArcsinh
)

var unaryNames = map[UnaryOp]string{
	OpNeg:     "-",
	OpAbs:     "abs",
	OpLog:     "log",
	OpExp:     "exp",
	OpSqrt:    "sqrt",
	OpSinh:    "sinh",
	OpArcsinh: "arcsinh",
}

// Unary applies a pointwise function to its operand; the domain is
// unchanged.
type Unary struct {
	Op UnaryOp
	X  Expr
}

func Neg(x Expr) Expr     { return &Unary{Op: OpNeg, X: x} }
func Abs(x Expr) Expr     { return &Unary{Op: OpAbs, X: x} }
func Log(x Expr) Expr     { return &Unary{Op: OpLog, X: x} }
func Exp(x Expr) Expr     { return &Unary{Op: OpExp, X: x} }
func Sqrt(x Expr) Expr    { return &Unary{Op: OpSqrt, X: x} }
func Sinh(x Expr) Expr    { return &Unary{Op: OpSinh, X: x} }
func Arcsinh(x Expr) Expr { return &Unary{Op: OpArcsinh, X: x} }

func (u *Unary) Domain() Domain { return u.X.Domain() }

func (u *Unary) Eval(env *Env) (Field, error) {
	x, err := u.X.Eval(env)
	if err != nil {
		return nil, err
	}
	out := make(Field, len(x))
	for i, v := range x {
		switch u.Op {
		case OpNeg:
			out[i] = -v
		case OpAbs:
			out[i] = math.Abs(v)
		case OpLog:
			out[i] = math.Log(v)
		case OpExp:
			out[i] = math.Exp(v)
		case OpSqrt:
			out[i] = math.Sqrt(v)
		case OpSinh:
			out[i] = math.Sinh(v)
		case OpArcsinh:
			out[i] = math.Asinh(v)
		}
	}
	return out, nil
}

func (u *Unary) Diff(wrt *StateVariable) Expr {
	dx := u.X.Diff(wrt)
	switch u.Op {
	case OpNeg:
		return Neg(dx)
	case OpAbs:
		// d|x| = sign(x) dx, written as x/|x| dx
		return mustMul(mustDiv(u.X, Abs(u.X)), dx)
	case OpLog:
		return mustDiv(dx, u.X)
	case OpExp:
		return mustMul(Exp(u.X), dx)
	case OpSqrt:
		return mustDiv(dx, mustMul(Num(2), Sqrt(u.X)))
	case OpSinh:
		// d sinh x = cosh x dx = sqrt(1 + sinh^2 x) dx
		return mustMul(Sqrt(mustAdd(Num(1), mustMul(Sinh(u.X), Sinh(u.X)))), dx)
	case OpArcsinh:
		return mustDiv(dx, Sqrt(mustAdd(Num(1), mustMul(u.X, u.X))))
	}
	return Num(0)
}

func (u *Unary) Children() []Expr { return []Expr{u.X} }

func (u *Unary) String() string {
	if u.Op == OpNeg {
		return fmt.Sprintf("-(%s)", u.X)
	}
	return fmt.Sprintf("%s(%s)", unaryNames[u.Op], u.X)
}
