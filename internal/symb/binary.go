package symb

import (
	"fmt"
	"math"
)

type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpPow
)

var binaryNames = map[BinaryOp]string{
	OpAdd: "+",
	OpSub: "-",
	OpMul: "*",
	OpDiv: "/",
	OpPow: "^",
}

// Binary is a pointwise arithmetic operation. The result domain is
// resolved at construction: identical operand domains, or a scalar
// operand broadcast into the other domain.
type Binary struct {
	Op     BinaryOp
	L, R   Expr
	domain Domain
}

func NewBinary(op BinaryOp, l, r Expr) (Expr, error) {
	d, err := resolve(binaryNames[op], l.Domain(), r.Domain())
	if err != nil {
		return nil, err
	}
	return &Binary{Op: op, L: l, R: r, domain: d}, nil
}

func Add(l, r Expr) (Expr, error) { return NewBinary(OpAdd, l, r) }
func Sub(l, r Expr) (Expr, error) { return NewBinary(OpSub, l, r) }
func Mul(l, r Expr) (Expr, error) { return NewBinary(OpMul, l, r) }
func Div(l, r Expr) (Expr, error) { return NewBinary(OpDiv, l, r) }
func Pow(l, r Expr) (Expr, error) { return NewBinary(OpPow, l, r) }

func (b *Binary) Domain() Domain { return b.domain }

func (b *Binary) Eval(env *Env) (Field, error) {
	l, err := b.L.Eval(env)
	if err != nil {
		return nil, err
	}
	r, err := b.R.Eval(env)
	if err != nil {
		return nil, err
	}
	l, r = broadcastPair(l, r)
	if len(l) != len(r) {
		return nil, fmt.Errorf("field length mismatch in %s: %d vs %d",
			binaryNames[b.Op], len(l), len(r))
	}
	out := make(Field, len(l))
	for i := range l {
		switch b.Op {
		case OpAdd:
			out[i] = l[i] + r[i]
		case OpSub:
			out[i] = l[i] - r[i]
		case OpMul:
			out[i] = l[i] * r[i]
		case OpDiv:
			out[i] = l[i] / r[i]
		case OpPow:
			out[i] = math.Pow(l[i], r[i])
		}
	}
	return out, nil
}

func (b *Binary) Diff(wrt *StateVariable) Expr {
	dl := b.L.Diff(wrt)
	dr := b.R.Diff(wrt)
	switch b.Op {
	case OpAdd:
		return mustAdd(dl, dr)
	case OpSub:
		return mustSub(dl, dr)
	case OpMul:
		return mustAdd(mustMul(dl, b.R), mustMul(b.L, dr))
	case OpDiv:
		num := mustSub(mustMul(dl, b.R), mustMul(b.L, dr))
		return mustDiv(num, mustMul(b.R, b.R))
	case OpPow:
		if isZero(dr) {
			// d(x^c) = c x^(c-1) dx
			exp := mustSub(b.R, Num(1))
			return mustMul(mustMul(b.R, mustBinary(OpPow, b.L, exp)), dl)
		}
		// d(a^b) = a^b (b' ln a + b a'/a)
		inner := mustAdd(mustMul(dr, Log(b.L)), mustDiv(mustMul(b.R, dl), b.L))
		return mustMul(b, inner)
	}
	return Num(0)
}

func isZero(e Expr) bool {
	s, ok := e.(*Scalar)
	return ok && s.Value == 0
}

func (b *Binary) Children() []Expr { return []Expr{b.L, b.R} }

func (b *Binary) String() string {
	return fmt.Sprintf("(%s %s %s)", b.L, binaryNames[b.Op], b.R)
}
