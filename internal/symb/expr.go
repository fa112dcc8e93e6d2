package symb

import (
	"fmt"
	"strconv"
)

// Expr is a node in the immutable expression DAG.
type Expr interface {
	// Domain is the spatial region the expression is valid over.
	Domain() Domain
	// Eval evaluates the expression pointwise against an environment.
	Eval(env *Env) (Field, error)
	// Diff differentiates symbolically with respect to a state variable.
	Diff(wrt *StateVariable) Expr
	// Children returns the direct operands, in order.
	Children() []Expr

	String() string
}

// Scalar is a constant value with scalar domain.
type Scalar struct {
	Value float64
}

// Num wraps a constant into an expression.
func Num(v float64) *Scalar { return &Scalar{Value: v} }

func (s *Scalar) Domain() Domain               { return ScalarDomain }
func (s *Scalar) Eval(*Env) (Field, error)     { return Field{s.Value}, nil }
func (s *Scalar) Diff(*StateVariable) Expr     { return Num(0) }
func (s *Scalar) Children() []Expr             { return nil }
func (s *Scalar) String() string               { return strconv.FormatFloat(s.Value, 'g', -1, 64) }

// Parameter is a named physical constant, resolved to a concrete value
// at assembly time.
type Parameter struct {
	Name  string
	Value float64
}

func NewParameter(name string, value float64) *Parameter {
	return &Parameter{Name: name, Value: value}
}

func (p *Parameter) Domain() Domain           { return ScalarDomain }
func (p *Parameter) Eval(*Env) (Field, error) { return Field{p.Value}, nil }
func (p *Parameter) Diff(*StateVariable) Expr { return Num(0) }
func (p *Parameter) Children() []Expr         { return nil }
func (p *Parameter) String() string           { return p.Name }

type timeNode struct{}

// T is the independent time variable.
var T Expr = timeNode{}

func (timeNode) Domain() Domain { return ScalarDomain }
func (timeNode) Eval(env *Env) (Field, error) {
	return Field{env.T}, nil
}
func (timeNode) Diff(*StateVariable) Expr { return Num(0) }
func (timeNode) Children() []Expr         { return nil }
func (timeNode) String() string           { return "t" }

// SpatialVariable is the spatial coordinate of a domain, evaluating to
// the cell-center positions of its mesh.
type SpatialVariable struct {
	domain Domain
}

func NewSpatialVariable(d Domain) *SpatialVariable {
	return &SpatialVariable{domain: d}
}

func (x *SpatialVariable) Domain() Domain { return x.domain }

func (x *SpatialVariable) Eval(env *Env) (Field, error) {
	m, err := env.CompositeMesh(x.domain)
	if err != nil {
		return nil, err
	}
	return Field(m.Centers).Clone(), nil
}

func (x *SpatialVariable) Diff(*StateVariable) Expr { return Num(0) }
func (x *SpatialVariable) Children() []Expr         { return nil }
func (x *SpatialVariable) String() string           { return "x" }

// Unchecked constructors for internal use where operand domains are
// already known compatible (e.g. derivatives of existing nodes).

func mustBinary(op BinaryOp, a, b Expr) Expr {
	e, err := NewBinary(op, a, b)
	if err != nil {
		panic(fmt.Sprintf("symb: internal domain error: %v", err))
	}
	return e
}

func mustAdd(a, b Expr) Expr { return mustBinary(OpAdd, a, b) }
func mustSub(a, b Expr) Expr { return mustBinary(OpSub, a, b) }
func mustMul(a, b Expr) Expr { return mustBinary(OpMul, a, b) }
func mustDiv(a, b Expr) Expr { return mustBinary(OpDiv, a, b) }
