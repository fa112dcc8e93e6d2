// Package model aggregates submodel contributions into a frozen,
// immutable battery model ready for discretization.
package model

import (
	"github.com/san-kum/cellsim/internal/geometry"
	"github.com/san-kum/cellsim/internal/symb"
)

// Equation governs one state variable. For a differential variable the
// right-hand side is d(var)/dt; for an algebraic variable it is a
// residual that must equal zero. Initial is a scalar expression giving
// the initial value, broadcast over the variable's domain at
// discretization.
type Equation struct {
	Var     *symb.StateVariable
	RHS     symb.Expr
	Initial symb.Expr
}

// Event is a scalar expression whose zero-crossing terminates the
// simulation, e.g. a voltage cutoff.
type Event struct {
	Name string
	Expr symb.Expr
}

// Contribution is what one submodel hands the aggregator: governing
// equations, named output expressions, and termination events. It is
// immutable once returned by the submodel.
type Contribution struct {
	Equations []Equation
	Variables *Variables
	Events    []Event
}

// Variables is an ordered mapping from display name to expression.
// Setting an existing name replaces the expression but keeps the
// original position; merge order therefore decides the final value
// (last writer wins).
type Variables struct {
	names []string
	exprs map[string]symb.Expr
}

func NewVariables() *Variables {
	return &Variables{exprs: make(map[string]symb.Expr)}
}

func (v *Variables) Set(name string, e symb.Expr) {
	if _, ok := v.exprs[name]; !ok {
		v.names = append(v.names, name)
	}
	v.exprs[name] = e
}

func (v *Variables) Get(name string) (symb.Expr, bool) {
	e, ok := v.exprs[name]
	return e, ok
}

func (v *Variables) Names() []string {
	out := make([]string, len(v.names))
	copy(out, v.names)
	return out
}

func (v *Variables) Len() int { return len(v.names) }

func (v *Variables) clone() *Variables {
	out := NewVariables()
	for _, name := range v.names {
		out.Set(name, v.exprs[name])
	}
	return out
}

// Model is the frozen aggregate: ordered differential and algebraic
// equations, named output variables, termination events, and the
// default geometry. It is never mutated after Freeze and is safe to
// share across any number of downstream consumers.
type Model struct {
	name     string
	diff     []Equation
	alg      []Equation
	vars     *Variables
	events   []Event
	geometry *geometry.Geometry
}

func (m *Model) Name() string { return m.name }

func (m *Model) Differential() []Equation {
	out := make([]Equation, len(m.diff))
	copy(out, m.diff)
	return out
}

func (m *Model) Algebraic() []Equation {
	out := make([]Equation, len(m.alg))
	copy(out, m.alg)
	return out
}

func (m *Model) Events() []Event {
	out := make([]Event, len(m.events))
	copy(out, m.events)
	return out
}

func (m *Model) VariableNames() []string { return m.vars.Names() }

func (m *Model) Variable(name string) (symb.Expr, bool) { return m.vars.Get(name) }

func (m *Model) Geometry() *geometry.Geometry { return m.geometry }

// StateVariables lists the governed unknowns, differential first, in
// equation order.
func (m *Model) StateVariables() []*symb.StateVariable {
	out := make([]*symb.StateVariable, 0, len(m.diff)+len(m.alg))
	for _, eq := range m.diff {
		out = append(out, eq.Var)
	}
	for _, eq := range m.alg {
		out = append(out, eq.Var)
	}
	return out
}
