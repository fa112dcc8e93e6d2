package model

import (
	"github.com/san-kum/cellsim/internal/geometry"
	"github.com/san-kum/cellsim/internal/symb"
)

// Builder accumulates submodel contributions and produces an immutable
// Model via Freeze. No partially validated model is observable outside
// the builder.
//
// Builder is not safe for concurrent use; assembly is a single-threaded
// pass.
type Builder struct {
	name     string
	geometry *geometry.Geometry

	diff   []Equation
	alg    []Equation
	vars   *Variables
	events []Event

	governed map[symb.VarID]bool
	byName   map[string]bool
	frozen   bool
}

func NewBuilder(name string, geom *geometry.Geometry) *Builder {
	return &Builder{
		name:     name,
		geometry: geom,
		vars:     NewVariables(),
		governed: make(map[symb.VarID]bool),
		byName:   make(map[string]bool),
	}
}

// Update merges contributions in call order. Equations are appended and
// routed by the state variable's role; the variables mapping merges with
// last-writer-wins override, which post-processing submodels rely on to
// refine already-registered names such as "Terminal voltage" (earlier
// expressions for an overridden name are dropped). Events append in
// order with no deduplication.
//
// A state variable may receive at most one governing equation and no two
// contributions may govern the same variable name; violations fail with
// symb.DuplicateVariableError. Missing-equation validation is deferred
// to Freeze so contributions within one batch may reference each other
// forward.
func (b *Builder) Update(contribs ...Contribution) error {
	if b.frozen {
		return &symb.FrozenModelError{Op: "update"}
	}
	for _, c := range contribs {
		for _, eq := range c.Equations {
			if b.governed[eq.Var.ID()] || b.byName[eq.Var.Name()] {
				return &symb.DuplicateVariableError{Name: eq.Var.Name()}
			}
			b.governed[eq.Var.ID()] = true
			b.byName[eq.Var.Name()] = true
			if eq.Var.Role() == symb.Algebraic {
				b.alg = append(b.alg, eq)
			} else {
				b.diff = append(b.diff, eq)
			}
		}
		if c.Variables != nil {
			for _, name := range c.Variables.Names() {
				e, _ := c.Variables.Get(name)
				b.vars.Set(name, e)
			}
		}
		b.events = append(b.events, c.Events...)
	}
	return nil
}

// SetVariable registers or overrides a single named output expression.
func (b *Builder) SetVariable(name string, e symb.Expr) error {
	if b.frozen {
		return &symb.FrozenModelError{Op: "set variable"}
	}
	b.vars.Set(name, e)
	return nil
}

// Variable reads a named expression during assembly, e.g. the terminal
// voltage when attaching the cutoff event.
func (b *Builder) Variable(name string) (symb.Expr, bool) {
	return b.vars.Get(name)
}

// AddEvent appends a termination event.
func (b *Builder) AddEvent(ev Event) error {
	if b.frozen {
		return &symb.FrozenModelError{Op: "add event"}
	}
	b.events = append(b.events, ev)
	return nil
}

// Freeze validates the aggregate and returns the immutable model: every
// state variable referenced by any equation, named variable or event
// must have exactly one governing equation, else
// symb.MissingEquationError. After a successful freeze the builder
// rejects further mutation with symb.FrozenModelError.
func (b *Builder) Freeze() (*Model, error) {
	if b.frozen {
		return nil, &symb.FrozenModelError{Op: "freeze"}
	}
	check := func(e symb.Expr) error {
		for _, v := range symb.Variables(e) {
			if !b.governed[v.ID()] {
				return &symb.MissingEquationError{Variable: v.Name()}
			}
		}
		return nil
	}
	for _, eq := range append(append([]Equation{}, b.diff...), b.alg...) {
		if err := check(eq.RHS); err != nil {
			return nil, err
		}
	}
	for _, name := range b.vars.Names() {
		e, _ := b.vars.Get(name)
		if err := check(e); err != nil {
			return nil, err
		}
	}
	for _, ev := range b.events {
		if err := check(ev.Expr); err != nil {
			return nil, err
		}
	}
	b.frozen = true
	return &Model{
		name:     b.name,
		diff:     append([]Equation{}, b.diff...),
		alg:      append([]Equation{}, b.alg...),
		vars:     b.vars.clone(),
		events:   append([]Event{}, b.events...),
		geometry: b.geometry,
	}, nil
}
