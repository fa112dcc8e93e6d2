// Package disc lowers a frozen model onto finite-volume meshes: it
// assigns every state variable a contiguous slice of one flat state
// vector and exposes the right-hand side, events and named outputs as
// plain functions of (t, y).
package disc

import (
	"fmt"

	"github.com/san-kum/cellsim/internal/geometry"
	"github.com/san-kum/cellsim/internal/model"
	"github.com/san-kum/cellsim/internal/symb"
)

// slot is one state variable's window into the flat state vector.
type slot struct {
	variable *symb.StateVariable
	offset   int
	size     int
}

// System is a discretized model: the flat state layout plus closures
// over the model's equations, events and outputs.
type System struct {
	model  *model.Model
	meshes map[symb.Region]symb.Mesh

	diff  []model.Equation
	alg   []model.Equation
	slots []slot
	byID  map[symb.VarID]slot
	size  int
}

// Discretize lays out the model's state variables over meshes built
// from the geometry, differential variables first, in equation order.
func Discretize(m *model.Model, spec geometry.MeshSpec) (*System, error) {
	meshes, err := m.Geometry().Meshes(spec)
	if err != nil {
		return nil, err
	}
	s := &System{
		model:  m,
		meshes: meshes,
		diff:   m.Differential(),
		alg:    m.Algebraic(),
		byID:   make(map[symb.VarID]slot),
	}
	env := s.baseEnv(0)
	for _, v := range m.StateVariables() {
		n, err := env.Size(v.Domain())
		if err != nil {
			return nil, err
		}
		sl := slot{variable: v, offset: s.size, size: n}
		s.slots = append(s.slots, sl)
		s.byID[v.ID()] = sl
		s.size += n
	}
	return s, nil
}

func (s *System) Model() *model.Model { return s.model }

// Size is the length of the flat state vector.
func (s *System) Size() int { return s.size }

// DifferentialSize is the length of the leading differential block.
func (s *System) DifferentialSize() int {
	n := 0
	for _, eq := range s.diff {
		n += s.byID[eq.Var.ID()].size
	}
	return n
}

// AlgebraicSize is the length of the trailing algebraic block.
func (s *System) AlgebraicSize() int { return s.size - s.DifferentialSize() }

// Offset reports a state variable's window into the flat state vector.
func (s *System) Offset(v *symb.StateVariable) (offset, size int, err error) {
	sl, ok := s.byID[v.ID()]
	if !ok {
		return 0, 0, &symb.UnresolvedReferenceError{Name: v.Name()}
	}
	return sl.offset, sl.size, nil
}

func (s *System) baseEnv(t float64) *symb.Env {
	env := symb.NewEnv()
	env.T = t
	for r, m := range s.meshes {
		env.Meshes[r] = m
	}
	return env
}

// env scatters the flat state vector into per-variable fields.
func (s *System) env(t float64, y []float64) (*symb.Env, error) {
	if len(y) != s.size {
		return nil, fmt.Errorf("state length %d, want %d", len(y), s.size)
	}
	env := s.baseEnv(t)
	for _, sl := range s.slots {
		env.Fields[sl.variable.ID()] = symb.Field(y[sl.offset : sl.offset+sl.size])
	}
	return env, nil
}

// InitialConditions evaluates every equation's initial expression and
// broadcasts scalars over the variable's window.
func (s *System) InitialConditions() ([]float64, error) {
	env := s.baseEnv(0)
	y := make([]float64, s.size)
	eqs := append(append([]model.Equation{}, s.diff...), s.alg...)
	for _, eq := range eqs {
		sl := s.byID[eq.Var.ID()]
		f, err := eq.Initial.Eval(env)
		if err != nil {
			return nil, err
		}
		switch len(f) {
		case 1:
			for i := 0; i < sl.size; i++ {
				y[sl.offset+i] = f[0]
			}
		case sl.size:
			copy(y[sl.offset:], f)
		default:
			return nil, fmt.Errorf("initial condition for %s has length %d, want 1 or %d",
				eq.Var.Name(), len(f), sl.size)
		}
	}
	return y, nil
}

// RHS evaluates the differential right-hand sides into dydt. The
// algebraic block of dydt is left zero; explicit time steppers must
// check AlgebraicSize is zero before using it.
func (s *System) RHS(t float64, y, dydt []float64) error {
	if len(dydt) != s.size {
		return fmt.Errorf("derivative length %d, want %d", len(dydt), s.size)
	}
	env, err := s.env(t, y)
	if err != nil {
		return err
	}
	for _, eq := range s.diff {
		sl := s.byID[eq.Var.ID()]
		f, err := eq.RHS.Eval(env)
		if err != nil {
			return err
		}
		if len(f) == 1 && sl.size != 1 {
			for i := 0; i < sl.size; i++ {
				dydt[sl.offset+i] = f[0]
			}
			continue
		}
		if len(f) != sl.size {
			return fmt.Errorf("rhs for %s has length %d, want %d", eq.Var.Name(), len(f), sl.size)
		}
		copy(dydt[sl.offset:sl.offset+sl.size], f)
	}
	return nil
}

// Residual evaluates the algebraic residuals into res.
func (s *System) Residual(t float64, y, res []float64) error {
	if len(res) != s.AlgebraicSize() {
		return fmt.Errorf("residual length %d, want %d", len(res), s.AlgebraicSize())
	}
	env, err := s.env(t, y)
	if err != nil {
		return err
	}
	at := 0
	for _, eq := range s.alg {
		sl := s.byID[eq.Var.ID()]
		f, err := eq.RHS.Eval(env)
		if err != nil {
			return err
		}
		if len(f) != sl.size {
			return fmt.Errorf("residual for %s has length %d, want %d", eq.Var.Name(), len(f), sl.size)
		}
		copy(res[at:at+sl.size], f)
		at += sl.size
	}
	return nil
}

// Events evaluates every termination event to a scalar.
func (s *System) Events(t float64, y []float64) ([]float64, error) {
	env, err := s.env(t, y)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(s.model.Events()))
	for i, ev := range s.model.Events() {
		f, err := ev.Expr.Eval(env)
		if err != nil {
			return nil, err
		}
		if len(f) != 1 {
			return nil, fmt.Errorf("event %q is not scalar (length %d)", ev.Name, len(f))
		}
		out[i] = f[0]
	}
	return out, nil
}

// Output evaluates a named model variable at (t, y).
func (s *System) Output(name string, t float64, y []float64) (symb.Field, error) {
	e, ok := s.model.Variable(name)
	if !ok {
		return nil, &symb.UnresolvedReferenceError{Name: name}
	}
	env, err := s.env(t, y)
	if err != nil {
		return nil, err
	}
	return e.Eval(env)
}

// Sparsity reports the Jacobian block structure: entry [i][j] is true
// when equation i's right-hand side references state variable j, both
// indexed in state-variable order.
func (s *System) Sparsity() [][]bool {
	eqs := append(append([]model.Equation{}, s.diff...), s.alg...)
	index := make(map[symb.VarID]int, len(s.slots))
	for i, sl := range s.slots {
		index[sl.variable.ID()] = i
	}
	out := make([][]bool, len(eqs))
	for i, eq := range eqs {
		out[i] = make([]bool, len(s.slots))
		for _, v := range symb.Variables(eq.RHS) {
			if j, ok := index[v.ID()]; ok {
				out[i][j] = true
			}
		}
	}
	return out
}
