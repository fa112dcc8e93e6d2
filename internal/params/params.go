// Package params provides explicit parameter sets for model assembly.
// Submodels receive a *Set at construction; there is no process-wide
// parameter namespace. Every name a submodel references must resolve at
// assembly time or the lookup fails with symb.UnknownParameterError.
package params

import (
	"math"

	"github.com/san-kum/cellsim/internal/symb"
)

// Func is a named closure parameter, e.g. an open-circuit potential as a
// function of surface concentration. DF is the analytic derivative and
// may be nil.
type Func struct {
	Name string
	F    func(float64) float64
	DF   func(float64) float64
}

type profile struct {
	xs, ys []float64
}

// Set maps parameter names to scalar values and closures.
type Set struct {
	name    string
	scalars map[string]float64
	funcs   map[string]Func
	current *profile
}

func NewSet(name string) *Set {
	return &Set{
		name:    name,
		scalars: make(map[string]float64),
		funcs:   make(map[string]Func),
	}
}

func (s *Set) Name() string { return s.name }

func (s *Set) SetScalar(name string, v float64) { s.scalars[name] = v }
func (s *Set) SetFunc(f Func)                   { s.funcs[f.Name] = f }

// SetCurrentProfile replaces the constant applied current with a drive
// cycle interpolated over time, clamped at the profile boundaries.
func (s *Set) SetCurrentProfile(ts, is []float64) {
	s.current = &profile{xs: ts, ys: is}
}

// Scalar resolves a named constant.
func (s *Set) Scalar(name string) (float64, error) {
	v, ok := s.scalars[name]
	if !ok {
		return 0, &symb.UnknownParameterError{Name: name}
	}
	return v, nil
}

// Get resolves a named constant as a symbolic parameter node.
func (s *Set) Get(name string) (symb.Expr, error) {
	v, err := s.Scalar(name)
	if err != nil {
		return nil, err
	}
	return symb.NewParameter(name, v), nil
}

// Function applies a named closure to an argument expression.
func (s *Set) Function(name string, arg symb.Expr) (symb.Expr, error) {
	f, ok := s.funcs[name]
	if !ok {
		return nil, &symb.UnknownParameterError{Name: name}
	}
	return symb.NewFunctionParameter(f.Name, f.F, f.DF, arg), nil
}

// Current builds the applied-current expression: the drive-cycle
// interpolant when one is set, otherwise the constant "Current [C-rate]".
func (s *Set) Current() (symb.Expr, error) {
	if s.current != nil {
		return symb.NewInterpolant("Current function", s.current.xs, s.current.ys,
			symb.T, symb.ClampExtrapolation)
	}
	return s.Get("Current [C-rate]")
}

// LithiumIon returns the built-in dimensionless lithium-ion parameter
// set. Electrode thickness fractions match the default "1D macro"
// geometry.
func LithiumIon() *Set {
	s := NewSet("lithium-ion")

	s.SetScalar("Negative electrode thickness", 0.3)
	s.SetScalar("Separator thickness", 0.2)
	s.SetScalar("Positive electrode thickness", 0.5)

	s.SetScalar("Negative particle diffusion timescale", 0.15)
	s.SetScalar("Positive particle diffusion timescale", 0.10)
	s.SetScalar("Negative surface area density", 3.0)
	s.SetScalar("Positive surface area density", 3.0)

	s.SetScalar("Negative exchange current prefactor", 50.0)
	s.SetScalar("Positive exchange current prefactor", 50.0)

	s.SetScalar("Electrolyte diffusivity", 0.8)
	s.SetScalar("Cation transference number", 0.4)
	s.SetScalar("Negative electrode porosity", 0.3)
	s.SetScalar("Separator porosity", 1.0)
	s.SetScalar("Positive electrode porosity", 0.3)

	s.SetScalar("Negative electrode conductivity", 100.0)
	s.SetScalar("Positive electrode conductivity", 10.0)

	s.SetScalar("Initial negative particle concentration", 0.8)
	s.SetScalar("Initial positive particle concentration", 0.6)
	s.SetScalar("Initial electrolyte concentration", 1.0)

	s.SetScalar("Current [C-rate]", 1.0)
	s.SetScalar("Voltage low cut", 3.2)

	s.SetFunc(Func{
		Name: "Negative electrode OCP",
		F: func(c float64) float64 {
			return 0.15 + 0.75*math.Exp(-18*c) + 0.05*(1-c)
		},
		DF: func(c float64) float64 {
			return -13.5*math.Exp(-18*c) - 0.05
		},
	})
	s.SetFunc(Func{
		Name: "Positive electrode OCP",
		F: func(c float64) float64 {
			return 4.25 - 0.5*c - 0.05*math.Exp(10*(c-1))
		},
		DF: func(c float64) float64 {
			return -0.5 - 0.5*math.Exp(10*(c-1))
		},
	})

	return s
}
