// Package solver advances a discretized cell model through time with
// explicit steppers, terminating on event zero-crossings.
package solver

import (
	"fmt"

	"github.com/san-kum/cellsim/internal/disc"
)

// Stepper advances the state vector by one time step.
type Stepper interface {
	Name() string
	Step(sys *disc.System, y []float64, t, dt float64) ([]float64, error)
}

type Euler struct {
	dydt []float64
}

func NewEuler() *Euler { return &Euler{} }

func (e *Euler) Name() string { return "euler" }

func (e *Euler) Step(sys *disc.System, y []float64, t, dt float64) ([]float64, error) {
	n := len(y)
	if len(e.dydt) != n {
		e.dydt = make([]float64, n)
	}
	if err := sys.RHS(t, y, e.dydt); err != nil {
		return nil, err
	}
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = y[i] + dt*e.dydt[i]
	}
	return out, nil
}

type RK4 struct {
	k1, k2, k3, k4 []float64
	scratch        []float64
}

func NewRK4() *RK4 { return &RK4{} }

func (r *RK4) Name() string { return "rk4" }

func (r *RK4) ensureScratch(n int) {
	if len(r.k1) != n {
		r.k1 = make([]float64, n)
		r.k2 = make([]float64, n)
		r.k3 = make([]float64, n)
		r.k4 = make([]float64, n)
		r.scratch = make([]float64, n)
	}
}

func (r *RK4) Step(sys *disc.System, y []float64, t, dt float64) ([]float64, error) {
	n := len(y)
	r.ensureScratch(n)

	if err := sys.RHS(t, y, r.k1); err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		r.scratch[i] = y[i] + dt*0.5*r.k1[i]
	}
	if err := sys.RHS(t+dt*0.5, r.scratch, r.k2); err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		r.scratch[i] = y[i] + dt*0.5*r.k2[i]
	}
	if err := sys.RHS(t+dt*0.5, r.scratch, r.k3); err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		r.scratch[i] = y[i] + dt*r.k3[i]
	}
	if err := sys.RHS(t+dt, r.scratch, r.k4); err != nil {
		return nil, err
	}

	out := make([]float64, n)
	dt6 := dt / 6.0
	for i := 0; i < n; i++ {
		out[i] = y[i] + dt6*(r.k1[i]+2*r.k2[i]+2*r.k3[i]+r.k4[i])
	}
	return out, nil
}

// NewStepper builds a stepper by name.
func NewStepper(name string) (Stepper, error) {
	switch name {
	case "euler":
		return NewEuler(), nil
	case "rk4", "":
		return NewRK4(), nil
	default:
		return nil, fmt.Errorf("unknown stepper: %s", name)
	}
}
