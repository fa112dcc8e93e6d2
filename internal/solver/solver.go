package solver

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/cellsim/internal/disc"
)

// Config controls one solve.
type Config struct {
	Duration      float64
	Dt            float64
	ValidateState bool
	Outputs       []string
}

// Result collects the solve trajectory: sampled times, state snapshots,
// requested named output series, and how the solve ended.
type Result struct {
	Times   []float64
	States  [][]float64
	Outputs map[string][]float64
	Metrics map[string]float64

	StepsTaken int
	EventName  string
	EventTime  float64
	Terminated bool
}

// Observer sees every accepted sample with its requested outputs, e.g.
// a live TUI view.
type Observer interface {
	OnSample(t float64, outputs map[string]float64)
}

type Solver struct {
	sys       *disc.System
	stepper   Stepper
	metrics   []Metric
	observers []Observer
}

func New(sys *disc.System, stepper Stepper) *Solver {
	return &Solver{sys: sys, stepper: stepper}
}

func (s *Solver) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Solver) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Solver) validateConfig(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %f", cfg.Duration)
	}
	if n := s.sys.AlgebraicSize(); n > 0 {
		return fmt.Errorf("explicit steppers cannot solve %d algebraic unknowns", n)
	}
	return nil
}

// Run integrates from the model's initial conditions until the duration
// elapses, an event crosses zero, or the context is cancelled. Event
// crossings are located by linear interpolation inside the crossing
// step, and the interpolated endpoint becomes the final sample.
func (s *Solver) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}

	y, err := s.sys.InitialConditions()
	if err != nil {
		return nil, err
	}

	steps := int(cfg.Duration / cfg.Dt)
	result := &Result{
		Times:   make([]float64, 0, steps+1),
		States:  make([][]float64, 0, steps+1),
		Outputs: make(map[string][]float64, len(cfg.Outputs)),
		Metrics: make(map[string]float64),
	}
	for _, m := range s.metrics {
		m.Reset()
	}

	t := 0.0
	if err := s.record(result, cfg, t, y); err != nil {
		return nil, err
	}

	prevEvents, err := s.sys.Events(t, y)
	if err != nil {
		return nil, err
	}

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		next, err := s.stepper.Step(s.sys, y, t, cfg.Dt)
		if err != nil {
			return result, err
		}
		if cfg.ValidateState && !isValid(next) {
			return result, fmt.Errorf("invalid state (NaN/Inf) at t=%.4f", t+cfg.Dt)
		}

		nextT := t + cfg.Dt
		events, err := s.sys.Events(nextT, next)
		if err != nil {
			return result, err
		}
		if name, frac := firstCrossing(s.sys, prevEvents, events); name != "" {
			// land exactly on the interpolated crossing
			tc := t + frac*cfg.Dt
			yc := interpolate(y, next, frac)
			result.Terminated = true
			result.EventName = name
			result.EventTime = tc
			result.StepsTaken++
			if err := s.record(result, cfg, tc, yc); err != nil {
				return result, err
			}
			s.finish(result)
			return result, nil
		}

		y = next
		t = nextT
		prevEvents = events
		result.StepsTaken++
		if err := s.record(result, cfg, t, y); err != nil {
			return result, err
		}
	}

	s.finish(result)
	return result, nil
}

func (s *Solver) record(result *Result, cfg Config, t float64, y []float64) error {
	result.Times = append(result.Times, t)
	snapshot := make([]float64, len(y))
	copy(snapshot, y)
	result.States = append(result.States, snapshot)

	sample := make(map[string]float64, len(cfg.Outputs))
	for _, name := range cfg.Outputs {
		f, err := s.sys.Output(name, t, y)
		if err != nil {
			return err
		}
		v := f[0]
		if len(f) > 1 {
			v = mean(f)
		}
		result.Outputs[name] = append(result.Outputs[name], v)
		sample[name] = v
	}
	for _, m := range s.metrics {
		m.Observe(t, sample)
	}
	for _, o := range s.observers {
		o.OnSample(t, sample)
	}
	return nil
}

func (s *Solver) finish(result *Result) {
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}

// firstCrossing reports the first event whose sign changed across the
// step, with the linear-interpolation fraction of the crossing.
func firstCrossing(sys *disc.System, prev, cur []float64) (string, float64) {
	events := sys.Model().Events()
	for i := range cur {
		if prev[i] > 0 && cur[i] <= 0 {
			frac := prev[i] / (prev[i] - cur[i])
			return events[i].Name, frac
		}
	}
	return "", 0
}

func interpolate(a, b []float64, frac float64) []float64 {
	out := make([]float64, len(a))
	for i := range a {
		out[i] = a[i] + frac*(b[i]-a[i])
	}
	return out
}

func isValid(y []float64) bool {
	for _, v := range y {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func mean(f []float64) float64 {
	sum := 0.0
	for _, v := range f {
		sum += v
	}
	return sum / float64(len(f))
}
