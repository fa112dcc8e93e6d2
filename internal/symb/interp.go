package symb

import (
	"fmt"
	"sort"
)

// Extrapolation selects the policy for interpolant queries outside the
// sample range.
type Extrapolation int

const (
	// ClampExtrapolation holds the boundary sample value. This is the
	// default, matching how drive-cycle current functions are used.
	ClampExtrapolation Extrapolation = iota
	// LinearExtrapolation extends the boundary segment slopes.
	LinearExtrapolation
	// ErrorExtrapolation rejects out-of-range queries at evaluation.
	ErrorExtrapolation
)

// Interpolant wraps a piecewise-linear lookup of (x, y) sample pairs
// applied pointwise to a query expression.
type Interpolant struct {
	Name   string
	xs, ys []float64
	arg    Expr
	extrap Extrapolation
}

func NewInterpolant(name string, xs, ys []float64, arg Expr, extrap Extrapolation) (*Interpolant, error) {
	if len(xs) != len(ys) {
		return nil, fmt.Errorf("interpolant %q: %d sample points vs %d values", name, len(xs), len(ys))
	}
	if len(xs) < 2 {
		return nil, fmt.Errorf("interpolant %q: need at least 2 sample points", name)
	}
	if !sort.Float64sAreSorted(xs) {
		return nil, fmt.Errorf("interpolant %q: sample points must be increasing", name)
	}
	return &Interpolant{Name: name, xs: xs, ys: ys, arg: arg, extrap: extrap}, nil
}

func (ip *Interpolant) Domain() Domain { return ip.arg.Domain() }

func (ip *Interpolant) Eval(env *Env) (Field, error) {
	arg, err := ip.arg.Eval(env)
	if err != nil {
		return nil, err
	}
	out := make(Field, len(arg))
	for i, q := range arg {
		v, err := ip.at(q)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (ip *Interpolant) at(q float64) (float64, error) {
	n := len(ip.xs)
	if q < ip.xs[0] {
		switch ip.extrap {
		case ClampExtrapolation:
			return ip.ys[0], nil
		case LinearExtrapolation:
			s := (ip.ys[1] - ip.ys[0]) / (ip.xs[1] - ip.xs[0])
			return ip.ys[0] + s*(q-ip.xs[0]), nil
		default:
			return 0, fmt.Errorf("interpolant %q: query %g below range [%g, %g]", ip.Name, q, ip.xs[0], ip.xs[n-1])
		}
	}
	if q > ip.xs[n-1] {
		switch ip.extrap {
		case ClampExtrapolation:
			return ip.ys[n-1], nil
		case LinearExtrapolation:
			s := (ip.ys[n-1] - ip.ys[n-2]) / (ip.xs[n-1] - ip.xs[n-2])
			return ip.ys[n-1] + s*(q-ip.xs[n-1]), nil
		default:
			return 0, fmt.Errorf("interpolant %q: query %g above range [%g, %g]", ip.Name, q, ip.xs[0], ip.xs[n-1])
		}
	}
	i := sort.SearchFloat64s(ip.xs, q)
	if i > 0 && (i == n || ip.xs[i] != q) {
		i--
	}
	if i == n-1 {
		return ip.ys[n-1], nil
	}
	frac := (q - ip.xs[i]) / (ip.xs[i+1] - ip.xs[i])
	return ip.ys[i] + frac*(ip.ys[i+1]-ip.ys[i]), nil
}

func (ip *Interpolant) Diff(wrt *StateVariable) Expr {
	darg := ip.arg.Diff(wrt)
	if isZero(darg) {
		return Num(0)
	}
	// piecewise-constant slope table, clamped to zero outside the range
	n := len(ip.xs)
	slopes := make([]float64, n)
	for i := 0; i < n-1; i++ {
		slopes[i] = (ip.ys[i+1] - ip.ys[i]) / (ip.xs[i+1] - ip.xs[i])
	}
	slopes[n-1] = slopes[n-2]
	ds := &Interpolant{Name: ip.Name + "'", xs: ip.xs, ys: slopes, arg: ip.arg, extrap: ClampExtrapolation}
	return mustMul(ds, darg)
}

func (ip *Interpolant) Children() []Expr { return []Expr{ip.arg} }

func (ip *Interpolant) String() string {
	return fmt.Sprintf("%s(%s)", ip.Name, ip.arg)
}

// FunctionParameter applies a named closure from the parameter set
// pointwise to a child expression (e.g. an open-circuit potential as a
// function of surface concentration).
type FunctionParameter struct {
	Name  string
	Fn    func(float64) float64
	deriv func(float64) float64
	X     Expr
}

// NewFunctionParameter wraps fn; deriv may be nil, in which case
// differentiation falls back to a central difference.
func NewFunctionParameter(name string, fn, deriv func(float64) float64, x Expr) *FunctionParameter {
	return &FunctionParameter{Name: name, Fn: fn, deriv: deriv, X: x}
}

func (fp *FunctionParameter) Domain() Domain { return fp.X.Domain() }

func (fp *FunctionParameter) Eval(env *Env) (Field, error) {
	x, err := fp.X.Eval(env)
	if err != nil {
		return nil, err
	}
	out := make(Field, len(x))
	for i, v := range x {
		out[i] = fp.Fn(v)
	}
	return out, nil
}

func (fp *FunctionParameter) Diff(wrt *StateVariable) Expr {
	dx := fp.X.Diff(wrt)
	if isZero(dx) {
		return Num(0)
	}
	df := fp.deriv
	if df == nil {
		fn := fp.Fn
		const h = 1e-6
		df = func(v float64) float64 { return (fn(v+h) - fn(v-h)) / (2 * h) }
	}
	outer := &FunctionParameter{Name: fp.Name + "'", Fn: df, X: fp.X}
	return mustMul(outer, dx)
}

func (fp *FunctionParameter) Children() []Expr { return []Expr{fp.X} }
func (fp *FunctionParameter) String() string   { return fmt.Sprintf("%s(%s)", fp.Name, fp.X) }
