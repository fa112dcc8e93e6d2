package submodel

import "github.com/san-kum/cellsim/internal/symb"

// ops chains domain-checked expression constructors, capturing the first
// error so equation building reads linearly. Callers must check Err
// before using any result.
type ops struct {
	err error
}

func (o *ops) Err() error { return o.err }

func (o *ops) bin(f func(a, b symb.Expr) (symb.Expr, error), a, b symb.Expr) symb.Expr {
	if o.err != nil {
		return symb.Num(0)
	}
	e, err := f(a, b)
	if err != nil {
		o.err = err
		return symb.Num(0)
	}
	return e
}

func (o *ops) Add(a, b symb.Expr) symb.Expr { return o.bin(symb.Add, a, b) }
func (o *ops) Sub(a, b symb.Expr) symb.Expr { return o.bin(symb.Sub, a, b) }
func (o *ops) Mul(a, b symb.Expr) symb.Expr { return o.bin(symb.Mul, a, b) }
func (o *ops) Div(a, b symb.Expr) symb.Expr { return o.bin(symb.Div, a, b) }

func (o *ops) Broadcast(x symb.Expr, d symb.Domain) symb.Expr {
	if o.err != nil {
		return symb.Num(0)
	}
	e, err := symb.NewBroadcast(x, d)
	if err != nil {
		o.err = err
		return symb.Num(0)
	}
	return e
}

func (o *ops) Restrict(x symb.Expr, r symb.Region) symb.Expr {
	if o.err != nil {
		return symb.Num(0)
	}
	e, err := symb.Restrict(x, r)
	if err != nil {
		o.err = err
		return symb.Num(0)
	}
	return e
}

func (o *ops) Surf(x symb.Expr) symb.Expr {
	if o.err != nil {
		return symb.Num(0)
	}
	e, err := symb.Surf(x)
	if err != nil {
		o.err = err
		return symb.Num(0)
	}
	return e
}

func (o *ops) Concat(xs ...symb.Expr) symb.Expr {
	if o.err != nil {
		return symb.Num(0)
	}
	e, err := symb.Concat(xs...)
	if err != nil {
		o.err = err
		return symb.Num(0)
	}
	return e
}

func (o *ops) Grad(x symb.Expr) symb.Expr {
	if o.err != nil {
		return symb.Num(0)
	}
	e, err := symb.NewGradient(x)
	if err != nil {
		o.err = err
		return symb.Num(0)
	}
	return e
}

func (o *ops) DivFV(flux, inner, outer symb.Expr) symb.Expr {
	if o.err != nil {
		return symb.Num(0)
	}
	e, err := symb.NewDivergenceWithFlux(flux, inner, outer)
	if err != nil {
		o.err = err
		return symb.Num(0)
	}
	return e
}
