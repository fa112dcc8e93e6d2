package submodel

import (
	"github.com/san-kum/cellsim/internal/geometry"
	"github.com/san-kum/cellsim/internal/model"
	"github.com/san-kum/cellsim/internal/params"
	"github.com/san-kum/cellsim/internal/symb"
)

// OhmicElectrode post-processes solid-phase electrode potentials from
// Ohm's law with the explicit combined leading-order solution. It
// contributes named variables only, no equations.
type OhmicElectrode struct {
	params *params.Set
	geom   *geometry.Geometry
}

func NewOhmicElectrode(p *params.Set, g *geometry.Geometry) *OhmicElectrode {
	return &OhmicElectrode{params: p, geom: g}
}

// NegativePotentialExplicit is the solid potential in the negative
// electrode, grounded at the current collector (x = 0) with the
// quadratic ohmic profile of a uniform reaction rate.
func (oe *OhmicElectrode) NegativePotentialExplicit() (symb.Expr, error) {
	if err := oe.geom.Check(symb.Only(symb.NegativeElectrode)); err != nil {
		return nil, err
	}
	current, err := oe.params.Current()
	if err != nil {
		return nil, err
	}
	sigma, err := oe.params.Get("Negative electrode conductivity")
	if err != nil {
		return nil, err
	}
	ln, err := oe.params.Get("Negative electrode thickness")
	if err != nil {
		return nil, err
	}
	x := symb.NewSpatialVariable(symb.Only(symb.NegativeElectrode))

	o := &ops{}
	// phi_s_n = I x (x - 2 l_n) / (2 sigma_n l_n)
	num := o.Mul(current, o.Mul(x, o.Sub(x, o.Mul(symb.Num(2), ln))))
	den := o.Mul(symb.Num(2), o.Mul(sigma, ln))
	return o.Div(num, den), o.Err()
}

// ExplicitCombined derives the positive electrode potential and the
// terminal voltage from the electrolyte potential, the positive OCP and
// reaction overpotential. It refines the already-registered
// "Terminal voltage" with the full combined expression.
func (oe *OhmicElectrode) ExplicitCombined(phiSN, phiE, ocpP, etaRP symb.Expr) (*model.Variables, error) {
	pos := symb.Only(symb.PositiveElectrode)
	if err := oe.geom.Check(pos); err != nil {
		return nil, err
	}
	current, err := oe.params.Current()
	if err != nil {
		return nil, err
	}
	sigma, err := oe.params.Get("Positive electrode conductivity")
	if err != nil {
		return nil, err
	}
	lp, err := oe.params.Get("Positive electrode thickness")
	if err != nil {
		return nil, err
	}
	x := symb.NewSpatialVariable(pos)

	o := &ops{}
	phiEP := o.Restrict(phiE, symb.PositiveElectrode)
	// ohmic drop through the positive electrode, zero-slope at x = 1
	dx := o.Sub(x, o.Sub(symb.Num(1), lp))
	ohmic := symb.Neg(o.Div(o.Mul(current, o.Mul(dx, dx)),
		o.Mul(symb.Num(2), o.Mul(sigma, lp))))
	phiSP := o.Add(o.Add(phiEP, o.Add(ocpP, etaRP)), ohmic)

	voltage := symb.XAverage(phiSP)
	if err := o.Err(); err != nil {
		return nil, err
	}

	vars := model.NewVariables()
	vars.Set("Negative electrode potential", phiSN)
	vars.Set("Positive electrode potential", phiSP)
	vars.Set("Terminal voltage", voltage)
	return vars, nil
}
