package submodel

import (
	"github.com/san-kum/cellsim/internal/geometry"
	"github.com/san-kum/cellsim/internal/model"
	"github.com/san-kum/cellsim/internal/params"
	"github.com/san-kum/cellsim/internal/symb"
)

// ElectrolyteCurrent post-processes the electrolyte potential from the
// MacInnes equation with the explicit combined leading-order solution.
// Variables only, no equations.
type ElectrolyteCurrent struct {
	params *params.Set
	geom   *geometry.Geometry
}

func NewElectrolyteCurrent(p *params.Set, g *geometry.Geometry) *ElectrolyteCurrent {
	return &ElectrolyteCurrent{params: p, geom: g}
}

// ExplicitCombined derives the electrolyte potential across the whole
// cell, referenced to the negative electrode reaction:
//
//	phi_e = -ocp_n - eta_r_n + 2 (1 - t+) (log c_e - log c_e_n_avg)
//
// The returned variables include "Electrolyte potential", which later
// electrode post-processing consumes.
func (ec *ElectrolyteCurrent) ExplicitCombined(ocpN, etaRN, ce, phiSN symb.Expr) (*model.Variables, error) {
	whole := symb.WholeCell()
	if err := ec.geom.Check(whole); err != nil {
		return nil, err
	}
	tplus, err := ec.params.Scalar("Cation transference number")
	if err != nil {
		return nil, err
	}

	o := &ops{}
	ref := symb.Neg(o.Add(symb.XAverage(ocpN), symb.XAverage(etaRN)))
	ref = o.Add(ref, symb.XAverage(phiSN))

	logCE := symb.Log(ce)
	logRef := symb.XAverage(o.Restrict(logCE, symb.NegativeElectrode))
	conc := o.Mul(symb.Num(2*(1-tplus)), o.Sub(logCE, logRef))

	phiE := o.Add(o.Broadcast(ref, whole), conc)
	if err := o.Err(); err != nil {
		return nil, err
	}

	o2 := &ops{}
	etaE := o2.Sub(
		symb.XAverage(o2.Restrict(phiE, symb.PositiveElectrode)),
		symb.XAverage(o2.Restrict(phiE, symb.NegativeElectrode)),
	)
	if err := o2.Err(); err != nil {
		return nil, err
	}

	vars := model.NewVariables()
	vars.Set("Electrolyte potential", phiE)
	vars.Set("X-averaged concentration overpotential", etaE)
	return vars, nil
}
