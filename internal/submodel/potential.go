package submodel

import (
	"github.com/san-kum/cellsim/internal/model"
	"github.com/san-kum/cellsim/internal/params"
	"github.com/san-kum/cellsim/internal/symb"
)

// Potential post-processes open-circuit potentials and reaction
// overpotentials into named outputs. Variables only, no equations.
type Potential struct {
	params *params.Set
}

func NewPotential(p *params.Set) *Potential {
	return &Potential{params: p}
}

// DerivedOpenCircuitPotentials registers the per-electrode OCPs and the
// open-circuit voltage.
func (pt *Potential) DerivedOpenCircuitPotentials(ocpN, ocpP symb.Expr) (*model.Variables, error) {
	o := &ops{}
	ocv := o.Sub(symb.XAverage(ocpP), symb.XAverage(ocpN))
	if err := o.Err(); err != nil {
		return nil, err
	}
	vars := model.NewVariables()
	vars.Set("Negative electrode open circuit potential", ocpN)
	vars.Set("Positive electrode open circuit potential", ocpP)
	vars.Set("Open circuit voltage", ocv)
	return vars, nil
}

// DerivedReactionOverpotentials registers the per-electrode reaction
// overpotentials and their cell-level difference.
func (pt *Potential) DerivedReactionOverpotentials(etaRN, etaRP symb.Expr) (*model.Variables, error) {
	o := &ops{}
	etaR := o.Sub(symb.XAverage(etaRP), symb.XAverage(etaRN))
	if err := o.Err(); err != nil {
		return nil, err
	}
	vars := model.NewVariables()
	vars.Set("Negative reaction overpotential", etaRN)
	vars.Set("Positive reaction overpotential", etaRP)
	vars.Set("X-averaged reaction overpotential", etaR)
	return vars, nil
}
