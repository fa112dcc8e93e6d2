package submodel

import (
	"github.com/san-kum/cellsim/internal/geometry"
	"github.com/san-kum/cellsim/internal/model"
	"github.com/san-kum/cellsim/internal/params"
	"github.com/san-kum/cellsim/internal/registry"
	"github.com/san-kum/cellsim/internal/symb"
)

// Reaction is one electrode's contribution to an electrolyte source
// term: the stoichiometry of the migrating cation and the volumetric
// interfacial current density over that electrode.
type Reaction struct {
	SPlus float64
	AJ    symb.Expr
}

// ReactionSet couples the negative and positive electrode halves of one
// named reaction.
type ReactionSet struct {
	Name string
	Neg  Reaction
	Pos  Reaction
}

// ElectrolyteDiffusion models Stefan-Maxwell diffusion of salt in the
// electrolyte across the whole cell.
type ElectrolyteDiffusion struct {
	params *params.Set
	geom   *geometry.Geometry
}

func NewElectrolyteDiffusion(p *params.Set, g *geometry.Geometry) *ElectrolyteDiffusion {
	return &ElectrolyteDiffusion{params: p, geom: g}
}

// SetDifferentialSystem builds the electrolyte transport equation
//
//	eps dc_e/dt = div(D grad c_e) + (1 - t+) sum(s aj)
//
// with no-flux conditions at both current collectors. Reaction source
// terms are zero over the separator.
func (ed *ElectrolyteDiffusion) SetDifferentialSystem(ce *symb.StateVariable, reactions []ReactionSet) (model.Contribution, error) {
	if !ce.Domain().Equal(symb.WholeCell()) {
		return model.Contribution{}, &symb.DomainMismatchError{
			Op: "electrolyte differential system", Left: ce.Domain(), Right: symb.WholeCell(),
		}
	}
	if err := ed.geom.Check(ce.Domain()); err != nil {
		return model.Contribution{}, err
	}
	diffusivity, err := ed.params.Get("Electrolyte diffusivity")
	if err != nil {
		return model.Contribution{}, err
	}
	tplus, err := ed.params.Scalar("Cation transference number")
	if err != nil {
		return model.Contribution{}, err
	}
	initial, err := ed.params.Get("Initial electrolyte concentration")
	if err != nil {
		return model.Contribution{}, err
	}

	o := &ops{}
	porosity, err := ed.porosity(o)
	if err != nil {
		return model.Contribution{}, err
	}

	divFlux := o.DivFV(o.Grad(ce), nil, nil)
	divFlux = o.Mul(diffusivity, divFlux)

	rhs := divFlux
	for _, rxn := range reactions {
		src := o.Concat(
			o.Mul(symb.Num(rxn.Neg.SPlus), rxn.Neg.AJ),
			o.Broadcast(symb.Num(0), symb.Only(symb.Separator)),
			o.Mul(symb.Num(rxn.Pos.SPlus), rxn.Pos.AJ),
		)
		rhs = o.Add(rhs, o.Mul(symb.Num(1-tplus), src))
	}
	rhs = o.Div(rhs, porosity)

	vars := model.NewVariables()
	vars.Set("Electrolyte concentration", ce)
	orphans, err := registry.Orphans(ce)
	if err != nil {
		return model.Contribution{}, err
	}
	vars.Set("Negative electrolyte concentration", orphans[0])
	vars.Set("Separator electrolyte concentration", orphans[1])
	vars.Set("Positive electrolyte concentration", orphans[2])

	if err := o.Err(); err != nil {
		return model.Contribution{}, err
	}

	return model.Contribution{
		Equations: []model.Equation{{Var: ce, RHS: rhs, Initial: initial}},
		Variables: vars,
	}, nil
}

func (ed *ElectrolyteDiffusion) porosity(o *ops) (symb.Expr, error) {
	names := []struct {
		param  string
		region symb.Region
	}{
		{"Negative electrode porosity", symb.NegativeElectrode},
		{"Separator porosity", symb.Separator},
		{"Positive electrode porosity", symb.PositiveElectrode},
	}
	parts := make([]symb.Expr, 0, len(names))
	for _, n := range names {
		p, err := ed.params.Get(n.param)
		if err != nil {
			return nil, err
		}
		parts = append(parts, o.Broadcast(p, symb.Only(n.region)))
	}
	return o.Concat(parts...), nil
}
