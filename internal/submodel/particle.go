package submodel

import (
	"github.com/san-kum/cellsim/internal/geometry"
	"github.com/san-kum/cellsim/internal/model"
	"github.com/san-kum/cellsim/internal/params"
	"github.com/san-kum/cellsim/internal/symb"
)

type particleSpec struct {
	timescale string
	area      string
	initial   string
	prefix    string
}

var particles = map[symb.Region]particleSpec{
	symb.NegativeParticle: {
		timescale: "Negative particle diffusion timescale",
		area:      "Negative surface area density",
		initial:   "Initial negative particle concentration",
		prefix:    "Negative particle",
	},
	symb.PositiveParticle: {
		timescale: "Positive particle diffusion timescale",
		area:      "Positive surface area density",
		initial:   "Initial positive particle concentration",
		prefix:    "Positive particle",
	},
}

// ParticleDiffusion models Fickian diffusion in a representative
// spherical particle of one electrode.
type ParticleDiffusion struct {
	params *params.Set
	geom   *geometry.Geometry
	region symb.Region
	spec   particleSpec
}

func NewParticleDiffusion(p *params.Set, g *geometry.Geometry, region symb.Region) (*ParticleDiffusion, error) {
	spec, ok := particles[region]
	if !ok {
		return nil, &symb.UnknownDomainError{Region: region}
	}
	if err := g.Check(symb.Only(region)); err != nil {
		return nil, err
	}
	return &ParticleDiffusion{params: p, geom: g, region: region, spec: spec}, nil
}

// SetDifferentialSystem builds the governing equation
//
//	dc/dt = (1/C) div(grad c)
//
// with the interfacial current entering as the outer boundary flux.
// When broadcast is true a scalar source is expanded over the particle
// domain; a non-scalar source is reduced to its x-average, since the
// representative particle sees one uniform current.
func (pd *ParticleDiffusion) SetDifferentialSystem(c *symb.StateVariable, source symb.Expr, broadcast bool) (model.Contribution, error) {
	if !c.Domain().Equal(symb.Only(pd.region)) {
		return model.Contribution{}, &symb.DomainMismatchError{
			Op: "particle differential system", Left: c.Domain(), Right: symb.Only(pd.region),
		}
	}
	timescale, err := pd.params.Get(pd.spec.timescale)
	if err != nil {
		return model.Contribution{}, err
	}
	area, err := pd.params.Get(pd.spec.area)
	if err != nil {
		return model.Contribution{}, err
	}
	initial, err := pd.params.Get(pd.spec.initial)
	if err != nil {
		return model.Contribution{}, err
	}

	src := source
	if !src.Domain().IsScalar() {
		src = symb.XAverage(src)
	}

	o := &ops{}
	// outer flux: grad c at the surface balances the interfacial current
	outer := symb.Neg(o.Div(o.Mul(timescale, src), area))
	rhs := o.Div(o.DivFV(o.Grad(c), nil, outer), timescale)

	vars := model.NewVariables()
	vars.Set(pd.spec.prefix+" concentration", c)
	surf := o.Surf(c)
	vars.Set(pd.spec.prefix+" surface concentration", surf)
	if broadcast {
		vars.Set(pd.spec.prefix+" boundary source", o.Broadcast(src, c.Domain()))
	}
	if err := o.Err(); err != nil {
		return model.Contribution{}, err
	}

	return model.Contribution{
		Equations: []model.Equation{{Var: c, RHS: rhs, Initial: initial}},
		Variables: vars,
	}, nil
}
