package lithium

import (
	"github.com/san-kum/cellsim/internal/geometry"
	"github.com/san-kum/cellsim/internal/model"
	"github.com/san-kum/cellsim/internal/params"
	"github.com/san-kum/cellsim/internal/registry"
	"github.com/san-kum/cellsim/internal/submodel"
	"github.com/san-kum/cellsim/internal/symb"
)

// NewSPM assembles the Single Particle Model. The electrolyte is held
// at its reference concentration, so the cell state is the two particle
// concentration profiles.
func NewSPM(p *params.Set) (*model.Model, error) {
	geom, err := geometry.New("1D macro", "1D micro")
	if err != nil {
		return nil, err
	}
	reg := registry.New()

	csN, err := reg.Declare("c_s_n", symb.Only(symb.NegativeParticle), 20, symb.Differential)
	if err != nil {
		return nil, err
	}
	csP, err := reg.Declare("c_s_p", symb.Only(symb.PositiveParticle), 20, symb.Differential)
	if err != nil {
		return nil, err
	}

	b := model.NewBuilder("Single Particle Model", geom)

	kin := submodel.NewLithiumIonKinetics(p, geom)
	jn, err := kin.HomogeneousInterfacialCurrent(symb.NegativeElectrode)
	if err != nil {
		return nil, err
	}
	jp, err := kin.HomogeneousInterfacialCurrent(symb.PositiveElectrode)
	if err != nil {
		return nil, err
	}

	pn, err := submodel.NewParticleDiffusion(p, geom, symb.NegativeParticle)
	if err != nil {
		return nil, err
	}
	negContrib, err := pn.SetDifferentialSystem(csN, jn, false)
	if err != nil {
		return nil, err
	}
	pp, err := submodel.NewParticleDiffusion(p, geom, symb.PositiveParticle)
	if err != nil {
		return nil, err
	}
	posContrib, err := pp.SetDifferentialSystem(csP, jp, false)
	if err != nil {
		return nil, err
	}
	if err := b.Update(negContrib, posContrib); err != nil {
		return nil, err
	}

	// uniform unit electrolyte concentration, registered for output
	// parity with the electrolyte-resolving models
	ceFixed, err := symb.NewBroadcast(symb.Num(1), symb.WholeCell())
	if err != nil {
		return nil, err
	}
	if err := b.SetVariable("Electrolyte concentration", ceFixed); err != nil {
		return nil, err
	}

	csNsurf, err := symb.Surf(csN)
	if err != nil {
		return nil, err
	}
	csPsurf, err := symb.Surf(csP)
	if err != nil {
		return nil, err
	}

	j0n, err := kin.ExchangeCurrentDensity(symb.Num(1), csNsurf, symb.NegativeElectrode)
	if err != nil {
		return nil, err
	}
	j0p, err := kin.ExchangeCurrentDensity(symb.Num(1), csPsurf, symb.PositiveElectrode)
	if err != nil {
		return nil, err
	}
	jVars, err := kin.DerivedInterfacialCurrents(jn, jp, j0n, j0p)
	if err != nil {
		return nil, err
	}
	if err := b.Update(model.Contribution{Variables: jVars}); err != nil {
		return nil, err
	}

	ocpN, err := p.Function("Negative electrode OCP", csNsurf)
	if err != nil {
		return nil, err
	}
	ocpP, err := p.Function("Positive electrode OCP", csPsurf)
	if err != nil {
		return nil, err
	}
	etaRN, err := kin.InverseButlerVolmer(jn, j0n, symb.NegativeElectrode)
	if err != nil {
		return nil, err
	}
	etaRP, err := kin.InverseButlerVolmer(jp, j0p, symb.PositiveElectrode)
	if err != nil {
		return nil, err
	}

	pot := submodel.NewPotential(p)
	ocpVars, err := pot.DerivedOpenCircuitPotentials(ocpN, ocpP)
	if err != nil {
		return nil, err
	}
	etaVars, err := pot.DerivedReactionOverpotentials(etaRN, etaRP)
	if err != nil {
		return nil, err
	}
	if err := b.Update(model.Contribution{Variables: ocpVars}, model.Contribution{Variables: etaVars}); err != nil {
		return nil, err
	}

	v, err := leadingOrderVoltage(ocpN, ocpP, etaRN, etaRP)
	if err != nil {
		return nil, err
	}
	if err := b.SetVariable("Terminal voltage", v); err != nil {
		return nil, err
	}

	if err := attachVoltageCutoff(b, p); err != nil {
		return nil, err
	}
	return b.Freeze()
}
