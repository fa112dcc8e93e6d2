// Package lithium assembles complete lithium-ion cell models from the
// physics submodels, in their fixed dependency order: interfacial
// current, particle transport, electrolyte transport, then potential
// post-processing.
package lithium

import (
	"github.com/san-kum/cellsim/internal/geometry"
	"github.com/san-kum/cellsim/internal/model"
	"github.com/san-kum/cellsim/internal/params"
	"github.com/san-kum/cellsim/internal/registry"
	"github.com/san-kum/cellsim/internal/submodel"
	"github.com/san-kum/cellsim/internal/symb"
)

// NewSPMe assembles the Single Particle Model with electrolyte.
func NewSPMe(p *params.Set) (*model.Model, error) {
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
	ce, err := reg.Declare("c_e", symb.WholeCell(), 50, symb.Differential)
	if err != nil {
		return nil, err
	}

	b := model.NewBuilder("Single Particle Model with electrolyte", geom)

	// interfacial current density
	kin := submodel.NewLithiumIonKinetics(p, geom)
	jn, err := kin.HomogeneousInterfacialCurrent(symb.NegativeElectrode)
	if err != nil {
		return nil, err
	}
	jp, err := kin.HomogeneousInterfacialCurrent(symb.PositiveElectrode)
	if err != nil {
		return nil, err
	}

	// particle transport
	pn, err := submodel.NewParticleDiffusion(p, geom, symb.NegativeParticle)
	if err != nil {
		return nil, err
	}
	negContrib, err := pn.SetDifferentialSystem(csN, jn, true)
	if err != nil {
		return nil, err
	}
	pp, err := submodel.NewParticleDiffusion(p, geom, symb.PositiveParticle)
	if err != nil {
		return nil, err
	}
	posContrib, err := pp.SetDifferentialSystem(csP, jp, true)
	if err != nil {
		return nil, err
	}

	// electrolyte transport, driven by the volumetric reaction currents
	reactions, err := mainReaction(p, jn, jp)
	if err != nil {
		return nil, err
	}
	ed := submodel.NewElectrolyteDiffusion(p, geom)
	ceContrib, err := ed.SetDifferentialSystem(ce, reactions)
	if err != nil {
		return nil, err
	}

	if err := b.Update(negContrib, posContrib, ceContrib); err != nil {
		return nil, err
	}

	// post-processing: exchange currents, overpotentials, potentials
	orphans, err := registry.Orphans(ce)
	if err != nil {
		return nil, err
	}
	ceN, ceP := orphans[0], orphans[2]
	csNsurf, err := symb.Surf(csN)
	if err != nil {
		return nil, err
	}
	csPsurf, err := symb.Surf(csP)
	if err != nil {
		return nil, err
	}

	j0n, err := kin.ExchangeCurrentDensity(ceN, csNsurf, symb.NegativeElectrode)
	if err != nil {
		return nil, err
	}
	j0p, err := kin.ExchangeCurrentDensity(ceP, csPsurf, symb.PositiveElectrode)
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

	// leading-order terminal voltage, refined below by the electrode
	// post-processing pass
	v0, err := leadingOrderVoltage(ocpN, ocpP, etaRN, etaRP)
	if err != nil {
		return nil, err
	}
	if err := b.SetVariable("Terminal voltage", v0); err != nil {
		return nil, err
	}

	// electrode and electrolyte potentials
	electrode := submodel.NewOhmicElectrode(p, geom)
	phiSN, err := electrode.NegativePotentialExplicit()
	if err != nil {
		return nil, err
	}
	elCurrent := submodel.NewElectrolyteCurrent(p, geom)
	elVars, err := elCurrent.ExplicitCombined(ocpN, etaRN, ce, phiSN)
	if err != nil {
		return nil, err
	}
	phiE, ok := elVars.Get("Electrolyte potential")
	if !ok {
		return nil, &symb.UnresolvedReferenceError{Name: "Electrolyte potential"}
	}
	elecVars, err := electrode.ExplicitCombined(phiSN, phiE, ocpP, etaRP)
	if err != nil {
		return nil, err
	}
	if err := b.Update(model.Contribution{Variables: elVars}, model.Contribution{Variables: elecVars}); err != nil {
		return nil, err
	}

	if err := attachVoltageCutoff(b, p); err != nil {
		return nil, err
	}
	return b.Freeze()
}

// mainReaction builds the volumetric interfacial current source terms
// (a j) for the main insertion reaction over each electrode.
func mainReaction(p *params.Set, jn, jp symb.Expr) ([]submodel.ReactionSet, error) {
	an, err := p.Get("Negative surface area density")
	if err != nil {
		return nil, err
	}
	ap, err := p.Get("Positive surface area density")
	if err != nil {
		return nil, err
	}
	ajN, err := scaledBroadcast(an, jn, symb.NegativeElectrode)
	if err != nil {
		return nil, err
	}
	ajP, err := scaledBroadcast(ap, jp, symb.PositiveElectrode)
	if err != nil {
		return nil, err
	}
	return []submodel.ReactionSet{{
		Name: "main",
		Neg:  submodel.Reaction{SPlus: 1, AJ: ajN},
		Pos:  submodel.Reaction{SPlus: 1, AJ: ajP},
	}}, nil
}

func scaledBroadcast(a, j symb.Expr, region symb.Region) (symb.Expr, error) {
	aj, err := symb.Mul(a, j)
	if err != nil {
		return nil, err
	}
	return symb.NewBroadcast(aj, symb.Only(region))
}

func leadingOrderVoltage(ocpN, ocpP, etaRN, etaRP symb.Expr) (symb.Expr, error) {
	ocv, err := symb.Sub(symb.XAverage(ocpP), symb.XAverage(ocpN))
	if err != nil {
		return nil, err
	}
	etaR, err := symb.Sub(symb.XAverage(etaRP), symb.XAverage(etaRN))
	if err != nil {
		return nil, err
	}
	return symb.Add(ocv, etaR)
}

// attachVoltageCutoff terminates the simulation when the terminal
// voltage reaches the low cutoff.
func attachVoltageCutoff(b *model.Builder, p *params.Set) error {
	voltage, ok := b.Variable("Terminal voltage")
	if !ok {
		return &symb.UnresolvedReferenceError{Name: "Terminal voltage"}
	}
	cutoff, err := p.Get("Voltage low cut")
	if err != nil {
		return err
	}
	expr, err := symb.Sub(voltage, cutoff)
	if err != nil {
		return err
	}
	return b.AddEvent(model.Event{Name: "Minimum voltage", Expr: expr})
}
