package submodel

import (
	"github.com/san-kum/cellsim/internal/geometry"
	"github.com/san-kum/cellsim/internal/model"
	"github.com/san-kum/cellsim/internal/params"
	"github.com/san-kum/cellsim/internal/symb"
)

// LithiumIonKinetics builds interfacial current densities and
// Butler-Volmer rate expressions for lithium-ion insertion reactions.
type LithiumIonKinetics struct {
	params *params.Set
	geom   *geometry.Geometry
}

func NewLithiumIonKinetics(p *params.Set, g *geometry.Geometry) *LithiumIonKinetics {
	return &LithiumIonKinetics{params: p, geom: g}
}

type electrodeSpec struct {
	thickness string
	prefactor string
	sign      float64
}

var electrodes = map[symb.Region]electrodeSpec{
	symb.NegativeElectrode: {"Negative electrode thickness", "Negative exchange current prefactor", 1},
	symb.PositiveElectrode: {"Positive electrode thickness", "Positive exchange current prefactor", -1},
}

func (k *LithiumIonKinetics) electrode(region symb.Region) (electrodeSpec, error) {
	if err := k.geom.Check(symb.Only(region)); err != nil {
		return electrodeSpec{}, err
	}
	spec, ok := electrodes[region]
	if !ok {
		return electrodeSpec{}, &symb.UnknownDomainError{Region: region}
	}
	return spec, nil
}

// HomogeneousInterfacialCurrent is the uniform current density
// approximation: the applied current spread over the electrode
// thickness, entering the cell at the negative electrode and leaving at
// the positive.
func (k *LithiumIonKinetics) HomogeneousInterfacialCurrent(region symb.Region) (symb.Expr, error) {
	spec, err := k.electrode(region)
	if err != nil {
		return nil, err
	}
	current, err := k.params.Current()
	if err != nil {
		return nil, err
	}
	l, err := k.params.Get(spec.thickness)
	if err != nil {
		return nil, err
	}
	o := &ops{}
	j := o.Div(o.Mul(symb.Num(spec.sign), current), l)
	return j, o.Err()
}

// ExchangeCurrentDensity evaluates the Butler-Volmer exchange current as
// a pure function of electrolyte and particle-surface concentrations.
func (k *LithiumIonKinetics) ExchangeCurrentDensity(ce, csSurf symb.Expr, region symb.Region) (symb.Expr, error) {
	spec, err := k.electrode(region)
	if err != nil {
		return nil, err
	}
	m, err := k.params.Get(spec.prefactor)
	if err != nil {
		return nil, err
	}
	o := &ops{}
	j0 := o.Mul(m, o.Mul(symb.Sqrt(ce),
		o.Mul(symb.Sqrt(csSurf), symb.Sqrt(o.Sub(symb.Num(1), csSurf)))))
	return j0, o.Err()
}

// InverseButlerVolmer recovers the reaction overpotential from a current
// density and its exchange current: eta = 2 asinh(j / 2 j0).
func (k *LithiumIonKinetics) InverseButlerVolmer(j, j0 symb.Expr, region symb.Region) (symb.Expr, error) {
	if _, err := k.electrode(region); err != nil {
		return nil, err
	}
	o := &ops{}
	eta := o.Mul(symb.Num(2), symb.Arcsinh(o.Div(j, o.Mul(symb.Num(2), j0))))
	return eta, o.Err()
}

// DerivedInterfacialCurrents registers the named current-density outputs
// from the already-computed per-electrode expressions. Variables only,
// no equations.
func (k *LithiumIonKinetics) DerivedInterfacialCurrents(jn, jp, j0n, j0p symb.Expr) (*model.Variables, error) {
	neg, sep, pos := symb.Only(symb.NegativeElectrode), symb.Only(symb.Separator), symb.Only(symb.PositiveElectrode)
	o := &ops{}
	broadJN := o.Broadcast(jn, neg)
	broadJP := o.Broadcast(jp, pos)
	whole := o.Concat(broadJN, o.Broadcast(symb.Num(0), sep), broadJP)
	if err := o.Err(); err != nil {
		return nil, err
	}
	vars := model.NewVariables()
	vars.Set("Negative electrode interfacial current density", broadJN)
	vars.Set("Positive electrode interfacial current density", broadJP)
	vars.Set("Interfacial current density", whole)
	vars.Set("Negative electrode exchange current density", j0n)
	vars.Set("Positive electrode exchange current density", j0p)
	return vars, nil
}
