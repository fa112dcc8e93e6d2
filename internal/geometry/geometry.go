// Package geometry declares the named spatial configurations a model can
// be assembled over, and builds the meshes discretization consumes.
package geometry

import (
	"fmt"

	"github.com/san-kum/cellsim/internal/symb"
)

// Canonical dimensionless electrode thicknesses of the default cell.
// The macroscale domain spans [0, 1].
const (
	DefaultLN = 0.3
	DefaultLS = 0.2
	DefaultLP = 0.5
)

// Spec declares one region: its coordinate range, coordinate system and
// default mesh-point hint.
type Spec struct {
	Min, Max  float64
	Points    int
	Spherical bool
}

// Geometry is a named configuration selecting predefined spatial
// domains, e.g. New("1D macro", "1D micro") for a whole-cell 1-D domain
// plus per-particle radial domains.
type Geometry struct {
	names   []string
	order   []symb.Region
	domains map[symb.Region]Spec
}

// New builds a geometry from configuration names. Recognized names:
// "1D macro" (negative electrode, separator, positive electrode) and
// "1D micro" (negative and positive particle radial domains).
func New(names ...string) (*Geometry, error) {
	g := &Geometry{names: names, domains: make(map[symb.Region]Spec)}
	for _, name := range names {
		switch name {
		case "1D macro":
			g.add(symb.NegativeElectrode, Spec{Min: 0, Max: DefaultLN, Points: 20})
			g.add(symb.Separator, Spec{Min: DefaultLN, Max: DefaultLN + DefaultLS, Points: 10})
			g.add(symb.PositiveElectrode, Spec{Min: DefaultLN + DefaultLS, Max: 1, Points: 20})
		case "1D micro":
			g.add(symb.NegativeParticle, Spec{Min: 0, Max: 1, Points: 20, Spherical: true})
			g.add(symb.PositiveParticle, Spec{Min: 0, Max: 1, Points: 20, Spherical: true})
		default:
			return nil, fmt.Errorf("unknown geometry %q", name)
		}
	}
	return g, nil
}

func (g *Geometry) add(r symb.Region, s Spec) {
	if _, ok := g.domains[r]; !ok {
		g.order = append(g.order, r)
	}
	g.domains[r] = s
}

func (g *Geometry) Names() []string { return g.names }

// Regions lists the declared regions in declaration order.
func (g *Geometry) Regions() []symb.Region { return g.order }

func (g *Geometry) Spec(r symb.Region) (Spec, error) {
	s, ok := g.domains[r]
	if !ok {
		return Spec{}, &symb.UnknownDomainError{Region: r}
	}
	return s, nil
}

// Check validates that every region of a domain is declared.
func (g *Geometry) Check(d symb.Domain) error {
	for _, r := range d {
		if _, ok := g.domains[r]; !ok {
			return &symb.UnknownDomainError{Region: r}
		}
	}
	return nil
}

// MeshSpec overrides the per-region mesh-point hints; zero keeps the
// geometry default.
type MeshSpec map[symb.Region]int

// Meshes builds one finite-volume mesh per declared region.
func (g *Geometry) Meshes(spec MeshSpec) (map[symb.Region]symb.Mesh, error) {
	out := make(map[symb.Region]symb.Mesh, len(g.order))
	for _, r := range g.order {
		s := g.domains[r]
		n := s.Points
		if spec != nil && spec[r] > 0 {
			n = spec[r]
		}
		if n < 2 {
			return nil, fmt.Errorf("mesh for %q needs at least 2 points, got %d", r, n)
		}
		out[r] = symb.NewUniformMesh(r, s.Min, s.Max, n, s.Spherical)
	}
	return out, nil
}
