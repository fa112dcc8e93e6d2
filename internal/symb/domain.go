package symb

import "strings"

// Region names a single spatial region of the cell.
type Region string

const (
	NegativeElectrode Region = "negative electrode"
	Separator         Region = "separator"
	PositiveElectrode Region = "positive electrode"
	NegativeParticle  Region = "negative particle"
	PositiveParticle  Region = "positive particle"
)

// Domain is the ordered set of regions an expression is defined over.
// An empty domain means a spatially uniform (scalar) quantity.
type Domain []Region

// ScalarDomain is the domain of spatially uniform quantities.
var ScalarDomain = Domain{}

// WholeCell spans the three macroscale regions in electrode order.
func WholeCell() Domain {
	return Domain{NegativeElectrode, Separator, PositiveElectrode}
}

func Only(r Region) Domain { return Domain{r} }

func (d Domain) IsScalar() bool { return len(d) == 0 }

func (d Domain) Equal(other Domain) bool {
	if len(d) != len(other) {
		return false
	}
	for i := range d {
		if d[i] != other[i] {
			return false
		}
	}
	return true
}

func (d Domain) Contains(r Region) bool {
	for _, dr := range d {
		if dr == r {
			return true
		}
	}
	return false
}

func (d Domain) String() string {
	if len(d) == 0 {
		return "scalar"
	}
	parts := make([]string, len(d))
	for i, r := range d {
		parts[i] = string(r)
	}
	return strings.Join(parts, " + ")
}

// resolve applies the broadcast rule to a pair of operand domains: equal
// domains combine as-is, a scalar operand adopts the other domain, and
// everything else is a mismatch.
func resolve(op string, a, b Domain) (Domain, error) {
	switch {
	case a.Equal(b):
		return a, nil
	case a.IsScalar():
		return b, nil
	case b.IsScalar():
		return a, nil
	default:
		return nil, &DomainMismatchError{Op: op, Left: a, Right: b}
	}
}
