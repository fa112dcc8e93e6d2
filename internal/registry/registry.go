// Package registry declares model state variables and hands out the
// handles equations reference them by. Names exist for display and
// diagnostics; the handle is the primary reference.
package registry

import "github.com/san-kum/cellsim/internal/symb"

type Registry struct {
	next   symb.VarID
	byName map[string]*symb.StateVariable
	order  []*symb.StateVariable
}

func New() *Registry {
	return &Registry{byName: make(map[string]*symb.StateVariable)}
}

// Declare registers a new state variable. Declaring a name twice in the
// same build pass fails with symb.DuplicateVariableError.
func (r *Registry) Declare(name string, d symb.Domain, shape int, role symb.Role) (*symb.StateVariable, error) {
	if _, ok := r.byName[name]; ok {
		return nil, &symb.DuplicateVariableError{Name: name}
	}
	v := symb.NewStateVariable(r.next, name, d, shape, role)
	r.next++
	r.byName[name] = v
	r.order = append(r.order, v)
	return v, nil
}

// Lookup resolves a display name; for diagnostics only.
func (r *Registry) Lookup(name string) (*symb.StateVariable, bool) {
	v, ok := r.byName[name]
	return v, ok
}

// Variables lists declarations in insertion order.
func (r *Registry) Variables() []*symb.StateVariable {
	out := make([]*symb.StateVariable, len(r.order))
	copy(out, r.order)
	return out
}

// Orphans splits a composite-domain expression into its per-region
// restrictions, in domain order. Electrolyte quantities live on the
// whole cell but interfacial submodels need per-electrode slices.
func Orphans(x symb.Expr) ([]symb.Expr, error) {
	d := x.Domain()
	if len(d) < 2 {
		return nil, &symb.DomainMismatchError{Op: "orphans", Left: d, Right: symb.WholeCell()}
	}
	out := make([]symb.Expr, 0, len(d))
	for _, region := range d {
		o, err := symb.Restrict(x, region)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, nil
}
