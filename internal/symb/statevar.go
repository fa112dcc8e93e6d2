package symb

// Role distinguishes differential unknowns (governed by d/dt equations)
// from algebraic ones (governed by residual constraints).
type Role int

const (
	Differential Role = iota
	Algebraic
)

func (r Role) String() string {
	if r == Algebraic {
		return "algebraic"
	}
	return "differential"
}

// VarID is the handle identifying a declared state variable. Equations
// reference variables by handle; names exist for display only.
type VarID int

// StateVariable is a declared unknown of the model. It is created once
// by the registry and never mutated afterwards.
type StateVariable struct {
	id     VarID
	name   string
	domain Domain
	shape  int
	role   Role
}

// NewStateVariable is used by the variable registry; submodels receive
// handles rather than constructing variables themselves.
func NewStateVariable(id VarID, name string, d Domain, shape int, role Role) *StateVariable {
	return &StateVariable{id: id, name: name, domain: d, shape: shape, role: role}
}

func (v *StateVariable) ID() VarID   { return v.id }
func (v *StateVariable) Name() string { return v.name }
func (v *StateVariable) Shape() int  { return v.shape }
func (v *StateVariable) Role() Role  { return v.role }

func (v *StateVariable) Domain() Domain { return v.domain }

func (v *StateVariable) Eval(env *Env) (Field, error) {
	f, ok := env.Fields[v.id]
	if !ok {
		return nil, &UnresolvedReferenceError{Name: v.name}
	}
	return f, nil
}

func (v *StateVariable) Diff(wrt *StateVariable) Expr {
	if wrt != nil && v.id == wrt.id {
		return Num(1)
	}
	return Num(0)
}

func (v *StateVariable) Children() []Expr { return nil }
func (v *StateVariable) String() string   { return v.name }
