package symb

import "fmt"

// Assembly-time errors. Every violation is raised while a model is being
// built; an inconsistent model is never handed to the solver.

// DomainMismatchError reports incompatible operand domains that no
// broadcast rule resolves.
type DomainMismatchError struct {
	Op          string
	Left, Right Domain
}

func (e *DomainMismatchError) Error() string {
	return fmt.Sprintf("domain mismatch in %s: %q vs %q", e.Op, e.Left, e.Right)
}

// DuplicateVariableError reports a state-variable name declared twice in
// the same build pass.
type DuplicateVariableError struct {
	Name string
}

func (e *DuplicateVariableError) Error() string {
	return fmt.Sprintf("state variable %q already declared", e.Name)
}

// UnresolvedReferenceError reports an expression referencing a state
// variable with no value in the evaluation environment.
type UnresolvedReferenceError struct {
	Name string
}

func (e *UnresolvedReferenceError) Error() string {
	return fmt.Sprintf("unresolved reference to state variable %q", e.Name)
}

// UnknownDomainError reports a region name the geometry does not declare.
type UnknownDomainError struct {
	Region Region
}

func (e *UnknownDomainError) Error() string {
	return fmt.Sprintf("unknown domain %q", string(e.Region))
}

// MissingEquationError reports a referenced state variable that received
// no governing equation by freeze time.
type MissingEquationError struct {
	Variable string
}

func (e *MissingEquationError) Error() string {
	return fmt.Sprintf("state variable %q has no governing equation", e.Variable)
}

// FrozenModelError reports a mutation attempt on a frozen model.
type FrozenModelError struct {
	Op string
}

func (e *FrozenModelError) Error() string {
	return fmt.Sprintf("%s: model is frozen", e.Op)
}

// UnknownParameterError reports a parameter name absent from the
// parameter set.
type UnknownParameterError struct {
	Name string
}

func (e *UnknownParameterError) Error() string {
	return fmt.Sprintf("unknown parameter %q", e.Name)
}
