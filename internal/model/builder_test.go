package model

import (
	"testing"

	"github.com/onsi/gomega"

	"github.com/san-kum/cellsim/internal/geometry"
	"github.com/san-kum/cellsim/internal/symb"
)

func testGeometry(t *testing.T) *geometry.Geometry {
	t.Helper()
	g, err := geometry.New("1D macro", "1D micro")
	if err != nil {
		t.Fatalf("geometry: %v", err)
	}
	return g
}

func scalarVar(id symb.VarID, name string) *symb.StateVariable {
	return symb.NewStateVariable(id, name, symb.ScalarDomain, 1, symb.Differential)
}

func governed(v *symb.StateVariable) Contribution {
	return Contribution{
		Equations: []Equation{{Var: v, RHS: symb.Num(0), Initial: symb.Num(1)}},
	}
}

func TestUpdateRoutesByRole(t *testing.T) {
	b := NewBuilder("test", testGeometry(t))

	d := symb.NewStateVariable(1, "d", symb.ScalarDomain, 1, symb.Differential)
	a := symb.NewStateVariable(2, "a", symb.ScalarDomain, 1, symb.Algebraic)

	err := b.Update(Contribution{Equations: []Equation{
		{Var: d, RHS: symb.Num(0), Initial: symb.Num(0)},
		{Var: a, RHS: symb.Num(0), Initial: symb.Num(0)},
	}})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	m, err := b.Freeze()
	if err != nil {
		t.Fatalf("freeze: %v", err)
	}
	if len(m.Differential()) != 1 || len(m.Algebraic()) != 1 {
		t.Errorf("expected 1 differential and 1 algebraic, got %d and %d",
			len(m.Differential()), len(m.Algebraic()))
	}
}

func TestVariableOverrideLastWriterWins(t *testing.T) {
	g := gomega.NewWithT(t)
	b := NewBuilder("test", testGeometry(t))

	leading := symb.Num(3.7)
	refined := symb.Num(3.5)

	first := NewVariables()
	first.Set("Terminal voltage", leading)
	first.Set("Open circuit voltage", symb.Num(4.0))
	second := NewVariables()
	second.Set("Terminal voltage", refined)

	g.Expect(b.Update(Contribution{Variables: first})).To(gomega.Succeed())
	g.Expect(b.Update(Contribution{Variables: second})).To(gomega.Succeed())

	m, err := b.Freeze()
	g.Expect(err).NotTo(gomega.HaveOccurred())

	// the later expression wins, the original position is kept
	got, ok := m.Variable("Terminal voltage")
	g.Expect(ok).To(gomega.BeTrue())
	g.Expect(got).To(gomega.BeIdenticalTo(refined))
	g.Expect(m.VariableNames()).To(gomega.Equal([]string{"Terminal voltage", "Open circuit voltage"}))
}

func TestEventOrderPreserved(t *testing.T) {
	g := gomega.NewWithT(t)
	b := NewBuilder("test", testGeometry(t))

	g.Expect(b.Update(Contribution{
		Events: []Event{{Name: "e1", Expr: symb.Num(1)}},
	})).To(gomega.Succeed())
	g.Expect(b.Update(Contribution{
		Events: []Event{
			{Name: "e2", Expr: symb.Num(1)},
			{Name: "e3", Expr: symb.Num(1)},
		},
	})).To(gomega.Succeed())

	m, err := b.Freeze()
	g.Expect(err).NotTo(gomega.HaveOccurred())

	names := make([]string, 0, 3)
	for _, ev := range m.Events() {
		names = append(names, ev.Name)
	}
	g.Expect(names).To(gomega.Equal([]string{"e1", "e2", "e3"}))
}

func TestDuplicateGoverningEquation(t *testing.T) {
	g := gomega.NewWithT(t)
	b := NewBuilder("test", testGeometry(t))

	v := scalarVar(1, "c_s_n")
	g.Expect(b.Update(governed(v))).To(gomega.Succeed())

	err := b.Update(governed(v))
	g.Expect(err).To(gomega.MatchError(&symb.DuplicateVariableError{Name: "c_s_n"}))

	// a second declaration under the same name is rejected too
	clash := scalarVar(2, "c_s_n")
	err = b.Update(governed(clash))
	g.Expect(err).To(gomega.MatchError(&symb.DuplicateVariableError{Name: "c_s_n"}))
}

func TestFreezeRequiresGoverningEquations(t *testing.T) {
	g := gomega.NewWithT(t)
	b := NewBuilder("test", testGeometry(t))

	v := scalarVar(1, "orphaned")
	vars := NewVariables()
	vars.Set("Output", v)
	g.Expect(b.Update(Contribution{Variables: vars})).To(gomega.Succeed())

	_, err := b.Freeze()
	g.Expect(err).To(gomega.MatchError(&symb.MissingEquationError{Variable: "orphaned"}))
}

func TestFreezeAllowsForwardReferenceWithinBatch(t *testing.T) {
	b := NewBuilder("test", testGeometry(t))

	a := scalarVar(1, "a")
	c := scalarVar(2, "b")

	// a's equation references b, governed later in the same batch
	rhs, err := symb.Add(a, c)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	err = b.Update(
		Contribution{Equations: []Equation{{Var: a, RHS: rhs, Initial: symb.Num(0)}}},
		governed(c),
	)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if _, err := b.Freeze(); err != nil {
		t.Fatalf("freeze: %v", err)
	}
}

func TestFrozenBuilderRejectsMutation(t *testing.T) {
	g := gomega.NewWithT(t)
	b := NewBuilder("test", testGeometry(t))

	_, err := b.Freeze()
	g.Expect(err).NotTo(gomega.HaveOccurred())

	g.Expect(b.Update(governed(scalarVar(1, "late")))).To(
		gomega.MatchError(&symb.FrozenModelError{Op: "update"}))
	g.Expect(b.SetVariable("x", symb.Num(1))).To(
		gomega.MatchError(&symb.FrozenModelError{Op: "set variable"}))
	g.Expect(b.AddEvent(Event{Name: "e", Expr: symb.Num(1)})).To(
		gomega.MatchError(&symb.FrozenModelError{Op: "add event"}))

	_, err = b.Freeze()
	g.Expect(err).To(gomega.MatchError(&symb.FrozenModelError{Op: "freeze"}))
}

func TestModelAccessorsCopy(t *testing.T) {
	b := NewBuilder("test", testGeometry(t))
	v := scalarVar(1, "c")
	if err := b.Update(governed(v)); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := b.AddEvent(Event{Name: "cutoff", Expr: symb.Num(1)}); err != nil {
		t.Fatalf("event: %v", err)
	}
	m, err := b.Freeze()
	if err != nil {
		t.Fatalf("freeze: %v", err)
	}

	events := m.Events()
	events[0].Name = "mutated"
	if m.Events()[0].Name != "cutoff" {
		t.Error("Events should return a copy")
	}

	diff := m.Differential()
	diff[0].RHS = symb.Num(99)
	if m.Differential()[0].RHS == diff[0].RHS {
		t.Error("Differential should return a copy")
	}
}
