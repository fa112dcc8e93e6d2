package symb

import (
	"errors"
	"math"
	"testing"
)

func TestBroadcastRoundTrip(t *testing.T) {
	env := testEnv(t)

	b, err := NewBroadcast(Num(1.5), WholeCell())
	if err != nil {
		t.Fatalf("broadcast: %v", err)
	}
	f, err := b.Eval(env)
	if err != nil {
		t.Fatalf("eval: %v", err)
	}
	if len(f) != 10 {
		t.Fatalf("expected 10 cells, got %d", len(f))
	}
	for _, v := range f {
		if v != 1.5 {
			t.Fatalf("expected uniform 1.5, got %v", f)
		}
	}

	// averaging the broadcast recovers the scalar
	avg, err := XAverage(b).Eval(env)
	if err != nil {
		t.Fatalf("avg: %v", err)
	}
	if math.Abs(avg.Scalar()-1.5) > 1e-12 {
		t.Errorf("expected 1.5, got %f", avg.Scalar())
	}
}

func TestBroadcastRejectsNonScalar(t *testing.T) {
	v := NewStateVariable(1, "c", Only(NegativeElectrode), 4, Differential)
	_, err := NewBroadcast(v, WholeCell())
	var mismatch *DomainMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected DomainMismatchError, got %v", err)
	}
}

func TestRestrictConcatRoundTrip(t *testing.T) {
	env := testEnv(t)
	v := NewStateVariable(1, "c_e", WholeCell(), 10, Differential)
	field := Field{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	env.Fields[v.ID()] = field

	var parts []Expr
	for _, r := range WholeCell() {
		p, err := Restrict(v, r)
		if err != nil {
			t.Fatalf("restrict %s: %v", r, err)
		}
		parts = append(parts, p)
	}

	neg, err := parts[0].Eval(env)
	if err != nil {
		t.Fatalf("eval: %v", err)
	}
	if len(neg) != 4 || neg[0] != 1 || neg[3] != 4 {
		t.Errorf("unexpected negative slice: %v", neg)
	}
	sep, err := parts[1].Eval(env)
	if err != nil {
		t.Fatalf("eval: %v", err)
	}
	if len(sep) != 2 || sep[0] != 5 {
		t.Errorf("unexpected separator slice: %v", sep)
	}

	joined, err := Concat(parts...)
	if err != nil {
		t.Fatalf("concat: %v", err)
	}
	if !joined.Domain().Equal(WholeCell()) {
		t.Errorf("expected whole-cell domain, got %s", joined.Domain())
	}
	back, err := joined.Eval(env)
	if err != nil {
		t.Fatalf("eval: %v", err)
	}
	for i := range field {
		if back[i] != field[i] {
			t.Fatalf("round trip mismatch at %d: %v", i, back)
		}
	}
}

func TestConcatRejectsOverlap(t *testing.T) {
	a := NewStateVariable(1, "a", Only(NegativeElectrode), 4, Differential)
	b := NewStateVariable(2, "b", Only(NegativeElectrode), 4, Differential)
	_, err := Concat(a, b)
	var mismatch *DomainMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected DomainMismatchError, got %v", err)
	}
}

func TestSurfLinearExtrapolation(t *testing.T) {
	env := testEnv(t)
	v := NewStateVariable(1, "c_s", Only(NegativeParticle), 4, Differential)
	// linear profile c(r) = r over centers 0.125, 0.375, 0.625, 0.875
	env.Fields[v.ID()] = Field{0.125, 0.375, 0.625, 0.875}

	s, err := Surf(v)
	if err != nil {
		t.Fatalf("surf: %v", err)
	}
	f, err := s.Eval(env)
	if err != nil {
		t.Fatalf("eval: %v", err)
	}
	if math.Abs(f.Scalar()-1.0) > 1e-12 {
		t.Errorf("expected surface value 1.0, got %f", f.Scalar())
	}
	if !s.Domain().IsScalar() {
		t.Errorf("surf should be scalar, got %s", s.Domain())
	}
}

func TestSurfRejectsElectrodeDomain(t *testing.T) {
	v := NewStateVariable(1, "c", Only(NegativeElectrode), 4, Differential)
	_, err := Surf(v)
	var mismatch *DomainMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected DomainMismatchError, got %v", err)
	}
}

func TestGradientOfLinearField(t *testing.T) {
	env := NewEnv()
	env.Meshes[NegativeElectrode] = NewUniformMesh(NegativeElectrode, 0, 1, 4, false)
	v := NewStateVariable(1, "c", Only(NegativeElectrode), 4, Differential)
	m := env.Meshes[NegativeElectrode]
	f := make(Field, 4)
	copy(f, m.Centers)
	env.Fields[v.ID()] = f

	g, err := NewGradient(v)
	if err != nil {
		t.Fatalf("grad: %v", err)
	}
	faces, err := g.Eval(env)
	if err != nil {
		t.Fatalf("eval: %v", err)
	}
	if len(faces) != 5 {
		t.Fatalf("expected 5 faces, got %d", len(faces))
	}
	if faces[0] != 0 || faces[4] != 0 {
		t.Errorf("boundary faces should default to zero flux: %v", faces)
	}
	for i := 1; i < 4; i++ {
		if math.Abs(faces[i]-1) > 1e-12 {
			t.Errorf("interior face %d: expected slope 1, got %f", i, faces[i])
		}
	}
}

func TestDivergenceWithBoundaryFlux(t *testing.T) {
	env := NewEnv()
	env.Meshes[NegativeElectrode] = NewUniformMesh(NegativeElectrode, 0, 1, 4, false)
	v := NewStateVariable(1, "c", Only(NegativeElectrode), 4, Differential)
	env.Fields[v.ID()] = Field{0, 0, 0, 0}

	grad, err := NewGradient(v)
	if err != nil {
		t.Fatalf("grad: %v", err)
	}
	// uniform field, outer flux override J: only the last cell sees it
	div, err := NewDivergenceWithFlux(grad, nil, Num(2))
	if err != nil {
		t.Fatalf("div: %v", err)
	}
	cells, err := div.Eval(env)
	if err != nil {
		t.Fatalf("eval: %v", err)
	}
	if len(cells) != 4 {
		t.Fatalf("expected 4 cells, got %d", len(cells))
	}
	for i := 0; i < 3; i++ {
		if cells[i] != 0 {
			t.Errorf("cell %d should be zero: %v", i, cells)
		}
	}
	// (f[4] - f[3]) / w = 2 / 0.25
	if math.Abs(cells[3]-8) > 1e-12 {
		t.Errorf("expected 8 in boundary cell, got %f", cells[3])
	}
}

func TestSphericalDivergenceConservation(t *testing.T) {
	env := testEnv(t)
	v := NewStateVariable(1, "c_s", Only(NegativeParticle), 4, Differential)
	env.Fields[v.ID()] = Field{0.5, 0.5, 0.5, 0.5}

	grad, err := NewGradient(v)
	if err != nil {
		t.Fatalf("grad: %v", err)
	}
	div, err := NewDivergenceWithFlux(grad, nil, Num(-1))
	if err != nil {
		t.Fatalf("div: %v", err)
	}
	cells, err := div.Eval(env)
	if err != nil {
		t.Fatalf("eval: %v", err)
	}

	// volume integral of the divergence equals the boundary flux r^2 J
	m := env.Meshes[NegativeParticle]
	total := 0.0
	for i, c := range cells {
		w := m.Edges[i+1] - m.Edges[i]
		total += c * m.Centers[i] * m.Centers[i] * w
	}
	want := -1.0 // r=1 surface, J=-1
	if math.Abs(total-want) > 1e-12 {
		t.Errorf("expected integrated divergence %f, got %f", want, total)
	}
}

func TestXAverageScalarIdentity(t *testing.T) {
	x := Num(3)
	if XAverage(x) != x {
		t.Error("averaging a scalar should be the identity")
	}
}

func TestXAverageSpherical(t *testing.T) {
	env := testEnv(t)
	v := NewStateVariable(1, "c_s", Only(NegativeParticle), 4, Differential)
	env.Fields[v.ID()] = Field{1, 1, 1, 1}

	f, err := XAverage(v).Eval(env)
	if err != nil {
		t.Fatalf("eval: %v", err)
	}
	if math.Abs(f.Scalar()-1) > 1e-12 {
		t.Errorf("uniform field should average to itself, got %f", f.Scalar())
	}
}
