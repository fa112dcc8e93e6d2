package symb

import (
	"math"
	"testing"
)

func TestEnvSize(t *testing.T) {
	env := testEnv(t)

	n, err := env.Size(ScalarDomain)
	if err != nil || n != 1 {
		t.Errorf("scalar size: %d, %v", n, err)
	}
	n, err = env.Size(WholeCell())
	if err != nil || n != 10 {
		t.Errorf("whole cell size: %d, %v", n, err)
	}
	_, err = env.Size(Only("bogus"))
	if err == nil {
		t.Error("expected unknown domain error")
	}
}

func TestCompositeMeshDropsInterfaceEdges(t *testing.T) {
	env := testEnv(t)
	m, err := env.CompositeMesh(WholeCell())
	if err != nil {
		t.Fatalf("composite: %v", err)
	}
	// 4 + 2 + 4 cells share two interface edges
	if m.Cells() != 10 {
		t.Errorf("expected 10 cells, got %d", m.Cells())
	}
	if len(m.Edges) != 11 {
		t.Errorf("expected 11 edges, got %d", len(m.Edges))
	}
	for i := 1; i < len(m.Edges); i++ {
		if m.Edges[i] <= m.Edges[i-1] {
			t.Fatalf("edges not strictly increasing: %v", m.Edges)
		}
	}
	if m.Edges[0] != 0 || math.Abs(m.Edges[10]-1) > 1e-12 {
		t.Errorf("expected span [0, 1], got [%f, %f]", m.Edges[0], m.Edges[10])
	}
}

func TestFieldValidity(t *testing.T) {
	if !(Field{1, 2, 3}).IsValid() {
		t.Error("finite field should be valid")
	}
	if (Field{1, math.NaN()}).IsValid() {
		t.Error("NaN field should be invalid")
	}
	if (Field{math.Inf(1)}).IsValid() {
		t.Error("Inf field should be invalid")
	}
}
