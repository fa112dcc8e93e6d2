package geometry

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/cellsim/internal/symb"
)

func TestNewMacroMicro(t *testing.T) {
	g, err := New("1D macro", "1D micro")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	regions := g.Regions()
	if len(regions) != 5 {
		t.Fatalf("expected 5 regions, got %d", len(regions))
	}
	if regions[0] != symb.NegativeElectrode || regions[4] != symb.PositiveParticle {
		t.Errorf("unexpected region order: %v", regions)
	}

	spec, err := g.Spec(symb.NegativeParticle)
	if err != nil {
		t.Fatalf("spec: %v", err)
	}
	if !spec.Spherical {
		t.Error("particle domains should be spherical")
	}

	spec, err = g.Spec(symb.Separator)
	if err != nil {
		t.Fatalf("spec: %v", err)
	}
	if spec.Min != DefaultLN || math.Abs(spec.Max-(DefaultLN+DefaultLS)) > 1e-12 {
		t.Errorf("separator spans [%f, %f]", spec.Min, spec.Max)
	}
}

func TestNewUnknownName(t *testing.T) {
	if _, err := New("2D pouch"); err == nil {
		t.Error("expected error for unknown geometry name")
	}
}

func TestCheckUnknownRegion(t *testing.T) {
	g, err := New("1D macro")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	err = g.Check(symb.Only(symb.NegativeParticle))
	var unknown *symb.UnknownDomainError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownDomainError, got %v", err)
	}
	if unknown.Region != symb.NegativeParticle {
		t.Errorf("expected negative particle, got %s", unknown.Region)
	}
}

func TestMeshesOverride(t *testing.T) {
	g, err := New("1D macro")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	meshes, err := g.Meshes(MeshSpec{symb.Separator: 5})
	if err != nil {
		t.Fatalf("meshes: %v", err)
	}
	if meshes[symb.Separator].Cells() != 5 {
		t.Errorf("expected 5 separator cells, got %d", meshes[symb.Separator].Cells())
	}
	if meshes[symb.NegativeElectrode].Cells() != 20 {
		t.Errorf("expected default 20 cells, got %d", meshes[symb.NegativeElectrode].Cells())
	}
}

func TestMeshesRejectsTooFewPoints(t *testing.T) {
	g, err := New("1D macro")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if _, err := g.Meshes(MeshSpec{symb.Separator: 1}); err == nil {
		t.Error("expected error for single-point mesh")
	}
}
