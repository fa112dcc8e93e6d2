package lithium

import (
	"strings"
	"testing"

	"github.com/san-kum/cellsim/internal/params"
)

func TestNewSPM(t *testing.T) {
	m, err := NewSPM(params.LithiumIon())
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	if len(m.Differential()) != 2 {
		t.Errorf("expected 2 differential equations, got %d", len(m.Differential()))
	}
	if len(m.Algebraic()) != 0 {
		t.Errorf("expected no algebraic equations, got %d", len(m.Algebraic()))
	}
	for _, name := range []string{
		"Terminal voltage",
		"Open circuit voltage",
		"Electrolyte concentration",
		"Negative particle surface concentration",
		"Positive particle surface concentration",
	} {
		if _, ok := m.Variable(name); !ok {
			t.Errorf("missing variable %q", name)
		}
	}
}

func TestNewSPMe(t *testing.T) {
	m, err := NewSPMe(params.LithiumIon())
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	if len(m.Differential()) != 3 {
		t.Errorf("expected 3 differential equations, got %d", len(m.Differential()))
	}
	for _, name := range []string{
		"Terminal voltage",
		"Electrolyte concentration",
		"Negative electrolyte concentration",
		"Electrolyte potential",
		"Negative electrode potential",
		"Positive electrode potential",
		"X-averaged reaction overpotential",
	} {
		if _, ok := m.Variable(name); !ok {
			t.Errorf("missing variable %q", name)
		}
	}
}

func TestVoltageCutoffEvent(t *testing.T) {
	m, err := NewSPMe(params.LithiumIon())
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	events := m.Events()
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Name != "Minimum voltage" {
		t.Errorf("expected Minimum voltage event, got %q", events[0].Name)
	}
}

func TestCatalog(t *testing.T) {
	c := NewCatalog()
	names := c.List()
	if len(names) != 2 || names[0] != "spm" || names[1] != "spme" {
		t.Fatalf("unexpected catalog: %v", names)
	}
	m, err := c.Build("spm", params.LithiumIon())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if m.Name() != "Single Particle Model" {
		t.Errorf("unexpected model name %q", m.Name())
	}
}

func TestCatalogUnknownModel(t *testing.T) {
	c := NewCatalog()
	_, err := c.Build("dfn", params.LithiumIon())
	if err == nil || !strings.Contains(err.Error(), "unknown model") {
		t.Fatalf("expected unknown model error, got %v", err)
	}
}
