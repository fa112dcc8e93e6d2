package params

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/cellsim/internal/symb"
)

func TestScalarLookup(t *testing.T) {
	p := LithiumIon()
	v, err := p.Scalar("Cation transference number")
	if err != nil {
		t.Fatalf("scalar: %v", err)
	}
	if v != 0.4 {
		t.Errorf("expected 0.4, got %f", v)
	}
}

func TestUnknownParameter(t *testing.T) {
	p := LithiumIon()
	_, err := p.Scalar("Imaginary parameter")
	var unknown *symb.UnknownParameterError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownParameterError, got %v", err)
	}
	if unknown.Name != "Imaginary parameter" {
		t.Errorf("expected name in error, got %s", unknown.Name)
	}
	if _, err := p.Get("Imaginary parameter"); err == nil {
		t.Error("Get should fail for unknown names too")
	}
	if _, err := p.Function("Imaginary OCP", symb.Num(0.5)); err == nil {
		t.Error("Function should fail for unknown names")
	}
}

func TestConstantCurrent(t *testing.T) {
	p := LithiumIon()
	p.SetScalar("Current [C-rate]", 2.0)
	cur, err := p.Current()
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	f, err := cur.Eval(symb.NewEnv())
	if err != nil {
		t.Fatalf("eval: %v", err)
	}
	if f.Scalar() != 2.0 {
		t.Errorf("expected 2.0, got %f", f.Scalar())
	}
}

func TestDriveCycleCurrent(t *testing.T) {
	p := LithiumIon()
	p.SetCurrentProfile([]float64{0, 1, 2}, []float64{1, 3, 1})
	cur, err := p.Current()
	if err != nil {
		t.Fatalf("current: %v", err)
	}

	env := symb.NewEnv()
	env.T = 0.5
	f, err := cur.Eval(env)
	if err != nil {
		t.Fatalf("eval: %v", err)
	}
	if math.Abs(f.Scalar()-2.0) > 1e-12 {
		t.Errorf("expected interpolated 2.0, got %f", f.Scalar())
	}

	// past the profile end the boundary value holds
	env.T = 10
	f, err = cur.Eval(env)
	if err != nil {
		t.Fatalf("eval: %v", err)
	}
	if f.Scalar() != 1.0 {
		t.Errorf("expected clamped 1.0, got %f", f.Scalar())
	}
}

func TestOpenCircuitPotentialFunction(t *testing.T) {
	p := LithiumIon()
	ocp, err := p.Function("Positive electrode OCP", symb.Num(0.6))
	if err != nil {
		t.Fatalf("function: %v", err)
	}
	f, err := ocp.Eval(symb.NewEnv())
	if err != nil {
		t.Fatalf("eval: %v", err)
	}
	want := 4.25 - 0.5*0.6 - 0.05*math.Exp(10*(0.6-1))
	if math.Abs(f.Scalar()-want) > 1e-9 {
		t.Errorf("expected %f, got %f", want, f.Scalar())
	}
}

func TestCloneIsIndependent(t *testing.T) {
	base := LithiumIon()
	c := base.Clone()
	c.SetScalar("Cation transference number", 0.9)

	v, err := base.Scalar("Cation transference number")
	if err != nil {
		t.Fatalf("scalar: %v", err)
	}
	if v != 0.4 {
		t.Errorf("clone mutation leaked into base: %f", v)
	}
}

func TestLoadOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "params.yaml")
	data := []byte(`name: custom
scalars:
  "Cation transference number": 0.38
current_profile:
  times: [0, 1]
  currents: [0.5, 1.5]
`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	p, err := Load(path, LithiumIon())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if p.Name() != "custom" {
		t.Errorf("expected name custom, got %s", p.Name())
	}
	v, err := p.Scalar("Cation transference number")
	if err != nil {
		t.Fatalf("scalar: %v", err)
	}
	if v != 0.38 {
		t.Errorf("expected override 0.38, got %f", v)
	}

	// untouched parameters keep their defaults
	v, err = p.Scalar("Separator porosity")
	if err != nil {
		t.Fatalf("scalar: %v", err)
	}
	if v != 1.0 {
		t.Errorf("expected default 1.0, got %f", v)
	}

	cur, err := p.Current()
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	env := symb.NewEnv()
	env.T = 0.5
	f, err := cur.Eval(env)
	if err != nil {
		t.Fatalf("eval: %v", err)
	}
	if math.Abs(f.Scalar()-1.0) > 1e-12 {
		t.Errorf("expected profile current 1.0, got %f", f.Scalar())
	}
}
