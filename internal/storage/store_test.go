package storage

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/cellsim/internal/solver"
)

func sampleResult() *solver.Result {
	return &solver.Result{
		Times: []float64{0, 0.5, 1.0},
		Outputs: map[string][]float64{
			"Terminal voltage":    {3.8, 3.5, 3.2},
			"Open circuit voltage": {3.9, 3.7, 3.5},
		},
		Metrics:    map[string]float64{"min_voltage": 3.2},
		StepsTaken: 2,
		Terminated: true,
		EventName:  "Minimum voltage",
		EventTime:  1.0,
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := New(t.TempDir())
	if err := s.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}

	runID, err := s.Save("spme", "rk4", 0.5, 1.0, 1.0, sampleResult())
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	meta, err := s.Load(runID)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if meta.ID != runID || meta.Model != "spme" || meta.Stepper != "rk4" {
		t.Errorf("metadata mismatch: %+v", meta)
	}
	if !meta.Terminated || meta.EventName != "Minimum voltage" || meta.EventTime != 1.0 {
		t.Errorf("termination not preserved: %+v", meta)
	}
	if meta.Metrics["min_voltage"] != 3.2 {
		t.Errorf("metrics not preserved: %v", meta.Metrics)
	}

	// columns come back sorted
	want := []string{"Open circuit voltage", "Terminal voltage"}
	if len(meta.OutputColumns) != 2 || meta.OutputColumns[0] != want[0] || meta.OutputColumns[1] != want[1] {
		t.Errorf("expected sorted columns %v, got %v", want, meta.OutputColumns)
	}
}

func TestLoadSolution(t *testing.T) {
	s := New(t.TempDir())
	if err := s.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}
	runID, err := s.Save("spm", "euler", 0.5, 1.0, 2.0, sampleResult())
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	times, outputs, err := s.LoadSolution(runID)
	if err != nil {
		t.Fatalf("load solution: %v", err)
	}
	if len(times) != 3 || times[1] != 0.5 {
		t.Fatalf("unexpected times %v", times)
	}
	v, ok := outputs["Terminal voltage"]
	if !ok || len(v) != 3 {
		t.Fatalf("missing voltage series: %v", outputs)
	}
	if math.Abs(v[2]-3.2) > 1e-9 {
		t.Errorf("expected 3.2, got %f", v[2])
	}
}

func TestFileStructure(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)
	if err := s.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}
	runID, err := s.Save("spme", "rk4", 0.5, 1.0, 1.0, sampleResult())
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	for _, name := range []string{"metadata.json", "solution.csv"} {
		if _, err := os.Stat(filepath.Join(dir, runID, name)); err != nil {
			t.Errorf("missing %s: %v", name, err)
		}
	}
}

func TestListEmptyAndPopulated(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "does-not-exist"))
	runs, err := s.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}

	s = New(t.TempDir())
	if err := s.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}
	if _, err := s.Save("spm", "rk4", 0.5, 1.0, 1.0, sampleResult()); err != nil {
		t.Fatalf("save: %v", err)
	}
	runs, err = s.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(runs) != 1 || runs[0].Model != "spm" {
		t.Errorf("unexpected runs: %+v", runs)
	}
}

func TestLoadUnknownRun(t *testing.T) {
	s := New(t.TempDir())
	if _, err := s.Load("missing_0"); err == nil {
		t.Error("expected error for unknown run")
	}
}
