// Package storage persists solve results as run directories: one
// metadata.json plus a solution.csv of sampled output series.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/cellsim/internal/solver"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID            string             `json:"id"`
	Model         string             `json:"model"`
	Timestamp     time.Time          `json:"timestamp"`
	Dt            float64            `json:"dt"`
	Duration      float64            `json:"duration"`
	Stepper       string             `json:"stepper"`
	CRate         float64            `json:"c_rate"`
	StepsTaken    int                `json:"steps_taken"`
	Terminated    bool               `json:"terminated"`
	EventName     string             `json:"event_name,omitempty"`
	EventTime     float64            `json:"event_time,omitempty"`
	OutputColumns []string           `json:"output_columns"`
	Metrics       map[string]float64 `json:"metrics"`
}

// Save writes one run directory and returns its ID. Output columns are
// stored in sorted name order so loads are deterministic.
func (s *Store) Save(model, stepper string, dt, duration, cRate float64, result *solver.Result) (string, error) {
	runID := fmt.Sprintf("%s_%d", model, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	columns := make([]string, 0, len(result.Outputs))
	for name := range result.Outputs {
		columns = append(columns, name)
	}
	sort.Strings(columns)

	meta := RunMetadata{
		ID:            runID,
		Model:         model,
		Timestamp:     time.Now(),
		Dt:            dt,
		Duration:      duration,
		Stepper:       stepper,
		CRate:         cRate,
		StepsTaken:    result.StepsTaken,
		Terminated:    result.Terminated,
		EventName:     result.EventName,
		EventTime:     result.EventTime,
		OutputColumns: columns,
		Metrics:       result.Metrics,
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "solution.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	header := append([]string{"time"}, columns...)
	if err := w.Write(header); err != nil {
		return "", err
	}
	for i, t := range result.Times {
		row := make([]string, 0, len(header))
		row = append(row, strconv.FormatFloat(t, 'f', 6, 64))
		for _, name := range columns {
			row = append(row, strconv.FormatFloat(result.Outputs[name][i], 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadSolution reads the sampled series back: times plus one series per
// stored output column.
func (s *Store) LoadSolution(runID string) ([]float64, map[string][]float64, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "solution.csv"))
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) < 1 {
		return nil, nil, fmt.Errorf("solution.csv for %s is empty", runID)
	}

	header := records[0]
	times := make([]float64, 0, len(records)-1)
	outputs := make(map[string][]float64, len(header)-1)
	for _, name := range header[1:] {
		outputs[name] = make([]float64, 0, len(records)-1)
	}

	for _, record := range records[1:] {
		if len(record) != len(header) {
			continue
		}
		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}
		times = append(times, t)
		for j, name := range header[1:] {
			v, err := strconv.ParseFloat(record[j+1], 64)
			if err != nil {
				v = 0
			}
			outputs[name] = append(outputs[name], v)
		}
	}
	return times, outputs, nil
}
