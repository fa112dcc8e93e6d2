package export

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/cellsim/internal/solver"
)

type RunData struct {
	Model      string               `json:"model"`
	Stepper    string               `json:"stepper"`
	Dt         float64              `json:"dt"`
	Duration   float64              `json:"duration"`
	Steps      int                  `json:"steps"`
	Terminated bool                 `json:"terminated"`
	EventName  string               `json:"event_name,omitempty"`
	EventTime  float64              `json:"event_time,omitempty"`
	Times      []float64            `json:"times"`
	Outputs    map[string][]float64 `json:"outputs"`
	Metrics    map[string]float64   `json:"metrics"`
}

func writeJSON(w io.Writer, model, stepper string, dt, duration float64, result *solver.Result) error {
	data := RunData{
		Model:      model,
		Stepper:    stepper,
		Dt:         dt,
		Duration:   duration,
		Steps:      result.StepsTaken,
		Terminated: result.Terminated,
		EventName:  result.EventName,
		EventTime:  result.EventTime,
		Times:      result.Times,
		Outputs:    result.Outputs,
		Metrics:    result.Metrics,
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func ExportJSON(path, model, stepper string, dt, duration float64, result *solver.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return writeJSON(file, model, stepper, dt, duration, result)
}

func ExportJSONStdout(model, stepper string, dt, duration float64, result *solver.Result) error {
	return writeJSON(os.Stdout, model, stepper, dt, duration, result)
}
