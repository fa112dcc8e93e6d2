package solver

import "math"

// Metric accumulates a summary statistic over the sampled outputs of a
// solve. Observe receives the requested named outputs at each sample.
type Metric interface {
	Name() string
	Observe(t float64, outputs map[string]float64)
	Value() float64
	Reset()
}

// DischargedCapacity integrates the applied current over time.
type DischargedCapacity struct {
	current  float64
	lastT    float64
	capacity float64
	samples  int
}

func NewDischargedCapacity(current float64) *DischargedCapacity {
	return &DischargedCapacity{current: current}
}

func (d *DischargedCapacity) Name() string { return "discharged_capacity" }

func (d *DischargedCapacity) Observe(t float64, outputs map[string]float64) {
	if d.samples > 0 {
		d.capacity += d.current * (t - d.lastT)
	}
	d.lastT = t
	d.samples++
}

func (d *DischargedCapacity) Value() float64 { return d.capacity }

func (d *DischargedCapacity) Reset() {
	d.capacity = 0
	d.lastT = 0
	d.samples = 0
}

// MinVoltage tracks the lowest terminal voltage seen.
type MinVoltage struct {
	min     float64
	samples int
}

func NewMinVoltage() *MinVoltage { return &MinVoltage{min: math.Inf(1)} }

func (m *MinVoltage) Name() string { return "min_voltage" }

func (m *MinVoltage) Observe(t float64, outputs map[string]float64) {
	v, ok := outputs["Terminal voltage"]
	if !ok {
		return
	}
	if v < m.min {
		m.min = v
	}
	m.samples++
}

func (m *MinVoltage) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.min
}

func (m *MinVoltage) Reset() {
	m.min = math.Inf(1)
	m.samples = 0
}

// MeanPower averages voltage times current over the solve.
type MeanPower struct {
	current float64
	total   float64
	samples int
}

func NewMeanPower(current float64) *MeanPower { return &MeanPower{current: current} }

func (p *MeanPower) Name() string { return "mean_power" }

func (p *MeanPower) Observe(t float64, outputs map[string]float64) {
	v, ok := outputs["Terminal voltage"]
	if !ok {
		return
	}
	p.total += v * p.current
	p.samples++
}

func (p *MeanPower) Value() float64 {
	if p.samples == 0 {
		return 0
	}
	return p.total / float64(p.samples)
}

func (p *MeanPower) Reset() {
	p.total = 0
	p.samples = 0
}
