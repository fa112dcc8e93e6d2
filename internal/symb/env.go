package symb

import "math"

// Field is a discretized value: one entry per mesh cell of the domain it
// belongs to, or a single entry for scalar quantities.
type Field []float64

func (f Field) Clone() Field {
	c := make(Field, len(f))
	copy(c, f)
	return c
}

func (f Field) IsValid() bool {
	for _, v := range f {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Scalar returns the single value of a scalar field.
func (f Field) Scalar() float64 {
	return f[0]
}

// Mesh is a 1-D finite-volume mesh over one region: n cells bounded by
// n+1 edges. Spherical meshes weight divergence and averages by r^2.
type Mesh struct {
	Region    Region
	Edges     []float64
	Centers   []float64
	Spherical bool
}

// NewUniformMesh builds an n-cell mesh spanning [min, max].
func NewUniformMesh(region Region, min, max float64, n int, spherical bool) Mesh {
	edges := make([]float64, n+1)
	centers := make([]float64, n)
	h := (max - min) / float64(n)
	for i := 0; i <= n; i++ {
		edges[i] = min + float64(i)*h
	}
	for i := 0; i < n; i++ {
		centers[i] = 0.5 * (edges[i] + edges[i+1])
	}
	return Mesh{Region: region, Edges: edges, Centers: centers, Spherical: spherical}
}

func (m Mesh) Cells() int { return len(m.Centers) }

// Env is the evaluation environment: time, discretized state fields keyed
// by variable handle, and one mesh per region.
type Env struct {
	T      float64
	Fields map[VarID]Field
	Meshes map[Region]Mesh
}

func NewEnv() *Env {
	return &Env{
		Fields: make(map[VarID]Field),
		Meshes: make(map[Region]Mesh),
	}
}

// Size reports the field length for a domain under this environment's
// meshes: 1 for scalar, otherwise the summed cell counts of its regions.
func (e *Env) Size(d Domain) (int, error) {
	if d.IsScalar() {
		return 1, nil
	}
	n := 0
	for _, r := range d {
		m, ok := e.Meshes[r]
		if !ok {
			return 0, &UnknownDomainError{Region: r}
		}
		n += m.Cells()
	}
	return n, nil
}

// CompositeMesh concatenates the region meshes of a domain into one
// contiguous mesh, dropping duplicated interface edges so that gradients
// are continuous across region boundaries.
func (e *Env) CompositeMesh(d Domain) (Mesh, error) {
	if len(d) == 1 {
		m, ok := e.Meshes[d[0]]
		if !ok {
			return Mesh{}, &UnknownDomainError{Region: d[0]}
		}
		return m, nil
	}
	out := Mesh{Region: Region(d.String())}
	for i, r := range d {
		m, ok := e.Meshes[r]
		if !ok {
			return Mesh{}, &UnknownDomainError{Region: r}
		}
		edges := m.Edges
		if i > 0 {
			edges = edges[1:]
		}
		out.Edges = append(out.Edges, edges...)
		out.Centers = append(out.Centers, m.Centers...)
	}
	return out, nil
}

// broadcastPair stretches a length-1 field against its partner so that
// pointwise operations see equal lengths.
func broadcastPair(a, b Field) (Field, Field) {
	if len(a) == len(b) {
		return a, b
	}
	if len(a) == 1 {
		out := make(Field, len(b))
		for i := range out {
			out[i] = a[0]
		}
		return out, b
	}
	if len(b) == 1 {
		out := make(Field, len(a))
		for i := range out {
			out[i] = b[0]
		}
		return a, out
	}
	return a, b
}
