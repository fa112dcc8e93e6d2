package symb

import "fmt"

// Broadcast replicates a scalar expression over a wider domain.
type Broadcast struct {
	X      Expr
	domain Domain
}

func NewBroadcast(x Expr, d Domain) (Expr, error) {
	if !x.Domain().IsScalar() {
		return nil, &DomainMismatchError{Op: "broadcast", Left: x.Domain(), Right: d}
	}
	return &Broadcast{X: x, domain: d}, nil
}

func (b *Broadcast) Domain() Domain { return b.domain }

func (b *Broadcast) Eval(env *Env) (Field, error) {
	x, err := b.X.Eval(env)
	if err != nil {
		return nil, err
	}
	n, err := env.Size(b.domain)
	if err != nil {
		return nil, err
	}
	out := make(Field, n)
	for i := range out {
		out[i] = x[0]
	}
	return out, nil
}

func (b *Broadcast) Diff(wrt *StateVariable) Expr {
	e, err := NewBroadcast(b.X.Diff(wrt), b.domain)
	if err != nil {
		return Num(0)
	}
	return e
}

func (b *Broadcast) Children() []Expr { return []Expr{b.X} }
func (b *Broadcast) String() string   { return fmt.Sprintf("broadcast(%s, %s)", b.X, b.domain) }

// SurfaceValue extrapolates a particle-domain expression to the particle
// surface, producing an electrode-scale scalar.
type SurfaceValue struct {
	X Expr
}

func Surf(x Expr) (Expr, error) {
	d := x.Domain()
	if len(d) != 1 || (d[0] != NegativeParticle && d[0] != PositiveParticle) {
		return nil, &DomainMismatchError{Op: "surf", Left: d, Right: ScalarDomain}
	}
	return &SurfaceValue{X: x}, nil
}

func (s *SurfaceValue) Domain() Domain { return ScalarDomain }

func (s *SurfaceValue) Eval(env *Env) (Field, error) {
	x, err := s.X.Eval(env)
	if err != nil {
		return nil, err
	}
	m, err := env.CompositeMesh(s.X.Domain())
	if err != nil {
		return nil, err
	}
	n := len(x)
	if n == 1 {
		return Field{x[0]}, nil
	}
	// linear extrapolation from the two outermost cell centers
	c := m.Centers
	edge := m.Edges[len(m.Edges)-1]
	slope := (x[n-1] - x[n-2]) / (c[n-1] - c[n-2])
	return Field{x[n-1] + slope*(edge-c[n-1])}, nil
}

func (s *SurfaceValue) Diff(wrt *StateVariable) Expr {
	return &SurfaceValue{X: s.X.Diff(wrt)}
}

func (s *SurfaceValue) Children() []Expr { return []Expr{s.X} }
func (s *SurfaceValue) String() string   { return fmt.Sprintf("surf(%s)", s.X) }

// Restriction slices a composite-domain expression down to one of its
// regions. Orphan splitting of whole-cell variables is built on it.
type Restriction struct {
	X      Expr
	region Region
}

func Restrict(x Expr, r Region) (Expr, error) {
	if !x.Domain().Contains(r) {
		return nil, &DomainMismatchError{Op: "restrict", Left: x.Domain(), Right: Only(r)}
	}
	return &Restriction{X: x, region: r}, nil
}

func (re *Restriction) Domain() Domain { return Only(re.region) }
func (re *Restriction) Region() Region { return re.region }

func (re *Restriction) Eval(env *Env) (Field, error) {
	x, err := re.X.Eval(env)
	if err != nil {
		return nil, err
	}
	offset := 0
	for _, r := range re.X.Domain() {
		m, ok := env.Meshes[r]
		if !ok {
			return nil, &UnknownDomainError{Region: r}
		}
		if r == re.region {
			if offset+m.Cells() > len(x) {
				return nil, fmt.Errorf("restrict: field too short for %q", r)
			}
			return x[offset : offset+m.Cells()].Clone(), nil
		}
		offset += m.Cells()
	}
	return nil, &UnknownDomainError{Region: re.region}
}

func (re *Restriction) Diff(wrt *StateVariable) Expr {
	e, err := Restrict(re.X.Diff(wrt), re.region)
	if err != nil {
		return Num(0)
	}
	return e
}

func (re *Restriction) Children() []Expr { return []Expr{re.X} }
func (re *Restriction) String() string {
	return fmt.Sprintf("restrict(%s, %s)", re.X, re.region)
}

// Concatenation joins region-valued expressions into one expression over
// the union of their domains, in argument order.
type Concatenation struct {
	xs     []Expr
	domain Domain
}

func Concat(xs ...Expr) (Expr, error) {
	var d Domain
	for _, x := range xs {
		for _, r := range x.Domain() {
			if d.Contains(r) {
				return nil, &DomainMismatchError{Op: "concat", Left: d, Right: x.Domain()}
			}
			d = append(d, r)
		}
	}
	return &Concatenation{xs: xs, domain: d}, nil
}

func (c *Concatenation) Domain() Domain { return c.domain }

func (c *Concatenation) Eval(env *Env) (Field, error) {
	var out Field
	for _, x := range c.xs {
		f, err := x.Eval(env)
		if err != nil {
			return nil, err
		}
		out = append(out, f...)
	}
	return out, nil
}

func (c *Concatenation) Diff(wrt *StateVariable) Expr {
	dxs := make([]Expr, len(c.xs))
	for i, x := range c.xs {
		dxs[i] = x.Diff(wrt)
	}
	return &Concatenation{xs: dxs, domain: c.domain}
}

func (c *Concatenation) Children() []Expr { return c.xs }

func (c *Concatenation) String() string {
	s := "concat("
	for i, x := range c.xs {
		if i > 0 {
			s += ", "
		}
		s += x.String()
	}
	return s + ")"
}

// Average reduces an expression to its volume-weighted mean, producing a
// scalar. Averaging a scalar is the identity.
type Average struct {
	X Expr
}

func XAverage(x Expr) Expr {
	if x.Domain().IsScalar() {
		return x
	}
	return &Average{X: x}
}

func (a *Average) Domain() Domain { return ScalarDomain }

func (a *Average) Eval(env *Env) (Field, error) {
	x, err := a.X.Eval(env)
	if err != nil {
		return nil, err
	}
	m, err := env.CompositeMesh(a.X.Domain())
	if err != nil {
		return nil, err
	}
	if len(x) != m.Cells() {
		return nil, fmt.Errorf("average: field length %d does not match mesh (%d cells)", len(x), m.Cells())
	}
	sum, vol := 0.0, 0.0
	for i, v := range x {
		w := m.Edges[i+1] - m.Edges[i]
		if m.Spherical {
			w *= m.Centers[i] * m.Centers[i]
		}
		sum += v * w
		vol += w
	}
	return Field{sum / vol}, nil
}

func (a *Average) Diff(wrt *StateVariable) Expr { return XAverage(a.X.Diff(wrt)) }
func (a *Average) Children() []Expr             { return []Expr{a.X} }
func (a *Average) String() string               { return fmt.Sprintf("avg(%s)", a.X) }

// Gradient evaluates to face values of the spatial derivative of its
// operand: zero at the outermost faces (no-flux default), central
// differences between adjacent cell centers elsewhere.
type Gradient struct {
	X Expr
}

func NewGradient(x Expr) (Expr, error) {
	if x.Domain().IsScalar() {
		return nil, &DomainMismatchError{Op: "grad", Left: x.Domain(), Right: ScalarDomain}
	}
	return &Gradient{X: x}, nil
}

func (g *Gradient) Domain() Domain { return g.X.Domain() }

func (g *Gradient) Eval(env *Env) (Field, error) {
	x, err := g.X.Eval(env)
	if err != nil {
		return nil, err
	}
	m, err := env.CompositeMesh(g.X.Domain())
	if err != nil {
		return nil, err
	}
	n := m.Cells()
	if len(x) != n {
		return nil, fmt.Errorf("grad: field length %d does not match mesh (%d cells)", len(x), n)
	}
	out := make(Field, n+1)
	for i := 1; i < n; i++ {
		out[i] = (x[i] - x[i-1]) / (m.Centers[i] - m.Centers[i-1])
	}
	return out, nil
}

func (g *Gradient) Diff(wrt *StateVariable) Expr {
	dx := g.X.Diff(wrt)
	if _, ok := dx.(*Scalar); ok {
		// spatially uniform derivative has zero gradient
		return Num(0)
	}
	return &Gradient{X: dx}
}
func (g *Gradient) Children() []Expr             { return []Expr{g.X} }
func (g *Gradient) String() string               { return fmt.Sprintf("grad(%s)", g.X) }

// Divergence evaluates the finite-volume divergence of a face-valued
// flux. Optional Inner/Outer expressions override the boundary fluxes,
// which is how interfacial current enters particle equations.
type Divergence struct {
	X            Expr
	Inner, Outer Expr
}

func NewDivergence(flux Expr) (Expr, error) {
	return NewDivergenceWithFlux(flux, nil, nil)
}

// NewDivergenceWithFlux attaches boundary-flux overrides; inner and
// outer must be scalar expressions (or nil for the no-flux default).
func NewDivergenceWithFlux(flux, inner, outer Expr) (Expr, error) {
	if flux.Domain().IsScalar() {
		return nil, &DomainMismatchError{Op: "div", Left: flux.Domain(), Right: ScalarDomain}
	}
	for _, bc := range []Expr{inner, outer} {
		if bc != nil && !bc.Domain().IsScalar() {
			return nil, &DomainMismatchError{Op: "div boundary flux", Left: bc.Domain(), Right: ScalarDomain}
		}
	}
	return &Divergence{X: flux, Inner: inner, Outer: outer}, nil
}

func (d *Divergence) Domain() Domain { return d.X.Domain() }

func (d *Divergence) Eval(env *Env) (Field, error) {
	flux, err := d.X.Eval(env)
	if err != nil {
		return nil, err
	}
	m, err := env.CompositeMesh(d.X.Domain())
	if err != nil {
		return nil, err
	}
	n := m.Cells()
	if len(flux) != n+1 {
		return nil, fmt.Errorf("div: expected %d face values, got %d", n+1, len(flux))
	}
	f := flux.Clone()
	if d.Inner != nil {
		v, err := d.Inner.Eval(env)
		if err != nil {
			return nil, err
		}
		f[0] = v.Scalar()
	}
	if d.Outer != nil {
		v, err := d.Outer.Eval(env)
		if err != nil {
			return nil, err
		}
		f[n] = v.Scalar()
	}
	out := make(Field, n)
	for i := 0; i < n; i++ {
		w := m.Edges[i+1] - m.Edges[i]
		if m.Spherical {
			rl, rr := m.Edges[i], m.Edges[i+1]
			rc := m.Centers[i]
			out[i] = (rr*rr*f[i+1] - rl*rl*f[i]) / (rc * rc * w)
		} else {
			out[i] = (f[i+1] - f[i]) / w
		}
	}
	return out, nil
}

func (d *Divergence) Diff(wrt *StateVariable) Expr {
	var inner, outer Expr
	if d.Inner != nil {
		inner = d.Inner.Diff(wrt)
	}
	if d.Outer != nil {
		outer = d.Outer.Diff(wrt)
	}
	return &Divergence{X: d.X.Diff(wrt), Inner: inner, Outer: outer}
}

func (d *Divergence) Children() []Expr {
	out := []Expr{d.X}
	if d.Inner != nil {
		out = append(out, d.Inner)
	}
	if d.Outer != nil {
		out = append(out, d.Outer)
	}
	return out
}

func (d *Divergence) String() string { return fmt.Sprintf("div(%s)", d.X) }
