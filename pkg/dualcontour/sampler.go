package dualcontour

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/isomesh/pkg/density"
	"github.com/Faultbox/isomesh/pkg/math"
)

// Sampler defaults.
const (
	DefaultSearchSteps        = 16
	DefaultNormalStep float32 = 0.001
)

// Sampler locates surface crossings along grid edges.
type Sampler struct {
	Density density.Func

	// Steps is the number of uniform samples taken along an edge.
	Steps int

	// NormalStep is the central-difference offset for gradients.
	NormalStep float32
}

// NewSampler returns a Sampler with the default step counts.
func NewSampler(f density.Func) Sampler {
	return Sampler{Density: f, Steps: DefaultSearchSteps, NormalStep: DefaultNormalStep}
}

// HasZeroCrossing reports whether the densities lie on opposite sides of
// the surface. Zero counts as outside.
func HasZeroCrossing(a, b float32) bool {
	return (a >= 0 && b < 0) || (a < 0 && b >= 0)
}

// FindCrossing returns the parameter t in [0, 1) of the uniform sample on
// p0→p1 with the smallest absolute density. The first sample wins ties and
// the result is never refined further.
func (s Sampler) FindCrossing(p0, p1 math.Vec3) float32 {
	steps := s.Steps
	if steps <= 0 {
		steps = DefaultSearchSteps
	}
	increment := 1 / float32(steps)

	minValue := float32(math32.MaxFloat32)
	var t float32
	for i := 0; i < steps; i++ {
		current := float32(i) * increment
		d := math32.Abs(s.Density(p0.Lerp(p1, current)))
		if d < minValue {
			t = current
			minValue = d
		}
	}
	return t
}

// Normal estimates the unit surface normal at p by central differences.
// A vanishing gradient yields the zero vector.
func (s Sampler) Normal(p math.Vec3) math.Vec3 {
	h := s.NormalStep
	if h <= 0 {
		h = DefaultNormalStep
	}
	f := s.Density
	dx := math.Vec3{X: h}
	dy := math.Vec3{Y: h}
	dz := math.Vec3{Z: h}
	return math.Vec3{
		X: f(p.Add(dx)) - f(p.Sub(dx)),
		Y: f(p.Add(dy)) - f(p.Sub(dy)),
		Z: f(p.Add(dz)) - f(p.Sub(dz)),
	}.Normalize()
}

// SampleEdge probes the unit edge from p along axis. It returns false when
// the edge does not cross the surface.
func (s Sampler) SampleEdge(p math.Vec3, dp float32, axis Axis) (EdgeInfo, bool) {
	q := p.Add(math.UnitAxis(int(axis)))
	dq := s.Density(q)
	if !HasZeroCrossing(dp, dq) {
		return EdgeInfo{}, false
	}

	t := s.FindCrossing(p, q)
	pos := p.Lerp(q, t)
	return EdgeInfo{
		Position: pos,
		Normal:   s.Normal(pos),
		Winding:  dp >= 0,
	}, true
}
