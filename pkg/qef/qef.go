// Package qef fits a single point to a set of oriented surface samples by
// minimizing the quadratic error function sum((n_i . (x - p_i))^2).
package qef

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/isomesh/pkg/math"
)

// DefaultRegularization biases the solution toward the mass point so that
// flat and edge-like sample sets still have a unique minimizer.
const DefaultRegularization float32 = 0.01

// singularEpsilon is the determinant magnitude below which the normal
// equations are treated as unsolvable.
const singularEpsilon = 1e-9

// Solver places one vertex from matching slices of positions and normals.
// Implementations must handle between 2 and 12 samples.
type Solver interface {
	Solve(positions, normals []math.Vec3) math.Vec3
}

// LeastSquares solves the regularized normal equations
// (AᵀA + λI) x = Aᵀb in coordinates relative to the mass point.
type LeastSquares struct {
	Regularization float32
}

// NewLeastSquares returns a solver with the default regularization.
func NewLeastSquares() LeastSquares {
	return LeastSquares{Regularization: DefaultRegularization}
}

// Solve implements Solver.
func (s LeastSquares) Solve(positions, normals []math.Vec3) math.Vec3 {
	if len(positions) == 0 {
		return math.Vec3{}
	}
	mass := MassPoint(positions)

	var ata mgl32.Mat3
	var atb mgl32.Vec3
	for i, p := range positions {
		n := toMgl(normals[i])
		if n.Len() == 0 {
			continue
		}
		q := toMgl(p.Sub(mass))
		ata = ata.Add(n.OuterProd3(n))
		atb = atb.Add(n.Mul(n.Dot(q)))
	}

	if s.Regularization > 0 {
		ata = ata.Add(mgl32.Ident3().Mul(s.Regularization))
	}

	if math32.Abs(ata.Det()) < singularEpsilon {
		return mass
	}
	x := ata.Inv().Mul3x1(atb)
	return mass.Add(fromMgl(x))
}

// MassPointSolver places the vertex at the average of the samples,
// ignoring normals.
type MassPointSolver struct{}

// Solve implements Solver.
func (MassPointSolver) Solve(positions, _ []math.Vec3) math.Vec3 {
	return MassPoint(positions)
}

// MassPoint returns the arithmetic mean of the positions.
func MassPoint(positions []math.Vec3) math.Vec3 {
	if len(positions) == 0 {
		return math.Vec3{}
	}
	var sum math.Vec3
	for _, p := range positions {
		sum = sum.Add(p)
	}
	return sum.Scale(1 / float32(len(positions)))
}

// Error evaluates the quadratic error of x against the samples.
func Error(x math.Vec3, positions, normals []math.Vec3) float32 {
	var e float32
	for i, p := range positions {
		d := normals[i].Dot(x.Sub(p))
		e += d * d
	}
	return e
}

func toMgl(v math.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{v.X, v.Y, v.Z}
}

func fromMgl(v mgl32.Vec3) math.Vec3 {
	return math.Vec3{X: v[0], Y: v[1], Z: v[2]}
}
