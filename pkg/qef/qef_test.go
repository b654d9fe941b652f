package qef

import (
	"testing"

	"github.com/Faultbox/isomesh/pkg/math"
)

func TestLeastSquaresCorner(t *testing.T) {
	// Three orthogonal planes meeting at (1, 2, 3).
	corner := math.Vec3{X: 1, Y: 2, Z: 3}
	positions := []math.Vec3{
		{X: 1, Y: 2.4, Z: 3.3},
		{X: 1.2, Y: 2, Z: 3.5},
		{X: 1.7, Y: 2.1, Z: 3},
	}
	normals := []math.Vec3{
		{X: 1},
		{Y: 1},
		{Z: 1},
	}

	got := LeastSquares{}.Solve(positions, normals)
	if got.Distance(corner) > 1e-4 {
		t.Errorf("Solve() = %v, want %v", got, corner)
	}
}

func TestLeastSquaresRegularizedStaysNearCorner(t *testing.T) {
	corner := math.Vec3{X: 0.5, Y: 0.5, Z: 0.5}
	positions := []math.Vec3{
		{X: 0.5, Y: 0, Z: 0},
		{X: 0, Y: 0.5, Z: 0},
		{X: 0, Y: 0, Z: 0.5},
		{X: 0.5, Y: 1, Z: 1},
	}
	normals := []math.Vec3{
		{X: 1},
		{Y: 1},
		{Z: 1},
		{X: 1},
	}

	got := NewLeastSquares().Solve(positions, normals)
	if got.Distance(corner) > 0.05 {
		t.Errorf("Solve() = %v, want near %v", got, corner)
	}
}

func TestLeastSquaresPlaneFallsOnPlane(t *testing.T) {
	// All samples lie on z = 2; the solution must stay on that plane and
	// is pulled toward the mass point along it.
	positions := []math.Vec3{
		{X: 0, Y: 0, Z: 2},
		{X: 1, Y: 0, Z: 2},
		{X: 0, Y: 1, Z: 2},
	}
	normals := []math.Vec3{{Z: 1}, {Z: 1}, {Z: 1}}

	got := NewLeastSquares().Solve(positions, normals)
	mass := MassPoint(positions)
	if got.Distance(mass) > 1e-4 {
		t.Errorf("Solve() = %v, want mass point %v", got, mass)
	}
	if e := Error(got, positions, normals); e > 1e-6 {
		t.Errorf("error = %v, want ~0", e)
	}
}

func TestLeastSquaresSingularFallsBack(t *testing.T) {
	positions := []math.Vec3{{X: 1}, {X: 3}}
	normals := []math.Vec3{{}, {}}

	got := LeastSquares{}.Solve(positions, normals)
	if want := (math.Vec3{X: 2}); got != want {
		t.Errorf("Solve() = %v, want mass point %v", got, want)
	}
}

func TestMassPointSolver(t *testing.T) {
	positions := []math.Vec3{{X: 2}, {Y: 4}, {Z: 6}, {}}
	got := MassPointSolver{}.Solve(positions, nil)
	if want := (math.Vec3{X: 0.5, Y: 1, Z: 1.5}); got != want {
		t.Errorf("MassPoint = %v, want %v", got, want)
	}
	if got := MassPoint(nil); got != (math.Vec3{}) {
		t.Errorf("MassPoint(nil) = %v, want zero", got)
	}
}
