package dualcontour

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"

	"github.com/Faultbox/isomesh/pkg/math"
)

// Generation errors.
var (
	ErrInvalidGridSize = errors.New("grid size out of range")
	ErrNilDensity      = errors.New("density function is nil")
	ErrNonFinite       = errors.New("non-finite value")
)

func nonFiniteDensity(p math.Vec3, d float32) error {
	return fmt.Errorf("density at %v is %v: %w", p, d, ErrNonFinite)
}

func nonFiniteVertex(id VoxelID, pos math.Vec3) error {
	return fmt.Errorf("vertex for cell %v solved to %v: %w", id, pos, ErrNonFinite)
}

func nonFiniteNormal(id VoxelID, n math.Vec3) error {
	return fmt.Errorf("normal for cell %v averaged to %v: %w", id, n, ErrNonFinite)
}

func isFinite(x float32) bool {
	return !math32.IsNaN(x) && !math32.IsInf(x, 0)
}
