package config

import (
	"fmt"
	"strings"

	"github.com/Faultbox/isomesh/pkg/density"
	"github.com/Faultbox/isomesh/pkg/math"
)

// Density builds the density field the shape describes.
func (s ShapeConfig) Density() (density.Func, error) {
	pos := math.Vec3{X: s.Position[0], Y: s.Position[1], Z: s.Position[2]}

	if strings.EqualFold(strings.TrimSpace(s.Type), "sphere") {
		if s.Radius <= 0 {
			return nil, fmt.Errorf("shape.radius must be positive, got %g", s.Radius)
		}
		return density.Sphere(pos, s.Radius), nil
	}

	kind, err := density.ParseShapeType(s.Type)
	if err != nil {
		return nil, fmt.Errorf("shape.type: %w", err)
	}
	scale := math.Vec3{X: s.Scale[0], Y: s.Scale[1], Z: s.Scale[2]}
	if scale.X == 0 || scale.Y == 0 || scale.Z == 0 {
		return nil, fmt.Errorf("shape.scale must be non-zero on every axis, got %v", s.Scale)
	}
	rot := math.QuatFromEuler(math.Vec3{X: s.Rotation[0], Y: s.Rotation[1], Z: s.Rotation[2]})

	prim := density.SuperPrim(density.ConfigForShape(kind))
	return density.Transform(prim, math.TRS(pos, rot, scale)), nil
}
