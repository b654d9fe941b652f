package density

import (
	"fmt"
	"strings"

	"github.com/chewxy/math32"

	"github.com/Faultbox/isomesh/pkg/math"
)

// ShapeType selects one of the preset super primitive configurations.
type ShapeType int

// Preset shapes.
const (
	Cube ShapeType = iota
	Cylinder
	Pill
	Corridor
	Torus
)

// String returns the lower-case shape name.
func (t ShapeType) String() string {
	switch t {
	case Cube:
		return "cube"
	case Cylinder:
		return "cylinder"
	case Pill:
		return "pill"
	case Corridor:
		return "corridor"
	case Torus:
		return "torus"
	default:
		return fmt.Sprintf("shape(%d)", int(t))
	}
}

// ParseShapeType converts a shape name to a ShapeType.
func ParseShapeType(name string) (ShapeType, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "cube":
		return Cube, nil
	case "cylinder":
		return Cylinder, nil
	case "pill":
		return Pill, nil
	case "corridor":
		return Corridor, nil
	case "torus":
		return Torus, nil
	default:
		return Cube, fmt.Errorf("unknown shape %q", name)
	}
}

// ShapeConfig parameterizes the super primitive.
// S holds the half extents in XYZ and the shell thickness in W;
// R holds the XY corner radius and the Z corner radius.
type ShapeConfig struct {
	S [4]float32
	R math.Vec2
}

// ConfigForShape returns the parameters for a preset shape.
// Unknown shapes fall back to Cube.
func ConfigForShape(t ShapeType) ShapeConfig {
	switch t {
	case Cylinder:
		return ShapeConfig{S: [4]float32{1, 1, 1, 1}, R: math.Vec2{X: 1, Y: 0}}
	case Pill:
		return ShapeConfig{S: [4]float32{1, 1, 2, 1}, R: math.Vec2{X: 1, Y: 1}}
	case Corridor:
		return ShapeConfig{S: [4]float32{1, 1, 1, 0.25}, R: math.Vec2{X: 0.1, Y: 0.1}}
	case Torus:
		return ShapeConfig{S: [4]float32{1, 1, 0.25, 0.25}, R: math.Vec2{X: 1, Y: 0.25}}
	default:
		return ShapeConfig{S: [4]float32{1, 1, 1, 1}, R: math.Vec2{}}
	}
}

// SuperPrim returns the "super primitive" field: a single rounded box
// family whose parameters morph between cubes, cylinders, capsules,
// hollow corridors and tori.
func SuperPrim(cfg ShapeConfig) Func {
	s := cfg.S
	r := cfg.R
	return func(p math.Vec3) float32 {
		d := p.Abs().Sub(math.Vec3{X: s[0], Y: s[1], Z: s[2]})

		q := math.Vec2{X: d.X + r.X, Y: d.Y + r.X}.MaxScalar(0).Length()
		q += min(-r.X, max(d.X, d.Y))
		q = math32.Abs(q+s[3]) - s[3]

		return math.Vec2{X: q + r.Y, Y: d.Z + r.Y}.MaxScalar(0).Length() + min(-r.Y, max(q, d.Z))
	}
}
