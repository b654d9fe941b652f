// Package density provides signed scalar fields for isosurface extraction.
//
// A field is negative inside a solid and zero or positive outside it. All
// functions returned here are pure and safe for concurrent use.
package density

import "github.com/Faultbox/isomesh/pkg/math"

// Func samples a density field at a point.
type Func func(p math.Vec3) float32

// Constant returns a field with the same value everywhere.
func Constant(v float32) Func {
	return func(math.Vec3) float32 { return v }
}

// Sphere returns the signed distance to a sphere.
func Sphere(center math.Vec3, radius float32) Func {
	return func(p math.Vec3) float32 {
		return p.Distance(center) - radius
	}
}

// Box returns the signed distance to an axis-aligned box centered at center.
func Box(center, halfExtents math.Vec3) Func {
	return func(p math.Vec3) float32 {
		d := p.Sub(center).Abs().Sub(halfExtents)
		outside := d.MaxScalar(0).Length()
		inside := min(max(d.X, max(d.Y, d.Z)), 0)
		return outside + inside
	}
}

// Plane returns the signed distance to the plane normal·p = offset.
// The normal must be unit length; the solid lies on the side opposite to it.
func Plane(normal math.Vec3, offset float32) Func {
	return func(p math.Vec3) float32 {
		return normal.Dot(p) - offset
	}
}

// Union combines fields so the result is inside wherever any input is inside.
func Union(fields ...Func) Func {
	return func(p math.Vec3) float32 {
		d := fields[0](p)
		for _, f := range fields[1:] {
			d = min(d, f(p))
		}
		return d
	}
}

// Intersect keeps only the region inside every input.
func Intersect(fields ...Func) Func {
	return func(p math.Vec3) float32 {
		d := fields[0](p)
		for _, f := range fields[1:] {
			d = max(d, f(p))
		}
		return d
	}
}

// Subtract carves b out of a.
func Subtract(a, b Func) Func {
	return func(p math.Vec3) float32 {
		return max(a(p), -b(p))
	}
}

// Transform places f in world space using m. The field is evaluated at
// the inverse-transformed point, so non-uniform scales no longer yield an
// exact distance but still preserve the sign.
func Transform(f Func, m math.Mat4) Func {
	inv := m.Inverse()
	return func(p math.Vec3) float32 {
		return f(inv.TransformPoint(p))
	}
}

// Translate moves f by offset.
func Translate(f Func, offset math.Vec3) Func {
	return func(p math.Vec3) float32 {
		return f(p.Sub(offset))
	}
}
