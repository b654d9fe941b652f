package dualcontour

import (
	"github.com/Faultbox/isomesh/pkg/math"
)

// EdgeInfo is the surface crossing found on one grid edge.
type EdgeInfo struct {
	Position math.Vec3
	Normal   math.Vec3
	// Winding is true when the edge's lower corner is outside (density >= 0).
	Winding bool
}

// Region is the grid a single generation call covers. Local coordinate c
// on each axis maps to world c - GridSize/2 + Origin.
type Region struct {
	OriginX, OriginY, OriginZ int
	GridSize                  int
}

// corner returns the world position of local grid coordinate (x, y, z).
func (r Region) corner(x, y, z int) math.Vec3 {
	offset := float32(r.GridSize) / 2
	return math.Vec3{
		X: float32(x) - offset + float32(r.OriginX),
		Y: float32(y) - offset + float32(r.OriginY),
		Z: float32(z) - offset + float32(r.OriginZ),
	}
}

// scan holds the sparse result of probing every edge in a region.
type scan struct {
	active map[VoxelID]struct{}
	edges  map[EdgeID]EdgeInfo
}

// findActiveVoxels probes the three edges leaving every grid corner and
// records each crossing together with the cells that share it. Cells that
// would have a negative coordinate belong to a neighbouring region and are
// left out.
func (g *Generator) findActiveVoxels(r Region) (*scan, error) {
	s := &scan{
		active: make(map[VoxelID]struct{}),
		edges:  make(map[EdgeID]EdgeInfo),
	}

	for x := 0; x < r.GridSize; x++ {
		for y := 0; y < r.GridSize; y++ {
			for z := 0; z < r.GridSize; z++ {
				p := r.corner(x, y, z)
				dp := g.sampler.Density(p)
				if g.opts.FailOnNonFinite && !isFinite(dp) {
					return nil, nonFiniteDensity(p, dp)
				}

				for axis := AxisX; axis <= AxisZ; axis++ {
					info, ok := g.sampler.SampleEdge(p, dp, axis)
					if !ok {
						continue
					}
					s.edges[EncodeEdge(axis, x, y, z)] = info

					for _, off := range edgeNodeOffsets[axis] {
						nx, ny, nz := x-off[0], y-off[1], z-off[2]
						if nx < 0 || ny < 0 || nz < 0 {
							continue
						}
						s.active[EncodeVoxel(nx, ny, nz)] = struct{}{}
					}
				}
			}
		}
	}
	return s, nil
}
