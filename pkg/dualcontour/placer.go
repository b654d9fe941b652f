package dualcontour

import (
	"github.com/Faultbox/isomesh/pkg/math"
)

// minCellEdges is the fewest crossings a cell needs to receive a vertex.
const minCellEdges = 2

// generateVertexData places one vertex per active cell that has at least
// two crossing edges and returns the cell→vertex index map.
func (g *Generator) generateVertexData(voxels []VoxelID, edges map[EdgeID]EdgeInfo, mesh *MeshBuffer) (map[VoxelID]uint32, error) {
	indices := make(map[VoxelID]uint32, len(voxels))

	var positions, normals [12]math.Vec3
	for _, id := range voxels {
		n := 0
		for i := range encodedEdgeOffsets {
			edge, ok := ownedEdge(id, i)
			if !ok {
				continue
			}
			info, found := edges[edge]
			if !found {
				continue
			}
			positions[n] = info.Position
			normals[n] = info.Normal
			n++
		}

		if n < minCellEdges {
			mesh.Stats.DroppedVoxels++
			continue
		}

		pos := g.opts.Solver.Solve(positions[:n], normals[:n])
		if g.opts.FailOnNonFinite && !pos.IsFinite() {
			return nil, nonFiniteVertex(id, pos)
		}

		var normal math.Vec3
		for _, nrm := range normals[:n] {
			normal = normal.Add(nrm)
		}
		normal = normal.Scale(1 / float32(n))
		if g.opts.FailOnNonFinite && !normal.IsFinite() {
			return nil, nonFiniteNormal(id, normal)
		}

		indices[id] = mesh.addVertex(Vertex{Position: pos, Normal: normal})
		if g.opts.CollectCells {
			x, y, z := id.Decode()
			mesh.Cells = append(mesh.Cells, Cell{Voxel: [3]int{x, y, z}, Position: pos, EdgeCount: n})
		}
	}
	return indices, nil
}
