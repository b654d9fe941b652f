package dualcontour

// generateTriangles emits a quad for every crossing edge whose four
// sharing cells all received a vertex. Edges on the region boundary or next
// to dropped cells are skipped.
func generateTriangles(edges []EdgeID, infos map[EdgeID]EdgeInfo, indices map[VoxelID]uint32, mesh *MeshBuffer) {
	for _, edge := range edges {
		cells, ok := sharingVoxels(edge)
		if !ok {
			mesh.Stats.SkippedEdges++
			continue
		}

		var quad [4]uint32
		found := 0
		for i, cell := range cells {
			idx, ok := indices[cell]
			if !ok {
				break
			}
			quad[i] = idx
			found++
		}
		if found < 4 {
			mesh.Stats.SkippedEdges++
			continue
		}

		mesh.addQuad(quad, infos[edge].Winding)
	}
}
