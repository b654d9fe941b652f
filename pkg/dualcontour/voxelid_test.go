package dualcontour

import "testing"

func TestVoxelRoundTrip(t *testing.T) {
	values := []int{0, 1, 2, 511, 512, 1022, 1023}
	for _, x := range values {
		for _, y := range values {
			for _, z := range values {
				id := EncodeVoxel(x, y, z)
				gx, gy, gz := id.Decode()
				if gx != x || gy != y || gz != z {
					t.Fatalf("Decode(EncodeVoxel(%d,%d,%d)) = (%d,%d,%d)", x, y, z, gx, gy, gz)
				}
				if uint32(id)>>30 != 0 {
					t.Fatalf("EncodeVoxel(%d,%d,%d) = %#x uses axis bits", x, y, z, uint32(id))
				}
			}
		}
	}
}

func TestVoxelIDsUnique(t *testing.T) {
	seen := make(map[VoxelID]bool)
	for x := 0; x < 12; x++ {
		for y := 0; y < 12; y++ {
			for z := 0; z < 12; z++ {
				id := EncodeVoxel(x, y, z)
				if seen[id] {
					t.Fatalf("duplicate id %v", id)
				}
				seen[id] = true
			}
		}
	}
}

func TestEdgeRoundTrip(t *testing.T) {
	tests := []struct {
		axis    Axis
		x, y, z int
	}{
		{AxisX, 0, 0, 0},
		{AxisY, 5, 17, 1023},
		{AxisZ, 1023, 1023, 1023},
		{AxisX, 300, 2, 999},
	}
	for _, tt := range tests {
		e := EncodeEdge(tt.axis, tt.x, tt.y, tt.z)
		axis, x, y, z := e.Decode()
		if axis != tt.axis || x != tt.x || y != tt.y || z != tt.z {
			t.Errorf("Decode(EncodeEdge(%v,%d,%d,%d)) = (%v,%d,%d,%d)", tt.axis, tt.x, tt.y, tt.z, axis, x, y, z)
		}
		if e.Base() != EncodeVoxel(tt.x, tt.y, tt.z) {
			t.Errorf("Base() = %v, want %v", e.Base(), EncodeVoxel(tt.x, tt.y, tt.z))
		}
	}
}

func TestEdgeIDsDistinctPerAxis(t *testing.T) {
	a := EncodeEdge(AxisX, 3, 4, 5)
	b := EncodeEdge(AxisY, 3, 4, 5)
	c := EncodeEdge(AxisZ, 3, 4, 5)
	if a == b || b == c || a == c {
		t.Errorf("edge ids collide: %v %v %v", a, b, c)
	}
}

func TestEncodedTablesMatchOffsets(t *testing.T) {
	for axis := 0; axis < 3; axis++ {
		for i, off := range edgeNodeOffsets[axis] {
			want := uint32(EncodeVoxel(off[0], off[1], off[2]))
			if got := encodedEdgeNodeOffsets[axis*4+i]; got != want {
				t.Errorf("encodedEdgeNodeOffsets[%d] = %#x, want %#x", axis*4+i, got, want)
			}
		}
	}
	for i, off := range ownedEdgeOffsets {
		want := uint32(EncodeEdge(Axis(i/4), off[0], off[1], off[2]))
		if got := encodedEdgeOffsets[i]; got != want {
			t.Errorf("encodedEdgeOffsets[%d] = %#x, want %#x", i, got, want)
		}
	}
}

func TestSharingVoxels(t *testing.T) {
	cells, ok := sharingVoxels(EncodeEdge(AxisY, 4, 7, 2))
	if !ok {
		t.Fatal("expected all four cells")
	}
	want := [4]VoxelID{
		EncodeVoxel(4, 7, 2),
		EncodeVoxel(3, 7, 2),
		EncodeVoxel(4, 7, 1),
		EncodeVoxel(3, 7, 1),
	}
	if cells != want {
		t.Errorf("sharingVoxels = %v, want %v", cells, want)
	}

	if _, ok := sharingVoxels(EncodeEdge(AxisX, 5, 0, 3)); ok {
		t.Error("edge on the y=0 boundary should not resolve all cells")
	}
}

func TestOwnedEdgesAreSharedBack(t *testing.T) {
	cell := EncodeVoxel(10, 20, 30)
	for i := range encodedEdgeOffsets {
		edge, ok := ownedEdge(cell, i)
		if !ok {
			t.Fatalf("ownedEdge(%d) out of range", i)
		}
		cells, ok := sharingVoxels(edge)
		if !ok {
			t.Fatalf("sharingVoxels(%v) out of range", edge)
		}
		found := false
		for _, c := range cells {
			if c == cell {
				found = true
			}
		}
		if !found {
			t.Errorf("edge %v owned by %v does not list it as a sharing cell", edge, cell)
		}
	}
}

func TestOwnedEdgeAtGridLimit(t *testing.T) {
	cell := EncodeVoxel(MaxGridSize-1, 0, 0)
	// Y-axis edge at x+1 would carry into the y field.
	if _, ok := ownedEdge(cell, 6); ok {
		t.Error("expected edge past the grid limit to be rejected")
	}
	if _, ok := ownedEdge(cell, 0); !ok {
		t.Error("expected the cell's own corner edge to be accepted")
	}
}
