package dualcontour

import "fmt"

// Grid coordinates are packed 10 bits per axis; edge IDs carry the axis in
// the top two bits.
const (
	coordBits = 10
	coordMask = 1<<coordBits - 1
	axisShift = 30
	axisMask  = 0xc0000000

	// MaxGridSize is the number of distinct coordinates per axis.
	MaxGridSize = 1 << coordBits
)

// Axis identifies the direction of a grid edge.
type Axis uint8

// Edge axes.
const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// String returns "X", "Y" or "Z".
func (a Axis) String() string {
	switch a {
	case AxisX:
		return "X"
	case AxisY:
		return "Y"
	case AxisZ:
		return "Z"
	default:
		return fmt.Sprintf("Axis(%d)", uint8(a))
	}
}

// VoxelID is the packed key of a grid coordinate: x | y<<10 | z<<20.
type VoxelID uint32

// EdgeID is the VoxelID of an edge's lower corner with the edge axis in
// bits 30-31.
type EdgeID uint32

// EncodeVoxel packs a grid coordinate. Each component must lie in
// [0, MaxGridSize); out-of-range input yields an unspecified key.
func EncodeVoxel(x, y, z int) VoxelID {
	return VoxelID(uint32(x) | uint32(y)<<coordBits | uint32(z)<<(2*coordBits))
}

// Decode unpacks the grid coordinate.
func (id VoxelID) Decode() (x, y, z int) {
	return int(id & coordMask), int(id >> coordBits & coordMask), int(id >> (2 * coordBits) & coordMask)
}

// String formats the ID as its coordinate.
func (id VoxelID) String() string {
	x, y, z := id.Decode()
	return fmt.Sprintf("(%d,%d,%d)", x, y, z)
}

// EncodeEdge packs an edge's axis and lower corner.
func EncodeEdge(axis Axis, x, y, z int) EdgeID {
	return EdgeID(uint32(EncodeVoxel(x, y, z)) | uint32(axis)<<axisShift)
}

// Axis returns the edge direction.
func (e EdgeID) Axis() Axis {
	return Axis(e >> axisShift)
}

// Base returns the VoxelID of the edge's lower corner.
func (e EdgeID) Base() VoxelID {
	return VoxelID(e &^ axisMask)
}

// Decode returns the axis and lower corner coordinate.
func (e EdgeID) Decode() (axis Axis, x, y, z int) {
	x, y, z = e.Base().Decode()
	return e.Axis(), x, y, z
}

// String formats the edge as axis@coordinate.
func (e EdgeID) String() string {
	return e.Axis().String() + "@" + e.Base().String()
}

// edgeNodeOffsets lists, per axis, the offsets of the four cells sharing an
// edge, relative to the edge's lower corner. The order fixes the quad
// winding in the triangulator.
var edgeNodeOffsets = [3][4][3]int{
	{{0, 0, 0}, {0, 0, 1}, {0, 1, 0}, {0, 1, 1}},
	{{0, 0, 0}, {1, 0, 0}, {0, 0, 1}, {1, 0, 1}},
	{{0, 0, 0}, {0, 1, 0}, {1, 0, 0}, {1, 1, 0}},
}

// ownedEdgeOffsets lists the lower corners of the twelve edges a cell owns,
// four per axis, relative to the cell.
var ownedEdgeOffsets = [12][3]int{
	{0, 0, 0}, {0, 0, 1}, {0, 1, 0}, {0, 1, 1},
	{0, 0, 0}, {0, 0, 1}, {1, 0, 0}, {1, 0, 1},
	{0, 0, 0}, {0, 1, 0}, {1, 0, 0}, {1, 1, 0},
}

// encodedEdgeNodeOffsets is edgeNodeOffsets packed into VoxelID deltas.
var encodedEdgeNodeOffsets = [12]uint32{
	0x00000000,
	0x00100000,
	0x00000400,
	0x00100400,
	0x00000000,
	0x00000001,
	0x00100000,
	0x00100001,
	0x00000000,
	0x00000400,
	0x00000001,
	0x00000401,
}

// encodedEdgeOffsets maps a VoxelID to its twelve owned EdgeIDs by addition.
var encodedEdgeOffsets = [12]uint32{
	0x00000000,
	0x00100000,
	0x00000400,
	0x00100400,
	0x40000000,
	0x40100000,
	0x40000001,
	0x40100001,
	0x80000000,
	0x80000400,
	0x80000001,
	0x80000401,
}

// sharingVoxels returns the cells that share edge e, in winding order.
// ok is false when any of them would have a negative coordinate.
func sharingVoxels(e EdgeID) (ids [4]VoxelID, ok bool) {
	axis, x, y, z := e.Decode()
	node := uint32(e.Base())
	for i, off := range edgeNodeOffsets[axis] {
		if x < off[0] || y < off[1] || z < off[2] {
			return ids, false
		}
		ids[i] = VoxelID(node - encodedEdgeNodeOffsets[int(axis)*4+i])
	}
	return ids, true
}

// ownedEdge returns the i-th of the twelve edges a cell gathers crossings
// from. ok is false when the edge would leave the addressable grid.
func ownedEdge(id VoxelID, i int) (EdgeID, bool) {
	x, y, z := id.Decode()
	off := ownedEdgeOffsets[i]
	if x+off[0] >= MaxGridSize || y+off[1] >= MaxGridSize || z+off[2] >= MaxGridSize {
		return 0, false
	}
	return EdgeID(uint32(id) + encodedEdgeOffsets[i]), true
}
