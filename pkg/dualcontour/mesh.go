package dualcontour

import (
	"encoding/binary"
	gomath "math"

	"github.com/cespare/xxhash/v2"

	"github.com/Faultbox/isomesh/pkg/math"
)

// Vertex is one placed dual vertex.
type Vertex struct {
	Position math.Vec3
	// Normal is the unweighted mean of the contributing edge normals and is
	// not renormalized.
	Normal math.Vec3
}

// Triangle holds three indices into MeshBuffer.Vertices.
type Triangle [3]uint32

// Cell records how a vertex was placed. Only filled when
// Options.CollectCells is set.
type Cell struct {
	Voxel     [3]int
	Position  math.Vec3
	EdgeCount int
}

// Stats summarizes one generation run.
type Stats struct {
	ActiveVoxels  int // cells touched by at least one crossing edge
	Edges         int // edges crossing the surface
	DroppedVoxels int // active cells with fewer than two crossings
	SkippedEdges  int // crossing edges without four placed neighbours
}

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}

// MeshBuffer holds the generated mesh. The caller owns it.
type MeshBuffer struct {
	Vertices  []Vertex
	Triangles []Triangle
	Cells     []Cell
	Stats     Stats
}

// NewMeshBuffer returns an empty buffer with room for the given counts.
func NewMeshBuffer(vertexCap, triangleCap int) *MeshBuffer {
	return &MeshBuffer{
		Vertices:  make([]Vertex, 0, vertexCap),
		Triangles: make([]Triangle, 0, triangleCap),
	}
}

// NumVertices returns the vertex count.
func (m *MeshBuffer) NumVertices() int {
	return len(m.Vertices)
}

// NumTriangles returns the triangle count.
func (m *MeshBuffer) NumTriangles() int {
	return len(m.Triangles)
}

// addVertex appends a vertex and returns its index.
func (m *MeshBuffer) addVertex(v Vertex) uint32 {
	m.Vertices = append(m.Vertices, v)
	return uint32(len(m.Vertices) - 1)
}

// addQuad appends the two triangles of quad v0,v1,v3,v2 (v0 and v3 are
// diagonal). winding selects the facing.
func (m *MeshBuffer) addQuad(v [4]uint32, winding bool) {
	if winding {
		m.Triangles = append(m.Triangles,
			Triangle{v[0], v[1], v[3]},
			Triangle{v[0], v[3], v[2]},
		)
		return
	}
	m.Triangles = append(m.Triangles,
		Triangle{v[0], v[3], v[1]},
		Triangle{v[0], v[2], v[3]},
	)
}

// Bounds returns the box enclosing all vertex positions.
// An empty mesh has zero bounds.
func (m *MeshBuffer) Bounds() Bounds {
	if len(m.Vertices) == 0 {
		return Bounds{}
	}
	b := Bounds{Min: m.Vertices[0].Position, Max: m.Vertices[0].Position}
	for _, v := range m.Vertices[1:] {
		b.Min = b.Min.Min(v.Position)
		b.Max = b.Max.Max(v.Position)
	}
	return b
}

// Indices flattens the triangle list.
func (m *MeshBuffer) Indices() []uint32 {
	indices := make([]uint32, 0, 3*len(m.Triangles))
	for _, t := range m.Triangles {
		indices = append(indices, t[0], t[1], t[2])
	}
	return indices
}

// Positions returns the vertex positions as arrays.
func (m *MeshBuffer) Positions() [][3]float32 {
	out := make([][3]float32, len(m.Vertices))
	for i, v := range m.Vertices {
		out[i] = v.Position.Array()
	}
	return out
}

// Normals returns the vertex normals as arrays.
func (m *MeshBuffer) Normals() [][3]float32 {
	out := make([][3]float32, len(m.Vertices))
	for i, v := range m.Vertices {
		out[i] = v.Normal.Array()
	}
	return out
}

// Fingerprint hashes the mesh content independently of vertex and triangle
// order: each vertex and each triangle (as its three corner vertices) is
// hashed on its own and the hashes are summed.
func (m *MeshBuffer) Fingerprint() uint64 {
	var sum uint64
	var buf [72]byte
	for _, v := range m.Vertices {
		putVertex(buf[:24], v)
		sum += xxhash.Sum64(buf[:24])
	}
	for _, t := range m.Triangles {
		for i, idx := range t {
			slot := buf[i*24 : (i+1)*24]
			if int(idx) < len(m.Vertices) {
				putVertex(slot, m.Vertices[idx])
				continue
			}
			clear(slot)
			binary.LittleEndian.PutUint32(slot, idx)
		}
		sum += xxhash.Sum64(buf[:]) * 31
	}
	return sum
}

func putVertex(b []byte, v Vertex) {
	binary.LittleEndian.PutUint32(b[0:], gomath.Float32bits(v.Position.X))
	binary.LittleEndian.PutUint32(b[4:], gomath.Float32bits(v.Position.Y))
	binary.LittleEndian.PutUint32(b[8:], gomath.Float32bits(v.Position.Z))
	binary.LittleEndian.PutUint32(b[12:], gomath.Float32bits(v.Normal.X))
	binary.LittleEndian.PutUint32(b[16:], gomath.Float32bits(v.Normal.Y))
	binary.LittleEndian.PutUint32(b[20:], gomath.Float32bits(v.Normal.Z))
}
