package meshio

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/Faultbox/isomesh/pkg/dualcontour"
)

// ErrEmptyMesh is returned when exporting a mesh without triangles.
var ErrEmptyMesh = errors.New("mesh has no triangles")

// BuildGLTF converts m into a single-mesh glTF document. Normals are
// written as generated, without renormalization.
func BuildGLTF(m *dualcontour.MeshBuffer, name string) (*gltf.Document, error) {
	if m.NumTriangles() == 0 {
		return nil, ErrEmptyMesh
	}

	doc := gltf.NewDocument()
	doc.Asset.Generator = "isomesh dual contouring"

	posAccessor := modeler.WritePosition(doc, m.Positions())
	normalAccessor := modeler.WriteNormal(doc, m.Normals())
	indicesAccessor := modeler.WriteIndices(doc, m.Indices())

	prim := &gltf.Primitive{
		Attributes: gltf.PrimitiveAttributes{
			gltf.POSITION: posAccessor,
			gltf.NORMAL:   normalAccessor,
		},
		Indices: gltf.Index(indicesAccessor),
	}

	pbr := &gltf.PBRMetallicRoughness{
		BaseColorFactor: &[4]float64{0.8, 0.8, 0.8, 1},
		MetallicFactor:  gltf.Float(0),
		RoughnessFactor: gltf.Float(1),
	}
	doc.Materials = []*gltf.Material{{Name: "surface", PBRMetallicRoughness: pbr, AlphaMode: gltf.AlphaOpaque}}
	prim.Material = gltf.Index(0)

	doc.Meshes = []*gltf.Mesh{{Name: name, Primitives: []*gltf.Primitive{prim}}}
	doc.Nodes = []*gltf.Node{{Name: name, Mesh: gltf.Index(0)}}
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, 0)
	return doc, nil
}

// SaveGLB writes m as a binary glTF file.
func SaveGLB(path string, m *dualcontour.MeshBuffer) error {
	name := filepath.Base(path)
	name = name[:len(name)-len(filepath.Ext(name))]
	doc, err := BuildGLTF(m, name)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return gltf.SaveBinary(doc, path)
}
