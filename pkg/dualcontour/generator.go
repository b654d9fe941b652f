// Package dualcontour extracts a triangle mesh from the zero level set of a
// density field using uniform-grid Dual Contouring.
//
// A region is scanned for grid edges that cross the surface. Every cell
// touching at least two crossings gets one vertex fitted to the crossing
// points and normals, and each crossing edge shared by four such cells
// becomes a quad. Cells and edges are addressed by bit-packed IDs so only
// the cells near the surface are ever stored.
package dualcontour

import (
	"fmt"
	"maps"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/isomesh/pkg/density"
	"github.com/Faultbox/isomesh/pkg/qef"
)

// Options tunes a Generator. The zero value is usable.
type Options struct {
	// SearchSteps is the number of uniform samples per crossing edge.
	SearchSteps int
	// NormalStep is the central-difference offset for normals.
	NormalStep float32
	// Solver places cell vertices. Defaults to qef.NewLeastSquares().
	Solver qef.Solver
	// Logger receives stage timings at debug level. Defaults to a no-op.
	Logger *zap.Logger
	// CollectCells records per-vertex placement details in MeshBuffer.Cells.
	CollectCells bool
	// FailOnNonFinite aborts on NaN or infinite densities and vertices
	// instead of writing them into the mesh.
	FailOnNonFinite bool
}

// DefaultOptions returns the options used by GenerateMesh.
func DefaultOptions() Options {
	return Options{
		SearchSteps: DefaultSearchSteps,
		NormalStep:  DefaultNormalStep,
		Solver:      qef.NewLeastSquares(),
		Logger:      zap.NewNop(),
	}
}

// Generator meshes regions of one density field. It holds no per-call
// state and may be shared between goroutines.
type Generator struct {
	sampler Sampler
	opts    Options
}

// New creates a Generator for f.
func New(f density.Func, opts Options) (*Generator, error) {
	if f == nil {
		return nil, ErrNilDensity
	}
	if opts.SearchSteps <= 0 {
		opts.SearchSteps = DefaultSearchSteps
	}
	if opts.NormalStep <= 0 {
		opts.NormalStep = DefaultNormalStep
	}
	if opts.Solver == nil {
		opts.Solver = qef.NewLeastSquares()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Generator{
		sampler: Sampler{Density: f, Steps: opts.SearchSteps, NormalStep: opts.NormalStep},
		opts:    opts,
	}, nil
}

// GenerateMesh meshes one region of f with default options.
func GenerateMesh(f density.Func, originX, originY, originZ, gridSize int) (*MeshBuffer, error) {
	g, err := New(f, DefaultOptions())
	if err != nil {
		return nil, err
	}
	return g.Generate(Region{OriginX: originX, OriginY: originY, OriginZ: originZ, GridSize: gridSize})
}

// Generate runs scanning, vertex placement and triangulation for r in that
// order. Cells and edges are visited in ascending ID order, so identical
// inputs give identical meshes.
func (g *Generator) Generate(r Region) (*MeshBuffer, error) {
	if r.GridSize <= 0 || r.GridSize > MaxGridSize {
		return nil, fmt.Errorf("grid size %d not in [1, %d]: %w", r.GridSize, MaxGridSize, ErrInvalidGridSize)
	}
	log := g.opts.Logger.With(
		zap.Int("gridSize", r.GridSize),
		zap.Ints("origin", []int{r.OriginX, r.OriginY, r.OriginZ}),
	)

	start := time.Now()
	s, err := g.findActiveVoxels(r)
	if err != nil {
		return nil, fmt.Errorf("scanning region: %w", err)
	}
	log.Debug("found active voxels",
		zap.Int("voxels", len(s.active)),
		zap.Int("edges", len(s.edges)),
		zap.Duration("elapsed", time.Since(start)))

	voxels := slices.Sorted(maps.Keys(s.active))
	edges := slices.Sorted(maps.Keys(s.edges))

	mesh := NewMeshBuffer(len(voxels), 2*len(edges))
	mesh.Stats.ActiveVoxels = len(voxels)
	mesh.Stats.Edges = len(edges)

	start = time.Now()
	indices, err := g.generateVertexData(voxels, s.edges, mesh)
	if err != nil {
		return nil, fmt.Errorf("placing vertices: %w", err)
	}
	log.Debug("generated vertex data",
		zap.Int("vertices", mesh.NumVertices()),
		zap.Int("dropped", mesh.Stats.DroppedVoxels),
		zap.Duration("elapsed", time.Since(start)))

	start = time.Now()
	generateTriangles(edges, s.edges, indices, mesh)
	log.Debug("generated triangles",
		zap.Int("triangles", mesh.NumTriangles()),
		zap.Int("skippedEdges", mesh.Stats.SkippedEdges),
		zap.Duration("elapsed", time.Since(start)))

	return mesh, nil
}
