// Package batch meshes many regions of one density field concurrently.
package batch

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/isomesh/pkg/dualcontour"
)

// Generator meshes a single region. *dualcontour.Generator satisfies it.
type Generator interface {
	Generate(r dualcontour.Region) (*dualcontour.MeshBuffer, error)
}

// Result is the outcome for one region.
type Result struct {
	Index   int
	Region  dualcontour.Region
	Mesh    *dualcontour.MeshBuffer
	Elapsed time.Duration
	Cached  bool
}

// Grid lays out chunks[0] x chunks[1] x chunks[2] regions of gridSize
// cells, spaced gridSize apart and centred on origin. X varies fastest.
func Grid(origin, chunks [3]int, gridSize int) []dualcontour.Region {
	if chunks[0] <= 0 || chunks[1] <= 0 || chunks[2] <= 0 {
		return nil
	}
	offset := func(axis, i int) int {
		return origin[axis] + i*gridSize - (chunks[axis]-1)*gridSize/2
	}

	regions := make([]dualcontour.Region, 0, chunks[0]*chunks[1]*chunks[2])
	for z := 0; z < chunks[2]; z++ {
		for y := 0; y < chunks[1]; y++ {
			for x := 0; x < chunks[0]; x++ {
				regions = append(regions, dualcontour.Region{
					OriginX:  offset(0, x),
					OriginY:  offset(1, y),
					OriginZ:  offset(2, z),
					GridSize: gridSize,
				})
			}
		}
	}
	return regions
}

// Runner drives a Generator over many regions.
type Runner struct {
	Gen     Generator
	Workers int         // 0 uses one per CPU
	Cache   *Cache      // optional
	Logger  *zap.Logger // optional
}

// Run generates every region with at most workers concurrent calls.
// Results are returned in input order. The first error cancels the
// regions that have not started yet.
func Run(ctx context.Context, gen Generator, regions []dualcontour.Region, workers int) ([]Result, error) {
	r := &Runner{Gen: gen, Workers: workers}
	return r.Run(ctx, regions)
}

// Run generates regions; see the package-level Run.
func (r *Runner) Run(ctx context.Context, regions []dualcontour.Region) ([]Result, error) {
	log := r.Logger
	if log == nil {
		log = zap.NewNop()
	}
	workers := r.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make([]Result, len(regions))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, region := range regions {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			if r.Cache != nil {
				if m, ok := r.Cache.Get(region); ok {
					results[i] = Result{Index: i, Region: region, Mesh: m, Cached: true}
					return nil
				}
			}

			start := time.Now()
			m, err := r.Gen.Generate(region)
			if err != nil {
				return fmt.Errorf("region %d (%d,%d,%d): %w",
					i, region.OriginX, region.OriginY, region.OriginZ, err)
			}
			elapsed := time.Since(start)

			if r.Cache != nil {
				r.Cache.Set(region, m)
			}
			results[i] = Result{Index: i, Region: region, Mesh: m, Elapsed: elapsed}

			log.Debug("region meshed",
				zap.Int("index", i),
				zap.Int("vertices", m.NumVertices()),
				zap.Int("triangles", m.NumTriangles()),
				zap.Duration("elapsed", elapsed))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Totals sums vertex and triangle counts over results.
func Totals(results []Result) (vertices, triangles int) {
	for _, res := range results {
		if res.Mesh == nil {
			continue
		}
		vertices += res.Mesh.NumVertices()
		triangles += res.Mesh.NumTriangles()
	}
	return vertices, triangles
}
