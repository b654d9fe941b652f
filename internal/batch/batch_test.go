package batch

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Faultbox/isomesh/pkg/density"
	"github.com/Faultbox/isomesh/pkg/dualcontour"
	"github.com/Faultbox/isomesh/pkg/math"
)

// stubGenerator returns an empty mesh per region and records concurrency.
type stubGenerator struct {
	fail    dualcontour.Region
	err     error
	delay   time.Duration
	calls   atomic.Int32
	active  atomic.Int32
	maxSeen atomic.Int32
}

func (s *stubGenerator) Generate(r dualcontour.Region) (*dualcontour.MeshBuffer, error) {
	s.calls.Add(1)
	n := s.active.Add(1)
	defer s.active.Add(-1)
	for {
		prev := s.maxSeen.Load()
		if n <= prev || s.maxSeen.CompareAndSwap(prev, n) {
			break
		}
	}
	time.Sleep(s.delay)

	if s.err != nil && r == s.fail {
		return nil, s.err
	}
	return dualcontour.NewMeshBuffer(0, 0), nil
}

func TestGrid(t *testing.T) {
	regions := Grid([3]int{0, 0, 0}, [3]int{2, 1, 2}, 16)
	if len(regions) != 4 {
		t.Fatalf("got %d regions, want 4", len(regions))
	}

	want := []dualcontour.Region{
		{OriginX: -8, OriginY: 0, OriginZ: -8, GridSize: 16},
		{OriginX: 8, OriginY: 0, OriginZ: -8, GridSize: 16},
		{OriginX: -8, OriginY: 0, OriginZ: 8, GridSize: 16},
		{OriginX: 8, OriginY: 0, OriginZ: 8, GridSize: 16},
	}
	for i := range want {
		if regions[i] != want[i] {
			t.Errorf("region %d = %+v, want %+v", i, regions[i], want[i])
		}
	}
}

func TestGridOddCount(t *testing.T) {
	regions := Grid([3]int{100, 0, 0}, [3]int{3, 1, 1}, 10)
	got := []int{regions[0].OriginX, regions[1].OriginX, regions[2].OriginX}
	want := []int{90, 100, 110}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("OriginX[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestGridOddGridSize(t *testing.T) {
	tests := []struct {
		chunks int
		want   []int
	}{
		{2, []int{-16, 17}},
		{4, []int{-49, -16, 17, 50}},
	}

	for _, tt := range tests {
		regions := Grid([3]int{}, [3]int{tt.chunks, 1, 1}, 33)
		if len(regions) != tt.chunks {
			t.Fatalf("chunks %d: got %d regions", tt.chunks, len(regions))
		}
		for i, r := range regions {
			if r.OriginX != tt.want[i] {
				t.Errorf("chunks %d: OriginX[%d] = %d, want %d", tt.chunks, i, r.OriginX, tt.want[i])
			}
			if i > 0 {
				if gap := r.OriginX - regions[i-1].OriginX; gap != 33 {
					t.Errorf("chunks %d: gap %d-%d = %d, want 33", tt.chunks, i-1, i, gap)
				}
			}
		}
	}
}

func TestGridEmpty(t *testing.T) {
	if regions := Grid([3]int{}, [3]int{0, 1, 1}, 16); regions != nil {
		t.Errorf("expected no regions, got %d", len(regions))
	}
}

func TestRunSphere(t *testing.T) {
	gen, err := dualcontour.New(density.Sphere(math.Vec3{}, 6), dualcontour.DefaultOptions())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	regions := Grid([3]int{}, [3]int{2, 2, 2}, 16)
	results, err := Run(context.Background(), gen, regions, 3)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(results) != len(regions) {
		t.Fatalf("got %d results, want %d", len(results), len(regions))
	}

	for i, res := range results {
		if res.Index != i || res.Region != regions[i] {
			t.Errorf("result %d out of order: %+v", i, res.Region)
		}
		if res.Mesh == nil || res.Mesh.NumTriangles() == 0 {
			t.Errorf("region %d produced no triangles", i)
		}
	}

	verts, tris := Totals(results)
	var wantVerts, wantTris int
	for _, res := range results {
		wantVerts += len(res.Mesh.Vertices)
		wantTris += len(res.Mesh.Triangles)
	}
	if verts != wantVerts || tris != wantTris {
		t.Errorf("Totals = (%d, %d), want (%d, %d)", verts, tris, wantVerts, wantTris)
	}
}

func TestRunMatchesSequential(t *testing.T) {
	gen, err := dualcontour.New(density.Sphere(math.Vec3{X: 3, Y: -2, Z: 1}, 7), dualcontour.DefaultOptions())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	regions := Grid([3]int{}, [3]int{2, 1, 2}, 12)

	results, err := Run(context.Background(), gen, regions, 4)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	for i, r := range regions {
		want, err := gen.Generate(r)
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		if results[i].Mesh.Fingerprint() != want.Fingerprint() {
			t.Errorf("region %d differs from sequential generation", i)
		}
	}
}

func TestRunWorkerLimit(t *testing.T) {
	stub := &stubGenerator{delay: 5 * time.Millisecond}
	regions := Grid([3]int{}, [3]int{4, 2, 2}, 8)

	if _, err := Run(context.Background(), stub, regions, 2); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := stub.calls.Load(); int(got) != len(regions) {
		t.Errorf("calls = %d, want %d", got, len(regions))
	}
	if got := stub.maxSeen.Load(); got > 2 {
		t.Errorf("saw %d concurrent calls, limit is 2", got)
	}
}

func TestRunError(t *testing.T) {
	errBoom := errors.New("boom")
	regions := Grid([3]int{}, [3]int{2, 2, 2}, 8)
	stub := &stubGenerator{fail: regions[3], err: errBoom}

	results, err := Run(context.Background(), stub, regions, 1)
	if !errors.Is(err, errBoom) {
		t.Fatalf("err = %v, want boom", err)
	}
	if results != nil {
		t.Error("expected no results on error")
	}
	// Sequential worker stops scheduling new regions after the failure.
	if got := stub.calls.Load(); got != 4 {
		t.Errorf("calls = %d, want 4", got)
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	stub := &stubGenerator{}
	_, err := Run(ctx, stub, Grid([3]int{}, [3]int{2, 1, 1}, 8), 1)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if got := stub.calls.Load(); got != 0 {
		t.Errorf("calls = %d, want 0", got)
	}
}

func TestRunnerCache(t *testing.T) {
	stub := &stubGenerator{}
	cache := NewCache()
	runner := &Runner{Gen: stub, Workers: 2, Cache: cache}
	regions := Grid([3]int{}, [3]int{2, 1, 2}, 8)

	if _, err := runner.Run(context.Background(), regions); err != nil {
		t.Fatalf("first run: %v", err)
	}
	results, err := runner.Run(context.Background(), regions)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}

	if got := stub.calls.Load(); int(got) != len(regions) {
		t.Errorf("generator calls = %d, want %d", got, len(regions))
	}
	for i, res := range results {
		if !res.Cached {
			t.Errorf("result %d not served from cache", i)
		}
	}
	hits, misses := cache.Stats()
	if hits != len(regions) || misses != len(regions) {
		t.Errorf("hits=%d misses=%d, want %d each", hits, misses, len(regions))
	}
	if cache.Len() != len(regions) {
		t.Errorf("cache holds %d regions, want %d", cache.Len(), len(regions))
	}

	cache.Clear()
	if cache.Len() != 0 {
		t.Error("expected empty cache after Clear")
	}
}
