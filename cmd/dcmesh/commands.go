package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"github.com/Faultbox/isomesh/internal/batch"
	"github.com/Faultbox/isomesh/internal/config"
	"github.com/Faultbox/isomesh/internal/logger"
	"github.com/Faultbox/isomesh/pkg/dualcontour"
	"github.com/Faultbox/isomesh/pkg/meshio"
)

func cmdGenerate(args []string) error {
	cfg, _, err := setup(args)
	if err != nil {
		return err
	}

	gen, err := newGenerator(cfg)
	if err != nil {
		return fail("failed to create generator", err)
	}

	region := cfg.GridRegion()
	start := time.Now()
	m, err := gen.Generate(region)
	if err != nil {
		return fail("generation failed", err)
	}
	logger.Info("mesh generated",
		zap.String("shape", cfg.Shape.Type),
		zap.Int("grid", region.GridSize),
		zap.Int("vertices", m.NumVertices()),
		zap.Int("triangles", m.NumTriangles()),
		zap.Int("dropped_cells", m.Stats.DroppedVoxels),
		zap.Int("skipped_edges", m.Stats.SkippedEdges),
		zap.Duration("elapsed", time.Since(start)))

	size, err := writeMesh(cfg.Output.Path, cfg.OutputFormat(), m)
	if err != nil {
		return fail("failed to write mesh", err)
	}
	logger.Info("mesh written",
		zap.String("path", cfg.Output.Path),
		zap.String("size", humanize.Bytes(uint64(size))))
	return nil
}

func cmdBatch(args []string) error {
	cfg, _, err := setup(args)
	if err != nil {
		return err
	}

	gen, err := newGenerator(cfg)
	if err != nil {
		return fail("failed to create generator", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	regions := batch.Grid(cfg.Region.Origin, cfg.Batch.Chunks, cfg.Region.GridSize)
	runner := newRunner(cfg, gen)

	start := time.Now()
	results, err := runner.Run(ctx, regions)
	if err != nil {
		return fail("batch failed", err)
	}
	hits, misses := runner.Cache.Stats()
	logger.Debug("region cache", zap.Int("hits", hits), zap.Int("misses", misses))
	verts, tris := batch.Totals(results)
	logger.Info("batch generated",
		zap.Int("regions", len(results)),
		zap.String("vertices", humanize.Comma(int64(verts))),
		zap.String("triangles", humanize.Comma(int64(tris))),
		zap.Duration("elapsed", time.Since(start)))

	format := cfg.OutputFormat()
	var written int64
	for _, res := range results {
		path := chunkPath(cfg.Batch.Dir, res.Index, format)
		size, err := writeMesh(path, format, res.Mesh)
		if errors.Is(err, meshio.ErrEmptyMesh) {
			logger.Debug("skipping empty region", zap.Int("index", res.Index))
			continue
		}
		if err != nil {
			return fail("failed to write mesh", err)
		}
		written += size
	}
	logger.Info("batch written",
		zap.String("dir", cfg.Batch.Dir),
		zap.String("size", humanize.Bytes(uint64(written))))
	return nil
}

func cmdInfo(args []string) error {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: dcmesh info <file.dcm>")
		os.Exit(1)
	}
	path := args[0]

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	h, err := meshio.ParseHeader(data)
	if err != nil {
		return err
	}
	m, err := meshio.ParseDCM(data)
	if err != nil {
		return err
	}

	raw := len(m.Vertices)*24 + len(m.Triangles)*12
	b := m.Bounds()

	fmt.Printf("File:        %s\n", path)
	fmt.Printf("Version:     %d\n", h.Version)
	fmt.Printf("Size:        %s (%s uncompressed)\n",
		humanize.Bytes(uint64(len(data))), humanize.Bytes(uint64(raw)))
	fmt.Printf("Vertices:    %s\n", humanize.Comma(int64(h.NumVertices)))
	fmt.Printf("Triangles:   %s\n", humanize.Comma(int64(h.NumTriangles)))
	if len(m.Vertices) > 0 {
		fmt.Printf("Bounds:      (%.3f, %.3f, %.3f) - (%.3f, %.3f, %.3f)\n",
			b.Min.X, b.Min.Y, b.Min.Z, b.Max.X, b.Max.Y, b.Max.Z)
	}
	fmt.Printf("Fingerprint: %016x\n", m.Fingerprint())
	return nil
}

func cmdExport(args []string) error {
	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: dcmesh export <in.dcm> <out.glb>")
		os.Exit(1)
	}

	m, err := meshio.LoadDCM(args[0])
	if err != nil {
		return err
	}
	size, err := writeMesh(args[1], config.FormatGLB, m)
	if err != nil {
		return err
	}
	fmt.Printf("Exported %s triangles to %s (%s)\n",
		humanize.Comma(int64(m.NumTriangles())), args[1], humanize.Bytes(uint64(size)))
	return nil
}

func cmdConfig(args []string) error {
	cfg, rest, err := setup(args)
	if err != nil {
		return err
	}
	target := ""
	if len(rest) > 0 {
		target = rest[0]
	}
	if target == "-" {
		data, err := cfg.Marshal()
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(data)
		return err
	}

	path, err := saveConfig(cfg, target)
	if err != nil {
		return err
	}
	fmt.Printf("Config written to %s\n", path)
	return nil
}

// saveConfig writes cfg to path, or to the user config directory when
// path is empty, and returns where it went.
func saveConfig(cfg *config.Config, path string) (string, error) {
	if path == "" {
		if err := cfg.Save(); err != nil {
			return "", err
		}
		return filepath.Join(config.ConfigDir(), "config.yaml"), nil
	}
	if err := cfg.SaveTo(path); err != nil {
		return "", err
	}
	return path, nil
}

// newRunner builds the batch runner for cfg with a fresh region cache.
func newRunner(cfg *config.Config, gen batch.Generator) *batch.Runner {
	return &batch.Runner{
		Gen:     gen,
		Workers: cfg.Batch.Workers,
		Cache:   batch.NewCache(),
		Logger:  logger.Named("batch"),
	}
}

func newGenerator(cfg *config.Config) (*dualcontour.Generator, error) {
	f, err := cfg.Shape.Density()
	if err != nil {
		return nil, err
	}
	return dualcontour.New(f, cfg.GeneratorOptions(logger.Named("dualcontour")))
}

// writeMesh saves m in the given format and returns the file size.
func writeMesh(path, format string, m *dualcontour.MeshBuffer) (int64, error) {
	var err error
	switch format {
	case config.FormatGLB:
		err = meshio.SaveGLB(path, m)
	case config.FormatDCM:
		err = meshio.SaveDCM(path, m)
	default:
		err = fmt.Errorf("unsupported format %q", format)
	}
	if err != nil {
		return 0, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

// chunkPath names the output file for batch region i.
func chunkPath(dir string, i int, format string) string {
	return filepath.Join(dir, fmt.Sprintf("chunk_%03d.%s", i, format))
}
