// Package config handles mesher configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Faultbox/isomesh/pkg/dualcontour"
)

// Output formats.
const (
	FormatDCM = "dcm"
	FormatGLB = "glb"
)

// Config holds all mesher settings.
type Config struct {
	Region  RegionConfig  `yaml:"region"`
	Sampler SamplerConfig `yaml:"sampler"`
	Shape   ShapeConfig   `yaml:"shape"`
	Output  OutputConfig  `yaml:"output"`
	Batch   BatchConfig   `yaml:"batch"`
	Logging LoggingConfig `yaml:"logging"`
}

// RegionConfig holds the grid placement for single-region generation.
type RegionConfig struct {
	Origin   [3]int `yaml:"origin"`
	GridSize int    `yaml:"grid_size"`
}

// SamplerConfig holds edge search and vertex placement settings.
type SamplerConfig struct {
	SearchSteps     int     `yaml:"search_steps"`
	NormalStep      float32 `yaml:"normal_step"`
	Regularization  float32 `yaml:"regularization"`
	MassPointOnly   bool    `yaml:"mass_point_only"`
	CollectCells    bool    `yaml:"collect_cells"`
	FailOnNonFinite bool    `yaml:"fail_on_non_finite"`
}

// ShapeConfig describes the density field to mesh.
type ShapeConfig struct {
	// Type is "sphere" or one of the super primitive presets.
	Type     string     `yaml:"type"`
	Radius   float32    `yaml:"radius"`   // sphere only
	Position [3]float32 `yaml:"position"`
	Rotation [3]float32 `yaml:"rotation"` // degrees
	Scale    [3]float32 `yaml:"scale"`
}

// OutputConfig holds where generated meshes are written.
type OutputConfig struct {
	Path   string `yaml:"path"`
	Format string `yaml:"format"` // dcm or glb; empty picks from the extension
}

// BatchConfig holds chunked generation settings.
type BatchConfig struct {
	Chunks  [3]int `yaml:"chunks"`
	Workers int    `yaml:"workers"` // 0 uses one per CPU
	Dir     string `yaml:"dir"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
	JSON    bool   `yaml:"json"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Region: RegionConfig{
			GridSize: 32,
		},
		Sampler: SamplerConfig{
			SearchSteps:    dualcontour.DefaultSearchSteps,
			NormalStep:     dualcontour.DefaultNormalStep,
			Regularization: 0.01,
		},
		Shape: ShapeConfig{
			Type:   "sphere",
			Radius: 10,
			Scale:  [3]float32{8, 8, 8},
		},
		Output: OutputConfig{
			Path: "mesh.dcm",
		},
		Batch: BatchConfig{
			Chunks: [3]int{2, 1, 2},
			Dir:    "chunks",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// OutputFormat returns the configured format, falling back to the
// extension of Output.Path.
func (c *Config) OutputFormat() string {
	if c.Output.Format != "" {
		return strings.ToLower(c.Output.Format)
	}
	if strings.EqualFold(filepath.Ext(c.Output.Path), ".glb") {
		return FormatGLB
	}
	return FormatDCM
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error

	if c.Region.GridSize <= 0 || c.Region.GridSize > dualcontour.MaxGridSize {
		errs = append(errs, fmt.Errorf("region.grid_size %d out of range 1..%d",
			c.Region.GridSize, dualcontour.MaxGridSize))
	}
	if c.Sampler.SearchSteps <= 0 {
		errs = append(errs, fmt.Errorf("sampler.search_steps must be positive, got %d", c.Sampler.SearchSteps))
	}
	if c.Sampler.NormalStep <= 0 {
		errs = append(errs, fmt.Errorf("sampler.normal_step must be positive, got %g", c.Sampler.NormalStep))
	}
	if c.Sampler.Regularization < 0 {
		errs = append(errs, fmt.Errorf("sampler.regularization must not be negative, got %g", c.Sampler.Regularization))
	}
	if _, err := c.Shape.Density(); err != nil {
		errs = append(errs, err)
	}
	switch c.OutputFormat() {
	case FormatDCM, FormatGLB:
	default:
		errs = append(errs, fmt.Errorf("output.format %q not supported", c.Output.Format))
	}
	for i, n := range c.Batch.Chunks {
		if n <= 0 {
			errs = append(errs, fmt.Errorf("batch.chunks[%d] must be positive, got %d", i, n))
		}
	}
	if c.Batch.Workers < 0 {
		errs = append(errs, fmt.Errorf("batch.workers must not be negative, got %d", c.Batch.Workers))
	}

	return errors.Join(errs...)
}
