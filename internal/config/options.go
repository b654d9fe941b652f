package config

import (
	"go.uber.org/zap"

	"github.com/Faultbox/isomesh/pkg/dualcontour"
	"github.com/Faultbox/isomesh/pkg/qef"
)

// GeneratorOptions converts the sampler settings to generator options.
func (c *Config) GeneratorOptions(log *zap.Logger) dualcontour.Options {
	opts := dualcontour.DefaultOptions()
	opts.SearchSteps = c.Sampler.SearchSteps
	opts.NormalStep = c.Sampler.NormalStep
	opts.CollectCells = c.Sampler.CollectCells
	opts.FailOnNonFinite = c.Sampler.FailOnNonFinite
	if c.Sampler.MassPointOnly {
		opts.Solver = qef.MassPointSolver{}
	} else {
		opts.Solver = qef.LeastSquares{Regularization: c.Sampler.Regularization}
	}
	if log != nil {
		opts.Logger = log
	}
	return opts
}

// GridRegion returns the single region described by the config.
func (c *Config) GridRegion() dualcontour.Region {
	return dualcontour.Region{
		OriginX:  c.Region.Origin[0],
		OriginY:  c.Region.Origin[1],
		OriginZ:  c.Region.Origin[2],
		GridSize: c.Region.GridSize,
	}
}
