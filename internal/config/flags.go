package config

import (
	"flag"
	"fmt"
	"strconv"
	"strings"
)

var (
	flagConfig  = flag.String("config", "", "Path to config file")
	flagDebug   = flag.Bool("debug", false, "Enable debug logging")
	flagShape   = flag.String("shape", "", "Shape: sphere, cube, cylinder, pill, corridor, torus")
	flagGrid    = flag.Int("grid", 0, "Grid size in cells per axis")
	flagOrigin  = flag.String("origin", "", "Region origin as x,y,z")
	flagOut     = flag.String("out", "", "Output path (.dcm or .glb)")
	flagFormat  = flag.String("format", "", "Output format: dcm or glb")
	flagSteps   = flag.Int("steps", 0, "Search steps per crossing edge")
	flagWorkers = flag.Int("workers", 0, "Batch worker count")
)

// ParseArgs parses flags from args, for callers that consume a command
// name first. It returns the remaining positional arguments.
func ParseArgs(args []string) ([]string, error) {
	if err := flag.CommandLine.Parse(args); err != nil {
		return nil, err
	}
	return flag.CommandLine.Args(), nil
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) error {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagShape != "" {
		cfg.Shape.Type = *flagShape
	}
	if *flagGrid > 0 {
		cfg.Region.GridSize = *flagGrid
	}
	if *flagOrigin != "" {
		origin, err := parseTriple(*flagOrigin)
		if err != nil {
			return fmt.Errorf("-origin: %w", err)
		}
		cfg.Region.Origin = origin
	}
	if *flagOut != "" {
		cfg.Output.Path = *flagOut
	}
	if *flagFormat != "" {
		cfg.Output.Format = *flagFormat
	}
	if *flagSteps > 0 {
		cfg.Sampler.SearchSteps = *flagSteps
	}
	if *flagWorkers > 0 {
		cfg.Batch.Workers = *flagWorkers
	}
	return nil
}

// parseTriple parses "x,y,z" into three integers.
func parseTriple(s string) ([3]int, error) {
	var out [3]int
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return out, fmt.Errorf("want x,y,z, got %q", s)
	}
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return out, fmt.Errorf("component %d: %w", i, err)
		}
		out[i] = v
	}
	return out, nil
}
