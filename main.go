package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"time"

	"github.com/pthm-cable/relief/config"
	"github.com/pthm-cable/relief/export"
	"github.com/pthm-cable/relief/telemetry"
	"github.com/pthm-cable/relief/terrain"
)

func main() {
	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(os.Args[1:]); err != nil {
		slog.Error("relief failed", "error", err)
		os.Exit(1)
	}
}

// run parses args, generates the requested fields and writes their
// artifacts and run logs. Output files are closed before it returns.
func run(args []string) error {
	// CLI flags
	fs := flag.NewFlagSet("relief", flag.ContinueOnError)
	configPath := fs.String("config", "", "Path or go-getter URL of config.yaml (empty = use defaults)")
	algorithm := fs.String("algorithm", "", "Height synthesizer: noise or displacement (empty = use config)")
	outputDir := fs.String("output-dir", "", "Output directory for artifacts, CSV logs and config snapshot (empty = use config)")
	logStats := fs.Bool("log-stats", false, "Output stats via slog")
	seed := fs.Uint64("seed", 0, "RNG seed (0 = config seed, then time-based)")
	runs := fs.Int("runs", 1, "Number of fields to generate with consecutive seeds")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := config.Init(*configPath); err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg := config.Cfg()

	if *algorithm != "" {
		cfg.Algorithm = *algorithm
	}
	if *outputDir != "" {
		cfg.Output.Dir = *outputDir
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Set up seed
	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = cfg.Displacement.Seed
	}
	if rngSeed == 0 {
		rngSeed = uint64(time.Now().UnixNano())
	}

	om, err := telemetry.NewOutputManager(cfg.Output.Dir)
	if err != nil {
		return err
	}
	defer om.Close()
	if err := om.WriteConfig(cfg); err != nil {
		return fmt.Errorf("writing config snapshot: %w", err)
	}

	slog.Info("starting terrain generation",
		"algorithm", cfg.Algorithm,
		"size", cfg.Terrain.Size,
		"seed", rngSeed,
		"runs", *runs,
	)

	perf := telemetry.NewPerfCollector(*runs)
	for n := 0; n < max(*runs, 1); n++ {
		runSeed := rngSeed + uint64(n)
		name := cfg.Output.FileName
		if *runs > 1 {
			name = fmt.Sprintf("%s_%03d", name, n)
		}

		field, paths, err := generate(cfg, runSeed, name, perf)
		if err != nil {
			return fmt.Errorf("generating terrain (seed %d): %w", runSeed, err)
		}
		slog.Info("terrain written", "seed", runSeed, "files", paths)

		fieldStats := telemetry.ComputeFieldStats(field)
		perfStats := perf.Stats()
		if *logStats {
			fieldStats.LogStats()
			perfStats.LogStats()
		}
		if err := om.WriteRun(telemetry.NewRunRecord(runSeed, name, fieldStats, perfStats)); err != nil {
			return err
		}
	}

	return om.Close()
}

// generate runs the full pipeline once and writes the enabled artifacts.
func generate(cfg *config.Config, seed uint64, name string, perf *telemetry.PerfCollector) (*terrain.HeightField, []string, error) {
	perf.StartRun()
	defer perf.EndRun()

	perf.StartPhase(telemetry.PhaseInit)
	field, err := terrain.New(cfg.Terrain.Size, cfg.Derived.Scale)
	if err != nil {
		return nil, nil, err
	}

	perf.StartPhase(telemetry.PhaseSynthesize)
	src := rand.NewPCG(seed, seed)
	if err := terrain.Generate(field, cfg.Strategy(src)); err != nil {
		return nil, nil, err
	}

	perf.StartPhase(telemetry.PhaseNormals)
	if err := terrain.DeriveNormals(field); err != nil {
		return nil, nil, err
	}

	perf.StartPhase(telemetry.PhaseTexels)
	if err := terrain.DeriveTexels(field); err != nil {
		return nil, nil, err
	}

	perf.StartPhase(telemetry.PhaseExport)
	paths, err := export.WriteFiles(cfg.Output.Dir, name, field, exportOptions(cfg.Output))
	if err != nil {
		return nil, nil, fmt.Errorf("exporting terrain: %w", err)
	}

	return field, paths, nil
}

func exportOptions(o config.OutputConfig) export.Options {
	return export.Options{
		WriteMesh:  o.Mesh,
		Mesh:       export.MeshOptions{Normals: o.Normals, Texels: o.Texels},
		NormalMap:  o.NormalMap,
		HeightMap:  o.HeightMap,
		HeightTIFF: o.HeightTIFF,
		CellsCSV:   o.CellsCSV,
		Binary:     o.Binary,
	}
}
