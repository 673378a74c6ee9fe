package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/itohio/kronsolve/internal/config"
	"github.com/itohio/kronsolve/internal/dump"
	"github.com/itohio/kronsolve/internal/engine"
	"github.com/itohio/kronsolve/internal/grid"
	"github.com/itohio/kronsolve/internal/pde/catalog"
	"github.com/itohio/kronsolve/internal/tensor"
	"github.com/itohio/kronsolve/internal/timeadvance"
	"github.com/itohio/kronsolve/pkg/logger"
)

func main() {
	help := flag.Bool("help", false, "Show help message")
	list := flag.Bool("list", false, "List known PDE names")
	pdeName := flag.String("pde", "continuity_1", "PDE name to solve")
	level := flag.Int("level", 3, "Sparse grid maximum level")
	degree := flag.Int("degree", 2, "Polynomial degree per dimension")
	cfl := flag.Float64("cfl", 0.5, "CFL number scaling the time step")
	steps := flag.Int("steps", 10, "Number of forward-Euler steps (0 to run until -tend)")
	tend := flag.Float64("tend", 0, "End time (0 to run for -steps steps instead)")
	full := flag.Bool("full", false, "Use the full tensor-product grid instead of the sparse grid")
	precision := flag.String("precision", "float64", "Element precision: float32 or float64 (validated only; the run always computes in float64)")
	memBudget := flag.Int("membudget", 1<<22, "Per-rank memory budget in float64 elements")
	outDir := flag.String("outdir", ".", "Directory for -dump output")
	doDump := flag.Bool("dump", false, "Write the final solution to outdir/solution.dat in Octave format")
	verbose := flag.Bool("v", false, "Enable debug-level logging")
	configPath := flag.String("config", "", "Load run configuration from a YAML file, ignoring the other flags")

	flag.Parse()

	if *help {
		fmt.Println("kronsolve - explicit time advance for sparse-grid Kronecker-product PDE operators")
		fmt.Println()
		flag.PrintDefaults()
		return
	}

	if *list {
		fmt.Println("Known PDE names:")
		for _, name := range []string{"continuity_1", "continuity_3", "fokkerplanck_1d_4p2", "impurity_3d_A"} {
			fmt.Println("  " + name)
		}
		fmt.Println("Recognized but not implemented: vlasov_lb_full_f, vlasov_two_stream, vlasov_weak_landau")
		return
	}

	logLevel := zerolog.InfoLevel
	if *verbose {
		logLevel = zerolog.DebugLevel
	}
	log := logger.New(os.Stderr, *pdeName, logLevel)

	var cfg config.Config
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Error().Err(err).Str("path", *configPath).Msg("failed to load config file")
			os.Exit(1)
		}
		cfg = loaded
	} else {
		gridType := grid.Sparse
		if *full {
			gridType = grid.Full
		}
		cfg = config.Config{
			PDEName:      *pdeName,
			Level:        *level,
			Degree:       *degree,
			CFL:          *cfl,
			Steps:        *steps,
			TEnd:         *tend,
			GridType:     gridType,
			Precision:    config.Precision(*precision),
			MemoryBudget: *memBudget,
			OutputDir:    *outDir,
			Dump:         *doDump,
			Full:         *full,
		}
	}
	if err := config.Validate(cfg); err != nil {
		log.Error().Err(err).Msg("invalid configuration")
		os.Exit(1)
	}

	desc, err := catalog.Build(cfg.PDEName, cfg.Level, cfg.Degree)
	if err != nil {
		log.Error().Err(err).Str("pde", cfg.PDEName).Msg("failed to build PDE")
		os.Exit(1)
	}

	table := grid.Build(cfg.Level, desc.D(), cfg.GridType)
	log.Info().Int("dimensions", desc.D()).Int("terms", desc.T()).Int("elements", table.Size()).Msg("PDE and grid built")

	budget := cfg.MemoryBudget
	eng := engine.New(desc, table, cfg.Degree, budget, budget)

	x := engine.InitialCondition(desc, table, cfg.Degree)
	fx := tensor.NewVector[float64](eng.Size())

	apply := func(xv, out tensor.VectorView[float64]) {
		eng.Apply(xv, out)
	}
	sources := make([]timeadvance.SourceEval[float64], 0, desc.S())
	for _, src := range desc.Sources {
		src := src
		sources = append(sources, func(t float64, out tensor.VectorView[float64]) {
			engine.AddSource(desc, table, cfg.Degree, src, t, out)
		})
	}

	dims := make([]float64, desc.D())
	levels := make([]int, desc.D())
	for d, dim := range desc.Dims {
		dims[d] = dim.Max - dim.Min
		levels[d] = dim.Level
	}
	dt := timeadvance.DefaultDt(dims, levels, cfg.CFL)

	t := 0.0
	step := 0
	for {
		if cfg.Steps > 0 && step >= cfg.Steps {
			break
		}
		if cfg.Steps <= 0 && t >= cfg.TEnd {
			break
		}
		timeadvance.Step[float64](x.View(), fx.View(), t, dt, apply, sources)
		x, fx = fx, x
		t += dt
		step++
		log.Debug().Int("step", step).Float64("t", t).Msg("step complete")
	}
	log.Info().Int("steps", step).Float64("t", t).Msg("time advance complete")

	if cfg.Dump {
		path := cfg.OutputDir + "/solution.dat"
		f, err := os.Create(path)
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("failed to create dump file")
			return
		}
		defer f.Close()
		if err := dump.WriteVector[float64](f, x.View(), log); err != nil {
			log.Warn().Err(err).Msg("failed to write solution dump")
			return
		}
		log.Info().Str("path", path).Msg("solution written")
	}
}
