package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/anisomesh/anisomesh/config"
	"github.com/anisomesh/anisomesh/crew"
	"github.com/anisomesh/anisomesh/engine"
	"github.com/anisomesh/anisomesh/evaluate"
	"github.com/anisomesh/anisomesh/gpubackend"
	"github.com/anisomesh/anisomesh/internal/obs"
	"github.com/anisomesh/anisomesh/loader"
	"github.com/anisomesh/anisomesh/measure"
	"github.com/anisomesh/anisomesh/metric"
	"github.com/anisomesh/anisomesh/schedule"
	"github.com/anisomesh/anisomesh/smooth"
	"github.com/anisomesh/anisomesh/topo"
)

var optimizeCmd = &cobra.Command{
	Use:   "optimize <mesh.json>",
	Args:  cobra.ExactArgs(1),
	Short: "Run one scheduler pass sequence over a mesh file",
	RunE:  runOptimize,
}

func runOptimize(cmd *cobra.Command, args []string) error {
	level := obs.LevelInfo
	if verbose {
		level = obs.LevelDebug
	}
	logger := obs.New(obs.Config{Level: level})

	cfg, err := config.Load(cfgPath)
	if err != nil {
		logger.Error("failed to load config", err)
		return err
	}

	msh, err := loader.Load(args[0])
	if err != nil {
		logger.Error("failed to load mesh", err)
		return err
	}

	sampler := metric.Uniform(cfg.Metric.Scaling, cfg.Metric.AspectRatio)
	cr, err := crew.New(sampler, measure.Euclidean{}, evaluate.MeanRatio{})
	if err != nil {
		logger.Fatal("quality measure failed self-test", err)
		return err
	}

	sc := schedule.Scheduler{
		Smoother:   smooth.QualityLaplace{},
		Getme:      newGetme(),
		Topologist: topo.Batr{},
		SmoothOpts: smooth.DefaultOptions(),
		TopoOpts:   topo.DefaultOptions(),
	}

	ctx := engine.Context{GPU: gpubackend.Null{Logf: logger.Logf}, Logf: logger.Logf}
	result := sc.Run(msh, cr, ctx, engine.Serial, cfg.Schedule)

	for i, report := range result.Passes {
		fmt.Printf("pass %d: min=%.4f avg=%.4f harmonic=%.4f\n",
			i, report.MinimumQuality, report.AverageQuality, report.HarmonicMean)
	}
	return nil
}

func newGetme() *smooth.Getme {
	g := smooth.NewGetme()
	return &g
}
