package main

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/anisomesh/anisomesh/bench"
	"github.com/anisomesh/anisomesh/crew"
	"github.com/anisomesh/anisomesh/engine"
	"github.com/anisomesh/anisomesh/evaluate"
	"github.com/anisomesh/anisomesh/internal/obs"
	"github.com/anisomesh/anisomesh/loader"
	"github.com/anisomesh/anisomesh/measure"
	"github.com/anisomesh/anisomesh/metric"
)

var benchCycles int

var benchCmd = &cobra.Command{
	Use:   "bench <mesh.json>",
	Args:  cobra.ExactArgs(1),
	Short: "Run a raw-throughput evaluation spin over a mesh file",
	RunE:  runBench,
}

func init() {
	benchCmd.Flags().IntVar(&benchCycles, "cycles", 1000, "number of evaluation cycles to spin")
}

func runBench(cmd *cobra.Command, args []string) error {
	logger := obs.New(obs.Config{})

	msh, err := loader.Load(args[0])
	if err != nil {
		logger.Error("failed to load mesh", err)
		return err
	}

	cr, err := crew.New(metric.Uniform(1, 1), measure.Euclidean{}, evaluate.MeanRatio{})
	if err != nil {
		logger.Fatal("quality measure failed self-test", err)
		return err
	}

	reg := prometheus.NewRegistry()
	b := bench.Benchmark{
		Plot:    &bench.OptimizationPlot{},
		Metrics: bench.NewMetrics(reg),
	}

	ctx := engine.Context{Logf: logger.Logf}
	report := b.Spin(ctx, msh, cr, engine.Serial, benchCycles)

	fmt.Printf("%d cycles: min=%.4f avg=%.4f harmonic=%.4f samples=%d\n",
		benchCycles, report.MinimumQuality, report.AverageQuality, report.HarmonicMean, b.Plot.Len())
	return nil
}
