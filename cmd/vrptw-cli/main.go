// Command vrptw-cli solves a Solomon-format VRPTW instance by column
// generation and prints the covering routes found by the LP relaxation.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/OR-toolkit/vrptw/internal/lpsolver"
	"github.com/OR-toolkit/vrptw/internal/orchestrator"
	"github.com/OR-toolkit/vrptw/internal/solomon"
	"github.com/OR-toolkit/vrptw/pkg/config"
	"github.com/OR-toolkit/vrptw/pkg/logger"
)

func main() {
	instancePath := flag.String("instance", "", "path to a Solomon-format .txt instance")
	numCustomers := flag.Int("customers", 0, "number of customer rows to retain from the instance")
	flag.Parse()

	if *instancePath == "" || *numCustomers <= 0 {
		fmt.Fprintln(os.Stderr, "usage: vrptw-cli -instance <path> -customers <n>")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger.InitWithConfig(logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		FilePath:   cfg.Log.FilePath,
		MaxSize:    cfg.Log.MaxSize,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAge,
		Compress:   cfg.Log.Compress,
	})

	if err := run(cfg, *instancePath, *numCustomers); err != nil {
		logger.Error("run failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, instancePath string, numCustomers int) error {
	f, err := os.Open(instancePath)
	if err != nil {
		return fmt.Errorf("opening instance: %w", err)
	}
	defer f.Close()

	inst, err := solomon.Parse(f, numCustomers)
	if err != nil {
		return fmt.Errorf("parsing instance: %w", err)
	}

	cost, travelTime := solomon.Matrices(inst)
	pd, filteredRatio, err := solomon.FilterArcs(inst, cost, travelTime, inst.Capacity)
	if err != nil {
		return fmt.Errorf("filtering arcs: %w", err)
	}
	logger.Info("loaded instance",
		"customers", inst.NumCustomers,
		"vehicles", inst.NumVehicles,
		"capacity", inst.Capacity,
		"arc_filtered_ratio", filteredRatio,
	)

	adapter := lpsolver.NewSolver()
	orch, err := orchestrator.New(pd, adapter)
	if err != nil {
		return fmt.Errorf("building orchestrator: %w", err)
	}

	result, err := orch.Run(context.Background(), cfg.Orchestrator.MaxIterations, cfg.Orchestrator.Tolerance)
	if err != nil {
		return fmt.Errorf("running column generation: %w", err)
	}

	fmt.Printf("objective: %.6f\n", result.Objective)
	fmt.Printf("iteration_cap_reached: %v\n", result.IterationCapReached)
	for name, col := range result.Columns {
		fmt.Printf("  %s = %.4f  path = %v\n", name, col.Value, col.Path)
	}
	return nil
}
