package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/agriwater/optimizer/config"
	"github.com/agriwater/optimizer/core/model"
	"github.com/agriwater/optimizer/core/plan"
	"github.com/agriwater/optimizer/core/scenario"
	"github.com/agriwater/optimizer/infra/logger"
	"github.com/agriwater/optimizer/infra/solver"
	"github.com/agriwater/optimizer/pkg/export"
)

var optimizeCmd = &cobra.Command{
	Use:   "optimize",
	Short: "Optimize one scenario and report savings against the baseline",
	RunE:  runOptimize,
}

func init() {
	rootCmd.AddCommand(optimizeCmd)
}

func runOptimize(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := logger.New("optimize")

	sink, closeSink, err := buildSink(cfg.Metrics, log)
	if err != nil {
		return fmt.Errorf("metrics sink: %w", err)
	}
	defer closeSink()

	in := scenario.New(cfg.Scenario).Generate()
	bb := solver.New(time.Duration(cfg.Solver.TimeLimitSeconds)*time.Second, logger.New("solver"))
	bb.MaxNodes = cfg.Solver.MaxNodes
	planner, err := plan.NewPlanner(bb, cfg.Policy, log, sink)
	if err != nil {
		return err
	}

	cmpRes, err := planner.Compare(ctx, in)
	if err != nil {
		return err
	}
	printComparison(cmpRes)
	return exportComparison(cfg.Export, in, cmpRes)
}

func printComparison(cmp plan.Comparison) {
	fmt.Printf("scenario %s (%s)\n", cmp.Scenario, cmp.Optimized.Status)
	fmt.Printf("  baseline cost:  %10.2f\n", cmp.Baseline.Report.TotalCost())
	fmt.Printf("  optimized cost: %10.2f\n", cmp.Optimized.Report.TotalCost())
	fmt.Printf("  savings:        %10.2f (%.1f%%)\n", cmp.CostSavings, cmp.CostSavingsPct)
	fmt.Printf("  grid energy:    %10.1f kWh (baseline %.1f)\n",
		cmp.Optimized.Report.GridEnergyKWh, cmp.Baseline.Report.GridEnergyKWh)
	fmt.Printf("  penalty:        %10.2f (baseline %.2f)\n",
		cmp.Optimized.Report.PenaltyCost, cmp.Baseline.Report.PenaltyCost)
	fmt.Printf("  projected monthly savings: %.2f, annual: %.2f\n",
		cmp.MonthlyProjection, cmp.AnnualProjection)
}

func exportComparison(cfg config.ExportConfig, in model.ScenarioInput, cmp plan.Comparison) error {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}

	var schedPath string
	if cfg.Format == "json" {
		schedPath = filepath.Join(cfg.Dir, in.Name+"_schedule.json")
	} else {
		schedPath = filepath.Join(cfg.Dir, in.Name+"_schedule.csv")
	}
	sf, err := os.Create(schedPath)
	if err != nil {
		return err
	}
	defer func() { _ = sf.Close() }()
	if cfg.Format == "json" {
		err = export.WriteResultJSON(sf, in, cmp.Optimized)
	} else {
		err = export.WriteScheduleCSV(sf, in, cmp.Optimized)
	}
	if err != nil {
		return fmt.Errorf("export schedule: %w", err)
	}

	cf, err := os.Create(filepath.Join(cfg.Dir, in.Name+"_comparison.json"))
	if err != nil {
		return err
	}
	defer func() { _ = cf.Close() }()
	if err := export.WriteComparisonJSON(cf, cmp); err != nil {
		return fmt.Errorf("export comparison: %w", err)
	}
	return nil
}
