package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/agriwater/optimizer/config"
	"github.com/agriwater/optimizer/core/model"
	"github.com/agriwater/optimizer/core/plan"
	"github.com/agriwater/optimizer/core/scenario"
	"github.com/agriwater/optimizer/core/sweep"
	"github.com/agriwater/optimizer/infra/logger"
	"github.com/agriwater/optimizer/infra/solver"
	"github.com/agriwater/optimizer/internal/eventbus"
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Optimize a batch of seeded scenario variants",
	RunE:  runSweep,
}

func init() {
	rootCmd.AddCommand(sweepCmd)
}

func runSweep(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := logger.New("sweep")

	sink, closeSink, err := buildSink(cfg.Metrics, log)
	if err != nil {
		return fmt.Errorf("metrics sink: %w", err)
	}
	defer closeSink()

	scenarios := make([]model.ScenarioInput, 0, cfg.Sweep.Scenarios)
	for i := 0; i < cfg.Sweep.Scenarios; i++ {
		sc := cfg.Scenario
		sc.Name = fmt.Sprintf("%s-%03d", cfg.Scenario.Name, i)
		sc.Seed = cfg.Sweep.SeedBase + int64(i)
		scenarios = append(scenarios, scenario.New(sc).Generate())
	}

	bb := solver.New(time.Duration(cfg.Solver.TimeLimitSeconds)*time.Second, logger.New("solver"))
	bb.MaxNodes = cfg.Solver.MaxNodes
	planner, err := plan.NewPlanner(bb, cfg.Policy, log, sink)
	if err != nil {
		return err
	}

	bus := eventbus.New[sweep.Event](len(scenarios) * 2)
	defer bus.Close()
	events := bus.Subscribe()
	go func() {
		for ev := range events {
			switch {
			case ev.Err != nil:
				log.Warnf("scenario %s failed: %v", ev.Scenario, ev.Err)
			case ev.Done:
				log.Infof("scenario %s done", ev.Scenario)
			default:
				log.Debugf("scenario %s started", ev.Scenario)
			}
		}
	}()

	runner, err := sweep.NewRunner(planner, cfg.Sweep.Workers, log, bus)
	if err != nil {
		return err
	}
	outcomes := runner.Run(ctx, scenarios)

	if err := os.MkdirAll(cfg.Export.Dir, 0o755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}
	var failed int
	for i, out := range outcomes {
		if out.Err != nil {
			failed++
			fmt.Printf("scenario %s: error: %v\n", out.Scenario, out.Err)
			continue
		}
		cmpRes := out.Comparison
		fmt.Printf("scenario %s: baseline %.2f optimized %.2f savings %.2f (%.1f%%)\n",
			out.Scenario, cmpRes.Baseline.Report.TotalCost(),
			cmpRes.Optimized.Report.TotalCost(), cmpRes.CostSavings, cmpRes.CostSavingsPct)
		if err := exportComparison(cfg.Export, scenarios[i], cmpRes); err != nil {
			return err
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d scenarios failed", failed, len(outcomes))
	}
	return nil
}
