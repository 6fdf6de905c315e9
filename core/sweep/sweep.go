// Package sweep runs many independent scenarios concurrently. Each run is a
// pure function of its input, so scenarios are dispatched to a worker pool
// with no shared state; one failing scenario never aborts the batch.
package sweep

import (
	"context"
	"fmt"
	"sync"

	"github.com/agriwater/optimizer/core/logger"
	"github.com/agriwater/optimizer/core/model"
	"github.com/agriwater/optimizer/core/plan"
	"github.com/agriwater/optimizer/internal/eventbus"
)

// Comparator abstracts the planner for testability.
type Comparator interface {
	Compare(ctx context.Context, in model.ScenarioInput) (plan.Comparison, error)
}

// Outcome is the per-scenario result of a sweep. Err is set when the
// scenario failed validation, was infeasible or the solve errored; the rest
// of the batch is unaffected.
type Outcome struct {
	Scenario   string
	Comparison plan.Comparison
	Err        error
}

// Event reports sweep progress on the bus.
type Event struct {
	Scenario string
	Done     bool
	Err      error
}

// Runner executes scenario sweeps.
type Runner struct {
	planner Comparator
	workers int
	log     logger.Logger
	bus     *eventbus.Bus[Event]
}

// NewRunner wires a sweep runner. workers <= 0 defaults to 4. The bus is
// optional and only used for progress events.
func NewRunner(planner Comparator, workers int, log logger.Logger, bus *eventbus.Bus[Event]) (*Runner, error) {
	if planner == nil {
		return nil, fmt.Errorf("sweep: nil planner provided to NewRunner")
	}
	if workers <= 0 {
		workers = 4
	}
	return &Runner{planner: planner, workers: workers, log: log, bus: bus}, nil
}

// Run compares every scenario and returns the outcomes in input order.
// A scenario failure is isolated into its outcome; Run itself only returns
// early when the context is canceled.
func (r *Runner) Run(ctx context.Context, scenarios []model.ScenarioInput) []Outcome {
	outcomes := make([]Outcome, len(scenarios))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < r.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				outcomes[idx] = r.runOne(ctx, scenarios[idx])
			}
		}()
	}

	for idx := range scenarios {
		select {
		case jobs <- idx:
		case <-ctx.Done():
			outcomes[idx] = Outcome{Scenario: scenarios[idx].Name, Err: ctx.Err()}
		}
	}
	close(jobs)
	wg.Wait()
	return outcomes
}

func (r *Runner) runOne(ctx context.Context, in model.ScenarioInput) Outcome {
	if r.bus != nil {
		r.bus.Publish(Event{Scenario: in.Name})
	}
	cmp, err := r.planner.Compare(ctx, in)
	if err != nil && r.log != nil {
		r.log.Warnf("scenario %s failed: %v", in.Name, err)
	}
	if r.bus != nil {
		r.bus.Publish(Event{Scenario: in.Name, Done: true, Err: err})
	}
	return Outcome{Scenario: in.Name, Comparison: cmp, Err: err}
}
