package batch

import (
	"fmt"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"compressor/models"
)

// Runner executes one unit to a terminal outcome. *worker.Worker.Run
// satisfies it; tests substitute closures.
type Runner func(*models.WorkUnit, *models.CancelToken) models.Outcome

// Orchestrator owns the worker pool for one batch run.
//
// At most `workers` units encode concurrently. Dispatch order equals
// the unit slice order; outcomes are folded in completion order by a
// single aggregation loop, so BatchState needs no lock of its own.
type Orchestrator struct {
	runner    Runner
	workers   int
	log       *zap.Logger
	onOutcome func(models.Outcome)
}

// New creates an Orchestrator. A worker count below 1 is the only
// startup-time fatal condition; everything that happens to an
// individual unit later is recorded, never raised.
func New(runner Runner, workers int, log *zap.Logger) (*Orchestrator, error) {
	if runner == nil {
		return nil, fmt.Errorf("runner is required")
	}
	if workers < 1 {
		return nil, fmt.Errorf("concurrency must be at least 1, got %d", workers)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Orchestrator{runner: runner, workers: workers, log: log}, nil
}

// SetOutcomeCallback registers a hook invoked from the aggregation
// loop for every recorded outcome (display updates, metrics).
func (o *Orchestrator) SetOutcomeCallback(fn func(models.Outcome)) {
	o.onOutcome = fn
}

// Run dispatches all units to the pool and blocks until every
// dispatched unit has produced its outcome.
//
// Once the token is set no further unit starts; in-flight workers
// finish at their next cancellation check point and their outcomes are
// still drained and recorded. Run always returns a populated
// BatchState; with workers=1 it degenerates to fully sequential
// execution.
func (o *Orchestrator) Run(units []*models.WorkUnit, token *models.CancelToken) models.BatchState {
	state := models.BatchState{TotalUnits: len(units)}
	results := make(chan models.Outcome)

	go func() {
		defer close(results)

		var wg sync.WaitGroup
		sem := make(chan struct{}, o.workers)

		for _, unit := range units {
			if token.Cancelled() {
				o.log.Warn("cancellation requested, no further units will start")
				break
			}

			sem <- struct{}{}

			// A slot may free up long after cancellation was requested;
			// re-check before actually launching.
			if token.Cancelled() {
				<-sem
				o.log.Warn("cancellation requested, no further units will start")
				break
			}

			wg.Add(1)
			go func(u *models.WorkUnit) {
				defer wg.Done()
				defer func() { <-sem }()
				results <- o.runner(u, token)
			}(unit)
		}

		wg.Wait()
	}()

	for outcome := range results {
		state.Record(outcome)
		o.logOutcome(outcome, state)
		if o.onOutcome != nil {
			o.onOutcome(outcome)
		}
	}

	state.Interrupted = token.Cancelled()

	o.log.Info("batch finished",
		zap.Int("total", state.TotalUnits),
		zap.Int("processed", state.Processed),
		zap.Int("encoded", state.Encoded),
		zap.Int("skipped", state.Skipped),
		zap.Int("failed", state.Failed),
		zap.Int("cancelled", state.Cancelled),
		zap.Bool("interrupted", state.Interrupted))

	return state
}

func (o *Orchestrator) logOutcome(outcome models.Outcome, state models.BatchState) {
	name := filepath.Base(outcome.Source)
	progress := fmt.Sprintf("%d/%d", state.Processed, state.TotalUnits)

	switch outcome.Kind {
	case models.OutcomeCompleted:
		o.log.Info("unit completed",
			zap.String("source", name),
			zap.String("progress", progress),
			zap.Int64("source_bytes", outcome.SourceBytes),
			zap.Int64("output_bytes", outcome.OutputBytes))
	case models.OutcomeSkipped:
		o.log.Info("unit skipped", zap.String("source", name), zap.String("progress", progress))
	case models.OutcomeCancelled:
		o.log.Warn("unit cancelled", zap.String("source", name), zap.String("progress", progress))
	case models.OutcomeFailed:
		o.log.Error("unit failed",
			zap.String("source", name),
			zap.String("progress", progress),
			zap.String("reason", outcome.Reason))
	}
}
