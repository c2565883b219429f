package selection

import (
	"context"
	"errors"

	"github.com/rshade/incidfilter/internal/engine/batch"
	"github.com/rshade/incidfilter/internal/filter"
	"github.com/rshade/incidfilter/internal/incid"
	"github.com/rshade/incidfilter/internal/logging"
)

// Executor runs one filter batch and returns the matching records.
type Executor interface {
	Select(ctx context.Context, b filter.Batch) ([]incid.Record, error)
}

// ErrNilExecutor is returned by Apply without an executor.
var ErrNilExecutor = errors.New("executor cannot be nil")

// Apply runs every batch through exec, at most concurrency at a time, and
// returns the matches concatenated in batch order. No batches means no matches.
func Apply(ctx context.Context, exec Executor, batches []filter.Batch, concurrency int) ([]incid.Record, error) {
	if exec == nil {
		return nil, ErrNilExecutor
	}
	if len(batches) == 0 {
		return nil, nil
	}

	log := logging.FromContext(ctx)
	results := make([][]incid.Record, len(batches))

	p, _ := batch.NewProcessor[filter.Batch](1)
	p.WithProgress(func(s batch.ProgressSnapshot) {
		log.Debug().Ctx(ctx).
			Str("component", "selection").
			Str("operation", "apply").
			Int("batches_done", s.ProcessedBatches).
			Int("batches_total", s.TotalBatches).
			Float64("percent", s.PercentComplete).
			Msg("batch applied")
	})

	handler := func(ctx context.Context, items []filter.Batch, index int) error {
		matched, err := exec.Select(ctx, items[0])
		if err != nil {
			return err
		}
		results[index] = matched
		return nil
	}

	var err error
	if concurrency > 1 {
		err = p.ProcessConcurrent(ctx, batches, handler, concurrency)
	} else {
		err = p.Process(ctx, batches, handler)
	}
	if err != nil {
		log.Error().Ctx(ctx).
			Str("component", "selection").
			Str("operation", "apply").
			Err(err).
			Msg("applying batches failed")
		return nil, err
	}

	var total int
	for _, r := range results {
		total += len(r)
	}
	merged := make([]incid.Record, 0, total)
	for _, r := range results {
		merged = append(merged, r...)
	}
	return merged, nil
}
