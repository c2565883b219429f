package batch

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Batch size limits.
const (
	// DefaultBatchSize is the number of items per batch when none is configured.
	DefaultBatchSize = 100

	// MinBatchSize is the smallest allowed batch size.
	MinBatchSize = 1

	// MaxBatchSize is the largest allowed batch size.
	MaxBatchSize = 10000
)

// Common batch processing errors.
var (
	ErrInvalidBatchSize = errors.New("invalid batch size")
	ErrNilHandler       = errors.New("batch handler cannot be nil")
	ErrEmptyItems       = errors.New("items slice cannot be empty")
)

// Handler processes one batch. index is the 0-based batch number.
type Handler[T any] func(ctx context.Context, items []T, index int) error

// ProgressFunc is invoked after each batch completes.
type ProgressFunc func(snapshot ProgressSnapshot)

// Processor cuts item slices into batches of a fixed size.
type Processor[T any] struct {
	size       int
	onProgress ProgressFunc
}

// NewProcessor creates a processor with the given batch size.
func NewProcessor[T any](size int) (*Processor[T], error) {
	if err := ValidateSize(size); err != nil {
		return nil, err
	}
	return &Processor[T]{size: size}, nil
}

// NewUnboundedProcessor creates a processor that only requires size to be at
// least MinBatchSize.
func NewUnboundedProcessor[T any](size int) (*Processor[T], error) {
	if size < MinBatchSize {
		return nil, fmt.Errorf("%w: got %d, want >= %d", ErrInvalidBatchSize, size, MinBatchSize)
	}
	return &Processor[T]{size: size}, nil
}

// NewProcessorWithDefaults creates a processor using DefaultBatchSize.
func NewProcessorWithDefaults[T any]() *Processor[T] {
	return &Processor[T]{size: DefaultBatchSize}
}

// ValidateSize checks size against MinBatchSize and MaxBatchSize.
func ValidateSize(size int) error {
	if size < MinBatchSize || size > MaxBatchSize {
		return fmt.Errorf("%w: got %d, want %d..%d", ErrInvalidBatchSize, size, MinBatchSize, MaxBatchSize)
	}
	return nil
}

// WithProgress sets a callback run after each completed batch.
func (p *Processor[T]) WithProgress(fn ProgressFunc) *Processor[T] {
	p.onProgress = fn
	return p
}

// Size returns the configured batch size.
func (p *Processor[T]) Size() int {
	return p.size
}

// Count returns the number of batches needed for total items.
func (p *Processor[T]) Count(total int) int {
	if total <= 0 {
		return 0
	}
	return (total + p.size - 1) / p.size
}

// Bounds returns the [start, end) index pair of every batch for total items.
func (p *Processor[T]) Bounds(total int) [][2]int {
	bounds := make([][2]int, p.Count(total))
	for i := range bounds {
		start := i * p.size
		end := min(start+p.size, total)
		bounds[i] = [2]int{start, end}
	}
	return bounds
}

// Chunks returns items cut into batches. The chunks share items' backing array.
func (p *Processor[T]) Chunks(items []T) [][]T {
	bounds := p.Bounds(len(items))
	chunks := make([][]T, len(bounds))
	for i, b := range bounds {
		chunks[i] = items[b[0]:b[1]:b[1]]
	}
	return chunks
}

// Process runs handler over each batch in order and stops at the first error.
func (p *Processor[T]) Process(ctx context.Context, items []T, handler Handler[T]) error {
	if len(items) == 0 {
		return ErrEmptyItems
	}
	if handler == nil {
		return ErrNilHandler
	}

	chunks := p.Chunks(items)
	progress := NewProgress(len(items), len(chunks), p.size)

	for i, chunk := range chunks {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := handler(ctx, chunk, i); err != nil {
			return fmt.Errorf("batch %d failed: %w", i, err)
		}
		p.report(progress, len(chunk))
	}
	return nil
}

// ProcessConcurrent runs handler over the batches with at most limit running at
// once. The first error cancels the context passed to the remaining handlers and
// is returned. Handlers must write results by batch index to keep ordering.
func (p *Processor[T]) ProcessConcurrent(
	ctx context.Context,
	items []T,
	handler Handler[T],
	limit int,
) error {
	if len(items) == 0 {
		return ErrEmptyItems
	}
	if handler == nil {
		return ErrNilHandler
	}
	if limit < 1 {
		limit = 1
	}

	chunks := p.Chunks(items)
	progress := NewProgress(len(items), len(chunks), p.size)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, chunk := range chunks {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := handler(gctx, chunk, i); err != nil {
				return fmt.Errorf("batch %d failed: %w", i, err)
			}
			p.report(progress, len(chunk))
			return nil
		})
	}
	return g.Wait()
}

func (p *Processor[T]) report(progress *Progress, processed int) {
	progress.AddProcessed(processed)
	if p.onProgress != nil {
		p.onProgress(progress.Snapshot())
	}
}
