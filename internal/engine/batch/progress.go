package batch

import (
	"sync"
	"time"
)

// percentMultiplier converts a ratio to a percentage.
const percentMultiplier = 100

// Progress tracks how many items and batches have been processed. Safe for
// concurrent use.
type Progress struct {
	totalItems       int
	processedItems   int
	totalBatches     int
	processedBatches int
	batchSize        int
	startTime        time.Time

	mu sync.RWMutex
}

// NewProgress creates a tracker starting now.
func NewProgress(totalItems, totalBatches, batchSize int) *Progress {
	return &Progress{
		totalItems:   totalItems,
		totalBatches: totalBatches,
		batchSize:    batchSize,
		startTime:    time.Now(),
	}
}

// AddProcessed records one completed batch of n items.
func (p *Progress) AddProcessed(n int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.processedItems += n
	p.processedBatches++
}

// PercentComplete returns the completion percentage (0-100).
func (p *Progress) PercentComplete() float64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.percentCompleteLocked()
}

// IsComplete reports whether every item has been processed.
func (p *Progress) IsComplete() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.processedItems >= p.totalItems
}

// Snapshot returns a copy of the current state.
func (p *Progress) Snapshot() ProgressSnapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return ProgressSnapshot{
		TotalItems:       p.totalItems,
		ProcessedItems:   p.processedItems,
		TotalBatches:     p.totalBatches,
		ProcessedBatches: p.processedBatches,
		BatchSize:        p.batchSize,
		PercentComplete:  p.percentCompleteLocked(),
		Elapsed:          time.Since(p.startTime),
	}
}

func (p *Progress) percentCompleteLocked() float64 {
	if p.totalItems == 0 {
		return 0
	}
	return float64(p.processedItems) / float64(p.totalItems) * percentMultiplier
}

// ProgressSnapshot is an immutable view of a Progress.
type ProgressSnapshot struct {
	TotalItems       int
	ProcessedItems   int
	TotalBatches     int
	ProcessedBatches int
	BatchSize        int
	PercentComplete  float64
	Elapsed          time.Duration
}
