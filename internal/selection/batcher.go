package selection

import (
	"errors"
	"fmt"

	"github.com/rshade/incidfilter/internal/engine/batch"
	"github.com/rshade/incidfilter/internal/filter"
	"github.com/rshade/incidfilter/internal/incid"
	"github.com/rshade/incidfilter/internal/logging"
)

// ErrEmptySelection is returned by BatchRows when no rows are selected.
var ErrEmptySelection = errors.New("selection is empty")

// BatchRows cuts rows into batches of at most blockSize rows. Each row becomes
// one group of len(keys) conditions. blockSize must be at least 1; there is no
// upper limit.
func BatchRows(rows []incid.Record, keys KeySet, blockSize int) ([]filter.Batch, error) {
	if len(rows) == 0 {
		return nil, ErrEmptySelection
	}
	if keys.Len() == 0 {
		return nil, ErrNoKeyColumns
	}
	p, err := batch.NewUnboundedProcessor[incid.Record](blockSize)
	if err != nil {
		return nil, fmt.Errorf("block size: %w", err)
	}

	b := filter.NewBuilder(keys.Table().Name())
	chunks := p.Chunks(rows)
	batches := make([]filter.Batch, 0, len(chunks))
	for _, chunk := range chunks {
		for _, rec := range chunk {
			b.AddGroup(keys.Conditions(rec)...)
		}
		batches = append(batches, b.Build())
	}
	return batches, nil
}

// BatchByKey cuts keys into pages of pageSize, each page OR-ing equalities
// against column. It returns nil when there is nothing to filter. A pageSize
// below 1 is clamped to 1.
func BatchByKey(pageSize int, column filter.Column, table filter.Table, keys []string) []filter.Batch {
	if len(keys) == 0 {
		return nil
	}
	if pageSize < batch.MinBatchSize {
		logger := logging.GetLogger()
		logger.Warn().
			Str("component", "selection").
			Int("page_size", pageSize).
			Int("clamped", batch.MinBatchSize).
			Msg("invalid page size, clamping")
		pageSize = batch.MinBatchSize
	}
	p, _ := batch.NewUnboundedProcessor[string](pageSize)

	b := filter.NewBuilder(table.Name())
	chunks := p.Chunks(keys)
	batches := make([]filter.Batch, 0, len(chunks))
	for _, chunk := range chunks {
		for _, key := range chunk {
			b.AddGroup(filter.Eq(table.Name(), column, key))
		}
		batches = append(batches, b.Build())
	}
	return batches
}

// Batcher applies configured sizes to the batching functions.
type Batcher struct {
	BlockSize int
	PageSize  int
}

// NewBatcher returns a Batcher, substituting batch.DefaultBatchSize for
// non-positive sizes.
func NewBatcher(blockSize, pageSize int) Batcher {
	if blockSize <= 0 {
		blockSize = batch.DefaultBatchSize
	}
	if pageSize <= 0 {
		pageSize = batch.DefaultBatchSize
	}
	return Batcher{BlockSize: blockSize, PageSize: pageSize}
}

// Rows calls BatchRows with the configured block size.
func (b Batcher) Rows(rows []incid.Record, keys KeySet) ([]filter.Batch, error) {
	return BatchRows(rows, keys, b.BlockSize)
}

// Keys calls BatchByKey with the configured page size.
func (b Batcher) Keys(column filter.Column, table filter.Table, keys []string) []filter.Batch {
	return BatchByKey(b.PageSize, column, table, keys)
}
