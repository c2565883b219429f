// Package batch splits ordered items into fixed-size batches and runs a handler
// over each batch, sequentially or with bounded concurrency.
//
// The selection batchers use Bounds to cut a selection into filter batches, and
// the executor fan-out uses ProcessConcurrent to run those batches against a
// query executor. Batch boundaries never reorder items: batch i holds items
// [i*size, min((i+1)*size, n)).
package batch
