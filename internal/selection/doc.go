// Package selection turns a user's selection of incid records into bounded
// filter batches a query executor can run one at a time.
//
// BatchRows builds one group per selected row, AND-ing the row's key columns,
// and starts a new batch every blockSize rows. BatchByKey does the same for a
// flat list of key values against a single column, one page of keys per batch.
// Both preserve selection order and never deduplicate.
//
// Apply runs a batch sequence through an Executor and merges the matches in
// batch order.
package selection
