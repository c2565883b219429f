package store

import (
	"context"
	"fmt"

	"github.com/openkvlab/boltdb"
	"github.com/vmihailenco/msgpack/v5"
	"rsc.io/ordered"

	"github.com/rshade/incidfilter/internal/lookup"
)

// PutLookup replaces the stored rows of a lookup table.
func (s *Store) PutLookup(ctx context.Context, table *lookup.Table) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if table == nil || table.Name == "" {
		return fmt.Errorf("%w: table has no name", ErrTableNotFound)
	}

	return s.db.Update(func(tx *boltdb.Tx) error {
		parent := tx.Bucket(bucketLookup)
		name := []byte(table.Name)
		if parent.Bucket(name) != nil {
			if err := parent.DeleteBucket(name); err != nil {
				return err
			}
		}
		b, err := parent.CreateBucket(name)
		if err != nil {
			return err
		}
		for _, row := range table.Rows {
			value, err := msgpack.Marshal(row)
			if err != nil {
				return fmt.Errorf("encoding lookup row %s: %w", row.Code, err)
			}
			if err := b.Put(ordered.Encode(row.Code), value); err != nil {
				return err
			}
		}
		return nil
	})
}

// LookupTable reads a lookup table. Rows come back ordered by code.
func (s *Store) LookupTable(ctx context.Context, name string) (*lookup.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	table := &lookup.Table{Name: name}
	err := s.db.View(func(tx *boltdb.Tx) error {
		b := tx.Bucket(bucketLookup).Bucket([]byte(name))
		if b == nil {
			return fmt.Errorf("%w: %s", ErrTableNotFound, name)
		}
		return b.ForEach(func(_, v []byte) error {
			var row lookup.Row
			if err := msgpack.Unmarshal(v, &row); err != nil {
				return fmt.Errorf("decoding lookup row: %w", err)
			}
			table.Rows = append(table.Rows, row)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return table, nil
}
