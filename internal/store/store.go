// Package store persists incid records and lookup tables in a bolt database
// and runs filter batches against the stored records.
//
// Records are keyed by the order-preserving encoding of (incid, toid,
// toid_fragment_id), so all fragments of an incid sit next to each other and
// can be read with a prefix scan. Values are msgpack encoded.
package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/openkvlab/boltdb"
	"github.com/vmihailenco/msgpack/v5"
	"rsc.io/ordered"

	"github.com/rshade/incidfilter/internal/incid"
	"github.com/rshade/incidfilter/internal/logging"
)

// Options are passed through to bolt.
type Options = boltdb.Options

// Store errors.
var (
	ErrTableNotFound = errors.New("lookup table not found")
	ErrEmptyIncid    = errors.New("record has no incid")
)

//nolint:gochecknoglobals // bucket names
var (
	bucketRecords = []byte("records")
	bucketLookup  = []byte("lookup")
)

// Store is a bolt-backed record and lookup-table store.
type Store struct {
	db *boltdb.DB
}

// Open opens or creates the database at path.
func Open(path string, mode os.FileMode, options *Options) (*Store, error) {
	db, err := boltdb.Open(path, mode, options)
	if err != nil {
		return nil, fmt.Errorf("opening store %s: %w", path, err)
	}

	err = db.Update(func(tx *boltdb.Tx) error {
		for _, name := range [][]byte{bucketRecords, bucketLookup} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialising store %s: %w", path, err)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// RecordKey returns the storage key of a record.
func RecordKey(rec incid.Record) []byte {
	return ordered.Encode(rec.Incid, rec.Toid, rec.ToidFragmentID)
}

// PutRecords inserts or replaces records.
func (s *Store) PutRecords(ctx context.Context, records ...incid.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := s.db.Update(func(tx *boltdb.Tx) error {
		b := tx.Bucket(bucketRecords)
		for _, rec := range records {
			if rec.Incid == "" {
				return fmt.Errorf("%w: toid %q", ErrEmptyIncid, rec.Toid)
			}
			value, err := msgpack.Marshal(rec)
			if err != nil {
				return fmt.Errorf("encoding record %s: %w", rec.Incid, err)
			}
			if err := b.Put(RecordKey(rec), value); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	logging.FromContext(ctx).Debug().Ctx(ctx).
		Str("component", "store").
		Int("records", len(records)).
		Msg("records stored")
	return nil
}

// GetRecord reads one record by its full key.
func (s *Store) GetRecord(ctx context.Context, id, toid, fragment string) (incid.Record, bool, error) {
	if err := ctx.Err(); err != nil {
		return incid.Record{}, false, err
	}

	var rec incid.Record
	var found bool
	err := s.db.View(func(tx *boltdb.Tx) error {
		value := tx.Bucket(bucketRecords).Get(ordered.Encode(id, toid, fragment))
		if value == nil {
			return nil
		}
		found = true
		return msgpack.Unmarshal(value, &rec)
	})
	return rec, found, err
}

// RecordsByIncid returns every fragment of an incid in key order.
func (s *Store) RecordsByIncid(ctx context.Context, id string) ([]incid.Record, error) {
	var out []incid.Record
	err := s.scanPrefix(ctx, ordered.Encode(id), func(rec incid.Record) (bool, error) {
		out = append(out, rec)
		return true, nil
	})
	return out, err
}

// Scan calls fn for every record in key order until fn returns false.
func (s *Store) Scan(ctx context.Context, fn func(incid.Record) (bool, error)) error {
	return s.scanPrefix(ctx, nil, fn)
}

// Count returns the number of stored records.
func (s *Store) Count() (int, error) {
	var n int
	err := s.db.View(func(tx *boltdb.Tx) error {
		n = tx.Bucket(bucketRecords).Stats().KeyN
		return nil
	})
	return n, err
}

func (s *Store) scanPrefix(ctx context.Context, prefix []byte, fn func(incid.Record) (bool, error)) error {
	return s.db.View(func(tx *boltdb.Tx) error {
		c := tx.Bucket(bucketRecords).Cursor()

		var k, v []byte
		if prefix == nil {
			k, v = c.First()
		} else {
			k, v = c.Seek(prefix)
		}
		for ; k != nil && bytes.HasPrefix(k, prefix); k, v = c.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			var rec incid.Record
			if err := msgpack.Unmarshal(v, &rec); err != nil {
				return fmt.Errorf("decoding record: %w", err)
			}
			more, err := fn(rec)
			if err != nil {
				return err
			}
			if !more {
				return nil
			}
		}
		return nil
	})
}
