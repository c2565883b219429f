package store

import (
	"context"
	"slices"

	"github.com/rshade/incidfilter/internal/filter"
	"github.com/rshade/incidfilter/internal/incid"
	"github.com/rshade/incidfilter/internal/selection"
)

// Select returns the stored records matching b, in key order. When every row
// group constrains incid, only those incids are read.
func (s *Store) Select(ctx context.Context, b filter.Batch) ([]incid.Record, error) {
	if b.IsEmpty() {
		return nil, nil
	}

	var out []incid.Record
	collect := func(rec incid.Record) (bool, error) {
		if b.Match(func(c filter.Column) (string, bool) { return selection.RecordValue(rec, c.Name) }) {
			out = append(out, rec)
		}
		return true, nil
	}

	incids, ok := groupIncids(b)
	if !ok {
		return out, s.Scan(ctx, collect)
	}
	for _, id := range incids {
		matched, err := s.RecordsByIncid(ctx, id)
		if err != nil {
			return nil, err
		}
		for _, rec := range matched {
			_, _ = collect(rec)
		}
	}
	return out, nil
}

// groupIncids returns the distinct incids the batch's groups compare against,
// sorted so reads follow key order. ok is false when some group does not
// constrain incid.
func groupIncids(b filter.Batch) ([]string, bool) {
	seen := make(map[string]struct{})
	for _, term := range b.Terms() {
		found := false
		for _, c := range term {
			if c.Column().Name == selection.RoleIncid.ColumnName() {
				seen[c.Value()] = struct{}{}
				found = true
				break
			}
		}
		if !found {
			return nil, false
		}
	}

	incids := make([]string, 0, len(seen))
	for id := range seen {
		incids = append(incids, id)
	}
	slices.Sort(incids)
	return incids, true
}
