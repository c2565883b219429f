package lookup_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/incidfilter/internal/lookup"
)

func TestParseOperation(t *testing.T) {
	op, err := lookup.ParseOperation("bulkupdate")
	require.NoError(t, err)
	assert.Equal(t, lookup.BulkUpdate, op)
	assert.Equal(t, "BulkUpdate", op.String())

	_, err = lookup.ParseOperation("Reticulate")
	require.ErrorIs(t, err, lookup.ErrUnknownOperation)

	assert.Len(t, lookup.Operations(), 8)
	assert.Equal(t, "Operation(42)", lookup.Operation(42).String())
}

func TestCodes_Resolve(t *testing.T) {
	codes := lookup.DefaultCodes()
	for _, op := range lookup.Operations() {
		t.Run(op.String(), func(t *testing.T) {
			res := codes.Resolve(op)
			assert.True(t, res.OK())
			assert.NotEmpty(t, res.Code)
		})
	}

	res := lookup.Codes{}.Resolve(lookup.BulkUpdate)
	assert.Equal(t, lookup.NotFound, res.Status)
	assert.ErrorIs(t, res.Err(), lookup.ErrNotFound)
}

func TestDescriptionPattern(t *testing.T) {
	tests := []struct {
		name        string
		description string
		want        bool
	}{
		{"BulkUpdate", "Bulk Update", true},
		{"BulkUpdate", "Bulk  Update", true},
		{"BulkUpdate", "bulk update ", true},
		{"BulkUpdate", "BulkUpdate", true},
		{"BulkUpdate", "OSMM Bulk Update", false},
		{"BulkUpdate", "Bulk Updates", false},
		{"OSMMBulkUpdate", "OSMM Bulk Update", true},
		{"LogicalSplit", "Logical split", true},
	}

	for _, tt := range tests {
		t.Run(tt.name+"/"+tt.description, func(t *testing.T) {
			pattern, err := lookup.DescriptionPattern(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.want, pattern.MatchString(tt.description))
		})
	}

	for _, name := range []string{"", "_", "  "} {
		_, err := lookup.DescriptionPattern(name)
		require.ErrorIs(t, err, lookup.ErrEmptyName)
		assert.NotErrorIs(t, err, lookup.ErrNotFound)
	}
}

func TestTable_MatchDescription(t *testing.T) {
	table := &lookup.Table{Name: "lut_operation", Rows: []lookup.Row{
		{Code: "BU", Description: "Bulk  Update"},
		{Code: "LS", Description: "Logical Split"},
		{Code: "LS2", Description: "logical   split"},
	}}

	res := table.MatchDescription("BulkUpdate")
	assert.Equal(t, lookup.Found, res.Status)
	assert.Equal(t, "BU", res.Code)
	assert.NoError(t, res.Err())

	res = table.MatchDescription("LogicalSplit")
	assert.Equal(t, lookup.Ambiguous, res.Status)
	assert.Empty(t, res.Code)
	assert.Equal(t, []string{"LS", "LS2"}, res.Matches)
	assert.ErrorIs(t, res.Err(), lookup.ErrAmbiguous)

	res = table.MatchDescription("PhysicalMerge")
	assert.Equal(t, lookup.NotFound, res.Status)
	assert.Equal(t, "not found", res.Status.String())
}

func TestParseTable(t *testing.T) {
	doc := `name: lut_operation
rows:
  - code: BU
    description: Bulk Update
  - code: PS
    description: Physical Split
`
	table, err := lookup.ParseTable(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, "lut_operation", table.Name)
	require.Len(t, table.Rows, 2)
	assert.True(t, table.HasCode("PS"))
	assert.False(t, table.HasCode("XX"))

	_, err = lookup.ParseTable(strings.NewReader("rows: [unterminated"))
	assert.Error(t, err)
}

func TestResolver(t *testing.T) {
	ctx := context.Background()

	t.Run("static map without table", func(t *testing.T) {
		res := lookup.NewResolver(nil, nil).Resolve(ctx, lookup.PhysicalSplit)
		assert.Equal(t, lookup.Found, res.Status)
		assert.Equal(t, "PS", res.Code)
	})

	t.Run("mapped code present in table", func(t *testing.T) {
		table := &lookup.Table{Rows: []lookup.Row{{Code: "BU", Description: "something else"}}}
		res := lookup.NewResolver(nil, table).Resolve(ctx, lookup.BulkUpdate)
		assert.Equal(t, "BU", res.Code)
	})

	t.Run("falls back to description", func(t *testing.T) {
		table := &lookup.Table{Rows: []lookup.Row{{Code: "X1", Description: "Bulk update"}}}
		res := lookup.NewResolver(lookup.Codes{}, table).Resolve(ctx, lookup.BulkUpdate)
		assert.Equal(t, lookup.Found, res.Status)
		assert.Equal(t, "X1", res.Code)
	})

	t.Run("ambiguous fallback", func(t *testing.T) {
		table := &lookup.Table{Rows: []lookup.Row{
			{Code: "X1", Description: "Bulk update"},
			{Code: "X2", Description: "BULK UPDATE"},
		}}
		res := lookup.NewResolver(lookup.Codes{}, table).Resolve(ctx, lookup.BulkUpdate)
		assert.Equal(t, lookup.Ambiguous, res.Status)
		assert.Equal(t, []string{"X1", "X2"}, res.Matches)
	})

	t.Run("unmapped without table", func(t *testing.T) {
		res := lookup.NewResolver(lookup.Codes{}, nil).Resolve(ctx, lookup.BulkUpdate)
		assert.Equal(t, lookup.NotFound, res.Status)
	})
}
