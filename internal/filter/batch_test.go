package filter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/incidfilter/internal/filter"
)

func testTable() filter.Table {
	return filter.NewTable("incid_mm_polygons", "incid", "toid", "toid_fragment_id")
}

func rowGroup(t *testing.T, table filter.Table, incid, toid string) []filter.Condition {
	t.Helper()
	incidCol, ok := table.Column("incid")
	require.True(t, ok)
	toidCol, ok := table.Column("toid")
	require.True(t, ok)
	return []filter.Condition{
		filter.Eq(table.Name(), incidCol, incid),
		filter.Eq(table.Name(), toidCol, toid),
	}
}

func TestTable(t *testing.T) {
	table := testTable()

	col, ok := table.Column("toid")
	require.True(t, ok)
	assert.Equal(t, filter.Column{Name: "toid", Position: 1}, col)

	col, ok = table.ColumnAt(2)
	require.True(t, ok)
	assert.Equal(t, "toid_fragment_id", col.Name)

	_, ok = table.Column("missing")
	assert.False(t, ok)
	_, ok = table.ColumnAt(3)
	assert.False(t, ok)

	cols := table.Columns()
	cols[0].Name = "changed"
	assert.Equal(t, "incid", table.Columns()[0].Name, "Columns must return a copy")
}

func TestCondition_Immutable(t *testing.T) {
	col := filter.Column{Name: "incid"}
	base := filter.Eq("incid", col, "1")
	changed := base.WithCombinator(filter.Or).Grouped(true, true)

	assert.Equal(t, filter.And, base.Combinator())
	assert.False(t, base.OpensGroup())
	assert.Equal(t, filter.Or, changed.Combinator())
	assert.True(t, changed.OpensGroup())
	assert.True(t, changed.ClosesGroup())
	assert.Equal(t, filter.OpEq, changed.Operator())
	assert.Equal(t, "1", changed.Value())
	assert.Equal(t, "incid", changed.Table())
	assert.Equal(t, col, changed.Column())
}

func TestBuilder_Groups(t *testing.T) {
	table := testTable()
	b := filter.NewBuilder(table.Name())
	b.AddGroup(rowGroup(t, table, "A", "1")...)
	b.AddGroup(rowGroup(t, table, "B", "2")...)
	b.AddGroup()
	assert.Equal(t, 2, b.Groups())

	batch := b.Build()
	assert.Equal(t, 0, b.Groups(), "Build resets the builder")
	assert.Equal(t, 2, batch.Groups())
	require.Equal(t, 4, batch.Len())

	conds := batch.Conditions()
	assert.Equal(t, filter.Or, conds[0].Combinator())
	assert.True(t, conds[0].OpensGroup())
	assert.False(t, conds[0].ClosesGroup())
	assert.Equal(t, filter.And, conds[1].Combinator())
	assert.True(t, conds[1].ClosesGroup())
	assert.Equal(t, filter.Or, conds[2].Combinator())
	assert.True(t, conds[2].OpensGroup())

	assert.Equal(t, []string{"A", "B"}, batch.Values("incid"))
	assert.Len(t, batch.Terms(), 2)
}

func TestBatch_String(t *testing.T) {
	table := testTable()
	batch := filter.NewBuilder(table.Name()).
		AddGroup(rowGroup(t, table, "HLU/1", "osgb1")...).
		AddGroup(rowGroup(t, table, "O'Brien", "osgb2")...).
		Build()

	assert.Equal(t,
		"(incid = 'HLU/1' AND toid = 'osgb1') OR (incid = 'O''Brien' AND toid = 'osgb2')",
		batch.String())

	single := filter.NewBuilder(table.Name()).
		AddGroup(filter.Eq(table.Name(), filter.Column{Name: "incid"}, "A")).
		AddGroup(filter.Eq(table.Name(), filter.Column{Name: "incid"}, "B")).
		Build()
	assert.Equal(t, "(incid = 'A') OR (incid = 'B')", single.String())
}

func TestBatch_Match(t *testing.T) {
	table := testTable()
	batch := filter.NewBuilder(table.Name()).
		AddGroup(rowGroup(t, table, "A", "1")...).
		AddGroup(rowGroup(t, table, "B", "2")...).
		Build()

	record := func(values map[string]string) func(filter.Column) (string, bool) {
		return func(c filter.Column) (string, bool) {
			v, ok := values[c.Name]
			return v, ok
		}
	}

	tests := []struct {
		name   string
		values map[string]string
		want   bool
	}{
		{"first group", map[string]string{"incid": "A", "toid": "1"}, true},
		{"second group", map[string]string{"incid": "B", "toid": "2"}, true},
		{"crossed groups", map[string]string{"incid": "A", "toid": "2"}, false},
		{"missing column", map[string]string{"incid": "A"}, false},
		{"no match", map[string]string{"incid": "C", "toid": "3"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, batch.Match(record(tt.values)))
		})
	}

	t.Run("empty batch", func(t *testing.T) {
		empty := filter.NewBuilder(table.Name()).Build()
		assert.True(t, empty.IsEmpty())
		assert.False(t, empty.Match(record(map[string]string{"incid": "A"})))
	})
}

func TestBatch_Document(t *testing.T) {
	table := testTable()
	batch := filter.NewBuilder(table.Name()).AddGroup(rowGroup(t, table, "A", "1")...).Build()

	docs := filter.Documents([]filter.Batch{batch})
	require.Len(t, docs, 1)
	doc := docs[0]
	assert.Equal(t, 0, doc.Index)
	assert.Equal(t, "incid_mm_polygons", doc.Table)
	assert.Equal(t, 1, doc.Groups)
	assert.Equal(t, batch.String(), doc.Predicate)
	require.Len(t, doc.Conditions, 2)
	assert.Equal(t, "OR", doc.Conditions[0].Combinator)
	assert.True(t, doc.Conditions[0].OpenGroup)
	assert.Equal(t, 1, doc.Conditions[1].Position)
	assert.True(t, doc.Conditions[1].CloseGroup)
}
