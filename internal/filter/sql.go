package filter

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

// Placeholder styles accepted by SelectSQL.
var (
	Question sq.PlaceholderFormat = sq.Question
	Dollar   sq.PlaceholderFormat = sq.Dollar
)

// Sqlizer converts the batch into a squirrel expression: an OR of one AND per
// row group. An empty batch yields a predicate that matches nothing.
func (b Batch) Sqlizer() sq.Sqlizer {
	or := sq.Or{}
	for _, term := range b.Terms() {
		and := sq.And{}
		for _, c := range term {
			and = append(and, sq.Eq{c.column.Name: c.value})
		}
		or = append(or, and)
	}
	return or
}

// ToSql renders the batch as a parameterized WHERE fragment using '?'
// placeholders. It makes Batch a squirrel.Sqlizer.
//
//nolint:revive,stylecheck // method name fixed by the squirrel.Sqlizer interface
func (b Batch) ToSql() (string, []any, error) {
	return b.Sqlizer().ToSql()
}

// SelectSQL renders a complete SELECT statement over the batch's table. With no
// columns every column is selected.
func SelectSQL(b Batch, format sq.PlaceholderFormat, columns ...string) (string, []any, error) {
	if b.table == "" {
		return "", nil, ErrNoTable
	}
	if len(columns) == 0 {
		columns = []string{"*"}
	}

	query, args, err := sq.Select(columns...).
		From(b.table).
		Where(b.Sqlizer()).
		PlaceholderFormat(format).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("rendering select for %s: %w", b.table, err)
	}
	return query, args, nil
}
