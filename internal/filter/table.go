package filter

// Column identifies a column by name and ordinal position in its table.
type Column struct {
	Name     string
	Position int
}

// Table is a schema reference: a name and its ordered columns.
type Table struct {
	name    string
	columns []Column
}

// NewTable creates a table whose columns take their positions from argument order.
func NewTable(name string, columns ...string) Table {
	cols := make([]Column, len(columns))
	for i, c := range columns {
		cols[i] = Column{Name: c, Position: i}
	}
	return Table{name: name, columns: cols}
}

// Name returns the table name.
func (t Table) Name() string { return t.name }

// Columns returns a copy of the table's columns.
func (t Table) Columns() []Column {
	out := make([]Column, len(t.columns))
	copy(out, t.columns)
	return out
}

// Column looks a column up by name.
func (t Table) Column(name string) (Column, bool) {
	for _, c := range t.columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// ColumnAt looks a column up by position.
func (t Table) ColumnAt(position int) (Column, bool) {
	if position < 0 || position >= len(t.columns) {
		return Column{}, false
	}
	return t.columns[position], true
}
