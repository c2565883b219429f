package filter

import (
	"strings"
)

// Batch is an ordered list of conditions forming one bounded predicate.
type Batch struct {
	table      string
	conditions []Condition
	groups     int
}

// Table returns the name of the table the batch filters.
func (b Batch) Table() string { return b.table }

// Len returns the number of conditions.
func (b Batch) Len() int { return len(b.conditions) }

// Groups returns the number of row groups, i.e. the number of selected rows or
// keys the batch covers.
func (b Batch) Groups() int { return b.groups }

// IsEmpty reports whether the batch has no conditions.
func (b Batch) IsEmpty() bool { return len(b.conditions) == 0 }

// Conditions returns a copy of the batch's conditions.
func (b Batch) Conditions() []Condition {
	out := make([]Condition, len(b.conditions))
	copy(out, b.conditions)
	return out
}

// Values returns, in order, the values compared against the named column.
func (b Batch) Values(column string) []string {
	var out []string
	for _, c := range b.conditions {
		if c.column.Name == column {
			out = append(out, c.value)
		}
	}
	return out
}

// Terms splits the batch at OR boundaries. Each term is the AND-ed conditions
// of one row group.
func (b Batch) Terms() [][]Condition {
	var terms [][]Condition
	for i, c := range b.conditions {
		if i == 0 || c.combinator == Or {
			terms = append(terms, nil)
		}
		terms[len(terms)-1] = append(terms[len(terms)-1], c)
	}
	return terms
}

// String renders the batch as a textual predicate, for example
// (incid = 'A' AND toid = '1') OR (incid = 'B' AND toid = '2').
func (b Batch) String() string {
	var sb strings.Builder
	for i, c := range b.conditions {
		if i > 0 {
			sb.WriteString(" ")
			sb.WriteString(string(c.combinator))
			sb.WriteString(" ")
		}
		if c.openGroup {
			sb.WriteString("(")
		}
		sb.WriteString(c.column.Name)
		sb.WriteString(" ")
		sb.WriteString(string(c.operator))
		sb.WriteString(" '")
		sb.WriteString(strings.ReplaceAll(c.value, "'", "''"))
		sb.WriteString("'")
		if c.closeGroup {
			sb.WriteString(")")
		}
	}
	return sb.String()
}

// Match evaluates the batch against a record. lookup returns the record's value
// for a column and false when the record has no such column, which fails the
// comparison. AND binds tighter than OR, as in SQL. An empty batch matches nothing.
func (b Batch) Match(lookup func(Column) (string, bool)) bool {
	if len(b.conditions) == 0 {
		return false
	}

	var matched, term bool
	for i, c := range b.conditions {
		v, ok := lookup(c.column)
		eq := ok && v == c.value
		switch {
		case i == 0:
			term = eq
		case c.combinator == Or:
			matched = matched || term
			term = eq
		default:
			term = term && eq
		}
	}
	return matched || term
}
