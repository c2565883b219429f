package filter

// Operator is the comparison a condition applies.
type Operator string

// OpEq is the only operator selections produce.
const OpEq Operator = "="

// Combinator joins a condition to the one before it.
type Combinator string

// Combinators.
const (
	And Combinator = "AND"
	Or  Combinator = "OR"
)

// Condition compares one column of a table against a value.
type Condition struct {
	table      string
	column     Column
	operator   Operator
	value      string
	combinator Combinator
	openGroup  bool
	closeGroup bool
}

// Eq creates an equality condition joined with AND and no grouping.
func Eq(table string, column Column, value string) Condition {
	return Condition{
		table:      table,
		column:     column,
		operator:   OpEq,
		value:      value,
		combinator: And,
	}
}

// Table returns the name of the table the condition applies to.
func (c Condition) Table() string { return c.table }

// Column returns the compared column.
func (c Condition) Column() Column { return c.column }

// Operator returns the comparison operator.
func (c Condition) Operator() Operator { return c.operator }

// Value returns the value the column is compared against.
func (c Condition) Value() string { return c.value }

// Combinator returns how the condition joins the one before it.
func (c Condition) Combinator() Combinator { return c.combinator }

// OpensGroup reports whether the condition starts a row group.
func (c Condition) OpensGroup() bool { return c.openGroup }

// ClosesGroup reports whether the condition ends a row group.
func (c Condition) ClosesGroup() bool { return c.closeGroup }

// WithCombinator returns a copy of c joined to its predecessor by comb.
func (c Condition) WithCombinator(comb Combinator) Condition {
	c.combinator = comb
	return c
}

// Grouped returns a copy of c with the given grouping markers.
func (c Condition) Grouped(open, closing bool) Condition {
	c.openGroup = open
	c.closeGroup = closing
	return c
}
