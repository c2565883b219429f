package filter

// Builder accumulates row groups into a batch.
type Builder struct {
	table      string
	conditions []Condition
	groups     int
}

// NewBuilder starts an empty batch for table.
func NewBuilder(table string) *Builder {
	return &Builder{table: table}
}

// AddGroup appends one row group. The first condition opens the group and is
// OR-ed to the previous group, the rest are AND-ed, the last closes the group.
// An empty group is ignored.
func (b *Builder) AddGroup(conds ...Condition) *Builder {
	if len(conds) == 0 {
		return b
	}
	last := len(conds) - 1
	for i, c := range conds {
		comb := And
		if i == 0 {
			comb = Or
		}
		b.conditions = append(b.conditions, c.WithCombinator(comb).Grouped(i == 0, i == last))
	}
	b.groups++
	return b
}

// Groups returns the number of groups added since the last Build.
func (b *Builder) Groups() int { return b.groups }

// Build returns the accumulated batch and resets the builder.
func (b *Builder) Build() Batch {
	batch := Batch{table: b.table, conditions: b.conditions, groups: b.groups}
	b.conditions = nil
	b.groups = 0
	return batch
}
