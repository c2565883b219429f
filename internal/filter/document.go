package filter

// ConditionDocument is the serializable form of a Condition.
type ConditionDocument struct {
	Column     string `json:"column"            msgpack:"column"            yaml:"column"`
	Position   int    `json:"position"          msgpack:"position"          yaml:"position"`
	Operator   string `json:"operator"          msgpack:"operator"          yaml:"operator"`
	Value      string `json:"value"             msgpack:"value"             yaml:"value"`
	Combinator string `json:"combinator"        msgpack:"combinator"        yaml:"combinator"`
	OpenGroup  bool   `json:"open_group,omitempty"  msgpack:"open_group,omitempty"  yaml:"open_group,omitempty"`
	CloseGroup bool   `json:"close_group,omitempty" msgpack:"close_group,omitempty" yaml:"close_group,omitempty"`
}

// BatchDocument is the serializable form of a Batch.
type BatchDocument struct {
	Index      int                 `json:"index"      msgpack:"index"      yaml:"index"`
	Table      string              `json:"table"      msgpack:"table"      yaml:"table"`
	Groups     int                 `json:"groups"     msgpack:"groups"     yaml:"groups"`
	Predicate  string              `json:"predicate"  msgpack:"predicate"  yaml:"predicate"`
	Conditions []ConditionDocument `json:"conditions" msgpack:"conditions" yaml:"conditions"`
}

// Document returns the serializable form of b, tagged with its position in a
// batch sequence.
func (b Batch) Document(index int) BatchDocument {
	doc := BatchDocument{
		Index:      index,
		Table:      b.table,
		Groups:     b.groups,
		Predicate:  b.String(),
		Conditions: make([]ConditionDocument, len(b.conditions)),
	}
	for i, c := range b.conditions {
		doc.Conditions[i] = ConditionDocument{
			Column:     c.column.Name,
			Position:   c.column.Position,
			Operator:   string(c.operator),
			Value:      c.value,
			Combinator: string(c.combinator),
			OpenGroup:  c.openGroup,
			CloseGroup: c.closeGroup,
		}
	}
	return doc
}

// Documents converts a batch sequence.
func Documents(batches []Batch) []BatchDocument {
	docs := make([]BatchDocument, len(batches))
	for i, b := range batches {
		docs[i] = b.Document(i)
	}
	return docs
}
