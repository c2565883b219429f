package filter

import "errors"

// ErrNoTable is returned when rendering a statement for a batch without a table.
var ErrNoTable = errors.New("batch has no table")
