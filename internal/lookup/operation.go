// Package lookup resolves history operations to the codes stored in the
// operation lookup table.
//
// Resolution first consults a static Operation to code map. When a table is
// loaded and the mapped code is not in it, the operation name is matched
// against the table's descriptions instead; that match only succeeds when
// exactly one row matches.
package lookup

import (
	"errors"
	"fmt"
	"strings"
)

// Operation is an editing operation recorded in incid history.
type Operation uint8

// Operations.
const (
	AttributeUpdate Operation = iota
	BulkUpdate
	OSMMBulkUpdate
	LogicalSplit
	PhysicalSplit
	LogicalMerge
	PhysicalMerge
	DeleteIncid
)

// ErrUnknownOperation is returned when parsing an unrecognised operation name.
var ErrUnknownOperation = errors.New("unknown operation")

//nolint:gochecknoglobals // fixed lookup table
var operationNames = [...]string{
	AttributeUpdate: "AttributeUpdate",
	BulkUpdate:      "BulkUpdate",
	OSMMBulkUpdate:  "OSMMBulkUpdate",
	LogicalSplit:    "LogicalSplit",
	PhysicalSplit:   "PhysicalSplit",
	LogicalMerge:    "LogicalMerge",
	PhysicalMerge:   "PhysicalMerge",
	DeleteIncid:     "DeleteIncid",
}

func (o Operation) String() string {
	if int(o) < len(operationNames) {
		return operationNames[o]
	}
	return fmt.Sprintf("Operation(%d)", uint8(o))
}

// Operations returns every known operation.
func Operations() []Operation {
	ops := make([]Operation, len(operationNames))
	for i := range ops {
		ops[i] = Operation(i)
	}
	return ops
}

// ParseOperation parses an operation name case-insensitively.
func ParseOperation(name string) (Operation, error) {
	name = strings.TrimSpace(name)
	for i, n := range operationNames {
		if strings.EqualFold(n, name) {
			return Operation(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownOperation, name)
}

// Codes maps operations to lookup-table codes.
type Codes map[Operation]string

// DefaultCodes returns the codes of the standard operation lookup table.
func DefaultCodes() Codes {
	return Codes{
		AttributeUpdate: "AU",
		BulkUpdate:      "BU",
		OSMMBulkUpdate:  "OB",
		LogicalSplit:    "LS",
		PhysicalSplit:   "PS",
		LogicalMerge:    "LM",
		PhysicalMerge:   "PM",
		DeleteIncid:     "DI",
	}
}

// Resolve looks op up in the map.
func (c Codes) Resolve(op Operation) Result {
	if code, ok := c[op]; ok && code != "" {
		return Result{Status: Found, Code: code, Matches: []string{code}}
	}
	return Result{Status: NotFound}
}
