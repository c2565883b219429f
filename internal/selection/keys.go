package selection

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rshade/incidfilter/internal/filter"
	"github.com/rshade/incidfilter/internal/incid"
)

// KeyRole names a column that identifies a selected record.
type KeyRole uint8

// Key roles. Their order is the order keys are compared in a row group.
const (
	RoleIncid KeyRole = iota
	RoleToid
	RoleToidFragment
)

// Key set errors.
var (
	ErrNoKeyColumns     = errors.New("at least one key column is required")
	ErrUnknownKeyRole   = errors.New("unknown key role")
	ErrDuplicateKeyRole = errors.New("duplicate key role")
	ErrKeyColumnMissing = errors.New("key column not found in table")
)

//nolint:gochecknoglobals // fixed lookup table
var roleColumns = [...]string{
	RoleIncid:        "incid",
	RoleToid:         "toid",
	RoleToidFragment: "toid_fragment_id",
}

// ColumnName returns the column the role is stored in.
func (r KeyRole) ColumnName() string {
	if int(r) < len(roleColumns) {
		return roleColumns[r]
	}
	return ""
}

func (r KeyRole) String() string {
	if name := r.ColumnName(); name != "" {
		return name
	}
	return fmt.Sprintf("KeyRole(%d)", uint8(r))
}

// Value returns the record's value for the role.
func (r KeyRole) Value(rec incid.Record) string {
	switch r {
	case RoleIncid:
		return rec.Incid
	case RoleToid:
		return rec.Toid
	case RoleToidFragment:
		return rec.ToidFragmentID
	}
	return ""
}

// ParseKeyRole accepts a role's column name.
func ParseKeyRole(name string) (KeyRole, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, c := range roleColumns {
		if c == name {
			return KeyRole(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKeyRole, name)
}

// ParseKeyRoles parses a comma-separated list of column names.
func ParseKeyRoles(list string) ([]KeyRole, error) {
	var roles []KeyRole
	for _, part := range strings.Split(list, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		role, err := ParseKeyRole(part)
		if err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, nil
}

// RecordValue returns rec's value for the named key column. The second result
// is false for columns that are not key columns.
func RecordValue(rec incid.Record, column string) (string, bool) {
	role, err := ParseKeyRole(column)
	if err != nil {
		return "", false
	}
	return role.Value(rec), true
}

// KeySet is an ordered set of key roles resolved against a table's columns.
// Columns are looked up once, when the set is created.
type KeySet struct {
	table   filter.Table
	roles   []KeyRole
	columns []filter.Column
}

// NewKeySet resolves roles against table.
func NewKeySet(table filter.Table, roles ...KeyRole) (KeySet, error) {
	if len(roles) == 0 {
		return KeySet{}, ErrNoKeyColumns
	}

	ks := KeySet{
		table:   table,
		roles:   make([]KeyRole, 0, len(roles)),
		columns: make([]filter.Column, 0, len(roles)),
	}
	seen := make(map[KeyRole]struct{}, len(roles))
	for _, role := range roles {
		name := role.ColumnName()
		if name == "" {
			return KeySet{}, fmt.Errorf("%w: %d", ErrUnknownKeyRole, uint8(role))
		}
		if _, dup := seen[role]; dup {
			return KeySet{}, fmt.Errorf("%w: %s", ErrDuplicateKeyRole, role)
		}
		seen[role] = struct{}{}

		col, ok := table.Column(name)
		if !ok {
			return KeySet{}, fmt.Errorf("%w: %s in %s", ErrKeyColumnMissing, name, table.Name())
		}
		ks.roles = append(ks.roles, role)
		ks.columns = append(ks.columns, col)
	}
	return ks, nil
}

// Table returns the table the set was resolved against.
func (ks KeySet) Table() filter.Table { return ks.table }

// Len returns the number of key columns.
func (ks KeySet) Len() int { return len(ks.roles) }

// Roles returns a copy of the set's roles.
func (ks KeySet) Roles() []KeyRole {
	out := make([]KeyRole, len(ks.roles))
	copy(out, ks.roles)
	return out
}

// Conditions returns one equality condition per key column for rec.
func (ks KeySet) Conditions(rec incid.Record) []filter.Condition {
	conds := make([]filter.Condition, len(ks.roles))
	for i, role := range ks.roles {
		conds[i] = filter.Eq(ks.table.Name(), ks.columns[i], role.Value(rec))
	}
	return conds
}

// LayerTable returns a table holding just the key columns, for callers with
// no schema of their own.
func LayerTable(name string) filter.Table {
	return filter.NewTable(name, roleColumns[:]...)
}
