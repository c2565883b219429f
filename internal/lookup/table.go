package lookup

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/ettle/strcase"
	"gopkg.in/yaml.v3"
)

// Row is one code/description pair of a lookup table.
type Row struct {
	Code        string `json:"code"        msgpack:"code"        yaml:"code"`
	Description string `json:"description" msgpack:"description" yaml:"description"`
}

// Table is a named lookup table.
type Table struct {
	Name string `json:"name" msgpack:"name" yaml:"name"`
	Rows []Row  `json:"rows" msgpack:"rows" yaml:"rows"`
}

// ParseTable decodes a YAML lookup table.
func ParseTable(r io.Reader) (*Table, error) {
	var t Table
	if err := yaml.NewDecoder(r).Decode(&t); err != nil {
		return nil, fmt.Errorf("decoding lookup table: %w", err)
	}
	return &t, nil
}

// HasCode reports whether the table contains code.
func (t *Table) HasCode(code string) bool {
	for _, r := range t.Rows {
		if r.Code == code {
			return true
		}
	}
	return false
}

// DescriptionPattern turns a PascalCase name into a case-insensitive pattern
// matching the whole description with any whitespace between the words, so
// "BulkUpdate" matches "Bulk  update".
func DescriptionPattern(name string) (*regexp.Regexp, error) {
	var words []string
	for _, w := range strings.Split(strcase.ToSnake(name), "_") {
		if w != "" {
			words = append(words, regexp.QuoteMeta(w))
		}
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrEmptyName, name)
	}
	return regexp.Compile(`(?i)^\s*` + strings.Join(words, `\s*`) + `\s*$`)
}

// MatchDescription resolves name against the descriptions. Only a single
// matching row counts as found.
func (t *Table) MatchDescription(name string) Result {
	pattern, err := DescriptionPattern(name)
	if err != nil {
		return Result{Status: NotFound}
	}

	var matches []string
	for _, r := range t.Rows {
		if pattern.MatchString(r.Description) {
			matches = append(matches, r.Code)
		}
	}

	switch len(matches) {
	case 0:
		return Result{Status: NotFound}
	case 1:
		return Result{Status: Found, Code: matches[0], Matches: matches}
	default:
		return Result{Status: Ambiguous, Matches: matches}
	}
}
