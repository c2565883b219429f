// Package incid defines the habitat/land-use record a selection is made of,
// its editing lifecycle state and the dot-joined classification summary.
package incid

import (
	"errors"
	"fmt"
	"strings"
)

// Record is one selected GIS feature: the incid it belongs to, the OS MasterMap
// toid and fragment it was cut from, and its classification codes.
type Record struct {
	Incid          string         `json:"incid"            msgpack:"incid"            yaml:"incid"`
	Toid           string         `json:"toid"             msgpack:"toid"             yaml:"toid"`
	ToidFragmentID string         `json:"toid_fragment_id" msgpack:"toid_fragment_id" yaml:"toid_fragment_id"`
	State          RowState       `json:"state"            msgpack:"state"            yaml:"state"`
	Classification Classification `json:"classification"   msgpack:"classification"   yaml:"classification"`
}

// Classification holds the habitat codes summarised by Record.Summary.
type Classification struct {
	Habitat    string   `json:"habitat,omitempty"    msgpack:"habitat,omitempty"    yaml:"habitat,omitempty"`
	Matrix     []string `json:"matrix,omitempty"     msgpack:"matrix,omitempty"     yaml:"matrix,omitempty"`
	Formation  string   `json:"formation,omitempty"  msgpack:"formation,omitempty"  yaml:"formation,omitempty"`
	Management string   `json:"management,omitempty" msgpack:"management,omitempty" yaml:"management,omitempty"`
	Complex    []string `json:"complex,omitempty"    msgpack:"complex,omitempty"    yaml:"complex,omitempty"`
}

// Codes returns the classification codes in summary order.
func (c Classification) Codes() []string {
	codes := make([]string, 0, 3+len(c.Matrix)+len(c.Complex))
	codes = append(codes, c.Habitat)
	codes = append(codes, c.Matrix...)
	codes = append(codes, c.Formation, c.Management)
	codes = append(codes, c.Complex...)
	return codes
}

// Summary returns the record's dot-joined classification summary.
func (r Record) Summary() (string, bool) {
	return Summary(r.Classification.Codes()...)
}

// Dirty reports whether the record has pending edits.
func (r Record) Dirty() bool {
	return r.State.IsDirty()
}

// Summary joins the non-empty codes with ".". The second result is false when
// no code is left.
func Summary(codes ...string) (string, bool) {
	kept := make([]string, 0, len(codes))
	for _, c := range codes {
		if c != "" {
			kept = append(kept, c)
		}
	}
	if len(kept) == 0 {
		return "", false
	}
	return strings.Join(kept, "."), true
}

// RowState is the editing lifecycle state of a record.
type RowState uint8

// Row states.
const (
	Detached RowState = iota
	Unchanged
	Added
	Modified
	Deleted
)

// ErrUnknownRowState is returned when parsing an unrecognised state name.
var ErrUnknownRowState = errors.New("unknown row state")

//nolint:gochecknoglobals // fixed lookup table
var rowStateNames = [...]string{
	Detached:  "detached",
	Unchanged: "unchanged",
	Added:     "added",
	Modified:  "modified",
	Deleted:   "deleted",
}

// IsDirty reports whether a record in this state has pending edits. Only
// unchanged and detached records are clean.
func (s RowState) IsDirty() bool {
	return s != Unchanged && s != Detached
}

func (s RowState) String() string {
	if int(s) < len(rowStateNames) {
		return rowStateNames[s]
	}
	return fmt.Sprintf("RowState(%d)", uint8(s))
}

// ParseRowState parses a state name case-insensitively. The empty string is Detached.
func ParseRowState(name string) (RowState, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return Detached, nil
	}
	for i, n := range rowStateNames {
		if n == name {
			return RowState(i), nil
		}
	}
	return Detached, fmt.Errorf("%w: %q", ErrUnknownRowState, name)
}

// MarshalText implements encoding.TextMarshaler.
func (s RowState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *RowState) UnmarshalText(text []byte) error {
	parsed, err := ParseRowState(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
