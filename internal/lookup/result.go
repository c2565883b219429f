package lookup

import (
	"errors"
	"fmt"
)

// Status is the outcome of a lookup.
type Status uint8

// Lookup outcomes.
const (
	NotFound Status = iota
	Found
	Ambiguous
)

// Lookup errors returned by Result.Err.
var (
	ErrNotFound  = errors.New("no lookup row matches")
	ErrAmbiguous = errors.New("more than one lookup row matches")
)

// ErrEmptyName is returned by DescriptionPattern for a name with no words.
var ErrEmptyName = errors.New("operation name has no words")

func (s Status) String() string {
	switch s {
	case Found:
		return "found"
	case Ambiguous:
		return "ambiguous"
	default:
		return "not found"
	}
}

// Result carries the resolved code, or why there is none. Matches lists every
// matching code, so an ambiguous result shows what it could not choose between.
type Result struct {
	Status  Status
	Code    string
	Matches []string
}

// OK reports whether exactly one code was found.
func (r Result) OK() bool { return r.Status == Found }

// Err converts a failed result into ErrNotFound or ErrAmbiguous.
func (r Result) Err() error {
	switch r.Status {
	case Found:
		return nil
	case Ambiguous:
		return fmt.Errorf("%w: %v", ErrAmbiguous, r.Matches)
	default:
		return ErrNotFound
	}
}
