package incid

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Selection is the file form of a set of selected records.
type Selection struct {
	Records []Record `json:"records" msgpack:"records" yaml:"records"`
}

// ParseSelection decodes a YAML selection document. An empty document is an
// empty selection.
func ParseSelection(r io.Reader) (*Selection, error) {
	var sel Selection
	if err := yaml.NewDecoder(r).Decode(&sel); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decoding selection: %w", err)
	}
	return &sel, nil
}

// Incids returns each distinct incid in first-seen order.
func (s *Selection) Incids() []string {
	seen := make(map[string]struct{}, len(s.Records))
	out := make([]string, 0, len(s.Records))
	for _, r := range s.Records {
		if _, ok := seen[r.Incid]; ok || r.Incid == "" {
			continue
		}
		seen[r.Incid] = struct{}{}
		out = append(out, r.Incid)
	}
	return out
}

// Dirty returns the records with pending edits.
func (s *Selection) Dirty() []Record {
	var out []Record
	for _, r := range s.Records {
		if r.Dirty() {
			out = append(out, r)
		}
	}
	return out
}
