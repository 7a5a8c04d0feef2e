package profile

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Stats aggregates per-profiler records keyed by option code. Key order is
// the order records were stored in, which the runner guarantees to be the
// registry's execution order restricted to the requested codes. The order
// survives JSON round trips.
type Stats struct {
	records *orderedmap.OrderedMap[string, *Record]
}

// NewStats returns an empty stats collection.
func NewStats() *Stats {
	return &Stats{records: orderedmap.New[string, *Record]()}
}

// Set stores the record produced by the profiler with the given code.
func (s *Stats) Set(opt Option, rec *Record) {
	s.records.Set(opt.String(), rec)
}

// Get returns the record stored under the given code.
func (s *Stats) Get(opt Option) (*Record, bool) {
	return s.records.Get(opt.String())
}

// Len returns the number of stored records.
func (s *Stats) Len() int {
	if s.records == nil {
		return 0
	}
	return s.records.Len()
}

// Options returns the stored codes in insertion order.
func (s *Stats) Options() []Option {
	opts := make([]Option, 0, s.Len())
	for pair := s.records.Oldest(); pair != nil; pair = pair.Next() {
		for _, r := range pair.Key {
			opts = append(opts, Option(r))
		}
	}
	return opts
}

// MarshalJSON encodes the stats as a JSON object with sections in insertion
// order.
func (s *Stats) MarshalJSON() ([]byte, error) {
	return s.records.MarshalJSON()
}

// UnmarshalJSON decodes a JSON object, preserving its key order.
func (s *Stats) UnmarshalJSON(data []byte) error {
	if s.records == nil {
		s.records = orderedmap.New[string, *Record]()
	}
	return s.records.UnmarshalJSON(data)
}
