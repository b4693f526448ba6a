// Package stats holds expvar-backed counters for a genomos run and
// publishes them under a common key prefix. All counters are expvar.Map and
// are safe for concurrent updates. When the standard expvar HTTP handler is
// registered, these values are available at /debug/vars.
//
// - genomos_sources_total — input files opened
// - genomos_sources_errors — input files that could not be opened or read
// - genomos_rows_total — rows read across all sources, header excluded
// - genomos_rows_unrecognized — rows whose status did not parse
// - genomos_rows_errors — rows the reader could not decode
package stats

import (
	"expvar"
	"iter"
	"maps"
	"slices"
)

const (
	KeySourcesTotal = "_sources_total"
	KeyErrSources   = "_sources_errors"
	KeyRowsTotal    = "_rows_total"
	KeyRowsUnrecog  = "_rows_unrecognized"
	KeyErrRows      = "_rows_errors"
)

// Stats publishes a new set of run counters. New is idempotent per prefix:
// a second call reuses the published expvar.Map and resets its counters, so
// one process can run several commands without tripping the expvar
// duplicate-name panic.
type Stats struct {
	prefix  string
	root    *expvar.Map
	sources *expvar.Map
	rows    *expvar.Map
}

func New(prefix string) *Stats {
	root, ok := expvar.Get(prefix).(*expvar.Map)
	if !ok {
		root = expvar.NewMap(prefix)
	}
	sources := new(expvar.Map).Init()
	rows := new(expvar.Map).Init()

	sources.Add("total", 0)
	sources.Add("errors", 0)

	rows.Add("total", 0)
	rows.Add("unrecognized", 0)
	rows.Add("errors", 0)

	root.Set("sources", sources)
	root.Set("rows", rows)

	return &Stats{
		prefix:  prefix,
		root:    root,
		sources: sources,
		rows:    rows,
	}
}

func (s *Stats) IncSources() {
	s.sources.Add("total", 1)
}
func (s *Stats) IncErrSources() {
	s.sources.Add("errors", 1)
}
func (s *Stats) IncRows() {
	s.rows.Add("total", 1)
}
func (s *Stats) IncUnrecognizedRows() {
	s.rows.Add("unrecognized", 1)
}
func (s *Stats) IncErrRows() {
	s.rows.Add("errors", 1)
}

// Stats returns a name, value iterator across registered counters in
// alphabetic order. Uses expvar.Do under the hood, so it is safe to call
// concurrently with updates.
func (s Stats) Stats() iter.Seq2[string, string] {
	collected := make(map[string]string, 5)
	s.sources.Do(func(kv expvar.KeyValue) {
		collected["sources_"+kv.Key] = kv.Value.String()
	})
	s.rows.Do(func(kv expvar.KeyValue) {
		collected["rows_"+kv.Key] = kv.Value.String()
	})

	keys := slices.Sorted(maps.Keys(collected))
	return func(yield func(string, string) bool) {
		for _, key := range keys {
			if !yield(s.prefix+"_"+key, collected[key]) {
				return
			}
		}
	}
}
