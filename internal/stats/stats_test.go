package stats_test

import (
	"maps"
	"testing"

	"github.com/cenexa-creg/genomos/internal/stats"

	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	s := stats.New(t.Name())
	require.NotNil(t, s)
}

func TestNewReusesPrefix(t *testing.T) {
	s := stats.New(t.Name())
	s.IncRows()

	// a second New with the same prefix must not panic and starts fresh
	s2 := stats.New(t.Name())
	collected := maps.Collect(s2.Stats())
	require.Equal(t, "0", collected[t.Name()+stats.KeyRowsTotal])
}

func TestIncSources(t *testing.T) {
	s := stats.New(t.Name())

	s.IncSources()
	s.IncSources()

	collected := maps.Collect(s.Stats())
	require.Equal(t, "2", collected[t.Name()+stats.KeySourcesTotal])
}

func TestIncErrSources(t *testing.T) {
	s := stats.New(t.Name())

	s.IncErrSources()
	s.IncErrSources()
	s.IncErrSources()

	collected := maps.Collect(s.Stats())
	require.Equal(t, "3", collected[t.Name()+stats.KeyErrSources])
}

func TestIncRows(t *testing.T) {
	s := stats.New(t.Name())

	for range 10 {
		s.IncRows()
	}

	collected := maps.Collect(s.Stats())
	require.Equal(t, "10", collected[t.Name()+stats.KeyRowsTotal])
}

func TestIncUnrecognizedRows(t *testing.T) {
	s := stats.New(t.Name())

	s.IncUnrecognizedRows()
	s.IncUnrecognizedRows()

	collected := maps.Collect(s.Stats())
	require.Equal(t, "2", collected[t.Name()+stats.KeyRowsUnrecog])
}

func TestIncErrRows(t *testing.T) {
	s := stats.New(t.Name())

	s.IncErrRows()

	collected := maps.Collect(s.Stats())
	require.Equal(t, "1", collected[t.Name()+stats.KeyErrRows])
}

func TestStatsOrder(t *testing.T) {
	s := stats.New(t.Name())

	var keys []string
	for key := range s.Stats() {
		keys = append(keys, key)
	}
	require.Equal(t, []string{
		t.Name() + stats.KeyErrRows,
		t.Name() + stats.KeyRowsTotal,
		t.Name() + stats.KeyRowsUnrecog,
		t.Name() + stats.KeyErrSources,
		t.Name() + stats.KeySourcesTotal,
	}, keys)
}
