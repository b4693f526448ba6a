// Package tally implements the classification counter: a single pass over
// input rows that buckets each row by its status label.
package tally

import (
	"context"
	"log/slog"

	"github.com/cenexa-creg/genomos/internal/model"
	"github.com/cenexa-creg/genomos/internal/stats"
	"github.com/cenexa-creg/genomos/internal/tabular"
)

// Count consumes rows and returns the final tally. Every row lands in
// exactly one bucket: rows whose status column is missing, empty or not one
// of the known states count as unrecognized, as do rows the reader failed
// to decode. The result is independent of row order and an empty sequence
// returns a zero tally. idColumn may be "", it only feeds the debug log.
func Count(ctx context.Context, counter *stats.Stats, rows tabular.Rows, idColumn, statusColumn string) model.StatusTally {
	var t model.StatusTally
	for row, err := range rows {
		if err != nil {
			slog.DebugContext(ctx, "skipping malformed row", "line", row.Line, "error", err)
			t.AddUnrecognized()
			counter.IncUnrecognizedRows()
			continue
		}
		rec := row.Record(idColumn, statusColumn)
		status, ok := model.ParseStatus(rec.Status)
		if !ok {
			slog.DebugContext(ctx, "unrecognized status", "line", row.Line, "id", rec.ID, "status", rec.Status)
			t.AddUnrecognized()
			counter.IncUnrecognizedRows()
			continue
		}
		t.Add(status)
	}
	return t
}
