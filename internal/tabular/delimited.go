package tabular

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/cenexa-creg/genomos/internal/model"
	"github.com/cenexa-creg/genomos/internal/stats"
)

// Delimited returns the rows of a delimited text file. The reader is
// permissive: lazy quotes, leading space trimmed, variable field count. A
// file with no content at all yields nothing.
func Delimited(ctx context.Context, counter *stats.Stats, path string, comma rune) (Rows, error) {
	f, err := os.Open(path)
	if err != nil {
		counter.IncErrSources()
		return nil, fmt.Errorf("opening input %s: %w", path, err)
	}
	counter.IncSources()

	r := csv.NewReader(f)
	r.Comma = comma
	r.LazyQuotes = true
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		closeSource(f, path)
		if errors.Is(err, io.EOF) {
			return empty(), nil
		}
		counter.IncErrSources()
		return nil, fmt.Errorf("reading header of %s: %w", path, err)
	}

	return func(yield func(model.Row, error) bool) {
		defer closeSource(f, path)
		for line := 1; ctx.Err() == nil; line++ {
			record, err := r.Read()
			if errors.Is(err, io.EOF) {
				return
			}
			counter.IncRows()
			if err != nil {
				counter.IncErrRows()
				if !yield(model.Row{Line: line}, err) {
					return
				}
				continue
			}
			if !yield(row(line, header, record), nil) {
				return
			}
		}
	}, nil
}

func empty() Rows {
	return func(yield func(model.Row, error) bool) {}
}

func closeSource(c io.Closer, path string) {
	if err := c.Close(); err != nil {
		slog.Warn("can't close input", "path", path, "error", err)
	}
}
