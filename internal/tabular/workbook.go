package tabular

import (
	"context"
	"fmt"

	"github.com/cenexa-creg/genomos/internal/model"
	"github.com/cenexa-creg/genomos/internal/stats"

	"github.com/xuri/excelize/v2"
)

// Workbook returns the rows of the first sheet of an xlsx workbook. Rows
// are streamed, the whole sheet is never held in memory.
func Workbook(ctx context.Context, counter *stats.Stats, path string) (Rows, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		counter.IncErrSources()
		return nil, fmt.Errorf("opening workbook %s: %w", path, err)
	}

	sheet := f.GetSheetName(0)
	iterator, err := f.Rows(sheet)
	if err != nil {
		closeSource(f, path)
		counter.IncErrSources()
		return nil, fmt.Errorf("reading sheet %q of %s: %w", sheet, path, err)
	}
	counter.IncSources()

	return func(yield func(model.Row, error) bool) {
		defer closeSource(f, path)
		defer closeSource(iterator, path)

		var header []string
		line := 0
		for iterator.Next() {
			if ctx.Err() != nil {
				return
			}
			record, err := iterator.Columns()
			if header == nil && err == nil {
				header = record
				continue
			}
			line++
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
