// Package tabular reads rows from delimited text files and Excel workbooks.
// Sources are lazy, single-pass iterators: the file is opened eagerly, so a
// missing input fails before any row is produced, and row-level decode
// problems are yielded as errors rather than aborting the run.
package tabular

import (
	"context"
	"iter"
	"path/filepath"
	"strings"

	"github.com/cenexa-creg/genomos/internal/model"
	"github.com/cenexa-creg/genomos/internal/stats"
)

// Rows is a lazy sequence of input rows. The error side carries row-level
// decode failures. Iteration stops when the source or the context ends.
type Rows = iter.Seq2[model.Row, error]

// File opens path and returns its rows. The format is chosen by extension:
// .xlsx is an Excel workbook (first sheet), .tsv and .txt are tab separated,
// everything else is comma separated. The first row is always the header.
func File(ctx context.Context, counter *stats.Stats, path string) (Rows, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return Workbook(ctx, counter, path)
	case ".tsv", ".txt":
		return Delimited(ctx, counter, path, '\t')
	default:
		return Delimited(ctx, counter, path, ',')
	}
}

// row builds a model.Row from a header and one record. Short records are
// allowed, missing columns are simply absent from Fields.
func row(line int, header []string, record []string) model.Row {
	fields := make(map[string]string, len(header))
	for i, name := range header {
		if i >= len(record) {
			break
		}
		fields[name] = record[i]
	}
	return model.Row{Line: line, Fields: fields}
}
