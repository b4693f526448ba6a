package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cenexa-creg/genomos/internal/classify"

	"github.com/xuri/excelize/v2"
)

// WriteResults writes the per-sample classification table to path. The
// format is chosen by extension: .xlsx gets a workbook, .tsv and .txt tab
// separated text, everything else comma separated. Columns are the sample
// id (when idColumn is set), Tm and Status per locus, and - for multi-locus
// runs - the combined genotype.
func WriteResults(path, idColumn string, results []classify.Result, multiLocus bool) error {
	header, rows := resultTable(idColumn, results, multiLocus)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return writeWorkbook(path, header, rows)
	case ".tsv", ".txt":
		return writeDelimited(path, header, rows, '\t')
	default:
		return writeDelimited(path, header, rows, ',')
	}
}

func resultTable(idColumn string, results []classify.Result, multiLocus bool) ([]string, [][]string) {
	var header []string
	if idColumn != "" {
		header = append(header, idColumn)
	}
	if len(results) > 0 {
		for _, lr := range results[0].Loci {
			header = append(header, "Tm_"+lr.Locus, "Status_"+lr.Locus)
		}
	}
	if multiLocus {
		header = append(header, "Genotype")
	}

	rows := make([][]string, 0, len(results))
	for _, res := range results {
		var row []string
		if idColumn != "" {
			row = append(row, res.ID)
		}
		for _, lr := range res.Loci {
			status := ""
			if lr.Determined {
				status = lr.Status.Name()
			}
			row = append(row, lr.Raw, status)
		}
		if multiLocus {
			genotype, _ := res.Genotype()
			row = append(row, genotype)
		}
		rows = append(rows, row)
	}
	return header, rows
}

func writeDelimited(path string, header []string, rows [][]string, comma rune) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating results %s: %w", path, err)
	}

	w := csv.NewWriter(f)
	w.Comma = comma
	if err := w.Write(header); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing results %s: %w", path, err)
	}
	if err := w.WriteAll(rows); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing results %s: %w", path, err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing results %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("writing results %s: %w", path, err)
	}
	return nil
}

func writeWorkbook(path string, header []string, rows [][]string) error {
	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	sheet := f.GetSheetName(0)
	if err := setRow(f, sheet, 1, header); err != nil {
		return fmt.Errorf("writing results %s: %w", path, err)
	}
	for i, row := range rows {
		if err := setRow(f, sheet, i+2, row); err != nil {
			return fmt.Errorf("writing results %s: %w", path, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("writing results %s: %w", path, err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, line int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, line)
	if err != nil {
		return err
	}
	cells := make([]any, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return f.SetSheetRow(sheet, cell, &cells)
}
