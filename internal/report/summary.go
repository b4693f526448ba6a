// Package report renders run results: the status tally summary, the
// genotype distribution text report and the per-sample result table.
package report

import (
	"fmt"
	"io"

	"github.com/cenexa-creg/genomos/internal/model"
)

// WriteTally writes the counting summary as human readable lines:
//
//	S: <n>
//	H: <n>
//	R: <n>
//	unrecognized: <n>
//	total: <n>
func WriteTally(w io.Writer, t model.StatusTally) error {
	for _, status := range model.States {
		if _, err := fmt.Fprintf(w, "%s: %d\n", status, t.Count(status)); err != nil {
			return fmt.Errorf("writing summary: %w", err)
		}
	}
	if _, err := fmt.Fprintf(w, "unrecognized: %d\ntotal: %d\n", t.Unrecognized, t.Total()); err != nil {
		return fmt.Errorf("writing summary: %w", err)
	}
	return nil
}
