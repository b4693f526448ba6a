// Package classify assigns genotype states to HRM-PCR samples. A sample
// carries one measured melting temperature (Tm) per locus; the state of a
// locus is the one whose reference Tm is nearest to the measurement.
package classify

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/cenexa-creg/genomos/internal/model"
)

// Undetermined is the genotype printed for samples where at least one locus
// could not be classified.
const Undetermined = "undetermined"

// Classifier classifies samples against a fixed set of per-locus
// references. Locus order is significant: it defines allele numbering in
// genotypes (H1, R2, ...).
type Classifier struct {
	refs []model.Reference
}

// New validates the references and builds a Classifier. At least one locus
// is required and every reference must carry a Tm for all three states.
func New(refs []model.Reference) (Classifier, error) {
	if len(refs) == 0 {
		return Classifier{}, fmt.Errorf("no reference loci given")
	}
	seen := make(map[string]bool, len(refs))
	for _, ref := range refs {
		if seen[ref.Locus] {
			return Classifier{}, fmt.Errorf("locus %s given twice", ref.Locus)
		}
		seen[ref.Locus] = true
		for _, status := range model.States {
			if _, ok := ref.Tm[status]; !ok {
				return Classifier{}, fmt.Errorf("locus %s: reference Tm for state %s missing", ref.Locus, status)
			}
		}
	}
	return Classifier{refs: refs}, nil
}

// Loci returns the locus labels in classification order.
func (c Classifier) Loci() []string {
	loci := make([]string, len(c.refs))
	for i, ref := range c.refs {
		loci[i] = ref.Locus
	}
	return loci
}

// LocusResult is the classification of one sample at one locus.
type LocusResult struct {
	Locus  string
	Raw    string // cell content as read
	Tm     float64
	Status model.Status
	// Determined is false when the Tm cell was missing or not a number.
	Determined bool
}

// Result is the classification of one sample across all loci.
type Result struct {
	Line int
	ID   string
	Loci []LocusResult
}

// Genotype renders the combined genotype: S for sensible, H<i> and R<i>
// numbered by locus position, concatenated in locus order, e.g. "SH2". ok
// is false when any locus is undetermined.
func (r Result) Genotype() (string, bool) {
	var b strings.Builder
	for i, lr := range r.Loci {
		if !lr.Determined {
			return Undetermined, false
		}
		switch lr.Status {
		case model.StatusSensible:
			b.WriteString("S")
		case model.StatusHeterozygous:
			fmt.Fprintf(&b, "H%d", i+1)
		case model.StatusResistant:
			fmt.Fprintf(&b, "R%d", i+1)
		}
	}
	return b.String(), true
}

// Sample classifies one input row. idColumn may be empty, then ID stays
// blank. A missing or non-numeric Tm cell leaves that locus undetermined,
// it never fails the row.
func (c Classifier) Sample(row model.Row, idColumn string) Result {
	res := Result{Line: row.Line, Loci: make([]LocusResult, 0, len(c.refs))}
	if idColumn != "" {
		res.ID, _ = row.Field(idColumn)
	}
	for _, ref := range c.refs {
		lr := LocusResult{Locus: ref.Locus}
		raw, ok := row.Field(ref.Column())
		lr.Raw = raw
		if ok {
			tm, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
			if err == nil && !math.IsNaN(tm) {
				lr.Tm = tm
				lr.Status = nearest(ref, tm)
				lr.Determined = true
			}
		}
		res.Loci = append(res.Loci, lr)
	}
	return res
}

// nearest returns the state whose reference Tm has the smallest absolute
// distance to tm. Ties go to the earlier state in model.States order.
func nearest(ref model.Reference, tm float64) model.Status {
	best := model.States[0]
	bestDiff := math.Abs(tm - ref.Tm[best])
	for _, status := range model.States[1:] {
		diff := math.Abs(tm - ref.Tm[status])
		if diff < bestDiff {
			best = status
			bestDiff = diff
		}
	}
	return best
}
