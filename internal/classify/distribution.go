package classify

import (
	"strconv"

	"github.com/cenexa-creg/genomos/internal/model"
)

// Distribution accumulates genotype and allele counts over classified
// samples. It is filled once per sample and read by the report writers.
type Distribution struct {
	loci    []string
	Samples int

	// Genotypes maps a rendered genotype (including Undetermined) to its
	// sample count.
	Genotypes map[string]int

	// Alleles maps allele labels (S, H1, R1, H2, ...) to how many times
	// they occur across determined samples.
	Alleles map[string]int

	// States tallies per-state counts of the first locus. Only meaningful
	// for single-locus runs, where the report shows states instead of
	// combined genotypes.
	States model.StatusTally
}

// NewDistribution prepares a distribution for the given loci. All allele
// buckets exist up front so reports list them even when zero.
func NewDistribution(loci []string) *Distribution {
	d := &Distribution{
		loci:      loci,
		Genotypes: make(map[string]int),
		Alleles:   make(map[string]int, 2*len(loci)+1),
	}
	for _, label := range d.AlleleOrder() {
		d.Alleles[label] = 0
	}
	return d
}

// AlleleOrder returns the allele labels in report order: H and R per locus,
// then the shared S.
func (d *Distribution) AlleleOrder() []string {
	labels := make([]string, 0, 2*len(d.loci)+1)
	for i := range d.loci {
		labels = append(labels, alleleLabel(model.StatusHeterozygous, i))
		labels = append(labels, alleleLabel(model.StatusResistant, i))
	}
	return append(labels, "S")
}

// Add records one classified sample.
func (d *Distribution) Add(res Result) {
	d.Samples++

	genotype, ok := res.Genotype()
	d.Genotypes[genotype]++

	if len(res.Loci) > 0 {
		first := res.Loci[0]
		if first.Determined {
			d.States.Add(first.Status)
		} else {
			d.States.AddUnrecognized()
		}
	}

	if !ok {
		// undetermined samples contribute no alleles
		return
	}
	for i, lr := range res.Loci {
		d.Alleles[alleleLabel(lr.Status, i)]++
	}
}

// TotalAlleles is the sum over all allele buckets.
func (d *Distribution) TotalAlleles() int {
	total := 0
	for _, n := range d.Alleles {
		total += n
	}
	return total
}

// MultiLocus reports whether the run spans more than one locus.
func (d *Distribution) MultiLocus() bool {
	return len(d.loci) > 1
}

// Loci returns the locus labels in run order.
func (d *Distribution) Loci() []string {
	return d.loci
}

func alleleLabel(status model.Status, idx int) string {
	if status == model.StatusSensible {
		return "S"
	}
	// allele numbering is 1-based locus position
	return string(status) + strconv.Itoa(idx+1)
}
