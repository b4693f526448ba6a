package report

import (
	"fmt"
	"io"
	"slices"

	"github.com/cenexa-creg/genomos/internal/classify"
	"github.com/cenexa-creg/genomos/internal/model"
)

// WriteDistribution writes the genotype distribution report. Multi-locus
// runs get a genotype table plus a per-allele summary, single-locus runs a
// per-state table. Percentages are over all samples; the allele summary is
// over the total allele count of determined samples.
func WriteDistribution(w io.Writer, dist *classify.Distribution) error {
	if dist.MultiLocus() {
		return writeMultiLocus(w, dist)
	}
	return writeSingleLocus(w, dist)
}

func writeMultiLocus(w io.Writer, dist *classify.Distribution) error {
	if _, err := fmt.Fprintf(w, "=== Genotype distribution ===\nGenotype\tCount\tPercent\n"); err != nil {
		return fmt.Errorf("writing distribution: %w", err)
	}
	for _, genotype := range genotypeOrder(dist) {
		count := dist.Genotypes[genotype]
		if _, err := fmt.Fprintf(w, "%s\t%d\t%.2f%%\n", genotype, count, percent(count, dist.Samples)); err != nil {
			return fmt.Errorf("writing distribution: %w", err)
		}
	}

	if _, err := fmt.Fprintf(w, "\n=== Allele summary ===\nAllele\tCount\tPercent\n"); err != nil {
		return fmt.Errorf("writing distribution: %w", err)
	}
	total := dist.TotalAlleles()
	for _, allele := range dist.AlleleOrder() {
		count := dist.Alleles[allele]
		if _, err := fmt.Fprintf(w, "%s\t%d\t%.2f%%\n", allele, count, percent(count, total)); err != nil {
			return fmt.Errorf("writing distribution: %w", err)
		}
	}
	return nil
}

func writeSingleLocus(w io.Writer, dist *classify.Distribution) error {
	locus := ""
	if loci := dist.Loci(); len(loci) > 0 {
		locus = loci[0]
	}
	if _, err := fmt.Fprintf(w, "=== Status distribution for %s ===\nStatus\tCount\tPercent\n", locus); err != nil {
		return fmt.Errorf("writing distribution: %w", err)
	}
	for _, status := range model.States {
		count := dist.States.Count(status)
		if _, err := fmt.Fprintf(w, "%s\t%d\t%.2f%%\n", status.Name(), count, percent(count, dist.Samples)); err != nil {
			return fmt.Errorf("writing distribution: %w", err)
		}
	}
	return nil
}

// genotypeOrder sorts genotypes alphabetically with undetermined last.
func genotypeOrder(dist *classify.Distribution) []string {
	genotypes := make([]string, 0, len(dist.Genotypes))
	undetermined := false
	for g := range dist.Genotypes {
		if g == classify.Undetermined {
			undetermined = true
			continue
		}
		genotypes = append(genotypes, g)
	}
	slices.Sort(genotypes)
	if undetermined {
		genotypes = append(genotypes, classify.Undetermined)
	}
	return genotypes
}

func percent(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(count) / float64(total) * 100
}
