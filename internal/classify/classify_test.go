package classify_test

import (
	"testing"

	"github.com/cenexa-creg/genomos/internal/classify"
	"github.com/cenexa-creg/genomos/internal/model"

	"github.com/stretchr/testify/require"
)

func ref1016() model.Reference {
	return model.Reference{
		Locus: "1016",
		Tm: map[model.Status]float64{
			model.StatusSensible:     73.2,
			model.StatusHeterozygous: 72.66,
			model.StatusResistant:    72.21,
		},
	}
}

func ref1534() model.Reference {
	return model.Reference{
		Locus: "1534",
		Tm: map[model.Status]float64{
			model.StatusSensible:     81.71,
			model.StatusHeterozygous: 81.81,
			model.StatusResistant:    82.36,
		},
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("no loci", func(t *testing.T) {
		t.Parallel()
		_, err := classify.New(nil)
		require.Error(t, err)
	})

	t.Run("incomplete reference", func(t *testing.T) {
		t.Parallel()
		ref := ref1016()
		delete(ref.Tm, model.StatusResistant)
		_, err := classify.New([]model.Reference{ref})
		require.ErrorContains(t, err, "state R missing")
	})

	t.Run("duplicate locus", func(t *testing.T) {
		t.Parallel()
		_, err := classify.New([]model.Reference{ref1016(), ref1016()})
		require.ErrorContains(t, err, "given twice")
	})

	t.Run("loci order", func(t *testing.T) {
		t.Parallel()
		c, err := classify.New([]model.Reference{ref1016(), ref1534()})
		require.NoError(t, err)
		require.Equal(t, []string{"1016", "1534"}, c.Loci())
	})
}

func TestSampleSingleLocus(t *testing.T) {
	t.Parallel()
	c, err := classify.New([]model.Reference{ref1016()})
	require.NoError(t, err)

	type then struct {
		status     model.Status
		determined bool
	}
	cases := []struct {
		scenario string
		tm       string
		then     then
	}{
		{
			scenario: "exact sensible",
			tm:       "73.2",
			then:     then{status: model.StatusSensible, determined: true},
		},
		{
			scenario: "near heterozygous",
			tm:       "72.7",
			then:     then{status: model.StatusHeterozygous, determined: true},
		},
		{
			scenario: "near resistant",
			tm:       "72.3",
			then:     then{status: model.StatusResistant, determined: true},
		},
		{
			scenario: "far but still nearest sensible",
			tm:       "80",
			then:     then{status: model.StatusSensible, determined: true},
		},
		{
			scenario: "empty cell",
			tm:       "",
			then:     then{determined: false},
		},
		{
			scenario: "garbage cell",
			tm:       "n/a",
			then:     then{determined: false},
		},
		{
			scenario: "NaN cell",
			tm:       "NaN",
			then:     then{determined: false},
		},
	}

	for _, tc := range cases {
		t.Run(tc.scenario, func(t *testing.T) {
			t.Parallel()
			row := model.Row{Line: 1, Fields: map[string]string{"Tm_1016": tc.tm}}
			res := c.Sample(row, "")
			require.Len(t, res.Loci, 1)
			require.Equal(t, tc.then.determined, res.Loci[0].Determined)
			if tc.then.determined {
				require.Equal(t, tc.then.status, res.Loci[0].Status)
			}
		})
	}
}

func TestSampleTieBreak(t *testing.T) {
	t.Parallel()
	// 73.0 is exactly halfway between S (73.5) and H (72.5); the earlier
	// state in S, H, R order wins
	c, err := classify.New([]model.Reference{{
		Locus: "996",
		Tm: map[model.Status]float64{
			model.StatusSensible:     73.5,
			model.StatusHeterozygous: 72.5,
			model.StatusResistant:    70.0,
		},
	}})
	require.NoError(t, err)

	res := c.Sample(model.Row{Line: 1, Fields: map[string]string{"Tm_996": "73.0"}}, "")
	require.True(t, res.Loci[0].Determined)
	require.Equal(t, model.StatusSensible, res.Loci[0].Status)
}

func TestSampleMissingColumn(t *testing.T) {
	t.Parallel()
	c, err := classify.New([]model.Reference{ref1016()})
	require.NoError(t, err)

	res := c.Sample(model.Row{Line: 3, Fields: map[string]string{"Sample": "M3"}}, "Sample")
	require.Equal(t, "M3", res.ID)
	require.False(t, res.Loci[0].Determined)

	genotype, ok := res.Genotype()
	require.False(t, ok)
	require.Equal(t, classify.Undetermined, genotype)
}

func TestGenotypeMultiLocus(t *testing.T) {
	t.Parallel()
	c, err := classify.New([]model.Reference{ref1016(), ref1534()})
	require.NoError(t, err)

	cases := []struct {
		scenario string
		fields   map[string]string
		then     string
	}{
		{
			scenario: "both sensible",
			fields:   map[string]string{"Tm_1016": "73.2", "Tm_1534": "81.71"},
			then:     "SS",
		},
		{
			scenario: "sensible then heterozygous",
			fields:   map[string]string{"Tm_1016": "73.2", "Tm_1534": "81.81"},
			then:     "SH2",
		},
		{
			scenario: "heterozygous then resistant",
			fields:   map[string]string{"Tm_1016": "72.66", "Tm_1534": "82.36"},
			then:     "H1R2",
		},
	}

	for _, tc := range cases {
		t.Run(tc.scenario, func(t *testing.T) {
			t.Parallel()
			res := c.Sample(model.Row{Line: 1, Fields: tc.fields}, "")
			genotype, ok := res.Genotype()
			require.True(t, ok)
			require.Equal(t, tc.then, genotype)
		})
	}
}

func TestDistribution(t *testing.T) {
	t.Parallel()
	c, err := classify.New([]model.Reference{ref1016(), ref1534()})
	require.NoError(t, err)

	dist := classify.NewDistribution(c.Loci())
	samples := []map[string]string{
		{"Tm_1016": "73.2", "Tm_1534": "81.71"},  // SS
		{"Tm_1016": "73.2", "Tm_1534": "81.81"},  // SH2
		{"Tm_1016": "72.21", "Tm_1534": "82.36"}, // R1R2
		{"Tm_1016": "", "Tm_1534": "81.71"},      // undetermined
	}
	for i, fields := range samples {
		dist.Add(c.Sample(model.Row{Line: i + 1, Fields: fields}, ""))
	}

	require.Equal(t, 4, dist.Samples)
	require.True(t, dist.MultiLocus())
	require.Equal(t, 1, dist.Genotypes["SS"])
	require.Equal(t, 1, dist.Genotypes["SH2"])
	require.Equal(t, 1, dist.Genotypes["R1R2"])
	require.Equal(t, 1, dist.Genotypes[classify.Undetermined])
	require.Len(t, dist.Genotypes, 4)

	// determined samples only: SS + SH2 + R1R2 = 6 alleles
	require.Equal(t, 6, dist.TotalAlleles())
	require.Equal(t, 3, dist.Alleles["S"])
	require.Equal(t, 1, dist.Alleles["H2"])
	require.Equal(t, 1, dist.Alleles["R1"])
	require.Equal(t, 1, dist.Alleles["R2"])
	require.Equal(t, 0, dist.Alleles["H1"])

	require.Equal(t, []string{"H1", "R1", "H2", "R2", "S"}, dist.AlleleOrder())
}

func TestDistributionSingleLocus(t *testing.T) {
	t.Parallel()
	c, err := classify.New([]model.Reference{ref1016()})
	require.NoError(t, err)

	dist := classify.NewDistribution(c.Loci())
	for _, tm := range []string{"73.2", "73.19", "72.66", "72.21", "bad"} {
		dist.Add(c.Sample(model.Row{Line: 1, Fields: map[string]string{"Tm_1016": tm}}, ""))
	}

	require.False(t, dist.MultiLocus())
	require.Equal(t, 5, dist.Samples)
	require.Equal(t, 2, dist.States.Sensible)
	require.Equal(t, 1, dist.States.Heterozygous)
	require.Equal(t, 1, dist.States.Resistant)
	require.Equal(t, 1, dist.States.Unrecognized)
}
