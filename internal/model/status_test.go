package model_test

import (
	"testing"

	"github.com/cenexa-creg/genomos/internal/model"

	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	t.Parallel()
	type then struct {
		status model.Status
		ok     bool
	}
	cases := []struct {
		scenario string
		given    string
		then     then
	}{
		{
			scenario: "canonical_S",
			given:    "S",
			then:     then{status: model.StatusSensible, ok: true},
		},
		{
			scenario: "lowercase_s",
			given:    "s",
			then:     then{status: model.StatusSensible, ok: true},
		},
		{
			scenario: "full_name_sensible",
			given:    "Sensible",
			then:     then{status: model.StatusSensible, ok: true},
		},
		{
			scenario: "canonical_H",
			given:    "H",
			then:     then{status: model.StatusHeterozygous, ok: true},
		},
		{
			scenario: "full_name_heterocigoto",
			given:    "heterocigoto",
			then:     then{status: model.StatusHeterozygous, ok: true},
		},
		{
			scenario: "canonical_R",
			given:    "R",
			then:     then{status: model.StatusResistant, ok: true},
		},
		{
			scenario: "padded_resistente",
			given:    "  Resistente\t",
			then:     then{status: model.StatusResistant, ok: true},
		},
		{
			scenario: "empty",
			given:    "",
			then:     then{ok: false},
		},
		{
			scenario: "whitespace_only",
			given:    "   ",
			then:     then{ok: false},
		},
		{
			scenario: "unknown_label",
			given:    "X",
			then:     then{ok: false},
		},
		{
			scenario: "numeric_garbage",
			given:    "73.2",
			then:     then{ok: false},
		},
	}

	for _, tc := range cases {
		t.Run(tc.scenario, func(t *testing.T) {
			t.Parallel()
			status, ok := model.ParseStatus(tc.given)
			require.Equal(t, tc.then.ok, ok)
			if tc.then.ok {
				require.Equal(t, tc.then.status, status)
			}
		})
	}
}

func TestStatusName(t *testing.T) {
	t.Parallel()
	require.Equal(t, "Sensible", model.StatusSensible.Name())
	require.Equal(t, "Heterocigoto", model.StatusHeterozygous.Name())
	require.Equal(t, "Resistente", model.StatusResistant.Name())
}
