package model

import "strings"

// Status is the genotype classification of a single sample at a single
// locus. The three valid states come from HRM-PCR resistance typing:
// Sensible (S), Heterocigoto (H) and Resistente (R).
type Status string

const (
	StatusSensible     Status = "S"
	StatusHeterozygous Status = "H"
	StatusResistant    Status = "R"
)

// States lists all valid states in their canonical order. The order matters:
// nearest-Tm classification breaks ties by it.
var States = []Status{StatusSensible, StatusHeterozygous, StatusResistant}

// ParseStatus normalizes a raw status label. The policy is: trim whitespace,
// lowercase, and match on the first letter, so "S", "s", "Sensible" and
// "sensible" all parse to StatusSensible. Anything else, including the empty
// string, returns ok == false and is counted as unrecognized by callers.
func ParseStatus(raw string) (Status, bool) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return "", false
	}
	switch s[0] {
	case 's':
		return StatusSensible, true
	case 'h':
		return StatusHeterozygous, true
	case 'r':
		return StatusResistant, true
	}
	return "", false
}

// Name returns the long Spanish label used in reports.
func (s Status) Name() string {
	switch s {
	case StatusSensible:
		return "Sensible"
	case StatusHeterozygous:
		return "Heterocigoto"
	case StatusResistant:
		return "Resistente"
	}
	return string(s)
}
