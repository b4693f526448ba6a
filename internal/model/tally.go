package model

// StatusTally accumulates per-state counts over one run. It is created
// empty, incremented once per input row and read-only once the run ends.
// The invariant is Sensible+Heterozygous+Resistant+Unrecognized == Total().
type StatusTally struct {
	Sensible     int
	Heterozygous int
	Resistant    int
	Unrecognized int
}

// Add increments the bucket for status. Rows whose status did not parse are
// added via AddUnrecognized.
func (t *StatusTally) Add(status Status) {
	switch status {
	case StatusSensible:
		t.Sensible++
	case StatusHeterozygous:
		t.Heterozygous++
	case StatusResistant:
		t.Resistant++
	default:
		t.Unrecognized++
	}
}

func (t *StatusTally) AddUnrecognized() {
	t.Unrecognized++
}

// Count returns the bucket for a valid status.
func (t StatusTally) Count(status Status) int {
	switch status {
	case StatusSensible:
		return t.Sensible
	case StatusHeterozygous:
		return t.Heterozygous
	case StatusResistant:
		return t.Resistant
	}
	return 0
}

// Total is the number of rows processed.
func (t StatusTally) Total() int {
	return t.Sensible + t.Heterozygous + t.Resistant + t.Unrecognized
}
