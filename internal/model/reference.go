package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Reference holds the reference melting temperatures of one locus, one per
// state. Samples are classified to the state with the nearest Tm.
type Reference struct {
	// Locus is the position label, e.g. "1016". The input column for it is
	// named "Tm_<Locus>".
	Locus string
	Tm    map[Status]float64
}

// Column returns the input column name carrying the measured Tm for this
// locus.
func (r Reference) Column() string {
	return "Tm_" + r.Locus
}

// ParseReference parses the command line reference format
//
//	POS:S:VAL,H:VAL,R:VAL
//
// for example "1016:S:73.2,H:72.66,R:72.21". All three states must be
// present exactly once. State labels follow the ParseStatus policy.
func ParseReference(arg string) (Reference, error) {
	locus, rest, ok := strings.Cut(arg, ":")
	locus = strings.TrimSpace(locus)
	if !ok || locus == "" {
		return Reference{}, fmt.Errorf("reference %q: want POS:S:VAL,H:VAL,R:VAL", arg)
	}

	ref := Reference{Locus: locus, Tm: make(map[Status]float64, len(States))}
	for pair := range strings.SplitSeq(rest, ",") {
		label, value, ok := strings.Cut(pair, ":")
		if !ok {
			return Reference{}, fmt.Errorf("reference %q: entry %q: want STATE:VAL", arg, pair)
		}
		status, ok := ParseStatus(label)
		if !ok {
			return Reference{}, fmt.Errorf("reference %q: unknown state %q", arg, label)
		}
		if _, dup := ref.Tm[status]; dup {
			return Reference{}, fmt.Errorf("reference %q: state %s given twice", arg, status)
		}
		tm, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return Reference{}, fmt.Errorf("reference %q: Tm for state %s: %w", arg, status, err)
		}
		ref.Tm[status] = tm
	}

	for _, status := range States {
		if _, ok := ref.Tm[status]; !ok {
			return Reference{}, fmt.Errorf("reference %q: state %s missing", arg, status)
		}
	}
	return ref, nil
}
