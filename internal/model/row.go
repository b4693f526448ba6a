package model

// Row abstracts one row of tabular input - it does not matter whether the
// row came from a CSV file or an Excel sheet. Fields are keyed by the header
// row of the source.
type Row struct {
	// Line is the 1-based position in the source, header excluded.
	Line   int
	Fields map[string]string
}

// Field returns the value of the named column. ok is false when the column
// is absent in this row (short rows are allowed by the readers).
func (r Row) Field(name string) (string, bool) {
	v, ok := r.Fields[name]
	return v, ok
}

// Record is a Row reduced to what the classifier-counter needs: an
// identifier and the raw status label.
type Record struct {
	ID     string
	Status string
}

// Record extracts a Record from the row. Either column may be absent, the
// matching field then stays empty. idColumn may be "" when the source has
// no sample identifier.
func (r Row) Record(idColumn, statusColumn string) Record {
	var rec Record
	if idColumn != "" {
		rec.ID, _ = r.Field(idColumn)
	}
	rec.Status, _ = r.Field(statusColumn)
	return rec
}
