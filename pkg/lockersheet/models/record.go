package models

// Record is one row of a table selected by its locker name.
type Record struct {
	// Index is the 0-based position of the row in Table.Rows.
	Index int `json:"index"`
	// Row is the underlying row. It is shared with the table, not copied.
	Row Row `json:"row"`
}

// Field returns the formatted value of column name.
func (r Record) Field(name string) string {
	return FormatValue(r.Row[name])
}
