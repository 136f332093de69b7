// Package models defines data structures for locker sheet conversion.
package models

// Row maps column name to cell value.
// A value is a string, int64, float64, time.Time, or nil for an empty cell.
type Row map[string]interface{}

// Table represents the header and data rows of one sheet.
type Table struct {
	// SheetName is the sheet the table was read from.
	SheetName string `json:"sheet_name"`
	// Range is the occupied cell range, e.g. "A1:N12". Empty for an empty sheet.
	Range string `json:"range,omitempty"`
	// Columns lists the header names in sheet order.
	Columns []string `json:"columns"`
	// Rows contains the data rows. Every row carries every column as a key.
	Rows []Row `json:"rows"`
}

// HasColumn reports whether name is a header of the table.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}
