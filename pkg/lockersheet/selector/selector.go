// Package selector picks locker records out of a validated table.
package selector

import (
	"sort"

	"github.com/ukaji3/lockersheet-go/pkg/lockersheet/models"
	"github.com/ukaji3/lockersheet-go/pkg/lockersheet/schema"
)

// ListLockerNames returns the distinct non-empty locker names in sorted order.
func ListLockerNames(table *models.Table) []string {
	seen := make(map[string]bool)
	names := []string{}

	for _, row := range table.Rows {
		name := models.FormatValue(row[schema.ColLockerName])
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}

	sort.Strings(names)
	return names
}

// Select returns every row whose locker name equals name, in table order.
// The comparison is exact: case-sensitive and untrimmed.
func Select(table *models.Table, name string) []models.Record {
	records := []models.Record{}
	for i, row := range table.Rows {
		got := models.FormatValue(row[schema.ColLockerName])
		if got != "" && got == name {
			records = append(records, models.Record{Index: i, Row: row})
		}
	}
	return records
}

// First returns the record used when a locker name matches several rows.
func First(records []models.Record) (models.Record, bool) {
	if len(records) == 0 {
		return models.Record{}, false
	}
	return records[0], true
}

// PreviewColumns returns the columns shown in a row preview.
func PreviewColumns(kioskColumn string) []string {
	cols := []string{schema.ColLockerName, kioskColumn}
	for _, c := range schema.RequiredColumns {
		if c != schema.ColLockerName {
			cols = append(cols, c)
		}
	}
	return cols
}

// Preview returns the formatted preview rows for every record matching name.
func Preview(vt *schema.ValidatedTable, name string) (columns []string, rows [][]string) {
	columns = PreviewColumns(vt.KioskColumn)
	for _, rec := range Select(vt.Table, name) {
		cells := make([]string, len(columns))
		for i, c := range columns {
			cells[i] = rec.Field(c)
		}
		rows = append(rows, cells)
	}
	return columns, rows
}
