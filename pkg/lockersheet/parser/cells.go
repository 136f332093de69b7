package parser

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/ukaji3/lockersheet-go/pkg/lockersheet/models"
	"github.com/xuri/excelize/v2"
)

// ErrNoSheets indicates the workbook has no worksheets.
var ErrNoSheets = errors.New("workbook has no sheets")

// FirstSheet returns the name of the first sheet in the workbook.
func FirstSheet(f *excelize.File) (string, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return "", ErrNoSheets
	}
	return sheets[0], nil
}

// ReadTable reads a sheet as a header row followed by data rows.
// The header is the first non-empty row. Rows with no data are skipped.
func ReadTable(f *excelize.File, sheetName string) (*models.Table, error) {
	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}

	table := &models.Table{SheetName: sheetName}

	bounds, ok := DataBounds(rows)
	if !ok {
		return table, nil
	}

	table.Range = bounds.Ref()
	dates := newDateStyles(f)
	table.Columns = headerNames(rows[bounds.MinRow], bounds)

	for rowIdx := bounds.MinRow + 1; rowIdx <= bounds.MaxRow; rowIdx++ {
		row := rows[rowIdx]
		if rowIsEmpty(row, bounds) {
			continue
		}

		record := make(models.Row, len(table.Columns))
		for i, name := range table.Columns {
			colIdx := bounds.MinCol + i
			if colIdx >= len(row) || row[colIdx] == "" {
				record[name] = nil
				continue
			}
			cellName, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
			if err != nil {
				return nil, err
			}
			cellType, err := f.GetCellType(sheetName, cellName)
			if err != nil {
				return nil, fmt.Errorf("cell %s: %w", cellName, err)
			}
			if cellType == excelize.CellTypeUnset || cellType == excelize.CellTypeNumber {
				t, ok, err := dates.value(sheetName, cellName, row[colIdx])
				if err != nil {
					return nil, fmt.Errorf("cell %s: %w", cellName, err)
				}
				if ok {
					record[name] = t
					continue
				}
			}
			record[name] = typedValue(row[colIdx], cellType)
		}
		table.Rows = append(table.Rows, record)
	}

	return table, nil
}

// headerNames returns unique column names for the header row.
// Blank headers become "Unnamed: <n>" and repeated names get a ".<n>" suffix.
func headerNames(row []string, b Bounds) []string {
	names := make([]string, b.Width())
	used := make(map[string]bool, len(names))
	suffix := make(map[string]int)

	for i := range names {
		colIdx := b.MinCol + i
		name := ""
		if colIdx < len(row) {
			name = row[colIdx]
		}
		if name == "" {
			name = "Unnamed: " + strconv.Itoa(i)
		}

		base := name
		for used[name] {
			suffix[base]++
			name = base + "." + strconv.Itoa(suffix[base])
		}
		used[name] = true
		names[i] = name
	}

	return names
}

// typedValue converts a raw cell string using its stored cell type.
// Only numeric cells are parsed, so text such as "02134" is kept as is.
func typedValue(raw string, cellType excelize.CellType) interface{} {
	switch cellType {
	case excelize.CellTypeUnset, excelize.CellTypeNumber:
		return parseValue(raw)
	case excelize.CellTypeBool:
		switch raw {
		case "1":
			return "TRUE"
		case "0":
			return "FALSE"
		}
	}
	return raw
}

// parseValue attempts to parse a string value as a number.
// Returns int64 for integers, float64 for decimals, or the original string.
func parseValue(s string) interface{} {
	// Try integer first
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	// Try float
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		if f == float64(int64(f)) {
			return int64(f)
		}
		return f
	}
	// Return as string
	return s
}
