package parser

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Bounds is the 0-based bounding box of the non-empty cells of a sheet.
type Bounds struct {
	MinRow, MaxRow int
	MinCol, MaxCol int
}

// Width returns the number of columns covered by the bounds.
func (b Bounds) Width() int {
	return b.MaxCol - b.MinCol + 1
}

// Ref returns the bounds in Excel range notation (e.g., "A1:D10").
func (b Bounds) Ref() string {
	startCell, _ := excelize.CoordinatesToCellName(b.MinCol+1, b.MinRow+1)
	endCell, _ := excelize.CoordinatesToCellName(b.MaxCol+1, b.MaxRow+1)
	return fmt.Sprintf("%s:%s", startCell, endCell)
}

// DataBounds finds the bounding box of non-empty cells.
// ok is false when every cell is empty.
func DataBounds(rows [][]string) (b Bounds, ok bool) {
	b = Bounds{MinRow: -1, MaxRow: -1, MinCol: -1, MaxCol: -1}

	for rowIdx, row := range rows {
		for colIdx, cell := range row {
			if cell == "" {
				continue
			}
			if b.MinRow < 0 || rowIdx < b.MinRow {
				b.MinRow = rowIdx
			}
			if b.MaxRow < 0 || rowIdx > b.MaxRow {
				b.MaxRow = rowIdx
			}
			if b.MinCol < 0 || colIdx < b.MinCol {
				b.MinCol = colIdx
			}
			if b.MaxCol < 0 || colIdx > b.MaxCol {
				b.MaxCol = colIdx
			}
		}
	}

	return b, b.MinRow >= 0
}

// rowIsEmpty reports whether row has no non-empty cell within the column bounds.
func rowIsEmpty(row []string, b Bounds) bool {
	for colIdx := b.MinCol; colIdx <= b.MaxCol && colIdx < len(row); colIdx++ {
		if row[colIdx] != "" {
			return false
		}
	}
	return true
}
