// Package xlsx converts workbooks to and from Excel files.
//
// Export writes one worksheet per sheet with the tables stacked vertically.
// Import reads every worksheet back as a table sheet holding a single table.
// Formatting, table names and metadata comments have no Excel counterpart and
// are not carried across.
package xlsx

import (
	"strconv"
	"strings"
)

// maxExactInt is the largest integer a spreadsheet double holds exactly.
const maxExactInt = 1 << 53

// parseValue returns int64 or float64 when s is the canonical text of a
// number, so the value reads back as the same string. Anything else stays a
// string.
func parseValue(s string) any {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		if strconv.FormatInt(i, 10) == s && i <= maxExactInt && i >= -maxExactInt {
			return i
		}
		return s
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		if strconv.FormatFloat(f, 'f', -1, 64) == s {
			return f
		}
	}
	return s
}

// findDataBounds finds the bounding box of non-blank cells. minRow is -1 when
// every cell is blank.
func findDataBounds(rows [][]string) (minRow, maxRow, minCol, maxCol int) {
	minRow, maxRow = -1, -1
	minCol, maxCol = -1, -1

	for rowIdx, row := range rows {
		for colIdx, cell := range row {
			if strings.TrimSpace(cell) == "" {
				continue
			}
			if minRow < 0 || rowIdx < minRow {
				minRow = rowIdx
			}
			if maxRow < 0 || rowIdx > maxRow {
				maxRow = rowIdx
			}
			if minCol < 0 || colIdx < minCol {
				minCol = colIdx
			}
			if maxCol < 0 || colIdx > maxCol {
				maxCol = colIdx
			}
		}
	}

	return
}

// cropRows returns the cells inside the bounds, each row exactly
// maxCol-minCol+1 wide.
func cropRows(rows [][]string, minRow, maxRow, minCol, maxCol int) [][]string {
	width := maxCol - minCol + 1
	out := make([][]string, 0, maxRow-minRow+1)
	for rowIdx := minRow; rowIdx <= maxRow && rowIdx < len(rows); rowIdx++ {
		row := rows[rowIdx]
		cells := make([]string, width)
		for colIdx := minCol; colIdx <= maxCol && colIdx < len(row); colIdx++ {
			cells[colIdx-minCol] = row[colIdx]
		}
		out = append(out, cells)
	}
	return out
}
