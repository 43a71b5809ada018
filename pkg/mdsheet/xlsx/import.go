package xlsx

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/mdsheet-go/pkg/mdsheet/models"
)

// Import reads every worksheet of f as a table sheet with one table. The
// workbook takes its name from the document title, falling back to name.
func Import(f *excelize.File, name string) (models.Workbook, error) {
	wb := models.Workbook{Name: name, Sheets: []models.Sheet{}}

	if props, err := f.GetDocProps(); err == nil && props.Title != "" {
		wb.Name = props.Title
	}
	if wb.Name == "" {
		wb.Name = models.DefaultWorkbookName
	}

	for _, sheetName := range f.GetSheetList() {
		rows, err := f.GetRows(sheetName)
		if err != nil {
			return models.Workbook{}, fmt.Errorf("read sheet %q: %w", sheetName, err)
		}

		sheet := models.Sheet{Name: sheetName, Type: models.SheetTable, Tables: []models.Table{}}
		if tbl, ok := tableFromRows(rows); ok {
			sheet.Tables = append(sheet.Tables, tbl)
		}
		wb.Sheets = append(wb.Sheets, sheet)
	}

	return wb, nil
}

// tableFromRows trims rows to their data bounds and takes the first row as
// the header.
func tableFromRows(rows [][]string) (models.Table, bool) {
	minRow, maxRow, minCol, maxCol := findDataBounds(rows)
	if minRow < 0 {
		return models.Table{}, false
	}

	cells := cropRows(rows, minRow, maxRow, minCol, maxCol)
	alignments := make([]models.Alignment, len(cells[0]))
	for i := range alignments {
		alignments[i] = models.AlignDefault
	}

	return models.Table{
		Headers:    cells[0],
		Rows:       cells[1:],
		Alignments: alignments,
	}, true
}
