package xlsx

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/mdsheet-go/pkg/mdsheet/models"
)

// Export builds an Excel file from wb. The caller must Close the result.
func Export(wb models.Workbook) (*excelize.File, error) {
	f := excelize.NewFile()
	defaultSheet := f.GetSheetName(0)

	names := make([]string, len(wb.Sheets))
	for i, sheet := range wb.Sheets {
		names[i] = sheet.Name
	}
	names = sheetNames(names)

	for i, sheet := range wb.Sheets {
		name := names[i]
		if i == 0 {
			if err := f.SetSheetName(defaultSheet, name); err != nil {
				f.Close()
				return nil, fmt.Errorf("rename sheet %q: %w", name, err)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			f.Close()
			return nil, fmt.Errorf("create sheet %q: %w", name, err)
		}

		var err error
		if sheet.IsDoc() {
			err = writeDoc(f, name, sheet.Content)
		} else {
			err = writeTables(f, name, sheet.Tables)
		}
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("write sheet %q: %w", name, err)
		}
	}

	if wb.Name != "" {
		if err := f.SetDocProps(&excelize.DocProperties{Title: wb.Name}); err != nil {
			f.Close()
			return nil, fmt.Errorf("set document properties: %w", err)
		}
	}

	return f, nil
}

// writeDoc puts each content line in column A.
func writeDoc(f *excelize.File, sheet, content string) error {
	if content == "" {
		return nil
	}
	for i, line := range strings.Split(content, "\n") {
		if line == "" {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetCellStr(sheet, cell, line); err != nil {
			return err
		}
	}
	return nil
}

// writeTables stacks tables from row 1 with one blank row between them.
func writeTables(f *excelize.File, sheet string, tables []models.Table) error {
	row := 1
	for _, tbl := range tables {
		if tbl.IsEmpty() {
			continue
		}
		if row > 1 {
			row++
		}

		if tbl.Headers != nil {
			if err := writeRow(f, sheet, row, tbl.Headers, false); err != nil {
				return err
			}
			row++
		}
		for _, cells := range tbl.Rows {
			if err := writeRow(f, sheet, row, cells, true); err != nil {
				return err
			}
			row++
		}
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, cells []string, typed bool) error {
	values := make([]any, len(cells))
	for i, c := range cells {
		if typed {
			values[i] = parseValue(c)
		} else {
			values[i] = c
		}
	}

	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}
