package xlsx

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/mdsheet-go/pkg/mdsheet/models"
)

// WriteFile exports wb and saves it to path.
func WriteFile(wb models.Workbook, path string) (err error) {
	f, err := Export(wb)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()

	return f.SaveAs(path)
}

// ReadFile imports the Excel file at path. Without a document title the
// workbook is named after the file.
func ReadFile(path string) (models.Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return models.Workbook{}, err
	}
	defer f.Close()

	base := filepath.Base(path)
	return Import(f, strings.TrimSuffix(base, filepath.Ext(base)))
}
