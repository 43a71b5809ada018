package mdsheet

import (
	"errors"
	"io/fs"
	"os"

	"github.com/ukaji3/mdsheet-go/pkg/mdsheet/models"
	"github.com/ukaji3/mdsheet-go/pkg/mdsheet/parser"
	"github.com/ukaji3/mdsheet-go/pkg/mdsheet/records"
	"github.com/ukaji3/mdsheet-go/pkg/mdsheet/schema"
	"github.com/ukaji3/mdsheet-go/pkg/mdsheet/xlsx"
)

// ParseTable parses a single table. See parser.ParseTable.
func ParseTable(text string, s schema.ParsingSchema) models.Table {
	return parser.ParseTable(text, s)
}

// ParseSheet parses the body of one sheet. See parser.ParseSheet.
func ParseSheet(text, name string, s schema.MultiTableSchema, lineOffset int) models.Sheet {
	return parser.ParseSheet(text, name, s, lineOffset)
}

// ParseWorkbook parses a whole document. See parser.ParseWorkbook.
func ParseWorkbook(text string, s schema.MultiTableSchema) models.Workbook {
	return parser.ParseWorkbook(text, s)
}

// ScanTables finds every table in text regardless of workbook structure.
func ScanTables(text string, s schema.MultiTableSchema) []models.Table {
	return parser.ScanTables(text, s)
}

// ParseAs decodes the first table found in text into values of struct type T.
// Text without any table yields an empty result.
func ParseAs[T any](text string, s schema.MultiTableSchema) (records.Result[T], error) {
	tables := parser.ScanTables(text, s)
	if len(tables) == 0 {
		// Decoding a header-only table still rejects a bad T.
		return records.Decode[T](models.Table{Headers: []string{}})
	}
	return records.Decode[T](tables[0])
}

// ParseFile reads a markdown or Excel workbook from path.
func ParseFile(path string, opts Options) (*models.Workbook, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, NewConversionError(path, "read", err)
	}

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, NewConversionError(path, "read", ErrFileNotFound)
	}

	var wb models.Workbook
	switch format {
	case FormatXLSX:
		wb, err = xlsx.ReadFile(path)
		if err != nil {
			return nil, NewConversionError(path, "xlsx", err)
		}
	default:
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, NewConversionError(path, "read", err)
		}
		wb = parser.ParseWorkbook(string(data), opts.Schema)
	}

	log := opts.Logger.With().Str("path", path).Str("format", string(format)).Logger()
	if format == FormatMarkdown && wb.StartLine == nil {
		log.Warn().Msg("no workbook root found")
	}
	log.Debug().
		Str("workbook", wb.Name).
		Int("sheets", len(wb.Sheets)).
		Int("tables", len(wb.Tables())).
		Msg("parsed workbook")

	return &wb, nil
}

// WriteFile writes wb to path in the format named by its extension.
func WriteFile(wb *models.Workbook, path string, opts Options) error {
	format, err := DetectFormat(path)
	if err != nil {
		return NewConversionError(path, "write", err)
	}

	switch format {
	case FormatXLSX:
		if err := xlsx.WriteFile(*wb, path); err != nil {
			return NewConversionError(path, "xlsx", err)
		}
	default:
		if err := os.WriteFile(path, []byte(wb.ToMarkdown(opts.Schema)), 0644); err != nil {
			return NewConversionError(path, "write", err)
		}
	}

	opts.Logger.Info().Str("path", path).Str("format", string(format)).Msg("wrote workbook")
	return nil
}
