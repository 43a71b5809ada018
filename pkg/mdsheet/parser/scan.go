package parser

import (
	"github.com/ukaji3/mdsheet-go/pkg/mdsheet/models"
	"github.com/ukaji3/mdsheet-go/pkg/mdsheet/schema"
)

// ScanTables returns every table in text, ignoring workbook and sheet
// structure. Table headings split the text only when s sets an explicit
// table level; otherwise tables are separated by blank lines.
func ScanTables(text string, s schema.MultiTableSchema) []models.Table {
	level := 0
	if s.TableHeaderLevel.IsSet() {
		level = int(s.TableHeaderLevel)
	}
	tables := extractTables(toLines(text, 0), s.ParsingSchema, level, s.CaptureDescription)
	if tables == nil {
		return []models.Table{}
	}
	return tables
}
