package parser

import (
	"strings"
	"unicode"

	"github.com/ukaji3/mdsheet-go/pkg/mdsheet/models"
	"github.com/ukaji3/mdsheet-go/pkg/mdsheet/schema"
)

// ParseSheet parses the body of one sheet (the text below its heading).
// lineOffset is the absolute line number of the first line of text.
//
// A sheet with at least one table is a table sheet; otherwise it is a doc
// sheet whose Content is the right-trimmed text.
func ParseSheet(text, name string, s schema.MultiTableSchema, lineOffset int) models.Sheet {
	return parseSheetLines(toLines(text, lineOffset), name, s.ParsingSchema, s.EffectiveLevels(), s.CaptureDescription)
}

func parseSheetLines(lines []line, name string, s schema.ParsingSchema, lv schema.Levels, capture bool) models.Sheet {
	var (
		meta     metadataComment
		metaSeen bool
		fence    fenceState
	)

	body := make([]line, 0, len(lines))
	for _, ln := range lines {
		trimmed := strings.TrimSpace(ln.text)
		if !fence.masked(trimmed) {
			if m, payload, ok := models.ParseMetadataComment(trimmed, models.SheetMetadataMarker); ok {
				if !metaSeen {
					meta, metaSeen = metadataComment{values: m, payload: payload}, true
				}
				continue
			}
		}
		body = append(body, ln)
	}

	sheet := models.Sheet{
		Name:        name,
		Metadata:    meta.values,
		CommentJSON: meta.payload,
		Tables:      []models.Table{},
	}

	if tables := extractTables(body, s, lv.Table, capture); len(tables) > 0 {
		sheet.Type = models.SheetTable
		sheet.Tables = tables
		return sheet
	}

	sheet.Type = models.SheetDoc
	if content := joinText(body); strings.TrimSpace(content) != "" {
		sheet.Content = strings.TrimRightFunc(content, unicode.IsSpace)
	}
	return sheet
}
