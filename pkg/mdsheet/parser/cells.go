// Package parser turns structured markdown into workbooks, sheets and tables.
//
// All functions are pure: they never fail on malformed input and only
// degrade to finding fewer tables or sheets.
package parser

import (
	"regexp"
	"strings"

	"github.com/ukaji3/mdsheet-go/pkg/mdsheet/schema"
)

var brPattern = regexp.MustCompile(`(?i)<br\s*/?>`)

// SplitRow splits a table line into cleaned cells using the default schema
// with the given separator. It returns nil for a blank line.
func SplitRow(line string, sep rune) []string {
	s := schema.DefaultParsingSchema()
	s.ColumnSeparator = sep
	return ParseRow(line, s)
}

// ParseRow splits a table line into cells and cleans each one.
//
// Outer separators are optional: empty first and last parts are dropped.
// It returns nil for a blank line, which callers skip rather than keep as an
// empty row.
func ParseRow(line string, s schema.ParsingSchema) []string {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}

	parts := splitCells(line, separatorRune(s))
	if len(parts) > 1 {
		if strings.TrimSpace(parts[0]) == "" {
			parts = parts[1:]
		}
		if len(parts) > 0 && strings.TrimSpace(parts[len(parts)-1]) == "" {
			parts = parts[:len(parts)-1]
		}
	}

	cells := make([]string, len(parts))
	for i, p := range parts {
		cells[i] = CleanCell(p, s)
	}
	return cells
}

// CleanCell trims the cell, turns <br> variants into newlines and unescapes
// the separator, each step as enabled by s.
func CleanCell(cell string, s schema.ParsingSchema) string {
	if s.StripWhitespace {
		cell = strings.TrimSpace(cell)
	}
	if s.ConvertBRToNewline {
		cell = brPattern.ReplaceAllString(cell, "\n")
	}
	if strings.Contains(cell, `\`) {
		sep := s.Separator()
		cell = strings.ReplaceAll(cell, `\`+sep, sep)
	}
	return cell
}

// splitCells splits line at sep. A backslash copies the next character
// verbatim, and separators inside backtick code spans do not split.
func splitCells(line string, sep rune) []string {
	var (
		parts  []string
		cur    strings.Builder
		inCode bool
	)

	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case r == '\\':
			cur.WriteRune(r)
			if i+1 < len(runes) {
				i++
				cur.WriteRune(runes[i])
			}
		case r == '`':
			inCode = !inCode
			cur.WriteRune(r)
		case r == sep && !inCode:
			parts = append(parts, cur.String())
			cur.Reset()
		default:
			cur.WriteRune(r)
		}
	}

	return append(parts, cur.String())
}

func separatorRune(s schema.ParsingSchema) rune {
	if s.ColumnSeparator == 0 {
		return '|'
	}
	return s.ColumnSeparator
}
