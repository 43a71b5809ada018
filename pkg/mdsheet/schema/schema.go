// Package schema defines the immutable parsing configuration shared by the
// markdown parser and generator.
package schema

import (
	"fmt"
	"strconv"
	"strings"
)

// HeaderLevel selects an ATX heading depth for sheets or tables.
//
// The zero value is LevelAuto. LevelNone disables the level entirely (only
// meaningful for table headers). Positive values are explicit depths.
type HeaderLevel int

const (
	// LevelAuto derives the level from the detected workbook root.
	LevelAuto HeaderLevel = 0
	// LevelNone disables header-based splitting.
	LevelNone HeaderLevel = -1
)

// IsSet reports whether the level is an explicit positive depth.
func (l HeaderLevel) IsSet() bool {
	return l > 0
}

func (l HeaderLevel) String() string {
	switch {
	case l == LevelAuto:
		return "auto"
	case l == LevelNone:
		return "none"
	case l > 0:
		return fmt.Sprintf("%d", int(l))
	default:
		return fmt.Sprintf("invalid(%d)", int(l))
	}
}

// ParseHeaderLevel reads the String form back: "auto", "none" or a positive
// integer. An empty string means auto.
func ParseHeaderLevel(text string) (HeaderLevel, error) {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "", "auto":
		return LevelAuto, nil
	case "none":
		return LevelNone, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || n < 1 || n > 6 {
		return LevelAuto, fmt.Errorf("invalid header level %q: want auto, none or 1-6", text)
	}
	return HeaderLevel(n), nil
}

// Prefix returns the ATX heading prefix ("## ") for an explicit level.
// It returns "" for auto or disabled levels.
func (l HeaderLevel) Prefix() string {
	if !l.IsSet() {
		return ""
	}
	return strings.Repeat("#", int(l)) + " "
}

// ParsingSchema configures how a single pipe table is tokenized.
// Values are passed by value and never mutated after construction.
type ParsingSchema struct {
	// ColumnSeparator splits cells. Defaults to '|'.
	ColumnSeparator rune `json:"column_separator"`
	// HeaderSeparatorChar is the dash character of the separator row. Defaults to '-'.
	HeaderSeparatorChar rune `json:"header_separator_char"`
	// StripWhitespace trims surrounding whitespace from every cell.
	StripWhitespace bool `json:"strip_whitespace"`
	// ConvertBRToNewline replaces <br> variants inside cells with "\n".
	ConvertBRToNewline bool `json:"convert_br_to_newline"`
}

// DefaultParsingSchema returns the GitHub-flavored table configuration.
func DefaultParsingSchema() ParsingSchema {
	return ParsingSchema{
		ColumnSeparator:     '|',
		HeaderSeparatorChar: '-',
		StripWhitespace:     true,
		ConvertBRToNewline:  true,
	}
}

// String returns a stable fingerprint of the schema. Parsed tables record it
// under the "schema_used" metadata key.
func (s ParsingSchema) String() string {
	return fmt.Sprintf("ParsingSchema(column_separator=%q, header_separator_char=%q, strip_whitespace=%t, convert_br_to_newline=%t)",
		string(s.ColumnSeparator), string(s.HeaderSeparatorChar), s.StripWhitespace, s.ConvertBRToNewline)
}

// Separator returns the column separator as a string, falling back to "|".
func (s ParsingSchema) Separator() string {
	if s.ColumnSeparator == 0 {
		return "|"
	}
	return string(s.ColumnSeparator)
}

// MultiTableSchema extends ParsingSchema with workbook structure options.
type MultiTableSchema struct {
	ParsingSchema

	// RootMarker is the exact heading line opening the workbook ("# Tables").
	// Empty means auto-detect.
	RootMarker string `json:"root_marker,omitempty"`
	// SheetHeaderLevel is the heading depth of sheets.
	SheetHeaderLevel HeaderLevel `json:"sheet_header_level"`
	// TableHeaderLevel is the heading depth of named tables.
	TableHeaderLevel HeaderLevel `json:"table_header_level"`
	// CaptureDescription keeps the text between a table heading and its table.
	CaptureDescription bool `json:"capture_description"`
}

// DefaultMultiTableSchema returns the auto-detecting workbook configuration.
func DefaultMultiTableSchema() MultiTableSchema {
	return MultiTableSchema{
		ParsingSchema:      DefaultParsingSchema(),
		RootMarker:         "",
		SheetHeaderLevel:   LevelAuto,
		TableHeaderLevel:   LevelAuto,
		CaptureDescription: true,
	}
}

// AutoRoot reports whether the workbook root is detected rather than configured.
func (s MultiTableSchema) AutoRoot() bool {
	return strings.TrimSpace(s.RootMarker) == ""
}

func (s MultiTableSchema) String() string {
	return fmt.Sprintf("MultiTableSchema(%s, root_marker=%q, sheet_header_level=%s, table_header_level=%s, capture_description=%t)",
		s.ParsingSchema.String(), s.RootMarker, s.SheetHeaderLevel, s.TableHeaderLevel, s.CaptureDescription)
}

// RootLevel returns the heading depth of the configured root marker, or 1
// when the root is auto-detected or the marker has no leading '#'.
func (s MultiTableSchema) RootLevel() int {
	marker := strings.TrimSpace(s.RootMarker)
	n := len(marker) - len(strings.TrimLeft(marker, "#"))
	if n == 0 {
		return 1
	}
	return n
}

// EffectiveLevels resolves the levels used when no document is at hand,
// as when generating markdown from a model.
func (s MultiTableSchema) EffectiveLevels() Levels {
	return s.Resolve(s.RootLevel(), s.AutoRoot())
}

// Levels holds header depths after inheritance from the workbook root.
type Levels struct {
	// Root is the heading depth of the workbook root.
	Root int
	// Sheet is the heading depth of sheets.
	Sheet int
	// Table is the heading depth of named tables; 0 disables table headers.
	Table int
}

// Resolve applies header-level inheritance for a root at rootLevel.
//
// Auto-detected roots give sheets rootLevel+1 and tables rootLevel+2. An
// explicit root marker leaves unset levels at sheet=2 and no table headers.
func (s MultiTableSchema) Resolve(rootLevel int, autoRoot bool) Levels {
	lv := Levels{Root: rootLevel}

	switch {
	case s.SheetHeaderLevel.IsSet():
		lv.Sheet = int(s.SheetHeaderLevel)
	case autoRoot:
		lv.Sheet = rootLevel + 1
	default:
		lv.Sheet = 2
	}

	switch {
	case s.TableHeaderLevel.IsSet():
		lv.Table = int(s.TableHeaderLevel)
	case s.TableHeaderLevel == LevelNone:
		lv.Table = 0
	case autoRoot:
		lv.Table = rootLevel + 2
	default:
		lv.Table = 0
	}

	return lv
}

// WithLevels returns a copy whose sheet and table levels are the resolved values.
func (s MultiTableSchema) WithLevels(lv Levels) MultiTableSchema {
	s.SheetHeaderLevel = HeaderLevel(lv.Sheet)
	if lv.Table > 0 {
		s.TableHeaderLevel = HeaderLevel(lv.Table)
	} else {
		s.TableHeaderLevel = LevelNone
	}
	return s
}
