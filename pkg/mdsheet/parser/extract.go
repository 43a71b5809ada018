package parser

import (
	"strings"

	"github.com/ukaji3/mdsheet-go/pkg/mdsheet/models"
	"github.com/ukaji3/mdsheet-go/pkg/mdsheet/schema"
)

// extractTables finds the tables of a region. With a positive tableLevel,
// headings of that level split the region into named blocks; otherwise
// blank lines separate tables.
func extractTables(lines []line, s schema.ParsingSchema, tableLevel int, capture bool) []models.Table {
	if tableLevel > 0 {
		return extractByHeading(lines, s, tableLevel, capture)
	}
	return extractByBlankLines(lines, s)
}

// extractByBlankLines parses each blank-line separated block that mentions
// the separator or a table metadata comment. Fenced lines end a block and
// are never part of one.
func extractByBlankLines(lines []line, s schema.ParsingSchema) []models.Table {
	var (
		tables []models.Table
		block  []line
		fence  fenceState
	)
	sep := s.Separator()

	flush := func() {
		if len(block) == 0 {
			return
		}
		defer func() { block = nil }()

		text := joinText(block)
		if !strings.Contains(text, sep) && !models.HasMetadataComment(text, models.TableMetadataMarker) {
			return
		}

		t := parseTableLines(block, s)
		if !t.IsEmpty() {
			t.StartLine = intRef(block[0].num)
			t.EndLine = intRef(block[len(block)-1].num + 1)
			tables = append(tables, t)
			return
		}

		// A metadata-only block belongs to the table before it. Orphans are dropped.
		if visual := t.Visual(); len(visual) > 0 && len(tables) > 0 {
			mergeVisual(&tables[len(tables)-1], visual, t.CommentJSON)
		}
	}

	for _, ln := range lines {
		trimmed := strings.TrimSpace(ln.text)
		if fence.masked(trimmed) || trimmed == "" {
			flush()
			continue
		}
		block = append(block, ln)
	}
	flush()

	return tables
}

func mergeVisual(t *models.Table, visual map[string]any, payload string) {
	merged := make(map[string]any, len(t.Visual())+len(visual))
	for k, v := range t.Visual() {
		merged[k] = v
	}
	for k, v := range visual {
		merged[k] = v
	}

	meta := make(map[string]any, len(t.Metadata)+1)
	for k, v := range t.Metadata {
		meta[k] = v
	}
	meta[models.KeyVisual] = merged
	t.Metadata = meta
	t.CommentJSON = payload
}

// tableBlock is the run of lines under one table heading. The block before
// the first heading has no name.
type tableBlock struct {
	name  string
	lines []line
}

func extractByHeading(lines []line, s schema.ParsingSchema, level int, capture bool) []models.Table {
	var (
		tables []models.Table
		cur    tableBlock
		fence  fenceState
	)

	for _, ln := range lines {
		trimmed := strings.TrimSpace(ln.text)
		if !fence.masked(trimmed) {
			if lv, text, ok := headingLevel(trimmed); ok && lv == level && text != "" {
				tables = append(tables, cur.tables(s, capture)...)
				cur = tableBlock{name: text}
				continue
			}
		}
		cur.lines = append(cur.lines, ln)
	}

	return append(tables, cur.tables(s, capture)...)
}

// tables splits the block at its first unfenced line containing the
// separator: text before it is the description, the rest holds tables.
// Only the first table takes the block's name and description.
func (b tableBlock) tables(s schema.ParsingSchema, capture bool) []models.Table {
	sep := s.Separator()
	start := -1

	var fence fenceState
	for i, ln := range b.lines {
		trimmed := strings.TrimSpace(ln.text)
		if fence.masked(trimmed) {
			continue
		}
		if strings.Contains(ln.text, sep) {
			start = i
			break
		}
	}
	if start < 0 {
		return nil
	}

	tables := extractByBlankLines(b.lines[start:], s)
	if len(tables) == 0 {
		return nil
	}

	tables[0].Name = b.name
	if capture {
		tables[0].Description = description(b.lines[:start])
	}
	return tables
}

func description(lines []line) string {
	var parts []string
	for _, ln := range lines {
		if t := strings.TrimSpace(ln.text); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, "\n")
}
