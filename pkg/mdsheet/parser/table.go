package parser

import (
	"strings"

	"github.com/ukaji3/mdsheet-go/pkg/mdsheet/models"
	"github.com/ukaji3/mdsheet-go/pkg/mdsheet/schema"
)

// ParseTable parses a single table block. Rows before a confirmed header are
// kept as data rows, and table metadata comments are collected under
// Metadata["visual"].
func ParseTable(text string, s schema.ParsingSchema) models.Table {
	return parseTableLines(toLines(text, 0), s)
}

func parseTableLines(lines []line, s schema.ParsingSchema) models.Table {
	b := newTableBuilder(s)
	for _, ln := range lines {
		b.feed(ln.text)
	}
	return b.finish()
}

type tableState int

const (
	seekingHeader tableState = iota
	confirmingHeader
	inBody
)

// tableBuilder is the per-call state machine behind ParseTable.
type tableBuilder struct {
	schema  schema.ParsingSchema
	state   tableState
	pending []string
	headers []string
	aligns  []models.Alignment
	rows    [][]string
	visual  map[string]any
	payload string
}

func newTableBuilder(s schema.ParsingSchema) *tableBuilder {
	return &tableBuilder{schema: s, rows: [][]string{}}
}

func (b *tableBuilder) feed(text string) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return
	}

	if meta, payload, ok := models.ParseMetadataComment(trimmed, models.TableMetadataMarker); ok {
		if meta != nil {
			if b.visual == nil {
				b.visual = make(map[string]any, len(meta))
			}
			for k, v := range meta {
				b.visual[k] = v
			}
			b.payload = payload
		}
		return
	}

	row := ParseRow(trimmed, b.schema)
	if row == nil {
		return
	}

	switch b.state {
	case seekingHeader:
		b.pending = row
		b.state = confirmingHeader
	case confirmingHeader:
		if aligns, ok := ClassifySeparatorRow(row, b.schema); ok {
			b.headers = b.pending
			b.aligns = aligns
			b.pending = nil
			b.state = inBody
			return
		}
		b.rows = append(b.rows, b.pending)
		b.pending = row
	case inBody:
		b.rows = append(b.rows, row)
	}
}

func (b *tableBuilder) finish() models.Table {
	if b.pending != nil {
		b.rows = append(b.rows, b.pending)
		b.pending = nil
	}

	t := models.Table{
		Headers:  b.headers,
		Rows:     b.rows,
		Metadata: map[string]any{models.KeySchemaUsed: b.schema.String()},
	}

	if t.Headers != nil {
		width := len(t.Headers)
		for i, row := range t.Rows {
			t.Rows[i] = fitRow(row, width)
		}
		t.Alignments = fitAlignments(b.aligns, width)
	}

	if len(b.visual) > 0 {
		t.Metadata[models.KeyVisual] = b.visual
		t.CommentJSON = b.payload
	}
	return t
}

// fitRow pads row with empty cells or truncates it to width.
func fitRow(row []string, width int) []string {
	if len(row) == width {
		return row
	}
	out := make([]string, width)
	copy(out, row)
	return out
}

func fitAlignments(aligns []models.Alignment, width int) []models.Alignment {
	out := make([]models.Alignment, width)
	for i := range out {
		out[i] = models.AlignDefault
		if i < len(aligns) {
			out[i] = aligns[i]
		}
	}
	return out
}
