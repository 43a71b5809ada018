package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/mdsheet-go/pkg/mdsheet/models"
	"github.com/ukaji3/mdsheet-go/pkg/mdsheet/schema"
)

func TestParseTable(t *testing.T) {
	s := schema.DefaultParsingSchema()

	t.Run("basic", func(t *testing.T) {
		tbl := ParseTable("| A | B |\n|:--|--:|\n| 1 | 2 |\n| 3 | 4 |\n", s)
		assert.Equal(t, []string{"A", "B"}, tbl.Headers)
		assert.Equal(t, [][]string{{"1", "2"}, {"3", "4"}}, tbl.Rows)
		assert.Equal(t, []models.Alignment{models.AlignLeft, models.AlignRight}, tbl.Alignments)
		assert.Equal(t, s.String(), tbl.Metadata[models.KeySchemaUsed])
		assert.Nil(t, tbl.Visual())
	})

	t.Run("rows normalized to header width", func(t *testing.T) {
		tbl := ParseTable("| A | B | C |\n| --- | --- | --- |\n| 1 |\n| 1 | 2 | 3 | 4 |\n", s)
		require.Len(t, tbl.Rows, 2)
		for _, row := range tbl.Rows {
			assert.Len(t, row, len(tbl.Headers))
		}
		assert.Equal(t, []string{"1", "", ""}, tbl.Rows[0])
		assert.Equal(t, []string{"1", "2", "3"}, tbl.Rows[1])
	})

	t.Run("no separator keeps all rows as data", func(t *testing.T) {
		tbl := ParseTable("| a | b |\n| c | d |\n", s)
		assert.Nil(t, tbl.Headers)
		assert.Equal(t, [][]string{{"a", "b"}, {"c", "d"}}, tbl.Rows)
	})

	t.Run("rows before the header are data", func(t *testing.T) {
		tbl := ParseTable("| pre |\n| A |\n| --- |\n| 1 |\n", s)
		assert.Equal(t, []string{"A"}, tbl.Headers)
		assert.Equal(t, [][]string{{"pre"}, {"1"}}, tbl.Rows)
	})

	t.Run("header only", func(t *testing.T) {
		tbl := ParseTable("| A | B |\n| --- | --- |\n", s)
		assert.Equal(t, []string{"A", "B"}, tbl.Headers)
		assert.Empty(t, tbl.Rows)
		assert.NotNil(t, tbl.Rows)
	})

	t.Run("visual metadata merged", func(t *testing.T) {
		text := "| A |\n| --- |\n<!-- md-spreadsheet-table-metadata: {\"w\": 1} -->\n| 1 |\n<!-- md-spreadsheet-table-metadata: {\"h\": 2} -->\n"
		tbl := ParseTable(text, s)
		assert.Equal(t, [][]string{{"1"}}, tbl.Rows)
		assert.Equal(t, map[string]any{"w": float64(1), "h": float64(2)}, tbl.Visual())
	})

	t.Run("malformed metadata dropped", func(t *testing.T) {
		tbl := ParseTable("| A |\n| --- |\n<!-- md-spreadsheet-table-metadata: {bad -->\n| 1 |\n", s)
		assert.Equal(t, [][]string{{"1"}}, tbl.Rows)
		assert.NotContains(t, tbl.Metadata, models.KeyVisual)
	})

	t.Run("blank lines skipped", func(t *testing.T) {
		tbl := ParseTable("\n| A |\n\n| --- |\n\n| 1 |\n\n", s)
		assert.Equal(t, []string{"A"}, tbl.Headers)
		assert.Equal(t, [][]string{{"1"}}, tbl.Rows)
	})

	t.Run("crlf", func(t *testing.T) {
		tbl := ParseTable("| A |\r\n| --- |\r\n| 1 |\r\n", s)
		assert.Equal(t, []string{"A"}, tbl.Headers)
		assert.Equal(t, [][]string{{"1"}}, tbl.Rows)
	})
}

func TestScanTablesBlankLineMode(t *testing.T) {
	text := "Intro\n\n| A |\n| --- |\n| 1 |\n\nmiddle text\n\n| B |\n| --- |\n| 2 |\n"
	tables := ScanTables(text, schema.DefaultMultiTableSchema())

	require.Len(t, tables, 2)
	assert.Equal(t, []string{"A"}, tables[0].Headers)
	assert.Equal(t, []string{"B"}, tables[1].Headers)
	assert.Equal(t, 2, *tables[0].StartLine)
	assert.Equal(t, 5, *tables[0].EndLine)
	assert.Equal(t, 8, *tables[1].StartLine)
	assert.Equal(t, 11, *tables[1].EndLine)
}

func TestScanTablesTrailingMetadataBlock(t *testing.T) {
	text := "<!-- md-spreadsheet-table-metadata: {\"orphan\": true} -->\n\n" +
		"| A |\n| --- |\n| 1 |\n\n" +
		"<!-- md-spreadsheet-table-metadata: {\"width\": 10} -->\n"
	tables := ScanTables(text, schema.DefaultMultiTableSchema())

	require.Len(t, tables, 1)
	assert.Equal(t, map[string]any{"width": float64(10)}, tables[0].Visual())
	assert.Equal(t, 5, *tables[0].EndLine)
}

func TestScanTablesHeaderMode(t *testing.T) {
	text := "## First\n\nDesc one\nsecond line\n\n| A |\n| --- |\n| 1 |\n\n| Extra |\n| --- |\n| x |\n\n## Second\n\n| B |\n| --- |\n| 2 |\n"
	s := schema.MustMultiTableSchema(schema.WithTableHeaderLevel(2))
	tables := ScanTables(text, s)

	require.Len(t, tables, 3)
	assert.Equal(t, "First", tables[0].Name)
	assert.Equal(t, "Desc one\nsecond line", tables[0].Description)
	assert.Equal(t, "", tables[1].Name)
	assert.Equal(t, "", tables[1].Description)
	assert.Equal(t, []string{"Extra"}, tables[1].Headers)
	assert.Equal(t, "Second", tables[2].Name)
	assert.Equal(t, "", tables[2].Description)
	assert.Equal(t, 5, *tables[0].StartLine)
	assert.Equal(t, 15, *tables[2].StartLine)
}

func TestScanTablesWithoutDescriptions(t *testing.T) {
	text := "## First\n\nDesc\n\n| A |\n| --- |\n| 1 |\n"
	s := schema.MustMultiTableSchema(schema.WithTableHeaderLevel(2), schema.WithCaptureDescription(false))
	tables := ScanTables(text, s)

	require.Len(t, tables, 1)
	assert.Equal(t, "First", tables[0].Name)
	assert.Empty(t, tables[0].Description)
}

func TestScanTablesSkipsFencedTables(t *testing.T) {
	text := "```\n| A |\n| --- |\n| 1 |\n```\n\n| B |\n| --- |\n| 2 |\n"
	tables := ScanTables(text, schema.DefaultMultiTableSchema())

	require.Len(t, tables, 1)
	assert.Equal(t, []string{"B"}, tables[0].Headers)
}

func TestScanTablesNone(t *testing.T) {
	tables := ScanTables("just prose\n\nmore prose\n", schema.DefaultMultiTableSchema())
	assert.NotNil(t, tables)
	assert.Empty(t, tables)
}
