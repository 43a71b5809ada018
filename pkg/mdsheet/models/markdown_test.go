package models

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ukaji3/mdsheet-go/pkg/mdsheet/schema"
)

func TestTableToMarkdown(t *testing.T) {
	tbl := Table{
		Headers:    []string{"Name", "Note", "Qty"},
		Rows:       [][]string{{"a|b", "one\ntwo", "3"}},
		Alignments: []Alignment{AlignLeft, AlignCenter},
		Name:       "Items",
		Metadata:   map[string]any{KeyVisual: map[string]any{"frozen": true}},
	}

	want := "| Name | Note | Qty |\n" +
		"| :--- | :---: | --- |\n" +
		"| a\\|b | one<br>two | 3 |\n" +
		"\n" +
		"<!-- md-spreadsheet-table-metadata: {\"frozen\": true} -->\n"
	assert.Equal(t, want, tbl.ToMarkdown(schema.DefaultParsingSchema()))
}

func TestTableToMarkdownWithLevel(t *testing.T) {
	tbl := Table{
		Headers:     []string{"A"},
		Rows:        [][]string{{"1"}},
		Name:        "T",
		Description: "About",
	}

	want := "### T\n\nAbout\n\n| A |\n| --- |\n| 1 |\n"
	assert.Equal(t, want, tbl.ToMarkdownWithLevel(schema.DefaultParsingSchema(), 3))
	assert.Equal(t, "| A |\n| --- |\n| 1 |\n", tbl.ToMarkdownWithLevel(schema.DefaultParsingSchema(), 0))
}

func TestTableToMarkdownWithoutBRConversion(t *testing.T) {
	s := schema.DefaultParsingSchema()
	s.ConvertBRToNewline = false

	tbl := Table{Headers: []string{"A"}, Rows: [][]string{{"x<br>y"}}}
	assert.Equal(t, "| A |\n| --- |\n| x<br>y |\n", tbl.ToMarkdown(s))
}

func TestTableToMarkdownEmpty(t *testing.T) {
	assert.Equal(t, "", Table{}.ToMarkdown(schema.DefaultParsingSchema()))
}

func TestSheetToMarkdown(t *testing.T) {
	s := schema.DefaultMultiTableSchema()

	doc := Sheet{Name: "Notes", Type: SheetDoc, Content: "\nSome text.", Metadata: map[string]any{"hidden": true}}
	assert.Equal(t,
		"## Notes\n<!-- md-spreadsheet-sheet-metadata: {\"hidden\": true} -->\n\nSome text.\n",
		doc.ToMarkdown(s))

	data := Sheet{
		Name: "Data",
		Tables: []Table{
			{Headers: []string{"A"}, Rows: [][]string{{"1"}}, Name: "First"},
			{},
			{Headers: []string{"B"}, Rows: [][]string{}},
		},
	}
	assert.Equal(t,
		"## Data\n\n### First\n\n| A |\n| --- |\n| 1 |\n\n| B |\n| --- |\n",
		data.ToMarkdown(s))
}

func TestWorkbookToMarkdown(t *testing.T) {
	wb := Workbook{
		Name:        "Book",
		RootContent: "Intro.",
		Sheets: []Sheet{
			{Name: "S", Type: SheetTable, Tables: []Table{{Headers: []string{"A"}, Rows: [][]string{{"1"}}}}},
		},
		Metadata: map[string]any{"version": 2},
	}

	want := "# Book\n\nIntro.\n\n## S\n\n| A |\n| --- |\n| 1 |\n\n" +
		"<!-- md-spreadsheet-workbook-metadata: {\"version\": 2} -->\n"
	assert.Equal(t, want, wb.ToMarkdown(schema.DefaultMultiTableSchema()))
}

func TestWorkbookToMarkdownExplicitRoot(t *testing.T) {
	s := schema.MustMultiTableSchema(schema.WithRootMarker("## Data Root"), schema.WithCaptureDescription(false))
	wb := Workbook{
		Name:   "Data Root",
		Sheets: []Sheet{{Name: "S", Tables: []Table{{Headers: []string{"A"}, Rows: [][]string{{"1"}}, Name: "ignored"}}}},
	}

	assert.Equal(t, "## Data Root\n\n## S\n\n| A |\n| --- |\n| 1 |\n", wb.ToMarkdown(s))
}

func TestWorkbookToMarkdownFrontmatter(t *testing.T) {
	wb := Workbook{
		Name: "Renamed",
		Metadata: map[string]any{
			KeyHeaderType:  HeaderTypeFrontmatter,
			KeyFrontmatter: map[string]any{"title": "Original", "draft": true},
			"theme":        "dark",
		},
		Sheets: []Sheet{{Name: "S", Type: SheetDoc, Content: "text"}},
	}

	want := "---\ntitle: Renamed\ndraft: true\n---\n\n## S\ntext\n\n" +
		"<!-- md-spreadsheet-workbook-metadata: {\"theme\": \"dark\"} -->\n"
	assert.Equal(t, want, wb.ToMarkdown(schema.DefaultMultiTableSchema()))
}

func TestWorkbookToMarkdownKeepsTypedTitle(t *testing.T) {
	wb := Workbook{
		Name: "2024",
		Metadata: map[string]any{
			KeyHeaderType:  HeaderTypeFrontmatter,
			KeyFrontmatter: map[string]any{"title": 2024},
		},
	}

	assert.Equal(t, "---\ntitle: 2024\n---\n", wb.ToMarkdown(schema.DefaultMultiTableSchema()))
}

func TestLookups(t *testing.T) {
	wb := Workbook{Sheets: []Sheet{
		{Name: "A", Tables: []Table{{Name: "t1"}, {Name: "t2"}}},
		{Name: "B"},
	}}

	sheet := wb.GetSheet("A")
	if assert.NotNil(t, sheet) {
		assert.NotNil(t, sheet.GetTable("t2"))
		assert.Nil(t, sheet.GetTable("t3"))
		sheet.GetTable("t1").Description = "changed"
	}
	assert.Equal(t, "changed", wb.Sheets[0].Tables[0].Description)
	assert.Nil(t, wb.GetSheet("C"))
	assert.Len(t, wb.Tables(), 2)
}

func TestMetadataComment(t *testing.T) {
	line := FormatMetadataComment(TableMetadataMarker, map[string]any{"b": 1, "a": []any{"x<y", true}})
	assert.Equal(t, `<!-- md-spreadsheet-table-metadata: {"a": ["x<y", true], "b": 1} -->`, line)

	meta, payload, ok := ParseMetadataComment("  "+line+"  ", TableMetadataMarker)
	assert.True(t, ok)
	assert.Equal(t, map[string]any{"a": []any{"x<y", true}, "b": float64(1)}, meta)
	assert.Equal(t, `{"a": ["x<y", true], "b": 1}`, payload)

	_, _, ok = ParseMetadataComment(line, SheetMetadataMarker)
	assert.False(t, ok)

	meta, payload, ok = ParseMetadataComment("<!-- md-spreadsheet-table-metadata: [1, 2] -->", TableMetadataMarker)
	assert.True(t, ok)
	assert.Nil(t, meta)
	assert.Empty(t, payload)

	_, _, ok = ParseMetadataComment("<!-->", TableMetadataMarker)
	assert.False(t, ok)

	assert.True(t, HasMetadataComment("x\n"+line, TableMetadataMarker))
	assert.False(t, HasMetadataComment("plain", TableMetadataMarker))
}

func TestMetadataCommentKeepsSourceOrder(t *testing.T) {
	meta, payload, ok := ParseMetadataComment(
		`<!-- md-spreadsheet-workbook-metadata: {"title":"A & B","author":{"z":1.50,"a":null}} -->`,
		WorkbookMetadataMarker)
	assert.True(t, ok)
	assert.Equal(t, `{"title": "A & B", "author": {"z": 1.50, "a": null}}`, payload)

	assert.Equal(t,
		`<!-- md-spreadsheet-workbook-metadata: {"title": "A & B", "author": {"z": 1.50, "a": null}} -->`,
		formatComment(WorkbookMetadataMarker, meta, payload))

	meta["title"] = "changed"
	assert.Equal(t,
		`<!-- md-spreadsheet-workbook-metadata: {"author": {"a": null, "z": 1.5}, "title": "changed"} -->`,
		formatComment(WorkbookMetadataMarker, meta, payload))
}

func TestWorkbookToMarkdownBlankFrontmatterTitle(t *testing.T) {
	fm := map[string]any{"title": "", "author": "a"}
	wb := Workbook{
		Name:      "Tables",
		Metadata:  map[string]any{KeyHeaderType: HeaderTypeFrontmatter, KeyFrontmatter: fm},
		Sheets:    []Sheet{{Name: "S", Tables: []Table{{Headers: []string{"A"}, Rows: [][]string{{"1"}}}}}},
		StartLine: new(int),
	}

	want := "---\ntitle: \"\"\nauthor: a\n---\n# Tables\n\n## S\n\n| A |\n| --- |\n| 1 |\n"
	assert.Equal(t, want, wb.ToMarkdown(schema.DefaultMultiTableSchema()))

	noRoot := Workbook{
		Name:     DefaultWorkbookName,
		Metadata: map[string]any{KeyHeaderType: HeaderTypeFrontmatter, KeyFrontmatter: fm},
	}
	assert.Equal(t, "---\ntitle: \"\"\nauthor: a\n---\n", noRoot.ToMarkdown(schema.DefaultMultiTableSchema()))
}

func TestTableHelpers(t *testing.T) {
	assert.True(t, Table{}.IsEmpty())
	assert.False(t, Table{Rows: [][]string{{}}}.IsEmpty())
	assert.Equal(t, 3, Table{Rows: [][]string{{"a"}, {"a", "b", "c"}}}.Width())
	assert.Equal(t, 1, Table{Headers: []string{"h"}, Rows: [][]string{{"a", "b"}}}.Width())
}
