// Package models defines the workbook, sheet and table structures produced by
// the markdown parser and consumed by the generator.
package models

// Alignment is the column alignment declared by a separator row.
type Alignment string

const (
	// AlignDefault has no colons (---).
	AlignDefault Alignment = "default"
	// AlignLeft has a leading colon (:---).
	AlignLeft Alignment = "left"
	// AlignRight has a trailing colon (---:).
	AlignRight Alignment = "right"
	// AlignCenter has colons on both ends (:---:).
	AlignCenter Alignment = "center"
)

// Metadata keys written by the parser.
const (
	// KeySchemaUsed holds the fingerprint of the schema a table was parsed with.
	KeySchemaUsed = "schema_used"
	// KeyVisual holds table metadata read from table metadata comments.
	KeyVisual = "visual"
	// KeyHeaderType marks how the workbook root was declared.
	KeyHeaderType = "header_type"
	// KeyFrontmatter holds the frontmatter mapping of a workbook.
	KeyFrontmatter = "frontmatter"
	// HeaderTypeFrontmatter is the KeyHeaderType value for frontmatter roots.
	HeaderTypeFrontmatter = "frontmatter"
)

// Table represents one pipe table.
type Table struct {
	// Headers is the header row. Nil when no separator row confirmed one.
	Headers []string `json:"headers"`
	// Rows contains data rows. With headers, every row has len(Headers) cells.
	Rows [][]string `json:"rows"`
	// Alignments has one entry per header column (optional).
	Alignments []Alignment `json:"alignments,omitempty"`
	// Name is the table heading text (optional).
	Name string `json:"name,omitempty"`
	// Description is the text between the table heading and the table (optional).
	Description string `json:"description,omitempty"`
	// Metadata carries the schema fingerprint and "visual" comment data.
	Metadata map[string]any `json:"metadata,omitempty"`
	// CommentJSON is the table metadata comment payload as read. The
	// generator keeps its key order while it still matches Visual().
	CommentJSON string `json:"-"`
	// StartLine is the 0-based line where the table source begins.
	StartLine *int `json:"startLine,omitempty"`
	// EndLine is the exclusive 0-based line where the table source ends.
	EndLine *int `json:"endLine,omitempty"`
}

// Visual returns the "visual" metadata map, or nil.
func (t Table) Visual() map[string]any {
	v, _ := t.Metadata[KeyVisual].(map[string]any)
	return v
}

// Width returns the number of columns: the header count, or the widest row
// for tables without headers.
func (t Table) Width() int {
	if t.Headers != nil {
		return len(t.Headers)
	}
	w := 0
	for _, row := range t.Rows {
		if len(row) > w {
			w = len(row)
		}
	}
	return w
}

// IsEmpty reports whether the table has neither headers nor rows.
func (t Table) IsEmpty() bool {
	return t.Headers == nil && len(t.Rows) == 0
}
