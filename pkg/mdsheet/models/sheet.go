package models

// SheetType tells whether a sheet holds tables or free text.
type SheetType string

const (
	// SheetTable holds zero or more tables and no content.
	SheetTable SheetType = "table"
	// SheetDoc holds free markdown content and no tables.
	SheetDoc SheetType = "doc"
)

// Sheet represents one sheet section of a workbook.
type Sheet struct {
	// Name is the sheet heading text.
	Name string `json:"name"`
	// Type is SheetTable or SheetDoc. The empty value is treated as SheetTable.
	Type SheetType `json:"type"`
	// Tables contains the tables of a table sheet.
	Tables []Table `json:"tables"`
	// Content is the raw markdown of a doc sheet (optional).
	Content string `json:"content,omitempty"`
	// Metadata comes from the sheet metadata comment (optional).
	Metadata map[string]any `json:"metadata,omitempty"`
	// CommentJSON is the comment payload as read, keys in source order.
	CommentJSON string `json:"-"`
}

// IsDoc reports whether the sheet holds free text rather than tables.
func (s Sheet) IsDoc() bool {
	return s.Type == SheetDoc
}

// GetTable returns the first table named name, or nil.
func (s *Sheet) GetTable(name string) *Table {
	for i := range s.Tables {
		if s.Tables[i].Name == name {
			return &s.Tables[i]
		}
	}
	return nil
}
