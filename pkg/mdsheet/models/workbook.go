package models

// DefaultWorkbookName names a workbook whose root was not found.
const DefaultWorkbookName = "Workbook"

// Workbook represents a parsed document: a root heading followed by sheets.
type Workbook struct {
	// Name is the root heading text or frontmatter title.
	Name string `json:"name"`
	// Sheets lists sheets in document order.
	Sheets []Sheet `json:"sheets"`
	// Metadata holds workbook comment keys at the top level and, for
	// frontmatter roots, "header_type" and "frontmatter" side by side.
	Metadata map[string]any `json:"metadata,omitempty"`
	// CommentJSON is the workbook comment payload as read, keys in source order.
	CommentJSON string `json:"-"`
	// RootContent is the text between the root and the first sheet (optional).
	RootContent string `json:"rootContent,omitempty"`
	// StartLine is the 0-based root line. Nil when no root was found.
	StartLine *int `json:"startLine,omitempty"`
	// EndLine is the exclusive 0-based end of the workbook section.
	EndLine *int `json:"endLine,omitempty"`
}

// GetSheet returns the first sheet named name, or nil.
func (w *Workbook) GetSheet(name string) *Sheet {
	for i := range w.Sheets {
		if w.Sheets[i].Name == name {
			return &w.Sheets[i]
		}
	}
	return nil
}

// Tables returns every table of every sheet in document order.
func (w *Workbook) Tables() []Table {
	var out []Table
	for _, s := range w.Sheets {
		out = append(out, s.Tables...)
	}
	return out
}

// IsFrontmatter reports whether the root was declared by a frontmatter title.
func (w *Workbook) IsFrontmatter() bool {
	return w.Metadata[KeyHeaderType] == HeaderTypeFrontmatter
}

// Frontmatter returns the frontmatter mapping, or nil.
func (w *Workbook) Frontmatter() map[string]any {
	fm, _ := w.Metadata[KeyFrontmatter].(map[string]any)
	return fm
}
