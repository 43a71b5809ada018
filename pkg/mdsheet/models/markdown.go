package models

import (
	"fmt"
	"strings"

	"github.com/ukaji3/mdsheet-go/pkg/mdsheet/frontmatter"
	"github.com/ukaji3/mdsheet-go/pkg/mdsheet/schema"
)

// ToMarkdown renders the table as a pipe table followed by its visual
// metadata comment, if any. Name and description are not written.
func (t Table) ToMarkdown(s schema.ParsingSchema) string {
	return joinLines(t.lines(s, 0))
}

// ToMarkdownWithLevel is like ToMarkdown but writes the name as a heading of
// the given level and the description below it. A level below 1 omits both.
func (t Table) ToMarkdownWithLevel(s schema.ParsingSchema, level int) string {
	return joinLines(t.lines(s, level))
}

// ToMarkdown renders the sheet heading, its metadata comment and its body.
func (s Sheet) ToMarkdown(sc schema.MultiTableSchema) string {
	return joinLines(s.lines(sc.ParsingSchema, sc.EffectiveLevels()))
}

// ToMarkdown renders the workbook in canonical layout. Parsing the result
// with the same schema yields an equivalent workbook.
func (w Workbook) ToMarkdown(sc schema.MultiTableSchema) string {
	lv := sc.EffectiveLevels()

	var parts []string
	if w.IsFrontmatter() {
		block := frontmatter.Render(frontmatter.Marshal(w.frontmatterForOutput()))
		parts = append(parts, strings.TrimSuffix(block, "\n"))
	}
	if w.needsRootHeading() {
		if sc.AutoRoot() {
			parts = append(parts, heading(lv.Root, w.Name))
		} else {
			parts = append(parts, strings.TrimSpace(sc.RootMarker))
		}
	}

	if w.RootContent != "" {
		parts = append(parts, "", w.RootContent)
	}

	for _, sheet := range w.Sheets {
		parts = append(parts, "")
		parts = append(parts, sheet.lines(sc.ParsingSchema, lv)...)
	}

	if meta := w.commentMetadata(); len(meta) > 0 {
		if c := formatComment(WorkbookMetadataMarker, meta, w.CommentJSON); c != "" {
			parts = append(parts, "", c)
		}
	}

	return joinLines(parts)
}

// titledFrontmatter reports whether the frontmatter title declares the root.
func (w Workbook) titledFrontmatter() bool {
	if !w.IsFrontmatter() {
		return false
	}
	title, ok := w.Frontmatter()["title"]
	return ok && title != nil && strings.TrimSpace(fmt.Sprint(title)) != ""
}

// needsRootHeading reports whether a root heading follows the frontmatter.
// A blank title leaves the root to a heading; without one the workbook had
// no root and nothing is written for it.
func (w Workbook) needsRootHeading() bool {
	switch {
	case !w.IsFrontmatter():
		return true
	case w.titledFrontmatter():
		return false
	default:
		return w.StartLine != nil || len(w.Sheets) > 0 || w.RootContent != ""
	}
}

func (w Workbook) frontmatterForOutput() map[string]any {
	fm := make(map[string]any, len(w.Frontmatter())+1)
	for k, v := range w.Frontmatter() {
		fm[k] = v
	}
	if !w.titledFrontmatter() {
		return fm
	}
	if strings.TrimSpace(fmt.Sprint(fm["title"])) != w.Name {
		fm["title"] = w.Name
	}
	return fm
}

// commentMetadata returns the keys that belong in the workbook comment.
func (w Workbook) commentMetadata() map[string]any {
	if !w.IsFrontmatter() {
		return w.Metadata
	}
	out := make(map[string]any, len(w.Metadata))
	for k, v := range w.Metadata {
		if k == KeyHeaderType || k == KeyFrontmatter {
			continue
		}
		out[k] = v
	}
	return out
}

func (s Sheet) lines(ps schema.ParsingSchema, lv schema.Levels) []string {
	parts := []string{heading(lv.Sheet, s.Name)}

	if len(s.Metadata) > 0 {
		if c := formatComment(SheetMetadataMarker, s.Metadata, s.CommentJSON); c != "" {
			parts = append(parts, c)
		}
	}

	if s.IsDoc() {
		if s.Content != "" {
			parts = append(parts, s.Content)
		}
		return parts
	}

	for _, t := range s.Tables {
		tl := t.lines(ps, lv.Table)
		if len(tl) == 0 {
			continue
		}
		parts = append(parts, "")
		parts = append(parts, tl...)
	}
	return parts
}

// lines renders the table block. Blank lines separate heading, description,
// grid and trailing comment.
func (t Table) lines(s schema.ParsingSchema, level int) []string {
	var parts []string
	if level > 0 && t.Name != "" {
		parts = append(parts, heading(level, t.Name), "")
	}
	if level > 0 && t.Description != "" {
		parts = append(parts, t.Description, "")
	}

	grid := t.grid(s)
	if len(grid) == 0 && len(t.Visual()) == 0 {
		if len(parts) > 0 {
			return parts[:len(parts)-1]
		}
		return nil
	}
	parts = append(parts, grid...)

	if visual := t.Visual(); len(visual) > 0 {
		if c := formatComment(TableMetadataMarker, visual, t.CommentJSON); c != "" {
			if len(grid) > 0 {
				parts = append(parts, "")
			}
			parts = append(parts, c)
		}
	}
	return parts
}

func (t Table) grid(s schema.ParsingSchema) []string {
	var out []string
	if t.Headers != nil {
		out = append(out, formatRow(t.Headers, s))
		out = append(out, formatSeparator(t.alignments(), s))
	}
	for _, row := range t.Rows {
		out = append(out, formatRow(row, s))
	}
	return out
}

func (t Table) alignments() []Alignment {
	out := make([]Alignment, len(t.Headers))
	for i := range out {
		out[i] = AlignDefault
		if i < len(t.Alignments) && t.Alignments[i] != "" {
			out[i] = t.Alignments[i]
		}
	}
	return out
}

func formatRow(cells []string, s schema.ParsingSchema) string {
	sep := s.Separator()
	escaped := make([]string, len(cells))
	for i, c := range cells {
		escaped[i] = escapeCell(c, s)
	}
	return sep + " " + strings.Join(escaped, " "+sep+" ") + " " + sep
}

func formatSeparator(aligns []Alignment, s schema.ParsingSchema) string {
	dash := string(s.HeaderSeparatorChar)
	if s.HeaderSeparatorChar == 0 {
		dash = "-"
	}
	bar := strings.Repeat(dash, 3)

	cells := make([]string, len(aligns))
	for i, a := range aligns {
		switch a {
		case AlignLeft:
			cells[i] = ":" + bar
		case AlignRight:
			cells[i] = bar + ":"
		case AlignCenter:
			cells[i] = ":" + bar + ":"
		default:
			cells[i] = bar
		}
	}
	sep := s.Separator()
	return sep + " " + strings.Join(cells, " "+sep+" ") + " " + sep
}

func escapeCell(cell string, s schema.ParsingSchema) string {
	sep := s.Separator()
	cell = strings.ReplaceAll(cell, sep, `\`+sep)
	if s.ConvertBRToNewline {
		cell = strings.ReplaceAll(cell, "\r\n", "<br>")
		cell = strings.ReplaceAll(cell, "\n", "<br>")
	}
	return cell
}

func heading(level int, text string) string {
	if level < 1 {
		level = 1
	}
	return strings.Repeat("#", level) + " " + text
}

func joinLines(parts []string) string {
	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, "\n") + "\n"
}
