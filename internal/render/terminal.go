// Package render turns parsed workbooks into terminal previews and HTML.
package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/ukaji3/mdsheet-go/pkg/mdsheet/models"
)

var (
	workbookTitle = lipgloss.NewStyle().Bold(true).Underline(true)
	sheetTitle    = lipgloss.NewStyle().Bold(true).MarginTop(1)
	tableTitle    = lipgloss.NewStyle().Italic(true)
	muted         = lipgloss.NewStyle().Faint(true)
	headerCell    = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	bodyCell      = lipgloss.NewStyle().Padding(0, 1)
)

// Terminal renders every sheet of wb as bordered tables for a terminal.
func Terminal(wb models.Workbook) string {
	var b strings.Builder
	b.WriteString(workbookTitle.Render(wb.Name))
	b.WriteByte('\n')

	for _, sheet := range wb.Sheets {
		b.WriteString(sheetTitle.Render(sheet.Name))
		b.WriteByte('\n')

		if sheet.IsDoc() {
			if sheet.Content != "" {
				b.WriteString(muted.Render(strings.TrimSpace(sheet.Content)))
				b.WriteByte('\n')
			}
			continue
		}

		if len(sheet.Tables) == 0 {
			b.WriteString(muted.Render("(no tables)"))
			b.WriteByte('\n')
		}
		for _, tbl := range sheet.Tables {
			if tbl.Name != "" {
				b.WriteString(tableTitle.Render(tbl.Name))
				b.WriteByte('\n')
			}
			if tbl.Description != "" {
				b.WriteString(muted.Render(tbl.Description))
				b.WriteByte('\n')
			}
			b.WriteString(Table(tbl))
			b.WriteByte('\n')
		}
	}

	return b.String()
}

// Table renders one table with a normal border, honouring column alignment.
func Table(tbl models.Table) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			style := bodyCell
			if row == table.HeaderRow {
				style = headerCell
			}
			return style.Align(position(tbl, col))
		})

	if tbl.Headers != nil {
		t = t.Headers(tbl.Headers...)
	}
	return t.Rows(tbl.Rows...).String()
}

func position(tbl models.Table, col int) lipgloss.Position {
	if col < 0 || col >= len(tbl.Alignments) {
		return lipgloss.Left
	}
	switch tbl.Alignments[col] {
	case models.AlignRight:
		return lipgloss.Right
	case models.AlignCenter:
		return lipgloss.Center
	default:
		return lipgloss.Left
	}
}
