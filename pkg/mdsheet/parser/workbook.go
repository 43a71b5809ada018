package parser

import (
	"fmt"
	"strings"

	"github.com/ukaji3/mdsheet-go/pkg/mdsheet/frontmatter"
	"github.com/ukaji3/mdsheet-go/pkg/mdsheet/models"
	"github.com/ukaji3/mdsheet-go/pkg/mdsheet/schema"
)

// Auto-detection falls back to these headings, in this order.
var fallbackRoots = []string{"# Tables", "# Workbook"}

// ParseWorkbook parses a whole document.
//
// The root is, in order: a frontmatter title, the configured root marker, the
// only level-1 heading, the level-1 heading above the workbook metadata
// comment, or a "# Tables" / "# Workbook" heading. When no root is found the
// workbook has no sheets and a nil StartLine.
func ParseWorkbook(text string, s schema.MultiTableSchema) models.Workbook {
	text = normalizeNewlines(text)

	var fm map[string]any
	offset := 0
	if block, body, bodyLine, ok := frontmatter.Extract(text); ok {
		if parsed := frontmatter.Parse(block); hasKey(parsed, "title") {
			fm = parsed
		}
		text, offset = body, bodyLine
	}

	stream, comment, commentLine := filterWorkbookComment(toLines(text, offset))
	meta := comment.values
	if fm != nil {
		if meta == nil {
			meta = make(map[string]any, 2)
		}
		meta[models.KeyHeaderType] = models.HeaderTypeFrontmatter
		meta[models.KeyFrontmatter] = fm
	}

	wb := models.Workbook{
		Name:        models.DefaultWorkbookName,
		Sheets:      []models.Sheet{},
		Metadata:    meta,
		CommentJSON: comment.payload,
	}

	root := findRoot(stream, s, fm, commentLine)
	if root.name != "" {
		wb.Name = root.name
	}
	if !root.found {
		return wb
	}

	lv := s.Resolve(root.level, s.AutoRoot())
	seg := segment(stream[root.next:], s.ParsingSchema, lv, s.CaptureDescription)

	wb.Sheets = seg.sheets
	wb.RootContent = seg.rootContent
	wb.StartLine = intRef(root.line)
	if seg.endLine >= 0 {
		wb.EndLine = intRef(seg.endLine)
	} else {
		wb.EndLine = intRef(root.line + 1)
	}
	return wb
}

// metadataComment is a decoded metadata comment and its canonical payload.
type metadataComment struct {
	values  map[string]any
	payload string
}

// filterWorkbookComment marks workbook metadata comments outside fenced
// blocks and parses the first valid one. commentLine is its line number or -1.
func filterWorkbookComment(lines []line) (out []line, meta metadataComment, commentLine int) {
	commentLine = -1
	var fence fenceState

	for i, ln := range lines {
		trimmed := strings.TrimSpace(ln.text)
		if fence.masked(trimmed) {
			continue
		}
		m, payload, ok := models.ParseMetadataComment(trimmed, models.WorkbookMetadataMarker)
		if !ok {
			continue
		}
		lines[i].meta = true
		if commentLine < 0 && m != nil {
			meta, commentLine = metadataComment{values: m, payload: payload}, ln.num
		}
	}
	return lines, meta, commentLine
}

// rootMatch describes the detected workbook root.
type rootMatch struct {
	found bool
	name  string
	level int
	// line is the absolute root line; next is the stream index after it.
	line int
	next int
}

func findRoot(stream []line, s schema.MultiTableSchema, fm map[string]any, commentLine int) rootMatch {
	if title := strings.TrimSpace(titleString(fm["title"])); title != "" {
		// Virtual root on the opening frontmatter delimiter.
		return rootMatch{found: true, name: title, level: 1, line: 0, next: 0}
	}

	if !s.AutoRoot() {
		marker := strings.TrimSpace(s.RootMarker)
		m := rootMatch{level: s.RootLevel()}
		// Only a heading marker names the workbook.
		if strings.HasPrefix(marker, "#") {
			m.name = strings.TrimSpace(strings.TrimLeft(marker, "#"))
		}
		if i := findLine(stream, func(trimmed string) bool { return trimmed == marker }); i >= 0 {
			m.found, m.line, m.next = true, stream[i].num, i+1
		}
		return m
	}

	h1 := headingIndexes(stream, 1)
	pick := -1
	switch {
	case len(h1) == 1:
		pick = h1[0]
	case len(h1) > 1 && commentLine >= 0:
		pick = h1[0]
		for _, i := range h1 {
			if stream[i].num < commentLine {
				pick = i
			}
		}
	default:
		pick = findLine(stream, func(trimmed string) bool {
			for _, fb := range fallbackRoots {
				if trimmed == fb {
					return true
				}
			}
			return false
		})
	}
	if pick < 0 {
		return rootMatch{}
	}

	_, name, _ := headingLevel(strings.TrimSpace(stream[pick].text))
	return rootMatch{found: true, name: name, level: 1, line: stream[pick].num, next: pick + 1}
}

// headingIndexes returns the stream indexes of named headings at level.
func headingIndexes(stream []line, level int) []int {
	var out []int
	var fence fenceState
	for i, ln := range stream {
		trimmed := strings.TrimSpace(ln.text)
		if ln.meta || fence.masked(trimmed) {
			continue
		}
		if lv, text, ok := headingLevel(trimmed); ok && lv == level && text != "" {
			out = append(out, i)
		}
	}
	return out
}

// findLine returns the index of the first unfenced line matching match, or -1.
func findLine(stream []line, match func(trimmed string) bool) int {
	var fence fenceState
	for i, ln := range stream {
		trimmed := strings.TrimSpace(ln.text)
		if ln.meta || fence.masked(trimmed) {
			continue
		}
		if match(trimmed) {
			return i
		}
	}
	return -1
}

type segmentation struct {
	sheets      []models.Sheet
	rootContent string
	// endLine is the exclusive end of the last processed line, or -1.
	endLine int
}

// segment splits the lines after the root into sheets. A heading shallower
// than the sheet level ends the workbook section.
func segment(lines []line, s schema.ParsingSchema, lv schema.Levels, capture bool) segmentation {
	seg := segmentation{sheets: []models.Sheet{}, endLine: -1}

	var (
		rootLines []line
		name      string
		sheetBody []line
		inSheet   bool
		fence     fenceState
	)

	flush := func() {
		if inSheet {
			seg.sheets = append(seg.sheets, parseSheetLines(sheetBody, name, s, lv, capture))
		}
	}
	add := func(ln line) {
		if inSheet {
			sheetBody = append(sheetBody, ln)
		} else {
			rootLines = append(rootLines, ln)
		}
		seg.endLine = ln.num + 1
	}

scan:
	for _, ln := range lines {
		if ln.meta {
			seg.endLine = ln.num + 1
			continue
		}

		trimmed := strings.TrimSpace(ln.text)
		if fence.masked(trimmed) {
			add(ln)
			continue
		}

		if level, text, ok := headingLevel(trimmed); ok {
			switch {
			case level < lv.Sheet:
				break scan
			case level == lv.Sheet && text != "":
				flush()
				name, sheetBody, inSheet = text, nil, true
				seg.endLine = ln.num + 1
				continue
			}
		}
		add(ln)
	}
	flush()

	seg.rootContent = strings.TrimSpace(joinText(rootLines))
	return seg
}

func hasKey(m map[string]any, key string) bool {
	_, ok := m[key]
	return ok
}

func titleString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}
