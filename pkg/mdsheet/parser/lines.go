package parser

import (
	"strings"
)

// line is one source line with its absolute 0-based number. Lines removed
// from a stream keep their neighbours' numbers intact.
type line struct {
	text string
	num  int
	// meta marks a workbook metadata comment: skipped as content, but it
	// still extends the workbook line range.
	meta bool
}

func normalizeNewlines(text string) string {
	if !strings.Contains(text, "\r") {
		return text
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n")
}

func toLines(text string, offset int) []line {
	raw := strings.Split(normalizeNewlines(text), "\n")
	out := make([]line, len(raw))
	for i, t := range raw {
		out[i] = line{text: t, num: offset + i}
	}
	return out
}

func joinText(lines []line) string {
	texts := make([]string, len(lines))
	for i, ln := range lines {
		texts[i] = ln.text
	}
	return strings.Join(texts, "\n")
}

// fenceState tracks fenced code blocks opened by ``` or ~~~.
type fenceState struct {
	open byte
}

// masked advances the state with a trimmed line and reports whether the line
// is a fence delimiter or lies inside a fenced block.
func (f *fenceState) masked(trimmed string) bool {
	if f.open != 0 {
		if isFence(trimmed, f.open) {
			f.open = 0
		}
		return true
	}
	for _, ch := range []byte{'`', '~'} {
		if isFence(trimmed, ch) {
			f.open = ch
			return true
		}
	}
	return false
}

func isFence(trimmed string, ch byte) bool {
	return len(trimmed) >= 3 && trimmed[0] == ch && trimmed[1] == ch && trimmed[2] == ch
}

// headingLevel parses an ATX heading. The '#' run must be followed by a
// space, a tab or the end of the line, so "#tag" is not a heading.
func headingLevel(trimmed string) (level int, text string, ok bool) {
	for level < len(trimmed) && trimmed[level] == '#' {
		level++
	}
	if level == 0 || level > 6 {
		return 0, "", false
	}
	if level < len(trimmed) && trimmed[level] != ' ' && trimmed[level] != '\t' {
		return 0, "", false
	}
	return level, strings.TrimSpace(trimmed[level:]), true
}

func intRef(n int) *int {
	return &n
}
