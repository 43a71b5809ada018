package frontmatter

import (
	"strconv"
	"strings"
)

// Parse reads a frontmatter block into a map.
//
// Scalars become string, bool, int or float64. Block sequences become []any
// and indented mappings map[string]any. Keys without a value read as nil.
// Lines that do not fit the subset are skipped.
func Parse(block string) map[string]any {
	if strings.TrimSpace(block) == "" {
		return map[string]any{}
	}
	r := &reader{lines: strings.Split(block, "\n")}
	m, _ := r.mapping(0, 0)
	return m
}

type reader struct {
	lines []string
}

// mapping reads key/value lines indented at least base, starting at start.
// It returns the map and the index of the first line it did not consume.
func (r *reader) mapping(start, base int) (map[string]any, int) {
	out := make(map[string]any)
	i := start

	for i < len(r.lines) {
		line := r.lines[i]
		trimmed := strings.TrimSpace(line)
		if isSkippable(trimmed) {
			i++
			continue
		}

		indent := indentOf(line)
		if indent < base {
			break
		}

		key, raw, ok := splitKey(trimmed)
		if !ok {
			i++
			continue
		}
		val := stripInlineComment(raw)

		switch val {
		case "":
			var v any
			v, i = r.nested(i, indent)
			out[key] = v
		case "|":
			out[key], i = r.literal(i+1, indent)
		default:
			out[key] = parseScalar(val)
			i++
		}
	}

	return out, i
}

// nested reads the value of an empty "key:" or "-" line at index i.
func (r *reader) nested(i, indent int) (any, int) {
	next := r.nextContent(i + 1)
	if next >= len(r.lines) {
		return nil, i + 1
	}

	nextIndent := indentOf(r.lines[next])
	nextTrimmed := strings.TrimSpace(r.lines[next])

	switch {
	case nextIndent > indent && isListItem(nextTrimmed):
		return r.sequence(next, nextIndent)
	case nextIndent > indent:
		return r.mapping(next, nextIndent)
	case nextIndent == indent && isListItem(nextTrimmed) && !isListItem(strings.TrimSpace(r.lines[i])):
		// "key:" followed by a sequence at the same indentation.
		return r.sequence(next, nextIndent)
	default:
		return nil, i + 1
	}
}

// sequence reads "- item" lines at exactly base indentation.
func (r *reader) sequence(start, base int) ([]any, int) {
	out := []any{}
	i := start

	for i < len(r.lines) {
		line := r.lines[i]
		trimmed := strings.TrimSpace(line)
		if isSkippable(trimmed) {
			i++
			continue
		}

		indent := indentOf(line)
		if indent < base || !isListItem(trimmed) {
			break
		}
		if indent > base {
			i++
			continue
		}

		val := stripInlineComment(strings.TrimSpace(trimmed[1:]))
		if val == "" {
			var v any
			v, i = r.nested(i, indent)
			out = append(out, v)
			continue
		}

		if val == "|" {
			var text string
			text, i = r.literal(i+1, indent)
			out = append(out, text)
			continue
		}

		out = append(out, parseScalar(val))
		i++
	}

	return out, i
}

// literal reads a "|" block whose lines are indented deeper than parent.
func (r *reader) literal(start, parent int) (string, int) {
	first := r.nextContent(start)
	if first >= len(r.lines) {
		return "", start
	}
	blockIndent := indentOf(r.lines[first])
	if blockIndent <= parent {
		return "", start
	}

	var buf []string
	i := start
	for i < len(r.lines) {
		line := r.lines[i]
		if strings.TrimSpace(line) != "" && indentOf(line) < blockIndent {
			break
		}
		buf = append(buf, line)
		i++
	}

	for len(buf) > 0 && strings.TrimSpace(buf[len(buf)-1]) == "" {
		buf = buf[:len(buf)-1]
	}

	pad := strings.Repeat(" ", blockIndent)
	for k, line := range buf {
		if strings.HasPrefix(line, pad) {
			buf[k] = line[blockIndent:]
		} else {
			buf[k] = strings.TrimLeft(line, " \t")
		}
	}

	return strings.Join(buf, "\n"), i
}

// nextContent returns the index of the next line that is neither blank nor a comment.
func (r *reader) nextContent(i int) int {
	for i < len(r.lines) && isSkippable(strings.TrimSpace(r.lines[i])) {
		i++
	}
	return i
}

func isSkippable(trimmed string) bool {
	return trimmed == "" || strings.HasPrefix(trimmed, "#")
}

func isListItem(trimmed string) bool {
	return trimmed == "-" || strings.HasPrefix(trimmed, "- ")
}

func indentOf(line string) int {
	return len(line) - len(strings.TrimLeft(line, " \t"))
}

// splitKey splits "key: value" into its parts. Quoted keys may contain colons.
func splitKey(trimmed string) (key, rest string, ok bool) {
	if q := trimmed[0]; q == '"' || q == '\'' {
		if end := strings.IndexByte(trimmed[1:], q); end >= 0 {
			after := strings.TrimLeft(trimmed[end+2:], " \t")
			if strings.HasPrefix(after, ":") {
				return trimmed[1 : end+1], strings.TrimSpace(after[1:]), true
			}
		}
	}

	key, rest, ok = strings.Cut(trimmed, ":")
	if !ok {
		return "", "", false
	}
	return strings.TrimSpace(key), strings.TrimSpace(rest), true
}

// stripInlineComment removes a trailing " # comment" outside quotes.
func stripInlineComment(val string) string {
	val = strings.TrimSpace(val)
	if val == "" || isQuoted(val) {
		return val
	}

	inSingle, inDouble := false, false
	for i := 0; i < len(val); i++ {
		switch c := val[i]; {
		case c == '\'' && !inDouble:
			inSingle = !inSingle
		case c == '"' && !inSingle:
			inDouble = !inDouble
		case c == '#' && !inSingle && !inDouble:
			if i == 0 || val[i-1] == ' ' || val[i-1] == '\t' {
				return strings.TrimSpace(val[:i])
			}
		}
	}
	return val
}

func isQuoted(val string) bool {
	if len(val) < 2 {
		return false
	}
	first, last := val[0], val[len(val)-1]
	return (first == '"' && last == '"') || (first == '\'' && last == '\'')
}

// parseScalar converts an inline value to bool, int, float64 or string.
func parseScalar(val string) any {
	if isQuoted(val) {
		return val[1 : len(val)-1]
	}

	switch strings.ToLower(val) {
	case "true":
		return true
	case "false":
		return false
	}

	if isInteger(val) {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}

	if strings.Contains(val, ".") && !strings.Contains(val, "_") {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}

	return val
}

func isInteger(val string) bool {
	digits := strings.TrimPrefix(val, "-")
	if digits == "" {
		return false
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return false
		}
	}
	return true
}
