package frontmatter

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Marshal writes m in the subset Parse understands. "title" is written first
// and the remaining keys follow in sorted order, so output is deterministic.
// Strings that would read back as another type are double-quoted.
func Marshal(m map[string]any) string {
	var b strings.Builder
	writeMap(&b, m, 0)
	return b.String()
}

func orderedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	hasTitle := false
	for k := range m {
		if k == "title" {
			hasTitle = true
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if hasTitle {
		keys = append([]string{"title"}, keys...)
	}
	return keys
}

func writeMap(b *strings.Builder, m map[string]any, indent int) {
	pad := strings.Repeat(" ", indent)
	for _, k := range orderedKeys(m) {
		b.WriteString(pad)
		b.WriteString(formatKey(k))
		b.WriteByte(':')
		writeValue(b, m[k], indent)
	}
}

// writeValue writes the part after "key:" or "-", including the line break.
func writeValue(b *strings.Builder, v any, indent int) {
	switch val := v.(type) {
	case nil:
		b.WriteByte('\n')
	case map[string]any:
		b.WriteByte('\n')
		writeMap(b, val, indent+2)
	case []any:
		b.WriteByte('\n')
		writeSeq(b, val, indent+2)
	case []string:
		items := make([]any, len(val))
		for i, s := range val {
			items[i] = s
		}
		b.WriteByte('\n')
		writeSeq(b, items, indent+2)
	case string:
		if strings.Contains(val, "\n") {
			writeLiteral(b, val, indent+2)
			return
		}
		b.WriteByte(' ')
		b.WriteString(formatString(val))
		b.WriteByte('\n')
	default:
		b.WriteByte(' ')
		b.WriteString(formatScalar(val))
		b.WriteByte('\n')
	}
}

func writeSeq(b *strings.Builder, items []any, indent int) {
	pad := strings.Repeat(" ", indent)
	for _, item := range items {
		b.WriteString(pad)
		b.WriteByte('-')
		writeValue(b, item, indent)
	}
}

// writeLiteral writes s as a "|" block. Trailing newlines and the leading
// indentation of the first line are not preserved by the reader.
func writeLiteral(b *strings.Builder, s string, indent int) {
	pad := strings.Repeat(" ", indent)
	b.WriteString(" |\n")
	for _, line := range strings.Split(s, "\n") {
		if line != "" {
			b.WriteString(pad)
			b.WriteString(line)
		}
		b.WriteByte('\n')
	}
}

func formatKey(k string) string {
	if k == "" || k != strings.TrimSpace(k) || strings.ContainsAny(k, ":#'\"") || strings.HasPrefix(k, "- ") || k == "-" {
		if strings.Contains(k, `"`) {
			return "'" + k + "'"
		}
		return `"` + k + `"`
	}
	return k
}

func formatString(s string) string {
	if needsQuote(s) {
		return `"` + s + `"`
	}
	return s
}

func needsQuote(s string) bool {
	if s == "" || s != strings.TrimSpace(s) {
		return true
	}
	if v, ok := parseScalar(s).(string); !ok || v != s {
		return true
	}
	switch {
	case strings.HasPrefix(s, "#"),
		strings.HasPrefix(s, "'"),
		strings.HasPrefix(s, `"`),
		isListItem(s),
		s == "|",
		strings.Contains(s, " #"),
		strings.Contains(s, "\t#"):
		return true
	}
	return false
}

func formatScalar(v any) string {
	switch val := v.(type) {
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprint(val)
	case float32:
		return formatFloat(float64(val))
	case float64:
		return formatFloat(val)
	case json.Number:
		return val.String()
	default:
		return formatString(fmt.Sprint(val))
	}
}

func formatFloat(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return `"` + strconv.FormatFloat(f, 'f', -1, 64) + `"`
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
