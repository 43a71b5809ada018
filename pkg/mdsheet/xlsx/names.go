package xlsx

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	maxSheetNameLen   = 31
	fallbackSheetName = "Sheet"
)

var sheetNameReplacer = strings.NewReplacer(
	":", "_", `\`, "_", "/", "_", "?", "_", "*", "_", "[", "_", "]", "_",
)

// sanitizeSheetName maps name onto Excel's worksheet naming rules.
func sanitizeSheetName(name string) string {
	name = sheetNameReplacer.Replace(strings.TrimSpace(name))
	name = strings.Trim(name, "'")
	name = truncate(name, maxSheetNameLen)
	name = strings.Trim(name, "'")
	if strings.TrimSpace(name) == "" {
		return fallbackSheetName
	}
	return name
}

// sheetNames returns one valid, case-insensitively unique worksheet name per
// input name, preserving order.
func sheetNames(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, len(names))
	for i, raw := range names {
		base := sanitizeSheetName(raw)
		name := base
		for n := 2; seen[strings.ToLower(name)]; n++ {
			suffix := fmt.Sprintf(" (%d)", n)
			name = truncate(base, maxSheetNameLen-utf8.RuneCountInString(suffix)) + suffix
		}
		seen[strings.ToLower(name)] = true
		out[i] = name
	}
	return out
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
