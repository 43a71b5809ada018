// Package frontmatter reads and writes the "---"-delimited YAML block at the
// start of a markdown document.
//
// Only a safe subset of YAML is understood: scalars, block lists, nested maps,
// literal "|" blocks and comments. Anything else is skipped rather than
// reported, so reading never fails.
package frontmatter

import "strings"

// Delimiter opens and closes a frontmatter block.
const Delimiter = "---"

// Extract splits a leading frontmatter block from text.
//
// block is the YAML between the delimiters (possibly empty), body is the
// remaining text and bodyLine is the number of lines consumed, so that line
// numbers inside body can be mapped back to text. ok is false when text does
// not open with a delimiter line or the closing delimiter is missing.
func Extract(text string) (block string, body string, bodyLine int, ok bool) {
	if !strings.HasPrefix(text, Delimiter+"\n") {
		return "", text, 0, false
	}

	lines := strings.Split(text, "\n")
	for i := 1; i < len(lines); i++ {
		if lines[i] != Delimiter {
			continue
		}
		block = strings.Join(lines[1:i], "\n")
		body = strings.Join(lines[i+1:], "\n")
		return block, body, i + 1, true
	}

	return "", text, 0, false
}

// Render wraps a YAML block in delimiter lines. The result ends with a newline.
func Render(block string) string {
	var b strings.Builder
	b.WriteString(Delimiter)
	b.WriteByte('\n')
	if block != "" {
		b.WriteString(block)
		if !strings.HasSuffix(block, "\n") {
			b.WriteByte('\n')
		}
	}
	b.WriteString(Delimiter)
	b.WriteByte('\n')
	return b.String()
}
