package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Metadata comment markers. Each comment sits alone on its line:
//
//	<!-- md-spreadsheet-table-metadata: {"column_widths": [120]} -->
const (
	TableMetadataMarker    = "md-spreadsheet-table-metadata"
	SheetMetadataMarker    = "md-spreadsheet-sheet-metadata"
	WorkbookMetadataMarker = "md-spreadsheet-workbook-metadata"
)

const (
	commentOpen  = "<!--"
	commentClose = "-->"
)

// FormatMetadataComment renders v as a single-line metadata comment with
// sorted keys. It returns "" if v cannot be encoded as JSON.
func FormatMetadataComment(marker string, v map[string]any) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return ""
	}
	payload, err := layoutJSON(buf.Bytes())
	if err != nil {
		return ""
	}
	return commentOpen + " " + marker + ": " + payload + " " + commentClose
}

// formatComment writes payload when it still decodes to v, so keys keep the
// order they were read in. Otherwise v is encoded afresh.
func formatComment(marker string, v map[string]any, payload string) string {
	if payload != "" {
		var read map[string]any
		if err := json.Unmarshal([]byte(payload), &read); err == nil && reflect.DeepEqual(read, v) {
			return commentOpen + " " + marker + ": " + payload + " " + commentClose
		}
	}
	return FormatMetadataComment(marker, v)
}

// ParseMetadataComment matches line against a metadata comment for marker.
//
// matched reports whether the line has the comment shape. meta is nil when
// the payload is not a JSON object; such lines are still comments and must
// not be read as content. payload is the object in canonical layout, keys in
// source order.
func ParseMetadataComment(line, marker string) (meta map[string]any, payload string, matched bool) {
	trimmed := strings.TrimSpace(line)
	if len(trimmed) < len(commentOpen)+len(commentClose) ||
		!strings.HasPrefix(trimmed, commentOpen) || !strings.HasSuffix(trimmed, commentClose) {
		return nil, "", false
	}

	inner := strings.TrimSpace(trimmed[len(commentOpen) : len(trimmed)-len(commentClose)])
	raw, ok := strings.CutPrefix(inner, marker+":")
	if !ok {
		return nil, "", false
	}

	data := []byte(strings.TrimSpace(raw))
	if err := json.Unmarshal(data, &meta); err != nil || meta == nil {
		return nil, "", true
	}
	payload, err := layoutJSON(data)
	if err != nil {
		return meta, "", true
	}
	return meta, payload, true
}

// HasMetadataComment reports whether text contains the opening of a metadata
// comment for marker anywhere.
func HasMetadataComment(text, marker string) bool {
	return strings.Contains(text, commentOpen+" "+marker+":")
}

// layoutJSON rewrites one JSON value with ", " and ": " separators. Key
// order and number literals are kept and HTML characters stay unescaped.
func layoutJSON(data []byte) (string, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var b strings.Builder
	if err := writeJSONValue(&b, dec); err != nil {
		return "", err
	}
	return b.String(), nil
}

func writeJSONValue(b *strings.Builder, dec *json.Decoder) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}

	switch v := tok.(type) {
	case json.Delim:
		closing := "}"
		if v == '[' {
			closing = "]"
		}
		b.WriteString(v.String())
		for i := 0; dec.More(); i++ {
			if i > 0 {
				b.WriteString(", ")
			}
			if v == '{' {
				key, err := dec.Token()
				if err != nil {
					return err
				}
				s, ok := key.(string)
				if !ok {
					return fmt.Errorf("unexpected object key %v", key)
				}
				writeJSONString(b, s)
				b.WriteString(": ")
			}
			if err := writeJSONValue(b, dec); err != nil {
				return err
			}
		}
		if _, err := dec.Token(); err != nil {
			return err
		}
		b.WriteString(closing)
	case string:
		writeJSONString(b, v)
	case json.Number:
		b.WriteString(v.String())
	case bool:
		b.WriteString(strconv.FormatBool(v))
	case nil:
		b.WriteString("null")
	}
	return nil
}

func writeJSONString(b *strings.Builder, s string) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s)
	b.Write(bytes.TrimSuffix(buf.Bytes(), []byte("\n")))
}
