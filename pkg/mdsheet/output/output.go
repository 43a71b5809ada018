// Package output serializes parsed workbooks to JSON and YAML.
package output

import (
	"bytes"
	"encoding/json"

	"gopkg.in/yaml.v3"

	"github.com/ukaji3/mdsheet-go/pkg/mdsheet/models"
)

// ToJSON serializes a workbook to JSON.
func ToJSON(wb *models.Workbook, pretty bool) ([]byte, error) {
	return marshalJSON(wb, pretty)
}

// SheetToJSON serializes a single sheet to JSON.
func SheetToJSON(sheet *models.Sheet, pretty bool) ([]byte, error) {
	return marshalJSON(sheet, pretty)
}

// TablesToJSON serializes a flat list of tables to JSON. A nil slice is
// written as an empty array.
func TablesToJSON(tables []models.Table, pretty bool) ([]byte, error) {
	if tables == nil {
		tables = []models.Table{}
	}
	return marshalJSON(tables, pretty)
}

// ToYAML serializes a workbook to YAML. Keys follow the JSON field names.
func ToYAML(wb *models.Workbook) ([]byte, error) {
	// Round through JSON so the YAML document carries the same keys and
	// omits the same empty fields.
	data, err := json.Marshal(wb)
	if err != nil {
		return nil, err
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func marshalJSON(v any, pretty bool) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
