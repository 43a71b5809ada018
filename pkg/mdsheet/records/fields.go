package records

import (
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const tagName = "md"

// NormalizeHeader turns a header into a column key: "User Name" -> "user_name".
func NormalizeHeader(h string) string {
	return strings.ReplaceAll(strings.TrimSpace(cases.Lower(language.Und).String(h)), " ", "_")
}

type fieldSpec struct {
	index    []int
	key      string
	required bool
}

// fieldSpecs lists the decodable fields of struct type rt.
func fieldSpecs(rt reflect.Type) ([]fieldSpec, error) {
	if rt.Kind() != reflect.Struct {
		return nil, fmt.Errorf("records: %s is not a struct type", rt)
	}

	var specs []fieldSpec
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}

		name, opts, _ := strings.Cut(sf.Tag.Get(tagName), ",")
		if name == "-" {
			continue
		}
		if name == "" {
			name = snakeCase(sf.Name)
		}

		if !supported(sf.Type) {
			return nil, fmt.Errorf("records: field %s has unsupported type %s", sf.Name, sf.Type)
		}

		specs = append(specs, fieldSpec{
			index:    sf.Index,
			key:      NormalizeHeader(name),
			required: sf.Type.Kind() != reflect.Pointer && !hasOption(opts, "optional"),
		})
	}
	return specs, nil
}

func supported(t reflect.Type) bool {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.String, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

func hasOption(opts, want string) bool {
	for _, o := range strings.Split(opts, ",") {
		if strings.TrimSpace(o) == want {
			return true
		}
	}
	return false
}

// snakeCase converts a Go identifier: UserName -> user_name, HTTPCode -> http_code.
func snakeCase(name string) string {
	runes := []rune(name)
	var b strings.Builder
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 {
				prev := runes[i-1]
				nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
				if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
					b.WriteByte('_')
				}
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
