// Package records converts parsed tables into typed Go structs.
//
// Columns are matched to struct fields by normalized header name. Per-row
// conversion problems never abort the call: they are collected into the
// Result and void all records, so a caller sees either every record or every
// problem.
package records

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	goerrors "github.com/goliatone/go-errors"

	"github.com/ukaji3/mdsheet-go/pkg/mdsheet/models"
)

const shapeInvalidCode = "RECORD_SHAPE_INVALID"

// Reason classifies a FieldError.
type Reason string

const (
	ReasonInvalidInt   Reason = "invalid_int"
	ReasonInvalidFloat Reason = "invalid_float"
	ReasonInvalidBool  Reason = "invalid_bool"
	ReasonEmptyValue   Reason = "empty_value"
	ReasonMissingField Reason = "missing_field"
	ReasonNoHeaders    Reason = "no_headers"
)

// FieldError is one conversion problem.
type FieldError struct {
	// Row is the 1-based data row, or 0 for table-level problems.
	Row int `json:"row"`
	// Column is the normalized column name. Empty for row-level problems.
	Column string `json:"column,omitempty"`
	// Reason is a stable machine-readable code.
	Reason Reason `json:"reason"`
	// Message describes the problem.
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	switch {
	case e.Row == 0:
		return e.Message
	case e.Column == "":
		return fmt.Sprintf("Row %d: %s", e.Row, e.Message)
	default:
		return fmt.Sprintf("Row %d: Column '%s': %s", e.Row, e.Column, e.Message)
	}
}

// ValidationError aggregates every FieldError of a conversion.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	lines := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		lines[i] = fe.Error()
	}
	return fmt.Sprintf("validation failed with %d errors:\n%s", len(e.Errors), strings.Join(lines, "\n"))
}

// Result holds either converted records or the problems that prevented them.
type Result[T any] struct {
	Records []T
	Errors  []FieldError
}

// OK reports whether the conversion produced no errors.
func (r Result[T]) OK() bool {
	return len(r.Errors) == 0
}

// Err returns nil or a *ValidationError listing every problem.
func (r Result[T]) Err() error {
	if r.OK() {
		return nil
	}
	return &ValidationError{Errors: r.Errors}
}

// Decode converts the rows of t into values of struct type T.
//
// A field's column name is its `md:"name"` tag or the snake_case form of the
// Go field name; headers are lower-cased with spaces turned into underscores.
// Pointer fields and fields tagged `md:",optional"` may be missing from the
// table. Decode returns an error only when T itself cannot be decoded into.
func Decode[T any](t models.Table) (Result[T], error) {
	rt := reflect.TypeOf((*T)(nil)).Elem()
	specs, err := fieldSpecs(rt)
	if err != nil {
		return Result[T]{}, goerrors.Wrap(err, goerrors.CategoryValidation, "invalid record shape").
			WithTextCode(shapeInvalidCode)
	}

	if t.Headers == nil {
		return Result[T]{Errors: []FieldError{{
			Reason:  ReasonNoHeaders,
			Message: "table has no headers",
		}}}, nil
	}

	columns := make(map[string]int, len(t.Headers))
	for i, h := range t.Headers {
		key := NormalizeHeader(h)
		if _, dup := columns[key]; !dup {
			columns[key] = i
		}
	}

	var (
		out  = make([]T, 0, len(t.Rows))
		errs []FieldError
	)
	for r, row := range t.Rows {
		rec := reflect.New(rt).Elem()
		var rowErrs, missing []FieldError

		for _, f := range specs {
			col, ok := columns[f.key]
			if !ok {
				if f.required {
					missing = append(missing, FieldError{
						Row:     r + 1,
						Reason:  ReasonMissingField,
						Message: fmt.Sprintf("missing required field '%s'", f.key),
					})
				}
				continue
			}

			cell := ""
			if col < len(row) {
				cell = row[col]
			}
			if reason, msg := assign(rec.FieldByIndex(f.index), cell, !f.required); reason != "" {
				rowErrs = append(rowErrs, FieldError{Row: r + 1, Column: f.key, Reason: reason, Message: msg})
			}
		}

		// Missing fields are reported only for rows whose cells all converted.
		if len(rowErrs) == 0 {
			rowErrs = missing
		}
		if len(rowErrs) > 0 {
			errs = append(errs, rowErrs...)
			continue
		}
		out = append(out, rec.Interface().(T))
	}

	if len(errs) > 0 {
		return Result[T]{Errors: errs}, nil
	}
	return Result[T]{Records: out}, nil
}

// assign converts cell into field. It returns a reason and message on failure.
func assign(field reflect.Value, cell string, optional bool) (Reason, string) {
	if field.Kind() == reflect.Pointer {
		if strings.TrimSpace(cell) == "" {
			field.Set(reflect.Zero(field.Type()))
			return "", ""
		}
		ptr := reflect.New(field.Type().Elem())
		if reason, msg := assign(ptr.Elem(), cell, false); reason != "" {
			return reason, msg
		}
		field.Set(ptr)
		return "", ""
	}

	trimmed := strings.TrimSpace(cell)

	switch field.Kind() {
	case reflect.String:
		field.SetString(cell)

	case reflect.Bool:
		b, ok := parseBool(cell)
		if !ok {
			return ReasonInvalidBool, fmt.Sprintf("invalid boolean value: '%s'", cell)
		}
		field.SetBool(b)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if trimmed == "" {
			return emptyValue(optional, "int")
		}
		n, err := strconv.ParseInt(trimmed, 10, field.Type().Bits())
		if err != nil {
			return ReasonInvalidInt, fmt.Sprintf("invalid integer value: '%s'", cell)
		}
		field.SetInt(n)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if trimmed == "" {
			return emptyValue(optional, "int")
		}
		n, err := strconv.ParseUint(trimmed, 10, field.Type().Bits())
		if err != nil {
			return ReasonInvalidInt, fmt.Sprintf("invalid integer value: '%s'", cell)
		}
		field.SetUint(n)

	case reflect.Float32, reflect.Float64:
		if trimmed == "" {
			return emptyValue(optional, "float")
		}
		f, err := strconv.ParseFloat(trimmed, field.Type().Bits())
		if err != nil {
			return ReasonInvalidFloat, fmt.Sprintf("invalid float value: '%s'", cell)
		}
		field.SetFloat(f)
	}

	return "", ""
}

func emptyValue(optional bool, kind string) (Reason, string) {
	if optional {
		return "", ""
	}
	return ReasonEmptyValue, fmt.Sprintf("empty value for %s field", kind)
}

// parseBool accepts the usual spellings plus GFM task list markers.
func parseBool(cell string) (value, ok bool) {
	switch strings.ToLower(strings.TrimSpace(cell)) {
	case "true", "yes", "1", "on", "[x]":
		return true, true
	case "false", "no", "0", "off", "", "[ ]":
		return false, true
	default:
		return false, false
	}
}
