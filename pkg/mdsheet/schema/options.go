package schema

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	goerrors "github.com/goliatone/go-errors"
)

const schemaInvalidCode = "SCHEMA_INVALID"

// Option customizes a ParsingSchema during construction.
type Option func(*ParsingSchema)

// WithColumnSeparator sets the cell separator character.
func WithColumnSeparator(sep rune) Option {
	return func(s *ParsingSchema) { s.ColumnSeparator = sep }
}

// WithHeaderSeparatorChar sets the separator-row dash character.
func WithHeaderSeparatorChar(c rune) Option {
	return func(s *ParsingSchema) { s.HeaderSeparatorChar = c }
}

// WithStripWhitespace toggles cell trimming.
func WithStripWhitespace(enabled bool) Option {
	return func(s *ParsingSchema) { s.StripWhitespace = enabled }
}

// WithBRConversion toggles <br> to newline conversion.
func WithBRConversion(enabled bool) Option {
	return func(s *ParsingSchema) { s.ConvertBRToNewline = enabled }
}

// NewParsingSchema builds a validated ParsingSchema from the defaults.
func NewParsingSchema(opts ...Option) (ParsingSchema, error) {
	s := DefaultParsingSchema()
	for _, opt := range opts {
		opt(&s)
	}
	if err := s.Validate(); err != nil {
		return ParsingSchema{}, err
	}
	return s, nil
}

// Validate checks the separator characters.
func (s ParsingSchema) Validate() error {
	err := validation.ValidateStruct(&s,
		validation.Field(&s.ColumnSeparator, validation.Required, validation.By(func(value any) error {
			if r, _ := value.(rune); r == '\\' || r == '`' || r == ':' {
				return validation.NewError("schema.column_separator.reserved", "column separator cannot be an escape, code or alignment character")
			}
			return nil
		})),
		validation.Field(&s.HeaderSeparatorChar, validation.Required, validation.By(func(value any) error {
			if r, _ := value.(rune); r == s.ColumnSeparator || r == ':' {
				return validation.NewError("schema.header_separator_char.conflict", "header separator must differ from the column separator and ':'")
			}
			return nil
		})),
	)
	return wrapSchemaError(err)
}

// MultiOption customizes a MultiTableSchema during construction.
type MultiOption func(*MultiTableSchema)

// WithParsing replaces the embedded table schema.
func WithParsing(p ParsingSchema) MultiOption {
	return func(s *MultiTableSchema) { s.ParsingSchema = p }
}

// WithRootMarker sets an explicit root heading line. Empty restores auto-detection.
func WithRootMarker(marker string) MultiOption {
	return func(s *MultiTableSchema) { s.RootMarker = marker }
}

// WithSheetHeaderLevel sets the sheet heading depth.
func WithSheetHeaderLevel(level HeaderLevel) MultiOption {
	return func(s *MultiTableSchema) { s.SheetHeaderLevel = level }
}

// WithTableHeaderLevel sets the table heading depth.
func WithTableHeaderLevel(level HeaderLevel) MultiOption {
	return func(s *MultiTableSchema) { s.TableHeaderLevel = level }
}

// WithCaptureDescription toggles table description capture.
func WithCaptureDescription(enabled bool) MultiOption {
	return func(s *MultiTableSchema) { s.CaptureDescription = enabled }
}

// NewMultiTableSchema builds a validated MultiTableSchema from the defaults.
// Capturing descriptions with table headers disabled is a configuration error.
func NewMultiTableSchema(opts ...MultiOption) (MultiTableSchema, error) {
	s := DefaultMultiTableSchema()
	for _, opt := range opts {
		opt(&s)
	}
	if err := s.Validate(); err != nil {
		return MultiTableSchema{}, err
	}
	return s, nil
}

// MustMultiTableSchema is like NewMultiTableSchema but panics on error.
// It is intended for package-level defaults and tests.
func MustMultiTableSchema(opts ...MultiOption) MultiTableSchema {
	s, err := NewMultiTableSchema(opts...)
	if err != nil {
		panic(err)
	}
	return s
}

// Validate checks the structural options and the embedded table schema.
func (s MultiTableSchema) Validate() error {
	if err := s.ParsingSchema.Validate(); err != nil {
		return err
	}
	err := validation.ValidateStruct(&s,
		validation.Field(&s.RootMarker, validation.By(func(value any) error {
			marker, _ := value.(string)
			if marker != "" && strings.TrimSpace(marker) == "" {
				return validation.NewError("schema.root_marker.blank", "root marker cannot be blank")
			}
			return nil
		})),
		validation.Field(&s.SheetHeaderLevel, validation.By(func(value any) error {
			if level, _ := value.(HeaderLevel); level < LevelAuto {
				return validation.NewError("schema.sheet_header_level.invalid", "sheet header level must be auto or positive")
			}
			return nil
		})),
		validation.Field(&s.TableHeaderLevel, validation.By(func(value any) error {
			if level, _ := value.(HeaderLevel); level < LevelNone {
				return validation.NewError("schema.table_header_level.invalid", "table header level must be auto, none or positive")
			}
			return nil
		})),
		validation.Field(&s.CaptureDescription, validation.By(func(value any) error {
			if capture, _ := value.(bool); capture && s.TableHeaderLevel == LevelNone {
				return validation.NewError("schema.capture_description.requires_table_level", "capture_description requires table_header_level to be set")
			}
			return nil
		})),
	)
	return wrapSchemaError(err)
}

func wrapSchemaError(err error) error {
	if err == nil {
		return nil
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "invalid parsing schema").
		WithTextCode(schemaInvalidCode)
}
