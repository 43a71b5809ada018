package mdsheet

import (
	"errors"
	"fmt"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrInvalidFormat indicates the file extension names no supported format.
var ErrInvalidFormat = errors.New("unsupported file format")

// ConversionError reports a failure while reading or writing a file.
type ConversionError struct {
	Path      string
	Component string // "read", "write", "xlsx"
	Err       error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("conversion error for %q (%s): %v", e.Path, e.Component, e.Err)
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}

// NewConversionError creates a new ConversionError.
func NewConversionError(path, component string, err error) *ConversionError {
	return &ConversionError{
		Path:      path,
		Component: component,
		Err:       err,
	}
}
