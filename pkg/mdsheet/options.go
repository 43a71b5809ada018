// Package mdsheet parses and generates workbooks stored as structured
// markdown: a root heading, sheets under it, and GFM pipe tables in each
// sheet. It re-exports the parser entry points and adds file helpers that
// also read and write Excel workbooks.
package mdsheet

import (
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ukaji3/mdsheet-go/pkg/mdsheet/schema"
)

// Format identifies a workbook file format.
type Format string

const (
	// FormatMarkdown is structured markdown (.md, .markdown).
	FormatMarkdown Format = "markdown"
	// FormatXLSX is an Excel workbook (.xlsx, .xlsm).
	FormatXLSX Format = "xlsx"
)

// DetectFormat picks a format from the file extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return FormatMarkdown, nil
	case ".xlsx", ".xlsm":
		return FormatXLSX, nil
	default:
		return "", ErrInvalidFormat
	}
}

// Options configures the file helpers.
type Options struct {
	// Schema controls markdown parsing and generation.
	Schema schema.MultiTableSchema
	// Logger receives per-file summaries. The zero value discards them.
	Logger zerolog.Logger
}

// DefaultOptions returns options with the default schema and no logging.
func DefaultOptions() Options {
	return Options{
		Schema: schema.DefaultMultiTableSchema(),
		Logger: zerolog.Nop(),
	}
}
