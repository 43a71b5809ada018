package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ukaji3/mdsheet-go/internal/config"
	"github.com/ukaji3/mdsheet-go/internal/render"
	"github.com/ukaji3/mdsheet-go/pkg/mdsheet"
	"github.com/ukaji3/mdsheet-go/pkg/mdsheet/models"
	"github.com/ukaji3/mdsheet-go/pkg/mdsheet/output"
)

func newParseCmd() *cobra.Command {
	var (
		outputPath string
		format     string
		pretty     bool
		sheetsDir  string
	)

	cmd := &cobra.Command{
		Use:   "parse FILE",
		Short: "Parse a workbook and print it as JSON or YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("format") {
				format = cfg.Output.Format
			}
			if !cmd.Flags().Changed("pretty") {
				pretty = cfg.Output.Pretty
			}

			wb, err := mdsheet.ParseFile(args[0], opts)
			if err != nil {
				return err
			}

			var data []byte
			switch strings.ToLower(format) {
			case "json":
				data, err = output.ToJSON(wb, pretty)
			case "yaml", "yml":
				data, err = output.ToYAML(wb)
			default:
				return fmt.Errorf("invalid format: %s (must be json or yaml)", format)
			}
			if err != nil {
				return fmt.Errorf("serialization failed: %w", err)
			}

			if outputPath != "" || sheetsDir == "" {
				if err := writeOutput(cmd, outputPath, data); err != nil {
					return err
				}
			}
			if sheetsDir != "" {
				if err := writeSheetFiles(wb, sheetsDir, pretty); err != nil {
					return fmt.Errorf("failed to write sheet files: %w", err)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	cmd.Flags().StringVar(&format, "format", "json", "Output format: json or yaml")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	cmd.Flags().StringVar(&sheetsDir, "sheets-dir", "", "Directory for per-sheet JSON files")
	return cmd
}

func newTablesCmd() *cobra.Command {
	var (
		outputPath string
		pretty     bool
	)

	cmd := &cobra.Command{
		Use:   "tables FILE",
		Short: "List every table in a file as JSON, ignoring workbook structure",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("pretty") {
				pretty = cfg.Output.Pretty
			}

			tables, err := scanFile(args[0])
			if err != nil {
				return err
			}
			logger.Debug().Str("path", args[0]).Int("tables", len(tables)).Msg("scanned tables")

			data, err := output.TablesToJSON(tables, pretty)
			if err != nil {
				return fmt.Errorf("serialization failed: %w", err)
			}
			return writeOutput(cmd, outputPath, data)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	return cmd
}

// scanFile finds the tables of a markdown file anywhere in the text, or of
// every worksheet of an Excel file.
func scanFile(path string) ([]models.Table, error) {
	format, err := mdsheet.DetectFormat(path)
	if err != nil {
		return nil, mdsheet.NewConversionError(path, "read", err)
	}
	if format == mdsheet.FormatXLSX {
		wb, err := mdsheet.ParseFile(path, opts)
		if err != nil {
			return nil, err
		}
		return wb.Tables(), nil
	}

	text, err := readText(path)
	if err != nil {
		return nil, err
	}
	return mdsheet.ScanTables(text, opts.Schema), nil
}

func newFmtCmd() *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:   "fmt FILE",
		Short: "Rewrite a markdown workbook in canonical form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			text, err := readText(path)
			if err != nil {
				return err
			}

			wb := mdsheet.ParseWorkbook(text, opts.Schema)
			if wb.StartLine == nil {
				logger.Warn().Str("path", path).Msg("no workbook root found, nothing to format")
			}
			formatted := wb.ToMarkdown(opts.Schema)

			if !write {
				_, err := fmt.Fprint(cmd.OutOrStdout(), formatted)
				return err
			}
			if formatted == text {
				logger.Debug().Str("path", path).Msg("already formatted")
				return nil
			}
			return writeOutput(cmd, path, []byte(formatted))
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, "Write the result back to the file")
	return cmd
}

func newExportCmd() *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "export FILE.md",
		Short: "Convert a markdown workbook to an Excel file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := args[0]
			out := outputPath
			if out == "" {
				out = strings.TrimSuffix(in, filepath.Ext(in)) + ".xlsx"
			}
			if format, err := mdsheet.DetectFormat(out); err != nil || format != mdsheet.FormatXLSX {
				return fmt.Errorf("output must be an .xlsx file: %s", out)
			}

			wb, err := mdsheet.ParseFile(in, opts)
			if err != nil {
				return err
			}
			if len(wb.Sheets) == 0 {
				logger.Warn().Str("path", in).Msg("workbook has no sheets")
			}
			return mdsheet.WriteFile(wb, out, opts)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output .xlsx path (default: input name with .xlsx)")
	return cmd
}

func newImportCmd() *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "import FILE.xlsx",
		Short: "Convert an Excel file to a markdown workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			wb, err := mdsheet.ParseFile(args[0], opts)
			if err != nil {
				return err
			}
			if outputPath != "" {
				return mdsheet.WriteFile(wb, outputPath, opts)
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), wb.ToMarkdown(opts.Schema))
			return err
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	return cmd
}

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show FILE",
		Short: "Preview a workbook as tables in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			wb, err := mdsheet.ParseFile(args[0], opts)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), render.Terminal(*wb))
			return err
		},
	}
}

func newHTMLCmd() *cobra.Command {
	var (
		outputPath string
		fragment   bool
	)

	cmd := &cobra.Command{
		Use:   "html FILE",
		Short: "Render a workbook as an HTML document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			wb, err := mdsheet.ParseFile(args[0], opts)
			if err != nil {
				return err
			}
			body, err := render.HTML(*wb, opts.Schema)
			if err != nil {
				return err
			}
			if !fragment {
				body = render.Document(wb.Name, body)
			}
			return writeOutput(cmd, outputPath, body)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	cmd.Flags().BoolVar(&fragment, "fragment", false, "Emit the HTML body only")
	return cmd
}

func newConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the mdsheet configuration file",
		// Skips config loading so init works next to a broken file.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init [PATH]",
		Short: "Write a configuration file with the default settings",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.FileName
			if len(args) == 1 {
				path = args[0]
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			if err := config.Write(config.DefaultConfig(), path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")

	configCmd.AddCommand(initCmd)
	return configCmd
}

func readText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", mdsheet.NewConversionError(path, "read", mdsheet.ErrFileNotFound)
	}
	if err != nil {
		return "", mdsheet.NewConversionError(path, "read", err)
	}
	return string(data), nil
}

// writeOutput writes data to path, or to stdout with a trailing newline when
// path is empty.
func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "" {
		out := cmd.OutOrStdout()
		if _, err := out.Write(data); err != nil {
			return err
		}
		if len(data) > 0 && data[len(data)-1] != '\n' {
			_, err := fmt.Fprintln(out)
			return err
		}
		return nil
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	logger.Info().Str("path", path).Int("bytes", len(data)).Msg("wrote output")
	return nil
}

var fileNameReplacer = strings.NewReplacer("/", "_", `\`, "_", ":", "_")

func writeSheetFiles(wb *models.Workbook, dir string, pretty bool) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	for i := range wb.Sheets {
		sheet := &wb.Sheets[i]
		data, err := output.SheetToJSON(sheet, pretty)
		if err != nil {
			return err
		}

		filename := filepath.Join(dir, fileNameReplacer.Replace(sheet.Name)+".json")
		if err := os.WriteFile(filename, data, 0644); err != nil {
			return err
		}
		logger.Info().Str("path", filename).Msg("wrote sheet")
	}
	return nil
}
