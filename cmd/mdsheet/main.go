// Package main provides the CLI entry point for mdsheet.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ukaji3/mdsheet-go/internal/config"
	"github.com/ukaji3/mdsheet-go/internal/logging"
	"github.com/ukaji3/mdsheet-go/pkg/mdsheet"
)

var (
	configPath    string
	logLevel      string
	logJSON       bool
	rootMarker    string
	sheetLevel    string
	tableLevel    string
	noDescription bool
	noBR          bool
	separator     string

	cfg    *config.Config
	opts   mdsheet.Options
	logger zerolog.Logger
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "mdsheet",
		Short: "Parse and generate spreadsheets written as markdown",
		Long: `mdsheet reads workbooks written as structured markdown (a root heading,
sheets under it, GFM pipe tables in each sheet) and converts them to JSON,
YAML, HTML or Excel, and back.`,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "Config file (default: ./"+config.FileName+" or ~/"+config.FileName+")")
	pf.StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	pf.BoolVar(&logJSON, "log-json", false, "Log as JSON lines")
	pf.StringVar(&rootMarker, "root-marker", "", "Exact root heading line, e.g. \"# Tables\" (default: auto-detect)")
	pf.StringVar(&sheetLevel, "sheet-level", "", "Sheet heading level: auto or 1-6")
	pf.StringVar(&tableLevel, "table-level", "", "Table heading level: auto, none or 1-6")
	pf.BoolVar(&noDescription, "no-description", false, "Do not capture table descriptions")
	pf.BoolVar(&noBR, "no-br", false, "Keep <br> tags in cells instead of converting them to newlines")
	pf.StringVar(&separator, "separator", "", "Column separator character")

	rootCmd.AddCommand(
		newParseCmd(),
		newTablesCmd(),
		newFmtCmd(),
		newExportCmd(),
		newImportCmd(),
		newShowCmd(),
		newHTMLCmd(),
		newConfigCmd(),
	)
	return rootCmd
}

// setup loads the config file, applies flag overrides and builds the schema
// and logger shared by every command.
func setup(cmd *cobra.Command, args []string) error {
	loaded, err := config.Load(configPath)
	if err != nil {
		return err
	}
	cfg = loaded

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Log.Level = logLevel
	}
	if flags.Changed("log-json") {
		cfg.Log.JSON = logJSON
	}
	if flags.Changed("root-marker") {
		cfg.Schema.RootMarker = rootMarker
	}
	if flags.Changed("sheet-level") {
		cfg.Schema.SheetLevel = sheetLevel
	}
	if flags.Changed("table-level") {
		cfg.Schema.TableLevel = tableLevel
	}
	if flags.Changed("no-description") {
		cfg.Schema.CaptureDescription = !noDescription
	}
	if flags.Changed("no-br") {
		cfg.Schema.ConvertBR = !noBR
	}
	if flags.Changed("separator") {
		cfg.Schema.Separator = separator
	}

	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	logger = logging.New(cmd.ErrOrStderr(), level, cfg.Log.JSON)

	s, err := cfg.MultiTableSchema()
	if err != nil {
		return fmt.Errorf("invalid schema settings: %w", err)
	}
	opts = mdsheet.Options{Schema: s, Logger: logger}

	logger.Debug().Str("schema", s.String()).Msg("configuration loaded")
	return nil
}
