// Package config loads CLI settings from .mdsheet.yaml and MDSHEET_*
// environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/ukaji3/mdsheet-go/pkg/mdsheet/schema"
)

// FileName is the config file looked up in the working and home directories.
const FileName = ".mdsheet.yaml"

// EnvPrefix prefixes environment overrides, e.g. MDSHEET_SCHEMA_ROOT_MARKER.
const EnvPrefix = "MDSHEET"

// Config holds the complete CLI configuration.
type Config struct {
	Schema SchemaConfig `mapstructure:"schema" yaml:"schema"`
	Log    LogConfig    `mapstructure:"log" yaml:"log"`
	Output OutputConfig `mapstructure:"output" yaml:"output"`
}

// SchemaConfig mirrors schema.MultiTableSchema with text-friendly values.
type SchemaConfig struct {
	RootMarker         string `mapstructure:"root_marker" yaml:"root_marker"`
	SheetLevel         string `mapstructure:"sheet_level" yaml:"sheet_level"` // auto or 1-6
	TableLevel         string `mapstructure:"table_level" yaml:"table_level"` // auto, none or 1-6
	CaptureDescription bool   `mapstructure:"capture_description" yaml:"capture_description"`
	Separator          string `mapstructure:"separator" yaml:"separator"`
	StripWhitespace    bool   `mapstructure:"strip_whitespace" yaml:"strip_whitespace"`
	ConvertBR          bool   `mapstructure:"convert_br" yaml:"convert_br"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
	JSON  bool   `mapstructure:"json" yaml:"json"`
}

// OutputConfig holds defaults for serialized output.
type OutputConfig struct {
	Format string `mapstructure:"format" yaml:"format"` // json or yaml
	Pretty bool   `mapstructure:"pretty" yaml:"pretty"`
}

// DefaultConfig returns a configuration matching the library defaults.
func DefaultConfig() *Config {
	ps := schema.DefaultParsingSchema()
	ms := schema.DefaultMultiTableSchema()
	return &Config{
		Schema: SchemaConfig{
			RootMarker:         ms.RootMarker,
			SheetLevel:         ms.SheetHeaderLevel.String(),
			TableLevel:         ms.TableHeaderLevel.String(),
			CaptureDescription: ms.CaptureDescription,
			Separator:          string(ps.ColumnSeparator),
			StripWhitespace:    ps.StripWhitespace,
			ConvertBR:          ps.ConvertBRToNewline,
		},
		Log: LogConfig{
			Level: "info",
		},
		Output: OutputConfig{
			Format: "json",
		},
	}
}

// Load reads configuration from path, or from ./.mdsheet.yaml then
// $HOME/.mdsheet.yaml when path is empty. A missing file in the search path
// leaves the defaults in place; a missing explicit path is an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(strings.TrimSuffix(FileName, filepath.Ext(FileName)))
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

// Write saves cfg as YAML, creating parent directories as needed.
func Write(cfg *Config, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// MultiTableSchema converts the schema section into a validated schema.
func (c *Config) MultiTableSchema() (schema.MultiTableSchema, error) {
	sheet, err := schema.ParseHeaderLevel(c.Schema.SheetLevel)
	if err != nil {
		return schema.MultiTableSchema{}, fmt.Errorf("schema.sheet_level: %w", err)
	}
	table, err := schema.ParseHeaderLevel(c.Schema.TableLevel)
	if err != nil {
		return schema.MultiTableSchema{}, fmt.Errorf("schema.table_level: %w", err)
	}

	popts := []schema.Option{
		schema.WithStripWhitespace(c.Schema.StripWhitespace),
		schema.WithBRConversion(c.Schema.ConvertBR),
	}
	if c.Schema.Separator != "" {
		sep, size := utf8.DecodeRuneInString(c.Schema.Separator)
		if size != len(c.Schema.Separator) {
			return schema.MultiTableSchema{}, fmt.Errorf("schema.separator: want a single character, got %q", c.Schema.Separator)
		}
		popts = append(popts, schema.WithColumnSeparator(sep))
	}
	ps, err := schema.NewParsingSchema(popts...)
	if err != nil {
		return schema.MultiTableSchema{}, err
	}

	return schema.NewMultiTableSchema(
		schema.WithParsing(ps),
		schema.WithRootMarker(c.Schema.RootMarker),
		schema.WithSheetHeaderLevel(sheet),
		schema.WithTableHeaderLevel(table),
		schema.WithCaptureDescription(c.Schema.CaptureDescription),
	)
}

func setDefaults(v *viper.Viper) {
	defaults := DefaultConfig()
	v.SetDefault("schema.root_marker", defaults.Schema.RootMarker)
	v.SetDefault("schema.sheet_level", defaults.Schema.SheetLevel)
	v.SetDefault("schema.table_level", defaults.Schema.TableLevel)
	v.SetDefault("schema.capture_description", defaults.Schema.CaptureDescription)
	v.SetDefault("schema.separator", defaults.Schema.Separator)
	v.SetDefault("schema.strip_whitespace", defaults.Schema.StripWhitespace)
	v.SetDefault("schema.convert_br", defaults.Schema.ConvertBR)
	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("log.json", defaults.Log.JSON)
	v.SetDefault("output.format", defaults.Output.Format)
	v.SetDefault("output.pretty", defaults.Output.Pretty)
}
