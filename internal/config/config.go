package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/Rana718/crudgen/internal/gencommon"
	"github.com/Rana718/crudgen/internal/metadata"
	"github.com/Rana718/crudgen/internal/naming"
	"github.com/Rana718/crudgen/internal/querygen"
	"github.com/Rana718/crudgen/internal/sproc"
)

// FileName is the config file init writes and the root command looks for.
const FileName = "crudgen.config.json"

type Config struct {
	Version          string   `json:"version" mapstructure:"version"`
	Input            string   `json:"input" mapstructure:"input"`
	InputFormat      string   `json:"input_format" mapstructure:"input_format"`
	OutDir           string   `json:"out_dir" mapstructure:"out_dir"`
	Author           string   `json:"author,omitempty" mapstructure:"author"`
	SoftDeleteColumn string   `json:"soft_delete_column" mapstructure:"soft_delete_column"`
	Namespace        string   `json:"namespace" mapstructure:"namespace"`
	UserIDParam      bool     `json:"user_id_param" mapstructure:"user_id_param"`
	DropIfExists     bool     `json:"drop_if_exists" mapstructure:"drop_if_exists"`
	LineEnding       string   `json:"line_ending" mapstructure:"line_ending"`
	DateFormat       string   `json:"date_format" mapstructure:"date_format"`
	Procedures       []string `json:"procedures,omitempty" mapstructure:"procedures"`
	Workers          int      `json:"workers,omitempty" mapstructure:"workers"`
	Dialect          string   `json:"dialect" mapstructure:"dialect"`
	Cache            bool     `json:"cache" mapstructure:"cache"`
	Sqlc             Sqlc     `json:"sqlc" mapstructure:"sqlc"`
}

// Sqlc holds the go generator options passed to the embedded sqlc.
type Sqlc struct {
	Package       string `json:"package" mapstructure:"package"`
	Out           string `json:"out" mapstructure:"out"`
	SqlPackage    string `json:"sql_package,omitempty" mapstructure:"sql_package"`
	EmitInterface bool   `json:"emit_interface,omitempty" mapstructure:"emit_interface"`
	EmitJsonTags  bool   `json:"emit_json_tags,omitempty" mapstructure:"emit_json_tags"`
}

// Default returns the configuration init writes.
func Default() *Config {
	return &Config{
		Version:          "1",
		Input:            "db/columns.yaml",
		InputFormat:      string(metadata.Auto),
		OutDir:           "crudgen_out",
		SoftDeleteColumn: "IsActive",
		Namespace:        "Generated",
		LineEnding:       "lf",
		DateFormat:       sproc.DefaultDateFormat,
		Dialect:          string(querygen.SQLServer),
		Cache:            true,
		Sqlc: Sqlc{
			Package: "crudgen",
			Out:     "crudgen_gen/",
		},
	}
}

func Load() (*Config, error) {
	var cfg Config

	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	def := Default()
	if cfg.Version == "" {
		cfg.Version = def.Version
	}
	if cfg.Input == "" {
		cfg.Input = def.Input
	}
	if cfg.InputFormat == "" {
		cfg.InputFormat = def.InputFormat
	}
	if cfg.OutDir == "" {
		cfg.OutDir = def.OutDir
	}
	if cfg.Namespace == "" {
		cfg.Namespace = def.Namespace
	}
	if cfg.LineEnding == "" {
		cfg.LineEnding = def.LineEnding
	}
	if cfg.DateFormat == "" {
		cfg.DateFormat = def.DateFormat
	}
	if cfg.Dialect == "" {
		cfg.Dialect = def.Dialect
	}
	if !viper.IsSet("cache") {
		cfg.Cache = def.Cache
	}
	if cfg.Sqlc.Package == "" {
		cfg.Sqlc.Package = def.Sqlc.Package
	}
	if cfg.Sqlc.Out == "" {
		cfg.Sqlc.Out = def.Sqlc.Out
	}
	if cfg.Author == "" {
		// AUTHOR from the environment; Unmarshal only sees keys the file sets.
		cfg.Author = viper.GetString("author")
	}
	if cfg.Author == "" {
		cfg.Author = AccountAuthor()
	}
	cfg.Author = naming.TitleCase(cfg.Author)

	return &cfg, nil
}

// AccountAuthor derives an author name from the logged-in account.
func AccountAuthor() string {
	for _, env := range []string{"USER", "USERNAME"} {
		if account := os.Getenv(env); account != "" {
			return naming.AuthorFromAccount(account)
		}
	}
	return ""
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.Input) == "" {
		return fmt.Errorf("input cannot be empty")
	}
	if c.OutDir == "" {
		return fmt.Errorf("out_dir cannot be empty")
	}
	if _, err := metadata.ParseFormat(c.InputFormat); err != nil {
		return err
	}
	if _, err := querygen.ParseDialect(c.Dialect); err != nil {
		return err
	}
	if _, err := sproc.ParseKinds(c.Procedures); err != nil {
		return err
	}
	switch strings.ToLower(c.LineEnding) {
	case "lf", "crlf":
	default:
		return fmt.Errorf("unsupported line_ending: %s. Supported: lf, crlf", c.LineEnding)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers cannot be negative")
	}
	return nil
}

func (c *Config) EnsureDirectories() error {
	dirs := []string{c.OutDir, filepath.Dir(c.Input)}

	for _, dir := range dirs {
		if dir == "" || dir == "." {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}

// Format returns the configured metadata format. Call Validate first.
func (c *Config) Format() metadata.Format {
	f, _ := metadata.ParseFormat(c.InputFormat)
	return f
}

// Kinds returns the procedure kinds to generate. Call Validate first.
func (c *Config) Kinds() []sproc.Kind {
	kinds, _ := sproc.ParseKinds(c.Procedures)
	return kinds
}

// GetDialect returns the query dialect. Call Validate first.
func (c *Config) GetDialect() querygen.Dialect {
	d, _ := querygen.ParseDialect(c.Dialect)
	return d
}

func (c *Config) CRLF() bool {
	return strings.EqualFold(c.LineEnding, "crlf")
}

// Settings is a stable rendering of every option that changes generated
// text. It feeds the output fingerprints. kinds is the selection actually
// being generated, which a --kinds flag may take from the config.
func (c *Config) Settings(kinds []sproc.Kind) string {
	names := make([]string, 0, len(kinds))
	for _, k := range kinds {
		names = append(names, string(k))
	}
	return strings.Join([]string{
		c.Namespace,
		fmt.Sprint(c.UserIDParam),
		fmt.Sprint(c.DropIfExists),
		c.DateFormat,
		c.LineEnding,
		c.Dialect,
		strings.Join(names, ","),
	}, "\x00")
}

// QueriesDir is where the query files are written.
func (c *Config) QueriesDir() string {
	return filepath.Join(c.OutDir, gencommon.QueriesDir)
}
