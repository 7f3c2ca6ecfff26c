package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/sqlc-dev/sqlc/pkg/cli"
	"gopkg.in/yaml.v3"

	"github.com/Rana718/crudgen/internal/config"
	"github.com/Rana718/crudgen/internal/metadata"
	"github.com/Rana718/crudgen/internal/schema"
)

var sqlcCmd = &cobra.Command{
	Use:   "sqlc [table...]",
	Short: "Generate queries and compile them into Go with sqlc",
	Long: `
Generate the named queries for each table, then run the embedded sqlc
against them to produce type-safe Go.

Requirements:
- dialect is postgresql, mysql or sqlite
- input is a CREATE TABLE script (sqlc reads it as the schema)

This command will:
1. Write <out_dir>/queries/<table>.sql
2. Generate a temporary sqlc config from crudgen.config.json
3. Run sqlc generate and clean up the temporary file

Naming tables limits sqlc to their query files.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}
		sqlcCfg, err := buildSQLCConfig(cfg)
		if err != nil {
			return err
		}

		tables, err := runGeneration(cmd, args, outputs{queries: true})
		if err != nil {
			return err
		}
		if len(args) > 0 {
			sqlcCfg.SQL[0].Queries = queryFiles(cfg, tables)
		}
		if err := runSQLCGenerate(sqlcCfg); err != nil {
			return fmt.Errorf("failed to run sqlc generate: %w", err)
		}

		fmt.Println("🎉 sqlc types generated successfully!")
		return nil
	},
}

type sqlcConfig struct {
	Version string    `yaml:"version"`
	SQL     []sqlcSQL `yaml:"sql"`
}

type sqlcSQL struct {
	Engine  string     `yaml:"engine"`
	Queries []string   `yaml:"queries"`
	Schema  string     `yaml:"schema"`
	Gen     sqlcGenCfg `yaml:"gen"`
}

type sqlcGenCfg struct {
	Go sqlcGoCfg `yaml:"go"`
}

type sqlcGoCfg struct {
	Package       string `yaml:"package"`
	Out           string `yaml:"out"`
	SqlPackage    string `yaml:"sql_package,omitempty"`
	EmitInterface bool   `yaml:"emit_interface,omitempty"`
	EmitJsonTags  bool   `yaml:"emit_json_tags,omitempty"`
}

// buildSQLCConfig checks that sqlc can compile this project and returns the
// config it will be run with.
func buildSQLCConfig(cfg *config.Config) (*sqlcConfig, error) {
	dialect := cfg.GetDialect()
	engine, ok := dialect.SqlcEngine()
	if !ok {
		return nil, fmt.Errorf("sqlc does not support the %s dialect; use the procs and classes commands instead", dialect)
	}

	format := cfg.Format()
	if format == metadata.Auto {
		detected, err := metadata.DetectFormat(cfg.Input)
		if err != nil {
			return nil, err
		}
		format = detected
	}
	if format != metadata.SQL {
		return nil, fmt.Errorf("sqlc needs a CREATE TABLE script as input, got %s (%s)", format, cfg.Input)
	}

	return &sqlcConfig{
		Version: "2",
		SQL: []sqlcSQL{
			{
				Engine:  engine,
				Queries: []string{cfg.QueriesDir()},
				Schema:  cfg.Input,
				Gen: sqlcGenCfg{
					Go: sqlcGoCfg{
						Package:       cfg.Sqlc.Package,
						Out:           cfg.Sqlc.Out,
						SqlPackage:    cfg.Sqlc.SqlPackage,
						EmitInterface: cfg.Sqlc.EmitInterface,
						EmitJsonTags:  cfg.Sqlc.EmitJsonTags,
					},
				},
			},
		},
	}, nil
}

// queryFiles limits sqlc to the query files of the given tables, leaving out
// files that earlier runs wrote for other tables.
func queryFiles(cfg *config.Config, tables []*schema.Table) []string {
	files := make([]string, len(tables))
	for i, t := range tables {
		files[i] = filepath.Join(cfg.QueriesDir(), t.Name+".sql")
	}
	return files
}

func runSQLCGenerate(sqlcCfg *sqlcConfig) error {
	tmpFile := ".crudgen_sqlc_temp.yaml"
	defer os.Remove(tmpFile)

	data, err := yaml.Marshal(sqlcCfg)
	if err != nil {
		return fmt.Errorf("failed to marshal sqlc config: %w", err)
	}

	if err := os.WriteFile(tmpFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write temporary sqlc config: %w", err)
	}

	exitCode := cli.Run([]string{"generate", "-f", tmpFile})
	if exitCode != 0 {
		return fmt.Errorf("sqlc generate failed with exit code %d", exitCode)
	}

	return nil
}

func init() {
	rootCmd.AddCommand(sqlcCmd)
}
