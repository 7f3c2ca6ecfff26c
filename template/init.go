package template

import (
	"encoding/json"
	"fmt"

	"github.com/Rana718/crudgen/internal/config"
	"github.com/Rana718/crudgen/internal/metadata"
	"github.com/Rana718/crudgen/internal/querygen"
	"github.com/Rana718/crudgen/internal/schema"
)

type ProjectTemplate struct {
	Dialect querygen.Dialect
}

type dbConfig struct {
	primaryKey  string
	guidType    string
	moneyType   string
	dateType    string
	dateDefault string
	boolType    string
	boolDefault string
}

// SQL Server projects start from a column manifest; the other dialects start
// from DDL so the sqlc command has a schema to read.
var dbConfigs = map[querygen.Dialect]dbConfig{
	querygen.SQLite: {
		primaryKey:  "INTEGER PRIMARY KEY AUTOINCREMENT",
		guidType:    "TEXT",
		moneyType:   "NUMERIC(18,2)",
		dateType:    "DATETIME",
		dateDefault: "CURRENT_TIMESTAMP",
		boolType:    "BOOLEAN",
		boolDefault: "1",
	},
	querygen.MySQL: {
		primaryKey:  "INT AUTO_INCREMENT PRIMARY KEY",
		guidType:    "VARCHAR(36)",
		moneyType:   "DECIMAL(18,2)",
		dateType:    "DATETIME",
		dateDefault: "CURRENT_TIMESTAMP",
		boolType:    "TINYINT(1)",
		boolDefault: "1",
	},
	querygen.PostgreSQL: {
		primaryKey:  "SERIAL PRIMARY KEY",
		guidType:    "UUID",
		moneyType:   "DECIMAL(18,2)",
		dateType:    "TIMESTAMP WITH TIME ZONE",
		dateDefault: "NOW()",
		boolType:    "BOOLEAN",
		boolDefault: "TRUE",
	},
}

func NewProjectTemplate(d querygen.Dialect) *ProjectTemplate {
	return &ProjectTemplate{Dialect: d}
}

// InputPath is the sample metadata file init writes.
func (pt *ProjectTemplate) InputPath() string {
	if _, ok := dbConfigs[pt.Dialect]; ok {
		return "db/schema.sql"
	}
	return "db/columns.yaml"
}

func (pt *ProjectTemplate) GetConfig() (string, error) {
	cfg := config.Default()
	cfg.Input = pt.InputPath()
	cfg.Dialect = string(pt.Dialect)

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal config: %w", err)
	}
	return string(data) + "\n", nil
}

// GetInput renders the sample metadata for InputPath.
func (pt *ProjectTemplate) GetInput() (string, error) {
	cfg, ok := dbConfigs[pt.Dialect]
	if !ok {
		data, err := metadata.MarshalManifest(sampleTables())
		if err != nil {
			return "", fmt.Errorf("failed to marshal sample manifest: %w", err)
		}
		return string(data), nil
	}

	return fmt.Sprintf(`CREATE TABLE Orders (
    OrderId %s,
    CustomerId %s NOT NULL,
    EntryByUserId %s,
    Total %s NOT NULL DEFAULT 0,
    OrderDate %s NOT NULL DEFAULT %s,
    IsActive %s NOT NULL DEFAULT %s
);
`, cfg.primaryKey, cfg.guidType, cfg.guidType, cfg.moneyType,
		cfg.dateType, cfg.dateDefault, cfg.boolType, cfg.boolDefault), nil
}

func sampleTables() []*schema.Table {
	return []*schema.Table{{
		Name: "Orders",
		Columns: []schema.Column{
			{Name: "OrderId", NativeType: "int", IsIdentity: true, IsPrimaryKey: true},
			{Name: "CustomerId", NativeType: "uniqueidentifier"},
			{Name: "EntryByUserId", NativeType: "uniqueidentifier"},
			{Name: "Total", NativeType: "decimal(18,2)"},
			{Name: "OrderDate", NativeType: "datetime"},
			{Name: "IsActive", NativeType: "bit"},
		},
	}}
}

func (pt *ProjectTemplate) GetEnvTemplate() string {
	return "# Overrides the author written into procedure headers\n# AUTHOR=\n"
}

func (pt *ProjectTemplate) GetDirectoryStructure() []string {
	return []string{"db"}
}
