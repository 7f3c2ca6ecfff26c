package querygen

import (
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
)

type Dialect string

const (
	PostgreSQL Dialect = "postgresql"
	MySQL      Dialect = "mysql"
	SQLite     Dialect = "sqlite"
	SQLServer  Dialect = "sqlserver"
)

type dialectConfig struct {
	placeholder  squirrel.PlaceholderFormat
	returning    bool
	createCmd    string
	falseLiteral string
}

var dialectConfigs = map[Dialect]dialectConfig{
	PostgreSQL: {placeholder: squirrel.Dollar, returning: true, createCmd: ":one", falseLiteral: "FALSE"},
	MySQL:      {placeholder: squirrel.Question, returning: false, createCmd: ":execresult", falseLiteral: "0"},
	SQLite:     {placeholder: squirrel.Question, returning: true, createCmd: ":one", falseLiteral: "0"},
	SQLServer:  {placeholder: squirrel.AtP, returning: false, createCmd: ":execresult", falseLiteral: "0"},
}

// ParseDialect accepts the provider spellings the config file allows.
func ParseDialect(s string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "postgresql", "postgres", "pg":
		return PostgreSQL, nil
	case "mysql":
		return MySQL, nil
	case "sqlite", "sqlite3":
		return SQLite, nil
	case "sqlserver", "mssql":
		return SQLServer, nil
	default:
		return "", fmt.Errorf("unsupported dialect: %s. Supported dialects: postgresql, mysql, sqlite, sqlserver", s)
	}
}

// SqlcEngine maps a dialect to sqlc's engine name. SQL Server has none.
func (d Dialect) SqlcEngine() (string, bool) {
	switch d {
	case PostgreSQL:
		return "postgresql", true
	case MySQL:
		return "mysql", true
	case SQLite:
		return "sqlite", true
	default:
		return "", false
	}
}
