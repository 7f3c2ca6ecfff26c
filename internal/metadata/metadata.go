// Package metadata loads column descriptors from files and groups them into
// tables. Supported sources are YAML or JSON manifests, CSV exports of the
// catalog query, and CREATE TABLE scripts.
package metadata

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Rana718/crudgen/internal/schema"
)

// ErrUnknownFormat is returned when the input format cannot be determined.
var ErrUnknownFormat = errors.New("unknown metadata format")

type Format string

const (
	Auto Format = "auto"
	YAML Format = "yaml"
	JSON Format = "json"
	CSV  Format = "csv"
	SQL  Format = "sql"
)

var extensions = map[string]Format{
	".yaml": YAML,
	".yml":  YAML,
	".json": JSON,
	".csv":  CSV,
	".sql":  SQL,
	".ddl":  SQL,
}

// ParseFormat validates a configured format name.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case "":
		return Auto, nil
	case Auto, YAML, JSON, CSV, SQL:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q (supported: auto, yaml, json, csv, sql)", ErrUnknownFormat, s)
}

// DetectFormat picks a format from the file extension.
func DetectFormat(path string) (Format, error) {
	if f, ok := extensions[strings.ToLower(filepath.Ext(path))]; ok {
		return f, nil
	}
	return "", fmt.Errorf("%w: cannot infer format of %s", ErrUnknownFormat, path)
}

// Load reads path and returns its tables in file order.
func Load(path string, format Format) ([]*schema.Table, error) {
	if format == "" || format == Auto {
		f, err := DetectFormat(path)
		if err != nil {
			return nil, err
		}
		format = f
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read metadata file: %w", err)
	}

	tables, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return tables, nil
}

// Parse decodes data in the given format. Auto is not accepted here.
func Parse(data []byte, format Format) ([]*schema.Table, error) {
	var (
		rows []schema.Row
		err  error
	)
	switch format {
	case YAML, JSON:
		rows, err = parseManifest(data)
	case CSV:
		rows, err = parseCSV(data)
	case SQL:
		rows, err = parseDDL(string(data))
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return nil, err
	}
	return schema.GroupRows(rows), nil
}
