package metadata

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/Rana718/crudgen/internal/schema"
)

// Manifest is the YAML/JSON input shape. Tables and flat rows may be mixed;
// tables come first.
type Manifest struct {
	Tables []ManifestTable `yaml:"tables" json:"tables"`
	Rows   []schema.Row    `yaml:"rows" json:"rows"`
}

type ManifestTable struct {
	Name    string          `yaml:"name" json:"name"`
	Columns []schema.Column `yaml:"columns" json:"columns"`
}

// JSON is a subset of YAML, so one decoder serves both.
func parseManifest(data []byte) ([]schema.Row, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("invalid manifest: %w", err)
	}

	rows := make([]schema.Row, 0, len(m.Rows))
	for i, t := range m.Tables {
		if t.Name == "" {
			return nil, fmt.Errorf("table %d has no name", i+1)
		}
		for _, c := range t.Columns {
			rows = append(rows, schema.Row{
				Table:        t.Name,
				Column:       c.Name,
				IsIdentity:   c.IsIdentity,
				IsPrimaryKey: c.IsPrimaryKey,
				NativeType:   c.NativeType,
			})
		}
	}
	for i, r := range m.Rows {
		if r.Table == "" || r.Column == "" {
			return nil, fmt.Errorf("row %d needs both table and column", i+1)
		}
	}
	return append(rows, m.Rows...), nil
}

// MarshalManifest renders tables in the manifest shape, used by init to
// write a sample file.
func MarshalManifest(tables []*schema.Table) ([]byte, error) {
	m := Manifest{Tables: make([]ManifestTable, 0, len(tables))}
	for _, t := range tables {
		m.Tables = append(m.Tables, ManifestTable{Name: t.Name, Columns: t.Columns})
	}
	return yaml.Marshal(m)
}
