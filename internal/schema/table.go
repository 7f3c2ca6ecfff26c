package schema

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Rana718/crudgen/internal/classify"
)

// ErrNoColumns is returned by queries that need at least one column.
var ErrNoColumns = errors.New("table has no columns")

type Column struct {
	Name         string `json:"name" yaml:"name"`
	NativeType   string `json:"type" yaml:"type"`
	IsIdentity   bool   `json:"identity,omitempty" yaml:"identity,omitempty"`
	IsPrimaryKey bool   `json:"primary_key,omitempty" yaml:"primary_key,omitempty"`
}

// CanonicalType classifies the column's native type.
func (c Column) CanonicalType() (classify.CanonicalType, error) {
	t, err := classify.Classify(c.NativeType)
	if err != nil {
		return t, fmt.Errorf("column %s: %w", c.Name, err)
	}
	return t, nil
}

// HostType returns the host-language type for the column.
func (c Column) HostType() (string, error) {
	host, err := classify.HostTypeOf(c.NativeType)
	if err != nil {
		return "", fmt.Errorf("column %s: %w", c.Name, err)
	}
	return host, nil
}

// Table is one table's schema. Columns keep declaration order.
type Table struct {
	Name             string
	Columns          []Column
	Author           string
	SoftDeleteColumn string
}

func (t *Table) filter(keep func(Column) bool) []Column {
	out := make([]Column, 0, len(t.Columns))
	for _, c := range t.Columns {
		if keep(c) {
			out = append(out, c)
		}
	}
	return out
}

func (t *Table) PrimaryKeys() []Column {
	return t.filter(func(c Column) bool { return c.IsPrimaryKey })
}

// IdentityColumn returns the first identity column, if any.
func (t *Table) IdentityColumn() (Column, bool) {
	for _, c := range t.Columns {
		if c.IsIdentity {
			return c, true
		}
	}
	return Column{}, false
}

func (t *Table) NonIdentityColumns() []Column {
	return t.filter(func(c Column) bool { return !c.IsIdentity })
}

// UpdatableColumns are the columns that are neither primary key nor identity.
func (t *Table) UpdatableColumns() []Column {
	return t.filter(func(c Column) bool { return !c.IsPrimaryKey && !c.IsIdentity })
}

// EffectiveKeyColumn is the column a create operation returns: the identity
// column when there is one, otherwise the first declared column.
func (t *Table) EffectiveKeyColumn() (Column, error) {
	if c, ok := t.IdentityColumn(); ok {
		return c, nil
	}
	if len(t.Columns) == 0 {
		return Column{}, fmt.Errorf("%s: %w", t.Name, ErrNoColumns)
	}
	return t.Columns[0], nil
}

// OwnerColumns returns uniqueidentifier columns that look like a reference to
// the user who owns or entered the row.
func (t *Table) OwnerColumns() []Column {
	return t.filter(func(c Column) bool {
		name := strings.ToLower(c.Name)
		if !strings.Contains(name, "entryby") && !strings.Contains(name, "user") && !strings.Contains(name, "owner") {
			return false
		}
		ct, err := classify.Classify(c.NativeType)
		return err == nil && ct == classify.UniqueID
	})
}

// Column looks a column up by name, case-insensitively.
func (t *Table) Column(name string) (Column, bool) {
	for _, c := range t.Columns {
		if strings.EqualFold(c.Name, name) {
			return c, true
		}
	}
	return Column{}, false
}

// Validate classifies every column and reports all unrecognized types at once.
func (t *Table) Validate() error {
	if len(t.Columns) == 0 {
		return fmt.Errorf("%s: %w", t.Name, ErrNoColumns)
	}
	var errs []error
	for _, c := range t.Columns {
		if _, err := c.CanonicalType(); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("table %s: %w", t.Name, errors.Join(errs...))
	}
	return nil
}
