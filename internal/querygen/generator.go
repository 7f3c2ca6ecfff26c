package querygen

import (
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"

	"github.com/Rana718/crudgen/internal/naming"
	"github.com/Rana718/crudgen/internal/schema"
	"github.com/Rana718/crudgen/internal/sproc"
)

// Query is one named statement in sqlc's annotation format.
type Query struct {
	Kind sproc.Kind
	Name string
	Cmd  string
	SQL  string
}

// Failure records a query that could not be built.
type Failure struct {
	Kind sproc.Kind
	Err  error
}

func (f Failure) Error() string { return string(f.Kind) + ": " + f.Err.Error() }

func (f Failure) Unwrap() error { return f.Err }

// File holds the queries for one table. Errors lists queries that were
// skipped; the rest of the file is still usable.
type File struct {
	Table    string
	Queries  []Query
	Warnings []sproc.Warning
	Errors   []Failure
}

type Generator struct {
	cfg dialectConfig
	qb  squirrel.StatementBuilderType
}

func New(d Dialect) (*Generator, error) {
	cfg, ok := dialectConfigs[d]
	if !ok {
		return nil, fmt.Errorf("unsupported dialect: %s", d)
	}
	return &Generator{
		cfg: cfg,
		qb:  squirrel.StatementBuilder.PlaceholderFormat(cfg.placeholder),
	}, nil
}

// Generate builds the queries for the requested kinds in order. An
// unrecognized column type fails the whole table.
func (g *Generator) Generate(t *schema.Table, kinds []sproc.Kind) (*File, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	f := &File{Table: t.Name}
	class := naming.ClassName(t.Name)
	keys := t.PrimaryKeys()

	for _, kind := range kinds {
		if keyed(kind) && len(keys) == 0 {
			f.Warnings = append(f.Warnings, sproc.Warning{
				Code:     sproc.EmptyPredicateSet,
				Table:    t.Name,
				Artifact: class + string(kind),
				Message:  "table has no primary key; query skipped",
			})
			continue
		}

		var (
			qs  []Query
			err error
		)
		switch kind {
		case sproc.Create:
			qs, err = g.create(t, class)
		case sproc.ReadAll:
			qs, err = g.readAll(t, class)
		case sproc.ReadByID:
			qs, err = g.readByID(t, class, keys)
		case sproc.Update:
			qs, err = g.update(t, class, keys, f)
		case sproc.Delete:
			qs, err = g.delete(t, class, keys)
		case sproc.Deactivate:
			qs, err = g.deactivate(t, class, keys)
		case sproc.ReadByOwner:
			qs, err = g.readByOwner(t, class)
		default:
			err = fmt.Errorf("unknown query kind %q", kind)
		}
		if err != nil {
			f.Errors = append(f.Errors, Failure{Kind: kind, Err: err})
			continue
		}
		f.Queries = append(f.Queries, qs...)
	}

	return f, nil
}

func keyed(kind sproc.Kind) bool {
	switch kind {
	case sproc.ReadByID, sproc.Update, sproc.Delete, sproc.Deactivate:
		return true
	}
	return false
}

func columnNames(cols []schema.Column) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = c.Name
	}
	return out
}

type whereable[T any] interface {
	Where(pred interface{}, args ...interface{}) T
}

// whereKeys adds one equality per key column in declaration order. Squirrel
// joins successive Where calls with AND. The argument values are discarded;
// only the placeholders matter.
func whereKeys[T whereable[T]](b T, keys []schema.Column) T {
	for _, c := range keys {
		b = b.Where(squirrel.Eq{c.Name: c.Name})
	}
	return b
}

func (g *Generator) create(t *schema.Table, class string) ([]Query, error) {
	cols := t.NonIdentityColumns()
	values := make([]interface{}, len(cols))
	for i, c := range cols {
		values[i] = c.Name
	}
	b := g.qb.Insert(t.Name).Columns(columnNames(cols)...).Values(values...)

	cmd := ":exec"
	if g.cfg.returning {
		key, err := t.EffectiveKeyColumn()
		if err != nil {
			return nil, err
		}
		b = b.Suffix("RETURNING " + key.Name)
		cmd = g.cfg.createCmd
	} else if _, ok := t.IdentityColumn(); ok {
		cmd = g.cfg.createCmd
	}

	sql, _, err := b.ToSql()
	if err != nil {
		return nil, err
	}
	return []Query{{Kind: sproc.Create, Name: class + string(sproc.Create), Cmd: cmd, SQL: sql}}, nil
}

func (g *Generator) readAll(t *schema.Table, class string) ([]Query, error) {
	sql, _, err := g.qb.Select(columnNames(t.Columns)...).From(t.Name).ToSql()
	if err != nil {
		return nil, err
	}
	return []Query{{Kind: sproc.ReadAll, Name: class + string(sproc.ReadAll), Cmd: ":many", SQL: sql}}, nil
}

func (g *Generator) readByID(t *schema.Table, class string, keys []schema.Column) ([]Query, error) {
	b := whereKeys(g.qb.Select(columnNames(t.Columns)...).From(t.Name), keys)
	sql, _, err := b.ToSql()
	if err != nil {
		return nil, err
	}
	return []Query{{Kind: sproc.ReadByID, Name: class + string(sproc.ReadByID), Cmd: ":one", SQL: sql}}, nil
}

func (g *Generator) update(t *schema.Table, class string, keys []schema.Column, f *File) ([]Query, error) {
	updatable := t.UpdatableColumns()
	if len(updatable) == 0 {
		f.Warnings = append(f.Warnings, sproc.Warning{
			Code:     sproc.EmptySetList,
			Table:    t.Name,
			Artifact: class + string(sproc.Update),
			Message:  "table has no columns outside the primary key and identity; query skipped",
		})
		return nil, nil
	}
	b := g.qb.Update(t.Name)
	for _, c := range updatable {
		b = b.Set(c.Name, c.Name)
	}
	sql, _, err := whereKeys(b, keys).ToSql()
	if err != nil {
		return nil, err
	}
	return []Query{{Kind: sproc.Update, Name: class + string(sproc.Update), Cmd: ":exec", SQL: sql}}, nil
}

func (g *Generator) delete(t *schema.Table, class string, keys []schema.Column) ([]Query, error) {
	sql, _, err := whereKeys(g.qb.Delete(t.Name), keys).ToSql()
	if err != nil {
		return nil, err
	}
	return []Query{{Kind: sproc.Delete, Name: class + string(sproc.Delete), Cmd: ":exec", SQL: sql}}, nil
}

func (g *Generator) deactivate(t *schema.Table, class string, keys []schema.Column) ([]Query, error) {
	if strings.TrimSpace(t.SoftDeleteColumn) == "" {
		return nil, sproc.ErrMissingSoftDeleteColumn
	}
	b := g.qb.Update(t.Name).Set(t.SoftDeleteColumn, squirrel.Expr(g.cfg.falseLiteral))
	sql, _, err := whereKeys(b, keys).ToSql()
	if err != nil {
		return nil, err
	}
	return []Query{{Kind: sproc.Deactivate, Name: class + string(sproc.Deactivate), Cmd: ":exec", SQL: sql}}, nil
}

func (g *Generator) readByOwner(t *schema.Table, class string) ([]Query, error) {
	var out []Query
	for _, c := range t.OwnerColumns() {
		b := whereKeys(g.qb.Select(columnNames(t.Columns)...).From(t.Name), []schema.Column{c})
		sql, _, err := b.ToSql()
		if err != nil {
			return nil, err
		}
		out = append(out, Query{Kind: sproc.ReadByOwner, Name: class + "ReadBy" + naming.PropertyName(c.Name), Cmd: ":many", SQL: sql})
	}
	return out, nil
}

// Render formats the file in sqlc's annotated query layout.
func (f *File) Render() string {
	var b strings.Builder
	b.WriteString("-- Code generated by crudgen. DO NOT EDIT.\n")
	b.WriteString("-- Table: " + f.Table + "\n")
	for _, q := range f.Queries {
		fmt.Fprintf(&b, "\n-- name: %s %s\n%s;\n", q.Name, q.Cmd, q.SQL)
	}
	return b.String()
}
