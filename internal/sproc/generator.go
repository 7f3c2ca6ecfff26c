package sproc

import (
	"fmt"
	"strings"
	"time"

	"github.com/Rana718/crudgen/internal/schema"
)

// DefaultDateFormat matches a US short date, e.g. 3/14/2026.
const DefaultDateFormat = "1/2/2006"

type Options struct {
	// Now supplies the header date. Defaults to time.Now.
	Now func() time.Time
	// DateFormat is a time layout for the header date.
	DateFormat string
	// DropIfExists prefixes each procedure with a guarded DROP PROCEDURE.
	DropIfExists bool
}

// Procedure is one generated stored procedure.
type Procedure struct {
	Kind     Kind
	Name     string
	Text     string
	Warnings []Warning
}

// Generator renders stored procedure text from a table. It holds no state
// beyond its options and is safe for concurrent use.
type Generator struct {
	opts Options
}

func New(opts Options) *Generator {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.DateFormat == "" {
		opts.DateFormat = DefaultDateFormat
	}
	return &Generator{opts: opts}
}

// Generate renders the procedures of one kind. Every kind yields exactly one
// procedure except ReadByOwner, which yields one per owner column.
func (g *Generator) Generate(t *schema.Table, kind Kind) ([]*Procedure, error) {
	var (
		p   *Procedure
		err error
	)
	switch kind {
	case Create:
		p, err = g.Create(t)
	case ReadAll:
		p, err = g.ReadAll(t)
	case ReadByID:
		p, err = g.ReadByID(t)
	case Update:
		p, err = g.Update(t)
	case Delete:
		p, err = g.Delete(t)
	case Deactivate:
		p, err = g.Deactivate(t)
	case ReadByOwner:
		return g.ReadByOwner(t)
	default:
		return nil, fmt.Errorf("unknown procedure kind %q", kind)
	}
	if err != nil {
		return nil, err
	}
	return []*Procedure{p}, nil
}

func (g *Generator) Create(t *schema.Table) (*Procedure, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	name := Name(t.Name, Create)
	nonIdentity := t.NonIdentityColumns()
	identity, hasIdentity := t.IdentityColumn()

	groups := []paramGroup{{columns: nonIdentity}}
	if hasIdentity {
		groups = append(groups, paramGroup{columns: []schema.Column{identity}, output: true})
	}

	var body strings.Builder
	body.WriteString("\tinsert into " + t.Name + "\n")
	body.WriteString("\t\t(" + columnList(nonIdentity) + ")\n")
	body.WriteString("\tvalues\n")
	body.WriteString("\t\t(" + valueList(nonIdentity) + ")\n")
	if hasIdentity {
		body.WriteString("\n\tselect @" + identity.Name + " = SCOPE_IDENTITY()\n")
	}

	return &Procedure{
		Kind: Create,
		Name: name,
		Text: g.render(t, name, declarations(groups...), body.String()),
	}, nil
}

func (g *Generator) ReadAll(t *schema.Table) (*Procedure, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	name := Name(t.Name, ReadAll)
	body := selectAll(t) + "\n"
	return &Procedure{
		Kind: ReadAll,
		Name: name,
		Text: g.render(t, name, "", body),
	}, nil
}

func (g *Generator) ReadByID(t *schema.Table) (*Procedure, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	name := Name(t.Name, ReadByID)
	keys := t.PrimaryKeys()
	body := selectAll(t) + whereClause(keys) + "\n"
	return &Procedure{
		Kind:     ReadByID,
		Name:     name,
		Text:     g.render(t, name, declarations(paramGroup{columns: keys}), body),
		Warnings: keyWarnings(t, name, keys),
	}, nil
}

func (g *Generator) Update(t *schema.Table) (*Procedure, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	name := Name(t.Name, Update)
	keys := t.PrimaryKeys()
	updatable := t.UpdatableColumns()

	assignments := make([]string, len(updatable))
	for i, c := range updatable {
		assignments[i] = "\t\t" + c.Name + " = @" + c.Name
	}

	var body strings.Builder
	body.WriteString("\tupdate " + t.Name + "\n")
	body.WriteString("\tset\n")
	body.WriteString(strings.Join(assignments, ",\n"))
	body.WriteString(whereClause(keys) + "\n")

	warnings := keyWarnings(t, name, keys)
	if len(updatable) == 0 {
		warnings = append(warnings, Warning{
			Code:     EmptySetList,
			Table:    t.Name,
			Artifact: name,
			Message:  "table has no columns outside the primary key and identity",
		})
	}

	return &Procedure{
		Kind:     Update,
		Name:     name,
		Text:     g.render(t, name, declarations(paramGroup{columns: keys}, paramGroup{columns: updatable}), body.String()),
		Warnings: warnings,
	}, nil
}

func (g *Generator) Delete(t *schema.Table) (*Procedure, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	name := Name(t.Name, Delete)
	keys := t.PrimaryKeys()
	body := "\tdelete from " + t.Name + whereClause(keys) + "\n"
	return &Procedure{
		Kind:     Delete,
		Name:     name,
		Text:     g.render(t, name, declarations(paramGroup{columns: keys}), body),
		Warnings: keyWarnings(t, name, keys),
	}, nil
}

func (g *Generator) Deactivate(t *schema.Table) (*Procedure, error) {
	name := Name(t.Name, Deactivate)
	if strings.TrimSpace(t.SoftDeleteColumn) == "" {
		return nil, fmt.Errorf("%s: %w", name, ErrMissingSoftDeleteColumn)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	keys := t.PrimaryKeys()

	var body strings.Builder
	body.WriteString("\tupdate " + t.Name + "\n")
	body.WriteString("\tset\n")
	body.WriteString("\t\t" + t.SoftDeleteColumn + " = 0")
	body.WriteString(whereClause(keys) + "\n")

	warnings := keyWarnings(t, name, keys)
	if _, ok := t.Column(t.SoftDeleteColumn); !ok {
		warnings = append(warnings, Warning{
			Code:     UnknownSoftDeleteColumn,
			Table:    t.Name,
			Artifact: name,
			Message:  fmt.Sprintf("column %s is not defined on %s", t.SoftDeleteColumn, t.Name),
		})
	}

	return &Procedure{
		Kind:     Deactivate,
		Name:     name,
		Text:     g.render(t, name, declarations(paramGroup{columns: keys}), body.String()),
		Warnings: warnings,
	}, nil
}

// ReadByOwner renders one lookup per owner column. Tables without owner
// columns yield no procedures.
func (g *Generator) ReadByOwner(t *schema.Table) ([]*Procedure, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	owners := t.OwnerColumns()
	procs := make([]*Procedure, 0, len(owners))
	for _, c := range owners {
		name := OwnerName(t.Name, c.Name)
		match := []schema.Column{c}
		body := selectAll(t) + whereClause(match) + "\n"
		procs = append(procs, &Procedure{
			Kind: ReadByOwner,
			Name: name,
			Text: g.render(t, name, declarations(paramGroup{columns: match}), body),
		})
	}
	return procs, nil
}

// render assembles the shared skeleton around a parameter block and body.
func (g *Generator) render(t *schema.Table, name, params, body string) string {
	var b strings.Builder
	b.Grow(512 + len(params) + len(body))

	if g.opts.DropIfExists {
		b.WriteString(dropIfExists(name))
	}
	b.WriteString(g.header(t.Author))
	b.WriteString("Create Procedure " + name + "\n")
	b.WriteString(params)
	b.WriteString("\nAS\nBegin\n\tSET NOCOUNT ON\n")
	b.WriteString(body)
	b.WriteString("End\n")
	return b.String()
}

// header reads the clock exactly once.
func (g *Generator) header(author string) string {
	date := g.opts.Now().Format(g.opts.DateFormat)
	return "-- =============================================\n" +
		"-- Author:\t\t" + author + "\n" +
		"-- Create date:\t" + date + "\n" +
		"-- Description:\t\n" +
		"-- Revisions:\t\n" +
		"-- =============================================\n"
}

func dropIfExists(name string) string {
	return "IF OBJECT_ID('" + name + "', 'P') IS NOT NULL\n" +
		"\tDROP PROCEDURE " + name + "\n" +
		"GO\n"
}

func keyWarnings(t *schema.Table, artifact string, keys []schema.Column) []Warning {
	if len(keys) > 0 {
		return nil
	}
	return []Warning{{
		Code:     EmptyPredicateSet,
		Table:    t.Name,
		Artifact: artifact,
		Message:  "table has no primary key; the where clause has no predicates",
	}}
}
