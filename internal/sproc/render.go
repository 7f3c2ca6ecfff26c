package sproc

import (
	"strings"

	"github.com/Rana718/crudgen/internal/schema"
)

// paramGroup is a run of columns declared with the same direction. Groups are
// declared back to back as one comma separated list.
type paramGroup struct {
	columns []schema.Column
	output  bool
}

// declarations renders "\t@{name} {type}[ OUTPUT]" per column across all
// groups, in order, separated by ",\n". The first entry has no leading comma.
func declarations(groups ...paramGroup) string {
	var decls []string
	for _, g := range groups {
		for _, c := range g.columns {
			decl := "\t@" + c.Name + " " + c.NativeType
			if g.output {
				decl += " OUTPUT"
			}
			decls = append(decls, decl)
		}
	}
	return strings.Join(decls, ",\n")
}

// columnList renders " a, b, c" for select projections and insert targets.
func columnList(cols []schema.Column) string {
	if len(cols) == 0 {
		return ""
	}
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.Name
	}
	return " " + strings.Join(names, ", ")
}

// valueList renders "@a,@b,@c" for insert values.
func valueList(cols []schema.Column) string {
	params := make([]string, len(cols))
	for i, c := range cols {
		params[i] = "@" + c.Name
	}
	return strings.Join(params, ",")
}

func selectAll(t *schema.Table) string {
	return "\tselect\n\t" + columnList(t.Columns) + "\n\tfrom " + t.Name
}

// whereClause renders the primary-key predicate, one "{col} = @{col}" per
// line joined with "and". No columns leaves a bare where.
func whereClause(keys []schema.Column) string {
	if len(keys) == 0 {
		return "\n\twhere\n"
	}
	preds := make([]string, len(keys))
	for i, c := range keys {
		preds[i] = c.Name + " = @" + c.Name
	}
	return "\n\twhere\n\t\t" + strings.Join(preds, "\n\t\tand ")
}
