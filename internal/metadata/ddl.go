package metadata

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Rana718/crudgen/internal/classify"
	"github.com/Rana718/crudgen/internal/schema"
)

var (
	blockCommentRegex = regexp.MustCompile(`/\*[\s\S]*?\*/`)
	batchSepRegex     = regexp.MustCompile(`(?im)^\s*GO\s*$`)
	createTableRegex  = regexp.MustCompile(`(?i)^\s*CREATE\s+TABLE\s+(?:IF\s+NOT\s+EXISTS\s+)?([\w"` + "`" + `\[\]\.]+)\s*\(`)
	tablePKRegex      = regexp.MustCompile(`(?i)PRIMARY\s+KEY(?:\s+(?:CLUSTERED|NONCLUSTERED))?\s*\(([^)]+)\)`)
	sortOrderRegex    = regexp.MustCompile(`(?i)\s+(ASC|DESC)$`)
	identityRegex     = regexp.MustCompile(`(?i)\b(IDENTITY|AUTO_INCREMENT|AUTOINCREMENT)\b`)
	inlinePKRegex     = regexp.MustCompile(`(?i)\bPRIMARY\s+KEY\b`)
	bracketTypeRegex  = regexp.MustCompile(`^\[(\w+)\]`)
	constraintRegex   = regexp.MustCompile(`(?i)^(PRIMARY\s+KEY|FOREIGN\s+KEY|UNIQUE|CHECK|CONSTRAINT|INDEX|KEY)\b\s*(\w*)`)
	typeRegex         = regexp.MustCompile(`(?i)^(national\s+char(?:acter)?(?:\s+varying)?|character\s+varying|double\s+precision|timestamp\s+with(?:out)?\s+time\s+zone|[\w]+)(\s*\([^)]*\))?`)
)

var serialTypes = map[string]bool{"serial": true, "bigserial": true, "smallserial": true}

func parseDDL(sql string) ([]schema.Row, error) {
	var rows []schema.Row
	for _, stmt := range splitStatements(removeComments(sql)) {
		if !createTableRegex.MatchString(stmt) {
			continue
		}
		tableRows, err := parseCreateTable(stmt)
		if err != nil {
			return nil, err
		}
		rows = append(rows, tableRows...)
	}
	return rows, nil
}

func removeComments(sql string) string {
	var result strings.Builder
	result.Grow(len(sql))

	start := 0
	for i := 0; i < len(sql); i++ {
		if i+1 < len(sql) && sql[i] == '-' && sql[i+1] == '-' {
			result.WriteString(sql[start:i])
			for i < len(sql) && sql[i] != '\n' {
				i++
			}
			if i < len(sql) {
				result.WriteByte('\n')
			}
			start = i + 1
		}
	}
	if start < len(sql) {
		result.WriteString(sql[start:])
	}

	return blockCommentRegex.ReplaceAllString(result.String(), "")
}

// splitStatements splits on semicolons and on SQL Server GO batch lines.
func splitStatements(sql string) []string {
	sql = batchSepRegex.ReplaceAllString(sql, ";")
	parts := strings.Split(sql, ";")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseCreateTable(stmt string) ([]schema.Row, error) {
	m := createTableRegex.FindStringSubmatch(stmt)
	if len(m) < 2 {
		return nil, fmt.Errorf("could not extract table name from: %s", firstLine(stmt))
	}
	table := unqualify(m[1])

	start := len(m[0]) - 1
	end := matchParen(stmt, start)
	if end == -1 {
		return nil, fmt.Errorf("invalid CREATE TABLE syntax for %s", table)
	}

	var (
		rows      []schema.Row
		tableKeys []string
	)
	for _, def := range splitColumns(stmt[start+1 : end]) {
		if def = strings.TrimSpace(def); def == "" {
			continue
		}
		if isTableConstraint(def) {
			if pk := tablePKRegex.FindStringSubmatch(def); pk != nil {
				tableKeys = append(tableKeys, keyColumns(pk[1])...)
			}
			continue
		}
		row, err := parseColumn(table, def)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}

	for _, key := range tableKeys {
		for i := range rows {
			if strings.EqualFold(rows[i].Column, key) {
				rows[i].IsPrimaryKey = true
			}
		}
	}
	return rows, nil
}

// matchParen returns the index of the parenthesis closing the one at open.
func matchParen(s string, open int) int {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func splitColumns(defs string) []string {
	result := make([]string, 0, 8)
	var current strings.Builder
	depth := 0

	for i := 0; i < len(defs); i++ {
		ch := defs[i]
		switch ch {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				result = append(result, current.String())
				current.Reset()
				continue
			}
		}
		current.WriteByte(ch)
	}
	if current.Len() > 0 {
		result = append(result, current.String())
	}
	return result
}

// isTableConstraint matches whole keywords only. A single-word keyword
// followed by a known type is a column of that name, e.g. "Key int".
func isTableConstraint(def string) bool {
	m := constraintRegex.FindStringSubmatch(strings.TrimSpace(def))
	if m == nil {
		return false
	}
	if len(strings.Fields(m[1])) > 1 {
		return true
	}
	_, err := classify.Classify(m[2])
	return err != nil
}

func parseColumn(table, def string) (schema.Row, error) {
	name, rest, ok := splitName(def)
	if !ok {
		return schema.Row{}, fmt.Errorf("invalid column definition in %s: %s", table, def)
	}
	rest = bracketTypeRegex.ReplaceAllString(rest, "$1")

	tm := typeRegex.FindStringSubmatch(rest)
	if tm == nil {
		return schema.Row{}, fmt.Errorf("invalid column definition in %s (no type): %s", table, def)
	}
	nativeType := tm[1] + strings.ReplaceAll(tm[2], " ", "")
	constraints := rest[len(tm[0]):]

	return schema.Row{
		Table:        table,
		Column:       name,
		NativeType:   nativeType,
		IsIdentity:   serialTypes[strings.ToLower(tm[1])] || identityRegex.MatchString(constraints),
		IsPrimaryKey: inlinePKRegex.MatchString(constraints),
	}, nil
}

// splitName separates the leading column name, which may be quoted and
// contain spaces, from the rest of the definition.
func splitName(def string) (name, rest string, ok bool) {
	closers := map[byte]byte{'[': ']', '"': '"', '`': '`'}
	if closer, quoted := closers[def[0]]; quoted {
		idx := strings.IndexByte(def[1:], closer)
		if idx == -1 {
			return "", "", false
		}
		name, rest = def[1:idx+1], def[idx+2:]
	} else {
		idx := strings.IndexAny(def, " \t\r\n")
		if idx == -1 {
			return "", "", false
		}
		name, rest = def[:idx], def[idx:]
	}
	rest = strings.TrimSpace(rest)
	return name, rest, name != "" && rest != ""
}

// keyColumns parses "a, b DESC" from a PRIMARY KEY (...) list.
func keyColumns(list string) []string {
	var out []string
	for _, col := range strings.Split(list, ",") {
		col = sortOrderRegex.ReplaceAllString(strings.TrimSpace(col), "")
		if col = unquote(col); col != "" {
			out = append(out, col)
		}
	}
	return out
}

func unquote(name string) string {
	return strings.Trim(strings.TrimSpace(name), "\"`[]")
}

// unqualify drops a schema prefix such as dbo. or public.
func unqualify(name string) string {
	if idx := strings.LastIndex(name, "."); idx != -1 {
		name = name[idx+1:]
	}
	return unquote(name)
}

func firstLine(s string) string {
	if idx := strings.IndexByte(s, '\n'); idx != -1 {
		return s[:idx]
	}
	return s
}
