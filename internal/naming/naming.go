// Package naming derives field, property, parameter and class names from
// column and table names. Every generator goes through these functions so the
// procedure text and the emitted classes agree on spelling.
package naming

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// A cases.Caser is stateful and must not be shared between goroutines.
func upper(s string) string { return cases.Upper(language.Und).String(s) }
func lower(s string) string { return cases.Lower(language.Und).String(s) }
func title(s string) string { return cases.Title(language.Und, cases.NoLower).String(s) }

// splitFirst returns the first rune of s as a string and the remainder.
func splitFirst(s string) (string, string) {
	_, size := utf8.DecodeRuneInString(s)
	return s[:size], s[size:]
}

// FieldName returns "_" followed by name with its first character lower-cased.
func FieldName(name string) string {
	if name == "" {
		return "_"
	}
	first, rest := splitFirst(name)
	return "_" + lower(first) + rest
}

// PropertyName returns name with its first character upper-cased.
func PropertyName(name string) string {
	if name == "" {
		return ""
	}
	first, rest := splitFirst(name)
	return upper(first) + rest
}

// InputParamName is the constructor parameter name for a column.
func InputParamName(name string) string {
	return name + "in"
}

// ClassName derives the class name from a table name.
func ClassName(table string) string {
	return PropertyName(table)
}

// TitleCase upper-cases the first letter of each space separated word and
// leaves the rest of the word unchanged.
func TitleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = title(w)
	}
	return strings.Join(words, " ")
}

// AuthorFromAccount turns an account name such as `CORP\jane.doe` into
// "Jane Doe".
func AuthorFromAccount(account string) string {
	if idx := strings.LastIndexAny(account, `\/`); idx != -1 {
		account = account[idx+1:]
	}
	return TitleCase(strings.ReplaceAll(account, ".", " "))
}
