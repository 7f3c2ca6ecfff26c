package sproc

import (
	"fmt"
	"strings"
)

// Kind identifies one stored procedure template. Its value is the procedure
// name suffix.
type Kind string

const (
	Create      Kind = "Create"
	ReadAll     Kind = "ReadAll"
	ReadByID    Kind = "ReadById"
	Update      Kind = "Update"
	Delete      Kind = "Delete"
	Deactivate  Kind = "Deactivate"
	ReadByOwner Kind = "ReadByOwner"
)

// DefaultKinds are generated when no selection is configured.
var DefaultKinds = []Kind{Create, ReadAll, ReadByID, Update, Delete, Deactivate}

// AllKinds includes the optional owner lookups.
var AllKinds = append(append([]Kind{}, DefaultKinds...), ReadByOwner)

// ParseKind accepts a kind name in any case, with or without separators
// ("read-by-id", "ReadById", "readbyid").
func ParseKind(s string) (Kind, error) {
	key := strings.ToLower(strings.NewReplacer("-", "", "_", "", " ", "").Replace(s))
	for _, k := range AllKinds {
		if strings.ToLower(string(k)) == key {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown procedure kind %q", s)
}

// ParseKinds parses a list of kind names; an empty list yields DefaultKinds.
func ParseKinds(names []string) ([]Kind, error) {
	if len(names) == 0 {
		return DefaultKinds, nil
	}
	kinds := make([]Kind, 0, len(names))
	seen := make(map[Kind]bool, len(names))
	for _, n := range names {
		k, err := ParseKind(n)
		if err != nil {
			return nil, err
		}
		if !seen[k] {
			seen[k] = true
			kinds = append(kinds, k)
		}
	}
	return kinds, nil
}

// Name returns the procedure name for a table and kind, e.g. "Order_Create".
func Name(table string, kind Kind) string {
	return table + "_" + string(kind)
}

// OwnerName returns the owner lookup procedure name for a column.
func OwnerName(table, column string) string {
	return table + "_ReadBy" + column
}
