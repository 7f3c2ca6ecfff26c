package sproc

import (
	"errors"
	"fmt"
)

// ErrMissingSoftDeleteColumn is returned when Deactivate is requested without a
// configured soft-delete flag column.
var ErrMissingSoftDeleteColumn = errors.New("no soft-delete column configured")

type WarningCode string

const (
	// EmptyPredicateSet means the table has no primary key, so keyed
	// procedures render a WHERE clause with no predicates.
	EmptyPredicateSet WarningCode = "EmptyPredicateSet"
	// UnknownSoftDeleteColumn means the configured flag column is not a
	// column of the table.
	UnknownSoftDeleteColumn WarningCode = "UnknownSoftDeleteColumn"
	// EmptySetList means Update has no updatable columns to assign.
	EmptySetList WarningCode = "EmptySetList"
)

// Warning is a non-fatal condition found while generating one artifact. The
// caller decides whether to reject the artifact.
type Warning struct {
	Code     WarningCode
	Table    string
	Artifact string
	Message  string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s [%s]: %s", w.Artifact, w.Code, w.Message)
}
