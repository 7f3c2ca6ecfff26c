package classify

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnrecognizedType is returned when a native type has no canonical mapping.
var ErrUnrecognizedType = errors.New("unrecognized native type")

// CanonicalType is the closed set of type categories between native database
// types and host-language types. The zero value is Unrecognized.
type CanonicalType int

const (
	Unrecognized CanonicalType = iota
	Boolean
	Integer
	Decimal
	FixedString
	VariableString
	DateTime
	UniqueID
)

// All lists every recognized canonical type in declaration order.
var All = []CanonicalType{Boolean, Integer, Decimal, FixedString, VariableString, DateTime, UniqueID}

var canonicalNames = map[CanonicalType]string{
	Unrecognized:   "Unrecognized",
	Boolean:        "Boolean",
	Integer:        "Integer",
	Decimal:        "Decimal",
	FixedString:    "FixedString",
	VariableString: "VariableString",
	DateTime:       "DateTime",
	UniqueID:       "UniqueId",
}

func (t CanonicalType) String() string {
	if name, ok := canonicalNames[t]; ok {
		return name
	}
	return fmt.Sprintf("CanonicalType(%d)", int(t))
}

// nativeTypes maps a lower-cased base type name to its canonical type. SQL Server
// names come first; the rest are aliases so DDL from other engines classifies too.
var nativeTypes = map[string]CanonicalType{
	"binary":    Boolean,
	"bit":       Boolean,
	"varbinary": Boolean,
	"bool":      Boolean,
	"boolean":   Boolean,

	"bigint":      Integer,
	"int":         Integer,
	"smallint":    Integer,
	"tinyint":     Integer,
	"integer":     Integer,
	"mediumint":   Integer,
	"serial":      Integer,
	"bigserial":   Integer,
	"smallserial": Integer,
	"int2":        Integer,
	"int4":        Integer,
	"int8":        Integer,

	"money":      Decimal,
	"smallmoney": Decimal,
	"decimal":    Decimal,
	"numeric":    Decimal,
	"float":      Decimal,
	"real":       Decimal,
	"double":     Decimal,
	"float4":     Decimal,
	"float8":     Decimal,

	"char":      FixedString,
	"nchar":     FixedString,
	"character": FixedString,

	"varchar":  VariableString,
	"nvarchar": VariableString,
	"text":     VariableString,
	"ntext":    VariableString,

	"date":           DateTime,
	"datetime":       DateTime,
	"datetime2":      DateTime,
	"smalldatetime":  DateTime,
	"datetimeoffset": DateTime,
	"time":           DateTime,
	"timestamp":      DateTime,
	"timestamptz":    DateTime,

	"uniqueidentifier": UniqueID,
	"uuid":             UniqueID,
}

var hostTypes = map[CanonicalType]string{
	Boolean:        "bool",
	Integer:        "int",
	Decimal:        "decimal",
	FixedString:    "char",
	VariableString: "string",
	DateTime:       "DateTime",
	UniqueID:       "Guid",
}

var initialValues = map[CanonicalType]string{
	Boolean:        "false",
	Integer:        "0",
	Decimal:        "0",
	FixedString:    "' '",
	VariableString: `""`,
	DateTime:       "DateTime.MinValue",
	UniqueID:       "Guid.Empty",
}

// BaseName strips any length or precision qualifier and lower-cases the rest,
// so "VarChar(50)" and "varchar" both yield "varchar".
func BaseName(nativeType string) string {
	base := strings.ToLower(strings.TrimSpace(nativeType))
	for _, m := range multiWordTypes {
		if strings.HasPrefix(base, m.prefix) {
			return m.alias
		}
	}
	if idx := strings.IndexAny(base, " ("); idx != -1 {
		base = base[:idx]
	}
	return base
}

// multiWordTypes are spellings whose first word alone would classify wrongly.
// Longer prefixes come first.
var multiWordTypes = []struct{ prefix, alias string }{
	{"national character varying", "nvarchar"},
	{"national char varying", "nvarchar"},
	{"character varying", "varchar"},
	{"national character", "nchar"},
	{"national char", "nchar"},
}

// sqlServerSynonyms are names T-SQL gives another meaning. timestamp there is
// rowversion, a binary row stamp with no canonical type.
var sqlServerSynonyms = map[string]string{
	"timestamp": "rowversion",
}

// SQLServerType returns nativeType as SQL Server reads it.
func SQLServerType(nativeType string) string {
	if alias, ok := sqlServerSynonyms[BaseName(nativeType)]; ok {
		return alias
	}
	return nativeType
}

// Classify maps a native database type name to its canonical type.
func Classify(nativeType string) (CanonicalType, error) {
	base := BaseName(nativeType)
	if t, ok := nativeTypes[base]; ok {
		return t, nil
	}
	return Unrecognized, fmt.Errorf("%w: %q", ErrUnrecognizedType, nativeType)
}

// HostType returns the host-language type name for a canonical type.
func HostType(t CanonicalType) (string, error) {
	if name, ok := hostTypes[t]; ok {
		return name, nil
	}
	return "", fmt.Errorf("%w: no host type for %s", ErrUnrecognizedType, t)
}

// InitialValue returns the literal a default constructor assigns to a field of
// the given canonical type.
func InitialValue(t CanonicalType) (string, error) {
	if v, ok := initialValues[t]; ok {
		return v, nil
	}
	return "", fmt.Errorf("%w: no initial value for %s", ErrUnrecognizedType, t)
}

// HostTypeOf classifies nativeType and returns its host type in one step.
func HostTypeOf(nativeType string) (string, error) {
	t, err := Classify(nativeType)
	if err != nil {
		return "", err
	}
	return HostType(t)
}
