package classify

import (
	"errors"
	"testing"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		nativeType string
		want       CanonicalType
	}{
		{name: "bit", nativeType: "bit", want: Boolean},
		{name: "binary with length", nativeType: "binary(16)", want: Boolean},
		{name: "varbinary max", nativeType: "varbinary(max)", want: Boolean},
		{name: "int", nativeType: "int", want: Integer},
		{name: "bigint upper", nativeType: "BIGINT", want: Integer},
		{name: "tinyint", nativeType: "tinyint", want: Integer},
		{name: "smallint", nativeType: "smallint", want: Integer},
		{name: "money", nativeType: "money", want: Decimal},
		{name: "decimal precision", nativeType: "decimal(18,2)", want: Decimal},
		{name: "float", nativeType: "float", want: Decimal},
		{name: "real", nativeType: "real", want: Decimal},
		{name: "char", nativeType: "char(1)", want: FixedString},
		{name: "nchar", nativeType: "nchar(10)", want: FixedString},
		{name: "varchar", nativeType: "varchar", want: VariableString},
		{name: "varchar length", nativeType: "varchar(50)", want: VariableString},
		{name: "nvarchar mixed case", nativeType: "NVarChar(255)", want: VariableString},
		{name: "text", nativeType: "text", want: VariableString},
		{name: "ntext", nativeType: "ntext", want: VariableString},
		{name: "date", nativeType: "date", want: DateTime},
		{name: "datetime", nativeType: "datetime", want: DateTime},
		{name: "datetime2 precision", nativeType: "datetime2(7)", want: DateTime},
		{name: "smalldatetime", nativeType: "smalldatetime", want: DateTime},
		{name: "time", nativeType: "time", want: DateTime},
		{name: "timestamp with zone", nativeType: "timestamp with time zone", want: DateTime},
		{name: "uniqueidentifier", nativeType: "uniqueidentifier", want: UniqueID},
		{name: "uuid", nativeType: "UUID", want: UniqueID},
		{name: "padded", nativeType: "  int  ", want: Integer},
		{name: "character varying", nativeType: "character varying(40)", want: VariableString},
		{name: "national varying", nativeType: "national character varying(40)", want: VariableString},
		{name: "national char", nativeType: "national char(2)", want: FixedString},
		{name: "double precision", nativeType: "DOUBLE PRECISION", want: Decimal},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Classify(tt.nativeType)
			if err != nil {
				t.Fatalf("Classify(%q) returned error: %v", tt.nativeType, err)
			}
			if got != tt.want {
				t.Errorf("Classify(%q) = %s, expected %s", tt.nativeType, got, tt.want)
			}
		})
	}
}

func TestClassifyUnrecognized(t *testing.T) {
	for _, nativeType := range []string{"xml", "geography", "", "   ", "sql_variant"} {
		got, err := Classify(nativeType)
		if !errors.Is(err, ErrUnrecognizedType) {
			t.Errorf("Classify(%q): expected ErrUnrecognizedType, got %v", nativeType, err)
		}
		if got != Unrecognized {
			t.Errorf("Classify(%q) = %s, expected Unrecognized", nativeType, got)
		}
	}
}

func TestLengthSuffixIsStripped(t *testing.T) {
	withSuffix, err := Classify("varchar(50)")
	if err != nil {
		t.Fatal(err)
	}
	bare, err := Classify("varchar")
	if err != nil {
		t.Fatal(err)
	}
	if withSuffix != bare {
		t.Errorf("expected varchar(50) and varchar to classify the same, got %s and %s", withSuffix, bare)
	}
}

func TestTablesAreTotal(t *testing.T) {
	for _, ct := range All {
		if _, err := HostType(ct); err != nil {
			t.Errorf("HostType(%s) returned error: %v", ct, err)
		}
		if _, err := InitialValue(ct); err != nil {
			t.Errorf("InitialValue(%s) returned error: %v", ct, err)
		}
	}
	if _, err := HostType(Unrecognized); !errors.Is(err, ErrUnrecognizedType) {
		t.Errorf("expected HostType(Unrecognized) to fail, got %v", err)
	}
}

func TestHostTypeAgreesWithinCanonicalType(t *testing.T) {
	pairs := [][2]string{
		{"int", "bigint"},
		{"varchar(50)", "ntext"},
		{"money", "decimal(10,2)"},
		{"date", "datetime2"},
		{"bit", "varbinary"},
		{"char", "nchar(2)"},
	}
	for _, p := range pairs {
		a, err := HostTypeOf(p[0])
		if err != nil {
			t.Fatal(err)
		}
		b, err := HostTypeOf(p[1])
		if err != nil {
			t.Fatal(err)
		}
		if a != b {
			t.Errorf("expected %s and %s to share a host type, got %q and %q", p[0], p[1], a, b)
		}
	}
}

func TestHostTypeNames(t *testing.T) {
	expected := map[CanonicalType]string{
		Integer:  "int",
		UniqueID: "Guid",
		DateTime: "DateTime",
		Boolean:  "bool",
	}
	for ct, want := range expected {
		got, _ := HostType(ct)
		if got != want {
			t.Errorf("HostType(%s) = %q, expected %q", ct, got, want)
		}
	}
}

func TestSQLServerType(t *testing.T) {
	t.Parallel()
	tests := []struct {
		nativeType string
		want       string
	}{
		{"timestamp", "rowversion"},
		{"TIMESTAMP", "rowversion"},
		{"datetime2(7)", "datetime2(7)"},
		{"int", "int"},
	}

	for _, tt := range tests {
		if got := SQLServerType(tt.nativeType); got != tt.want {
			t.Errorf("SQLServerType(%q) = %q, expected %q", tt.nativeType, got, tt.want)
		}
	}
	if _, err := Classify(SQLServerType("timestamp")); !errors.Is(err, ErrUnrecognizedType) {
		t.Errorf("expected a T-SQL timestamp to be unrecognized, got %v", err)
	}
}
