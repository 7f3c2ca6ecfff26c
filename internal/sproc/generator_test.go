package sproc

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Rana718/crudgen/internal/classify"
	"github.com/Rana718/crudgen/internal/schema"
)

var fixedDate = time.Date(2026, time.March, 14, 9, 30, 0, 0, time.UTC)

func fixedGenerator() *Generator {
	return New(Options{Now: func() time.Time { return fixedDate }})
}

func orderTable() *schema.Table {
	return &schema.Table{
		Name:             "Order",
		Author:           "Jane Doe",
		SoftDeleteColumn: "IsActive",
		Columns: []schema.Column{
			{Name: "OrderId", NativeType: "int", IsIdentity: true, IsPrimaryKey: true},
			{Name: "CustomerId", NativeType: "int"},
			{Name: "Total", NativeType: "decimal(18,2)"},
		},
	}
}

const header = "-- =============================================\n" +
	"-- Author:\t\tJane Doe\n" +
	"-- Create date:\t3/14/2026\n" +
	"-- Description:\t\n" +
	"-- Revisions:\t\n" +
	"-- =============================================\n"

func TestCreateText(t *testing.T) {
	p, err := fixedGenerator().Create(orderTable())
	if err != nil {
		t.Fatal(err)
	}

	expected := header +
		"Create Procedure Order_Create\n" +
		"\t@CustomerId int,\n" +
		"\t@Total decimal(18,2),\n" +
		"\t@OrderId int OUTPUT\n" +
		"AS\n" +
		"Begin\n" +
		"\tSET NOCOUNT ON\n" +
		"\tinsert into Order\n" +
		"\t\t( CustomerId, Total)\n" +
		"\tvalues\n" +
		"\t\t(@CustomerId,@Total)\n" +
		"\n" +
		"\tselect @OrderId = SCOPE_IDENTITY()\n" +
		"End\n"

	if p.Text != expected {
		t.Errorf("unexpected Create text.\nexpected:\n%s\ngot:\n%s", expected, p.Text)
	}
	if p.Name != "Order_Create" || p.Kind != Create {
		t.Errorf("expected Order_Create/Create, got %s/%s", p.Name, p.Kind)
	}
	if len(p.Warnings) != 0 {
		t.Errorf("expected no warnings, got %v", p.Warnings)
	}
}

func TestCreateWithoutIdentity(t *testing.T) {
	table := &schema.Table{Name: "Tag", Columns: []schema.Column{
		{Name: "Code", NativeType: "char(3)", IsPrimaryKey: true},
		{Name: "Label", NativeType: "varchar(20)"},
	}}
	p, err := fixedGenerator().Create(table)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(p.Text, "OUTPUT") || strings.Contains(p.Text, "SCOPE_IDENTITY") {
		t.Errorf("expected no output parameter without an identity column:\n%s", p.Text)
	}
	if !strings.Contains(p.Text, "\t@Code char(3),\n\t@Label varchar(20)\nAS") {
		t.Errorf("expected both columns declared as input:\n%s", p.Text)
	}
}

func TestCreateDeclaresInputsThenOutput(t *testing.T) {
	tables := []*schema.Table{
		orderTable(),
		{Name: "Tag", Columns: []schema.Column{
			{Name: "Code", NativeType: "char(3)", IsPrimaryKey: true},
			{Name: "Label", NativeType: "varchar(20)"},
		}},
		{Name: "Audit", Columns: []schema.Column{
			{Name: "At", NativeType: "datetime"},
			{Name: "AuditId", NativeType: "bigint", IsIdentity: true},
			{Name: "Who", NativeType: "uniqueidentifier"},
		}},
	}

	for _, table := range tables {
		p, err := fixedGenerator().Create(table)
		if err != nil {
			t.Fatal(err)
		}
		decls := declaredParams(p.Text)
		nonIdentity := table.NonIdentityColumns()
		_, hasIdentity := table.IdentityColumn()

		want := len(nonIdentity)
		if hasIdentity {
			want++
		}
		if len(decls) != want {
			t.Fatalf("%s: expected %d declarations, got %d: %v", table.Name, want, len(decls), decls)
		}
		for i, c := range nonIdentity {
			if !strings.HasPrefix(decls[i], "@"+c.Name+" ") || strings.HasSuffix(decls[i], "OUTPUT") {
				t.Errorf("%s: declaration %d = %q, expected input @%s", table.Name, i, decls[i], c.Name)
			}
		}
		if hasIdentity && !strings.HasSuffix(decls[len(decls)-1], " OUTPUT") {
			t.Errorf("%s: expected last declaration to be OUTPUT, got %q", table.Name, decls[len(decls)-1])
		}
	}
}

// declaredParams returns the trimmed declarations between the Create
// Procedure line and AS.
func declaredParams(text string) []string {
	lines := strings.Split(text, "\n")
	var out []string
	in := false
	for _, l := range lines {
		switch {
		case strings.HasPrefix(l, "Create Procedure "):
			in = true
		case l == "AS":
			return out
		case in && strings.TrimSpace(l) != "":
			out = append(out, strings.TrimSuffix(strings.TrimSpace(l), ","))
		}
	}
	return out
}

func TestReadAllText(t *testing.T) {
	p, err := fixedGenerator().ReadAll(orderTable())
	if err != nil {
		t.Fatal(err)
	}
	expected := header +
		"Create Procedure Order_ReadAll\n" +
		"\n" +
		"AS\n" +
		"Begin\n" +
		"\tSET NOCOUNT ON\n" +
		"\tselect\n" +
		"\t OrderId, CustomerId, Total\n" +
		"\tfrom Order\n" +
		"End\n"
	if p.Text != expected {
		t.Errorf("unexpected ReadAll text.\nexpected:\n%s\ngot:\n%s", expected, p.Text)
	}
}

func TestUpdateText(t *testing.T) {
	p, err := fixedGenerator().Update(orderTable())
	if err != nil {
		t.Fatal(err)
	}
	expected := header +
		"Create Procedure Order_Update\n" +
		"\t@OrderId int,\n" +
		"\t@CustomerId int,\n" +
		"\t@Total decimal(18,2)\n" +
		"AS\n" +
		"Begin\n" +
		"\tSET NOCOUNT ON\n" +
		"\tupdate Order\n" +
		"\tset\n" +
		"\t\tCustomerId = @CustomerId,\n" +
		"\t\tTotal = @Total\n" +
		"\twhere\n" +
		"\t\tOrderId = @OrderId\n" +
		"End\n"
	if p.Text != expected {
		t.Errorf("unexpected Update text.\nexpected:\n%s\ngot:\n%s", expected, p.Text)
	}
}

func TestReadByIDAndDelete(t *testing.T) {
	g := fixedGenerator()

	read, err := g.ReadByID(orderTable())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(read.Text, "Create Procedure Order_ReadById\n\t@OrderId int\nAS\n") {
		t.Errorf("unexpected ReadById declarations:\n%s", read.Text)
	}
	if !strings.HasSuffix(read.Text, "\tfrom Order\n\twhere\n\t\tOrderId = @OrderId\nEnd\n") {
		t.Errorf("unexpected ReadById body:\n%s", read.Text)
	}

	del, err := g.Delete(orderTable())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(del.Text, "\tdelete from Order\n\twhere\n\t\tOrderId = @OrderId\nEnd\n") {
		t.Errorf("unexpected Delete body:\n%s", del.Text)
	}
}

func TestDeactivate(t *testing.T) {
	p, err := fixedGenerator().Deactivate(orderTable())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(p.Text, "\tupdate Order\n\tset\n\t\tIsActive = 0\n\twhere\n\t\tOrderId = @OrderId\nEnd\n") {
		t.Errorf("unexpected Deactivate body:\n%s", p.Text)
	}
	if len(p.Warnings) != 1 || p.Warnings[0].Code != UnknownSoftDeleteColumn {
		t.Errorf("expected UnknownSoftDeleteColumn warning, got %v", p.Warnings)
	}

	table := orderTable()
	table.Columns = append(table.Columns, schema.Column{Name: "IsActive", NativeType: "bit"})
	p, err = fixedGenerator().Deactivate(table)
	if err != nil {
		t.Fatal(err)
	}
	if len(p.Warnings) != 0 {
		t.Errorf("expected no warnings, got %v", p.Warnings)
	}
}

func TestDeactivateMissingSoftDeleteColumn(t *testing.T) {
	table := orderTable()
	table.SoftDeleteColumn = ""
	_, err := fixedGenerator().Deactivate(table)
	if !errors.Is(err, ErrMissingSoftDeleteColumn) {
		t.Errorf("expected ErrMissingSoftDeleteColumn, got %v", err)
	}

	// Other artifacts of the same table are unaffected.
	if _, err := fixedGenerator().Delete(table); err != nil {
		t.Errorf("expected Delete to succeed, got %v", err)
	}
}

func TestCompositeKeyPredicate(t *testing.T) {
	table := &schema.Table{
		Name:             "OrderLine",
		SoftDeleteColumn: "IsActive",
		Columns: []schema.Column{
			{Name: "OrderId", NativeType: "int", IsPrimaryKey: true},
			{Name: "LineNo", NativeType: "smallint", IsPrimaryKey: true},
			{Name: "Sku", NativeType: "varchar(20)", IsPrimaryKey: true},
			{Name: "Qty", NativeType: "int"},
			{Name: "IsActive", NativeType: "bit"},
		},
	}
	expectedWhere := "\twhere\n" +
		"\t\tOrderId = @OrderId\n" +
		"\t\tand LineNo = @LineNo\n" +
		"\t\tand Sku = @Sku\n" +
		"End\n"

	g := fixedGenerator()
	for _, kind := range []Kind{ReadByID, Update, Delete, Deactivate} {
		procs, err := g.Generate(table, kind)
		if err != nil {
			t.Fatalf("%s: %v", kind, err)
		}
		text := procs[0].Text
		if !strings.HasSuffix(text, expectedWhere) {
			t.Errorf("%s: expected predicate\n%s\ngot:\n%s", kind, expectedWhere, text)
		}
		if n := strings.Count(text, "\t\tand "); n != 2 {
			t.Errorf("%s: expected 2 and-joined clauses after the first, got %d", kind, n)
		}
	}
}

func TestEmptyPredicateSetIsReported(t *testing.T) {
	table := &schema.Table{
		Name:             "Log",
		SoftDeleteColumn: "IsActive",
		Columns: []schema.Column{
			{Name: "Message", NativeType: "nvarchar(200)"},
			{Name: "At", NativeType: "datetime"},
			{Name: "IsActive", NativeType: "bit"},
		},
	}

	g := fixedGenerator()
	for _, kind := range []Kind{ReadByID, Update, Delete, Deactivate} {
		procs, err := g.Generate(table, kind)
		if err != nil {
			t.Fatalf("%s: %v", kind, err)
		}
		p := procs[0]
		if !strings.HasSuffix(p.Text, "\twhere\n\nEnd\n") {
			t.Errorf("%s: expected a bare where clause, got:\n%s", kind, p.Text)
		}
		found := false
		for _, w := range p.Warnings {
			if w.Code == EmptyPredicateSet && w.Table == "Log" && w.Artifact == p.Name {
				found = true
			}
		}
		if !found {
			t.Errorf("%s: expected EmptyPredicateSet warning, got %v", kind, p.Warnings)
		}
	}

	del, _ := g.Delete(table)
	if !strings.Contains(del.Text, "Create Procedure Log_Delete\n\nAS\n") {
		t.Errorf("expected an empty parameter block:\n%s", del.Text)
	}
}

func TestUnrecognizedTypeFailsTable(t *testing.T) {
	table := orderTable()
	table.Columns = append(table.Columns, schema.Column{Name: "Doc", NativeType: "xml"})

	for _, kind := range DefaultKinds {
		_, err := fixedGenerator().Generate(table, kind)
		if !errors.Is(err, classify.ErrUnrecognizedType) {
			t.Errorf("%s: expected ErrUnrecognizedType, got %v", kind, err)
		}
	}
}

func TestReadByOwner(t *testing.T) {
	table := &schema.Table{Name: "Note", Author: "Jane Doe", Columns: []schema.Column{
		{Name: "NoteId", NativeType: "int", IsIdentity: true, IsPrimaryKey: true},
		{Name: "UserId", NativeType: "uniqueidentifier"},
		{Name: "Body", NativeType: "text"},
	}}
	procs, err := fixedGenerator().ReadByOwner(table)
	if err != nil {
		t.Fatal(err)
	}
	if len(procs) != 1 {
		t.Fatalf("expected 1 procedure, got %d", len(procs))
	}
	if procs[0].Name != "Note_ReadByUserId" {
		t.Errorf("expected Note_ReadByUserId, got %s", procs[0].Name)
	}
	if !strings.Contains(procs[0].Text, "\t@UserId uniqueidentifier\nAS") ||
		!strings.HasSuffix(procs[0].Text, "\twhere\n\t\tUserId = @UserId\nEnd\n") {
		t.Errorf("unexpected owner lookup:\n%s", procs[0].Text)
	}

	none, err := fixedGenerator().ReadByOwner(orderTable())
	if err != nil {
		t.Fatal(err)
	}
	if len(none) != 0 {
		t.Errorf("expected no owner lookups, got %d", len(none))
	}
}

func TestDropIfExists(t *testing.T) {
	g := New(Options{Now: func() time.Time { return fixedDate }, DropIfExists: true})
	p, err := g.Delete(orderTable())
	if err != nil {
		t.Fatal(err)
	}
	expected := "IF OBJECT_ID('Order_Delete', 'P') IS NOT NULL\n\tDROP PROCEDURE Order_Delete\nGO\n" + header
	if !strings.HasPrefix(p.Text, expected) {
		t.Errorf("expected drop preamble, got:\n%s", p.Text)
	}
}

func TestClockReadOncePerArtifact(t *testing.T) {
	var mu sync.Mutex
	calls := 0
	g := New(Options{Now: func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		calls++
		return fixedDate
	}})

	for _, kind := range DefaultKinds {
		if _, err := g.Generate(orderTable(), kind); err != nil {
			t.Fatal(err)
		}
	}
	if calls != len(DefaultKinds) {
		t.Errorf("expected %d clock reads, got %d", len(DefaultKinds), calls)
	}
}

func TestDeterministic(t *testing.T) {
	g := fixedGenerator()
	for _, kind := range DefaultKinds {
		a, err := g.Generate(orderTable(), kind)
		if err != nil {
			t.Fatal(err)
		}
		b, _ := g.Generate(orderTable(), kind)
		if a[0].Text != b[0].Text {
			t.Errorf("%s: output differs between identical runs", kind)
		}
	}
}

func TestParseKinds(t *testing.T) {
	kinds, err := ParseKinds([]string{"create", "read-by-id", "ReadById", "read_all", "readbyowner"})
	if err != nil {
		t.Fatal(err)
	}
	expected := []Kind{Create, ReadByID, ReadAll, ReadByOwner}
	if len(kinds) != len(expected) {
		t.Fatalf("expected %v, got %v", expected, kinds)
	}
	for i := range expected {
		if kinds[i] != expected[i] {
			t.Errorf("kind %d: expected %s, got %s", i, expected[i], kinds[i])
		}
	}

	if _, err := ParseKind("truncate"); err == nil {
		t.Error("expected error for unknown kind")
	}
	if defaults, _ := ParseKinds(nil); len(defaults) != len(DefaultKinds) {
		t.Errorf("expected default kinds, got %v", defaults)
	}
}
