package classgen

import (
	"errors"
	"strings"
	"testing"

	"github.com/Rana718/crudgen/internal/classify"
	"github.com/Rana718/crudgen/internal/schema"
)

func orderTable() *schema.Table {
	return &schema.Table{
		Name: "order",
		Columns: []schema.Column{
			{Name: "OrderId", NativeType: "int", IsIdentity: true, IsPrimaryKey: true},
			{Name: "CustomerId", NativeType: "int"},
			{Name: "Total", NativeType: "decimal(18,2)"},
		},
	}
}

func mustEmit(t *testing.T, e *Emitter, table *schema.Table) *Class {
	t.Helper()
	c, err := e.Emit(table)
	if err != nil {
		t.Fatalf("Emit(%s) failed: %v", table.Name, err)
	}
	return c
}

func assertContains(t *testing.T, text string, fragments ...string) {
	t.Helper()
	for _, f := range fragments {
		if !strings.Contains(text, f) {
			t.Errorf("expected output to contain %q\n--- output ---\n%s", f, text)
		}
	}
}

func TestObjectClass(t *testing.T) {
	c := mustEmit(t, New(Options{Namespace: "Shop.Model"}), orderTable())

	if c.Name != "Order" {
		t.Errorf("expected class name Order, got %s", c.Name)
	}

	assertContains(t, c.Object,
		"namespace Shop.Model {\n",
		"public class Order{\n",
		"\tprivate int _orderId;\n\tprivate int _customerId;\n\tprivate decimal _total;\n",
		"\tpublic int OrderId {get{return _orderId;} set{_orderId=value;}}\n",
		"\tpublic int CustomerId {get{return _customerId;} set{_customerId=value;}}\n",
		"\tpublic decimal Total {get{return _total;} set{_total=value;}}\n",
		"\tpublic Order(){\n\t\t_orderId=0;\n\t\t_customerId=0;\n\t\t_total=0;\n\t}\n",
		"\tpublic Order (int OrderIdin,int CustomerIdin,decimal Totalin){\n",
		"\t\t_orderId=OrderIdin;\n\t\t_customerId=CustomerIdin;\n\t\t_total=Totalin;\n",
		"public int Create(){\n\treturn OrderData.Create(this);\n}\n",
		"public static List<Order> RetrieveAll(){\n\treturn OrderData.RetrieveAll();\n}\n",
		"public static Order RetrieveByID(int OrderIdin){\n\treturn OrderData.RetrieveByID(OrderIdin);\n}\n",
		"public bool Update(){\n\treturn OrderData.Update(this);\n}\n",
		"public bool Delete(){\n\treturn OrderData.Delete(this);\n}\n",
		"} //Order\n",
		"} //Shop.Model\n",
	)
}

func TestFieldOrderFollowsColumns(t *testing.T) {
	c := mustEmit(t, New(Options{}), orderTable())
	a := strings.Index(c.Object, "_orderId;")
	b := strings.Index(c.Object, "_customerId;")
	d := strings.Index(c.Object, "_total;")
	if !(a < b && b < d) {
		t.Errorf("expected fields in declaration order, got offsets %d %d %d", a, b, d)
	}
}

func TestDataClassCreate(t *testing.T) {
	c := mustEmit(t, New(Options{Namespace: "Shop.Model"}), orderTable())

	assertContains(t, c.Data,
		"using Shop.Model.DL;\n",
		"public class OrderData{\n",
		"public static int Create(Order inputObj){\n",
		"\tusing(SqlCommand cmd=new SqlCommand(\"order_Create\")){\n",
		"\t\tcmd.Parameters.AddWithValue(\"@OrderId\", inputObj.OrderId);\n",
		"\t\tcmd.Parameters.AddWithValue(\"@CustomerId\", inputObj.CustomerId);\n",
		"\t\tcmd.Parameters.AddWithValue(\"@Total\", inputObj.Total);\n",
		"\t\tcmd.Parameters[\"@OrderId\"].Direction = ParameterDirection.Output;\n",
		"\t\treturn DataAccessLayer.RunCmdReturn_int(cmd);\n",
	)

	create := c.Data[:strings.Index(c.Data, "public static List<Order> RetrieveAll")]
	if n := strings.Count(create, "AddWithValue"); n != 3 {
		t.Errorf("expected one parameter per column in Create, got %d", n)
	}
}

func TestDataClassOtherRoutines(t *testing.T) {
	c := mustEmit(t, New(Options{}), orderTable())

	assertContains(t, c.Data,
		"new SqlCommand(\"order_ReadAll\")",
		"public static Order RetrieveByID(int OrderIdin){\n",
		"new SqlCommand(\"order_ReadById\")",
		"\t\tcmd.Parameters.AddWithValue(\"@OrderId\", OrderIdin);\n",
		"public static bool Update(Order inputObj){\n",
		"new SqlCommand(\"order_Update\")",
		"public static bool Delete(Order inputObj){\n",
		"new SqlCommand(\"order_Delete\")",
		"\titem.OrderId = reader.ToInt(\"OrderId\");\n",
		"\titem.Total = reader.ToDecimal(\"Total\");\n",
	)
}

func TestCreateReturnTypeFallsBackToFirstColumn(t *testing.T) {
	table := &schema.Table{Name: "Session", Columns: []schema.Column{
		{Name: "SessionKey", NativeType: "uniqueidentifier", IsPrimaryKey: true},
		{Name: "StartedAt", NativeType: "datetime2"},
	}}
	c := mustEmit(t, New(Options{}), table)

	assertContains(t, c.Object, "public Guid Create(){\n")
	assertContains(t, c.Data,
		"public static Guid Create(Session inputObj){\n",
		"return DataAccessLayer.RunCmdReturn_Guid(cmd);",
	)
	if strings.Contains(c.Data, "ParameterDirection.Output") {
		t.Error("expected no output parameter without an identity column")
	}
}

func TestUserIDParam(t *testing.T) {
	c := mustEmit(t, New(Options{UserIDParam: true}), orderTable())
	assertContains(t, c.Object, "public int Create(Guid userId){\n\treturn OrderData.Create(userId, this);\n}\n")
	assertContains(t, c.Data, "public static int Create(Guid userId, Order inputObj){\n")
}

func TestDefaultNamespace(t *testing.T) {
	c := mustEmit(t, New(Options{}), orderTable())
	assertContains(t, c.Object, "namespace "+DefaultNamespace+" {\n")
}

func TestInitialValuesPerType(t *testing.T) {
	table := &schema.Table{Name: "Mixed", Columns: []schema.Column{
		{Name: "Flag", NativeType: "bit"},
		{Name: "Code", NativeType: "char(1)"},
		{Name: "Name", NativeType: "nvarchar(20)"},
		{Name: "At", NativeType: "datetime"},
		{Name: "Ref", NativeType: "uniqueidentifier"},
	}}
	c := mustEmit(t, New(Options{}), table)
	assertContains(t, c.Object,
		"\t\t_flag=false;\n",
		"\t\t_code=' ';\n",
		"\t\t_name=\"\";\n",
		"\t\t_at=DateTime.MinValue;\n",
		"\t\t_ref=Guid.Empty;\n",
		"\tprivate char _code;\n",
		"\tprivate string _name;\n",
	)
}

func TestUnrecognizedTypeFails(t *testing.T) {
	table := orderTable()
	table.Columns = append(table.Columns, schema.Column{Name: "Shape", NativeType: "geometry"})
	_, err := New(Options{}).Emit(table)
	if !errors.Is(err, classify.ErrUnrecognizedType) {
		t.Errorf("expected ErrUnrecognizedType, got %v", err)
	}
}

func TestHelpers(t *testing.T) {
	e := New(Options{Namespace: "Shop.Model"})

	ext := e.ReaderExtensions()
	assertContains(t, ext, "namespace Shop.Model.DL {\n", "public static class DataReaderExtensions", "ToGuid", "ToChar")

	dal := e.DataAccessLayer()
	assertContains(t, dal, "namespace Shop.Model.DL {\n", "public static class DataAccessLayer")
	for _, ct := range classify.All {
		host, _ := classify.HostType(ct)
		assertContains(t, dal, "RunCmdReturn_"+host+"(SqlCommand cmd)")
	}
}
