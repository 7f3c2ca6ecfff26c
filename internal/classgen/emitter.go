package classgen

import (
	"fmt"
	"strings"

	"github.com/Rana718/crudgen/internal/naming"
	"github.com/Rana718/crudgen/internal/schema"
	"github.com/Rana718/crudgen/internal/sproc"
)

// DefaultNamespace is used when no namespace is configured.
const DefaultNamespace = "Generated"

type Options struct {
	Namespace string
	// UserIDParam adds a leading "Guid userId" parameter to both Create
	// methods.
	UserIDParam bool
}

// Class is the generated pair for one table.
type Class struct {
	Name   string
	Object string
	Data   string
}

type Emitter struct {
	opts Options
}

func New(opts Options) *Emitter {
	if opts.Namespace == "" {
		opts.Namespace = DefaultNamespace
	}
	return &Emitter{opts: opts}
}

// model is everything derived from a table before rendering.
type model struct {
	table     *schema.Table
	class     string
	members   []member
	keys      []member
	updatable []member
	key       member
}

func (e *Emitter) build(t *schema.Table) (*model, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	members, err := newMembers(t.Columns)
	if err != nil {
		return nil, err
	}
	keys, err := newMembers(t.PrimaryKeys())
	if err != nil {
		return nil, err
	}
	updatable, err := newMembers(t.UpdatableColumns())
	if err != nil {
		return nil, err
	}
	keyCol, err := t.EffectiveKeyColumn()
	if err != nil {
		return nil, err
	}
	key, err := newMember(keyCol)
	if err != nil {
		return nil, err
	}
	return &model{
		table:     t,
		class:     naming.ClassName(t.Name),
		members:   members,
		keys:      keys,
		updatable: updatable,
		key:       key,
	}, nil
}

// Emit renders both the data object and the data-access class.
func (e *Emitter) Emit(t *schema.Table) (*Class, error) {
	m, err := e.build(t)
	if err != nil {
		return nil, err
	}
	return &Class{
		Name:   m.class,
		Object: e.object(m),
		Data:   e.data(m),
	}, nil
}

func (e *Emitter) object(m *model) string {
	var b strings.Builder

	fmt.Fprintf(&b, "//******************** %s ****************************//\n", m.class)
	b.WriteString("using System;\nusing System.Collections.Generic;\n\n")
	fmt.Fprintf(&b, "namespace %s {\n", e.opts.Namespace)
	fmt.Fprintf(&b, "public class %s{\n", m.class)

	b.WriteString("#region Fields\n")
	for _, mem := range m.members {
		fmt.Fprintf(&b, "\tprivate %s %s;\n", mem.host, mem.field)
	}
	b.WriteString("#endregion //Fields\n")

	b.WriteString("#region Props\n")
	for _, mem := range m.members {
		fmt.Fprintf(&b, "\tpublic %s %s {get{return %s;} set{%s=value;}}\n", mem.host, mem.property, mem.field, mem.field)
	}
	b.WriteString("#endregion //Props\n")

	b.WriteString("#region CTOR\n")
	fmt.Fprintf(&b, "\tpublic %s(){\n", m.class)
	for _, mem := range m.members {
		fmt.Fprintf(&b, "\t\t%s=%s;\n", mem.field, mem.initial)
	}
	b.WriteString("\t}\n")
	fmt.Fprintf(&b, "\tpublic %s (%s){\n", m.class, inputParams(m.members))
	for _, mem := range m.members {
		fmt.Fprintf(&b, "\t\t%s=%s;\n", mem.field, mem.param)
	}
	b.WriteString("\t}\n")
	b.WriteString("#endregion //CTOR\n")

	b.WriteString("#region CRUD\n")
	b.WriteString(e.businessCreate(m))
	fmt.Fprintf(&b, "public static List<%s> RetrieveAll(){\n\treturn %sData.RetrieveAll();\n}\n", m.class, m.class)
	fmt.Fprintf(&b, "public static %s RetrieveByID(%s){\n\treturn %sData.RetrieveByID(%s);\n}\n",
		m.class, inputParams(m.keys), m.class, paramNames(m.keys))
	fmt.Fprintf(&b, "public bool Update(){\n\treturn %sData.Update(this);\n}\n", m.class)
	fmt.Fprintf(&b, "public bool Delete(){\n\treturn %sData.Delete(this);\n}\n", m.class)
	b.WriteString("#endregion //CRUD\n")

	fmt.Fprintf(&b, "} //%s\n", m.class)
	fmt.Fprintf(&b, "\n} //%s\n", e.opts.Namespace)
	return b.String()
}

func (e *Emitter) businessCreate(m *model) string {
	param, arg := "", ""
	if e.opts.UserIDParam {
		param, arg = "Guid userId", "userId, "
	}
	return "///<summary>returns the id of the item which was just created</summary>\n" +
		fmt.Sprintf("public %s Create(%s){\n", m.key.host, param) +
		fmt.Sprintf("\treturn %sData.Create(%sthis);\n", m.class, arg) +
		"}\n"
}

func (e *Emitter) data(m *model) string {
	var b strings.Builder

	b.WriteString("using System;\nusing System.Collections.Generic;\nusing System.Data;\nusing System.Data.SqlClient;\n")
	fmt.Fprintf(&b, "using %s.DL;\n\n", e.opts.Namespace)
	fmt.Fprintf(&b, "namespace %s {\n", e.opts.Namespace)
	fmt.Fprintf(&b, "public class %sData{\n", m.class)

	b.WriteString(e.dataCreate(m))
	b.WriteString(dataRetrieveAll(m))
	b.WriteString(dataRetrieveByID(m))
	b.WriteString(dataModify(m, sproc.Update, append(append([]member{}, m.keys...), m.updatable...)))
	b.WriteString(dataModify(m, sproc.Delete, m.keys))
	b.WriteString(dataMap(m))

	fmt.Fprintf(&b, "} //%sData\n", m.class)
	fmt.Fprintf(&b, "\n} //%s\n", e.opts.Namespace)
	return b.String()
}

// dataCreate binds one parameter per column against the Create procedure and
// returns the effective key column's value.
func (e *Emitter) dataCreate(m *model) string {
	var b strings.Builder
	userParam := ""
	if e.opts.UserIDParam {
		userParam = "Guid userId, "
	}

	b.WriteString("///<summary>returns the id of the item which was just created</summary>\n")
	fmt.Fprintf(&b, "public static %s Create(%s%s inputObj){\n", m.key.host, userParam, m.class)
	fmt.Fprintf(&b, "\tusing(SqlCommand cmd=new SqlCommand(\"%s\")){\n", sproc.Name(m.table.Name, sproc.Create))
	b.WriteString("\t\tcmd.CommandType = CommandType.StoredProcedure;\n")
	for _, mem := range m.members {
		fmt.Fprintf(&b, "\t\tcmd.Parameters.AddWithValue(\"@%s\", inputObj.%s);\n", mem.column.Name, mem.property)
	}
	if mem := m.key; mem.column.IsIdentity {
		fmt.Fprintf(&b, "\t\tcmd.Parameters[\"@%s\"].Direction = ParameterDirection.Output;\n", mem.column.Name)
	}
	fmt.Fprintf(&b, "\t\treturn DataAccessLayer.RunCmdReturn_%s(cmd);\n", m.key.host)
	b.WriteString("\t} //close using statement\n")
	b.WriteString("}\n")
	return b.String()
}

func dataRetrieveAll(m *model) string {
	var b strings.Builder
	fmt.Fprintf(&b, "public static List<%s> RetrieveAll(){\n", m.class)
	fmt.Fprintf(&b, "\tList<%s> result = new List<%s>();\n", m.class, m.class)
	fmt.Fprintf(&b, "\tusing(SqlCommand cmd=new SqlCommand(\"%s\")){\n", sproc.Name(m.table.Name, sproc.ReadAll))
	b.WriteString("\t\tcmd.CommandType = CommandType.StoredProcedure;\n")
	b.WriteString("\t\tusing(IDataReader reader = DataAccessLayer.RunCmdReader(cmd)){\n")
	b.WriteString("\t\t\twhile(reader.Read()) result.Add(Map(reader));\n")
	b.WriteString("\t\t}\n")
	b.WriteString("\t} //close using statement\n")
	b.WriteString("\treturn result;\n")
	b.WriteString("}\n")
	return b.String()
}

func dataRetrieveByID(m *model) string {
	var b strings.Builder
	fmt.Fprintf(&b, "public static %s RetrieveByID(%s){\n", m.class, inputParams(m.keys))
	fmt.Fprintf(&b, "\tusing(SqlCommand cmd=new SqlCommand(\"%s\")){\n", sproc.Name(m.table.Name, sproc.ReadByID))
	b.WriteString("\t\tcmd.CommandType = CommandType.StoredProcedure;\n")
	for _, mem := range m.keys {
		fmt.Fprintf(&b, "\t\tcmd.Parameters.AddWithValue(\"@%s\", %s);\n", mem.column.Name, mem.param)
	}
	b.WriteString("\t\tusing(IDataReader reader = DataAccessLayer.RunCmdReader(cmd)){\n")
	b.WriteString("\t\t\tif(reader.Read()) return Map(reader);\n")
	b.WriteString("\t\t}\n")
	b.WriteString("\t} //close using statement\n")
	b.WriteString("\treturn null;\n")
	b.WriteString("}\n")
	return b.String()
}

// dataModify renders Update and Delete, which bind params from the object and
// report whether a row was affected.
func dataModify(m *model, kind sproc.Kind, params []member) string {
	var b strings.Builder
	fmt.Fprintf(&b, "public static bool %s(%s inputObj){\n", kind, m.class)
	fmt.Fprintf(&b, "\tusing(SqlCommand cmd=new SqlCommand(\"%s\")){\n", sproc.Name(m.table.Name, kind))
	b.WriteString("\t\tcmd.CommandType = CommandType.StoredProcedure;\n")
	for _, mem := range params {
		fmt.Fprintf(&b, "\t\tcmd.Parameters.AddWithValue(\"@%s\", inputObj.%s);\n", mem.column.Name, mem.property)
	}
	b.WriteString("\t\treturn DataAccessLayer.RunCmd(cmd) > 0;\n")
	b.WriteString("\t} //close using statement\n")
	b.WriteString("}\n")
	return b.String()
}

func dataMap(m *model) string {
	var b strings.Builder
	fmt.Fprintf(&b, "private static %s Map(IDataReader reader){\n", m.class)
	fmt.Fprintf(&b, "\t%s item = new %s();\n", m.class, m.class)
	for _, mem := range m.members {
		fmt.Fprintf(&b, "\titem.%s = %s;\n", mem.property, fmt.Sprintf(mem.reader, mem.column.Name))
	}
	b.WriteString("\treturn item;\n")
	b.WriteString("}\n")
	return b.String()
}

// inputParams renders "int OrderIdin,decimal Totalin".
func inputParams(members []member) string {
	parts := make([]string, len(members))
	for i, mem := range members {
		parts[i] = mem.host + " " + mem.param
	}
	return strings.Join(parts, ",")
}

func paramNames(members []member) string {
	parts := make([]string, len(members))
	for i, mem := range members {
		parts[i] = mem.param
	}
	return strings.Join(parts, ", ")
}
