package classgen

import (
	"fmt"
	"strings"

	"github.com/Rana718/crudgen/internal/classify"
)

// Helper file names, written once per output directory.
const (
	ReaderExtensionsFile = "DataReaderExtensions.cs"
	DataAccessLayerFile  = "DataAccessLayer.cs"
)

// convertCalls turns a scalar object into each host type; %s is the value.
var convertCalls = map[classify.CanonicalType]string{
	classify.Boolean:        "Convert.ToBoolean(%s)",
	classify.Integer:        "Convert.ToInt32(%s)",
	classify.Decimal:        "Convert.ToDecimal(%s)",
	classify.FixedString:    "Convert.ToChar(%s)",
	classify.VariableString: "Convert.ToString(%s)",
	classify.DateTime:       "Convert.ToDateTime(%s)",
	classify.UniqueID:       "new Guid(%s.ToString())",
}

// ReaderExtensions renders the IDataReader extension methods the data classes
// use to map rows.
func (e *Emitter) ReaderExtensions() string {
	var b strings.Builder
	b.WriteString("using System;\n")
	b.WriteString("using System.Collections.Generic;\n")
	b.WriteString("using System.Data;\n")
	b.WriteString("using System.Data.SqlClient;\n")
	fmt.Fprintf(&b, "namespace %s.DL {\n", e.opts.Namespace)
	b.WriteString(`    public static class DataReaderExtensions {
        public static string ToString(this IDataReader reader, string column) {
            if (reader[column] != DBNull.Value)
                return reader[column].ToString();
            else
                return "";
        }
        public static Boolean ToBool(this IDataReader reader, string column, bool defaultValue)
        {
            if (reader[column] != DBNull.Value)
                return bool.Parse(reader[column].ToString());
            else
                return defaultValue;
        }

        public static int ToInt(this IDataReader reader, string column)
        {
            if (reader[column] != DBNull.Value)
            {
                return Convert.ToInt32(reader[column]);
            }
            else
                return 0;
        }

        public static Decimal ToDecimal(this IDataReader reader, string column)
        {
            if (reader[column] != DBNull.Value)
            {
                return Convert.ToDecimal(reader[column]);
            }
            else
                return 0;
        }
        public static char ToChar(this IDataReader reader, string column)
        {
            string value = reader.ToString(column);
            return value.Length > 0 ? value[0] : ' ';
        }
        public static Guid ToGuid(this IDataReader reader, string column)
        {
            if (reader[column] != DBNull.Value)
            {
                return new Guid(reader[column].ToString());
            }
            else
                return Guid.Empty;
        }
        public static DateTime ToDateTime(this IDataReader reader, string column)
        {
            if (reader[column] != DBNull.Value)
            {
                return Convert.ToDateTime(reader[column]);
            }
            else
                return DateTime.MinValue;
        }
        //This converts an integer column to the given enum (T)
        public static T ToEnum<T>(this IDataReader reader, string column)
        {
            if (!typeof(T).IsEnum)
            {
                throw new ArgumentException(typeof(T).ToString() + " is not an Enum");
            }
            return (T)Enum.ToObject(typeof(T), reader.ToInt(column));
        }
    }
} //end namespace
`)
	return b.String()
}

// DataAccessLayer renders the command runner the data classes call, with one
// typed RunCmdReturn_ method per host type.
func (e *Emitter) DataAccessLayer() string {
	var b strings.Builder
	b.WriteString("using System;\n")
	b.WriteString("using System.Data;\n")
	b.WriteString("using System.Data.SqlClient;\n")
	fmt.Fprintf(&b, "namespace %s.DL {\n", e.opts.Namespace)
	b.WriteString(`    public static class DataAccessLayer {
        public static string ConnectionString { get; set; }

        public static int RunCmd(SqlCommand cmd) {
            using (SqlConnection conn = new SqlConnection(ConnectionString)) {
                cmd.Connection = conn;
                conn.Open();
                return cmd.ExecuteNonQuery();
            }
        }

        public static IDataReader RunCmdReader(SqlCommand cmd) {
            SqlConnection conn = new SqlConnection(ConnectionString);
            cmd.Connection = conn;
            conn.Open();
            return cmd.ExecuteReader(CommandBehavior.CloseConnection);
        }

        //Returns the first output parameter when there is one, otherwise the first column of the first row.
        public static object RunCmdReturn(SqlCommand cmd) {
            using (SqlConnection conn = new SqlConnection(ConnectionString)) {
                cmd.Connection = conn;
                conn.Open();
                object scalar = cmd.ExecuteScalar();
                foreach (SqlParameter p in cmd.Parameters) {
                    if (p.Direction == ParameterDirection.Output || p.Direction == ParameterDirection.InputOutput)
                        return p.Value;
                }
                return scalar;
            }
        }
`)
	for _, ct := range classify.All {
		host, _ := classify.HostType(ct)
		initial, _ := classify.InitialValue(ct)
		fmt.Fprintf(&b, "\n        public static %s RunCmdReturn_%s(SqlCommand cmd) {\n", host, host)
		b.WriteString("            object value = RunCmdReturn(cmd);\n")
		fmt.Fprintf(&b, "            if (value == null || value == DBNull.Value) return %s;\n", initial)
		fmt.Fprintf(&b, "            return %s;\n", fmt.Sprintf(convertCalls[ct], "value"))
		b.WriteString("        }\n")
	}
	b.WriteString("    }\n} //end namespace\n")
	return b.String()
}
