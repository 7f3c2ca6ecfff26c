package classgen

import (
	"github.com/Rana718/crudgen/internal/classify"
	"github.com/Rana718/crudgen/internal/naming"
	"github.com/Rana718/crudgen/internal/schema"
)

// member is a column with every derived name and type the emitter needs.
type member struct {
	column   schema.Column
	host     string
	field    string
	property string
	param    string
	initial  string
	reader   string
}

// readerCalls maps a canonical type to the DataReaderExtensions call that
// reads it; %s is the column name.
var readerCalls = map[classify.CanonicalType]string{
	classify.Boolean:        `reader.ToBool("%s", false)`,
	classify.Integer:        `reader.ToInt("%s")`,
	classify.Decimal:        `reader.ToDecimal("%s")`,
	classify.FixedString:    `reader.ToChar("%s")`,
	classify.VariableString: `reader.ToString("%s")`,
	classify.DateTime:       `reader.ToDateTime("%s")`,
	classify.UniqueID:       `reader.ToGuid("%s")`,
}

func newMember(c schema.Column) (member, error) {
	ct, err := c.CanonicalType()
	if err != nil {
		return member{}, err
	}
	host, err := classify.HostType(ct)
	if err != nil {
		return member{}, err
	}
	initial, err := classify.InitialValue(ct)
	if err != nil {
		return member{}, err
	}
	return member{
		column:   c,
		host:     host,
		field:    naming.FieldName(c.Name),
		property: naming.PropertyName(c.Name),
		param:    naming.InputParamName(c.Name),
		initial:  initial,
		reader:   readerCalls[ct],
	}, nil
}

func newMembers(cols []schema.Column) ([]member, error) {
	out := make([]member, 0, len(cols))
	for _, c := range cols {
		m, err := newMember(c)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}
