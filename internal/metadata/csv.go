package metadata

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Rana718/crudgen/internal/schema"
)

// CSV headers match the column aliases of the catalog query the rows come from.
const (
	headerTable      = "tablename"
	headerColumn     = "columnname"
	headerIdentity   = "isidentity"
	headerPrimaryKey = "isprimarykey"
	headerType       = "datatype"
)

var requiredHeaders = []string{headerTable, headerColumn, headerIdentity, headerPrimaryKey, headerType}

func parseCSV(data []byte) ([]schema.Row, error) {
	r := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, []byte("\uFEFF"))))
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("invalid csv header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, h := range requiredHeaders {
		if _, ok := index[h]; !ok {
			return nil, fmt.Errorf("csv header is missing %q", h)
		}
	}

	var rows []schema.Row
	for line := 2; ; line++ {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv line %d: %w", line, err)
		}

		identity, err := parseFlag(rec[index[headerIdentity]])
		if err != nil {
			return nil, fmt.Errorf("csv line %d: IsIdentity: %w", line, err)
		}
		primary, err := parseFlag(rec[index[headerPrimaryKey]])
		if err != nil {
			return nil, fmt.Errorf("csv line %d: IsPrimaryKey: %w", line, err)
		}

		rows = append(rows, schema.Row{
			Table:        strings.TrimSpace(rec[index[headerTable]]),
			Column:       strings.TrimSpace(rec[index[headerColumn]]),
			IsIdentity:   identity,
			IsPrimaryKey: primary,
			NativeType:   strings.TrimSpace(rec[index[headerType]]),
		})
	}
	return rows, nil
}

// parseFlag accepts 1/0, true/false and an empty cell as false.
func parseFlag(s string) (bool, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return false, nil
	}
	return strconv.ParseBool(s)
}
