package extract

import "strings"

// Record is one raw tabular row. Lookups are by column name and are
// case-insensitive; a column that is absent reads as "".
type Record interface {
	Get(column string) string
}

// Header maps lower-cased column names to their index. It is built once per
// import from the header row so each row lookup is a map hit, not a scan.
type Header struct {
	index map[string]int
}

func NewHeader(columns []string) *Header {
	h := &Header{index: make(map[string]int, len(columns))}
	for i, c := range columns {
		if i == 0 {
			c = strings.TrimPrefix(c, "\ufeff")
		}
		key := strings.ToLower(strings.TrimSpace(c))
		if key == "" {
			continue
		}
		if _, dup := h.index[key]; dup {
			continue
		}
		h.index[key] = i
	}
	return h
}

func (h *Header) Row(values []string) Row {
	return Row{header: h, values: values}
}

// Row is a Record backed by a CSV line and its Header.
type Row struct {
	header *Header
	values []string
}

func (r Row) Get(column string) string {
	if r.header == nil {
		return ""
	}
	i, ok := r.header.index[strings.ToLower(column)]
	if !ok || i >= len(r.values) {
		return ""
	}
	return r.values[i]
}

// MapRecord is a Record backed by a map, used when rows do not come from CSV.
type MapRecord map[string]string

func (m MapRecord) Get(column string) string {
	if v, ok := m[column]; ok {
		return v
	}
	for k, v := range m {
		if strings.EqualFold(k, column) {
			return v
		}
	}
	return ""
}
