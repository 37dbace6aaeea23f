package gviz

import (
	"encoding/json"
	"strings"
)

type (
	// Cell holds one loosely-typed table cell. V is nil, string,
	// float64 or bool after JSON decoding.
	Cell struct {
		V any `json:"v"`
	}

	Col struct {
		Label string `json:"label"`
	}

	Row struct {
		C []*Cell `json:"c"`
	}

	Table struct {
		Cols []Col `json:"cols"`
		Rows []Row `json:"rows"`
	}
)

// Schema maps logical field names to the header labels expected
// in the table. Matching is case-insensitive and trimmed.
type Schema map[string]string

// Record is one row keyed by schema field name. A field whose header
// is absent, or whose cell is null, holds the empty string; otherwise
// it holds the raw cell value for caller-side coercion.
type Record map[string]any

// ParseRecords binds every table row to the schema's field names.
// It performs no semantic validation, keeping the table shape
// reusable for any tabular payload.
func ParseRecords(t Table, s Schema) []Record {
	headers := make([]string, len(t.Cols))
	for i, col := range t.Cols {
		headers[i] = normalizeHeader(col.Label)
	}

	fieldIdx := make(map[string]int, len(s))
	for field, label := range s {
		fieldIdx[field] = indexOf(headers, normalizeHeader(label))
	}

	records := make([]Record, 0, len(t.Rows))
	for _, row := range t.Rows {
		rec := make(Record, len(fieldIdx))
		for field, i := range fieldIdx {
			rec[field] = cellValue(row.C, i)
		}
		records = append(records, rec)
	}
	return records
}

func cellValue(cells []*Cell, i int) any {
	if i < 0 || i >= len(cells) {
		return ""
	}
	c := cells[i]
	if c == nil || c.V == nil {
		return ""
	}
	return c.V
}

func normalizeHeader(label string) string {
	return strings.ToLower(strings.TrimSpace(label))
}

func indexOf(headers []string, label string) int {
	for i, h := range headers {
		if h == label {
			return i
		}
	}
	return -1
}

// decodeTable rejects payloads without the expected table shape
// early, so callers only see well-formed tables.
func decodeTable(data []byte) (Table, error) {
	var envelope struct {
		Table *Table `json:"table"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return Table{}, err
	}
	if envelope.Table == nil || envelope.Table.Cols == nil {
		return Table{}, errMissingTable
	}
	return *envelope.Table, nil
}
