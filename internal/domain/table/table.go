// Package table holds the tabular result shape shared by the query executor,
// the canned query catalog and the presentation adapters.
package table

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Type is the inferred type of a column. Every type may hold nulls.
type Type int

// Column types.
const (
	TypeUnknown Type = iota // no non-null value seen and no declared type
	TypeString
	TypeInteger
	TypeFloat
)

func (t Type) String() string {
	switch t {
	case TypeString:
		return "string"
	case TypeInteger:
		return "integer"
	case TypeFloat:
		return "float"
	default:
		return "unknown"
	}
}

// MarshalText renders the type name in JSON payloads.
func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Column describes one named, typed column.
type Column struct {
	Name     string `json:"name"`
	Type     Type   `json:"type"`
	Nullable bool   `json:"nullable"`
}

// Row is one record aligned with Result.Columns. Cells hold nil, string,
// int64 or float64.
type Row []any

// Result is an ordered sequence of rows sharing one column schema.
type Result struct {
	Columns []Column
	Rows    []Row

	index map[string]int
}

// New builds a Result. Duplicate column names resolve to the first occurrence.
func New(columns []Column, rows []Row) *Result {
	r := &Result{Columns: columns, Rows: rows, index: make(map[string]int, len(columns))}
	for i, c := range columns {
		if _, dup := r.index[c.Name]; !dup {
			r.index[c.Name] = i
		}
	}
	if r.Rows == nil {
		r.Rows = []Row{}
	}
	return r
}

// Len returns the number of rows.
func (r *Result) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Rows)
}

// Empty reports whether the result has no rows.
func (r *Result) Empty() bool { return r.Len() == 0 }

// Index returns the position of a column.
func (r *Result) Index(name string) (int, bool) {
	i, ok := r.index[name]
	return i, ok
}

// ColumnNames returns the column names in order.
func (r *Result) ColumnNames() []string {
	names := make([]string, len(r.Columns))
	for i, c := range r.Columns {
		names[i] = c.Name
	}
	return names
}

// Value returns the raw cell, nil when the column is unknown or the cell is null.
func (r *Result) Value(row int, name string) any {
	i, ok := r.index[name]
	if !ok || row < 0 || row >= len(r.Rows) || i >= len(r.Rows[row]) {
		return nil
	}
	return r.Rows[row][i]
}

// String returns the cell as text. Numbers are formatted; null yields false.
func (r *Result) String(row int, name string) (string, bool) {
	switch v := r.Value(row, name).(type) {
	case string:
		return v, true
	case int64:
		return strconv.FormatInt(v, 10), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	default:
		return "", false
	}
}

// Int returns the cell as an integer. Integral floats and numeric strings convert.
func (r *Result) Int(row int, name string) (int64, bool) {
	switch v := r.Value(row, name).(type) {
	case int64:
		return v, true
	case float64:
		if v != math.Trunc(v) {
			return 0, false
		}
		return int64(v), true
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		return n, err == nil
	default:
		return 0, false
	}
}

// Float returns the cell as a float.
func (r *Result) Float(row int, name string) (float64, bool) {
	switch v := r.Value(row, name).(type) {
	case float64:
		return v, true
	case int64:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(v, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// Record returns row i as a column-name keyed map.
func (r *Result) Record(i int) map[string]any {
	rec := make(map[string]any, len(r.Columns))
	for j, c := range r.Columns {
		if _, seen := rec[c.Name]; seen {
			continue
		}
		if j < len(r.Rows[i]) {
			rec[c.Name] = r.Rows[i][j]
		} else {
			rec[c.Name] = nil
		}
	}
	return rec
}

// Records returns every row as a column-name keyed map.
func (r *Result) Records() []map[string]any {
	out := make([]map[string]any, len(r.Rows))
	for i := range r.Rows {
		out[i] = r.Record(i)
	}
	return out
}

type resultJSON struct {
	Columns []Column         `json:"columns"`
	Rows    []map[string]any `json:"rows"`
}

// MarshalJSON encodes the schema separately so column order survives.
func (r *Result) MarshalJSON() ([]byte, error) {
	cols := r.Columns
	if cols == nil {
		cols = []Column{}
	}
	return json.Marshal(resultJSON{Columns: cols, Rows: r.Records()})
}

// Format renders a cell for display; null renders as the empty string.
func Format(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return fmt.Sprint(x)
	}
}
