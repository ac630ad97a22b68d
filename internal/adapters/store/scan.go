package store

import (
	"database/sql"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/mmakshaya/Game-Analytics-Unlocking-Tennis-Data-with-SportRadar-API/internal/domain/table"
)

// materialize reads every row and settles one type per column.
func materialize(rows *sql.Rows) (*table.Result, error) {
	types, err := rows.ColumnTypes()
	if err != nil {
		return nil, err
	}
	cols := make([]table.Column, len(types))
	for i, ct := range types {
		cols[i] = table.Column{Name: ct.Name(), Type: declaredType(ct.DatabaseTypeName())}
		if nullable, ok := ct.Nullable(); ok {
			cols[i].Nullable = nullable
		}
	}

	var out []table.Row
	for rows.Next() {
		cells := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range cells {
			ptrs[i] = &cells[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		row := make(table.Row, len(cols))
		for i, v := range cells {
			row[i] = normalize(v, cols[i].Type)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range cols {
		settle(&cols[i], i, out)
	}
	return table.New(cols, out), nil
}

// declaredType maps a driver type name such as "DECIMAL(10,2)" or
// "UNSIGNED BIGINT" to a column type. An empty name stays unknown.
func declaredType(name string) table.Type {
	name = strings.ToUpper(strings.TrimSpace(name))
	if i := strings.IndexByte(name, '('); i >= 0 {
		name = strings.TrimSpace(name[:i])
	}
	if name == "" {
		return table.TypeUnknown
	}
	switch {
	case strings.HasSuffix(name, "INT"), strings.HasSuffix(name, "INTEGER"), name == "BOOL", name == "BOOLEAN", name == "BIT", name == "YEAR":
		return table.TypeInteger
	case strings.Contains(name, "DECIMAL"), strings.Contains(name, "NUMERIC"),
		strings.Contains(name, "FLOAT"), strings.Contains(name, "DOUBLE"), strings.Contains(name, "REAL"):
		return table.TypeFloat
	default:
		return table.TypeString
	}
}

// normalize turns a scanned driver value into nil, string, int64 or float64.
// Text-protocol bytes are parsed according to the declared column type.
func normalize(v any, t table.Type) any {
	switch x := v.(type) {
	case nil:
		return nil
	case int64:
		return x
	case int32:
		return int64(x)
	case int:
		return int64(x)
	case uint64:
		if x > math.MaxInt64 {
			return float64(x)
		}
		return int64(x)
	case float64:
		return x
	case float32:
		return float64(x)
	case bool:
		if x {
			return int64(1)
		}
		return int64(0)
	case string:
		return x
	case time.Time:
		return x.Format(time.RFC3339)
	case []byte:
		return parseBytes(string(x), t)
	default:
		return v
	}
}

func parseBytes(s string, t table.Type) any {
	switch t {
	case table.TypeInteger:
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	case table.TypeFloat:
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}
	return s
}

// settle fixes the type of column i and converts its cells to match.
// Unknown columns take the type of their first non-null value. Integer
// columns holding fractional values are widened to float.
func settle(col *table.Column, i int, rows []table.Row) {
	for _, r := range rows {
		v := r[i]
		if v == nil {
			col.Nullable = true
			continue
		}
		if col.Type == table.TypeUnknown {
			col.Type = valueType(v)
		}
		if f, ok := v.(float64); ok && col.Type == table.TypeInteger && f != math.Trunc(f) {
			col.Type = table.TypeFloat
		}
	}
	for _, r := range rows {
		r[i] = coerce(r[i], col.Type)
	}
}

func valueType(v any) table.Type {
	switch v.(type) {
	case int64:
		return table.TypeInteger
	case float64:
		return table.TypeFloat
	default:
		return table.TypeString
	}
}

func coerce(v any, t table.Type) any {
	switch t {
	case table.TypeInteger:
		if f, ok := v.(float64); ok && f == math.Trunc(f) && math.Abs(f) < 1<<63 {
			return int64(f)
		}
	case table.TypeFloat:
		if n, ok := v.(int64); ok {
			return float64(n)
		}
	case table.TypeString:
		switch x := v.(type) {
		case int64, float64:
			return table.Format(x)
		}
	}
	return v
}
