package filter

import (
	"math"
	"slices"
)

// Range is an observed numeric interval.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Domain returns the distinct non-null values of a column, sorted ascending.
// It is meant to be computed once from the unfiltered base dataset.
func Domain[T any](rows []T, get func(T) (string, bool)) []string {
	seen := make(map[string]struct{}, len(rows))
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		v, ok := get(r)
		if !ok {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	slices.Sort(out)
	return out
}

// WithAll prepends the All sentinel for single-select controls.
func WithAll(domain []string) []string {
	out := make([]string, 0, len(domain)+1)
	out = append(out, All)
	return append(out, domain...)
}

// Bounds returns min and max over non-null values; false when there are none.
func Bounds[T any](rows []T, get func(T) (float64, bool)) (Range, bool) {
	r := Range{Min: math.Inf(1), Max: math.Inf(-1)}
	found := false
	for _, row := range rows {
		v, ok := get(row)
		if !ok || math.IsNaN(v) {
			continue
		}
		found = true
		r.Min = min(r.Min, v)
		r.Max = max(r.Max, v)
	}
	if !found {
		return Range{}, false
	}
	return r, true
}

// Field adapts a required string field.
func Field[T any](f func(T) string) func(T) (string, bool) {
	return func(r T) (string, bool) { return f(r), true }
}

// OptionalString adapts a nullable string field.
func OptionalString[T any](f func(T) *string) func(T) (string, bool) {
	return func(r T) (string, bool) {
		p := f(r)
		if p == nil {
			return "", false
		}
		return *p, true
	}
}

// OptionalInt adapts a nullable integer field for range predicates.
func OptionalInt[T any](f func(T) *int64) func(T) (float64, bool) {
	return func(r T) (float64, bool) {
		p := f(r)
		if p == nil {
			return 0, false
		}
		return float64(*p), true
	}
}

// OptionalFloat adapts a nullable float field for range predicates.
func OptionalFloat[T any](f func(T) *float64) func(T) (float64, bool) {
	return func(r T) (float64, bool) {
		p := f(r)
		if p == nil {
			return 0, false
		}
		return *p, true
	}
}
