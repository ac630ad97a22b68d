// Package filter implements the orthogonal filter controls of the dashboard:
// value domains derived from a base dataset and an ordered pipeline of
// predicates that narrows a dataset into a view.
//
// A Config is an immutable value. Apply never mutates its input and always
// returns a fresh slice. Predicates at their default state are no-ops; once
// active, a predicate drops rows whose column is null.
package filter

import (
	"math"
	"strings"

	"golang.org/x/text/cases"
)

// All is the sentinel selection meaning "no constraint".
const All = "All"

// Kind names a predicate type.
type Kind string

// Predicate kinds.
const (
	KindTextContains   Kind = "text_contains"
	KindEquals         Kind = "equals"
	KindIsIn           Kind = "is_in"
	KindRangeInclusive Kind = "range_inclusive"
)

// Predicate is one filter step over rows of type T.
type Predicate[T any] interface {
	// Column is the filtered column name.
	Column() string
	// Kind reports the predicate type.
	Kind() Kind
	// Active is false when the predicate is at its default state.
	Active() bool

	// prepare binds the predicate to the rows it is about to narrow.
	prepare(rows []T) func(T) bool
}

// Config is an ordered, immutable sequence of predicates combined with AND.
type Config[T any] struct {
	preds []Predicate[T]
}

// New builds a Config from predicates in application order.
func New[T any](preds ...Predicate[T]) Config[T] {
	c := Config[T]{preds: make([]Predicate[T], 0, len(preds))}
	for _, p := range preds {
		if p != nil {
			c.preds = append(c.preds, p)
		}
	}
	return c
}

// With returns a new Config with p appended.
func (c Config[T]) With(p Predicate[T]) Config[T] {
	return New(append(append([]Predicate[T]{}, c.preds...), p)...)
}

// Len returns the number of configured predicates.
func (c Config[T]) Len() int { return len(c.preds) }

// Active lists the columns of active predicates in application order.
func (c Config[T]) Active() []string {
	var cols []string
	for _, p := range c.preds {
		if p.Active() {
			cols = append(cols, p.Column())
		}
	}
	return cols
}

// Apply narrows rows sequentially: every active predicate runs exactly once
// and reads the output of the previous one.
func (c Config[T]) Apply(rows []T) []T {
	out := make([]T, len(rows))
	copy(out, rows)
	for _, p := range c.preds {
		if !p.Active() {
			continue
		}
		keep := p.prepare(out)
		next := make([]T, 0, len(out))
		for _, r := range out {
			if keep(r) {
				next = append(next, r)
			}
		}
		out = next
	}
	return out
}

// Apply is shorthand for New(preds...).Apply(rows).
func Apply[T any](rows []T, preds ...Predicate[T]) []T {
	return New(preds...).Apply(rows)
}

type base struct {
	column string
	kind   Kind
}

func (b base) Column() string { return b.column }
func (b base) Kind() Kind     { return b.kind }

type textContains[T any] struct {
	base
	get    func(T) (string, bool)
	needle string
}

// TextContains keeps rows whose column contains needle, ignoring case.
// An empty needle is a no-op.
func TextContains[T any](column string, get func(T) (string, bool), needle string) Predicate[T] {
	return textContains[T]{base: base{column, KindTextContains}, get: get, needle: needle}
}

func (p textContains[T]) Active() bool { return p.needle != "" }

func (p textContains[T]) prepare([]T) func(T) bool {
	fold := cases.Fold()
	needle := fold.String(p.needle)
	return func(r T) bool {
		v, ok := p.get(r)
		return ok && strings.Contains(fold.String(v), needle)
	}
}

type equals[T any] struct {
	base
	get   func(T) (string, bool)
	value string
}

// Equals keeps rows whose column equals value exactly. All or empty is a no-op.
func Equals[T any](column string, get func(T) (string, bool), value string) Predicate[T] {
	return equals[T]{base: base{column, KindEquals}, get: get, value: value}
}

func (p equals[T]) Active() bool { return p.value != "" && p.value != All }

func (p equals[T]) prepare([]T) func(T) bool {
	return func(r T) bool {
		v, ok := p.get(r)
		return ok && v == p.value
	}
}

type isIn[T any] struct {
	base
	get func(T) (string, bool)
	set map[string]struct{}
}

// IsIn keeps rows whose column is one of values. An empty selection passes
// every row rather than none; callers rely on that to mean "not filtering".
func IsIn[T any](column string, get func(T) (string, bool), values []string) Predicate[T] {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return isIn[T]{base: base{column, KindIsIn}, get: get, set: set}
}

func (p isIn[T]) Active() bool { return len(p.set) > 0 }

func (p isIn[T]) prepare([]T) func(T) bool {
	return func(r T) bool {
		v, ok := p.get(r)
		if !ok {
			return false
		}
		_, hit := p.set[v]
		return hit
	}
}

type rangeInclusive[T any] struct {
	base
	get       func(T) (float64, bool)
	low, high *float64
}

// RangeInclusive keeps rows whose numeric column lies in [low, high]. A nil
// bound takes the observed min or max of the rows being narrowed; with both
// nil the predicate is a no-op.
func RangeInclusive[T any](column string, get func(T) (float64, bool), low, high *float64) Predicate[T] {
	p := rangeInclusive[T]{base: base{column, KindRangeInclusive}, get: get}
	if low != nil {
		l := *low
		p.low = &l
	}
	if high != nil {
		h := *high
		p.high = &h
	}
	return p
}

func (p rangeInclusive[T]) Active() bool { return p.low != nil || p.high != nil }

func (p rangeInclusive[T]) prepare(rows []T) func(T) bool {
	lo, hi := math.Inf(-1), math.Inf(1)
	if p.low == nil || p.high == nil {
		if b, ok := Bounds(rows, p.get); ok {
			lo, hi = b.Min, b.Max
		}
	}
	if p.low != nil {
		lo = *p.low
	}
	if p.high != nil {
		hi = *p.high
	}
	return func(r T) bool {
		v, ok := p.get(r)
		return ok && v >= lo && v <= hi
	}
}
