// Package filter parses "field=value" expressions against a fixed set of
// typed fields.
package filter

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kontor-dev/kontor/internal/id"
)

// Predicate reports whether a row matches.
type Predicate[T any] func(row T) bool

// Field is a filterable column. Parse turns the value of an expression into a
// predicate, or fails if the value does not fit the column type.
type Field[T any] struct {
	Name  string
	Parse func(value string) (Predicate[T], error)
}

// Parse builds the predicate for expr. An empty expr matches every row.
func Parse[T any](expr string, fields []Field[T]) (Predicate[T], error) {
	if expr == "" {
		return func(T) bool { return true }, nil
	}

	parts := strings.Split(expr, "=")
	if len(parts) != 2 {
		return nil, errors.New("filter must contain exactly one '='")
	}
	name, value := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])

	for _, f := range fields {
		if f.Name == name {
			pred, err := f.Parse(value)
			if err != nil {
				return nil, fmt.Errorf("filter %s: %w", name, err)
			}
			return pred, nil
		}
	}
	return nil, fmt.Errorf("%s is not a filterable column", name)
}

// Apply returns the rows matching pred, keeping their order.
func Apply[T any](rows []T, pred Predicate[T]) []T {
	var out []T
	for _, r := range rows {
		if pred(r) {
			out = append(out, r)
		}
	}
	return out
}

// Names returns the field names, for help texts.
func Names[T any](fields []Field[T]) []string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	return names
}

// String matches a text column exactly.
func String[T any](name string, get func(T) string) Field[T] {
	return Field[T]{Name: name, Parse: func(value string) (Predicate[T], error) {
		return func(row T) bool { return get(row) == value }, nil
	}}
}

// ID matches a record ID. "7", "007" and "#7" are the same ID.
func ID[T any](name string, get func(T) int64) Field[T] {
	return Field[T]{Name: name, Parse: func(value string) (Predicate[T], error) {
		want, err := id.Parse(value)
		if err != nil {
			return nil, err
		}
		return func(row T) bool { return get(row) == want }, nil
	}}
}

// Decimal matches an amount column numerically, so "5" matches 5.00.
func Decimal[T any](name string, get func(T) decimal.Decimal) Field[T] {
	return Field[T]{Name: name, Parse: func(value string) (Predicate[T], error) {
		want, err := decimal.NewFromString(value)
		if err != nil {
			return nil, fmt.Errorf("parsing %q: %w", value, err)
		}
		return func(row T) bool { return get(row).Equal(want) }, nil
	}}
}

// DateLayouts are the accepted layouts for date filters.
var DateLayouts = []string{time.DateOnly, "2.1.2006"}

// Date matches a date column on the calendar day.
func Date[T any](name string, get func(T) time.Time) Field[T] {
	return Field[T]{Name: name, Parse: func(value string) (Predicate[T], error) {
		want, err := ParseDate(value)
		if err != nil {
			return nil, err
		}
		return func(row T) bool {
			y1, m1, d1 := get(row).Date()
			y2, m2, d2 := want.Date()
			return y1 == y2 && m1 == m2 && d1 == d2
		}, nil
	}}
}

// ParseDate parses value with the first matching layout of DateLayouts.
func ParseDate(value string) (time.Time, error) {
	for _, layout := range DateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("date %q is neither YYYY-MM-DD nor D.M.YYYY", value)
}
