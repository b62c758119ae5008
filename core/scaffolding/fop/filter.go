// Package fop holds the filter, order and page shapes shared by every model
// delegate and the SQL stores that compile them.
package fop

import "time"

// Field names a column of a model.
type Field string

// QueryMode selects case sensitivity for string comparisons.
type QueryMode string

const (
	ModeDefault     QueryMode = "default"
	ModeInsensitive QueryMode = "insensitive"
)

// ScalarFilter is the comparison/membership filter for ordered scalar types.
// Every set member must hold; Not negates the nested filter.
type ScalarFilter[T any] struct {
	Equals *T
	In     []T
	NotIn  []T
	Lt     *T
	Lte    *T
	Gt     *T
	Gte    *T
	Not    *ScalarFilter[T]
}

// NullableFilter adds a null check to ScalarFilter.
type NullableFilter[T any] struct {
	ScalarFilter[T]
	IsNull *bool
}

type (
	IntFilter              = ScalarFilter[int]
	IntNullableFilter      = NullableFilter[int]
	DateTimeFilter         = ScalarFilter[time.Time]
	DateTimeNullableFilter = NullableFilter[time.Time]
	FloatFilter            = ScalarFilter[float64]
)

// StringFilter extends the scalar operators with substring matching.
type StringFilter struct {
	Equals     *string
	In         []string
	NotIn      []string
	Lt         *string
	Lte        *string
	Gt         *string
	Gte        *string
	Contains   *string
	StartsWith *string
	EndsWith   *string
	Mode       QueryMode
	Not        *StringFilter
}

// StringNullableFilter adds a null check to StringFilter.
type StringNullableFilter struct {
	StringFilter
	IsNull *bool
}

// Eq builds an equality filter.
func Eq[T any](v T) *ScalarFilter[T] {
	return &ScalarFilter[T]{Equals: &v}
}

// In builds a membership filter.
func In[T any](vs ...T) *ScalarFilter[T] {
	return &ScalarFilter[T]{In: vs}
}

// Between builds an inclusive range filter.
func Between[T any](lo, hi T) *ScalarFilter[T] {
	return &ScalarFilter[T]{Gte: &lo, Lte: &hi}
}

// Before matches values strictly lower than v.
func Before[T any](v T) *ScalarFilter[T] {
	return &ScalarFilter[T]{Lt: &v}
}

// IsNull matches rows where a nullable column is NULL (or not, for false).
func IsNull[T any](null bool) *NullableFilter[T] {
	return &NullableFilter[T]{IsNull: &null}
}

// StringEquals builds a case-sensitive equality filter.
func StringEquals(v string) *StringFilter {
	return &StringFilter{Equals: &v}
}

// StringContains builds a substring filter.
func StringContains(v string, mode QueryMode) *StringFilter {
	return &StringFilter{Contains: &v, Mode: mode}
}

// StringStartsWith builds a prefix filter.
func StringStartsWith(v string, mode QueryMode) *StringFilter {
	return &StringFilter{StartsWith: &v, Mode: mode}
}

// NullableString builds a nullable equality filter.
func NullableString(v string) *StringNullableFilter {
	return &StringNullableFilter{StringFilter: StringFilter{Equals: &v}}
}

// StringIsNull matches NULL (or non-NULL, for false) string columns.
func StringIsNull(null bool) *StringNullableFilter {
	return &StringNullableFilter{IsNull: &null}
}

// StringIn builds a case-sensitive membership filter.
func StringIn(vs ...string) *StringFilter {
	return &StringFilter{In: vs}
}
