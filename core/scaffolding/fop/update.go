package fop

// Nullable is an update value for a nullable column: either Value, or NULL.
// A nil *Nullable leaves the column untouched.
type Nullable[T any] struct {
	Value T
	Null  bool
}

// Set writes v.
func Set[T any](v T) *Nullable[T] {
	return &Nullable[T]{Value: v}
}

// SetNull writes NULL.
func SetNull[T any]() *Nullable[T] {
	return &Nullable[T]{Null: true}
}

// IntUpdate is an atomic update on an integer column. Exactly one member
// should be set; Set wins, then Increment, Decrement, Multiply, Divide.
type IntUpdate struct {
	Set       *int
	Increment *int
	Decrement *int
	Multiply  *int
	Divide    *int
}

// IntSet overwrites the column.
func IntSet(v int) *IntUpdate { return &IntUpdate{Set: &v} }

// IntIncrement adds n to the column.
func IntIncrement(n int) *IntUpdate { return &IntUpdate{Increment: &n} }

// IntDecrement subtracts n from the column.
func IntDecrement(n int) *IntUpdate { return &IntUpdate{Decrement: &n} }
