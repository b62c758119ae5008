package postgresdb

import (
	"strings"

	"github.com/alisideas/bookshare/core/scaffolding/fop"
)

// Values is the ordered column list of an INSERT row.
type Values struct {
	cols []string
	vals map[string]any
}

func NewValues() *Values {
	return &Values{vals: map[string]any{}}
}

// Set writes col. Setting a column twice keeps the position of the first.
func (v *Values) Set(col string, val any) {
	if _, ok := v.vals[col]; !ok {
		v.cols = append(v.cols, col)
	}
	v.vals[col] = val
}

// Get returns the value of col.
func (v *Values) Get(col string) (any, bool) {
	val, ok := v.vals[col]
	return val, ok
}

// Columns returns the set columns in insertion order.
func (v *Values) Columns() []string {
	return v.cols
}

// SetOpt writes col only when p is non-nil, leaving the column default
// otherwise.
func SetOpt[T any](v *Values, col string, p *T) {
	if p != nil {
		v.Set(col, *p)
	}
}

// Assignments is the SET list of an UPDATE.
type Assignments struct {
	args  *Args
	parts []string
	cols  map[string]bool
	err   error
}

func NewAssignments(args *Args) *Assignments {
	return &Assignments{args: args, cols: map[string]bool{}}
}

func (a *Assignments) add(col string, expr func(string) string) {
	q, err := QuoteIdentifier(col)
	if err != nil {
		if a.err == nil {
			a.err = err
		}
		return
	}
	a.parts = append(a.parts, q+" = "+expr(q))
	a.cols[col] = true
}

// Set writes v to col.
func (a *Assignments) Set(col string, v any) {
	p := a.args.Bind(v)
	a.add(col, func(string) string { return p })
}

// Now sets col to the current timestamp.
func (a *Assignments) Now(col string) {
	a.add(col, func(string) string { return "now()" })
}

// Int applies an atomic integer update.
func (a *Assignments) Int(col string, u *fop.IntUpdate) {
	if u == nil {
		return
	}
	var op string
	var n int
	switch {
	case u.Set != nil:
		a.Set(col, *u.Set)
		return
	case u.Increment != nil:
		op, n = "+", *u.Increment
	case u.Decrement != nil:
		op, n = "-", *u.Decrement
	case u.Multiply != nil:
		op, n = "*", *u.Multiply
	case u.Divide != nil:
		op, n = "/", *u.Divide
	default:
		return
	}
	p := a.args.Bind(n)
	a.add(col, func(q string) string { return q + " " + op + " " + p })
}

// Len is the number of assignments.
func (a *Assignments) Len() int {
	return len(a.parts)
}

// Clause renders the SET list.
func (a *Assignments) Clause() string {
	return strings.Join(a.parts, ", ")
}

// Has reports whether col is assigned.
func (a *Assignments) Has(col string) bool {
	return a.cols[col]
}

// Err returns the first invalid column.
func (a *Assignments) Err() error {
	return a.err
}

// Assign writes *p to col when p is non-nil.
func Assign[T any](a *Assignments, col string, p *T) {
	if p != nil {
		a.Set(col, *p)
	}
}

// AssignNullable writes the value or NULL when n is non-nil.
func AssignNullable[T any](a *Assignments, col string, n *fop.Nullable[T]) {
	if n == nil {
		return
	}
	if n.Null {
		a.Set(col, nil)
		return
	}
	a.Set(col, n.Value)
}
