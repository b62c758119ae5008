package postgresdb

import (
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/alisideas/bookshare/core/scaffolding/fop"
)

// Args collects the named arguments of one statement as p1, p2, ...
type Args struct {
	named pgx.NamedArgs
	n     int
}

func NewArgs() *Args {
	return &Args{named: pgx.NamedArgs{}}
}

// Bind registers v and returns its placeholder.
func (a *Args) Bind(v any) string {
	a.n++
	name := fmt.Sprintf("p%d", a.n)
	a.named[name] = v
	return "@" + name
}

// Named returns the collected arguments.
func (a *Args) Named() pgx.NamedArgs {
	return a.named
}

// Where accumulates conditions joined with AND. Values are always bound as
// arguments; column names go through QuoteIdentifier.
type Where struct {
	args  *Args
	conds []string
	err   error
}

func NewWhere(args *Args) *Where {
	return &Where{args: args}
}

func (w *Where) sub() *Where {
	return &Where{args: w.args}
}

func (w *Where) fail(err error) {
	if w.err == nil {
		w.err = err
	}
}

func (w *Where) quote(col string) (string, bool) {
	q, err := QuoteIdentifier(col)
	if err != nil {
		w.fail(err)
		return "", false
	}
	return q, true
}

// SQL returns the conditions joined with AND, or "" when there are none.
func (w *Where) SQL() string {
	return strings.Join(w.conds, " AND ")
}

// Clause returns " WHERE <conditions>" or "".
func (w *Where) Clause() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + w.SQL()
}

// Err returns the first compilation error.
func (w *Where) Err() error {
	return w.err
}

// Len is the number of top-level conditions.
func (w *Where) Len() int {
	return len(w.conds)
}

// Raw appends a literal condition.
func (w *Where) Raw(cond string) {
	w.conds = append(w.conds, cond)
}

// Equals appends col = v.
func (w *Where) Equals(col string, v any) {
	q, ok := w.quote(col)
	if !ok {
		return
	}
	w.conds = append(w.conds, q+" = "+w.args.Bind(v))
}

// String compiles a string filter on col.
func (w *Where) String(col string, f *fop.StringFilter) {
	if f == nil {
		return
	}
	q, ok := w.quote(col)
	if !ok {
		return
	}
	w.conds = append(w.conds, stringConds(w.args, q, f)...)
}

// NullableString compiles a nullable string filter on col.
func (w *Where) NullableString(col string, f *fop.StringNullableFilter) {
	if f == nil {
		return
	}
	q, ok := w.quote(col)
	if !ok {
		return
	}
	w.conds = append(w.conds, nullConds(q, f.IsNull)...)
	w.conds = append(w.conds, stringConds(w.args, q, &f.StringFilter)...)
}

// Int compiles an integer filter on col.
func (w *Where) Int(col string, f *fop.IntFilter) {
	scalarColumn(w, col, f)
}

// NullableInt compiles a nullable integer filter on col.
func (w *Where) NullableInt(col string, f *fop.IntNullableFilter) {
	nullableColumn(w, col, f)
}

// Time compiles a timestamp filter on col.
func (w *Where) Time(col string, f *fop.DateTimeFilter) {
	scalarColumn(w, col, f)
}

// NullableTime compiles a nullable timestamp filter on col.
func (w *Where) NullableTime(col string, f *fop.DateTimeNullableFilter) {
	nullableColumn(w, col, f)
}

// Float compiles a float filter against a trusted SQL expression, such as an
// aggregate in a HAVING clause.
func (w *Where) Float(expr string, f *fop.FloatFilter) {
	if f == nil {
		return
	}
	w.conds = append(w.conds, scalarConds(w.args, expr, f)...)
}

// And requires every item to match.
func And[W any](w *Where, items []W, compile func(W, *Where)) {
	for _, it := range items {
		sub := w.sub()
		compile(it, sub)
		w.merge(sub)
		if sub.Len() > 0 {
			w.conds = append(w.conds, "("+sub.SQL()+")")
		}
	}
}

// Or requires at least one item to match. An item without conditions
// matches everything.
func Or[W any](w *Where, items []W, compile func(W, *Where)) {
	if len(items) == 0 {
		return
	}
	parts := make([]string, 0, len(items))
	for _, it := range items {
		sub := w.sub()
		compile(it, sub)
		w.merge(sub)
		if sub.Len() == 0 {
			parts = append(parts, "TRUE")
			continue
		}
		parts = append(parts, "("+sub.SQL()+")")
	}
	w.conds = append(w.conds, "("+strings.Join(parts, " OR ")+")")
}

// Not requires every item to not match.
func Not[W any](w *Where, items []W, compile func(W, *Where)) {
	for _, it := range items {
		sub := w.sub()
		compile(it, sub)
		w.merge(sub)
		if sub.Len() == 0 {
			w.conds = append(w.conds, "FALSE")
			continue
		}
		w.conds = append(w.conds, "NOT ("+sub.SQL()+")")
	}
}

func (w *Where) merge(sub *Where) {
	if sub.err != nil {
		w.fail(sub.err)
	}
}

func scalarColumn[T any](w *Where, col string, f *fop.ScalarFilter[T]) {
	if f == nil {
		return
	}
	q, ok := w.quote(col)
	if !ok {
		return
	}
	w.conds = append(w.conds, scalarConds(w.args, q, f)...)
}

func nullableColumn[T any](w *Where, col string, f *fop.NullableFilter[T]) {
	if f == nil {
		return
	}
	q, ok := w.quote(col)
	if !ok {
		return
	}
	w.conds = append(w.conds, nullConds(q, f.IsNull)...)
	w.conds = append(w.conds, scalarConds(w.args, q, &f.ScalarFilter)...)
}

func nullConds(expr string, isNull *bool) []string {
	if isNull == nil {
		return nil
	}
	if *isNull {
		return []string{expr + " IS NULL"}
	}
	return []string{expr + " IS NOT NULL"}
}

func scalarConds[T any](a *Args, expr string, f *fop.ScalarFilter[T]) []string {
	var conds []string
	if f.Equals != nil {
		conds = append(conds, expr+" = "+a.Bind(*f.Equals))
	}
	if f.In != nil {
		if len(f.In) == 0 {
			conds = append(conds, "FALSE")
		} else {
			conds = append(conds, expr+" = ANY("+a.Bind(f.In)+")")
		}
	}
	if len(f.NotIn) > 0 {
		conds = append(conds, "NOT ("+expr+" = ANY("+a.Bind(f.NotIn)+"))")
	}
	if f.Lt != nil {
		conds = append(conds, expr+" < "+a.Bind(*f.Lt))
	}
	if f.Lte != nil {
		conds = append(conds, expr+" <= "+a.Bind(*f.Lte))
	}
	if f.Gt != nil {
		conds = append(conds, expr+" > "+a.Bind(*f.Gt))
	}
	if f.Gte != nil {
		conds = append(conds, expr+" >= "+a.Bind(*f.Gte))
	}
	if f.Not != nil {
		if sub := scalarConds(a, expr, f.Not); len(sub) > 0 {
			conds = append(conds, "NOT ("+strings.Join(sub, " AND ")+")")
		}
	}
	return conds
}

func stringConds(a *Args, expr string, f *fop.StringFilter) []string {
	insensitive := f.Mode == fop.ModeInsensitive

	lhs := expr
	like := " LIKE "
	value := func(v string) string { return a.Bind(v) }
	if insensitive {
		lhs = "LOWER(" + expr + ")"
		like = " ILIKE "
		value = func(v string) string { return "LOWER(" + a.Bind(v) + ")" }
	}
	lowered := func(vs []string) []string {
		if !insensitive {
			return vs
		}
		out := make([]string, len(vs))
		for i, v := range vs {
			out[i] = strings.ToLower(v)
		}
		return out
	}

	var conds []string
	if f.Equals != nil {
		conds = append(conds, lhs+" = "+value(*f.Equals))
	}
	if f.In != nil {
		if len(f.In) == 0 {
			conds = append(conds, "FALSE")
		} else {
			conds = append(conds, lhs+" = ANY("+a.Bind(lowered(f.In))+")")
		}
	}
	if len(f.NotIn) > 0 {
		conds = append(conds, "NOT ("+lhs+" = ANY("+a.Bind(lowered(f.NotIn))+"))")
	}
	if f.Lt != nil {
		conds = append(conds, lhs+" < "+value(*f.Lt))
	}
	if f.Lte != nil {
		conds = append(conds, lhs+" <= "+value(*f.Lte))
	}
	if f.Gt != nil {
		conds = append(conds, lhs+" > "+value(*f.Gt))
	}
	if f.Gte != nil {
		conds = append(conds, lhs+" >= "+value(*f.Gte))
	}
	if f.Contains != nil {
		conds = append(conds, expr+like+a.Bind("%"+EscapeLike(*f.Contains)+"%"))
	}
	if f.StartsWith != nil {
		conds = append(conds, expr+like+a.Bind(EscapeLike(*f.StartsWith)+"%"))
	}
	if f.EndsWith != nil {
		conds = append(conds, expr+like+a.Bind("%"+EscapeLike(*f.EndsWith)))
	}
	if f.Not != nil {
		not := *f.Not
		if not.Mode == "" {
			not.Mode = f.Mode
		}
		if sub := stringConds(a, expr, &not); len(sub) > 0 {
			conds = append(conds, "NOT ("+strings.Join(sub, " AND ")+")")
		}
	}
	return conds
}
