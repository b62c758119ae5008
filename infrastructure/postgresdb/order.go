package postgresdb

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/alisideas/bookshare/core/scaffolding/fop"
)

// cursorAlias names the CTE holding the cursor row.
const cursorAlias = "cursor_row"

func orderTerm(o fop.Order) (string, error) {
	quoted, err := QuoteIdentifier(string(o.Field))
	if err != nil {
		return "", fmt.Errorf("invalid order field name: %w", err)
	}

	dir := fop.ASC
	switch o.Direction {
	case "", fop.ASC:
	case fop.DESC:
		dir = fop.DESC
	default:
		return "", fmt.Errorf("%w: invalid direction %q", ErrInvalidQuery, o.Direction)
	}

	term := quoted + " " + string(dir)
	switch o.Nulls {
	case fop.NullsDefault:
	case fop.NullsFirst:
		term += " NULLS FIRST"
	case fop.NullsLast:
		term += " NULLS LAST"
	default:
		return "", fmt.Errorf("%w: invalid nulls order %q", ErrInvalidQuery, o.Nulls)
	}
	return term, nil
}

// AddOrderByClause writes " ORDER BY ..." for orders; nothing when empty.
func AddOrderByClause(buf *bytes.Buffer, orders []fop.Order) error {
	if len(orders) == 0 {
		return nil
	}

	terms := make([]string, len(orders))
	for i, o := range orders {
		term, err := orderTerm(o)
		if err != nil {
			return err
		}
		terms[i] = term
	}

	buf.WriteString(" ORDER BY ")
	buf.WriteString(strings.Join(terms, ", "))
	return nil
}

// AddLimitClause writes LIMIT/OFFSET; a nil take means no limit.
func AddLimitClause(buf *bytes.Buffer, args *Args, take *int, skip int) {
	if take != nil {
		n := *take
		if n < 0 {
			n = -n
		}
		buf.WriteString(" LIMIT " + args.Bind(n))
	}
	if skip > 0 {
		buf.WriteString(" OFFSET " + args.Bind(skip))
	}
}

// WithPrimaryKey appends pk ascending unless orders already sort on it, so
// every ordering is total.
func WithPrimaryKey(orders []fop.Order, pk string) []fop.Order {
	for _, o := range orders {
		if string(o.Field) == pk {
			return orders
		}
	}
	out := make([]fop.Order, len(orders), len(orders)+1)
	copy(out, orders)
	return append(out, fop.Asc(fop.Field(pk)))
}

// ReverseOrders flips every term.
func ReverseOrders(orders []fop.Order) []fop.Order {
	out := make([]fop.Order, len(orders))
	for i, o := range orders {
		out[i] = o.Reverse()
	}
	return out
}

// CursorCondition selects the cursor row and every row after it in the given
// total order. Values come from the cursor_row CTE:
//
//	(a > c.a) OR (a = c.a AND b > c.b) OR ... OR (a = c.a AND ... AND z = c.z)
//
// Rows whose ordered columns are NULL never compare after the cursor.
func CursorCondition(orders []fop.Order) (string, error) {
	if len(orders) == 0 {
		return "", fmt.Errorf("%w: cursor requires an ordering", ErrInvalidQuery)
	}

	cols := make([]string, len(orders))
	for i, o := range orders {
		quoted, err := QuoteIdentifier(string(o.Field))
		if err != nil {
			return "", fmt.Errorf("invalid cursor field name: %w", err)
		}
		cols[i] = quoted
	}
	value := func(i int) string {
		return fmt.Sprintf("(SELECT %s FROM %s)", cols[i], cursorAlias)
	}

	branches := make([]string, 0, len(orders)+1)
	for i, o := range orders {
		op := ">"
		if o.Direction == fop.DESC {
			op = "<"
		}
		parts := make([]string, 0, i+1)
		for j := 0; j < i; j++ {
			parts = append(parts, cols[j]+" = "+value(j))
		}
		parts = append(parts, cols[i]+" "+op+" "+value(i))
		branches = append(branches, "("+strings.Join(parts, " AND ")+")")
	}

	equal := make([]string, len(orders))
	for i := range orders {
		equal[i] = cols[i] + " = " + value(i)
	}
	branches = append(branches, "("+strings.Join(equal, " AND ")+")")

	return "(" + strings.Join(branches, " OR ") + ")", nil
}
