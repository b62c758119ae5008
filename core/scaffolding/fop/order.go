package fop

// Direction is a sort direction.
type Direction string

const (
	ASC  Direction = "ASC"
	DESC Direction = "DESC"
)

// NullsOrder places NULLs before or after other values.
type NullsOrder string

const (
	NullsDefault NullsOrder = ""
	NullsFirst   NullsOrder = "first"
	NullsLast    NullsOrder = "last"
)

// Order is one ORDER BY term.
type Order struct {
	Field     Field
	Direction Direction
	Nulls     NullsOrder
}

// Asc orders by f ascending.
func Asc(f Field) Order { return Order{Field: f, Direction: ASC} }

// Desc orders by f descending.
func Desc(f Field) Order { return Order{Field: f, Direction: DESC} }

// Reverse flips the direction and the nulls placement.
func (o Order) Reverse() Order {
	r := o
	if o.Direction == DESC {
		r.Direction = ASC
	} else {
		r.Direction = DESC
	}
	switch o.Nulls {
	case NullsFirst:
		r.Nulls = NullsLast
	case NullsLast:
		r.Nulls = NullsFirst
	}
	return r
}

// Query is the argument of findFirst/findMany. W is the model's filter type,
// WU its unique-key type.
//
// Cursor positions the page on the row matching the unique key (inclusive);
// a negative Take walks backwards from there. Distinct keeps the first row,
// in OrderBy order, of every distinct combination of the listed fields.
type Query[W any, WU any] struct {
	Where    W
	OrderBy  []Order
	Cursor   *WU
	Take     *int
	Skip     int
	Distinct []Field
	Omit     []Field
}

// Take is a helper for Query.Take.
func Take(n int) *int { return &n }
