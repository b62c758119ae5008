package fop

// CountAll requests COUNT(*) in Aggregate.Count.
const CountAll Field = "_all"

// AggregateFn names an aggregate for Having clauses.
type AggregateFn string

const (
	AggCount AggregateFn = "_count"
	AggAvg   AggregateFn = "_avg"
	AggSum   AggregateFn = "_sum"
	AggMin   AggregateFn = "_min"
	AggMax   AggregateFn = "_max"
)

// Aggregate selects the aggregates to compute.
type Aggregate struct {
	Count []Field
	Avg   []Field
	Sum   []Field
	Min   []Field
	Max   []Field
}

// Empty reports whether no aggregate was requested.
func (a Aggregate) Empty() bool {
	return len(a.Count)+len(a.Avg)+len(a.Sum)+len(a.Min)+len(a.Max) == 0
}

// AggregateResult holds computed aggregates keyed by field. Avg is nil for
// fields with no non-null values; Sum, Min and Max keep the driver's type.
type AggregateResult struct {
	Count map[Field]int64
	Avg   map[Field]*float64
	Sum   map[Field]any
	Min   map[Field]any
	Max   map[Field]any
}

// SumInt returns Sum[f] as an int64, or 0 when absent.
func (r AggregateResult) SumInt(f Field) int64 {
	switch v := r.Sum[f].(type) {
	case int64:
		return v
	case int32:
		return int64(v)
	case int:
		return int64(v)
	default:
		return 0
	}
}

// Having filters groups on an aggregate of a field. Field is ignored for
// AggCount when set to CountAll.
type Having struct {
	Aggregate AggregateFn
	Field     Field
	Filter    FloatFilter
}

// GroupBy is the argument of groupBy.
type GroupBy[W any] struct {
	By        []Field
	Where     W
	Having    []Having
	OrderBy   []Order
	Take      *int
	Skip      int
	Aggregate Aggregate
}

// GroupRow is one group: the by-field values plus the requested aggregates.
type GroupRow struct {
	Keys map[Field]any
	AggregateResult
}
