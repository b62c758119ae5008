package postgresdb

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/alisideas/bookshare/core/scaffolding/fop"
)

// aggregateAlias names an aggregate output column, e.g. "_sum:stock".
func aggregateAlias(fn fop.AggregateFn, f fop.Field) string {
	return `"` + string(fn) + ":" + string(f) + `"`
}

func (s *Store[T, C, U, W, WU]) aggregateExpr(fn fop.AggregateFn, f fop.Field) (string, error) {
	if fn == fop.AggCount && (f == fop.CountAll || f == "") {
		return "COUNT(*)", nil
	}
	quoted, err := s.field(f)
	if err != nil {
		return "", err
	}
	switch fn {
	case fop.AggCount:
		return "COUNT(" + quoted + ")", nil
	case fop.AggAvg:
		return "AVG(" + quoted + ")::float8", nil
	case fop.AggSum:
		return "SUM(" + quoted + ")", nil
	case fop.AggMin:
		return "MIN(" + quoted + ")", nil
	case fop.AggMax:
		return "MAX(" + quoted + ")", nil
	}
	return "", fmt.Errorf("%w: unknown aggregate %q", ErrInvalidQuery, fn)
}

func (s *Store[T, C, U, W, WU]) aggregateSelect(agg fop.Aggregate) ([]string, error) {
	groups := []struct {
		fn     fop.AggregateFn
		fields []fop.Field
	}{
		{fop.AggCount, agg.Count},
		{fop.AggAvg, agg.Avg},
		{fop.AggSum, agg.Sum},
		{fop.AggMin, agg.Min},
		{fop.AggMax, agg.Max},
	}

	var sel []string
	for _, g := range groups {
		for _, f := range g.fields {
			if f == "" && g.fn == fop.AggCount {
				f = fop.CountAll
			}
			expr, err := s.aggregateExpr(g.fn, f)
			if err != nil {
				return nil, err
			}
			sel = append(sel, expr+" AS "+aggregateAlias(g.fn, f))
		}
	}
	return sel, nil
}

// splitAggregates moves the aggregate columns of row into a result and
// returns the remaining columns.
func splitAggregates(row map[string]any) (fop.AggregateResult, map[fop.Field]any) {
	res := fop.AggregateResult{
		Count: map[fop.Field]int64{},
		Avg:   map[fop.Field]*float64{},
		Sum:   map[fop.Field]any{},
		Min:   map[fop.Field]any{},
		Max:   map[fop.Field]any{},
	}
	rest := map[fop.Field]any{}

	for k, v := range row {
		fn, f, ok := strings.Cut(k, ":")
		if !ok {
			rest[fop.Field(k)] = v
			continue
		}
		field := fop.Field(f)
		switch fop.AggregateFn(fn) {
		case fop.AggCount:
			n, _ := v.(int64)
			res.Count[field] = n
		case fop.AggAvg:
			if avg, ok := v.(float64); ok {
				res.Avg[field] = &avg
			} else {
				res.Avg[field] = nil
			}
		case fop.AggSum:
			res.Sum[field] = v
		case fop.AggMin:
			res.Min[field] = v
		case fop.AggMax:
			res.Max[field] = v
		default:
			rest[fop.Field(k)] = v
		}
	}
	return res, rest
}

// Aggregate computes the requested aggregates over rows matching filter.
func (s *Store[T, C, U, W, WU]) Aggregate(ctx context.Context, filter W, agg fop.Aggregate) (fop.AggregateResult, error) {
	if agg.Empty() {
		return fop.AggregateResult{}, fmt.Errorf("%w: no aggregate requested", ErrInvalidQuery)
	}
	args := NewArgs()
	w, err := s.where(args, filter)
	if err != nil {
		return fop.AggregateResult{}, err
	}
	sel, err := s.aggregateSelect(agg)
	if err != nil {
		return fop.AggregateResult{}, err
	}

	query := "SELECT " + strings.Join(sel, ", ") + " FROM " + s.tableName() + w.Clause()
	rows, err := s.db.Query(ctx, query, args.Named())
	if err != nil {
		return fop.AggregateResult{}, HandlePgError(err)
	}
	defer rows.Close()

	row, err := pgx.CollectOneRow(rows, pgx.RowToMap)
	if err != nil {
		return fop.AggregateResult{}, HandlePgError(err)
	}
	res, _ := splitAggregates(row)
	return res, nil
}

// GroupBy groups rows matching the filter by the given fields and computes
// the aggregates per group. Ordering is limited to the grouped fields.
func (s *Store[T, C, U, W, WU]) GroupBy(ctx context.Context, g fop.GroupBy[W]) ([]fop.GroupRow, error) {
	if len(g.By) == 0 {
		return nil, fmt.Errorf("%w: groupBy needs at least one field", ErrInvalidQuery)
	}

	args := NewArgs()
	w, err := s.where(args, g.Where)
	if err != nil {
		return nil, err
	}

	by := make([]string, len(g.By))
	for i, f := range g.By {
		quoted, err := s.field(f)
		if err != nil {
			return nil, err
		}
		by[i] = quoted
	}
	sel, err := s.aggregateSelect(g.Aggregate)
	if err != nil {
		return nil, err
	}

	having := NewWhere(args)
	for _, h := range g.Having {
		expr, err := s.aggregateExpr(h.Aggregate, h.Field)
		if err != nil {
			return nil, err
		}
		having.Float("("+expr+")::float8", &h.Filter)
	}

	for _, o := range g.OrderBy {
		found := false
		for _, f := range g.By {
			found = found || f == o.Field
		}
		if !found {
			return nil, fmt.Errorf("%w: groupBy can only order by grouped field, got %s", ErrInvalidQuery, o.Field)
		}
	}

	var buf bytes.Buffer
	buf.WriteString("SELECT " + strings.Join(append(by, sel...), ", ") + " FROM " + s.tableName() + w.Clause())
	buf.WriteString(" GROUP BY " + strings.Join(by, ", "))
	if having.Len() > 0 {
		buf.WriteString(" HAVING " + having.SQL())
	}
	if err := AddOrderByClause(&buf, g.OrderBy); err != nil {
		return nil, err
	}
	AddLimitClause(&buf, args, g.Take, g.Skip)

	rows, err := s.db.Query(ctx, buf.String(), args.Named())
	if err != nil {
		return nil, HandlePgError(err)
	}
	defer rows.Close()

	maps, err := pgx.CollectRows(rows, pgx.RowToMap)
	if err != nil {
		return nil, HandlePgError(err)
	}

	groups := make([]fop.GroupRow, len(maps))
	for i, m := range maps {
		res, keys := splitAggregates(m)
		groups[i] = fop.GroupRow{Keys: keys, AggregateResult: res}
	}
	return groups, nil
}

// FindRaw runs a raw filter against the table and returns untyped rows.
func (s *Store[T, C, U, W, WU]) FindRaw(ctx context.Context, opts fop.RawFind) ([]map[string]any, error) {
	cols := "*"
	if len(opts.Projection) > 0 {
		quoted := make([]string, len(opts.Projection))
		for i, f := range opts.Projection {
			q, err := s.field(f)
			if err != nil {
				return nil, err
			}
			quoted[i] = q
		}
		cols = strings.Join(quoted, ", ")
	}

	var buf bytes.Buffer
	buf.WriteString("SELECT " + cols + " FROM " + s.tableName())
	if opts.Filter != "" {
		buf.WriteString(" WHERE " + opts.Filter)
	}
	if opts.OrderBy != "" {
		buf.WriteString(" ORDER BY " + opts.OrderBy)
	}
	if opts.Limit > 0 {
		fmt.Fprintf(&buf, " LIMIT %d", opts.Limit)
	}

	return QueryMaps(ctx, s.db, buf.String(), pgx.NamedArgs(opts.Args))
}

// AggregateRaw runs a raw aggregation pipeline against the table.
func (s *Store[T, C, U, W, WU]) AggregateRaw(ctx context.Context, p fop.RawPipeline) ([]map[string]any, error) {
	if p.Select == "" {
		return nil, fmt.Errorf("%w: aggregate pipeline needs a select stage", ErrInvalidQuery)
	}

	var buf bytes.Buffer
	buf.WriteString("SELECT " + p.Select + " FROM " + s.tableName())
	for _, stage := range []struct{ kw, sql string }{
		{" WHERE ", p.Where},
		{" GROUP BY ", p.GroupBy},
		{" HAVING ", p.Having},
		{" ORDER BY ", p.OrderBy},
	} {
		if stage.sql != "" {
			buf.WriteString(stage.kw + stage.sql)
		}
	}
	if p.Limit > 0 {
		fmt.Fprintf(&buf, " LIMIT %d", p.Limit)
	}

	return QueryMaps(ctx, s.db, buf.String(), pgx.NamedArgs(p.Args))
}
