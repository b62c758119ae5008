package postgresdb

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/alisideas/bookshare/core/scaffolding/fop"
	"github.com/alisideas/bookshare/sdk/logger"
)

// maxParams stays below the protocol limit of 65535 bind parameters.
const maxParams = 60000

// Table describes how a model maps onto its table. T is the row type, C the
// create input, U the update input, W the filter and WU the unique filter.
type Table[T, C, U, W, WU any] struct {
	Model     string
	Name      string
	PK        string
	Columns   []string
	UpdatedAt string

	Insert func(C, *Values)
	Update func(U, *Assignments)
	Where  func(W, *Where)
	Unique func(WU, *Where)
}

// HasColumn reports whether col belongs to the table.
func (t Table[T, C, U, W, WU]) HasColumn(col string) bool {
	return slices.Contains(t.Columns, col)
}

// Store implements the delegate operations of one model over a Table.
type Store[T, C, U, W, WU any] struct {
	log   *logger.Logger
	db    DBTX
	table Table[T, C, U, W, WU]
	omit  []string
}

// NewStore builds a store; omit lists columns left out of every result.
func NewStore[T, C, U, W, WU any](log *logger.Logger, db DBTX, table Table[T, C, U, W, WU], omit ...string) *Store[T, C, U, W, WU] {
	return &Store[T, C, U, W, WU]{
		log:   log,
		db:    db,
		table: table,
		omit:  omit,
	}
}

// Table returns the table descriptor.
func (s *Store[T, C, U, W, WU]) Table() Table[T, C, U, W, WU] {
	return s.table
}

func (s *Store[T, C, U, W, WU]) tableName() string {
	return MustQuoteIdentifier(s.table.Name)
}

func (s *Store[T, C, U, W, WU]) field(f fop.Field) (string, error) {
	if !s.table.HasColumn(string(f)) {
		return "", fmt.Errorf("%w: unknown field %s.%s", ErrInvalidQuery, s.table.Model, f)
	}
	return QuoteIdentifier(string(f))
}

// selectList returns the quoted result columns minus omitted ones. The
// primary key is never omitted.
func (s *Store[T, C, U, W, WU]) selectList(omit []fop.Field) (string, error) {
	skip := map[string]bool{}
	for _, c := range s.omit {
		skip[c] = true
	}
	for _, f := range omit {
		if !s.table.HasColumn(string(f)) {
			return "", fmt.Errorf("%w: cannot omit unknown field %s.%s", ErrInvalidQuery, s.table.Model, f)
		}
		skip[string(f)] = true
	}

	cols := make([]string, 0, len(s.table.Columns))
	for _, c := range s.table.Columns {
		if skip[c] && c != s.table.PK {
			continue
		}
		cols = append(cols, MustQuoteIdentifier(c))
	}
	return strings.Join(cols, ", "), nil
}

func (s *Store[T, C, U, W, WU]) where(args *Args, filter W) (*Where, error) {
	w := NewWhere(args)
	if s.table.Where != nil {
		s.table.Where(filter, w)
	}
	return w, w.Err()
}

func (s *Store[T, C, U, W, WU]) unique(args *Args, key WU) (*Where, error) {
	w := NewWhere(args)
	s.table.Unique(key, w)
	if err := w.Err(); err != nil {
		return nil, err
	}
	if w.Len() == 0 {
		return nil, fmt.Errorf("%w: %s unique filter names no key", ErrInvalidQuery, s.table.Model)
	}
	return w, nil
}

func (s *Store[T, C, U, W, WU]) collectOne(ctx context.Context, query string, args pgx.NamedArgs) (T, error) {
	var zero T
	rows, err := s.db.Query(ctx, query, args)
	if err != nil {
		return zero, HandlePgError(err)
	}
	defer rows.Close()

	entity, err := pgx.CollectOneRow(rows, pgx.RowToStructByNameLax[T])
	if err != nil {
		return zero, HandlePgError(err)
	}
	return entity, nil
}

func (s *Store[T, C, U, W, WU]) collect(ctx context.Context, query string, args pgx.NamedArgs) ([]T, error) {
	rows, err := s.db.Query(ctx, query, args)
	if err != nil {
		return nil, HandlePgError(err)
	}
	defer rows.Close()

	entities, err := pgx.CollectRows(rows, pgx.RowToStructByNameLax[T])
	if err != nil {
		return nil, HandlePgError(err)
	}
	return entities, nil
}

// FindUnique returns the row matching the unique key or ErrDBNotFound.
func (s *Store[T, C, U, W, WU]) FindUnique(ctx context.Context, key WU, omit []fop.Field) (T, error) {
	var zero T
	args := NewArgs()
	w, err := s.unique(args, key)
	if err != nil {
		return zero, err
	}
	cols, err := s.selectList(omit)
	if err != nil {
		return zero, err
	}

	query := "SELECT " + cols + " FROM " + s.tableName() + w.Clause() + " LIMIT 1"
	return s.collectOne(ctx, query, args.Named())
}

// FindMany returns the rows selected by q. With a negative Take the page is
// read backwards and returned in the requested order.
func (s *Store[T, C, U, W, WU]) FindMany(ctx context.Context, q fop.Query[W, WU]) ([]T, error) {
	args := NewArgs()
	w, err := s.where(args, q.Where)
	if err != nil {
		return nil, err
	}
	cols, err := s.selectList(q.Omit)
	if err != nil {
		return nil, err
	}
	for _, o := range q.OrderBy {
		if _, err := s.field(o.Field); err != nil {
			return nil, err
		}
	}

	orders := WithPrimaryKey(q.OrderBy, s.table.PK)
	backwards := q.Take != nil && *q.Take < 0
	if backwards {
		orders = ReverseOrders(orders)
	}

	var buf bytes.Buffer
	var cursor string
	if q.Cursor != nil {
		cw, err := s.unique(args, *q.Cursor)
		if err != nil {
			return nil, err
		}
		buf.WriteString("WITH " + cursorAlias + " AS (SELECT * FROM " + s.tableName() + cw.Clause() + " LIMIT 1) ")
		if cursor, err = CursorCondition(orders); err != nil {
			return nil, err
		}
	}

	if len(q.Distinct) == 0 {
		if cursor != "" {
			w.Raw(cursor)
		}
		buf.WriteString("SELECT " + cols + " FROM " + s.tableName() + w.Clause())
	} else {
		on := make([]string, len(q.Distinct))
		inner := make([]fop.Order, 0, len(q.Distinct)+len(orders))
		for i, f := range q.Distinct {
			quoted, err := s.field(f)
			if err != nil {
				return nil, err
			}
			on[i] = quoted
			inner = append(inner, fop.Asc(f))
		}
		inner = append(inner, orders...)

		buf.WriteString("SELECT " + cols + " FROM (SELECT DISTINCT ON (" + strings.Join(on, ", ") + ") * FROM " + s.tableName() + w.Clause())
		if err := AddOrderByClause(&buf, inner); err != nil {
			return nil, err
		}
		buf.WriteString(") AS distinct_rows")
		if cursor != "" {
			buf.WriteString(" WHERE " + cursor)
		}
	}

	if err := AddOrderByClause(&buf, orders); err != nil {
		return nil, err
	}
	AddLimitClause(&buf, args, q.Take, q.Skip)

	entities, err := s.collect(ctx, buf.String(), args.Named())
	if err != nil {
		return nil, err
	}
	if backwards {
		slices.Reverse(entities)
	}
	return entities, nil
}

func (s *Store[T, C, U, W, WU]) values(input C) *Values {
	v := NewValues()
	s.table.Insert(input, v)
	if id, ok := v.Get(s.table.PK); !ok || id == "" {
		v.Set(s.table.PK, uuid.NewString())
	}
	return v
}

// Create inserts one row and returns it.
func (s *Store[T, C, U, W, WU]) Create(ctx context.Context, input C) (T, error) {
	var zero T
	v := s.values(input)
	cols, err := s.selectList(nil)
	if err != nil {
		return zero, err
	}

	args := NewArgs()
	names := make([]string, len(v.Columns()))
	params := make([]string, len(v.Columns()))
	for i, c := range v.Columns() {
		quoted, err := QuoteIdentifier(c)
		if err != nil {
			return zero, err
		}
		val, _ := v.Get(c)
		names[i] = quoted
		params[i] = args.Bind(val)
	}

	query := "INSERT INTO " + s.tableName() + " (" + strings.Join(names, ", ") + ") VALUES (" +
		strings.Join(params, ", ") + ") RETURNING " + cols
	return s.collectOne(ctx, query, args.Named())
}

// CreateMany inserts rows in as few statements as the parameter limit
// allows, atomically. With skipDuplicates rows violating a unique constraint
// are skipped. It returns the number of inserted rows.
func (s *Store[T, C, U, W, WU]) CreateMany(ctx context.Context, inputs []C, skipDuplicates bool) (int64, error) {
	if len(inputs) == 0 {
		return 0, nil
	}

	rows := make([]*Values, len(inputs))
	var cols []string
	for i, in := range inputs {
		rows[i] = s.values(in)
		for _, c := range rows[i].Columns() {
			if !slices.Contains(cols, c) {
				cols = append(cols, c)
			}
		}
	}

	names := make([]string, len(cols))
	for i, c := range cols {
		quoted, err := QuoteIdentifier(c)
		if err != nil {
			return 0, err
		}
		names[i] = quoted
	}

	perStatement := max(1, maxParams/len(cols))
	var chunks [][]*Values
	for start := 0; start < len(rows); start += perStatement {
		chunks = append(chunks, rows[start:min(start+perStatement, len(rows))])
	}

	insert := func(ctx context.Context, db DBTX, chunk []*Values) (int64, error) {
		args := NewArgs()
		var buf bytes.Buffer
		buf.WriteString("INSERT INTO " + s.tableName() + " (" + strings.Join(names, ", ") + ") VALUES ")
		for i, row := range chunk {
			if i > 0 {
				buf.WriteString(", ")
			}
			params := make([]string, len(cols))
			for j, c := range cols {
				val, ok := row.Get(c)
				if !ok {
					params[j] = "DEFAULT"
					continue
				}
				params[j] = args.Bind(val)
			}
			buf.WriteString("(" + strings.Join(params, ", ") + ")")
		}
		if skipDuplicates {
			buf.WriteString(" ON CONFLICT DO NOTHING")
		}

		tag, err := db.Exec(ctx, buf.String(), args.Named())
		if err != nil {
			return 0, HandlePgError(err)
		}
		return tag.RowsAffected(), nil
	}

	if len(chunks) == 1 {
		return insert(ctx, s.db, chunks[0])
	}

	var total int64
	err := InTx(ctx, s.db, func(ctx context.Context, tx DBTX) error {
		for _, chunk := range chunks {
			n, err := insert(ctx, tx, chunk)
			if err != nil {
				return err
			}
			total += n
		}
		return nil
	})
	return total, err
}

func (s *Store[T, C, U, W, WU]) assignments(args *Args, input U) (*Assignments, error) {
	a := NewAssignments(args)
	s.table.Update(input, a)
	if err := a.Err(); err != nil {
		return nil, err
	}
	if a.Len() > 0 && s.table.UpdatedAt != "" && !a.Has(s.table.UpdatedAt) {
		a.Now(s.table.UpdatedAt)
	}
	return a, nil
}

// Update changes the row matching the unique key and returns it, or
// ErrDBNotFound when no row matches.
func (s *Store[T, C, U, W, WU]) Update(ctx context.Context, key WU, input U) (T, error) {
	var zero T
	args := NewArgs()
	a, err := s.assignments(args, input)
	if err != nil {
		return zero, err
	}
	if a.Len() == 0 {
		return s.FindUnique(ctx, key, nil)
	}
	w, err := s.unique(args, key)
	if err != nil {
		return zero, err
	}
	cols, err := s.selectList(nil)
	if err != nil {
		return zero, err
	}

	query := "UPDATE " + s.tableName() + " SET " + a.Clause() + w.Clause() + " RETURNING " + cols
	return s.collectOne(ctx, query, args.Named())
}

// UpdateMany changes every row matching filter and returns the count.
func (s *Store[T, C, U, W, WU]) UpdateMany(ctx context.Context, filter W, input U) (int64, error) {
	args := NewArgs()
	a, err := s.assignments(args, input)
	if err != nil {
		return 0, err
	}
	if a.Len() == 0 {
		return s.Count(ctx, filter)
	}
	w, err := s.where(args, filter)
	if err != nil {
		return 0, err
	}

	query := "UPDATE " + s.tableName() + " SET " + a.Clause() + w.Clause()
	tag, err := s.db.Exec(ctx, query, args.Named())
	if err != nil {
		return 0, HandlePgError(err)
	}
	return tag.RowsAffected(), nil
}

// Upsert updates the row matching key, or creates it. A concurrent insert of
// the same key makes the create fail on the unique constraint; the update is
// then retried once.
func (s *Store[T, C, U, W, WU]) Upsert(ctx context.Context, key WU, create C, update U) (T, error) {
	entity, err := s.Update(ctx, key, update)
	if err == nil || !errors.Is(err, ErrDBNotFound) {
		return entity, err
	}

	err = InTx(ctx, s.db, func(ctx context.Context, tx DBTX) error {
		sub := *s
		sub.db = tx
		var err error
		entity, err = sub.Create(ctx, create)
		return err
	})
	if errors.Is(err, ErrDBDuplicatedEntry) {
		s.log.Warn("upsert lost insert race, retrying update", "model", s.table.Model)
		return s.Update(ctx, key, update)
	}
	return entity, err
}

// Delete removes the row matching key and returns it, or ErrDBNotFound.
func (s *Store[T, C, U, W, WU]) Delete(ctx context.Context, key WU) (T, error) {
	var zero T
	args := NewArgs()
	w, err := s.unique(args, key)
	if err != nil {
		return zero, err
	}
	cols, err := s.selectList(nil)
	if err != nil {
		return zero, err
	}

	query := "DELETE FROM " + s.tableName() + w.Clause() + " RETURNING " + cols
	return s.collectOne(ctx, query, args.Named())
}

// DeleteMany removes every row matching filter and returns the count.
func (s *Store[T, C, U, W, WU]) DeleteMany(ctx context.Context, filter W) (int64, error) {
	args := NewArgs()
	w, err := s.where(args, filter)
	if err != nil {
		return 0, err
	}

	tag, err := s.db.Exec(ctx, "DELETE FROM "+s.tableName()+w.Clause(), args.Named())
	if err != nil {
		return 0, HandlePgError(err)
	}
	return tag.RowsAffected(), nil
}

// Count returns the number of rows matching filter.
func (s *Store[T, C, U, W, WU]) Count(ctx context.Context, filter W) (int64, error) {
	args := NewArgs()
	w, err := s.where(args, filter)
	if err != nil {
		return 0, err
	}

	var n int64
	if err := s.db.QueryRow(ctx, "SELECT COUNT(*) FROM "+s.tableName()+w.Clause(), args.Named()).Scan(&n); err != nil {
		return 0, HandlePgError(err)
	}
	return n, nil
}
