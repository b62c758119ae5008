package transactionrepo

import (
	"time"

	"github.com/alisideas/bookshare/core/scaffolding/fop"
)

// Model is the delegate name used in errors.
const Model = "Transaction"

// Fields of Transaction.
const (
	FieldID         fop.Field = "id"
	FieldBookID     fop.Field = "book_id"
	FieldUserID     fop.Field = "user_id"
	FieldIssueDate  fop.Field = "issue_date"
	FieldReturnDate fop.Field = "return_date"
	FieldStatus     fop.Field = "status"
	FieldCreatedAt  fop.Field = "created_at"
	FieldUpdatedAt  fop.Field = "updated_at"
)

// Status values written by the lending flow. The column accepts any text.
const (
	StatusBorrowed = "borrowed"
	StatusReturned = "returned"
)

// Transaction records one borrow of a book by a user. ReturnDate stays nil
// until the book is returned.
type Transaction struct {
	ID         string     `db:"id" json:"id"`
	BookID     string     `db:"book_id" json:"bookId"`
	UserID     string     `db:"user_id" json:"userId"`
	IssueDate  time.Time  `db:"issue_date" json:"issueDate"`
	ReturnDate *time.Time `db:"return_date" json:"returnDate"`
	Status     string     `db:"status" json:"status"`
	CreatedAt  time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt  time.Time  `db:"updated_at" json:"updatedAt"`
}

type CreateTransaction struct {
	ID         string     `db:"id" yaml:"id"`
	BookID     string     `db:"book_id" yaml:"bookId" validate:"required"`
	UserID     string     `db:"user_id" yaml:"userId" validate:"required"`
	IssueDate  *time.Time `db:"issue_date" yaml:"issueDate"`
	ReturnDate *time.Time `db:"return_date" yaml:"returnDate"`
	Status     string     `db:"status" yaml:"status" validate:"required"`
}

type UpdateTransaction struct {
	BookID     *string
	UserID     *string
	IssueDate  *time.Time
	ReturnDate *fop.Nullable[time.Time]
	Status     *string
}

type Where struct {
	ID         *fop.StringFilter
	BookID     *fop.StringFilter
	UserID     *fop.StringFilter
	IssueDate  *fop.DateTimeFilter
	ReturnDate *fop.DateTimeNullableFilter
	Status     *fop.StringFilter
	CreatedAt  *fop.DateTimeFilter
	UpdatedAt  *fop.DateTimeFilter

	AND []Where
	OR  []Where
	NOT []Where
}

type WhereUnique struct {
	ID *string
}

func ByID(id string) WhereUnique { return WhereUnique{ID: &id} }

type (
	Query   = fop.Query[Where, WhereUnique]
	GroupBy = fop.GroupBy[Where]
)
