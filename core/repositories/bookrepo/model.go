package bookrepo

import (
	"time"

	"github.com/alisideas/bookshare/core/scaffolding/fop"
)

// Model is the delegate name used in errors.
const Model = "Book"

// Fields of Book.
const (
	FieldID          fop.Field = "id"
	FieldTitle       fop.Field = "title"
	FieldAuthor      fop.Field = "author"
	FieldCategory    fop.Field = "category"
	FieldStock       fop.Field = "stock"
	FieldTotal       fop.Field = "total"
	FieldCoverURL    fop.Field = "cover_url"
	FieldMaxDuration fop.Field = "max_duration"
	FieldDescription fop.Field = "description"
	FieldOwnerID     fop.Field = "owner_id"
	FieldCreatedAt   fop.Field = "created_at"
	FieldUpdatedAt   fop.Field = "updated_at"
)

// Book is a lending catalog item. Stock counts copies available to borrow
// out of Total.
type Book struct {
	ID          string    `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Author      string    `db:"author" json:"author"`
	Category    string    `db:"category" json:"category"`
	Stock       int       `db:"stock" json:"stock"`
	Total       int       `db:"total" json:"total"`
	CoverURL    string    `db:"cover_url" json:"coverUrl"`
	MaxDuration int       `db:"max_duration" json:"maxDuration"`
	Description string    `db:"description" json:"description"`
	OwnerID     string    `db:"owner_id" json:"ownerId"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}

type CreateBook struct {
	ID          string `db:"id" yaml:"id"`
	Title       string `db:"title" yaml:"title" validate:"required"`
	Author      string `db:"author" yaml:"author" validate:"required"`
	Category    string `db:"category" yaml:"category" validate:"required"`
	Stock       int    `db:"stock" yaml:"stock"`
	Total       int    `db:"total" yaml:"total"`
	CoverURL    string `db:"cover_url" yaml:"coverUrl"`
	MaxDuration int    `db:"max_duration" yaml:"maxDuration"`
	Description string `db:"description" yaml:"description"`
	OwnerID     string `db:"owner_id" yaml:"ownerId" validate:"required"`
}

type UpdateBook struct {
	Title       *string
	Author      *string
	Category    *string
	Stock       *fop.IntUpdate
	Total       *fop.IntUpdate
	CoverURL    *string
	MaxDuration *fop.IntUpdate
	Description *string
	OwnerID     *string
}

type Where struct {
	ID          *fop.StringFilter
	Title       *fop.StringFilter
	Author      *fop.StringFilter
	Category    *fop.StringFilter
	Stock       *fop.IntFilter
	Total       *fop.IntFilter
	CoverURL    *fop.StringFilter
	MaxDuration *fop.IntFilter
	Description *fop.StringFilter
	OwnerID     *fop.StringFilter
	CreatedAt   *fop.DateTimeFilter
	UpdatedAt   *fop.DateTimeFilter

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
