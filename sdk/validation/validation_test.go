package validation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alisideas/bookshare/sdk/validation"
)

type createThing struct {
	Title    string  `db:"title" validate:"required"`
	OwnerID  string  `db:"owner_id" validate:"required"`
	Subtitle *string `db:"subtitle"`
}

func TestValidateReportsColumns(t *testing.T) {
	err := validation.Default().Validate(createThing{Title: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "owner_id")
	assert.NotContains(t, err.Error(), "title")

	assert.NoError(t, validation.Default().Validate(createThing{Title: "x", OwnerID: "u1"}))
}

func TestPtrHelpers(t *testing.T) {
	assert.Equal(t, 3, *validation.Ptr(3))
	assert.Nil(t, validation.StringPtrIfNotEmpty(""))
	assert.Equal(t, "a", *validation.StringPtrIfNotEmpty("a"))
	assert.Equal(t, "", validation.GetStringOrEmpty(nil))
	assert.False(t, validation.GetTimeOrNow(nil).IsZero())
}
