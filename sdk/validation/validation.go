// Package validation checks input structs against their `validate` tags and
// offers small pointer helpers for optional fields.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
)

// Validator wraps a shared validator/v10 instance.
type Validator struct {
	v *validator.Validate
}

var (
	defaultOnce sync.Once
	defaultV    *Validator
)

// New returns a validator that reports field names as their db column.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("db"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return &Validator{v: v}
}

// Default returns a process-wide validator.
func Default() *Validator {
	defaultOnce.Do(func() { defaultV = New() })
	return defaultV
}

// Validate checks s and flattens field failures into one error.
func (v *Validator) Validate(s any) error {
	err := v.v.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: failed %q", fe.Field(), fe.Tag()))
	}
	return errors.New(strings.Join(msgs, "; "))
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}

// StringPtrIfNotEmpty returns nil for the empty string.
func StringPtrIfNotEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// GetStringOrEmpty dereferences s, or returns "".
func GetStringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// GetTimeOrNow dereferences t in UTC, or returns the current UTC time.
func GetTimeOrNow(t *time.Time) time.Time {
	if t == nil {
		return time.Now().UTC()
	}
	return t.UTC()
}
