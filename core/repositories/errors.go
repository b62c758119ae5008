package repositories

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorFormat controls how StoreError and NotFoundError render.
type ErrorFormat string

const (
	// FormatPretty prefixes the failing call, highlighted for terminals.
	FormatPretty ErrorFormat = "pretty"
	// FormatColorless prefixes the failing call without escape codes.
	FormatColorless ErrorFormat = "colorless"
	// FormatMinimal renders only the underlying message.
	FormatMinimal ErrorFormat = "minimal"
)

// ParseErrorFormat accepts pretty, colorless or minimal; "" means colorless.
func ParseErrorFormat(s string) (ErrorFormat, error) {
	switch ErrorFormat(strings.ToLower(s)) {
	case "", FormatColorless:
		return FormatColorless, nil
	case FormatPretty:
		return FormatPretty, nil
	case FormatMinimal:
		return FormatMinimal, nil
	}
	return "", fmt.Errorf("unknown error format %q", s)
}

// ErrorKind classifies a StoreError.
type ErrorKind string

const (
	KindValidation  ErrorKind = "validation"
	KindUnique      ErrorKind = "unique"
	KindForeignKey  ErrorKind = "foreign_key"
	KindConnection  ErrorKind = "connection"
	KindRaw         ErrorKind = "raw"
	KindTransaction ErrorKind = "transaction"
	KindUnknown     ErrorKind = "unknown"
)

// KindOf classifies err, using fallback for unrecognised failures.
func KindOf(err error, fallback ErrorKind) ErrorKind {
	switch {
	case errors.Is(err, ErrInvalidInput):
		return KindValidation
	case errors.Is(err, ErrUniqueViolation):
		return KindUnique
	case errors.Is(err, ErrForeignKeyViolation):
		return KindForeignKey
	case errors.Is(err, ErrConnection):
		return KindConnection
	case errors.Is(err, ErrTransaction):
		return KindTransaction
	}
	return fallback
}

func invocation(format ErrorFormat, model, operation string) string {
	call := fmt.Sprintf("Invalid `%s.%s()` invocation", lowerFirst(model), operation)
	if format == FormatPretty {
		return "\x1b[31m" + call + "\x1b[0m"
	}
	return call
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

// NotFoundError is returned by the OrThrow finders and by update/delete when
// the targeted row does not exist.
type NotFoundError struct {
	Model     string
	Operation string
	Format    ErrorFormat
}

func (e *NotFoundError) Error() string {
	msg := fmt.Sprintf("no %s record found", e.Model)
	if e.Format == FormatMinimal {
		return msg
	}
	return invocation(e.Format, e.Model, e.Operation) + ": " + msg
}

// Is reports ErrNotFound.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// StoreError wraps a storage failure with the operation it came from.
type StoreError struct {
	Model     string
	Operation string
	Kind      ErrorKind
	Err       error
	Format    ErrorFormat
}

func (e *StoreError) Error() string {
	if e.Format == FormatMinimal {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %s: %v", invocation(e.Format, e.Model, e.Operation), e.Kind, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is, or wraps, a not-found failure.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsUniqueViolation reports whether err is a unique constraint failure.
func IsUniqueViolation(err error) bool {
	var se *StoreError
	return errors.As(err, &se) && se.Kind == KindUnique
}

// IsForeignKeyViolation reports whether err is a foreign key failure.
func IsForeignKeyViolation(err error) bool {
	var se *StoreError
	return errors.As(err, &se) && se.Kind == KindForeignKey
}

// IsValidation reports whether err rejected its input.
func IsValidation(err error) bool {
	var se *StoreError
	return errors.As(err, &se) && se.Kind == KindValidation
}
