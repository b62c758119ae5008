package postgresdb

import (
	"fmt"
	"regexp"
	"strings"
)

var identifierPattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// QuoteIdentifier validates and quotes a column or table name, optionally
// schema qualified. Anything but letters, digits and underscores is rejected.
func QuoteIdentifier(name string) (string, error) {
	segments := strings.Split(name, ".")
	if len(segments) > 2 {
		return "", fmt.Errorf("%w: too many segments in identifier %q", ErrInvalidQuery, name)
	}

	quoted := make([]string, len(segments))
	for i, segment := range segments {
		if !identifierPattern.MatchString(segment) {
			return "", fmt.Errorf("%w: invalid identifier %q", ErrInvalidQuery, name)
		}
		quoted[i] = `"` + segment + `"`
	}

	return strings.Join(quoted, "."), nil
}

// MustQuoteIdentifier is QuoteIdentifier for names fixed at compile time.
func MustQuoteIdentifier(name string) string {
	q, err := QuoteIdentifier(name)
	if err != nil {
		panic(err)
	}
	return q
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike escapes LIKE wildcards so v matches literally.
func EscapeLike(v string) string {
	return likeEscaper.Replace(v)
}
