package ids

import (
	"strings"

	"family-connect-go/internal/domain/apperr"
	"github.com/google/uuid"
)

func New() string {
	return uuid.NewString()
}

// Parse canonicalizes a client supplied id. Canonical form matters: pair ordering compares
// ids as strings and must agree with Postgres uuid ordering.
func Parse(field, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", apperr.Validation("%s is required", field)
	}
	parsed, err := uuid.Parse(value)
	if err != nil {
		return "", apperr.Validation("%s is not a valid id", field)
	}
	return parsed.String(), nil
}

// OrderedPair returns the two ids smaller first.
func OrderedPair(a, b string) (string, string) {
	if a < b {
		return a, b
	}
	return b, a
}
