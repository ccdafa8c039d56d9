package model

import (
	"crypto/rand"

	"github.com/oklog/ulid/v2"
)

// NewID generates a new lexicographically sortable unique identifier.
func NewID() string {
	return ulid.MustNew(ulid.Now(), rand.Reader).String()
}

// ParseID validates that s is a well-formed identifier.
func ParseID(s string) (string, error) {
	id, err := ulid.ParseStrict(s)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
