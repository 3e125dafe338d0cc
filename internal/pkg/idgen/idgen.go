// Package idgen issues record identifiers.
//
// IDs are UUIDv7 strings: time ordered, and unique even when many records are
// created within the same millisecond (batch generation does exactly that).
package idgen

import "github.com/google/uuid"

// New returns a fresh identifier.
func New() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
