package utils

import "github.com/google/uuid"

// NewUUID returns a time-ordered UUIDv7 string. V7 identifiers sort by
// creation time, which keeps the id a usable tie-breaker when two records
// share a createdAt instant. Falls back to a random v4 if v7 generation
// fails.
func NewUUID() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return v7.String()
}
