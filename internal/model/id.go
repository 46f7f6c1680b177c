package model

import (
	"crypto/rand"
	"time"

	"github.com/oklog/ulid/v2"
)

// NewID returns a ULID: millisecond timestamp plus randomness, sortable
// by creation time. Collisions are improbable, not impossible.
func NewID() string {
	t := time.Now().UTC()
	entropy := ulid.Monotonic(rand.Reader, 0)
	return ulid.MustNew(ulid.Timestamp(t), entropy).String()
}

// Today returns the current date as a YYYY-MM-DD string, the format all
// borrow, request and resolution dates are stored in.
func Today() string {
	return time.Now().Format(time.DateOnly)
}
