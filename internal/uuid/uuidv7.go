// Package uuid generates the identifiers the SDK assigns to new entities.
package uuid

import (
	"time"

	googleuuid "github.com/google/uuid"
)

// New returns a new UUIDv7 string. UUIDv7 ids sort by creation time, so
// transactions created by one client list in the order they were made.
func New() string {
	return newAt(time.Now())
}

// newAt stamps the Unix millisecond timestamp of now over the first 48 bits
// of a random UUID and marks it version 7 (RFC 9562). The random UUID already
// carries the RFC variant bits.
func newAt(now time.Time) string {
	id := googleuuid.New()

	ms := uint64(now.UnixMilli())
	for i := 0; i < 6; i++ {
		id[i] = byte(ms >> (40 - 8*i))
	}
	id[6] = (id[6] & 0x0f) | 0x70

	return id.String()
}

// IsValid checks if a string is a valid UUID
func IsValid(s string) bool {
	_, err := googleuuid.Parse(s)
	return err == nil
}

// Version returns the UUID version of s, or 0 if s is not a UUID.
func Version(s string) int {
	parsed, err := googleuuid.Parse(s)
	if err != nil {
		return 0
	}
	return int(parsed.Version())
}
