// Package uuid generates the time-ordered identifiers used for transactions
// and SQL rows.
package uuid

import (
	"time"

	googleuuid "github.com/google/uuid"
)

// New generates a UUIDv7 string. Ids created later sort after earlier ones,
// which keeps trade logs and ledger rows in creation order.
// A random UUIDv4 is returned if the v7 generator fails.
func New() string {
	id, err := googleuuid.NewV7()
	if err != nil {
		return googleuuid.NewString()
	}
	return id.String()
}

// Time returns the millisecond timestamp embedded in a UUIDv7.
// ok is false for malformed ids or other versions.
func Time(s string) (t time.Time, ok bool) {
	id, err := googleuuid.Parse(s)
	if err != nil || id.Version() != 7 {
		return time.Time{}, false
	}
	sec, nsec := id.Time().UnixTime()
	return time.Unix(sec, nsec).UTC(), true
}

// Parse validates and parses a UUID string
func Parse(s string) (string, error) {
	parsed, err := googleuuid.Parse(s)
	if err != nil {
		return "", err
	}
	return parsed.String(), nil
}

// IsValid checks if a string is a valid UUID
func IsValid(s string) bool {
	_, err := googleuuid.Parse(s)
	return err == nil
}
