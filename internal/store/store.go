package store

import (
	"errors"
	"fmt"
)

// Fixed keys for the three persisted collections.
const (
	KeyUsers  = "users"
	KeyGroups = "groups"
	KeyRoles  = "roles"
)

var Keys = []string{KeyUsers, KeyGroups, KeyRoles}

// ErrStoreUnavailable wraps every failed read or write against a backend.
var ErrStoreUnavailable = errors.New("store unavailable")

// Backend is a flat string key/value store. A missing key is reported with
// ok == false and is never an error.
type Backend interface {
	Get(key string) (value string, ok bool, err error)
	Set(key string, value string) error
	Remove(key string) error
	Close() error
}

// unavailable wraps err so callers can match it with errors.Is.
func unavailable(op string, key string, err error) error {
	return fmt.Errorf("%w: %s %q: %w", ErrStoreUnavailable, op, key, err)
}
