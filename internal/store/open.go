package store

import (
	"fmt"
	"strings"
)

const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Open creates the named backend. path is ignored for the memory backend.
func Open(kind string, path string) (Backend, error) {
	switch strings.ToLower(kind) {
	case BackendFile, "":
		return NewFileBackend(path)
	case BackendSQLite:
		return NewSQLiteBackend(path)
	case BackendMemory:
		return NewMemoryBackend(), nil
	default:
		return nil, fmt.Errorf("unknown store backend: %s", kind)
	}
}
