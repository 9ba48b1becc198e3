package storage

import (
	"path/filepath"
	"strings"
)

// NewProvider selects a backend by file extension: .db and .sqlite get the
// SQLite store, everything else falls back to the JSON file store.
func NewProvider(path string) Provider {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return NewSQLiteStore(path)
	default:
		return NewJSONStore(path)
	}
}
