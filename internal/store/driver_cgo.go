//go:build cgo

package store

// CGO SQLite driver, registered as "sqlite3". Only linked into cgo builds.
import _ "github.com/mattn/go-sqlite3"
