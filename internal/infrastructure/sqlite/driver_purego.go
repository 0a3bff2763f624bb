//go:build !cgo_sqlite
// +build !cgo_sqlite

package sqlite

// Default build: pure Go SQLite, no C compiler required.
//
//	CGO_ENABLED=0 go build ./...
//
// Driver used: modernc.org/sqlite

import (
	_ "modernc.org/sqlite"
)

// DriverName is the database/sql driver to open.
const DriverName = "sqlite"
