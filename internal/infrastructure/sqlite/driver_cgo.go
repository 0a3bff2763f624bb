//go:build cgo_sqlite
// +build cgo_sqlite

package sqlite

// Compiled when building with CGO and the cgo_sqlite tag:
//
//	CGO_ENABLED=1 go build -tags cgo_sqlite ./...
//
// Driver used: github.com/mattn/go-sqlite3

import (
	_ "github.com/mattn/go-sqlite3"
)

// DriverName is the database/sql driver to open.
const DriverName = "sqlite3"
