// Package migrations embeds the SQL schema migrations for the history database.
package migrations

import "embed"

// FS holds the *.sql migration files.
//
//go:embed *.sql
var FS embed.FS
