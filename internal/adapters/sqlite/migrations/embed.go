// Package migrations embeds the SQLite schema of the annotation repository.
package migrations

import "embed"

// FS contains the embedded migrations, applied in file name order.
//
//go:embed *.sql
var FS embed.FS
