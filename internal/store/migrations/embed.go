// Package migrations embeds the SQL migration files so the store can run
// them through the goose programmatic API without a filesystem path at
// runtime.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
