// Package migrations embeds the SQL migration files in this directory.
// The golang-migrate library reads them via the iofs driver when applying
// migrations.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS

// Version is the schema version the application expects.
const Version = 1
