// Package scripts embeds the versioned SQL migrations. MySQL scripts are
// goose files; PostgreSQL scripts follow the golang-migrate up/down layout.
package scripts

import "embed"

//go:embed mysql/*.sql
var MySQL embed.FS

//go:embed postgres/*.sql
var Postgres embed.FS
