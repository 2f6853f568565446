// Package sql embeds the schema migrations applied by internal/db.
package sql

import "embed"

//go:embed migrations
var Migrations embed.FS
