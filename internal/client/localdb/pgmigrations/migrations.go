// Package pgmigrations embeds the SQL migrations of the Postgres storage.
package pgmigrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
