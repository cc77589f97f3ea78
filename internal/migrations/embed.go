// Package migrations embeds the goose SQL migrations for the directory
// schema (roles, users, and the membership join table).
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
