// Package migrations embeds the golang-migrate schema files.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
