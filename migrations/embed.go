// Package migrations embebe los scripts SQL de esquema para aplicarlos en el
// arranque con golang-migrate.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
