// Package migrations carries the goose SQL migrations embedded into the
// binary so the schema travels with the server.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
