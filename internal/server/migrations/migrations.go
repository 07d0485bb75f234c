// Package migrations embeds the goose SQL migrations for every supported
// store. Each dialect keeps its own directory.
package migrations

import "embed"

//go:embed postgres/*.sql sqlite/*.sql
var Migrations embed.FS
