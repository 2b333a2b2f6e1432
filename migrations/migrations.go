// Package migrations embeds the schema migrations of every supported SQL dialect.
package migrations

import "embed"

// FS holds one directory of golang-migrate files per dialect.
//
//go:embed mysql/*.sql sqlite/*.sql
var FS embed.FS
