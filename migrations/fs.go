// Package migrations embeds the SQL schema migrations into the server binary.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
