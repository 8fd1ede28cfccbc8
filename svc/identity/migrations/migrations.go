// Package migrations embeds the account schema.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
