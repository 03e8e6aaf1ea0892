// Package schemas embeds the MySQL schema migrations for the foods mirror.
package schemas

import "embed"

// Migrations holds migrations/*.sql, applied in file name order.
//
//go:embed migrations/*.sql
var Migrations embed.FS
