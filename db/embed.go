// Package db embeds the goose migrations of the directory service, one
// directory per SQL dialect.
package db

import "embed"

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var Migrations embed.FS

// MigrationsDir returns the embedded directory holding dialect's migrations.
func MigrationsDir(dialect string) string {
	if dialect == "sqlite3" {
		return "migrations/sqlite"
	}
	return "migrations/postgres"
}
