package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
)

// Up applies every pending embedded migration for dialect ("postgres" or
// "sqlite3").
func Up(ctx context.Context, sqlDB *sql.DB, dialect string) error {
	if err := prepare(dialect); err != nil {
		return err
	}
	if err := goose.UpContext(ctx, sqlDB, MigrationsDir(dialect)); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}

// Down rolls back the latest applied migration.
func Down(ctx context.Context, sqlDB *sql.DB, dialect string) error {
	if err := prepare(dialect); err != nil {
		return err
	}
	if err := goose.DownContext(ctx, sqlDB, MigrationsDir(dialect)); err != nil {
		return fmt.Errorf("goose down: %w", err)
	}
	return nil
}

func prepare(dialect string) error {
	goose.SetBaseFS(Migrations)
	goose.SetTableName("schema_migrations")
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("goose dialect %q: %w", dialect, err)
	}
	return nil
}
