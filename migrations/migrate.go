package migrations

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed postgres/*.sql sqlite/*.sql
var embedMigrations embed.FS

// Migrate applies every embedded migration for the given driver.
// The driver name doubles as the goose dialect ("pgx" or "sqlite3").
func Migrate(db *sql.DB, driver string) error {
	if db == nil {
		return fmt.Errorf("migration error: db is nil")
	}

	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect(driver); err != nil {
		return fmt.Errorf("migration error setting dialect for db: %w", err)
	}

	if err := goose.Up(db, migrationsDir(driver)); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}

// migrationsDir maps a driver name to its embedded migrations directory.
// The schemas are equivalent; only the autoincrement syntax differs.
func migrationsDir(driver string) string {
	if driver == "sqlite3" {
		return "sqlite"
	}

	return "postgres"
}
