package database

import (
    "embed"
    "errors"
    "fmt"

    "github.com/golang-migrate/migrate/v4"
    migratemysql "github.com/golang-migrate/migrate/v4/database/mysql"
    "github.com/golang-migrate/migrate/v4/source/iofs"
    "github.com/jmoiron/sqlx"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// MigrateMySQL applies every pending up migration.  Running it against
// an up-to-date schema is a no-op.
func MigrateMySQL(db *sqlx.DB) error {
    src, err := iofs.New(migrationFiles, "migrations")
    if err != nil {
        return fmt.Errorf("migrations source: %w", err)
    }
    driver, err := migratemysql.WithInstance(db.DB, &migratemysql.Config{})
    if err != nil {
        return fmt.Errorf("migrations driver: %w", err)
    }
    m, err := migrate.NewWithInstance("iofs", src, "mysql", driver)
    if err != nil {
        return fmt.Errorf("migrate: %w", err)
    }
    if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
        return fmt.Errorf("migrate up: %w", err)
    }
    return nil
}
