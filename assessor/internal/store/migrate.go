package store

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrate применяет все ожидающие миграции хранилища. dsn может быть
// URL postgres:// или строкой key=value, то есть всем, что принимает lib/pq.
// Отсутствие новых миграций ошибкой не считается.
func Migrate(dsn string) error {
	// Драйвер миграций закрывает своё подключение, поэтому открываем отдельное
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return fmt.Errorf("store: open migration connection: %w", err)
	}
	return migrateDB(db)
}

// migrateDB прогоняет миграции через db и закрывает его.
func migrateDB(db *sql.DB) error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		db.Close()
		return fmt.Errorf("store: open migrations: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		db.Close()
		return fmt.Errorf("store: create migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		driver.Close()
		return fmt.Errorf("store: create migrator: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("store: run migrations up: %w", err)
	}

	return nil
}
