package postgres

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog/log"
)

// RunMigrations brings the accounts and transactions schema up to date.
func RunMigrations(databaseURL, migrationsPath string) error {
	return withMigrator(databaseURL, migrationsPath, func(m *migrate.Migrate) error {
		err := m.Up()
		if errors.Is(err, migrate.ErrNoChange) {
			log.Info().Msg("database migrations: no change")
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}

		logVersion(m, "database migrations: applied")
		return nil
	})
}

// RunMigrationsDown rolls back the most recent migration.
func RunMigrationsDown(databaseURL, migrationsPath string) error {
	return withMigrator(databaseURL, migrationsPath, func(m *migrate.Migrate) error {
		if err := m.Steps(-1); err != nil {
			return fmt.Errorf("failed to rollback migration: %w", err)
		}

		logVersion(m, "database migrations: rolled back")
		return nil
	})
}

func withMigrator(databaseURL, migrationsPath string, fn func(*migrate.Migrate) error) error {
	m, err := migrate.New("file://"+migrationsPath, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer m.Close()

	return fn(m)
}

func logVersion(m *migrate.Migrate, msg string) {
	version, dirty, err := m.Version()
	if err != nil {
		log.Info().Msg(msg)
		return
	}
	log.Info().Uint("version", version).Bool("dirty", dirty).Msg(msg)
}
