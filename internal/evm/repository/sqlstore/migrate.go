package sqlstore

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/goodnatureofminers/ledgersync/migrations"
)

// MigrateUp applies every pending schema migration of the dialect.
// It reports whether anything changed.
func MigrateUp(dialect Dialect, dsn string) (bool, error) {
	return runMigrations(dialect, dsn, (*migrate.Migrate).Up)
}

// MigrateDown reverts every applied schema migration of the dialect.
func MigrateDown(dialect Dialect, dsn string) (bool, error) {
	return runMigrations(dialect, dsn, (*migrate.Migrate).Down)
}

func runMigrations(dialect Dialect, dsn string, apply func(*migrate.Migrate) error) (changed bool, err error) {
	m, err := newMigrator(dialect, dsn)
	if err != nil {
		return false, err
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if err == nil {
			err = errors.Join(srcErr, dbErr)
		}
	}()

	if err = apply(m); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			return false, nil
		}
		return false, fmt.Errorf("apply %s migrations: %w", dialect, err)
	}
	return true, nil
}

func newMigrator(dialect Dialect, dsn string) (*migrate.Migrate, error) {
	if dsn == "" {
		return nil, errors.New("database dsn is required")
	}
	if err := dialect.Validate(); err != nil {
		return nil, err
	}

	src, err := iofs.New(migrations.FS, string(dialect))
	if err != nil {
		return nil, fmt.Errorf("load %s migrations: %w", dialect, err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, string(dialect)+"://"+dsn)
	if err != nil {
		_ = src.Close()
		return nil, fmt.Errorf("init migrate: %w", err)
	}
	return m, nil
}
