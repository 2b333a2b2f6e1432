// Package sqlstore persists normalized blocks and transactions in MySQL or SQLite.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Metrics interface {
		Observe(operation string, err error, started time.Time)
	}
)

// Dialect selects the SQL database flavor.
type Dialect string

const (
	MySQL  Dialect = "mysql"
	SQLite Dialect = "sqlite"
)

// Validate reports whether the dialect is supported.
func (d Dialect) Validate() error {
	switch d {
	case MySQL, SQLite:
		return nil
	default:
		return fmt.Errorf("unsupported database dialect %q", string(d))
	}
}

// Repository is the single writer of the blocks and transactions tables.
type Repository struct {
	db      *sql.DB
	dialect Dialect
	metrics Metrics
}

// Open connects to the database and verifies the connection.
func Open(ctx context.Context, dialect Dialect, dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, errors.New("database dsn is required")
	}
	if err := dialect.Validate(); err != nil {
		return nil, err
	}

	if dialect == SQLite {
		dsn = sqliteDSN(dsn)
	}
	db, err := sql.Open(string(dialect), dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s connection: %w", dialect, err)
	}
	if dialect == SQLite {
		// SQLite allows one writer at a time.
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", dialect, err)
	}
	return db, nil
}

// sqliteDSN turns on foreign key enforcement unless the DSN already configures it.
func sqliteDSN(dsn string) string {
	if strings.Contains(dsn, "foreign_keys") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=foreign_keys(1)"
}

// NewRepository wraps an open database handle.
func NewRepository(db *sql.DB, dialect Dialect, metrics Metrics) (*Repository, error) {
	if db == nil {
		return nil, errors.New("database handle is required")
	}
	if err := dialect.Validate(); err != nil {
		return nil, err
	}
	if metrics == nil {
		return nil, errors.New("repository metrics is required")
	}
	return &Repository{db: db, dialect: dialect, metrics: metrics}, nil
}

// Close releases the database handle.
func (r *Repository) Close() error {
	return r.db.Close()
}
