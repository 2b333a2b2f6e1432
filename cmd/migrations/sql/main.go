package main

import (
	"errors"
	"log"

	"github.com/goodnatureofminers/ledgersync/internal/evm/repository/sqlstore"
	"github.com/jessevdk/go-flags"
)

type config struct {
	Dialect string `long:"dialect" env:"MIGRATIONS_DB_DIALECT" choice:"mysql" choice:"sqlite" default:"mysql" description:"database dialect"`
	DSN     string `long:"dsn" env:"MIGRATIONS_DB_DSN" required:"true" description:"database DSN (user:pass@tcp(host:3306)/db for mysql, a file path for sqlite)"`
	Down    bool   `long:"down" env:"MIGRATIONS_DOWN" description:"revert every applied migration instead of applying pending ones"`
}

func main() {
	cfg := config{}
	if _, err := flags.Parse(&cfg); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		log.Fatalf("failed to parse flags: %v", err)
	}

	if err := runMigrations(cfg); err != nil {
		log.Fatalf("migration run failed: %v", err)
	}
}

func runMigrations(cfg config) error {
	dialect := sqlstore.Dialect(cfg.Dialect)
	apply, direction := sqlstore.MigrateUp, "applied"
	if cfg.Down {
		apply, direction = sqlstore.MigrateDown, "reverted"
	}

	changed, err := apply(dialect, cfg.DSN)
	if err != nil {
		return err
	}
	if !changed {
		log.Println("no migrations to apply")
		return nil
	}
	log.Printf("%s migrations %s successfully", dialect, direction)
	return nil
}
