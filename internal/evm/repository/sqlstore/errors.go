package sqlstore

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/goodnatureofminers/ledgersync/internal/evm/chain"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

const mysqlErrDuplicateEntry = 1062

// storeError classifies a driver error into the chain error taxonomy.
func storeError(op string, err error) error {
	if isDuplicateKey(err) {
		return fmt.Errorf("%s: %w: %w", op, chain.ErrDuplicateKey, err)
	}
	return fmt.Errorf("%s: %w: %w", op, chain.ErrTransport, err)
}

func isDuplicateKey(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == mysqlErrDuplicateEntry
	}

	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3.SQLITE_CONSTRAINT_UNIQUE:
			return true
		case sqlite3.SQLITE_CONSTRAINT:
			return strings.Contains(sqliteErr.Error(), "UNIQUE constraint failed")
		}
	}
	return false
}
