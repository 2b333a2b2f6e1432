package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/goodnatureofminers/ledgersync/pkg/safe"
)

// HighestBlockNumber returns the watermark. ok is false for an empty store.
func (r *Repository) HighestBlockNumber(ctx context.Context) (number uint64, ok bool, err error) {
	start := time.Now()
	ctx, span := startDBSpan(ctx, r.dialect, "sqlstore.HighestBlockNumber")
	defer func() {
		endDBSpan(span, err)
		r.metrics.Observe("highest_block_number", err, start)
	}()

	const query = `SELECT MAX(number) FROM blocks`

	var highest sql.NullInt64
	if err = r.db.QueryRowContext(ctx, query).Scan(&highest); err != nil {
		return 0, false, storeError("query highest block number", err)
	}
	if !highest.Valid {
		return 0, false, nil
	}

	number, err = safe.Uint64(highest.Int64)
	if err != nil {
		return 0, false, fmt.Errorf("highest block number: %w", err)
	}
	return number, true, nil
}
