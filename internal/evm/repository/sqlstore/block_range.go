package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/goodnatureofminers/ledgersync/internal/evm/model"
	"github.com/goodnatureofminers/ledgersync/pkg/safe"
)

// BlockRange returns the lowest and highest stored block numbers and the row count.
func (r *Repository) BlockRange(ctx context.Context) (rng model.BlockRange, err error) {
	start := time.Now()
	ctx, span := startDBSpan(ctx, r.dialect, "sqlstore.BlockRange")
	defer func() {
		endDBSpan(span, err)
		r.metrics.Observe("block_range", err, start)
	}()

	const query = `SELECT MIN(number), MAX(number), COUNT(*) FROM blocks`

	var (
		lowest, highest sql.NullInt64
		count           int64
	)
	if err = r.db.QueryRowContext(ctx, query).Scan(&lowest, &highest, &count); err != nil {
		return model.BlockRange{}, storeError("query block range", err)
	}
	if count == 0 {
		return model.BlockRange{}, nil
	}

	if rng.Lowest, err = safe.Uint64(lowest.Int64); err != nil {
		return model.BlockRange{}, fmt.Errorf("lowest block number: %w", err)
	}
	if rng.Highest, err = safe.Uint64(highest.Int64); err != nil {
		return model.BlockRange{}, fmt.Errorf("highest block number: %w", err)
	}
	if rng.Count, err = safe.Uint64(count); err != nil {
		return model.BlockRange{}, fmt.Errorf("block count: %w", err)
	}
	return rng, nil
}
