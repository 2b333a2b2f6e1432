package ingester

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/ledgersync/internal/evm/chain"
	"github.com/goodnatureofminers/ledgersync/internal/evm/model"
	"go.uber.org/zap"
)

// blockWriter stores one block and its transactions in a single transactional scope.
type blockWriter struct {
	repo    Repository
	metrics SyncEngineMetrics
	logger  *zap.Logger
}

func (w *blockWriter) Write(ctx context.Context, phase string, id chain.BlockID, expected uint64, nb chain.NormalizedBlock) (err error) {
	started := time.Now()
	defer func() {
		w.metrics.ObserveAppendBlock(phase, err, len(nb.Transactions), started)
	}()

	if err = validateBlock(nb.Block, id, expected); err != nil {
		return err
	}

	tx, err := w.repo.BeginBlockTx(ctx)
	if err != nil {
		return fmt.Errorf("append block %d: %w", nb.Block.Number, err)
	}
	defer func() {
		if err == nil {
			return
		}
		if rbErr := tx.Rollback(); rbErr != nil {
			w.logger.Error("rollback block failed", zap.Uint64("number", nb.Block.Number), zap.Error(rbErr))
		}
	}()

	if err = tx.InsertBlock(ctx, nb.Block); err != nil {
		return fmt.Errorf("append block %d: %w", nb.Block.Number, err)
	}
	for _, t := range nb.Transactions {
		if err = tx.InsertTransaction(ctx, t); err != nil {
			return fmt.Errorf("append block %d transaction %d: %w", nb.Block.Number, t.TransactionIndex, err)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("append block %d: %w", nb.Block.Number, err)
	}
	return nil
}

// validateBlock checks that the block is the one expected next and the one the lookup asked for.
func validateBlock(b model.Block, id chain.BlockID, expected uint64) error {
	if b.Number != expected {
		return fmt.Errorf("%w: expected block %d, ledger returned %d (%s) for %s",
			ErrInvariantViolation, expected, b.Number, b.Hash.Hex(), id)
	}
	if !id.Matches(b.Number, b.Hash) {
		return fmt.Errorf("%w: lookup %s returned block %d (%s)",
			ErrInvariantViolation, id, b.Number, b.Hash.Hex())
	}
	return nil
}
