package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/goodnatureofminers/ledgersync/internal/evm/chain"
)

type blockTx struct {
	// ctx parents the commit and rollback spans.
	ctx     context.Context
	tx      *sql.Tx
	dialect Dialect
	metrics Metrics
}

// BeginBlockTx opens the transactional scope that carries one block and its transactions.
func (r *Repository) BeginBlockTx(ctx context.Context) (_ chain.BlockTx, err error) {
	start := time.Now()
	spanCtx, span := startDBSpan(ctx, r.dialect, "sqlstore.BeginBlockTx")
	defer func() {
		endDBSpan(span, err)
		r.metrics.Observe("begin_tx", err, start)
	}()

	tx, err := r.db.BeginTx(spanCtx, nil)
	if err != nil {
		return nil, storeError("begin transaction", err)
	}
	return &blockTx{ctx: ctx, tx: tx, dialect: r.dialect, metrics: r.metrics}, nil
}

func (t *blockTx) Commit() (err error) {
	start := time.Now()
	_, span := startDBSpan(t.ctx, t.dialect, "sqlstore.Commit")
	defer func() {
		endDBSpan(span, err)
		t.metrics.Observe("commit", err, start)
	}()

	if err = t.tx.Commit(); err != nil {
		return storeError("commit transaction", err)
	}
	return nil
}

// Rollback is a no-op once the scope has been committed or rolled back.
func (t *blockTx) Rollback() (err error) {
	start := time.Now()
	_, span := startDBSpan(t.ctx, t.dialect, "sqlstore.Rollback")
	defer func() {
		endDBSpan(span, err)
		t.metrics.Observe("rollback", err, start)
	}()

	if err = t.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return storeError("rollback transaction", err)
	}
	return nil
}
