package sqlstore

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/ledgersync/internal/evm/model"
	"go.opentelemetry.io/otel/attribute"
)

const insertTransactionQuery = `
INSERT INTO transactions (
	block_number, transaction_index, hash, from_address, to_address,
	value, gas, gas_price, max_fee_per_gas, max_priority_fee_per_gas,
	nonce, type, v, r, s, input
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

// InsertTransaction writes one transaction row of the block inserted in the same scope.
func (t *blockTx) InsertTransaction(ctx context.Context, tx model.Transaction) (err error) {
	start := time.Now()
	ctx, span := startDBSpan(ctx, t.dialect, "sqlstore.InsertTransaction",
		attribute.String("tx.hash", tx.Hash.Hex()),
		attribute.Int("tx.index", int(tx.TransactionIndex)),
	)
	defer func() {
		endDBSpan(span, err)
		t.metrics.Observe("insert_transaction", err, start)
	}()

	var to any
	if !tx.IsContractCreation() {
		to = tx.To.Bytes()
	}

	_, err = t.tx.ExecContext(ctx, insertTransactionQuery,
		tx.BlockNumber,
		tx.TransactionIndex,
		tx.Hash.Bytes(),
		tx.From.Bytes(),
		to,
		decimal(tx.Value),
		tx.Gas,
		decimal(tx.GasPrice),
		decimal(tx.MaxFeePerGas),
		decimal(tx.MaxPriorityFeePerGas),
		tx.Nonce,
		tx.Type,
		bytesOrEmpty(tx.V),
		bytesOrEmpty(tx.R),
		bytesOrEmpty(tx.S),
		bytesOrEmpty(tx.Input),
	)
	if err != nil {
		return storeError(fmt.Sprintf("insert transaction %d of block %d", tx.TransactionIndex, tx.BlockNumber), err)
	}
	return nil
}
