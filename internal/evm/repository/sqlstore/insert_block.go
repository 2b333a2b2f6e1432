package sqlstore

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/goodnatureofminers/ledgersync/internal/evm/model"
	"go.opentelemetry.io/otel/attribute"
)

const insertBlockQuery = `
INSERT INTO blocks (
	number, hash, parent_hash, nonce, sha3_uncles, logs_bloom,
	transactions_root, state_root, receipts_root, miner, mix_hash,
	difficulty, total_difficulty, extra_data, size, gas_limit, gas_used,
	base_fee_per_gas, timestamp, transactions, uncles
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

// InsertBlock writes the block row. An existing number or hash fails with chain.ErrDuplicateKey.
func (t *blockTx) InsertBlock(ctx context.Context, b model.Block) (err error) {
	start := time.Now()
	ctx, span := startDBSpan(ctx, t.dialect, "sqlstore.InsertBlock", attribute.String("block.number", strconv.FormatUint(b.Number, 10)))
	defer func() {
		endDBSpan(span, err)
		t.metrics.Observe("insert_block", err, start)
	}()

	txs, err := hashList(b.TransactionHashes)
	if err != nil {
		return fmt.Errorf("encode transaction hashes of block %d: %w", b.Number, err)
	}
	uncles, err := hashList(b.UncleHashes)
	if err != nil {
		return fmt.Errorf("encode uncle hashes of block %d: %w", b.Number, err)
	}

	_, err = t.tx.ExecContext(ctx, insertBlockQuery,
		b.Number,
		b.Hash.Bytes(),
		b.ParentHash.Bytes(),
		b.Nonce[:],
		b.Sha3Uncles.Bytes(),
		b.LogsBloom.Bytes(),
		b.TransactionsRoot.Bytes(),
		b.StateRoot.Bytes(),
		b.ReceiptsRoot.Bytes(),
		b.Miner.Bytes(),
		b.MixHash.Bytes(),
		decimal(b.Difficulty),
		decimal(b.TotalDifficulty),
		bytesOrEmpty(b.ExtraData),
		b.Size,
		b.GasLimit,
		b.GasUsed,
		decimal(b.BaseFeePerGas),
		b.Timestamp.UTC(),
		txs,
		uncles,
	)
	if err != nil {
		return storeError(fmt.Sprintf("insert block %d", b.Number), err)
	}
	return nil
}
