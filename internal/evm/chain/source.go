// Package chain defines interfaces and structs shared between ledger ingestion components.
package chain

import (
	"context"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/goodnatureofminers/ledgersync/internal/evm/model"
)

// LedgerSource provides point lookups, the head number and a feed of new block hashes.
type LedgerSource interface {
	FetchBlock(ctx context.Context, id BlockID) (*RawBlock, error)
	HeadNumber(ctx context.Context) (uint64, error)
	SubscribeNewHeads(ctx context.Context, ch chan<- common.Hash) (ethereum.Subscription, error)
}

// BlockTx is one transactional write scope. All rows of a block go through a single BlockTx.
type BlockTx interface {
	InsertBlock(ctx context.Context, block model.Block) error
	InsertTransaction(ctx context.Context, tx model.Transaction) error
	Commit() error
	Rollback() error
}

// NormalizedBlock is a block with its transactions in ledger order, ready to be stored.
type NormalizedBlock struct {
	Block        model.Block
	Transactions []model.Transaction
}
