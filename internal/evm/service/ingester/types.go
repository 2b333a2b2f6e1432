package ingester

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/goodnatureofminers/ledgersync/internal/evm/chain"
	"github.com/goodnatureofminers/ledgersync/internal/evm/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE
//go:generate mockgen -destination=mocks_chain_test.go -package=$GOPACKAGE github.com/goodnatureofminers/ledgersync/internal/evm/chain BlockTx

type (
	BlockFetcher interface {
		Fetch(ctx context.Context, phase string, id chain.BlockID) (*chain.RawBlock, error)
	}
	BlockWriter interface {
		Write(ctx context.Context, phase string, id chain.BlockID, expected uint64, block chain.NormalizedBlock) error
	}
	SyncEngineMetrics interface {
		ObserveFetchBlock(phase string, err error, started time.Time)
		ObserveNotFoundRetry(phase string)
		ObserveAppendBlock(phase string, err error, txs int, started time.Time)
		SetWatermark(number uint64)
		SetHead(number uint64)
	}

	LedgerSource interface {
		FetchBlock(ctx context.Context, id chain.BlockID) (*chain.RawBlock, error)
		HeadNumber(ctx context.Context) (uint64, error)
		SubscribeNewHeads(ctx context.Context, ch chan<- common.Hash) (ethereum.Subscription, error)
	}
	Normalizer interface {
		Normalize(raw *chain.RawBlock) (chain.NormalizedBlock, error)
	}
	Repository interface {
		HighestBlockNumber(ctx context.Context) (uint64, bool, error)
		BlockRange(ctx context.Context) (model.BlockRange, error)
		BeginBlockTx(ctx context.Context) (chain.BlockTx, error)
	}
)
