package ethereum

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	geth "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/goodnatureofminers/ledgersync/internal/clock"
	"github.com/goodnatureofminers/ledgersync/internal/evm/chain"
	"go.uber.org/zap"
)

// FeedMode selects how new block hashes are delivered.
type FeedMode string

const (
	// FeedPush uses an eth_subscribe("newHeads") subscription.
	FeedPush FeedMode = "push"
	// FeedPoll polls an eth_newBlockFilter filter.
	FeedPoll FeedMode = "poll"
)

// FeedModeFor picks polling for HTTP endpoints, which cannot carry subscriptions.
func FeedModeFor(rawURL string) FeedMode {
	u, err := url.Parse(rawURL)
	if err != nil {
		return FeedPush
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return FeedPoll
	default:
		return FeedPush
	}
}

// LedgerSource implements chain.LedgerSource over JSON-RPC.
type LedgerSource struct {
	rpc          Caller
	mode         FeedMode
	pollInterval time.Duration
	sleep        clock.SleepFunc
	logger       *zap.Logger
}

// NewLedgerSource creates a LedgerSource.
func NewLedgerSource(rpc Caller, mode FeedMode, pollInterval time.Duration, logger *zap.Logger) (*LedgerSource, error) {
	if rpc == nil {
		return nil, errors.New("rpc client is required")
	}
	switch mode {
	case FeedPush:
	case FeedPoll:
		if pollInterval <= 0 {
			return nil, errors.New("poll interval must be positive")
		}
	default:
		return nil, fmt.Errorf("unsupported feed mode %q", string(mode))
	}
	return &LedgerSource{
		rpc:          rpc,
		mode:         mode,
		pollInterval: pollInterval,
		sleep:        clock.Sleep,
		logger:       logger,
	}, nil
}

// FetchBlock returns the block with its transactions inlined, or chain.ErrBlockNotFound.
func (s *LedgerSource) FetchBlock(ctx context.Context, id chain.BlockID) (*chain.RawBlock, error) {
	var (
		raw *chain.RawBlock
		err error
	)
	if hash, ok := id.Hash(); ok {
		err = s.rpc.CallContext(ctx, &raw, "eth_getBlockByHash", hash, true)
	} else {
		number, _ := id.Number()
		err = s.rpc.CallContext(ctx, &raw, "eth_getBlockByNumber", hexutil.EncodeUint64(number), true)
	}
	if err != nil {
		return nil, fmt.Errorf("get block %s: %w: %w", id, chain.ErrTransport, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("get block %s: %w", id, chain.ErrBlockNotFound)
	}
	return raw, nil
}

// HeadNumber returns the highest block number known to the node.
func (s *LedgerSource) HeadNumber(ctx context.Context) (uint64, error) {
	var head hexutil.Uint64
	if err := s.rpc.CallContext(ctx, &head, "eth_blockNumber"); err != nil {
		return 0, fmt.Errorf("get head number: %w: %w", chain.ErrTransport, err)
	}
	return uint64(head), nil
}

// SubscribeNewHeads delivers hashes of newly produced blocks to ch until Unsubscribe.
// Feed failures arrive on the subscription's Err channel.
func (s *LedgerSource) SubscribeNewHeads(ctx context.Context, ch chan<- common.Hash) (geth.Subscription, error) {
	if s.mode == FeedPoll {
		return s.subscribePoll(ctx, ch)
	}
	return s.subscribePush(ctx, ch)
}
