package ingester

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/goodnatureofminers/ledgersync/internal/evm/chain"
	"go.uber.org/zap"
)

// follow subscribes to new heads, appends the blocks produced since backfill read the head,
// then appends each announced block by hash. It only returns with an error.
func (s *SyncEngineService) follow(ctx context.Context, next uint64) error {
	heads := make(chan common.Hash, headBufferSize)
	sub, err := s.source.SubscribeNewHeads(ctx, heads)
	if err != nil {
		return fmt.Errorf("subscribe to new heads: %w", err)
	}
	defer sub.Unsubscribe()

	if next, err = s.bridge(ctx, next); err != nil {
		return err
	}

	s.logger.Info("following new heads", zap.Uint64("next", next))
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err, ok := <-sub.Err():
			if !ok || err == nil {
				return ErrHeadFeedClosed
			}
			return fmt.Errorf("new head feed: %w", err)
		case hash := <-heads:
			if s.committed.Contains(hash) {
				s.logger.Debug("skipping announcement of committed block", zap.Stringer("hash", hash))
				continue
			}
			if err := s.appendBlock(ctx, phaseFollow, chain.ByHash(hash), next); err != nil {
				return err
			}
			next++
		}
	}
}

// bridge appends by number the blocks that reached the ledger between the backfill head
// read and the subscription. Their announcements are then skipped as already committed.
func (s *SyncEngineService) bridge(ctx context.Context, next uint64) (uint64, error) {
	head, err := s.source.HeadNumber(ctx)
	if err != nil {
		return 0, fmt.Errorf("read ledger head: %w", err)
	}
	s.metrics.SetHead(head)

	for ; next <= head; next++ {
		if err := s.appendBlock(ctx, phaseBridge, chain.ByNumber(next), next); err != nil {
			return 0, err
		}
	}
	return next, nil
}
