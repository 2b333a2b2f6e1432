package ethereum

import (
	"context"
	"errors"
	"fmt"
	"time"

	geth "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/event"
	"github.com/goodnatureofminers/ledgersync/internal/evm/chain"
	"go.uber.org/zap"
)

const uninstallFilterTimeout = 5 * time.Second

// ErrSubscriptionClosed is reported when the node ends a head subscription.
var ErrSubscriptionClosed = fmt.Errorf("%w: head subscription closed by node", chain.ErrTransport)

type headNotification struct {
	Hash common.Hash `json:"hash"`
}

func (s *LedgerSource) subscribePush(ctx context.Context, ch chan<- common.Hash) (geth.Subscription, error) {
	notifications := make(chan headNotification)
	csub, err := s.rpc.EthSubscribe(ctx, notifications, "newHeads")
	if err != nil {
		return nil, fmt.Errorf("subscribe new heads: %w: %w", chain.ErrTransport, err)
	}

	return event.NewSubscription(func(quit <-chan struct{}) error {
		defer csub.Unsubscribe()
		for {
			select {
			case head := <-notifications:
				select {
				case ch <- head.Hash:
				case err := <-csub.Err():
					return subscriptionError(err)
				case <-quit:
					return nil
				}
			case err := <-csub.Err():
				return subscriptionError(err)
			case <-quit:
				return nil
			}
		}
	}), nil
}

func (s *LedgerSource) subscribePoll(ctx context.Context, ch chan<- common.Hash) (geth.Subscription, error) {
	var filterID string
	if err := s.rpc.CallContext(ctx, &filterID, "eth_newBlockFilter"); err != nil {
		return nil, fmt.Errorf("install block filter: %w: %w", chain.ErrTransport, err)
	}
	logger := s.logger.With(zap.String("filter", filterID))
	logger.Debug("block filter installed", zap.Duration("interval", s.pollInterval))

	return event.NewSubscription(func(quit <-chan struct{}) error {
		pollCtx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go func() {
			select {
			case <-quit:
				cancel()
			case <-pollCtx.Done():
			}
		}()
		defer s.uninstallFilter(filterID, logger)

		for {
			var hashes []common.Hash
			if err := s.rpc.CallContext(pollCtx, &hashes, "eth_getFilterChanges", filterID); err != nil {
				if pollCtx.Err() != nil {
					return nil
				}
				return fmt.Errorf("poll block filter %s: %w: %w", filterID, chain.ErrTransport, err)
			}
			for _, hash := range hashes {
				select {
				case ch <- hash:
				case <-quit:
					return nil
				}
			}
			if err := s.sleep(pollCtx, s.pollInterval); err != nil {
				return nil
			}
		}
	}), nil
}

func (s *LedgerSource) uninstallFilter(filterID string, logger *zap.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), uninstallFilterTimeout)
	defer cancel()

	var removed bool
	if err := s.rpc.CallContext(ctx, &removed, "eth_uninstallFilter", filterID); err != nil {
		logger.Warn("uninstall block filter failed", zap.Error(err))
		return
	}
	logger.Debug("block filter uninstalled", zap.Bool("removed", removed))
}

func subscriptionError(err error) error {
	if err == nil {
		return ErrSubscriptionClosed
	}
	if errors.Is(err, chain.ErrTransport) {
		return err
	}
	return fmt.Errorf("head subscription: %w: %w", chain.ErrTransport, err)
}
