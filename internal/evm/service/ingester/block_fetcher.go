package ingester

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/goodnatureofminers/ledgersync/internal/evm/chain"
	"go.uber.org/zap"
)

// blockFetcher looks a block up and keeps retrying while the ledger reports it as unknown.
type blockFetcher struct {
	source          LedgerSource
	metrics         SyncEngineMetrics
	logger          *zap.Logger
	initialInterval time.Duration
	maxInterval     time.Duration
	// maxWait bounds the total retry time; zero retries until the context ends.
	maxWait time.Duration
}

func (f *blockFetcher) Fetch(ctx context.Context, phase string, id chain.BlockID) (*chain.RawBlock, error) {
	var raw *chain.RawBlock
	operation := func() error {
		started := time.Now()
		block, err := f.source.FetchBlock(ctx, id)
		f.metrics.ObserveFetchBlock(phase, err, started)
		if err == nil {
			raw = block
			return nil
		}
		if errors.Is(err, chain.ErrBlockNotFound) {
			return err
		}
		return backoff.Permanent(err)
	}
	notify := func(err error, wait time.Duration) {
		f.metrics.ObserveNotFoundRetry(phase)
		f.logger.Debug("block not known to ledger yet, retrying",
			zap.String("phase", phase),
			zap.Stringer("block", id),
			zap.Duration("wait", wait),
		)
	}

	if err := backoff.RetryNotify(operation, backoff.WithContext(f.newBackOff(), ctx), notify); err != nil {
		return nil, err
	}
	return raw, nil
}

func (f *blockFetcher) newBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = f.initialInterval
	b.MaxInterval = f.maxInterval
	b.MaxElapsedTime = f.maxWait
	b.Reset()
	return b
}
