package ingester

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/ledgersync/internal/evm/chain"
	"go.uber.org/zap"
)

// backfill appends every block from `from` through the current head, strictly in order,
// and returns the number expected from the live feed.
func (s *SyncEngineService) backfill(ctx context.Context, from uint64) (uint64, error) {
	head, err := s.source.HeadNumber(ctx)
	if err != nil {
		return 0, fmt.Errorf("read ledger head: %w", err)
	}
	s.metrics.SetHead(head)

	if from > head {
		s.logger.Info("store is at or ahead of the ledger head; skipping backfill",
			zap.Uint64("next", from),
			zap.Uint64("head", head),
		)
		return from, nil
	}

	s.logger.Info("backfill started", zap.Uint64("from", from), zap.Uint64("head", head))
	progress := newBackfillProgress(from, head, s.progressEvery, s.now, s.logger)
	for n := from; n <= head; n++ {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		if err := s.appendBlock(ctx, phaseBackfill, chain.ByNumber(n), n); err != nil {
			return 0, err
		}
		progress.committed(n)
	}
	s.logger.Info("backfill finished", zap.Uint64("head", head), zap.Uint64("blocks", head-from+1))

	return head + 1, nil
}

// backfillProgress logs the catch-up rate and remaining time every `every` blocks.
type backfillProgress struct {
	from    uint64
	head    uint64
	every   uint64
	now     func() time.Time
	started time.Time
	logger  *zap.Logger
}

func newBackfillProgress(from, head, every uint64, now func() time.Time, logger *zap.Logger) *backfillProgress {
	return &backfillProgress{
		from:    from,
		head:    head,
		every:   every,
		now:     now,
		started: now(),
		logger:  logger,
	}
}

func (p *backfillProgress) committed(number uint64) {
	done := number - p.from + 1
	if done%p.every != 0 {
		return
	}

	remaining := p.head - number
	elapsed := p.now().Sub(p.started)
	var rate float64
	if elapsed > 0 {
		rate = float64(done) / elapsed.Seconds()
	}
	var eta time.Duration
	if rate > 0 {
		eta = time.Duration(float64(remaining) / rate * float64(time.Second))
	}

	p.logger.Info("backfill progress",
		zap.Uint64("number", number),
		zap.Uint64("remaining", remaining),
		zap.Float64("blocksPerSecond", rate),
		zap.Duration("eta", eta.Round(time.Second)),
	)
}
