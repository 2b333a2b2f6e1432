// Package ingester keeps the store a gapless, ordered copy of the ledger.
package ingester

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/goodnatureofminers/ledgersync/internal/evm/chain"
	"github.com/goodnatureofminers/ledgersync/internal/evm/model"
	lru "github.com/hashicorp/golang-lru"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("ledgersync/ingester")

// Config tunes the sync engine. Zero values select the defaults.
type Config struct {
	// StartBlock is the first block to fetch when the store is empty.
	StartBlock uint64
	// NotFoundMaxWait bounds how long one lookup is retried while the ledger does not know the block.
	// Zero retries until the context ends.
	NotFoundMaxWait time.Duration
	// ProgressEvery is the number of backfilled blocks between progress reports.
	ProgressEvery uint64
}

// SyncEngineService replays the ledger into the store: backfill up to the head, then follow new heads.
type SyncEngineService struct {
	logger        *zap.Logger
	network       model.Network
	repo          Repository
	source        LedgerSource
	normalizer    Normalizer
	metrics       SyncEngineMetrics
	fetcher       BlockFetcher
	writer        BlockWriter
	committed     *lru.Cache
	startBlock    uint64
	progressEvery uint64
	now           func() time.Time
}

// NewSyncEngineService builds a SyncEngineService with dependencies.
func NewSyncEngineService(
	repo Repository,
	source LedgerSource,
	normalizer Normalizer,
	metrics SyncEngineMetrics,
	network model.Network,
	logger *zap.Logger,
	cfg Config,
) (*SyncEngineService, error) {
	if repo == nil {
		return nil, errors.New("repository is required")
	}
	if source == nil {
		return nil, errors.New("ledger source is required")
	}
	if normalizer == nil {
		return nil, errors.New("normalizer is required")
	}
	if metrics == nil {
		return nil, errors.New("sync engine metrics is required")
	}
	if cfg.ProgressEvery == 0 {
		cfg.ProgressEvery = defaultProgressEvery
	}

	committed, err := lru.New(committedHashCacheSize)
	if err != nil {
		return nil, fmt.Errorf("create committed hash cache: %w", err)
	}

	logger = logger.With(zap.String("network", string(network)))
	return &SyncEngineService{
		logger:        logger,
		network:       network,
		repo:          repo,
		source:        source,
		normalizer:    normalizer,
		metrics:       metrics,
		committed:     committed,
		startBlock:    cfg.StartBlock,
		progressEvery: cfg.ProgressEvery,
		now:           time.Now,
		fetcher: &blockFetcher{
			source:          source,
			metrics:         metrics,
			logger:          logger.Named("blockFetcher"),
			initialInterval: notFoundInitialInterval,
			maxInterval:     notFoundMaxInterval,
			maxWait:         cfg.NotFoundMaxWait,
		},
		writer: &blockWriter{
			repo:    repo,
			metrics: metrics,
			logger:  logger.Named("blockWriter"),
		},
	}, nil
}

// Run backfills the store up to the ledger head and then follows new heads.
// It returns ctx.Err() on cancellation and any other error is fatal.
func (s *SyncEngineService) Run(ctx context.Context) error {
	from, err := s.resumePoint(ctx)
	if err != nil {
		return err
	}

	next, err := s.backfill(ctx, from)
	if err != nil {
		return err
	}

	return s.follow(ctx, next)
}

// resumePoint refuses a gapped store and returns the first block number still missing.
func (s *SyncEngineService) resumePoint(ctx context.Context) (uint64, error) {
	rng, err := s.repo.BlockRange(ctx)
	if err != nil {
		return 0, fmt.Errorf("read stored block range: %w", err)
	}
	if !rng.Contiguous() {
		return 0, fmt.Errorf("%w: store holds %d blocks between %d and %d",
			ErrInvariantViolation, rng.Count, rng.Lowest, rng.Highest)
	}

	highest, ok, err := s.repo.HighestBlockNumber(ctx)
	if err != nil {
		return 0, fmt.Errorf("read highest stored block: %w", err)
	}
	if !ok {
		s.logger.Info("store is empty", zap.Uint64("startBlock", s.startBlock))
		return s.startBlock, nil
	}
	s.metrics.SetWatermark(highest)
	s.logger.Info("resuming from store", zap.Uint64("highest", highest), zap.Uint64("lowest", rng.Lowest))
	return highest + 1, nil
}

// appendBlock fetches, normalizes and stores the block identified by id, which must be number expected.
func (s *SyncEngineService) appendBlock(ctx context.Context, phase string, id chain.BlockID, expected uint64) (err error) {
	ctx, span := tracer.Start(ctx, "ingester.append_block")
	span.SetAttributes(
		attribute.String("ledger.network", string(s.network)),
		attribute.String("sync.phase", phase),
		attribute.String("block.id", id.String()),
		attribute.String("block.expected", strconv.FormatUint(expected, 10)),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	raw, err := s.fetcher.Fetch(ctx, phase, id)
	if err != nil {
		return fmt.Errorf("fetch block %s: %w", id, err)
	}
	nb, err := s.normalizer.Normalize(raw)
	if err != nil {
		return fmt.Errorf("normalize block %s: %w", id, err)
	}
	if err = s.writer.Write(ctx, phase, id, expected, nb); err != nil {
		return err
	}

	s.committed.Add(nb.Block.Hash, nb.Block.Number)
	s.metrics.SetWatermark(nb.Block.Number)
	s.logger.Debug("block committed",
		zap.String("phase", phase),
		zap.Uint64("number", nb.Block.Number),
		zap.Stringer("hash", nb.Block.Hash),
		zap.Int("transactions", len(nb.Transactions)),
	)
	return nil
}
