package ingester

import "time"

const (
	phaseBackfill = "backfill"
	phaseBridge   = "bridge"
	phaseFollow   = "follow"

	defaultProgressEvery uint64 = 100

	committedHashCacheSize = 1024
	headBufferSize         = 64

	notFoundInitialInterval = 250 * time.Millisecond
	notFoundMaxInterval     = 5 * time.Second
)
