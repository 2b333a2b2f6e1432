package ingester

import (
	"errors"
	"fmt"

	"github.com/goodnatureofminers/ledgersync/internal/evm/chain"
)

var (
	// ErrInvariantViolation means a fetched block is not the one the engine must append next,
	// or the store no longer holds a gapless run of blocks.
	ErrInvariantViolation = errors.New("invariant violation")
	// ErrHeadFeedClosed means the new-head feed ended without reporting a cause.
	ErrHeadFeedClosed = fmt.Errorf("%w: new head feed closed", chain.ErrTransport)
)
