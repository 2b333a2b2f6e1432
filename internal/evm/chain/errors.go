package chain

import (
	"errors"
	"fmt"
)

var (
	// ErrBlockNotFound means the ledger does not know the identifier yet. Retryable.
	ErrBlockNotFound = errors.New("block not found")
	// ErrDuplicateKey means a row with the same key is already stored.
	ErrDuplicateKey = errors.New("duplicate key")
	// ErrTransport means the ledger node or the store connection failed.
	ErrTransport = errors.New("transport failure")
	// ErrMalformedRecord means the ledger returned data that cannot be normalized.
	ErrMalformedRecord = fmt.Errorf("%w: malformed ledger record", ErrTransport)
)
