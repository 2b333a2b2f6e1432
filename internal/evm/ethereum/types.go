package ethereum

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum/rpc"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// RPCMetrics records metrics for RPC calls.
	RPCMetrics interface {
		Observe(operation string, err error, started time.Time)
	}
	// Backend is the subset of *rpc.Client wrapped by RPCClient.
	Backend interface {
		CallContext(ctx context.Context, result interface{}, method string, args ...interface{}) error
		EthSubscribe(ctx context.Context, channel interface{}, args ...interface{}) (*rpc.ClientSubscription, error)
		Close()
	}
	// Caller issues JSON-RPC requests against the ledger node.
	Caller interface {
		CallContext(ctx context.Context, result interface{}, method string, args ...interface{}) error
		EthSubscribe(ctx context.Context, channel interface{}, args ...interface{}) (*rpc.ClientSubscription, error)
	}
)
