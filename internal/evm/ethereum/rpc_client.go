// Package ethereum implements the ledger source over an Ethereum-compatible JSON-RPC node.
package ethereum

import (
	"context"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/rpc"
	"go.uber.org/ratelimit"
)

// RPCClient wraps the go-ethereum rpc client with rate limiting and metrics instrumentation.
type RPCClient struct {
	client     Backend
	limiter    ratelimit.Limiter
	rpcMetrics RPCMetrics
}

// Dial connects to a node over HTTP, WebSocket or an IPC socket path.
func Dial(ctx context.Context, rawURL string) (*rpc.Client, error) {
	client, err := rpc.DialContext(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("dial ledger node: %w", err)
	}
	return client, nil
}

// NewRPCClient constructs an instrumented RPC client. rps <= 0 disables rate limiting.
func NewRPCClient(client Backend, rps int, rpcMetrics RPCMetrics) *RPCClient {
	limiter := ratelimit.NewUnlimited()
	if rps > 0 {
		limiter = ratelimit.New(rps)
	}
	return &RPCClient{
		client:     client,
		limiter:    limiter,
		rpcMetrics: rpcMetrics,
	}
}

// CallContext performs a JSON-RPC call.
func (r *RPCClient) CallContext(ctx context.Context, result interface{}, method string, args ...interface{}) (err error) {
	r.limiter.Take()
	started := time.Now()
	defer func() {
		r.rpcMetrics.Observe(method, err, started)
	}()
	return r.client.CallContext(ctx, result, method, args...)
}

// EthSubscribe registers a subscription under the eth namespace.
func (r *RPCClient) EthSubscribe(ctx context.Context, channel interface{}, args ...interface{}) (sub *rpc.ClientSubscription, err error) {
	r.limiter.Take()
	started := time.Now()
	defer func() {
		r.rpcMetrics.Observe("eth_subscribe", err, started)
	}()
	return r.client.EthSubscribe(ctx, channel, args...)
}

// Close terminates the underlying connection and its subscriptions.
func (r *RPCClient) Close() {
	r.client.Close()
}
