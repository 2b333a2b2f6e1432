package ingester

import (
	"context"
	"fmt"
	"sync"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/event"
	"github.com/goodnatureofminers/ledgersync/internal/evm/chain"
)

// fakeLedger is an in-memory LedgerSource whose head and feed are driven by the test.
type fakeLedger struct {
	mu       sync.Mutex
	heads    []uint64
	byNumber map[uint64]*chain.RawBlock
	byHash   map[common.Hash]*chain.RawBlock

	announcements chan common.Hash
	feedErr       chan error
	subscribed    chan struct{}
	once          sync.Once
}

// newFakeLedger reports the given head numbers in turn; the last one repeats.
func newFakeLedger(heads ...uint64) *fakeLedger {
	return &fakeLedger{
		heads:         heads,
		byNumber:      make(map[uint64]*chain.RawBlock),
		byHash:        make(map[common.Hash]*chain.RawBlock),
		announcements: make(chan common.Hash),
		feedErr:       make(chan error, 1),
		subscribed:    make(chan struct{}),
	}
}

func (l *fakeLedger) add(blocks ...*chain.RawBlock) *fakeLedger {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, b := range blocks {
		l.byNumber[hexutil.MustDecodeUint64(b.Number)] = b
		l.byHash[common.HexToHash(b.Hash)] = b
	}
	return l
}

// serveHash makes a hash lookup return the given record.
func (l *fakeLedger) serveHash(h common.Hash, b *chain.RawBlock) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.byHash[h] = b
}

func (l *fakeLedger) FetchBlock(_ context.Context, id chain.BlockID) (*chain.RawBlock, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	var b *chain.RawBlock
	if h, ok := id.Hash(); ok {
		b = l.byHash[h]
	} else {
		n, _ := id.Number()
		b = l.byNumber[n]
	}
	if b == nil {
		return nil, fmt.Errorf("get block %s: %w", id, chain.ErrBlockNotFound)
	}
	return b, nil
}

func (l *fakeLedger) HeadNumber(context.Context) (uint64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	head := l.heads[0]
	if len(l.heads) > 1 {
		l.heads = l.heads[1:]
	}
	return head, nil
}

func (l *fakeLedger) SubscribeNewHeads(_ context.Context, ch chan<- common.Hash) (ethereum.Subscription, error) {
	sub := event.NewSubscription(func(quit <-chan struct{}) error {
		for {
			select {
			case h := <-l.announcements:
				select {
				case ch <- h:
				case <-quit:
					return nil
				}
			case err := <-l.feedErr:
				return err
			case <-quit:
				return nil
			}
		}
	})
	l.once.Do(func() { close(l.subscribed) })
	return sub, nil
}

func (l *fakeLedger) announce(h common.Hash) {
	l.announcements <- h
}
