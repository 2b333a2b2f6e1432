// Package model defines domain models for ledger ingestion.
package model

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// Block represents a normalized ledger block persisted to the blocks table.
type Block struct {
	Number           uint64
	Hash             common.Hash
	ParentHash       common.Hash
	Nonce            types.BlockNonce
	Sha3Uncles       common.Hash
	LogsBloom        types.Bloom
	TransactionsRoot common.Hash
	StateRoot        common.Hash
	ReceiptsRoot     common.Hash
	Miner            common.Address
	MixHash          common.Hash
	Difficulty       *big.Int
	// TotalDifficulty is nil when the node no longer reports it.
	TotalDifficulty *big.Int
	ExtraData       []byte
	Size            uint64
	GasLimit        uint64
	GasUsed         uint64
	BaseFeePerGas   *big.Int
	Timestamp       time.Time
	// TransactionHashes and UncleHashes are nil, never empty, when the block has none.
	TransactionHashes []common.Hash
	UncleHashes       []common.Hash
}

// BlockRange summarizes the stored block numbers.
type BlockRange struct {
	Lowest  uint64
	Highest uint64
	Count   uint64
}

// Empty reports whether no block is stored.
func (r BlockRange) Empty() bool {
	return r.Count == 0
}

// Contiguous reports whether the stored numbers form one gapless run.
func (r BlockRange) Contiguous() bool {
	if r.Empty() {
		return true
	}
	return r.Highest >= r.Lowest && r.Highest-r.Lowest+1 == r.Count
}
