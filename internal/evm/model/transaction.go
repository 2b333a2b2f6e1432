package model

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Transaction represents a normalized transaction owned by exactly one Block.
type Transaction struct {
	BlockNumber      uint64
	TransactionIndex uint32
	Hash             common.Hash
	From             common.Address
	// To is nil for contract creation.
	To                   *common.Address
	Value                *big.Int
	Gas                  uint64
	GasPrice             *big.Int
	MaxFeePerGas         *big.Int
	MaxPriorityFeePerGas *big.Int
	Nonce                uint64
	Type                 uint8
	V                    []byte
	R                    []byte
	S                    []byte
	Input                []byte
}

// IsContractCreation reports whether the transaction deploys a contract.
func (t Transaction) IsContractCreation() bool {
	return t.To == nil
}
