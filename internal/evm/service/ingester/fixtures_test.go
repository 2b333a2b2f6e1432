package ingester

import (
	"bytes"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/goodnatureofminers/ledgersync/internal/evm/chain"
	"github.com/goodnatureofminers/ledgersync/internal/evm/model"
)

const (
	blockSalt = 0xb1
	txSalt    = 0x7a
)

func hashOf(n uint64, salt byte) common.Hash {
	var h common.Hash
	h[0] = salt
	new(big.Int).SetUint64(n).FillBytes(h[24:])
	return h
}

// rawBlock returns a ledger record with txCount value transfers.
func rawBlock(number uint64, txCount int) *chain.RawBlock {
	raw := &chain.RawBlock{
		Number:           hexutil.EncodeUint64(number),
		Hash:             hashOf(number, blockSalt).Hex(),
		ParentHash:       hashOf(number-1, blockSalt).Hex(),
		Nonce:            "0x0000000000000042",
		Sha3Uncles:       types.EmptyUncleHash.Hex(),
		LogsBloom:        hexutil.Encode(bytes.Repeat([]byte{0}, types.BloomByteLength)),
		TransactionsRoot: types.EmptyTxsHash.Hex(),
		StateRoot:        hashOf(number, 0x5e).Hex(),
		ReceiptsRoot:     types.EmptyReceiptsHash.Hex(),
		Miner:            "0x52bc44d5378309ee2abf1539bf71de1b7d7be3b5",
		MixHash:          hashOf(number, 0x31).Hex(),
		Difficulty:       "0x400000000",
		ExtraData:        "0x",
		Size:             "0x21c",
		GasLimit:         "0x1388",
		GasUsed:          hexutil.EncodeUint64(uint64(21000 * txCount)),
		Timestamp:        hexutil.EncodeUint64(number * 15),
		Transactions:     []chain.RawTransaction{},
		Uncles:           []string{},
	}
	for i := 0; i < txCount; i++ {
		raw.Transactions = append(raw.Transactions, rawTransaction(number, uint64(i)))
	}
	return raw
}

func rawTransaction(blockNumber, index uint64) chain.RawTransaction {
	return chain.RawTransaction{
		BlockHash:        hashOf(blockNumber, blockSalt).Hex(),
		BlockNumber:      hexutil.EncodeUint64(blockNumber),
		From:             "0xa1e4380a3b1f749673e270229993ee55f35663b4",
		Gas:              "0x5208",
		GasPrice:         "0x2d79883d2000",
		Hash:             hashOf(blockNumber*100+index, txSalt).Hex(),
		Input:            "0x",
		Nonce:            hexutil.EncodeUint64(index),
		To:               "0x5df9b87991262f6ba471f09758cde1c0fc1de734",
		TransactionIndex: hexutil.EncodeUint64(index),
		Value:            "0x7a69",
		V:                "0x1c",
		R:                "0x88ff6cf0fefd94db46111149ae4bfc179e9b94721fffd821d38d16464b3f71d0",
		S:                "0x45e0aff800961cfce805daef7016b9b675c137a6a41a548f7b60a3484c06a33a",
	}
}

// normalizedBlock returns a decoded block for tests that bypass normalization.
func normalizedBlock(number uint64, txCount int) chain.NormalizedBlock {
	b := model.Block{
		Number:     number,
		Hash:       hashOf(number, blockSalt),
		ParentHash: hashOf(number-1, blockSalt),
		Difficulty: big.NewInt(1),
	}
	var txs []model.Transaction
	for i := 0; i < txCount; i++ {
		tx := model.Transaction{
			BlockNumber:      number,
			TransactionIndex: uint32(i),
			Hash:             hashOf(number*100+uint64(i), txSalt),
			Value:            big.NewInt(1),
		}
		txs = append(txs, tx)
		b.TransactionHashes = append(b.TransactionHashes, tx.Hash)
	}
	return chain.NormalizedBlock{Block: b, Transactions: txs}
}
