package sqlstore

import (
	"database/sql"
	"encoding/json"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/goodnatureofminers/ledgersync/internal/evm/model"
)

func hashOf(n uint64, salt byte) common.Hash {
	var h common.Hash
	h[0] = salt
	new(big.Int).SetUint64(n).FillBytes(h[24:])
	return h
}

func newBlock(number uint64, txCount int) model.Block {
	b := model.Block{
		Number:           number,
		Hash:             hashOf(number, 0xb1),
		ParentHash:       hashOf(number-1, 0xb1),
		Nonce:            types.EncodeNonce(number),
		Sha3Uncles:       types.EmptyUncleHash,
		TransactionsRoot: types.EmptyTxsHash,
		StateRoot:        hashOf(number, 0x5e),
		ReceiptsRoot:     types.EmptyReceiptsHash,
		Miner:            common.HexToAddress("0x00000000000000000000000000000000000000aa"),
		MixHash:          hashOf(number, 0x31),
		Difficulty:       big.NewInt(131072),
		TotalDifficulty:  new(big.Int).Mul(big.NewInt(131072), new(big.Int).SetUint64(number+1)),
		ExtraData:        []byte("ledgersync"),
		Size:             540,
		GasLimit:         8_000_000,
		GasUsed:          uint64(21000 * txCount),
		Timestamp:        time.Unix(1_500_000_000+int64(number)*15, 0).UTC(),
	}
	for i := 0; i < txCount; i++ {
		b.TransactionHashes = append(b.TransactionHashes, hashOf(number*100+uint64(i), 0x7a))
	}
	return b
}

func newTransaction(b model.Block, index uint32) model.Transaction {
	to := common.HexToAddress("0x00000000000000000000000000000000000000bb")
	return model.Transaction{
		BlockNumber:      b.Number,
		TransactionIndex: index,
		Hash:             b.TransactionHashes[index],
		From:             common.HexToAddress("0x00000000000000000000000000000000000000cc"),
		To:               &to,
		Value:            new(big.Int).Exp(big.NewInt(10), big.NewInt(30), nil),
		Gas:              21000,
		GasPrice:         big.NewInt(20_000_000_000),
		Nonce:            uint64(index),
		V:                []byte{0x1c},
		R:                common.LeftPadBytes([]byte{0x01}, 32),
		S:                common.LeftPadBytes([]byte{0x02}, 32),
		Input:            []byte{},
	}
}

func decodeHashList(v sql.NullString) ([]common.Hash, error) {
	if !v.Valid {
		return nil, nil
	}
	var hashes []common.Hash
	if err := json.Unmarshal([]byte(v.String), &hashes); err != nil {
		return nil, err
	}
	return hashes, nil
}
