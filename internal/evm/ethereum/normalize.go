package ethereum

import (
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/goodnatureofminers/ledgersync/internal/evm/chain"
	"github.com/goodnatureofminers/ledgersync/internal/evm/model"
	"github.com/goodnatureofminers/ledgersync/pkg/safe"
)

const (
	nonceLength     = 8
	signatureLength = 32
)

// Normalizer converts wire records into stored models. It is the only place
// where 0x-prefixed hex is decoded.
type Normalizer struct{}

// NewNormalizer creates a Normalizer.
func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// Normalize decodes a raw block and its inlined transactions.
func (Normalizer) Normalize(raw *chain.RawBlock) (chain.NormalizedBlock, error) {
	if raw == nil {
		return chain.NormalizedBlock{}, fmt.Errorf("%w: nil block", chain.ErrMalformedRecord)
	}

	d := &decoder{record: "block " + raw.Number}
	b := model.Block{
		Number:           d.uint64("number", raw.Number),
		Hash:             d.hash("hash", raw.Hash),
		ParentHash:       d.hash("parentHash", raw.ParentHash),
		Nonce:            d.nonce("nonce", raw.Nonce),
		Sha3Uncles:       d.hash("sha3Uncles", raw.Sha3Uncles),
		LogsBloom:        d.bloom("logsBloom", raw.LogsBloom),
		TransactionsRoot: d.hash("transactionsRoot", raw.TransactionsRoot),
		StateRoot:        d.hash("stateRoot", raw.StateRoot),
		ReceiptsRoot:     d.hash("receiptsRoot", raw.ReceiptsRoot),
		Miner:            d.address("miner", raw.Miner),
		MixHash:          d.optionalHash("mixHash", raw.MixHash),
		Difficulty:       d.big("difficulty", raw.Difficulty),
		TotalDifficulty:  d.optionalBig("totalDifficulty", raw.TotalDifficulty),
		ExtraData:        d.data("extraData", raw.ExtraData),
		Size:             d.uint64("size", raw.Size),
		GasLimit:         d.uint64("gasLimit", raw.GasLimit),
		GasUsed:          d.uint64("gasUsed", raw.GasUsed),
		BaseFeePerGas:    d.optionalBig("baseFeePerGas", raw.BaseFeePerGas),
		Timestamp:        d.timestamp("timestamp", raw.Timestamp),
	}
	for i, uncle := range raw.Uncles {
		b.UncleHashes = append(b.UncleHashes, d.hash(fmt.Sprintf("uncles[%d]", i), uncle))
	}
	if d.err != nil {
		return chain.NormalizedBlock{}, d.err
	}

	var txs []model.Transaction
	for i := range raw.Transactions {
		tx, err := normalizeTransaction(b.Number, &raw.Transactions[i])
		if err != nil {
			return chain.NormalizedBlock{}, err
		}
		txs = append(txs, tx)
		b.TransactionHashes = append(b.TransactionHashes, tx.Hash)
	}

	return chain.NormalizedBlock{Block: b, Transactions: txs}, nil
}

func normalizeTransaction(blockNumber uint64, raw *chain.RawTransaction) (model.Transaction, error) {
	d := &decoder{record: "transaction " + raw.Hash}
	tx := model.Transaction{
		BlockNumber:          blockNumber,
		TransactionIndex:     d.uint32("transactionIndex", raw.TransactionIndex),
		Hash:                 d.hash("hash", raw.Hash),
		From:                 d.address("from", raw.From),
		Value:                d.big("value", raw.Value),
		Gas:                  d.uint64("gas", raw.Gas),
		GasPrice:             d.optionalBig("gasPrice", raw.GasPrice),
		MaxFeePerGas:         d.optionalBig("maxFeePerGas", raw.MaxFeePerGas),
		MaxPriorityFeePerGas: d.optionalBig("maxPriorityFeePerGas", raw.MaxPriorityFeePerGas),
		Nonce:                d.uint64("nonce", raw.Nonce),
		Type:                 d.optionalUint8("type", raw.Type),
		V:                    d.quantityBytes("v", raw.V, 0),
		R:                    d.quantityBytes("r", raw.R, signatureLength),
		S:                    d.quantityBytes("s", raw.S, signatureLength),
		Input:                d.data("input", raw.Input),
	}
	if raw.To != "" {
		to := d.address("to", raw.To)
		tx.To = &to
	}
	if raw.BlockNumber != "" {
		if owner := d.uint64("blockNumber", raw.BlockNumber); d.err == nil && owner != blockNumber {
			d.fail("blockNumber", raw.BlockNumber, fmt.Errorf("transaction belongs to block %d, not %d", owner, blockNumber))
		}
	}
	if d.err != nil {
		return model.Transaction{}, d.err
	}
	return tx, nil
}

// decoder keeps the first decoding failure so field lists read top to bottom.
type decoder struct {
	record string
	err    error
}

func (d *decoder) fail(field, value string, err error) {
	if d.err == nil {
		d.err = fmt.Errorf("%w: %s: %s=%q: %v", chain.ErrMalformedRecord, d.record, field, value, err)
	}
}

func (d *decoder) data(field, s string) []byte {
	if d.err != nil {
		return nil
	}
	b, err := hexutil.Decode(s)
	if err != nil {
		d.fail(field, s, err)
		return nil
	}
	return b
}

func (d *decoder) fixed(field, s string, size int) []byte {
	b := d.data(field, s)
	if d.err != nil {
		return nil
	}
	if len(b) != size {
		d.fail(field, s, fmt.Errorf("got %d bytes, want %d", len(b), size))
		return nil
	}
	return b
}

func (d *decoder) hash(field, s string) common.Hash {
	return common.BytesToHash(d.fixed(field, s, common.HashLength))
}

func (d *decoder) optionalHash(field, s string) common.Hash {
	if s == "" {
		return common.Hash{}
	}
	return d.hash(field, s)
}

func (d *decoder) address(field, s string) common.Address {
	return common.BytesToAddress(d.fixed(field, s, common.AddressLength))
}

func (d *decoder) nonce(field, s string) types.BlockNonce {
	var n types.BlockNonce
	if s == "" {
		return n
	}
	copy(n[:], d.fixed(field, s, nonceLength))
	return n
}

func (d *decoder) bloom(field, s string) types.Bloom {
	return types.BytesToBloom(d.fixed(field, s, types.BloomByteLength))
}

func (d *decoder) uint64(field, s string) uint64 {
	if d.err != nil {
		return 0
	}
	v, err := hexutil.DecodeUint64(s)
	if err != nil {
		d.fail(field, s, err)
		return 0
	}
	return v
}

func (d *decoder) uint32(field, s string) uint32 {
	v := d.uint64(field, s)
	if d.err != nil {
		return 0
	}
	u, err := safe.Uint32(v)
	if err != nil {
		d.fail(field, s, err)
		return 0
	}
	return u
}

func (d *decoder) optionalUint8(field, s string) uint8 {
	if s == "" {
		return 0
	}
	v := d.uint64(field, s)
	if d.err != nil {
		return 0
	}
	u, err := safe.Uint8(v)
	if err != nil {
		d.fail(field, s, err)
		return 0
	}
	return u
}

func (d *decoder) big(field, s string) *big.Int {
	if d.err != nil {
		return nil
	}
	v, err := hexutil.DecodeBig(s)
	if err != nil {
		d.fail(field, s, err)
		return nil
	}
	return v
}

func (d *decoder) optionalBig(field, s string) *big.Int {
	if s == "" {
		return nil
	}
	return d.big(field, s)
}

// timestamp maps the epoch-zero sentinel to one second past the epoch.
func (d *decoder) timestamp(field, s string) time.Time {
	secs := d.uint64(field, s)
	if d.err != nil {
		return time.Time{}
	}
	if secs == 0 {
		secs = 1
	}
	unix, err := safe.Int64(secs)
	if err != nil {
		d.fail(field, s, err)
		return time.Time{}
	}
	return time.Unix(unix, 0).UTC()
}

// quantityBytes decodes a signature quantity. Nodes are not consistent about
// leading zeros here, so odd lengths and zero padding are accepted. A positive
// width left-pads the result; width 0 keeps the minimal encoding, one byte for zero.
func (d *decoder) quantityBytes(field, s string, width int) []byte {
	if d.err != nil {
		return nil
	}
	if len(s) < 2 || s[0] != '0' || (s[1] != 'x' && s[1] != 'X') {
		d.fail(field, s, hexutil.ErrMissingPrefix)
		return nil
	}
	digits := s[2:]
	if digits == "" {
		d.fail(field, s, hexutil.ErrEmptyNumber)
		return nil
	}
	if len(digits)%2 == 1 {
		digits = "0" + digits
	}
	raw, err := hex.DecodeString(digits)
	if err != nil {
		d.fail(field, s, err)
		return nil
	}
	b := new(big.Int).SetBytes(raw).Bytes()
	if width == 0 {
		if len(b) == 0 {
			return []byte{0}
		}
		return b
	}
	if len(b) > width {
		d.fail(field, s, errors.New("value exceeds field width"))
		return nil
	}
	return common.LeftPadBytes(b, width)
}
