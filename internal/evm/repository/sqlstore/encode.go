package sqlstore

import (
	"encoding/json"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// hashList serializes identifiers as a JSON array of 0x strings, or NULL when there are none.
func hashList(hashes []common.Hash) (any, error) {
	if len(hashes) == 0 {
		return nil, nil
	}
	data, err := json.Marshal(hashes)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func decimal(v *big.Int) any {
	if v == nil {
		return nil
	}
	return v.String()
}

// bytesOrEmpty keeps NOT NULL binary columns from receiving NULL for empty payloads.
func bytesOrEmpty(b []byte) []byte {
	if b == nil {
		return []byte{}
	}
	return b
}
