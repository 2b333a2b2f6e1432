package chain

import (
	"strconv"

	"github.com/ethereum/go-ethereum/common"
)

// BlockID identifies a block either by number or by hash.
type BlockID struct {
	number uint64
	hash   common.Hash
	byHash bool
}

// ByNumber returns an identifier for the block at number n.
func ByNumber(n uint64) BlockID {
	return BlockID{number: n}
}

// ByHash returns an identifier for the block with hash h.
func ByHash(h common.Hash) BlockID {
	return BlockID{hash: h, byHash: true}
}

// Number returns the block number and true when the identifier is a number.
func (id BlockID) Number() (uint64, bool) {
	return id.number, !id.byHash
}

// Hash returns the block hash and true when the identifier is a hash.
func (id BlockID) Hash() (common.Hash, bool) {
	return id.hash, id.byHash
}

// Matches reports whether a block with the given number and hash is the one identified.
func (id BlockID) Matches(number uint64, hash common.Hash) bool {
	if id.byHash {
		return id.hash == hash
	}
	return id.number == number
}

func (id BlockID) String() string {
	if id.byHash {
		return id.hash.Hex()
	}
	return "#" + strconv.FormatUint(id.number, 10)
}
