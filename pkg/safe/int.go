// Package safe provides helpers for safe numeric conversions with overflow checks.
package safe

import (
	"fmt"
	"math"
)

// Integer lists the integer kinds accepted by the conversion helpers.
type Integer interface {
	~int | ~int32 | ~int64 | ~uint | ~uint8 | ~uint32 | ~uint64
}

// Uint8 converts v to uint8 with range validation.
func Uint8[T Integer](v T) (uint8, error) {
	u, err := bounded(v, math.MaxUint8, "uint8")
	return uint8(u), err
}

// Uint32 converts v to uint32 with range validation.
func Uint32[T Integer](v T) (uint32, error) {
	u, err := bounded(v, math.MaxUint32, "uint32")
	return uint32(u), err
}

// Uint64 converts v to uint64 while guarding against negatives.
func Uint64[T Integer](v T) (uint64, error) {
	return bounded(v, math.MaxUint64, "uint64")
}

// Int64 converts v to int64, rejecting unsigned values above math.MaxInt64.
func Int64[T Integer](v T) (int64, error) {
	u, err := bounded(v, math.MaxInt64, "int64")
	if err != nil {
		return 0, err
	}
	return int64(u), nil
}

func bounded[T Integer](v T, limit uint64, kind string) (uint64, error) {
	if v < 0 {
		return 0, fmt.Errorf("value %d out of %s range", v, kind)
	}
	u := uint64(v)
	if u > limit {
		return 0, fmt.Errorf("value %d out of %s range", v, kind)
	}
	return u, nil
}
