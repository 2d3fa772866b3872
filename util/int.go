package util

import (
	"encoding/binary"
	"math"

	"github.com/pkg/errors"
)

// AddUint64 adds without wrapping; it fails with OverflowError instead.
func AddUint64(a, b uint64) (uint64, error) {
	if a > math.MaxUint64-b {
		return 0, OverflowError.Errorf("%d + %d", a, b)
	}

	return a + b, nil
}

// AddUint32 adds without wrapping; it fails with OverflowError instead.
func AddUint32(a, b uint32) (uint32, error) {
	if a > math.MaxUint32-b {
		return 0, OverflowError.Errorf("%d + %d", a, b)
	}

	return a + b, nil
}

func Uint64ToBytes(i uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, i)

	return b
}

func BytesToUint64(b []byte) (uint64, error) {
	if len(b) != 8 {
		return 0, errors.Errorf("wrong length for uint64, %d", len(b))
	}

	return binary.BigEndian.Uint64(b), nil
}

func Uint32ToBytes(i uint32) []byte {
	b := make([]byte, 4)
	binary.BigEndian.PutUint32(b, i)

	return b
}
