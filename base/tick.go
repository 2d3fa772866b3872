package base

import (
	"strconv"

	"github.com/bhdao/bhdao/util"
)

// Tick is the host's logical clock, usually the block number. It never goes
// back.
type Tick uint64

func NewTickFromString(s string) (Tick, error) {
	i, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, err
	}

	return Tick(i), nil
}

func (t Tick) Uint64() uint64 {
	return uint64(t)
}

func (t Tick) String() string {
	return strconv.FormatUint(uint64(t), 10)
}

// Add returns t + d; it fails instead of wrapping.
func (t Tick) Add(d uint32) (Tick, error) {
	i, err := util.AddUint64(uint64(t), uint64(d))
	if err != nil {
		return 0, err
	}

	return Tick(i), nil
}

// Between reports whether t lies strictly inside (start, end).
func (t Tick) Between(start, end Tick) bool {
	return t > start && t < end
}
