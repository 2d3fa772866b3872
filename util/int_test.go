package util

import (
	"bytes"
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type testInt struct {
	suite.Suite
}

func (t *testInt) TestAddUint64() {
	i, err := AddUint64(1, 2)
	t.NoError(err)
	t.Equal(uint64(3), i)

	i, err = AddUint64(math.MaxUint64-1, 1)
	t.NoError(err)
	t.Equal(uint64(math.MaxUint64), i)

	_, err = AddUint64(math.MaxUint64, 1)
	t.True(errors.Is(err, OverflowError))
}

func (t *testInt) TestAddUint32() {
	i, err := AddUint32(math.MaxUint32-1, 1)
	t.NoError(err)
	t.Equal(uint32(math.MaxUint32), i)

	_, err = AddUint32(math.MaxUint32, 1)
	t.True(errors.Is(err, OverflowError))
}

func (t *testInt) TestUint64Bytes() {
	for _, i := range []uint64{0, 1, 14400, math.MaxUint64} {
		j, err := BytesToUint64(Uint64ToBytes(i))
		t.NoError(err)
		t.Equal(i, j)
	}

	_, err := BytesToUint64([]byte{0x01})
	t.Error(err)
}

func (t *testInt) TestUint32BytesOrdered() {
	// big endian keeps numeric order in byte order
	t.Equal(-1, bytes.Compare(Uint32ToBytes(2), Uint32ToBytes(256)))
}

func TestInt(t *testing.T) {
	suite.Run(t, new(testInt))
}
