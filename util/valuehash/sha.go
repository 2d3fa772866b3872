package valuehash

import (
	"bytes"
	"io"

	"github.com/btcsuite/btcutil/base58"
	"github.com/pkg/errors"
	"golang.org/x/crypto/sha3"

	"github.com/bhdao/bhdao/util/isvalid"
)

const SHA256Size = 32

// SHA256 is sha3-256 digest. Its text form is base58.
type SHA256 [SHA256Size]byte

var EmptySHA256 = SHA256{}

func NewSHA256(b []byte) SHA256 {
	return SHA256(sha3.Sum256(b))
}

// NewSHA256FromReader hashes everything from r.
func NewSHA256FromReader(r io.Reader) (SHA256, error) {
	h := sha3.New256()
	if _, err := io.Copy(h, r); err != nil {
		return EmptySHA256, errors.Wrap(err, "failed to read for hash")
	}

	var s SHA256
	copy(s[:], h.Sum(nil))

	return s, nil
}

func ParseSHA256(s string) (SHA256, error) {
	b := base58.Decode(s)
	if len(b) != SHA256Size {
		return EmptySHA256, isvalid.InvalidError.Errorf("not sha256 hash, %q", s)
	}

	var h SHA256
	copy(h[:], b)

	return h, nil
}

func (h SHA256) Bytes() []byte {
	return h[:]
}

func (h SHA256) String() string {
	return base58.Encode(h[:])
}

func (h SHA256) Empty() bool {
	return h == EmptySHA256
}

func (h SHA256) Equal(b SHA256) bool {
	return bytes.Equal(h[:], b[:])
}

func (h SHA256) IsValid([]byte) error {
	if h.Empty() {
		return isvalid.InvalidError.Errorf("empty hash")
	}

	return nil
}
