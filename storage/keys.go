package storage

import (
	"github.com/bhdao/bhdao/util"
)

var (
	KeyPrefixTick                = []byte{0x00, 0x01}
	KeyPrefixTotalTransactions   = []byte{0x00, 0x02}
	KeyPrefixAccountTransactions = []byte{0x00, 0x03}
	KeyPrefixCollection          = []byte{0x01, 0x01}
	KeyPrefixTotalCollections    = []byte{0x01, 0x02}
	KeyPrefixToken               = []byte{0x01, 0x03}
	KeyPrefixActiveTokens        = []byte{0x01, 0x04}
	KeyPrefixTotalTokens         = []byte{0x01, 0x05}
	KeyPrefixMembers             = []byte{0x02, 0x01}
	KeyPrefixMembershipCount     = []byte{0x02, 0x02}
	KeyPrefixDocument            = []byte{0x03, 0x01}
	KeyPrefixTotalDocuments      = []byte{0x03, 0x02}
	KeyPrefixRound               = []byte{0x04, 0x01}
	KeyPrefixRoundCount          = []byte{0x04, 0x02}
	KeyPrefixReceipt             = []byte{0x04, 0x03}
	KeyPrefixParams              = []byte{0x04, 0x04}
)

var keySeparator = []byte{0x00}

// Key joins prefix and parts with 0x00. Variable length parts, like address,
// never contain 0x00 and integer parts have fixed width, so keys do not
// collide.
func Key(prefix []byte, parts ...[]byte) []byte {
	sl := make([][]byte, 0, len(parts)*2+1)
	sl = append(sl, prefix)

	for i := range parts {
		sl = append(sl, keySeparator, parts[i])
	}

	return util.ConcatBytesSlice(sl...)
}
