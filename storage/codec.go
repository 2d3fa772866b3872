package storage

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/bhdao/bhdao/util"
)

// Marshal encodes record as bson document.
func Marshal(v interface{}) ([]byte, error) {
	b, err := bson.Marshal(v)
	if err != nil {
		return nil, CodecError.Wrap(err)
	}

	return b, nil
}

func Unmarshal(b []byte, v interface{}) error {
	if err := bson.Unmarshal(b, v); err != nil {
		return CodecError.Wrap(err)
	}

	return nil
}

// Load decodes the record of key into v.
func Load(r Reader, key []byte, v interface{}) (bool, error) {
	switch b, found, err := r.Get(key); {
	case err != nil:
		return false, err
	case !found:
		return false, nil
	default:
		return true, Unmarshal(b, v)
	}
}

// LoadCounter returns the counter of key; missing counter is zero.
func LoadCounter(r Reader, key []byte) (uint64, error) {
	switch b, found, err := r.Get(key); {
	case err != nil:
		return 0, err
	case !found:
		return 0, nil
	default:
		i, err := util.BytesToUint64(b)
		if err != nil {
			return 0, CodecError.Wrap(err)
		}

		return i, nil
	}
}
