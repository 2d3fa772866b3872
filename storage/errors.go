package storage

import (
	"github.com/pkg/errors"

	"github.com/bhdao/bhdao/util"
)

var (
	StorageError = util.NewError("storage error")
	TimeoutError = StorageError.New("timeout")
	CodecError   = StorageError.New("codec error")
)

func WrapStorageError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, StorageError):
		return err
	default:
		return StorageError.Wrap(err)
	}
}
