package leveldbstorage

import (
	"context"

	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	leveldbErrors "github.com/syndtr/goleveldb/leveldb/errors"
	"github.com/syndtr/goleveldb/leveldb/opt"
	leveldbStorage "github.com/syndtr/goleveldb/leveldb/storage"

	"github.com/bhdao/bhdao/storage"
	"github.com/bhdao/bhdao/util"
	"github.com/bhdao/bhdao/util/cache"
	"github.com/bhdao/bhdao/util/logging"
)

type Database struct {
	*logging.Logging
	db    *leveldb.DB
	cache cache.Cache
}

func NewDatabase(db *leveldb.DB, ca cache.Cache) *Database {
	if ca == nil {
		ca = cache.Dummy{}
	}

	return &Database{
		Logging: logging.NewModuleLogging("leveldb-database"),
		db:      db,
		cache:   ca,
	}
}

// NewMemDatabase opens leveldb on memory.
func NewMemDatabase() *Database {
	db, _ := leveldb.Open(leveldbStorage.NewMemStorage(), nil)

	return NewDatabase(db, nil)
}

func NewDatabaseFromPath(f string, ca cache.Cache) (*Database, error) {
	db, err := leveldb.OpenFile(f, nil)
	if err != nil {
		return nil, storage.WrapStorageError(errors.Wrapf(err, "failed to open leveldb, %q", f))
	}

	return NewDatabase(db, ca), nil
}

func (st *Database) DB() *leveldb.DB {
	return st.db
}

func (st *Database) Close() error {
	return mergeError(st.db.Close())
}

func (st *Database) Get(key []byte) ([]byte, bool, error) {
	k := string(key)
	if b, found := st.cache.Get(k); found {
		return util.CopyBytes(b), true, nil
	}

	b, err := st.db.Get(key, nil)
	switch {
	case err == nil:
	case errors.Is(err, leveldbErrors.ErrNotFound):
		return nil, false, nil
	default:
		return nil, false, mergeError(err)
	}

	if err := st.cache.Set(k, b); err != nil {
		st.Log().Debug().Err(err).Msg("failed to cache record")
	}

	return util.CopyBytes(b), true, nil
}

// Write applies mutations in one leveldb batch.
func (st *Database) Write(ctx context.Context, ms []storage.Mutation) error {
	if err := ctx.Err(); err != nil {
		return storage.TimeoutError.Wrap(err)
	}

	batch := &leveldb.Batch{}
	for i := range ms {
		if ms[i].Remove {
			batch.Delete(ms[i].Key)
		} else {
			batch.Put(ms[i].Key, ms[i].Value)
		}
	}

	if err := st.db.Write(batch, &opt.WriteOptions{Sync: true}); err != nil {
		return mergeError(err)
	}

	for i := range ms {
		_ = st.cache.Remove(string(ms[i].Key))
	}

	st.Log().Trace().Int("mutations", len(ms)).Msg("written")

	return nil
}

func mergeError(err error) error {
	if err == nil {
		return nil
	}

	return storage.WrapStorageError(err)
}
