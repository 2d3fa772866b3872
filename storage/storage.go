package storage

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/bhdao/bhdao/util"
)

// Reader reads raw records; found is false when the key does not exist.
type Reader interface {
	Get(key []byte) ([]byte, bool, error)
}

// Database is the persisted key/value state. Write applies every mutation or
// none of them.
type Database interface {
	Reader
	Write(context.Context, []Mutation) error
	Close() error
}

// Mutation sets Value under Key, or removes Key when Remove is true.
type Mutation struct {
	Key    []byte
	Value  []byte
	Remove bool
}

func sortMutations(ms []Mutation) {
	sort.Slice(ms, func(i, j int) bool {
		return strings.Compare(string(ms[i].Key), string(ms[j].Key)) < 0
	})
}

// MemDatabase is in-memory Database.
type MemDatabase struct {
	sync.RWMutex
	m map[string][]byte
}

func NewMemDatabase() *MemDatabase {
	return &MemDatabase{m: map[string][]byte{}}
}

func (db *MemDatabase) Get(key []byte) ([]byte, bool, error) {
	db.RLock()
	defer db.RUnlock()

	b, found := db.m[string(key)]
	if !found {
		return nil, false, nil
	}

	return util.CopyBytes(b), true, nil
}

func (db *MemDatabase) Write(ctx context.Context, ms []Mutation) error {
	if err := ctx.Err(); err != nil {
		return TimeoutError.Wrap(err)
	}

	db.Lock()
	defer db.Unlock()

	for i := range ms {
		if ms[i].Remove {
			delete(db.m, string(ms[i].Key))

			continue
		}

		db.m[string(ms[i].Key)] = util.CopyBytes(ms[i].Value)
	}

	return nil
}

func (db *MemDatabase) Close() error {
	return nil
}

func (db *MemDatabase) Len() int {
	db.RLock()
	defer db.RUnlock()

	return len(db.m)
}
