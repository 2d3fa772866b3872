package dao

import (
	"context"
	"sync"

	"github.com/bhdao/bhdao/base"
	"github.com/bhdao/bhdao/storage"
	"github.com/bhdao/bhdao/util"
)

// Ticker is the host clock. It never goes back.
type Ticker interface {
	Now() (base.Tick, error)
}

// ManualTicker is moved by hand; tests and embedding hosts use it.
type ManualTicker struct {
	sync.RWMutex
	tick base.Tick
}

func NewManualTicker(tick base.Tick) *ManualTicker {
	return &ManualTicker{tick: tick}
}

func (mt *ManualTicker) Now() (base.Tick, error) {
	mt.RLock()
	defer mt.RUnlock()

	return mt.tick, nil
}

// Set moves the tick to t; t before the current tick is ignored.
func (mt *ManualTicker) Set(t base.Tick) base.Tick {
	mt.Lock()
	defer mt.Unlock()

	if t > mt.tick {
		mt.tick = t
	}

	return mt.tick
}

func (mt *ManualTicker) Advance(d uint64) (base.Tick, error) {
	mt.Lock()
	defer mt.Unlock()

	i, err := util.AddUint64(mt.tick.Uint64(), d)
	if err != nil {
		return mt.tick, err
	}

	mt.tick = base.Tick(i)

	return mt.tick, nil
}

// StoredTicker keeps the tick in the database, so a command line host keeps
// its clock between runs.
type StoredTicker struct {
	sync.Mutex
	db storage.Database
}

var tickKey = storage.Key(storage.KeyPrefixTick)

func NewStoredTicker(db storage.Database) *StoredTicker {
	return &StoredTicker{db: db}
}

func (st *StoredTicker) Now() (base.Tick, error) {
	i, err := storage.LoadCounter(st.db, tickKey)
	if err != nil {
		return 0, err
	}

	return base.Tick(i), nil
}

func (st *StoredTicker) Advance(ctx context.Context, d uint64) (base.Tick, error) {
	st.Lock()
	defer st.Unlock()

	i, err := storage.LoadCounter(st.db, tickKey)
	if err != nil {
		return 0, err
	}

	if i, err = util.AddUint64(i, d); err != nil {
		return 0, err
	}

	if err := st.db.Write(ctx, []storage.Mutation{{Key: tickKey, Value: util.Uint64ToBytes(i)}}); err != nil {
		return 0, storage.WrapStorageError(err)
	}

	return base.Tick(i), nil
}
