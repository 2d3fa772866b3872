package storage

import (
	"context"
	"sync"

	"github.com/bhdao/bhdao/events"
	"github.com/bhdao/bhdao/util"
)

// Statepool collects the writes and events of one call on top of Database.
// Reads see the call's own writes first. Nothing reaches Database until
// Commit, so a call that fails before Commit leaves the state untouched.
type Statepool struct {
	sync.RWMutex
	db      Database
	cached  map[string][]byte
	updated map[string]Mutation
	events  []events.Event
}

func NewStatepool(db Database) *Statepool {
	return &Statepool{
		db:      db,
		cached:  map[string][]byte{},
		updated: map[string]Mutation{},
	}
}

func (sp *Statepool) Get(key []byte) ([]byte, bool, error) {
	sp.Lock()
	defer sp.Unlock()

	k := string(key)

	if m, found := sp.updated[k]; found {
		if m.Remove {
			return nil, false, nil
		}

		return util.CopyBytes(m.Value), true, nil
	}

	if b, found := sp.cached[k]; found {
		return util.CopyBytes(b), b != nil, nil
	}

	b, found, err := sp.db.Get(key)
	if err != nil {
		return nil, false, err
	}

	if found {
		sp.cached[k] = b
	} else {
		sp.cached[k] = nil
	}

	return util.CopyBytes(b), found, nil
}

// Set encodes v and stages it under key.
func (sp *Statepool) Set(key []byte, v interface{}) error {
	b, err := Marshal(v)
	if err != nil {
		return err
	}

	sp.SetRaw(key, b)

	return nil
}

func (sp *Statepool) SetRaw(key, b []byte) {
	sp.Lock()
	defer sp.Unlock()

	sp.updated[string(key)] = Mutation{Key: util.CopyBytes(key), Value: util.CopyBytes(b)}
}

func (sp *Statepool) SetCounter(key []byte, i uint64) {
	sp.SetRaw(key, util.Uint64ToBytes(i))
}

func (sp *Statepool) Remove(key []byte) {
	sp.Lock()
	defer sp.Unlock()

	sp.updated[string(key)] = Mutation{Key: util.CopyBytes(key), Remove: true}
}

// Emit stages events; they are handed out by Events after Commit.
func (sp *Statepool) Emit(evs ...events.Event) {
	sp.Lock()
	defer sp.Unlock()

	sp.events = append(sp.events, evs...)
}

func (sp *Statepool) Events() []events.Event {
	sp.RLock()
	defer sp.RUnlock()

	evs := make([]events.Event, len(sp.events))
	copy(evs, sp.events)

	return evs
}

func (sp *Statepool) IsUpdated() bool {
	sp.RLock()
	defer sp.RUnlock()

	return len(sp.updated) > 0
}

// Mutations returns the staged writes sorted by key.
func (sp *Statepool) Mutations() []Mutation {
	sp.RLock()
	defer sp.RUnlock()

	ms := make([]Mutation, len(sp.updated))

	var i int
	for k := range sp.updated {
		ms[i] = sp.updated[k]
		i++
	}

	sortMutations(ms)

	return ms
}

// Commit writes every staged mutation to Database at once.
func (sp *Statepool) Commit(ctx context.Context) error {
	if !sp.IsUpdated() {
		return nil
	}

	return WrapStorageError(sp.db.Write(ctx, sp.Mutations()))
}

// NextCounter returns the counter of key plus one. It does not stage
// anything.
func NextCounter(r Reader, key []byte) (uint64, error) {
	i, err := LoadCounter(r, key)
	if err != nil {
		return 0, err
	}

	return util.AddUint64(i, 1)
}
