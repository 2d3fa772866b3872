package dao

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/bhdao/bhdao/base"
	"github.com/bhdao/bhdao/document"
	"github.com/bhdao/bhdao/events"
	"github.com/bhdao/bhdao/role"
	"github.com/bhdao/bhdao/storage"
	"github.com/bhdao/bhdao/token"
	"github.com/bhdao/bhdao/util"
	"github.com/bhdao/bhdao/util/logging"
	"github.com/bhdao/bhdao/voting"
)

// DAO serializes governance calls. Each call runs on its own Statepool: it
// is committed only when the call succeeds and its events are emitted only
// after commit.
type DAO struct {
	sync.Mutex
	*logging.Logging
	db        storage.Database
	ticker    Ticker
	sink      events.Sink
	ledger    *token.Ledger
	registry  *role.Registry
	documents *document.Lifecycle
	voting    *voting.Engine
}

func NewDAO(db storage.Database, ticker Ticker, sink events.Sink) *DAO {
	if sink == nil {
		sink = events.Sinks(nil)
	}

	ledger := token.NewLedger()
	registry := role.NewRegistry(ledger)
	documents := document.NewLifecycle(registry)

	return &DAO{
		Logging:   logging.NewModuleLogging("dao"),
		db:        db,
		ticker:    ticker,
		sink:      sink,
		ledger:    ledger,
		registry:  registry,
		documents: documents,
		voting:    voting.NewEngine(registry, documents),
	}
}

func (d *DAO) SetLogging(l *logging.Logging) *logging.Logging {
	_ = d.ledger.SetLogging(l)
	_ = d.registry.SetLogging(l)
	_ = d.documents.SetLogging(l)
	_ = d.voting.SetLogging(l)

	return d.Logging.SetLogging(l)
}

// call runs f on a new Statepool and commits it. Every check of f happens
// before its first write, so a failed call leaves nothing behind.
func (d *DAO) call(
	ctx context.Context,
	op string,
	caller base.Caller,
	f func(*storage.Statepool, base.Tick) error,
) error {
	d.Lock()
	defer d.Unlock()

	now, err := d.ticker.Now()
	if err != nil {
		return err
	}

	l := d.Log().With().
		Str("call", util.UUID().String()).
		Str("op", op).
		Stringer("caller", caller).
		Stringer("tick", now).
		Logger()

	l.Debug().Msg("call")

	sp := storage.NewStatepool(d.db)
	if err := f(sp, now); err != nil {
		l.Debug().Err(err).Msg("call failed")

		return err
	}

	if err := d.countTransaction(sp, caller); err != nil {
		l.Debug().Err(err).Msg("failed to count transaction")

		return err
	}

	if err := sp.Commit(ctx); err != nil {
		l.Error().Err(err).Msg("failed to commit")

		return err
	}

	d.emit(l, now, sp.Events())

	l.Debug().Msg("call committed")

	return nil
}

func (d *DAO) emit(l zerolog.Logger, now base.Tick, evs []events.Event) {
	if len(evs) < 1 {
		return
	}

	rs := make([]events.Record, len(evs))
	for i := range evs {
		rs[i] = events.NewRecord(now, evs[i])
	}

	if err := d.sink.Emit(rs...); err != nil {
		l.Error().Err(err).Int("events", len(rs)).Msg("failed to emit events")
	}
}

// countTransaction counts the calls of signed accounts; calls of the
// privileged caller are not counted.
func (*DAO) countTransaction(sp *storage.Statepool, caller base.Caller) error {
	if caller.IsPrivileged() {
		return nil
	}

	total, err := storage.NextCounter(sp, totalTransactionsKey)
	if err != nil {
		return err
	}

	key := accountTransactionsKey(caller.Address())

	n, err := storage.NextCounter(sp, key)
	if err != nil {
		return err
	}

	sp.SetCounter(totalTransactionsKey, total)
	sp.SetCounter(key, n)

	return nil
}

var totalTransactionsKey = storage.Key(storage.KeyPrefixTotalTransactions)

func accountTransactionsKey(a base.Address) []byte {
	return storage.Key(storage.KeyPrefixAccountTransactions, a.Bytes())
}
