package token

import (
	"math"

	"github.com/bhdao/bhdao/base"
	"github.com/bhdao/bhdao/storage"
	"github.com/bhdao/bhdao/util"
	"github.com/bhdao/bhdao/util/logging"
)

// Ledger issues membership tokens. Every operation checks all of its
// preconditions before it stages the first write into the Statepool.
type Ledger struct {
	*logging.Logging
}

func NewLedger() *Ledger {
	return &Ledger{
		Logging: logging.NewModuleLogging("token-ledger"),
	}
}

func (l *Ledger) CreateCollection(
	sp *storage.Statepool,
	caller base.Caller,
	id base.CollectionID,
	totalSupply uint32,
	metadata []byte,
	now base.Tick,
) error {
	if err := caller.EnsurePrivileged(); err != nil {
		return err
	}

	switch _, found, err := l.Collection(sp, id); {
	case err != nil:
		return err
	case found:
		return CollectionExistsError.Errorf("collection=%d", id)
	}

	total, err := l.TotalCollections(sp)
	if err != nil {
		return err
	}

	total, err = util.AddUint32(total, 1)
	if err != nil {
		return err
	}

	if err := sp.Set(collectionKey(id), Collection{
		ID:          id,
		TotalSupply: totalSupply,
		CreatedAt:   now,
		Metadata:    util.CopyBytes(metadata),
	}); err != nil {
		return err
	}

	sp.SetCounter(totalCollectionsKey, uint64(total))
	sp.Emit(CollectionCreated{Collection: id})

	l.Log().Debug().Uint32("collection", uint32(id)).Uint32("total_supply", totalSupply).Msg("collection created")

	return nil
}

// Mint issues the next token of collection to owner. Token ids come from the
// mint sequence of the collection and are never reused after burn.
func (l *Ledger) Mint(
	sp *storage.Statepool,
	caller base.Caller,
	id base.CollectionID,
	owner base.Address,
) (Token, error) {
	if err := caller.EnsurePrivileged(); err != nil {
		return Token{}, err
	}

	if err := owner.IsValid(nil); err != nil {
		return Token{}, err
	}

	col, found, err := l.Collection(sp, id)
	switch {
	case err != nil:
		return Token{}, err
	case !found:
		return Token{}, CollectionNotFoundError.Errorf("collection=%d", id)
	}

	active, err := l.ActiveTokens(sp, id)
	if err != nil {
		return Token{}, err
	}

	if active >= col.TotalSupply {
		return Token{}, MaxSupplyReachedError.Errorf("collection=%d total_supply=%d", id, col.TotalSupply)
	}

	switch _, found, err := l.Token(sp, owner, id); {
	case err != nil:
		return Token{}, err
	case found:
		return Token{}, OneTokenPerAccountError.Errorf("collection=%d owner=%s", id, owner)
	}

	total, err := l.TotalTokens(sp, id)
	if err != nil {
		return Token{}, err
	}

	uid, err := util.AddUint32(total, 1)
	if err != nil {
		return Token{}, err
	}

	t := Token{ID: uid, Collection: id, Owner: owner}
	if err := sp.Set(tokenKey(owner, id), t); err != nil {
		return Token{}, err
	}

	sp.SetCounter(activeTokensKey(id), uint64(active)+1)
	sp.SetCounter(totalTokensKey(id), uint64(uid))
	sp.Emit(TokenMinted{Collection: id, Token: uid, Owner: owner})

	l.Log().Debug().Uint32("collection", uint32(id)).Uint32("token", uid).Stringer("owner", owner).Msg("token minted")

	return t, nil
}

// Burn removes the token the caller holds in collection.
func (l *Ledger) Burn(sp *storage.Statepool, caller base.Caller, id base.CollectionID) (Token, error) {
	owner, err := caller.EnsureSigned()
	if err != nil {
		return Token{}, err
	}

	t, found, err := l.Token(sp, owner, id)
	switch {
	case err != nil:
		return Token{}, err
	case !found:
		return Token{}, TokenNotFoundError.Errorf("collection=%d owner=%s", id, owner)
	}

	active, err := l.ActiveTokens(sp, id)
	if err != nil {
		return Token{}, err
	}

	// a held token is always counted as active
	if active < 1 {
		return Token{}, ActiveTokensError.Errorf("collection=%d", id)
	}

	sp.Remove(tokenKey(owner, id))
	sp.SetCounter(activeTokensKey(id), uint64(active)-1)
	sp.Emit(TokenBurned{Collection: id, Token: t.ID, Owner: owner})

	l.Log().Debug().Uint32("collection", uint32(id)).Uint32("token", t.ID).Stringer("owner", owner).Msg("token burned")

	return t, nil
}

func (*Ledger) Collection(r storage.Reader, id base.CollectionID) (Collection, bool, error) {
	var col Collection
	found, err := storage.Load(r, collectionKey(id), &col)

	return col, found, err
}

func (*Ledger) Token(r storage.Reader, owner base.Address, id base.CollectionID) (Token, bool, error) {
	var t Token
	found, err := storage.Load(r, tokenKey(owner, id), &t)

	return t, found, err
}

func (*Ledger) TotalCollections(r storage.Reader) (uint32, error) {
	return loadUint32Counter(r, totalCollectionsKey)
}

// ActiveTokens is the number of live tokens of collection.
func (*Ledger) ActiveTokens(r storage.Reader, id base.CollectionID) (uint32, error) {
	return loadUint32Counter(r, activeTokensKey(id))
}

// TotalTokens is the mint sequence of collection; burn does not decrease it.
func (*Ledger) TotalTokens(r storage.Reader, id base.CollectionID) (uint32, error) {
	return loadUint32Counter(r, totalTokensKey(id))
}

func loadUint32Counter(r storage.Reader, key []byte) (uint32, error) {
	i, err := storage.LoadCounter(r, key)
	if err != nil {
		return 0, err
	}

	if i > math.MaxUint32 {
		return 0, storage.CodecError.Errorf("counter over uint32, %d", i)
	}

	return uint32(i), nil
}
