package token

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/suite"

	"github.com/bhdao/bhdao/base"
	"github.com/bhdao/bhdao/storage"
	"github.com/bhdao/bhdao/util"
)

type testLedger struct {
	suite.Suite
	db     *storage.MemDatabase
	ledger *Ledger
	admin  base.Caller
}

func (t *testLedger) SetupTest() {
	t.db = storage.NewMemDatabase()
	t.ledger = NewLedger()
	t.admin = base.NewPrivilegedCaller()
}

func (t *testLedger) commit(sp *storage.Statepool) {
	t.NoError(sp.Commit(context.Background()))
}

func (t *testLedger) newCollection(id base.CollectionID, supply uint32) {
	sp := storage.NewStatepool(t.db)
	t.NoError(t.ledger.CreateCollection(sp, t.admin, id, supply, []byte("showme"), 3))
	t.commit(sp)
}

func (t *testLedger) TestCreateCollection() {
	sp := storage.NewStatepool(t.db)
	t.NoError(t.ledger.CreateCollection(sp, t.admin, 1, 200, []byte("Qualifiers"), 33))
	t.commit(sp)

	col, found, err := t.ledger.Collection(t.db, 1)
	t.NoError(err)
	t.True(found)
	t.Equal(Collection{ID: 1, TotalSupply: 200, CreatedAt: 33, Metadata: []byte("Qualifiers")}, col)

	total, err := t.ledger.TotalCollections(t.db)
	t.NoError(err)
	t.Equal(uint32(1), total)

	t.Equal([]string{"CollectionCreated"}, eventNames(sp))
}

func (t *testLedger) TestCreateCollectionNotPrivileged() {
	sp := storage.NewStatepool(t.db)
	err := t.ledger.CreateCollection(sp, base.NewSignedCaller("a0"), 1, 200, nil, 33)
	t.True(errors.Is(err, base.NotPrivilegedError))
	t.True(errors.Is(err, util.UnauthorizedError))
	t.False(sp.IsUpdated())
}

func (t *testLedger) TestCreateCollectionExists() {
	t.newCollection(1, 10)

	sp := storage.NewStatepool(t.db)
	err := t.ledger.CreateCollection(sp, t.admin, 1, 20, nil, 34)
	t.True(errors.Is(err, CollectionExistsError))
	t.True(errors.Is(err, util.ConflictError))
	t.False(sp.IsUpdated())
	t.Empty(sp.Events())
}

func (t *testLedger) TestMint() {
	t.newCollection(2, 10)

	sp := storage.NewStatepool(t.db)
	tk, err := t.ledger.Mint(sp, t.admin, 2, "a0")
	t.NoError(err)
	t.Equal(Token{ID: 1, Collection: 2, Owner: "a0"}, tk)

	tk, err = t.ledger.Mint(sp, t.admin, 2, "a1")
	t.NoError(err)
	t.Equal(uint32(2), tk.ID)
	t.commit(sp)

	active, err := t.ledger.ActiveTokens(t.db, 2)
	t.NoError(err)
	t.Equal(uint32(2), active)

	total, err := t.ledger.TotalTokens(t.db, 2)
	t.NoError(err)
	t.Equal(uint32(2), total)

	stored, found, err := t.ledger.Token(t.db, "a1", 2)
	t.NoError(err)
	t.True(found)
	t.Equal(tk, stored)

	t.Equal([]string{"TokenMinted", "TokenMinted"}, eventNames(sp))
}

func (t *testLedger) TestMintUnknownCollection() {
	sp := storage.NewStatepool(t.db)
	_, err := t.ledger.Mint(sp, t.admin, 9, "a0")
	t.True(errors.Is(err, CollectionNotFoundError))
	t.True(errors.Is(err, util.NotFoundError))
}

func (t *testLedger) TestMintNotPrivileged() {
	t.newCollection(1, 10)

	sp := storage.NewStatepool(t.db)
	_, err := t.ledger.Mint(sp, base.NewSignedCaller("a0"), 1, "a0")
	t.True(errors.Is(err, base.NotPrivilegedError))
}

func (t *testLedger) TestMintOneTokenPerAccount() {
	t.newCollection(1, 10)

	sp := storage.NewStatepool(t.db)
	_, err := t.ledger.Mint(sp, t.admin, 1, "a0")
	t.NoError(err)
	t.commit(sp)

	sp = storage.NewStatepool(t.db)
	_, err = t.ledger.Mint(sp, t.admin, 1, "a0")
	t.True(errors.Is(err, OneTokenPerAccountError))
	t.False(sp.IsUpdated())

	// another collection is fine
	t.newCollection(2, 10)
	sp = storage.NewStatepool(t.db)
	_, err = t.ledger.Mint(sp, t.admin, 2, "a0")
	t.NoError(err)
}

func (t *testLedger) TestCapacity() {
	t.newCollection(7, 1)

	sp := storage.NewStatepool(t.db)
	_, err := t.ledger.Mint(sp, t.admin, 7, "a1")
	t.NoError(err)
	t.commit(sp)

	sp = storage.NewStatepool(t.db)
	_, err = t.ledger.Mint(sp, t.admin, 7, "a2")
	t.True(errors.Is(err, MaxSupplyReachedError))
	t.False(sp.IsUpdated())

	sp = storage.NewStatepool(t.db)
	tk, err := t.ledger.Burn(sp, base.NewSignedCaller("a1"), 7)
	t.NoError(err)
	t.Equal(uint32(1), tk.ID)
	t.commit(sp)

	active, err := t.ledger.ActiveTokens(t.db, 7)
	t.NoError(err)
	t.Equal(uint32(0), active)

	_, found, err := t.ledger.Token(t.db, "a1", 7)
	t.NoError(err)
	t.False(found)

	// capacity is free again, but the mint sequence is not reused
	sp = storage.NewStatepool(t.db)
	tk, err = t.ledger.Mint(sp, t.admin, 7, "a2")
	t.NoError(err)
	t.Equal(uint32(2), tk.ID)
	t.commit(sp)

	total, err := t.ledger.TotalTokens(t.db, 7)
	t.NoError(err)
	t.Equal(uint32(2), total)
}

func (t *testLedger) TestBurnWithoutToken() {
	t.newCollection(1, 10)

	sp := storage.NewStatepool(t.db)
	_, err := t.ledger.Burn(sp, base.NewSignedCaller("a0"), 1)
	t.True(errors.Is(err, TokenNotFoundError))
	t.False(sp.IsUpdated())
}

func (t *testLedger) TestBurnByPrivileged() {
	sp := storage.NewStatepool(t.db)
	_, err := t.ledger.Burn(sp, t.admin, 1)
	t.True(errors.Is(err, base.NotSignedError))
}

func (t *testLedger) TestBurnActiveUnderflow() {
	t.newCollection(1, 10)

	// token record without active counter
	sp := storage.NewStatepool(t.db)
	t.NoError(sp.Set(tokenKey("a0", 1), Token{ID: 1, Collection: 1, Owner: "a0"}))
	t.commit(sp)

	sp = storage.NewStatepool(t.db)
	_, err := t.ledger.Burn(sp, base.NewSignedCaller("a0"), 1)
	t.True(errors.Is(err, ActiveTokensError))
	t.True(errors.Is(err, util.OverflowError))
	t.False(sp.IsUpdated())
}

func (t *testLedger) TestMintSequenceOverflow() {
	t.newCollection(1, 10)

	sp := storage.NewStatepool(t.db)
	sp.SetCounter(totalTokensKey(1), uint64(^uint32(0)))
	t.commit(sp)

	sp = storage.NewStatepool(t.db)
	_, err := t.ledger.Mint(sp, t.admin, 1, "a0")
	t.True(errors.Is(err, util.OverflowError))
	t.False(sp.IsUpdated())
}

func eventNames(sp *storage.Statepool) []string {
	evs := sp.Events()
	names := make([]string, len(evs))
	for i := range evs {
		names[i] = evs[i].EventName()
	}

	return names
}

func TestLedger(t *testing.T) {
	suite.Run(t, new(testLedger))
}
