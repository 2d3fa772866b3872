package token

import (
	"github.com/bhdao/bhdao/base"
	"github.com/bhdao/bhdao/storage"
	"github.com/bhdao/bhdao/util"
)

var (
	CollectionExistsError   = util.ConflictError.New("collection already exists")
	CollectionNotFoundError = util.NotFoundError.New("collection does not exist")
	MaxSupplyReachedError   = util.ConflictError.New("token max supply reached")
	OneTokenPerAccountError = util.ConflictError.New("one account, one token")
	TokenNotFoundError      = util.NotFoundError.New("token does not exist")
	ActiveTokensError       = util.OverflowError.New("active tokens underflow")
)

// Collection is a capped set of membership tokens.
type Collection struct {
	ID          base.CollectionID `bson:"id" json:"id"`
	TotalSupply uint32            `bson:"total_supply" json:"total_supply"`
	CreatedAt   base.Tick         `bson:"created_at" json:"created_at"`
	Metadata    []byte            `bson:"metadata" json:"metadata"`
}

// Token is owned by one account; an account holds at most one token of a
// collection.
type Token struct {
	ID         uint32            `bson:"id" json:"id"`
	Collection base.CollectionID `bson:"collection" json:"collection"`
	Owner      base.Address      `bson:"owner" json:"owner"`
}

func collectionKey(id base.CollectionID) []byte {
	return storage.Key(storage.KeyPrefixCollection, util.Uint32ToBytes(uint32(id)))
}

func tokenKey(owner base.Address, id base.CollectionID) []byte {
	return storage.Key(storage.KeyPrefixToken, owner.Bytes(), util.Uint32ToBytes(uint32(id)))
}

func activeTokensKey(id base.CollectionID) []byte {
	return storage.Key(storage.KeyPrefixActiveTokens, util.Uint32ToBytes(uint32(id)))
}

func totalTokensKey(id base.CollectionID) []byte {
	return storage.Key(storage.KeyPrefixTotalTokens, util.Uint32ToBytes(uint32(id)))
}

var totalCollectionsKey = storage.Key(storage.KeyPrefixTotalCollections)
