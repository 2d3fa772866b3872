package dao

import (
	"github.com/bhdao/bhdao/base"
	"github.com/bhdao/bhdao/document"
	"github.com/bhdao/bhdao/storage"
	"github.com/bhdao/bhdao/token"
	"github.com/bhdao/bhdao/voting"
)

// Queries read the committed state only; they never write.

func (d *DAO) Tick() (base.Tick, error) {
	return d.ticker.Now()
}

func (d *DAO) Document(id uint64) (document.Document, bool, error) {
	return d.documents.Document(d.db, id)
}

func (d *DAO) TotalDocuments() (uint64, error) {
	return d.documents.Total(d.db)
}

func (d *DAO) Round(vt base.VoteType, id uint64) (voting.Vote, bool, error) {
	return d.voting.Round(d.db, vt, id)
}

func (d *DAO) QualificationRound(id uint64) (voting.Vote, bool, error) {
	return d.Round(base.VoteQualification, id)
}

func (d *DAO) VerificationRound(id uint64) (voting.Vote, bool, error) {
	return d.Round(base.VoteVerification, id)
}

func (d *DAO) RoundCount(vt base.VoteType) (uint64, error) {
	return d.voting.RoundCount(d.db, vt)
}

// Receipt returns the choice of account in round and whether it voted.
func (d *DAO) Receipt(account base.Address, vt base.VoteType, id uint64) (bool, bool, error) {
	return d.voting.Receipt(d.db, account, vt, id)
}

func (d *DAO) Params() (voting.Params, error) {
	return d.voting.Params(d.db)
}

func (d *DAO) Members(r base.Role) ([]base.Address, error) {
	return d.registry.Members(d.db, r)
}

func (d *DAO) IsMember(r base.Role, account base.Address) (bool, error) {
	return d.registry.IsMember(d.db, r, account)
}

func (d *DAO) MembershipCount(r base.Role) (uint32, error) {
	return d.registry.Count(d.db, r)
}

func (d *DAO) Collection(id base.CollectionID) (token.Collection, bool, error) {
	return d.ledger.Collection(d.db, id)
}

func (d *DAO) TotalCollections() (uint32, error) {
	return d.ledger.TotalCollections(d.db)
}

func (d *DAO) Token(owner base.Address, id base.CollectionID) (token.Token, bool, error) {
	return d.ledger.Token(d.db, owner, id)
}

func (d *DAO) ActiveTokens(id base.CollectionID) (uint32, error) {
	return d.ledger.ActiveTokens(d.db, id)
}

func (d *DAO) TotalTokens(id base.CollectionID) (uint32, error) {
	return d.ledger.TotalTokens(d.db, id)
}

func (d *DAO) TotalTransactions() (uint64, error) {
	return storage.LoadCounter(d.db, totalTransactionsKey)
}

func (d *DAO) Transactions(account base.Address) (uint64, error) {
	return storage.LoadCounter(d.db, accountTransactionsKey(account))
}
