package dao

import (
	"context"

	"github.com/bhdao/bhdao/base"
	"github.com/bhdao/bhdao/document"
	"github.com/bhdao/bhdao/role"
	"github.com/bhdao/bhdao/storage"
	"github.com/bhdao/bhdao/token"
	"github.com/bhdao/bhdao/voting"
)

func (d *DAO) CreateCollection(
	ctx context.Context,
	caller base.Caller,
	id base.CollectionID,
	totalSupply uint32,
	metadata []byte,
) error {
	return d.call(ctx, "create-collection", caller, func(sp *storage.Statepool, now base.Tick) error {
		return d.ledger.CreateCollection(sp, caller, id, totalSupply, metadata, now)
	})
}

// InitCollections creates the membership collections of roles; existing ones
// are left as they are.
func (d *DAO) InitCollections(ctx context.Context, caller base.Caller, specs []role.CollectionSpec) error {
	return d.call(ctx, "init-collections", caller, func(sp *storage.Statepool, now base.Tick) error {
		return d.registry.InitCollections(sp, caller, specs, now)
	})
}

func (d *DAO) Mint(
	ctx context.Context,
	caller base.Caller,
	id base.CollectionID,
	owner base.Address,
) (t token.Token, err error) {
	err = d.call(ctx, "mint", caller, func(sp *storage.Statepool, _ base.Tick) error {
		t, err = d.ledger.Mint(sp, caller, id, owner)

		return err
	})

	return t, err
}

func (d *DAO) Burn(ctx context.Context, caller base.Caller, id base.CollectionID) (t token.Token, err error) {
	err = d.call(ctx, "burn", caller, func(sp *storage.Statepool, _ base.Tick) error {
		t, err = d.ledger.Burn(sp, caller, id)

		return err
	})

	return t, err
}

// AddMember admits account to r and returns the membership count of r.
func (d *DAO) AddMember(ctx context.Context, caller base.Caller, r base.Role, account base.Address) (
	count uint32, err error,
) {
	err = d.call(ctx, "add-"+r.String(), caller, func(sp *storage.Statepool, _ base.Tick) error {
		count, err = d.registry.Add(sp, caller, r, account)

		return err
	})

	return count, err
}

func (d *DAO) AddQualifier(ctx context.Context, caller base.Caller, account base.Address) (uint32, error) {
	return d.AddMember(ctx, caller, base.QualifierRole, account)
}

func (d *DAO) AddCollector(ctx context.Context, caller base.Caller, account base.Address) (uint32, error) {
	return d.AddMember(ctx, caller, base.CollectorRole, account)
}

func (d *DAO) AddContributor(ctx context.Context, caller base.Caller, account base.Address) (uint32, error) {
	return d.AddMember(ctx, caller, base.ContributorRole, account)
}

func (d *DAO) CreateDocument(
	ctx context.Context,
	caller base.Caller,
	title, description, format, contentHash []byte,
) (doc document.Document, err error) {
	err = d.call(ctx, "create-document", caller, func(sp *storage.Statepool, _ base.Tick) error {
		doc, err = d.documents.Create(sp, caller, title, description, format, contentHash)

		return err
	})

	return doc, err
}

// UpdateDocumentStatus is the administrative override of document status;
// code is the numeric status code.
func (d *DAO) UpdateDocumentStatus(ctx context.Context, caller base.Caller, id uint64, code uint8) (
	doc document.Document, err error,
) {
	err = d.call(ctx, "update-document-status", caller, func(sp *storage.Statepool, _ base.Tick) error {
		doc, err = d.documents.Override(sp, caller, id, base.DocumentStatus(code))

		return err
	})

	return doc, err
}

func (d *DAO) OpenVoting(ctx context.Context, caller base.Caller, vt base.VoteType, documentID uint64) (
	v voting.Vote, err error,
) {
	err = d.call(ctx, "open-"+vt.String()+"-voting", caller, func(sp *storage.Statepool, now base.Tick) error {
		v, err = d.voting.Open(sp, caller, vt, documentID, now)

		return err
	})

	return v, err
}

func (d *DAO) CastVote(ctx context.Context, caller base.Caller, vt base.VoteType, roundID uint64, choice bool) (
	v voting.Vote, err error,
) {
	err = d.call(ctx, "cast-"+vt.String()+"-vote", caller, func(sp *storage.Statepool, now base.Tick) error {
		v, err = d.voting.Cast(sp, caller, vt, roundID, choice, now)

		return err
	})

	return v, err
}

func (d *DAO) FinalizeVoting(ctx context.Context, caller base.Caller, vt base.VoteType, roundID uint64) (
	v voting.Vote, err error,
) {
	err = d.call(ctx, "finalize-"+vt.String()+"-voting", caller, func(sp *storage.Statepool, now base.Tick) error {
		v, err = d.voting.Finalize(sp, caller, vt, roundID, now)

		return err
	})

	return v, err
}

func (d *DAO) OpenQualificationVoting(ctx context.Context, caller base.Caller, documentID uint64) (
	voting.Vote, error,
) {
	return d.OpenVoting(ctx, caller, base.VoteQualification, documentID)
}

func (d *DAO) OpenVerificationVoting(ctx context.Context, caller base.Caller, documentID uint64) (
	voting.Vote, error,
) {
	return d.OpenVoting(ctx, caller, base.VoteVerification, documentID)
}

func (d *DAO) CastQualificationVote(ctx context.Context, caller base.Caller, roundID uint64, choice bool) (
	voting.Vote, error,
) {
	return d.CastVote(ctx, caller, base.VoteQualification, roundID, choice)
}

func (d *DAO) CastVerificationVote(ctx context.Context, caller base.Caller, roundID uint64, choice bool) (
	voting.Vote, error,
) {
	return d.CastVote(ctx, caller, base.VoteVerification, roundID, choice)
}

func (d *DAO) FinalizeQualificationVoting(ctx context.Context, caller base.Caller, roundID uint64) (
	voting.Vote, error,
) {
	return d.FinalizeVoting(ctx, caller, base.VoteQualification, roundID)
}

func (d *DAO) FinalizeVerificationVoting(ctx context.Context, caller base.Caller, roundID uint64) (
	voting.Vote, error,
) {
	return d.FinalizeVoting(ctx, caller, base.VoteVerification, roundID)
}

func (d *DAO) SetVotingWindow(ctx context.Context, caller base.Caller, vt base.VoteType, window uint32) error {
	return d.call(ctx, "set-"+vt.String()+"-window", caller, func(sp *storage.Statepool, _ base.Tick) error {
		return d.voting.SetWindow(sp, caller, vt, window)
	})
}

func (d *DAO) SetQuorum(ctx context.Context, caller base.Caller, vt base.VoteType, quorum uint64) error {
	return d.call(ctx, "set-"+vt.String()+"-quorum", caller, func(sp *storage.Statepool, _ base.Tick) error {
		return d.voting.SetQuorum(sp, caller, vt, quorum)
	})
}

func (d *DAO) SetQualificationVotingWindow(ctx context.Context, caller base.Caller, window uint32) error {
	return d.SetVotingWindow(ctx, caller, base.VoteQualification, window)
}

func (d *DAO) SetVerificationVotingWindow(ctx context.Context, caller base.Caller, window uint32) error {
	return d.SetVotingWindow(ctx, caller, base.VoteVerification, window)
}

func (d *DAO) SetQualificationQuorum(ctx context.Context, caller base.Caller, quorum uint64) error {
	return d.SetQuorum(ctx, caller, base.VoteQualification, quorum)
}

func (d *DAO) SetVerificationQuorum(ctx context.Context, caller base.Caller, quorum uint64) error {
	return d.SetQuorum(ctx, caller, base.VoteVerification, quorum)
}
