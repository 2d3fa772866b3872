package voting

import (
	"github.com/bhdao/bhdao/base"
	"github.com/bhdao/bhdao/storage"
	"github.com/bhdao/bhdao/util"
	"github.com/bhdao/bhdao/util/isvalid"
)

var (
	VoteAlreadyCreatedError     = util.ConflictError.New("vote already created for document")
	DocumentNotReviewedError    = util.ConflictError.New("document has not passed review")
	DocumentNotUnderReviewError = util.ConflictError.New("document is not under review")
	IncorrectStatusError        = util.ConflictError.New("incorrect document status")
	MemberAlreadyVotedError     = util.ConflictError.New("member already voted")
	VoteNotFoundError           = util.NotFoundError.New("vote does not exist")
	VoteNotInProgressError      = util.ConflictError.New("vote not in progress")
	VoteOutOfWindowError        = util.TemporalError.New("voting window not valid")
	VoteStillInProgressError    = util.TemporalError.New("vote still in progress")
	InvalidVotingWindowError    = isvalid.InvalidError.New("voting window not valid")
)

// Vote is one voting round. Start and End are fixed when the round opens.
type Vote struct {
	ID       uint64          `bson:"id" json:"id"`
	Track    base.VoteType   `bson:"track" json:"track"`
	Document uint64          `bson:"document" json:"document"`
	Yes      uint64          `bson:"yes" json:"yes"`
	No       uint64          `bson:"no" json:"no"`
	Start    base.Tick       `bson:"start" json:"start"`
	End      base.Tick       `bson:"end" json:"end"`
	Status   base.VoteStatus `bson:"status" json:"status"`
}

// Total is yes plus no; the sum fails instead of wrapping.
func (v Vote) Total() (uint64, error) {
	return util.AddUint64(v.Yes, v.No)
}

// IsOpen reports whether now is strictly inside the voting window.
func (v Vote) IsOpen(now base.Tick) bool {
	return now.Between(v.Start, v.End)
}

// IsClosed reports whether the voting window has passed.
func (v Vote) IsClosed(now base.Tick) bool {
	return now > v.End
}

func roundKey(vt base.VoteType, id uint64) []byte {
	return storage.Key(storage.KeyPrefixRound, []byte{byte(vt)}, util.Uint64ToBytes(id))
}

func roundCountKey(vt base.VoteType) []byte {
	return storage.Key(storage.KeyPrefixRoundCount, []byte{byte(vt)})
}

func receiptKey(account base.Address, vt base.VoteType, id uint64) []byte {
	return storage.Key(storage.KeyPrefixReceipt, account.Bytes(), []byte{byte(vt)}, util.Uint64ToBytes(id))
}
