package voting

import (
	"github.com/bhdao/bhdao/base"
	"github.com/bhdao/bhdao/events"
)

type VotingStarted struct {
	Round    uint64    `json:"round"`
	Document uint64    `json:"document"`
	Start    base.Tick `json:"start"`
	End      base.Tick `json:"end"`
}

type QualificationVotingStarted VotingStarted

func (QualificationVotingStarted) EventName() string {
	return "QualificationVotingStarted"
}

type VerificationVotingStarted VotingStarted

func (VerificationVotingStarted) EventName() string {
	return "VerificationVotingStarted"
}

// VoteCast carries the track as code; 0 is qualification and 1 is
// verification.
type VoteCast struct {
	Account base.Address `json:"account"`
	Round   uint64       `json:"round"`
	Track   uint8        `json:"track"`
	Choice  bool         `json:"choice"`
}

func (VoteCast) EventName() string {
	return "VoteCast"
}

type VotingEnded struct {
	Round    uint64          `json:"round"`
	Document uint64          `json:"document"`
	Status   base.VoteStatus `json:"status"`
	Yes      uint64          `json:"yes"`
	No       uint64          `json:"no"`
}

type QualificationVotingEnded VotingEnded

func (QualificationVotingEnded) EventName() string {
	return "QualificationVotingEnded"
}

type VerificationVotingEnded VotingEnded

func (VerificationVotingEnded) EventName() string {
	return "VerificationVotingEnded"
}

type QualificationVotingWindowChanged struct {
	Window uint32 `json:"window"`
}

func (QualificationVotingWindowChanged) EventName() string {
	return "QualificationVotingWindowChanged"
}

type VerificationVotingWindowChanged struct {
	Window uint32 `json:"window"`
}

func (VerificationVotingWindowChanged) EventName() string {
	return "VerificationVotingWindowChanged"
}

type QualificationQuorumChanged struct {
	Quorum uint64 `json:"quorum"`
}

func (QualificationQuorumChanged) EventName() string {
	return "QualificationQuorumChanged"
}

type VerificationQuorumChanged struct {
	Quorum uint64 `json:"quorum"`
}

func (VerificationQuorumChanged) EventName() string {
	return "VerificationQuorumChanged"
}

func startedEvent(v Vote) events.Event {
	s := VotingStarted{Round: v.ID, Document: v.Document, Start: v.Start, End: v.End}
	if v.Track == base.VoteVerification {
		return VerificationVotingStarted(s)
	}

	return QualificationVotingStarted(s)
}

func endedEvent(v Vote) events.Event {
	e := VotingEnded{Round: v.ID, Document: v.Document, Status: v.Status, Yes: v.Yes, No: v.No}
	if v.Track == base.VoteVerification {
		return VerificationVotingEnded(e)
	}

	return QualificationVotingEnded(e)
}

func windowChangedEvent(vt base.VoteType, w uint32) events.Event {
	if vt == base.VoteVerification {
		return VerificationVotingWindowChanged{Window: w}
	}

	return QualificationVotingWindowChanged{Window: w}
}

func quorumChangedEvent(vt base.VoteType, q uint64) events.Event {
	if vt == base.VoteVerification {
		return VerificationQuorumChanged{Quorum: q}
	}

	return QualificationQuorumChanged{Quorum: q}
}
