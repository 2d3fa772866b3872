package voting

import (
	"github.com/bhdao/bhdao/base"
	"github.com/bhdao/bhdao/util"
	"github.com/bhdao/bhdao/util/isvalid"
)

// track holds what differs between qualification and verification voting.
type track struct {
	voteType base.VoteType
	// openRoles may open and finalize a round; castRole may vote.
	openRoles []base.Role
	castRole  base.Role
	// openFrom is the document status a round is opened on; the document
	// then stays at underVote until the round is finalized.
	openFrom     base.DocumentStatus
	openFromErr  *util.NError
	underVote    base.DocumentStatus
	underVoteErr *util.NError
	passed       base.DocumentStatus
	failed       base.DocumentStatus
}

var tracks = map[base.VoteType]track{
	base.VoteQualification: {
		voteType:     base.VoteQualification,
		openRoles:    []base.Role{base.QualifierRole},
		castRole:     base.QualifierRole,
		openFrom:     base.DocumentSubmitted,
		openFromErr:  VoteAlreadyCreatedError,
		underVote:    base.DocumentUnderReview,
		underVoteErr: DocumentNotUnderReviewError,
		passed:       base.DocumentSuccessfulReview,
		failed:       base.DocumentRejected,
	},
	base.VoteVerification: {
		voteType:     base.VoteVerification,
		openRoles:    []base.Role{base.QualifierRole, base.ContributorRole},
		castRole:     base.ContributorRole,
		openFrom:     base.DocumentSuccessfulReview,
		openFromErr:  DocumentNotReviewedError,
		underVote:    base.DocumentVoteInProgress,
		underVoteErr: IncorrectStatusError,
		passed:       base.DocumentVerified,
		failed:       base.DocumentRejected,
	},
}

func trackOf(vt base.VoteType) (track, error) {
	t, found := tracks[vt]
	if !found {
		return track{}, isvalid.InvalidError.Errorf("no voting track for vote type, %s", vt)
	}

	return t, nil
}
