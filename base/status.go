package base

import (
	"strings"

	"github.com/bhdao/bhdao/util/isvalid"
)

// DocumentStatus values are stable codes; events carry them as numbers.
type DocumentStatus uint8

const (
	DocumentSubmitted DocumentStatus = iota
	DocumentUnderReview
	DocumentSuccessfulReview
	DocumentVoteInProgress
	DocumentVerified
	DocumentRejected
)

var documentStatusNames = map[DocumentStatus]string{
	DocumentSubmitted:        "submitted",
	DocumentUnderReview:      "under-review",
	DocumentSuccessfulReview: "successful-review",
	DocumentVoteInProgress:   "vote-in-progress",
	DocumentVerified:         "verified",
	DocumentRejected:         "rejected",
}

// documentTransitions lists the allowed edges of the document lifecycle.
var documentTransitions = map[DocumentStatus][]DocumentStatus{
	DocumentSubmitted:        {DocumentUnderReview},
	DocumentUnderReview:      {DocumentSuccessfulReview, DocumentRejected},
	DocumentSuccessfulReview: {DocumentVoteInProgress},
	DocumentVoteInProgress:   {DocumentVerified, DocumentRejected},
}

func ParseDocumentStatus(s string) (DocumentStatus, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for k, v := range documentStatusNames {
		if v == s {
			return k, nil
		}
	}

	return 0, isvalid.InvalidError.Errorf("unknown document status, %q", s)
}

func (s DocumentStatus) IsValid([]byte) error {
	if _, found := documentStatusNames[s]; !found {
		return isvalid.InvalidError.Errorf("unknown document status code, %d", s)
	}

	return nil
}

func (s DocumentStatus) Code() uint8 {
	return uint8(s)
}

func (s DocumentStatus) String() string {
	if n, found := documentStatusNames[s]; found {
		return n
	}

	return "<unknown document status>"
}

func (s DocumentStatus) IsTerminal() bool {
	return s == DocumentVerified || s == DocumentRejected
}

// CanMoveTo reports whether n is a direct successor of s.
func (s DocumentStatus) CanMoveTo(n DocumentStatus) bool {
	for _, i := range documentTransitions[s] {
		if i == n {
			return true
		}
	}

	return false
}

// VoteStatus of a voting round. VoteExpired is reserved; no operation
// produces it.
type VoteStatus uint8

const (
	VoteInProgress VoteStatus = iota
	VotePassed
	VoteFailed
	VoteExpired
)

func (s VoteStatus) String() string {
	switch s {
	case VoteInProgress:
		return "in-progress"
	case VotePassed:
		return "passed"
	case VoteFailed:
		return "failed"
	case VoteExpired:
		return "expired"
	default:
		return "<unknown vote status>"
	}
}

// VoteType discriminates vote receipts. VoteProposal is reserved.
type VoteType uint8

const (
	VoteQualification VoteType = iota
	VoteVerification
	VoteProposal
)

func ParseVoteType(s string) (VoteType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "qualification":
		return VoteQualification, nil
	case "verification":
		return VoteVerification, nil
	default:
		return 0, isvalid.InvalidError.Errorf("unknown voting track, %q", s)
	}
}

func (t VoteType) String() string {
	switch t {
	case VoteQualification:
		return "qualification"
	case VoteVerification:
		return "verification"
	case VoteProposal:
		return "proposal"
	default:
		return "<unknown vote type>"
	}
}
