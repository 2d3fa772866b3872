package voting

import (
	"github.com/bhdao/bhdao/base"
	"github.com/bhdao/bhdao/storage"
	"github.com/bhdao/bhdao/util"
)

const (
	DefaultVotingWindow uint32 = 14400
	DefaultQuorum       uint64 = 0
)

// Params are the governance parameters of both tracks. Windows are tick
// durations, quorums are minimum vote counts.
type Params struct {
	QualificationWindow uint32 `json:"qualification_window" yaml:"qualification_window"`
	VerificationWindow  uint32 `json:"verification_window" yaml:"verification_window"`
	QualificationQuorum uint64 `json:"qualification_quorum" yaml:"qualification_quorum"`
	VerificationQuorum  uint64 `json:"verification_quorum" yaml:"verification_quorum"`
}

func DefaultParams() Params {
	return Params{
		QualificationWindow: DefaultVotingWindow,
		VerificationWindow:  DefaultVotingWindow,
		QualificationQuorum: DefaultQuorum,
		VerificationQuorum:  DefaultQuorum,
	}
}

func (p Params) Window(vt base.VoteType) uint32 {
	if vt == base.VoteVerification {
		return p.VerificationWindow
	}

	return p.QualificationWindow
}

func (p Params) Quorum(vt base.VoteType) uint64 {
	if vt == base.VoteVerification {
		return p.VerificationQuorum
	}

	return p.QualificationQuorum
}

const (
	paramWindow byte = iota + 1
	paramQuorum
)

func paramKey(vt base.VoteType, kind byte) []byte {
	return storage.Key(storage.KeyPrefixParams, []byte{byte(vt), kind})
}

// loadParam returns the stored value of parameter, or def when it was never
// set.
func loadParam(rd storage.Reader, key []byte, def uint64) (uint64, error) {
	switch b, found, err := rd.Get(key); {
	case err != nil:
		return 0, err
	case !found:
		return def, nil
	default:
		i, err := util.BytesToUint64(b)
		if err != nil {
			return 0, storage.CodecError.Wrap(err)
		}

		return i, nil
	}
}

func loadParams(rd storage.Reader) (Params, error) {
	p := DefaultParams()

	for _, vt := range []base.VoteType{base.VoteQualification, base.VoteVerification} {
		w, err := loadParam(rd, paramKey(vt, paramWindow), uint64(DefaultVotingWindow))
		if err != nil {
			return Params{}, err
		}

		if w > uint64(^uint32(0)) {
			return Params{}, storage.CodecError.Errorf("voting window over uint32, %d", w)
		}

		q, err := loadParam(rd, paramKey(vt, paramQuorum), DefaultQuorum)
		if err != nil {
			return Params{}, err
		}

		if vt == base.VoteVerification {
			p.VerificationWindow, p.VerificationQuorum = uint32(w), q
		} else {
			p.QualificationWindow, p.QualificationQuorum = uint32(w), q
		}
	}

	return p, nil
}
