package voting

import (
	"github.com/bhdao/bhdao/base"
	"github.com/bhdao/bhdao/document"
	"github.com/bhdao/bhdao/storage"
	"github.com/bhdao/bhdao/util"
	"github.com/bhdao/bhdao/util/logging"
)

type Membership interface {
	EnsureMember(storage.Reader, base.Caller, base.Role) (base.Address, error)
	EnsureAnyMember(storage.Reader, base.Caller, ...base.Role) (base.Address, error)
}

type Documents interface {
	Must(storage.Reader, uint64) (document.Document, error)
	UpdateStatus(*storage.Statepool, uint64, base.DocumentStatus) (document.Document, error)
}

// Engine runs the qualification and verification voting of documents.
type Engine struct {
	*logging.Logging
	members   Membership
	documents Documents
}

func NewEngine(members Membership, documents Documents) *Engine {
	return &Engine{
		Logging:   logging.NewModuleLogging("voting-engine"),
		members:   members,
		documents: documents,
	}
}

func (en *Engine) ensureOpener(sp *storage.Statepool, caller base.Caller, tr track) (base.Address, error) {
	if len(tr.openRoles) == 1 {
		return en.members.EnsureMember(sp, caller, tr.openRoles[0])
	}

	return en.members.EnsureAnyMember(sp, caller, tr.openRoles...)
}

// Open starts a new round on document. The window of the track is captured
// now; later window changes do not move the end of the round.
func (en *Engine) Open(
	sp *storage.Statepool,
	caller base.Caller,
	vt base.VoteType,
	documentID uint64,
	now base.Tick,
) (Vote, error) {
	tr, err := trackOf(vt)
	if err != nil {
		return Vote{}, err
	}

	if _, err := en.ensureOpener(sp, caller, tr); err != nil {
		return Vote{}, err
	}

	doc, err := en.documents.Must(sp, documentID)
	if err != nil {
		return Vote{}, err
	}

	if doc.Status != tr.openFrom {
		return Vote{}, tr.openFromErr.Errorf("document=%d status=%s", documentID, doc.Status)
	}

	params, err := en.Params(sp)
	if err != nil {
		return Vote{}, err
	}

	end, err := now.Add(params.Window(vt))
	if err != nil {
		return Vote{}, err
	}

	id, err := storage.NextCounter(sp, roundCountKey(vt))
	if err != nil {
		return Vote{}, err
	}

	v := Vote{
		ID:       id,
		Track:    vt,
		Document: documentID,
		Start:    now,
		End:      end,
		Status:   base.VoteInProgress,
	}

	if err := sp.Set(roundKey(vt, id), v); err != nil {
		return Vote{}, err
	}

	sp.SetCounter(roundCountKey(vt), id)
	sp.Emit(startedEvent(v))

	if _, err := en.documents.UpdateStatus(sp, documentID, tr.underVote); err != nil {
		return Vote{}, err
	}

	en.Log().Debug().Stringer("track", vt).Uint64("round", id).Uint64("document", documentID).
		Stringer("start", v.Start).Stringer("end", v.End).Msg("voting opened")

	return v, nil
}

// Cast records the choice of caller. The receipt of caller is checked before
// the round itself, so a second vote fails whatever the choice is.
func (en *Engine) Cast(
	sp *storage.Statepool,
	caller base.Caller,
	vt base.VoteType,
	roundID uint64,
	choice bool,
	now base.Tick,
) (Vote, error) {
	tr, err := trackOf(vt)
	if err != nil {
		return Vote{}, err
	}

	account, err := en.members.EnsureMember(sp, caller, tr.castRole)
	if err != nil {
		return Vote{}, err
	}

	switch _, found, err := en.Receipt(sp, account, vt, roundID); {
	case err != nil:
		return Vote{}, err
	case found:
		return Vote{}, MemberAlreadyVotedError.Errorf("account=%s track=%s round=%d", account, vt, roundID)
	}

	v, err := en.inProgress(sp, vt, roundID)
	if err != nil {
		return Vote{}, err
	}

	if !v.IsOpen(now) {
		return Vote{}, VoteOutOfWindowError.Errorf(
			"track=%s round=%d now=%s window=(%s, %s)", vt, roundID, now, v.Start, v.End)
	}

	if choice {
		v.Yes, err = util.AddUint64(v.Yes, 1)
	} else {
		v.No, err = util.AddUint64(v.No, 1)
	}

	if err != nil {
		return Vote{}, err
	}

	if err := sp.Set(roundKey(vt, roundID), v); err != nil {
		return Vote{}, err
	}

	sp.SetRaw(receiptKey(account, vt, roundID), encodeChoice(choice))
	sp.Emit(VoteCast{Account: account, Round: roundID, Track: uint8(vt), Choice: choice})

	en.Log().Debug().Stringer("track", vt).Uint64("round", roundID).Stringer("account", account).
		Bool("choice", choice).Msg("vote cast")

	return v, nil
}

// Finalize closes the round after its window and moves the document. The
// quorum is the one configured at the time of finalizing. A tie fails.
func (en *Engine) Finalize(
	sp *storage.Statepool,
	caller base.Caller,
	vt base.VoteType,
	roundID uint64,
	now base.Tick,
) (Vote, error) {
	tr, err := trackOf(vt)
	if err != nil {
		return Vote{}, err
	}

	if _, err := en.ensureOpener(sp, caller, tr); err != nil {
		return Vote{}, err
	}

	v, err := en.inProgress(sp, vt, roundID)
	if err != nil {
		return Vote{}, err
	}

	doc, err := en.documents.Must(sp, v.Document)
	if err != nil {
		return Vote{}, err
	}

	if doc.Status != tr.underVote {
		return Vote{}, tr.underVoteErr.Errorf("document=%d status=%s", doc.ID, doc.Status)
	}

	if !v.IsClosed(now) {
		return Vote{}, VoteStillInProgressError.Errorf("track=%s round=%d now=%s end=%s", vt, roundID, now, v.End)
	}

	params, err := en.Params(sp)
	if err != nil {
		return Vote{}, err
	}

	total, err := v.Total()
	if err != nil {
		return Vote{}, err
	}

	status := tr.failed
	v.Status = base.VoteFailed

	if total >= params.Quorum(vt) && v.Yes > v.No {
		status = tr.passed
		v.Status = base.VotePassed
	}

	if err := sp.Set(roundKey(vt, roundID), v); err != nil {
		return Vote{}, err
	}

	if _, err := en.documents.UpdateStatus(sp, v.Document, status); err != nil {
		return Vote{}, err
	}

	sp.Emit(endedEvent(v))

	en.Log().Debug().Stringer("track", vt).Uint64("round", roundID).Uint64("document", v.Document).
		Uint64("yes", v.Yes).Uint64("no", v.No).Uint64("quorum", params.Quorum(vt)).
		Stringer("result", v.Status).Msg("voting finalized")

	return v, nil
}

// SetWindow changes the voting window of track; zero window is rejected.
func (en *Engine) SetWindow(sp *storage.Statepool, caller base.Caller, vt base.VoteType, window uint32) error {
	if err := caller.EnsurePrivileged(); err != nil {
		return err
	}

	if _, err := trackOf(vt); err != nil {
		return err
	}

	if window < 1 {
		return InvalidVotingWindowError.Errorf("track=%s window=0", vt)
	}

	sp.SetCounter(paramKey(vt, paramWindow), uint64(window))
	sp.Emit(windowChangedEvent(vt, window))

	en.Log().Debug().Stringer("track", vt).Uint32("window", window).Msg("voting window changed")

	return nil
}

// SetQuorum changes the quorum of track; any value, including zero, is
// accepted.
func (en *Engine) SetQuorum(sp *storage.Statepool, caller base.Caller, vt base.VoteType, quorum uint64) error {
	if err := caller.EnsurePrivileged(); err != nil {
		return err
	}

	if _, err := trackOf(vt); err != nil {
		return err
	}

	sp.SetCounter(paramKey(vt, paramQuorum), quorum)
	sp.Emit(quorumChangedEvent(vt, quorum))

	en.Log().Debug().Stringer("track", vt).Uint64("quorum", quorum).Msg("quorum changed")

	return nil
}

func (en *Engine) inProgress(rd storage.Reader, vt base.VoteType, roundID uint64) (Vote, error) {
	v, found, err := en.Round(rd, vt, roundID)
	switch {
	case err != nil:
		return Vote{}, err
	case !found:
		return Vote{}, VoteNotFoundError.Errorf("track=%s round=%d", vt, roundID)
	case v.Status != base.VoteInProgress:
		return Vote{}, VoteNotInProgressError.Errorf("track=%s round=%d status=%s", vt, roundID, v.Status)
	default:
		return v, nil
	}
}

func (*Engine) Round(rd storage.Reader, vt base.VoteType, id uint64) (Vote, bool, error) {
	var v Vote
	found, err := storage.Load(rd, roundKey(vt, id), &v)

	return v, found, err
}

func (*Engine) RoundCount(rd storage.Reader, vt base.VoteType) (uint64, error) {
	return storage.LoadCounter(rd, roundCountKey(vt))
}

// Receipt returns the choice account made in round.
func (*Engine) Receipt(rd storage.Reader, account base.Address, vt base.VoteType, id uint64) (bool, bool, error) {
	switch b, found, err := rd.Get(receiptKey(account, vt, id)); {
	case err != nil:
		return false, false, err
	case !found:
		return false, false, nil
	default:
		return len(b) > 0 && b[0] == 1, true, nil
	}
}

func (*Engine) Params(rd storage.Reader) (Params, error) {
	return loadParams(rd)
}

func encodeChoice(choice bool) []byte {
	if choice {
		return []byte{1}
	}

	return []byte{0}
}
