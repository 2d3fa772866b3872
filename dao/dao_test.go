package dao

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/suite"
	"go.uber.org/goleak"

	"github.com/bhdao/bhdao/base"
	"github.com/bhdao/bhdao/document"
	"github.com/bhdao/bhdao/events"
	"github.com/bhdao/bhdao/role"
	leveldbstorage "github.com/bhdao/bhdao/storage/leveldb"
	"github.com/bhdao/bhdao/token"
	"github.com/bhdao/bhdao/util/isvalid"
	"github.com/bhdao/bhdao/voting"
)

func TestMain(m *testing.M) {
	// goleveldb drains its memory pool for a while after Close
	goleak.VerifyTestMain(m, goleak.IgnoreTopFunction("github.com/syndtr/goleveldb/leveldb.(*DB).mpoolDrain"))
}

type failedSink struct{}

func (failedSink) Emit(...events.Record) error {
	return errors.Errorf("killme")
}

type testDAO struct {
	suite.Suite
	db     *leveldbstorage.Database
	ticker *ManualTicker
	sink   *events.MemorySink
	dao    *DAO
	admin  base.Caller
	ctx    context.Context
}

func (t *testDAO) SetupTest() {
	t.db = leveldbstorage.NewMemDatabase()
	t.ticker = NewManualTicker(1)
	t.sink = events.NewMemorySink()
	t.dao = NewDAO(t.db, t.ticker, t.sink)
	t.admin = base.NewPrivilegedCaller()
	t.ctx = context.Background()

	t.NoError(t.dao.InitCollections(t.ctx, t.admin, role.DefaultCollectionSpecs()))
	t.sink.Reset()
}

func (t *testDAO) TearDownTest() {
	_ = t.db.Close()
}

func (t *testDAO) signed(a base.Address) base.Caller {
	return base.NewSignedCaller(a)
}

func (t *testDAO) advance(d uint64) base.Tick {
	now, err := t.ticker.Advance(d)
	t.NoError(err)

	return now
}

func (t *testDAO) createDocument(creator base.Address) document.Document {
	doc, err := t.dao.CreateDocument(t.ctx, t.signed(creator),
		[]byte("Document"), []byte("Description"), []byte("pdf"), []byte("bafy"))
	t.NoError(err)

	return doc
}

func (t *testDAO) TestDocumentHappyPath() {
	_, err := t.dao.AddContributor(t.ctx, t.admin, "2")
	t.NoError(err)

	doc := t.createDocument("2")
	t.Equal(uint64(1), doc.ID)

	total, err := t.dao.TotalDocuments()
	t.NoError(err)
	t.Equal(uint64(1), total)

	stored, found, err := t.dao.Document(1)
	t.NoError(err)
	t.True(found)
	t.Equal(base.DocumentSubmitted, stored.Status)

	_, err = t.dao.AddQualifier(t.ctx, t.admin, "4")
	t.NoError(err)

	now := t.advance(10)

	v, err := t.dao.OpenQualificationVoting(t.ctx, t.signed("4"), 1)
	t.NoError(err)
	t.Equal(uint64(1), v.ID)
	t.Equal(now, v.Start)
	t.Equal(now+14400, v.End)

	stored, _, err = t.dao.Document(1)
	t.NoError(err)
	t.Equal(base.DocumentUnderReview, stored.Status)

	round, found, err := t.dao.QualificationRound(1)
	t.NoError(err)
	t.True(found)
	t.Equal(v, round)
}

func (t *testDAO) TestQuorumMetPass() {
	_, err := t.dao.AddContributor(t.ctx, t.admin, "2")
	t.NoError(err)
	t.createDocument("2")

	for _, a := range []base.Address{"4", "5", "6"} {
		_, err = t.dao.AddQualifier(t.ctx, t.admin, a)
		t.NoError(err)
	}

	v, err := t.dao.OpenQualificationVoting(t.ctx, t.signed("4"), 1)
	t.NoError(err)

	t.advance(1)

	for a, choice := range map[base.Address]bool{"4": true, "5": true, "6": false} {
		_, err = t.dao.CastQualificationVote(t.ctx, t.signed(a), v.ID, choice)
		t.NoError(err)
	}

	t.ticker.Set(v.End + 1)
	t.sink.Reset()

	v, err = t.dao.FinalizeQualificationVoting(t.ctx, t.signed("5"), v.ID)
	t.NoError(err)
	t.Equal(base.VotePassed, v.Status)
	t.Equal(uint64(2), v.Yes)
	t.Equal(uint64(1), v.No)

	doc, _, err := t.dao.Document(1)
	t.NoError(err)
	t.Equal(base.DocumentSuccessfulReview, doc.Status)

	t.Equal([]string{"DocumentStatusUpdated", "QualificationVotingEnded"}, t.sink.Names())

	for _, r := range t.sink.Records() {
		t.Equal(v.End+1, r.Tick)
	}
}

func (t *testDAO) TestQuorumMissed() {
	_, err := t.dao.AddContributor(t.ctx, t.admin, "2")
	t.NoError(err)
	t.createDocument("2")

	_, err = t.dao.AddQualifier(t.ctx, t.admin, "4")
	t.NoError(err)

	t.NoError(t.dao.SetQualificationQuorum(t.ctx, t.admin, 10))

	v, err := t.dao.OpenQualificationVoting(t.ctx, t.signed("4"), 1)
	t.NoError(err)

	t.advance(1)

	_, err = t.dao.CastQualificationVote(t.ctx, t.signed("4"), v.ID, true)
	t.NoError(err)

	t.ticker.Set(v.End + 1)

	v, err = t.dao.FinalizeQualificationVoting(t.ctx, t.signed("4"), v.ID)
	t.NoError(err)
	t.Equal(base.VoteFailed, v.Status)

	doc, _, err := t.dao.Document(1)
	t.NoError(err)
	t.Equal(base.DocumentRejected, doc.Status)
}

func (t *testDAO) TestTokenCapacity() {
	t.NoError(t.dao.CreateCollection(t.ctx, t.admin, 9, 1, []byte("capped")))

	tk, err := t.dao.Mint(t.ctx, t.admin, 9, "1")
	t.NoError(err)
	t.Equal(uint32(1), tk.ID)

	for _, a := range []base.Address{"1", "2"} {
		_, err = t.dao.Mint(t.ctx, t.admin, 9, a)
		t.True(errors.Is(err, token.MaxSupplyReachedError))
	}

	_, err = t.dao.Burn(t.ctx, t.signed("1"), 9)
	t.NoError(err)

	active, err := t.dao.ActiveTokens(9)
	t.NoError(err)
	t.Equal(uint32(0), active)

	total, err := t.dao.TotalTokens(9)
	t.NoError(err)
	t.Equal(uint32(1), total)

	col, found, err := t.dao.Collection(9)
	t.NoError(err)
	t.True(found)
	t.Equal(uint32(1), col.TotalSupply)
	t.Equal(base.Tick(1), col.CreatedAt)
}

func (t *testDAO) TestRoleAdmissionMintsToken() {
	count, err := t.dao.AddContributor(t.ctx, t.admin, "2")
	t.NoError(err)
	t.Equal(uint32(1), count)

	tk, found, err := t.dao.Token("2", base.ContributorRole.Collection())
	t.NoError(err)
	t.True(found)
	t.Equal(uint32(1), tk.ID)

	t.Equal([]string{"TokenMinted", "ContributorAdded"}, t.sink.Names())

	_, err = t.dao.AddContributor(t.ctx, t.admin, "2")
	t.True(errors.Is(err, role.ContributorExistsError))

	isMember, err := t.dao.IsMember(base.ContributorRole, "2")
	t.NoError(err)
	t.True(isMember)

	n, err := t.dao.MembershipCount(base.ContributorRole)
	t.NoError(err)
	t.Equal(uint32(1), n)

	members, err := t.dao.Members(base.ContributorRole)
	t.NoError(err)
	t.Equal([]base.Address{"2"}, members)
}

func (t *testDAO) TestFailedCallLeavesNothing() {
	_, err := t.dao.AddContributor(t.ctx, t.admin, "2")
	t.NoError(err)
	t.sink.Reset()

	_, err = t.dao.CreateDocument(t.ctx, t.signed("2"), []byte("title"), nil, []byte("pdf"), []byte("hash"))
	t.True(errors.Is(err, document.DescriptionNotProvidedError))

	t.Empty(t.sink.Records())

	total, err := t.dao.TotalDocuments()
	t.NoError(err)
	t.Equal(uint64(0), total)

	n, err := t.dao.TotalTransactions()
	t.NoError(err)
	t.Equal(uint64(0), n)
}

func (t *testDAO) TestTransactionCounters() {
	_, err := t.dao.AddContributor(t.ctx, t.admin, "2")
	t.NoError(err)

	// privileged calls are not counted
	n, err := t.dao.TotalTransactions()
	t.NoError(err)
	t.Equal(uint64(0), n)

	t.createDocument("2")
	t.createDocument("2")

	_, err = t.dao.Burn(t.ctx, t.signed("2"), base.ContributorRole.Collection())
	t.NoError(err)

	n, err = t.dao.TotalTransactions()
	t.NoError(err)
	t.Equal(uint64(3), n)

	n, err = t.dao.Transactions("2")
	t.NoError(err)
	t.Equal(uint64(3), n)

	n, err = t.dao.Transactions("3")
	t.NoError(err)
	t.Equal(uint64(0), n)
}

func (t *testDAO) TestUpdateDocumentStatus() {
	_, err := t.dao.AddContributor(t.ctx, t.admin, "2")
	t.NoError(err)
	t.createDocument("2")

	_, err = t.dao.UpdateDocumentStatus(t.ctx, t.admin, 1, 9)
	t.True(errors.Is(err, isvalid.InvalidError))

	_, err = t.dao.UpdateDocumentStatus(t.ctx, t.signed("2"), 1, 1)
	t.True(errors.Is(err, base.NotPrivilegedError))

	t.sink.Reset()

	doc, err := t.dao.UpdateDocumentStatus(t.ctx, t.admin, 1, 1)
	t.NoError(err)
	t.Equal(base.DocumentUnderReview, doc.Status)

	t.Equal(1, len(t.sink.Records()))
	t.Equal(document.DocumentStatusUpdated{Document: 1, Status: 1}, t.sink.Records()[0].Event)
}

func (t *testDAO) TestSinkErrorIgnored() {
	d := NewDAO(t.db, t.ticker, failedSink{})

	_, err := d.AddQualifier(t.ctx, t.admin, "4")
	t.NoError(err)

	isMember, err := d.IsMember(base.QualifierRole, "4")
	t.NoError(err)
	t.True(isMember)
}

func (t *testDAO) TestParams() {
	params, err := t.dao.Params()
	t.NoError(err)
	t.Equal(voting.DefaultParams(), params)

	t.NoError(t.dao.SetQualificationVotingWindow(t.ctx, t.admin, 100))
	t.NoError(t.dao.SetVerificationVotingWindow(t.ctx, t.admin, 200))
	t.NoError(t.dao.SetQualificationQuorum(t.ctx, t.admin, 3))
	t.NoError(t.dao.SetVerificationQuorum(t.ctx, t.admin, 4))

	err = t.dao.SetVerificationVotingWindow(t.ctx, t.admin, 0)
	t.True(errors.Is(err, voting.InvalidVotingWindowError))

	params, err = t.dao.Params()
	t.NoError(err)
	t.Equal(voting.Params{
		QualificationWindow: 100,
		VerificationWindow:  200,
		QualificationQuorum: 3,
		VerificationQuorum:  4,
	}, params)

	t.Equal([]string{
		"QualificationVotingWindowChanged",
		"VerificationVotingWindowChanged",
		"QualificationQuorumChanged",
		"VerificationQuorumChanged",
	}, t.sink.Names())
}

func (t *testDAO) TestFullFlow() {
	for _, a := range []base.Address{"c0", "c1", "c2"} {
		_, err := t.dao.AddContributor(t.ctx, t.admin, a)
		t.NoError(err)
	}

	for _, a := range []base.Address{"q0", "q1"} {
		_, err := t.dao.AddQualifier(t.ctx, t.admin, a)
		t.NoError(err)
	}

	_, err := t.dao.AddCollector(t.ctx, t.admin, "k0")
	t.NoError(err)

	t.NoError(t.dao.SetQualificationVotingWindow(t.ctx, t.admin, 10))
	t.NoError(t.dao.SetVerificationVotingWindow(t.ctx, t.admin, 20))
	t.NoError(t.dao.SetVerificationQuorum(t.ctx, t.admin, 2))

	doc := t.createDocument("c0")

	qv, err := t.dao.OpenQualificationVoting(t.ctx, t.signed("q0"), doc.ID)
	t.NoError(err)

	t.advance(1)

	_, err = t.dao.CastQualificationVote(t.ctx, t.signed("q0"), qv.ID, true)
	t.NoError(err)
	_, err = t.dao.CastQualificationVote(t.ctx, t.signed("q1"), qv.ID, true)
	t.NoError(err)

	_, err = t.dao.FinalizeQualificationVoting(t.ctx, t.signed("q1"), qv.ID)
	t.True(errors.Is(err, voting.VoteStillInProgressError))

	t.ticker.Set(qv.End + 1)

	qv, err = t.dao.FinalizeQualificationVoting(t.ctx, t.signed("q1"), qv.ID)
	t.NoError(err)
	t.Equal(base.VotePassed, qv.Status)

	vv, err := t.dao.OpenVerificationVoting(t.ctx, t.signed("c0"), doc.ID)
	t.NoError(err)
	t.Equal(uint64(1), vv.ID)
	t.Equal(vv.Start+20, vv.End)

	t.advance(1)

	for a, choice := range map[base.Address]bool{"c0": true, "c1": true, "c2": false} {
		_, err = t.dao.CastVerificationVote(t.ctx, t.signed(a), vv.ID, choice)
		t.NoError(err)
	}

	_, err = t.dao.CastVerificationVote(t.ctx, t.signed("c2"), vv.ID, true)
	t.True(errors.Is(err, voting.MemberAlreadyVotedError))

	t.ticker.Set(vv.End + 1)

	vv, err = t.dao.FinalizeVerificationVoting(t.ctx, t.signed("q0"), vv.ID)
	t.NoError(err)
	t.Equal(base.VotePassed, vv.Status)

	stored, _, err := t.dao.Document(doc.ID)
	t.NoError(err)
	t.Equal(base.DocumentVerified, stored.Status)

	choice, found, err := t.dao.Receipt("c2", base.VoteVerification, vv.ID)
	t.NoError(err)
	t.True(found)
	t.False(choice)

	for _, vt := range []base.VoteType{base.VoteQualification, base.VoteVerification} {
		n, err := t.dao.RoundCount(vt)
		t.NoError(err)
		t.Equal(uint64(1), n)
	}

	_, err = t.dao.FinalizeVerificationVoting(t.ctx, t.signed("q0"), vv.ID)
	t.True(errors.Is(err, voting.VoteNotInProgressError))

	n, err := t.dao.TotalCollections()
	t.NoError(err)
	t.Equal(uint32(3), n)
}

func TestDAO(t *testing.T) {
	suite.Run(t, new(testDAO))
}
