package events

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/suite"
	"go.uber.org/goleak"

	"github.com/bhdao/bhdao/base"
	"github.com/bhdao/bhdao/util"
	"github.com/bhdao/bhdao/util/logging"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type dummyEvent struct {
	Document uint64 `json:"document"`
}

func (dummyEvent) EventName() string {
	return "DummyEvent"
}

type failedSink struct{}

func (failedSink) Emit(...Record) error {
	return errors.Errorf("killme")
}

type publishedMessage struct {
	subject string
	data    []byte
}

type dummyPublisher struct {
	published []publishedMessage
}

func (p *dummyPublisher) Publish(subject string, data []byte) error {
	p.published = append(p.published, publishedMessage{subject: subject, data: data})

	return nil
}

type testSink struct {
	suite.Suite
}

func (t *testSink) TestRecord() {
	a := NewRecord(base.Tick(3), dummyEvent{Document: 1})
	b := NewRecord(base.Tick(3), dummyEvent{Document: 2})

	t.Equal("DummyEvent", a.Name)
	t.Equal(base.Tick(3), a.Tick)
	t.Equal(-1, a.ID.Compare(b.ID))
}

func (t *testSink) TestMemorySink() {
	s := NewMemorySink()
	t.NoError(s.Emit(
		NewRecord(base.Tick(1), dummyEvent{Document: 1}),
		NewRecord(base.Tick(1), dummyEvent{Document: 2}),
	))

	t.Equal([]string{"DummyEvent", "DummyEvent"}, s.Names())
	t.Equal(dummyEvent{Document: 2}, s.Records()[1].Event)

	s.Reset()
	t.Empty(s.Records())
}

func (t *testSink) TestJSONSink() {
	var bf bytes.Buffer
	s := NewJSONSink(&bf)

	t.NoError(s.Emit(
		NewRecord(base.Tick(7), dummyEvent{Document: 1}),
		NewRecord(base.Tick(8), dummyEvent{Document: 2}),
	))

	lines := strings.Split(strings.TrimSpace(bf.String()), "\n")
	t.Equal(2, len(lines))

	var m map[string]interface{}
	t.NoError(util.JSONUnmarshal([]byte(lines[1]), &m))
	t.Equal("DummyEvent", m["name"])
	t.Equal(float64(8), m["tick"])
	t.Equal(float64(2), m["event"].(map[string]interface{})["document"])
	t.NotEmpty(m["id"])
}

func (t *testSink) TestLogSink() {
	var bf bytes.Buffer
	s := NewLogSink(zerolog.InfoLevel)
	_ = s.SetLogging(logging.Setup(&bf, zerolog.DebugLevel, "json", false))

	t.NoError(s.Emit(NewRecord(base.Tick(7), dummyEvent{Document: 1})))
	t.Contains(bf.String(), `"name":"DummyEvent"`)
	t.Contains(bf.String(), `"module":"event-sink"`)
}

func (t *testSink) TestNATSSink() {
	pub := &dummyPublisher{}
	s := NewNATSSink(pub, "")

	t.NoError(s.Emit(NewRecord(base.Tick(7), dummyEvent{Document: 1})))
	t.Equal(1, len(pub.published))
	t.Equal("bhdao.events.DummyEvent", pub.published[0].subject)
	t.Contains(string(pub.published[0].data), `"document":1`)

	s = NewNATSSink(pub, "dao")
	t.Equal("dao.VoteCast", s.Subject("VoteCast"))
}

func (t *testSink) TestSinks() {
	a := NewMemorySink()
	b := NewMemorySink()

	ss := Sinks{a, failedSink{}, b}
	err := ss.Emit(NewRecord(base.Tick(1), dummyEvent{}))
	t.Error(err)
	t.Contains(err.Error(), "killme")

	t.Equal(1, len(a.Records()))
	t.Equal(1, len(b.Records()))
}

func TestSink(t *testing.T) {
	suite.Run(t, new(testSink))
}
