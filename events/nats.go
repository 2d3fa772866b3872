package events

import (
	"strings"

	"github.com/nats-io/nats.go"
	"github.com/pkg/errors"

	"github.com/bhdao/bhdao/util"
)

var DefaultNATSSubject = "bhdao.events"

// Publisher is satisfied by *nats.Conn.
type Publisher interface {
	Publish(subject string, data []byte) error
}

// NATSSink publishes each event as json to "<subject>.<event name>".
type NATSSink struct {
	pub     Publisher
	subject string
}

func NewNATSSink(pub Publisher, subject string) *NATSSink {
	subject = strings.TrimSpace(subject)
	if len(subject) < 1 {
		subject = DefaultNATSSubject
	}

	return &NATSSink{pub: pub, subject: subject}
}

// ConnectNATSSink connects to the nats server of url.
func ConnectNATSSink(url, subject string) (*NATSSink, *nats.Conn, error) {
	nc, err := nats.Connect(url, nats.Name("bhdao"))
	if err != nil {
		return nil, nil, errors.Wrapf(err, "failed to connect nats, %q", url)
	}

	return NewNATSSink(nc, subject), nc, nil
}

func (s *NATSSink) Subject(name string) string {
	return s.subject + "." + name
}

func (s *NATSSink) Emit(rs ...Record) error {
	for i := range rs {
		b, err := util.JSONMarshal(rs[i])
		if err != nil {
			return errors.Wrap(err, "failed to marshal event")
		}

		if err := s.pub.Publish(s.Subject(rs[i].Name), b); err != nil {
			return errors.Wrapf(err, "failed to publish event, %q", rs[i].Name)
		}
	}

	return nil
}
