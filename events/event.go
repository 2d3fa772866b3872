package events

import (
	"github.com/oklog/ulid"

	"github.com/bhdao/bhdao/base"
	"github.com/bhdao/bhdao/util"
)

// Event is a governance notification. Events of a call are delivered only
// after the call is committed.
type Event interface {
	EventName() string
}

// Record is the envelope sinks deliver.
type Record struct {
	ID    ulid.ULID `json:"id"`
	Tick  base.Tick `json:"tick"`
	Name  string    `json:"name"`
	Event Event     `json:"event"`
}

func NewRecord(tick base.Tick, ev Event) Record {
	return Record{
		ID:    util.ULID(),
		Tick:  tick,
		Name:  ev.EventName(),
		Event: ev,
	}
}
