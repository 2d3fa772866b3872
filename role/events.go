package role

import (
	"github.com/bhdao/bhdao/base"
	"github.com/bhdao/bhdao/events"
)

type QualifierAdded struct {
	Account base.Address `json:"account"`
	Count   uint32       `json:"count"`
}

func (QualifierAdded) EventName() string {
	return "QualifierAdded"
}

type CollectorAdded struct {
	Account base.Address `json:"account"`
	Count   uint32       `json:"count"`
}

func (CollectorAdded) EventName() string {
	return "CollectorAdded"
}

type ContributorAdded struct {
	Account base.Address `json:"account"`
	Count   uint32       `json:"count"`
}

func (ContributorAdded) EventName() string {
	return "ContributorAdded"
}

func addedEvent(r base.Role, account base.Address, count uint32) events.Event {
	switch r {
	case base.QualifierRole:
		return QualifierAdded{Account: account, Count: count}
	case base.CollectorRole:
		return CollectorAdded{Account: account, Count: count}
	default:
		return ContributorAdded{Account: account, Count: count}
	}
}
