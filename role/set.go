package role

import (
	"sort"

	"github.com/bhdao/bhdao/base"
)

// OrderedSet keeps accounts sorted and unique, so membership is a binary
// search and enumeration is deterministic.
type OrderedSet struct {
	Accounts []base.Address `bson:"accounts"`
}

func NewOrderedSet(accounts ...base.Address) OrderedSet {
	var s OrderedSet
	for i := range accounts {
		_ = s.Insert(accounts[i])
	}

	return s
}

// Search returns the index of a, or the index where a would be inserted.
func (s OrderedSet) Search(a base.Address) (int, bool) {
	i := sort.Search(len(s.Accounts), func(i int) bool {
		return s.Accounts[i].Compare(a) >= 0
	})

	return i, i < len(s.Accounts) && s.Accounts[i].Equal(a)
}

func (s OrderedSet) Has(a base.Address) bool {
	_, found := s.Search(a)

	return found
}

// Insert adds a at its ordered position; it returns false when a is already
// in the set.
func (s *OrderedSet) Insert(a base.Address) bool {
	i, found := s.Search(a)
	if found {
		return false
	}

	s.Accounts = append(s.Accounts, base.EmptyAddress)
	copy(s.Accounts[i+1:], s.Accounts[i:])
	s.Accounts[i] = a

	return true
}

func (s OrderedSet) Len() int {
	return len(s.Accounts)
}

func (s OrderedSet) Items() []base.Address {
	items := make([]base.Address, len(s.Accounts))
	copy(items, s.Accounts)

	return items
}
